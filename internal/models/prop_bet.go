package models

import (
	"time"
)

// PropBetStatus represents the lifecycle state of a prop-bet pool
type PropBetStatus string

const (
	// PropBetStatusOpen indicates a pool is accepting bets
	PropBetStatusOpen PropBetStatus = "OPEN"

	// PropBetStatusLocked indicates betting is closed but the pool is unsettled
	PropBetStatusLocked PropBetStatus = "LOCKED"

	// PropBetStatusPayout indicates the pool has been settled; terminal
	PropBetStatusPayout PropBetStatus = "PAYOUT"
)

// Bet is one player's stake in a prop-bet pool
type Bet struct {
	// UserID is the ID of the bettor
	UserID string

	// DisplayName is the display name of the bettor
	DisplayName string

	// SelectedOption is the option the bettor picked
	SelectedOption string

	// PlacedAt is when the bet was placed
	PlacedAt time.Time
}

// PropBet is a parimutuel side pool: all entry fees are pooled and split
// evenly among the bettors who picked the winning option.
type PropBet struct {
	// ID is the unique identifier for the pool
	ID string

	// GameID is the ID of the game the pool belongs to
	GameID string

	// Question is the proposition being bet on
	Question string

	// EntryFee is the fixed stake per bet, in whole dollars
	EntryFee int64

	// Options are the outcomes bettors may pick from
	Options []string

	// Bets are the stakes placed so far, at most one per user
	Bets []*Bet

	// Status is the lifecycle state of the pool
	Status PropBetStatus

	// WinningOption is the settled outcome; empty until settlement
	WinningOption string

	// CreatedAt is when the pool was created
	CreatedAt time.Time

	// UpdatedAt is when the pool was last updated
	UpdatedAt time.Time
}

// TotalPot is the pooled stake across all bets.
func (p *PropBet) TotalPot() int64 {
	return int64(len(p.Bets)) * p.EntryFee
}

// WinnerCount counts bets on the given option.
func (p *PropBet) WinnerCount(option string) int {
	count := 0
	for _, b := range p.Bets {
		if b.SelectedOption == option {
			count++
		}
	}
	return count
}

// FindBet returns the user's bet in this pool, or nil.
func (p *PropBet) FindBet(userID string) *Bet {
	for _, b := range p.Bets {
		if b.UserID == userID {
			return b
		}
	}
	return nil
}

// HasOption reports whether option is one of the pool's outcomes.
func (p *PropBet) HasOption(option string) bool {
	for _, o := range p.Options {
		if o == option {
			return true
		}
	}
	return false
}
