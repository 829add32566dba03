package models

import (
	"time"
)

// GridSize is the fixed number of rows and columns on the board.
const GridSize = 10

// GameStatus represents the current state of a game
type GameStatus string

const (
	// GameStatusOpen indicates a game is accepting square claims
	GameStatusOpen GameStatus = "open"

	// GameStatusScrambled indicates the digit assignment is locked in
	GameStatusScrambled GameStatus = "scrambled"

	// GameStatusArchived indicates a game has been archived
	GameStatusArchived GameStatus = "archived"
)

// PayoutTier is one payout checkpoint, worth a percentage of the total pot
type PayoutTier struct {
	// Label identifies the checkpoint, e.g. "Q1" or "Final"
	Label string

	// Percent is this tier's share of the pot, 0-100
	Percent int
}

// GameSettings holds the host-configured parameters of a game
type GameSettings struct {
	// Name is the display name of the game
	Name string

	// TeamA is the name of the team mapped to the grid rows
	TeamA string

	// TeamB is the name of the team mapped to the grid columns
	TeamB string

	// TeamALogo is an optional logo URL for team A
	TeamALogo string

	// TeamBLogo is an optional logo URL for team B
	TeamBLogo string

	// EventID is an optional external scoreboard event identifier
	EventID string

	// PricePerSquare is the cost of one claim, in whole dollars
	PricePerSquare int64

	// Payouts are the ordered payout tiers; percents sum to at most 100
	Payouts []PayoutTier

	// MaxSquaresPerPlayer caps claims per player; 0 means no cap
	MaxSquaresPerPlayer int

	// Rules is optional free-form house rules text
	Rules string
}

// Scores is the most recent accepted score pair for a game
type Scores struct {
	// TeamA is team A's score
	TeamA int

	// TeamB is team B's score
	TeamB int

	// Period is the game period the scores were reported in
	Period int
}

// Game is the aggregate root for one squares pool. The claim grid, digit
// assignment, player roster and paid-tier record live in a single document
// so that every mutation can be applied as one atomic read-modify-write.
type Game struct {
	// ID is the unique identifier for the game
	ID string

	// HostUserID is the user ID of the host
	HostUserID string

	// HostName is the display name of the host
	HostName string

	// Status is the current state of the game
	Status GameStatus

	// Settings is the host-configured game setup
	Settings GameSettings

	// Squares maps cell keys ("row-col") to the claims on that cell
	Squares map[string][]*SquareClaim

	// Players is the denormalized roster, one entry per claimant
	Players []*Player

	// Scores is the last accepted score tuple
	Scores Scores

	// IsScrambled reports whether the digit assignment is locked
	IsScrambled bool

	// RowDigits is the digit permutation for rows; identity order until scrambled
	RowDigits []int

	// ColDigits is the digit permutation for columns; identity order until scrambled
	ColDigits []int

	// PaidTiers records the tier labels that have already been paid out
	PaidTiers []string

	// CreatedAt is when the game was created
	CreatedAt time.Time

	// UpdatedAt is when the game was last updated
	UpdatedAt time.Time
}

// TotalClaimedSquares counts every claim across the grid.
func (g *Game) TotalClaimedSquares() int {
	total := 0
	for _, claims := range g.Squares {
		total += len(claims)
	}
	return total
}

// TierPaid reports whether the tier with the given label has been paid out.
func (g *Game) TierPaid(label string) bool {
	for _, paid := range g.PaidTiers {
		if paid == label {
			return true
		}
	}
	return false
}

// FindPlayer returns the roster entry for the given user, or nil.
func (g *Game) FindPlayer(userID string) *Player {
	for _, p := range g.Players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}
