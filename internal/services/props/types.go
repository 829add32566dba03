package props

import (
	"github.com/hoopsquares/squares/internal/common/clock"
	"github.com/hoopsquares/squares/internal/common/uuid"
	"github.com/hoopsquares/squares/internal/models"
	propRepo "github.com/hoopsquares/squares/internal/repositories/propbet"
)

// Config holds configuration for the props service
type Config struct {
	// Repository dependencies
	PropRepo propRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// Actor identifies who is performing an operation
type Actor struct {
	// UserID is the authenticated user's opaque ID
	UserID string

	// IsAdmin marks a user with the admin/host capability
	IsAdmin bool
}

// CreatePropInput contains parameters for opening a pool
type CreatePropInput struct {
	GameID string
	Actor  Actor

	// Question is the proposition being bet on
	Question string

	// EntryFee is the fixed stake per bet, in whole dollars
	EntryFee int64

	// Options are the outcomes, at least two and all distinct
	Options []string
}

// CreatePropOutput contains the result of opening a pool
type CreatePropOutput struct {
	Prop *models.PropBet
}

// GetPropInput contains parameters for retrieving a pool
type GetPropInput struct {
	PropID string
}

// GetPropOutput contains the retrieved pool
type GetPropOutput struct {
	Prop *models.PropBet
}

// ListPropsInput contains parameters for listing a game's pools
type ListPropsInput struct {
	GameID string
}

// ListPropsOutput contains a game's pools, newest first
type ListPropsOutput struct {
	Props []*models.PropBet
}

// PlaceBetInput contains parameters for staking on an option
type PlaceBetInput struct {
	PropID string

	// UserID is the bettor
	UserID string

	// DisplayName is the bettor's display name
	DisplayName string

	// Option is the outcome the bettor picks
	Option string
}

// PlaceBetOutput contains the result of staking on an option
type PlaceBetOutput struct {
	Prop *models.PropBet
}

// LockPropInput contains parameters for closing betting
type LockPropInput struct {
	PropID string
	Actor  Actor
}

// LockPropOutput contains the result of closing betting
type LockPropOutput struct {
	Prop *models.PropBet
}

// SettlePropInput contains parameters for settling a pool
type SettlePropInput struct {
	PropID string
	Actor  Actor

	// WinningOption is the settled outcome
	WinningOption string
}

// SettlePropOutput contains the settled pool and the split
type SettlePropOutput struct {
	Prop *models.PropBet

	// TotalPot is the pooled stake at settlement
	TotalPot int64

	// WinnerCount is how many bets picked the winning option
	WinnerCount int

	// PayoutPerWinner is the even floor split; zero when nobody won, in
	// which case the whole pot stays unallocated
	PayoutPerWinner int64
}

// DeletePropInput contains parameters for removing a pool
type DeletePropInput struct {
	PropID string
	Actor  Actor
}

// DeletePropOutput contains the result of removing a pool
type DeletePropOutput struct {
	// Success indicates the pool was removed
	Success bool
}
