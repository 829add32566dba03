package game

import (
	"errors"

	"github.com/hoopsquares/squares/internal/grid"
)

// Define errors
var (
	ErrGameNotFound         = errors.New("game not found")
	ErrPlayerNotFound       = errors.New("player not found in game")
	ErrClaimNotFound        = errors.New("no claim by that user on that cell")
	ErrTierNotFound         = errors.New("no payout tier with that label")
	ErrInvalidCell          = errors.New("cell is outside the 10x10 grid")
	ErrInvalidSettings      = errors.New("invalid game settings")
	ErrInvalidScore         = errors.New("scores cannot be negative")
	ErrCellFull             = errors.New("cell is at claim capacity")
	ErrDuplicateClaim       = errors.New("user already claims that cell")
	ErrCapExceeded          = errors.New("player is at their square cap")
	ErrGameLocked           = errors.New("game is locked for new claims")
	ErrAlreadyScrambled     = errors.New("digits have already been scrambled")
	ErrNotYetScrambled      = errors.New("digits have not been scrambled")
	ErrPayoutsAlreadyLogged = errors.New("digits cannot be reset after a payout")
	ErrNoWinningSquare      = errors.New("winning cell has no claims")
	ErrDuplicatePayout      = errors.New("payout already logged for this tier")
	ErrNotAuthorized        = errors.New("only the host or an admin may do that")
)

// ErrCorruptAssignment surfaces a digit assignment that lost its permutation
// invariant somewhere upstream.
var ErrCorruptAssignment = grid.ErrCorruptAssignment
