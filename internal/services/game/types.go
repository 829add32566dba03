package game

import (
	"github.com/hoopsquares/squares/internal/common/clock"
	"github.com/hoopsquares/squares/internal/common/uuid"
	"github.com/hoopsquares/squares/internal/digits"
	"github.com/hoopsquares/squares/internal/grid"
	"github.com/hoopsquares/squares/internal/models"
	gameRepo "github.com/hoopsquares/squares/internal/repositories/game"
	payoutRepo "github.com/hoopsquares/squares/internal/repositories/payoutlog"
)

// Config holds configuration for the game service
type Config struct {
	// CellCapacity is the maximum number of concurrent claims per cell
	CellCapacity int

	// AllowClaimsAfterScramble keeps claiming open once digits are locked.
	// Default is false: the grid freezes at scramble time.
	AllowClaimsAfterScramble bool

	// Repository dependencies
	GameRepo      gameRepo.Repository
	PayoutLogRepo payoutRepo.Repository

	// Service dependencies
	Shuffler      digits.Shuffler
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// Actor identifies who is performing an operation, as supplied by the
// identity provider
type Actor struct {
	// UserID is the authenticated user's opaque ID
	UserID string

	// IsAdmin marks a user with the admin/host capability
	IsAdmin bool
}

// CreateGameInput contains parameters for creating a game
type CreateGameInput struct {
	// HostUserID is the user ID of the host
	HostUserID string

	// HostName is the display name of the host
	HostName string

	// Settings is the game setup; tier percents must sum to at most 100
	Settings models.GameSettings
}

// CreateGameOutput contains the result of creating a game
type CreateGameOutput struct {
	// Game is the newly created game
	Game *models.Game
}

// GetGameInput contains parameters for retrieving a game
type GetGameInput struct {
	GameID string
}

// GetGameOutput contains the retrieved game
type GetGameOutput struct {
	Game *models.Game
}

// ListOpenGamesInput contains parameters for listing open games
type ListOpenGamesInput struct {
}

// ListOpenGamesOutput contains the open games
type ListOpenGamesOutput struct {
	Games []*models.Game
}

// DeleteGameInput contains parameters for deleting a game
type DeleteGameInput struct {
	GameID string
	Actor  Actor
}

// DeleteGameOutput contains the result of deleting a game
type DeleteGameOutput struct {
	// Success indicates the game was removed
	Success bool
}

// ClaimSquareInput contains parameters for claiming a cell
type ClaimSquareInput struct {
	GameID string

	// Row and Col identify the cell, both 0-9
	Row int
	Col int

	// UserID is the claiming user
	UserID string

	// DisplayName is the claiming user's display name
	DisplayName string
}

// ClaimSquareOutput contains the result of claiming a cell
type ClaimSquareOutput struct {
	// Claim is the appended claim
	Claim *models.SquareClaim

	// Game is the updated aggregate snapshot
	Game *models.Game
}

// ReleaseSquareInput contains parameters for releasing a claim
type ReleaseSquareInput struct {
	GameID string
	Row    int
	Col    int

	// UserID is the owner of the claim being released
	UserID string

	// Actor is who is releasing; must be the owner, the host, or an admin
	Actor Actor
}

// ReleaseSquareOutput contains the result of releasing a claim
type ReleaseSquareOutput struct {
	Game *models.Game
}

// ScrambleDigitsInput contains parameters for scrambling the digits
type ScrambleDigitsInput struct {
	GameID string
	Actor  Actor
}

// ScrambleDigitsOutput contains the result of scrambling the digits
type ScrambleDigitsOutput struct {
	Game *models.Game
}

// ResetDigitsInput contains parameters for resetting the digits
type ResetDigitsInput struct {
	GameID string
	Actor  Actor
}

// ResetDigitsOutput contains the result of resetting the digits
type ResetDigitsOutput struct {
	Game *models.Game
}

// UpdateScoresInput contains a pushed score tuple
type UpdateScoresInput struct {
	GameID string
	Actor  Actor

	// Update is the score tuple from the feed or manual entry
	Update models.ScoreUpdate
}

// UpdateScoresOutput contains the result of accepting a score tuple
type UpdateScoresOutput struct {
	Game *models.Game
}

// ResolveWinningCellInput contains parameters for resolving the winning cell
type ResolveWinningCellInput struct {
	GameID string
}

// ResolveWinningCellOutput contains the resolved cell. Cell is nil while the
// digits are unscrambled.
type ResolveWinningCellOutput struct {
	Cell *grid.Cell

	// Claims are the claims on the winning cell, empty for an open square
	Claims []*models.SquareClaim
}

// LogPayoutInput contains parameters for logging a tier payout
type LogPayoutInput struct {
	GameID string
	Actor  Actor

	// TierLabel selects the payout tier, e.g. "Q1"
	TierLabel string

	// TeamAScore and TeamBScore are the checkpoint scores
	TeamAScore int
	TeamBScore int

	// Period is the game period at the checkpoint
	Period int

	// WinnerUserID picks the winner among co-claimants of the winning cell.
	// Optional: with a single claimant it is inferred, otherwise the
	// earliest claim wins by default.
	WinnerUserID string
}

// LogPayoutOutput contains the appended ledger entry. Entry is set as soon as
// the ledger append succeeds, even when marking the tier paid fails afterward.
type LogPayoutOutput struct {
	Entry *models.PayoutLogEntry

	// Game is the updated aggregate snapshot; nil if the tier marking failed
	Game *models.Game
}

// TogglePlayerPaidInput contains parameters for flipping a paid flag
type TogglePlayerPaidInput struct {
	GameID       string
	PlayerUserID string
	Actor        Actor
}

// TogglePlayerPaidOutput contains the result of flipping a paid flag
type TogglePlayerPaidOutput struct {
	Player *models.Player
	Game   *models.Game
}

// RemovePlayerInput contains parameters for removing a player
type RemovePlayerInput struct {
	GameID       string
	PlayerUserID string
	Actor        Actor
}

// RemovePlayerOutput contains the result of removing a player
type RemovePlayerOutput struct {
	Game *models.Game
}

// GetLeaderboardInput contains parameters for the per-game roster view
type GetLeaderboardInput struct {
	GameID string
}

// LeaderboardEntry is one roster row with amounts owed
type LeaderboardEntry struct {
	UserID      string
	DisplayName string

	// Squares is the number of cells claimed
	Squares int

	// AmountOwed is squares times price per square
	AmountOwed int64

	// Paid indicates the player has settled up
	Paid bool
}

// GetLeaderboardOutput contains the roster view
type GetLeaderboardOutput struct {
	GameID  string
	Entries []LeaderboardEntry
}

// GetHallOfWinnersInput contains parameters for the global winners feed
type GetHallOfWinnersInput struct {
	// Limit caps the number of entries; 0 means all
	Limit int
}

// GetHallOfWinnersOutput contains the global winners feed
type GetHallOfWinnersOutput struct {
	Entries []*models.PayoutLogEntry
}

// GetPlayerWinningsInput contains parameters for a player's win history
type GetPlayerWinningsInput struct {
	UserID string
}

// GetPlayerWinningsOutput contains a player's win history
type GetPlayerWinningsOutput struct {
	Entries []*models.PayoutLogEntry

	// Total is the sum of the player's payout amounts
	Total int64
}
