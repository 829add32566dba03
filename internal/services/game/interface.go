package game

import "context"

// Service defines the interface for game aggregate operations. Every
// state-changing operation is applied as one atomic read-modify-write against
// the durable store, so precondition checks and mutations never interleave
// with a concurrent writer.
type Service interface {
	// CreateGame creates a new squares pool
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// ListOpenGames retrieves the games still accepting claims
	ListOpenGames(ctx context.Context, input *ListOpenGamesInput) (*ListOpenGamesOutput, error)

	// DeleteGame removes a game; its payout log entries survive
	DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error)

	// ClaimSquare reserves a cell for a player
	ClaimSquare(ctx context.Context, input *ClaimSquareInput) (*ClaimSquareOutput, error)

	// ReleaseSquare removes a claim, by its owner or an admin
	ReleaseSquare(ctx context.Context, input *ReleaseSquareInput) (*ReleaseSquareOutput, error)

	// ScrambleDigits locks in random row and column digit permutations
	ScrambleDigits(ctx context.Context, input *ScrambleDigitsInput) (*ScrambleDigitsOutput, error)

	// ResetDigits restores the identity digit ordering; refused once any
	// payout has been logged
	ResetDigits(ctx context.Context, input *ResetDigitsInput) (*ResetDigitsOutput, error)

	// UpdateScores accepts a score tuple pushed in by the host or feed
	UpdateScores(ctx context.Context, input *UpdateScoresInput) (*UpdateScoresOutput, error)

	// ResolveWinningCell maps the game's current scores to the winning cell
	ResolveWinningCell(ctx context.Context, input *ResolveWinningCellInput) (*ResolveWinningCellOutput, error)

	// LogPayout resolves a tier's winner and appends a ledger entry
	LogPayout(ctx context.Context, input *LogPayoutInput) (*LogPayoutOutput, error)

	// TogglePlayerPaid flips a roster entry's paid flag
	TogglePlayerPaid(ctx context.Context, input *TogglePlayerPaidInput) (*TogglePlayerPaidOutput, error)

	// RemovePlayer drops a player and every claim they hold
	RemovePlayer(ctx context.Context, input *RemovePlayerInput) (*RemovePlayerOutput, error)

	// GetLeaderboard returns the per-game roster with amounts owed
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// GetHallOfWinners returns the newest payout entries across all games
	GetHallOfWinners(ctx context.Context, input *GetHallOfWinnersInput) (*GetHallOfWinnersOutput, error)

	// GetPlayerWinnings returns a player's payout entries and total
	GetPlayerWinnings(ctx context.Context, input *GetPlayerWinningsInput) (*GetPlayerWinningsOutput, error)
}
