package payoutlog

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/hoopsquares/squares/internal/repositories/payoutlog Repository

import (
	"context"
)

// Repository defines the interface for the append-only winners ledger.
// Entries are never mutated or deleted; game deletion leaves them in place.
type Repository interface {
	// AddEntry appends a payout entry; at most one entry may exist per
	// (game, tier) pair
	AddEntry(ctx context.Context, input *AddEntryInput) error

	// GetEntriesForGame retrieves a game's entries, newest first
	GetEntriesForGame(ctx context.Context, input *GetEntriesForGameInput) (*GetEntriesForGameOutput, error)

	// GetEntriesForWinner retrieves a player's winning entries, newest first
	GetEntriesForWinner(ctx context.Context, input *GetEntriesForWinnerInput) (*GetEntriesForWinnerOutput, error)

	// GetRecentEntries retrieves the newest entries across all games
	GetRecentEntries(ctx context.Context, input *GetRecentEntriesInput) (*GetRecentEntriesOutput, error)

	// HasEntriesForGame reports whether any payout has been logged for a game
	HasEntriesForGame(ctx context.Context, input *HasEntriesForGameInput) (bool, error)
}
