package payoutlog

import "github.com/hoopsquares/squares/internal/models"

// AddEntryInput contains parameters for appending a payout entry
type AddEntryInput struct {
	Entry *models.PayoutLogEntry
}

// GetEntriesForGameInput contains parameters for retrieving a game's entries
type GetEntriesForGameInput struct {
	GameID string
}

// GetEntriesForGameOutput contains the result of retrieving a game's entries
type GetEntriesForGameOutput struct {
	Entries []*models.PayoutLogEntry
}

// GetEntriesForWinnerInput contains parameters for retrieving a player's wins
type GetEntriesForWinnerInput struct {
	WinnerUserID string
}

// GetEntriesForWinnerOutput contains the result of retrieving a player's wins
type GetEntriesForWinnerOutput struct {
	Entries []*models.PayoutLogEntry
}

// GetRecentEntriesInput contains parameters for the global winners feed
type GetRecentEntriesInput struct {
	// Limit caps the number of entries returned; 0 means all
	Limit int
}

// GetRecentEntriesOutput contains the result of the global winners feed
type GetRecentEntriesOutput struct {
	Entries []*models.PayoutLogEntry
}

// HasEntriesForGameInput contains parameters for the logged-payout check
type HasEntriesForGameInput struct {
	GameID string
}
