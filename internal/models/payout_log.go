package models

import (
	"time"
)

// PayoutLogEntry is one immutable row in the winners ledger. Entries are
// appended when a tier pays out and are never mutated or deleted, even when
// the game that produced them is deleted.
type PayoutLogEntry struct {
	// ID is the unique identifier for the entry
	ID string

	// GameID is the ID of the game the payout belongs to
	GameID string

	// GameName is the display name of the game at payout time
	GameName string

	// Label is the payout tier, e.g. "Q1" or "Final"
	Label string

	// WinnerUserID is the ID of the winning player
	WinnerUserID string

	// WinnerName is the display name of the winning player
	WinnerName string

	// Amount is the payout in whole dollars
	Amount int64

	// TeamAScore is team A's score at payout time
	TeamAScore int

	// TeamBScore is team B's score at payout time
	TeamBScore int

	// Period is the game period the payout was logged in
	Period int

	// Timestamp is when the payout was logged
	Timestamp time.Time
}
