package models

import (
	"time"
)

// Player is the denormalized roster entry for a user with claims in a game
type Player struct {
	// UserID is the ID of the player
	UserID string

	// DisplayName is the display name of the player
	DisplayName string

	// Squares is the number of cells the player currently claims
	Squares int

	// Paid indicates whether the player has settled up with the host
	Paid bool

	// PaidAt is when the player was marked paid
	PaidAt *time.Time
}
