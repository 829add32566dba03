package models

import (
	"fmt"
	"time"
)

// SquareClaim records one player's reservation of a grid cell
type SquareClaim struct {
	// ID is the unique identifier for the claim
	ID string

	// Row is the cell row, 0-9
	Row int

	// Col is the cell column, 0-9
	Col int

	// UserID is the ID of the claiming user
	UserID string

	// DisplayName is the display name of the claiming user
	DisplayName string

	// ClaimedAt is when the claim was made
	ClaimedAt time.Time
}

// CellKey builds the "row-col" key used to index the claim grid.
func CellKey(row, col int) string {
	return fmt.Sprintf("%d-%d", row, col)
}
