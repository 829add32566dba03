// Package grid holds the pure board math for a squares pool: mapping a score
// pair onto the winning cell through the locked digit assignment, validating
// digit permutations, and computing tier payout amounts.
package grid

import (
	"errors"

	"github.com/hoopsquares/squares/internal/models"
)

// ErrCorruptAssignment is returned when a digit assignment is not a
// permutation of 0-9. The repositories never store one, so hitting this
// means the invariant was violated upstream.
var ErrCorruptAssignment = errors.New("digit assignment is not a permutation of 0-9")

// Cell identifies one position on the board
type Cell struct {
	// Row is the cell row, 0-9
	Row int

	// Col is the cell column, 0-9
	Col int
}

// InBounds reports whether (row, col) is on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < models.GridSize && col >= 0 && col < models.GridSize
}

// IsPermutation reports whether perm holds each digit 0-9 exactly once.
func IsPermutation(perm []int) bool {
	if len(perm) != models.GridSize {
		return false
	}
	var seen [models.GridSize]bool
	for _, d := range perm {
		if d < 0 || d >= models.GridSize || seen[d] {
			return false
		}
		seen[d] = true
	}
	return true
}

// ResolveWinningCell maps a score pair onto the winning cell. The row is the
// index of team A's last score digit in rowDigits, the column the index of
// team B's in colDigits. Pure and deterministic: the same inputs always
// resolve to the same cell.
func ResolveWinningCell(teamAScore, teamBScore int, rowDigits, colDigits []int) (Cell, error) {
	if !IsPermutation(rowDigits) || !IsPermutation(colDigits) {
		return Cell{}, ErrCorruptAssignment
	}

	aDigit := teamAScore % models.GridSize
	bDigit := teamBScore % models.GridSize

	row := indexOf(rowDigits, aDigit)
	col := indexOf(colDigits, bDigit)

	return Cell{Row: row, Col: col}, nil
}

// TierAmount computes the payout for one tier: the pot is price times claimed
// squares, the tier takes its percentage, and fractional dollars are floored.
// The remainder stays unallocated in the pot.
func TierAmount(tierPercent int, pricePerSquare int64, totalClaimedSquares int) int64 {
	if tierPercent <= 0 || pricePerSquare <= 0 || totalClaimedSquares <= 0 {
		return 0
	}
	pot := pricePerSquare * int64(totalClaimedSquares)
	return pot * int64(tierPercent) / 100
}

func indexOf(perm []int, digit int) int {
	for i, d := range perm {
		if d == digit {
			return i
		}
	}
	// Unreachable once IsPermutation has passed.
	return -1
}
