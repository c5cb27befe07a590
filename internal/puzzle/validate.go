// internal/puzzle/validate.go
//
// Placement validation for a single player's queens. Pure function of the
// board and that player's existing markers; the opponent's markers never
// matter. Checks run in a fixed order (row, column, region, diagonal) so the
// reported reason is stable for a given position.

package puzzle

import "errors"

// Rejection reasons. The messages are the wire-visible text clients show.
var (
	ErrOutOfBounds      = errors.New("cell out of bounds")
	ErrRowConflict      = errors.New("row conflict")
	ErrColumnConflict   = errors.New("column conflict")
	ErrRegionConflict   = errors.New("region conflict")
	ErrDiagonalConflict = errors.New("diagonal conflict")
)

// ValidatePlacement reports whether placing a queen at (row, col) is legal
// given the player's existing markers. Returns nil when the placement is
// legal, or one of the rejection errors above.
func ValidatePlacement(b *Board, row, col int, markers []Cell) error {
	if !InBounds(row, col) {
		return ErrOutOfBounds
	}
	for _, m := range markers {
		if m.Row == row {
			return ErrRowConflict
		}
	}
	for _, m := range markers {
		if m.Col == col {
			return ErrColumnConflict
		}
	}
	region := b.Regions[row][col]
	for _, m := range markers {
		if b.Regions[m.Row][m.Col] == region {
			return ErrRegionConflict
		}
	}
	if onDiagonal(markers, row, col) {
		return ErrDiagonalConflict
	}
	return nil
}
