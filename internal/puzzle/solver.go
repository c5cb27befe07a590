// internal/puzzle/solver.go
//
// Backtracking solution search over a region partition.
// Places one queen per row such that no two queens share a column, a region,
// or a diagonal (any distance, the classic n-queens rule). Columns are tried
// in ascending order at every row, so for a fixed partition the result is
// deterministic: the first full assignment found.

package puzzle

// Solve returns one valid queen placement for the partition, ordered by row,
// or ok=false if the partition admits none.
func Solve(regions RegionGrid) ([]Cell, bool) {
	var (
		usedCols    [GridSize]bool
		usedRegions [NumRegions]bool
	)
	placed := make([]Cell, 0, GridSize)

	var place func(row int) bool
	place = func(row int) bool {
		if row == GridSize {
			return true
		}
		for col := 0; col < GridSize; col++ {
			region := regions[row][col]
			if usedCols[col] || usedRegions[region] || onDiagonal(placed, row, col) {
				continue
			}
			usedCols[col] = true
			usedRegions[region] = true
			placed = append(placed, Cell{Row: row, Col: col})

			if place(row + 1) {
				return true
			}

			placed = placed[:len(placed)-1]
			usedRegions[region] = false
			usedCols[col] = false
		}
		return false
	}

	if !place(0) {
		return nil, false
	}
	return placed, true
}

// onDiagonal reports whether (row, col) shares a diagonal with any placed
// cell, at any distance.
func onDiagonal(placed []Cell, row, col int) bool {
	for _, p := range placed {
		dr, dc := row-p.Row, col-p.Col
		if dr < 0 {
			dr = -dr
		}
		if dc < 0 {
			dc = -dc
		}
		if dr == dc {
			return true
		}
	}
	return false
}
