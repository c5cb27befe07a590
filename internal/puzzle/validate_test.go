package puzzle

import (
	"errors"
	"math/rand"
	"testing"
)

// stripeBoard returns a board whose regions are vertical stripes, except
// cell (1,2) which is folded into region 0 so a pure region conflict (no
// shared row, column, or diagonal) is reachable.
func stripeBoard() *Board {
	var grid RegionGrid
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			grid[r][c] = c
		}
	}
	grid[1][2] = 0
	return &Board{Regions: grid}
}

func TestValidatePlacement(t *testing.T) {
	board := stripeBoard()

	cases := []struct {
		name     string
		markers  []Cell
		row, col int
		want     error
	}{
		{"empty board ok", nil, 3, 3, nil},
		{"row conflict", []Cell{{Row: 2, Col: 5}}, 2, 0, ErrRowConflict},
		{"column conflict", []Cell{{Row: 0, Col: 4}}, 5, 4, ErrColumnConflict},
		{"region conflict", []Cell{{Row: 4, Col: 0}}, 1, 2, ErrRegionConflict},
		{"adjacent diagonal", []Cell{{Row: 3, Col: 3}}, 4, 4, ErrDiagonalConflict},
		{"distant diagonal", []Cell{{Row: 0, Col: 1}}, 5, 6, ErrDiagonalConflict},
		{"row reported before column", []Cell{{Row: 2, Col: 2}}, 2, 2, ErrRowConflict},
		{"out of bounds row", nil, 8, 0, ErrOutOfBounds},
		{"out of bounds col", nil, 0, -1, ErrOutOfBounds},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidatePlacement(board, tc.row, tc.col, tc.markers)
			if !errors.Is(got, tc.want) {
				t.Fatalf("ValidatePlacement(%d,%d) = %v, want %v", tc.row, tc.col, got, tc.want)
			}
		})
	}
}

// Replaying a board's own solution through the validator must never reject:
// the validator and the solver enforce the same rules.
func TestValidateAgreesWithSolver(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		board, err := NewFactory(rand.New(rand.NewSource(seed))).CreateBoard()
		if err != nil {
			t.Fatalf("seed %d: CreateBoard failed: %v", seed, err)
		}
		var placed []Cell
		for _, cell := range board.Solution {
			if err := ValidatePlacement(board, cell.Row, cell.Col, placed); err != nil {
				t.Fatalf("seed %d: solution cell %v rejected: %v", seed, cell, err)
			}
			placed = append(placed, cell)
		}
	}
}
