// internal/puzzle/regions.go
//
// Randomized region partitioning for the 8×8 board.
// Responsibilities:
//   - Grow 8 orthogonally contiguous regions by randomized flood fill.
//   - Retry a single region (clearing exactly the cells it wrote) when it
//     comes out too small, without touching other regions.
//   - Retry the whole grid when cells are left unassigned, under an explicit
//     iterative attempt budget — never unbounded recursion.
//
// Notes:
//   - Randomness is injected as *rand.Rand so generation is reproducible
//     under a fixed seed.
//   - A region can come out smaller than MinRegionSize when its seed lands
//     in a pocket enclosed by earlier regions; that attempt is rolled back
//     and reseeded.

package puzzle

import (
	"errors"
	"math/rand"
)

// Attempt budgets for the iterative retry loops.
const (
	maxGridAttempts   = 100
	maxRegionAttempts = 20
)

// ErrRetriesExhausted is returned when a generation loop runs out of
// attempts. Callers treat it as an internal fault, not a user error.
var ErrRetriesExhausted = errors.New("puzzle: generation attempt budget exhausted")

const unassigned = -1

// Generator partitions the board into contiguous regions.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator drawing randomness from rng.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate produces a full partition: every cell assigned, all NumRegions
// ids used, every region 4-connected with at least MinRegionSize cells.
// Returns ErrRetriesExhausted if no valid partition is found within the
// attempt budget.
func (g *Generator) Generate() (RegionGrid, error) {
	for attempt := 0; attempt < maxGridAttempts; attempt++ {
		grid, ok := g.tryGenerate()
		if ok {
			return grid, nil
		}
	}
	return RegionGrid{}, ErrRetriesExhausted
}

// tryGenerate runs one whole-grid attempt. It fails (returns ok=false) when
// a region cannot reach MinRegionSize within its reseed budget, or when
// cells remain unassigned after all regions are grown.
func (g *Generator) tryGenerate() (RegionGrid, bool) {
	var grid RegionGrid
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = unassigned
		}
	}

	for region := 0; region < NumRegions; region++ {
		if !g.growRegion(&grid, region) {
			return RegionGrid{}, false
		}
	}

	// Leftover pockets that no region reached mean a failed attempt.
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if grid[r][c] == unassigned {
				return RegionGrid{}, false
			}
		}
	}
	return grid, true
}

// growRegion grows one region from a random unassigned seed until a random
// target size in [MinRegionSize, MaxRegionTarget] is reached or the frontier
// is exhausted. Undersized results are rolled back cell-by-cell and retried
// with a fresh seed.
func (g *Generator) growRegion(grid *RegionGrid, region int) bool {
	for attempt := 0; attempt < maxRegionAttempts; attempt++ {
		seed, ok := g.randomUnassigned(grid)
		if !ok {
			return false
		}
		target := MinRegionSize + g.rng.Intn(MaxRegionTarget-MinRegionSize+1)

		// written tracks exactly the cells this attempt assigned, so a
		// rollback clears them and nothing else.
		written := []Cell{seed}
		grid[seed.Row][seed.Col] = region
		frontier := []Cell{seed}

		for len(written) < target && len(frontier) > 0 {
			i := g.rng.Intn(len(frontier))
			cur := frontier[i]
			frontier[i] = frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]

			for _, d := range neighbors4 {
				nr, nc := cur.Row+d[0], cur.Col+d[1]
				if !InBounds(nr, nc) || grid[nr][nc] != unassigned {
					continue
				}
				grid[nr][nc] = region
				cell := Cell{Row: nr, Col: nc}
				written = append(written, cell)
				frontier = append(frontier, cell)
				if len(written) == target {
					break
				}
			}
		}

		if len(written) >= MinRegionSize {
			return true
		}
		for _, cell := range written {
			grid[cell.Row][cell.Col] = unassigned
		}
	}
	return false
}

// randomUnassigned picks a uniformly random unassigned cell.
func (g *Generator) randomUnassigned(grid *RegionGrid) (Cell, bool) {
	var free []Cell
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if grid[r][c] == unassigned {
				free = append(free, Cell{Row: r, Col: c})
			}
		}
	}
	if len(free) == 0 {
		return Cell{}, false
	}
	return free[g.rng.Intn(len(free))], true
}
