package puzzle

import (
	"math/rand"
	"testing"
)

func TestGenerateInvariants(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := NewGenerator(rng)

		grid, err := g.Generate()
		if err != nil {
			t.Fatalf("seed %d: Generate failed: %v", seed, err)
		}

		sizes := make(map[int]int)
		for r := 0; r < GridSize; r++ {
			for c := 0; c < GridSize; c++ {
				id := grid[r][c]
				if id < 0 || id >= NumRegions {
					t.Fatalf("seed %d: cell (%d,%d) has region id %d out of range", seed, r, c, id)
				}
				sizes[id]++
			}
		}
		if len(sizes) != NumRegions {
			t.Fatalf("seed %d: expected %d regions, got %d", seed, NumRegions, len(sizes))
		}
		for id, n := range sizes {
			if n < MinRegionSize {
				t.Fatalf("seed %d: region %d has %d cells (< %d)", seed, id, n, MinRegionSize)
			}
			if !regionConnected(grid, id) {
				t.Fatalf("seed %d: region %d is not 4-connected", seed, id)
			}
		}
	}
}

func TestGenerateReproducible(t *testing.T) {
	a, err := NewGenerator(rand.New(rand.NewSource(42))).Generate()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGenerator(rand.New(rand.NewSource(42))).Generate()
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatal("same seed produced different partitions")
	}
}

// regionConnected flood-fills from one cell of the region and checks the
// fill reaches every cell carrying that id.
func regionConnected(grid RegionGrid, id int) bool {
	var start *Cell
	total := 0
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if grid[r][c] == id {
				total++
				if start == nil {
					start = &Cell{Row: r, Col: c}
				}
			}
		}
	}
	if start == nil {
		return false
	}

	seen := map[Cell]bool{*start: true}
	queue := []Cell{*start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range neighbors4 {
			nr, nc := cur.Row+d[0], cur.Col+d[1]
			next := Cell{Row: nr, Col: nc}
			if InBounds(nr, nc) && grid[nr][nc] == id && !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(seen) == total
}
