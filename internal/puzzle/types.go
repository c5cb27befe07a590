// internal/puzzle/types.go
//
// Core type definitions for the Queens puzzle engine.
// Defines:
//   - Cell: a (row, col) coordinate on the 8×8 board.
//   - RegionGrid: the per-cell region assignment.
//   - Board: an immutable region partition plus its verified solution.

package puzzle

// GridSize is the board edge length; the board is GridSize×GridSize.
const GridSize = 8

// NumRegions is the number of colored regions the board is partitioned into.
// It always equals GridSize: one queen per region, one queen per row.
const NumRegions = 8

// Region growth bounds. Each region targets a random size in
// [MinRegionSize, MaxRegionTarget] and must end up with at least
// MinRegionSize cells to be kept.
const (
	MinRegionSize   = 3
	MaxRegionTarget = 12
)

// Cell is a board coordinate. Row and Col are in [0, GridSize).
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// RegionGrid assigns every cell a region id in [0, NumRegions).
// Indexed [row][col].
type RegionGrid [GridSize][GridSize]int

// Board is the shared puzzle both players race on. Regions is the partition
// delivered to clients; Solution is one verified queen placement (one cell
// per row, in row order) and stays server-side — it is never marshaled.
//
// A Board is immutable once created.
type Board struct {
	Regions  RegionGrid `json:"regions"`
	Solution []Cell     `json:"-"`
}

// RegionAt returns the region id of the given cell.
func (b *Board) RegionAt(row, col int) int { return b.Regions[row][col] }

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < GridSize && col >= 0 && col < GridSize
}

// neighbors4 holds the orthogonal neighbor offsets used by region growth
// and connectivity checks.
var neighbors4 = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
