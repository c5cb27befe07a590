// internal/puzzle/factory.go
//
// Board production: composes region generation and the solution search into
// one "give me a solvable board" operation. A board never leaves the factory
// without a verified solution; running out of attempts surfaces as
// ErrRetriesExhausted rather than looping forever.

package puzzle

import "math/rand"

// maxBoardAttempts bounds how many partitions the factory will try before
// giving up. Unsolvable partitions are common enough that a handful of
// retries is normal; exhausting the budget is not.
const maxBoardAttempts = 50

// Factory produces solvable boards.
type Factory struct {
	gen *Generator
}

// NewFactory returns a Factory drawing randomness from rng.
func NewFactory(rng *rand.Rand) *Factory {
	return &Factory{gen: NewGenerator(rng)}
}

// CreateBoard generates partitions until one admits a solution and returns
// it together with that solution. Returns ErrRetriesExhausted if the
// attempt budget runs out.
func (f *Factory) CreateBoard() (*Board, error) {
	for attempt := 0; attempt < maxBoardAttempts; attempt++ {
		regions, err := f.gen.Generate()
		if err != nil {
			return nil, err
		}
		solution, ok := Solve(regions)
		if !ok {
			continue
		}
		return &Board{Regions: regions, Solution: solution}, nil
	}
	return nil, ErrRetriesExhausted
}
