package evo

import (
	"fmt"
	"math"
	"math/rand"

	"gevo/internal/genetics"
)

// Selection chooses n genotypes from a ranked pool according to a policy.
// Implementations return references into the pool, possibly repeating the
// same genotype, and always exactly n of them.
type Selection interface {
	Name() string
	Select(rng *rand.Rand, pool *Pool, n int) ([]genetics.Genotype, error)
}

func validateSelectArgs(rng *rand.Rand, pool *Pool, n int) error {
	if rng == nil {
		return fmt.Errorf("random source is required")
	}
	if pool == nil {
		return fmt.Errorf("pool is required")
	}
	if n < 0 {
		return fmt.Errorf("selection count must be >= 0, got %d", n)
	}
	if n > 0 && pool.Len() == 0 {
		return fmt.Errorf("cannot select %d genotypes from an empty pool", n)
	}
	return nil
}

// UniformSelection draws n times uniformly with replacement.
type UniformSelection struct{}

func (UniformSelection) Name() string { return "uniform" }

func (UniformSelection) Select(rng *rand.Rand, pool *Pool, n int) ([]genetics.Genotype, error) {
	if err := validateSelectArgs(rng, pool, n); err != nil {
		return nil, err
	}
	selected := make([]genetics.Genotype, n)
	for i := range selected {
		selected[i] = pool.At(rng.Intn(pool.Len())).Genotype
	}
	return selected, nil
}

// PonderatedSelection draws each genotype with probability proportional to
// its share of the total score. The unit interval is partitioned by the
// cumulative normalized scores in rank order and a draw maps to the first
// boundary exceeding it. A zero score sum degenerates to uniform draws.
type PonderatedSelection struct{}

func (PonderatedSelection) Name() string { return "ponderated" }

func (PonderatedSelection) Select(rng *rand.Rand, pool *Pool, n int) ([]genetics.Genotype, error) {
	if err := validateSelectArgs(rng, pool, n); err != nil {
		return nil, err
	}
	if n == 0 {
		return []genetics.Genotype{}, nil
	}

	scores := pool.Scores()
	total := 0.0
	for _, score := range scores {
		total += score
	}
	if total == 0 {
		return UniformSelection{}.Select(rng, pool, n)
	}

	cumulative := make([]float64, len(scores))
	acc := 0.0
	for i, score := range scores {
		acc += score / total
		cumulative[i] = acc
	}

	selected := make([]genetics.Genotype, n)
	for i := range selected {
		draw := rng.Float64()
		picked := pool.Len() - 1
		for j, boundary := range cumulative {
			if boundary > draw {
				picked = j
				break
			}
		}
		selected[i] = pool.At(picked).Genotype
	}
	return selected, nil
}

// BestSelection returns the top-ranked genotype repeated n times.
type BestSelection struct{}

func (BestSelection) Name() string { return "best" }

func (BestSelection) Select(rng *rand.Rand, pool *Pool, n int) ([]genetics.Genotype, error) {
	if err := validateSelectArgs(rng, pool, n); err != nil {
		return nil, err
	}
	selected := make([]genetics.Genotype, n)
	for i := range selected {
		selected[i] = pool.At(0).Genotype
	}
	return selected, nil
}

// WorstSelection returns the bottom-ranked genotype repeated n times.
type WorstSelection struct{}

func (WorstSelection) Name() string { return "worst" }

func (WorstSelection) Select(rng *rand.Rand, pool *Pool, n int) ([]genetics.Genotype, error) {
	if err := validateSelectArgs(rng, pool, n); err != nil {
		return nil, err
	}
	selected := make([]genetics.Genotype, n)
	for i := range selected {
		selected[i] = pool.At(-1).Genotype
	}
	return selected, nil
}

// TournamentsSelection runs n independent tournaments; each draws a number
// of uniform candidates and keeps the best-scored, first seen winning ties.
type TournamentsSelection struct {
	size func(n int) int
}

// NewTournaments builds a tournaments selection with a fixed size, which
// must be at least 2.
func NewTournaments(size int) (*TournamentsSelection, error) {
	if size < 2 {
		return nil, fmt.Errorf("tournament size must be >= 2, got %d", size)
	}
	return &TournamentsSelection{size: func(int) int { return size }}, nil
}

// NewTournamentsFunc builds a tournaments selection whose size is computed
// from the selection count n at call time.
func NewTournamentsFunc(size func(n int) int) (*TournamentsSelection, error) {
	if size == nil {
		return nil, fmt.Errorf("tournament size function is required")
	}
	return &TournamentsSelection{size: size}, nil
}

// DefaultTournaments sizes each tournament as floor(sqrt(n)).
func DefaultTournaments() *TournamentsSelection {
	return &TournamentsSelection{size: func(n int) int {
		return int(math.Floor(math.Sqrt(float64(n))))
	}}
}

func (*TournamentsSelection) Name() string { return "tournaments" }

func (s *TournamentsSelection) Select(rng *rand.Rand, pool *Pool, n int) ([]genetics.Genotype, error) {
	if err := validateSelectArgs(rng, pool, n); err != nil {
		return nil, err
	}
	size := s.size(n)
	if size < 1 {
		size = 1
	}

	selected := make([]genetics.Genotype, n)
	for i := range selected {
		best := pool.At(rng.Intn(pool.Len()))
		for round := 1; round < size; round++ {
			candidate := pool.At(rng.Intn(pool.Len()))
			if candidate.Score > best.Score {
				best = candidate
			}
		}
		selected[i] = best.Genotype
	}
	return selected, nil
}
