package evo

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"gevo/internal/genetics"
)

// Crossover combines two parent genotypes into two children. Parents are
// never modified; children are clones carrying both parent ids and
// generation max(parents)+1. Chromosome length is always preserved.
type Crossover interface {
	Name() string
	Cross(rng *rand.Rand, a, b genetics.Genotype) (genetics.Genotype, genetics.Genotype, error)
}

// crossPair runs the shared crossover protocol: clone, tag lineage, and
// hand matching chromosome pairs to the variant rule. Structurally equal
// parents skip feature crossing, leaving the children unmodified clones.
func crossPair(
	rng *rand.Rand,
	a, b genetics.Genotype,
	rule func(rng *rand.Rand, c1, c2 *genetics.Chromosome) error,
) (genetics.Genotype, genetics.Genotype, error) {
	if rng == nil {
		return nil, nil, fmt.Errorf("random source is required")
	}
	if a == nil || b == nil {
		return nil, nil, fmt.Errorf("both parent genotypes are required")
	}

	childA, childB := a.Clone(), b.Clone()
	generation := max(a.Meta().Generation, b.Meta().Generation) + 1
	parents := []uuid.UUID{a.Meta().ID, b.Meta().ID}
	for _, child := range []genetics.Genotype{childA, childB} {
		meta := child.Meta()
		meta.Generation = generation
		meta.Parents = append([]uuid.UUID(nil), parents...)
	}

	if genetics.Equal(a, b) {
		return childA, childB, nil
	}

	refsA, refsB := childA.Chromosomes(), childB.Chromosomes()
	pairs := min(len(refsA), len(refsB))
	for i := 0; i < pairs; i++ {
		c1, c2 := refsA[i].Chromosome, refsB[i].Chromosome
		if c1.States() != c2.States() {
			continue
		}
		if err := rule(rng, c1, c2); err != nil {
			return nil, nil, err
		}
	}
	return childA, childB, nil
}

// UniformCrossover swaps the two chromosomes' values at every locus
// independently with a fixed probability.
type UniformCrossover struct {
	indexProbability float64
}

// NewUniformCrossover validates the per-index swap probability.
func NewUniformCrossover(indexProbability float64) (*UniformCrossover, error) {
	if indexProbability < 0 || indexProbability > 1 {
		return nil, fmt.Errorf("index probability must be in [0, 1], got %g", indexProbability)
	}
	return &UniformCrossover{indexProbability: indexProbability}, nil
}

func (*UniformCrossover) Name() string { return "uniform" }

func (x *UniformCrossover) Cross(rng *rand.Rand, a, b genetics.Genotype) (genetics.Genotype, genetics.Genotype, error) {
	return crossPair(rng, a, b, func(rng *rand.Rand, c1, c2 *genetics.Chromosome) error {
		loci := min(c1.Len(), c2.Len())
		for i := 0; i < loci; i++ {
			if rng.Float64() < x.indexProbability {
				v1, v2 := c1.At(i), c2.At(i)
				if err := c1.Set(i, v2); err != nil {
					return err
				}
				if err := c2.Set(i, v1); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// MultiPointCrossover draws n random cut points and swaps alternating
// segments between them: the first segment stays, the second swaps, and so
// on.
type MultiPointCrossover struct {
	points int
}

// NewMultiPoint validates the cut point count, which must be at least 1.
func NewMultiPoint(points int) (*MultiPointCrossover, error) {
	if points < 1 {
		return nil, fmt.Errorf("cut point count must be >= 1, got %d", points)
	}
	return &MultiPointCrossover{points: points}, nil
}

// NewOnePoint is a single-cut crossover.
func NewOnePoint() *MultiPointCrossover { return &MultiPointCrossover{points: 1} }

// NewTwoPoint is a two-cut crossover.
func NewTwoPoint() *MultiPointCrossover { return &MultiPointCrossover{points: 2} }

func (*MultiPointCrossover) Name() string { return "multipoint" }

func (x *MultiPointCrossover) Cross(rng *rand.Rand, a, b genetics.Genotype) (genetics.Genotype, genetics.Genotype, error) {
	return crossPair(rng, a, b, func(rng *rand.Rand, c1, c2 *genetics.Chromosome) error {
		loci := min(c1.Len(), c2.Len())
		if loci == 0 {
			return nil
		}
		points := make([]int, x.points)
		for i := range points {
			points[i] = rng.Intn(loci)
		}
		sort.Ints(points)
		swapSegments(c1, c2, points)
		return nil
	})
}

// swapSegments exchanges every second segment delimited by the sorted cut
// points, in place on both chromosomes.
func swapSegments(c1, c2 *genetics.Chromosome, points []int) {
	loci := min(c1.Len(), c2.Len())
	bounds := append(append([]int{0}, points...), loci)
	for seg := 1; seg+1 < len(bounds); seg += 2 {
		for i := bounds[seg]; i < bounds[seg+1]; i++ {
			v1, v2 := c1.At(i), c2.At(i)
			_ = c1.Set(i, v2)
			_ = c2.Set(i, v1)
		}
	}
}
