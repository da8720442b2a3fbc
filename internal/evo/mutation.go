package evo

import (
	"fmt"
	"math/rand"

	"gevo/internal/genetics"
)

// Mutation perturbs one genotype's chromosomes. The result is a new object
// keeping the original's id, parents and generation; mutation is a
// feature-level perturbation, not a lineage event.
type Mutation interface {
	Name() string
	Mutate(rng *rand.Rand, g genetics.Genotype) (genetics.Genotype, error)
}

// SinglePointMutation resamples each locus independently with a fixed
// probability. A resample draws uniformly over the state space, so it may
// reproduce the original value.
type SinglePointMutation struct {
	mutationProbability float64
}

// NewSinglePoint validates the per-locus mutation probability.
func NewSinglePoint(mutationProbability float64) (*SinglePointMutation, error) {
	if mutationProbability < 0 || mutationProbability > 1 {
		return nil, fmt.Errorf("mutation probability must be in [0, 1], got %g", mutationProbability)
	}
	return &SinglePointMutation{mutationProbability: mutationProbability}, nil
}

func (*SinglePointMutation) Name() string { return "single_point" }

func (m *SinglePointMutation) Mutate(rng *rand.Rand, g genetics.Genotype) (genetics.Genotype, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if g == nil {
		return nil, fmt.Errorf("genotype is required")
	}

	mutated := genetics.Replicate(g)
	for _, ref := range mutated.Chromosomes() {
		chromosome := ref.Chromosome
		for i := 0; i < chromosome.Len(); i++ {
			if rng.Float64() < m.mutationProbability {
				if err := chromosome.Set(i, chromosome.ResampleLocus(rng)); err != nil {
					return nil, err
				}
			}
		}
	}
	return mutated, nil
}
