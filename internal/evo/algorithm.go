package evo

import (
	"fmt"
	"math"
	"math/rand"

	"gevo/internal/genetics"
)

// Algorithm turns one ranked, scored population into the next generation's
// unscored population.
type Algorithm interface {
	Name() string
	RunCycle(rng *rand.Rand, pool *Pool) ([]genetics.Genotype, error)
}

// StandardConfig composes the operators of the standard generational
// algorithm. All four operators are required; SurvivalRate is the fraction
// of the population protected from replacement each cycle.
type StandardConfig struct {
	Selection1   Selection
	Selection2   Selection
	Crossover    Crossover
	Mutation     Mutation
	SurvivalRate float64
}

// Standard is the classic generational transition: the top survivors are
// kept untouched, the rest of the slots are refilled with mutated first
// children of crossed parent pairs selected from the full population.
type Standard struct {
	cfg StandardConfig
}

// NewStandard validates the operator composition at construction.
func NewStandard(cfg StandardConfig) (*Standard, error) {
	if cfg.Selection1 == nil {
		return nil, fmt.Errorf("selection1 is required")
	}
	if cfg.Selection2 == nil {
		return nil, fmt.Errorf("selection2 is required")
	}
	if cfg.Crossover == nil {
		return nil, fmt.Errorf("crossover is required")
	}
	if cfg.Mutation == nil {
		return nil, fmt.Errorf("mutation is required")
	}
	if cfg.SurvivalRate < 0 || cfg.SurvivalRate > 1 {
		return nil, fmt.Errorf("survival rate must be in [0, 1], got %g", cfg.SurvivalRate)
	}
	return &Standard{cfg: cfg}, nil
}

func (*Standard) Name() string { return "standard" }

// RunCycle executes one generational step: skim survivors, select parent
// pairs from the full pool, cross each pair keeping the first child, mutate
// the offspring, and return survivors plus offspring.
func (a *Standard) RunCycle(rng *rand.Rand, pool *Pool) ([]genetics.Genotype, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}

	survivorCount := int(math.Ceil(float64(pool.Len()) * a.cfg.SurvivalRate))
	survivors := pool.Genotypes()[:survivorCount]
	rest := pool.Len() - survivorCount
	if rest == 0 {
		return append([]genetics.Genotype(nil), survivors...), nil
	}

	selected1, err := a.cfg.Selection1.Select(rng, pool, rest)
	if err != nil {
		return nil, fmt.Errorf("selection1: %w", err)
	}
	selected2, err := a.cfg.Selection2.Select(rng, pool, rest)
	if err != nil {
		return nil, fmt.Errorf("selection2: %w", err)
	}

	offspring := make([]genetics.Genotype, 0, rest)
	for i := 0; i < rest; i++ {
		child, _, err := a.cfg.Crossover.Cross(rng, selected1[i], selected2[i])
		if err != nil {
			return nil, fmt.Errorf("crossover: %w", err)
		}
		mutated, err := a.cfg.Mutation.Mutate(rng, child)
		if err != nil {
			return nil, fmt.Errorf("mutation: %w", err)
		}
		offspring = append(offspring, mutated)
	}

	next := make([]genetics.Genotype, 0, pool.Len())
	next = append(next, survivors...)
	next = append(next, offspring...)
	return next, nil
}
