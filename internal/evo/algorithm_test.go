package evo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func standardConfigForTest(t *testing.T, survivalRate float64) StandardConfig {
	t.Helper()
	mutation, err := NewSinglePoint(0.1)
	require.NoError(t, err)
	return StandardConfig{
		Selection1:   PonderatedSelection{},
		Selection2:   UniformSelection{},
		Crossover:    NewOnePoint(),
		Mutation:     mutation,
		SurvivalRate: survivalRate,
	}
}

func TestNewStandardValidation(t *testing.T) {
	base := standardConfigForTest(t, 0.2)

	cfg := base
	cfg.Selection1 = nil
	_, err := NewStandard(cfg)
	require.Error(t, err)

	cfg = base
	cfg.Selection2 = nil
	_, err = NewStandard(cfg)
	require.Error(t, err)

	cfg = base
	cfg.Crossover = nil
	_, err = NewStandard(cfg)
	require.Error(t, err)

	cfg = base
	cfg.Mutation = nil
	_, err = NewStandard(cfg)
	require.Error(t, err)

	cfg = base
	cfg.SurvivalRate = -0.1
	_, err = NewStandard(cfg)
	require.Error(t, err)

	cfg = base
	cfg.SurvivalRate = 1.1
	_, err = NewStandard(cfg)
	require.Error(t, err)

	algorithm, err := NewStandard(base)
	require.NoError(t, err)
	require.Equal(t, "standard", algorithm.Name())
}

func TestStandardRunCycleArgsValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	algorithm, err := NewStandard(standardConfigForTest(t, 0.2))
	require.NoError(t, err)

	_, err = algorithm.RunCycle(nil, scoredPool(t, rng, 8, 0.5))
	require.Error(t, err)
	_, err = algorithm.RunCycle(rng, nil)
	require.Error(t, err)
}

func TestStandardGenerationalTransition(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	scores := []float64{0.95, 0.9, 0.5, 0.45, 0.4, 0.35, 0.3, 0.25, 0.2, 0.1}
	pool := scoredPool(t, rng, 12, scores...)
	survivorIDs := []string{
		pool.At(0).Genotype.Meta().ID.String(),
		pool.At(1).Genotype.Meta().ID.String(),
	}

	algorithm, err := NewStandard(standardConfigForTest(t, 0.2))
	require.NoError(t, err)
	next, err := algorithm.RunCycle(rng, pool)
	require.NoError(t, err)
	require.Len(t, next, 10, "population size is preserved")

	// The top ceil(10*0.2)=2 survive unchanged, ids included.
	require.Equal(t, survivorIDs[0], next[0].Meta().ID.String())
	require.Equal(t, survivorIDs[1], next[1].Meta().ID.String())
	require.NotNil(t, next[0].Meta().Score)
	require.NotNil(t, next[1].Meta().Score)

	// The remaining 8 slots hold fresh offspring of the next generation.
	seen := map[string]bool{}
	for _, offspring := range next[2:] {
		meta := offspring.Meta()
		require.False(t, pool.Contains(offspring), "offspring ids are new")
		require.False(t, seen[meta.ID.String()])
		seen[meta.ID.String()] = true
		require.Equal(t, 2, meta.Generation)
		require.Len(t, meta.Parents, 2)
		require.Nil(t, meta.Score, "offspring enter the next cycle unscored")
		require.Equal(t, 12, offspring.Chromosomes()[0].Chromosome.Len())
	}
}

func TestStandardSurvivalRateZeroReplacesEveryone(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pool := scoredPool(t, rng, 8, 0.9, 0.5, 0.1)

	algorithm, err := NewStandard(standardConfigForTest(t, 0))
	require.NoError(t, err)
	next, err := algorithm.RunCycle(rng, pool)
	require.NoError(t, err)
	require.Len(t, next, 3)
	for _, offspring := range next {
		require.False(t, pool.Contains(offspring))
		require.Equal(t, 2, offspring.Meta().Generation)
	}
}

func TestStandardSurvivalRateOneKeepsEveryone(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pool := scoredPool(t, rng, 8, 0.9, 0.5, 0.1)

	algorithm, err := NewStandard(standardConfigForTest(t, 1))
	require.NoError(t, err)
	next, err := algorithm.RunCycle(rng, pool)
	require.NoError(t, err)
	require.Len(t, next, 3)
	for i, survivor := range next {
		require.Equal(t, pool.At(i).Genotype.Meta().ID, survivor.Meta().ID)
	}
}

func TestStandardFractionalSurvivorCountRoundsUp(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	pool := scoredPool(t, rng, 8, 0.9, 0.7, 0.5, 0.3, 0.1)

	// ceil(5*0.3)=2 survivors.
	algorithm, err := NewStandard(standardConfigForTest(t, 0.3))
	require.NoError(t, err)
	next, err := algorithm.RunCycle(rng, pool)
	require.NoError(t, err)
	require.Len(t, next, 5)
	require.Equal(t, pool.At(0).Genotype.Meta().ID, next[0].Meta().ID)
	require.Equal(t, pool.At(1).Genotype.Meta().ID, next[1].Meta().ID)
	require.False(t, pool.Contains(next[2]))
}
