package evo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"gevo/internal/genetics"
	"gevo/internal/species"
)

// scoredBacteria builds a random haploid genotype carrying a score.
func scoredBacteria(rng *rand.Rand, size int, score float64) genetics.Genotype {
	b := species.NewBacteria(rng, size)
	b.Meta().Score = &score
	return b
}

// triploidGenotype exercises the widest state space in operator tests.
type triploidGenotype struct {
	meta       genetics.Metadata
	chromosome *genetics.Chromosome
}

func newTriploidGenotype(rng *rand.Rand, size int) *triploidGenotype {
	return &triploidGenotype{meta: genetics.NewMetadata(), chromosome: genetics.RandomTriploid(rng, size)}
}

func (g *triploidGenotype) Meta() *genetics.Metadata { return &g.meta }

func (g *triploidGenotype) Chromosomes() []genetics.ChromosomeRef {
	return []genetics.ChromosomeRef{{Name: "chromosome", Chromosome: g.chromosome}}
}

func (g *triploidGenotype) Clone() genetics.Genotype {
	return &triploidGenotype{meta: g.meta.CloneValue(), chromosome: g.chromosome.Clone()}
}

// scoredPool builds a pool of random haploid genotypes with the given
// scores, in the given order.
func scoredPool(t *testing.T, rng *rand.Rand, size int, scores ...float64) *Pool {
	t.Helper()
	genotypes := make([]genetics.Genotype, len(scores))
	for i, score := range scores {
		genotypes[i] = scoredBacteria(rng, size, score)
	}
	pool, err := NewPool(genotypes)
	require.NoError(t, err)
	return pool
}
