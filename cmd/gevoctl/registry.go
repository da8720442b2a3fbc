package main

import (
	"context"
	"fmt"
	"math/rand"

	"gevo/internal/evo"
	"gevo/internal/fitness"
	"gevo/internal/genetics"
	"gevo/internal/species"
)

func selectionFromName(name string, tournamentSize int) (evo.Selection, error) {
	switch name {
	case "uniform":
		return evo.UniformSelection{}, nil
	case "ponderated":
		return evo.PonderatedSelection{}, nil
	case "best":
		return evo.BestSelection{}, nil
	case "worst":
		return evo.WorstSelection{}, nil
	case "tournaments":
		if tournamentSize > 0 {
			return evo.NewTournaments(tournamentSize)
		}
		return evo.DefaultTournaments(), nil
	default:
		return nil, fmt.Errorf("unknown selection: %s", name)
	}
}

func crossoverFromName(name string, points int, indexProbability float64) (evo.Crossover, error) {
	switch name {
	case "uniform":
		return evo.NewUniformCrossover(indexProbability)
	case "one_point":
		return evo.NewOnePoint(), nil
	case "two_point":
		return evo.NewTwoPoint(), nil
	case "multi_point":
		return evo.NewMultiPoint(points)
	default:
		return nil, fmt.Errorf("unknown crossover: %s", name)
	}
}

func mutationFromName(name string, mutationProbability float64) (evo.Mutation, error) {
	switch name {
	case "single_point":
		return evo.NewSinglePoint(mutationProbability)
	default:
		return nil, fmt.Errorf("unknown mutation: %s", name)
	}
}

// speciesFromName returns a generator for the initial population and a
// prototype factory with matching chromosome shapes for record decoding.
func speciesFromName(name string, size, pairs int) (func(rng *rand.Rand) genetics.Genotype, func() genetics.Genotype, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("chromosome size must be > 0, got %d", size)
	}
	switch name {
	case "bacteria":
		generate := func(rng *rand.Rand) genetics.Genotype { return species.NewBacteria(rng, size) }
		prototype := func() genetics.Genotype { return species.NewBacteria(rand.New(rand.NewSource(0)), size) }
		return generate, prototype, nil
	case "jackjumper":
		generate := func(rng *rand.Rand) genetics.Genotype { return species.NewJackJumper(rng, size) }
		prototype := func() genetics.Genotype { return species.NewJackJumper(rand.New(rand.NewSource(0)), size) }
		return generate, prototype, nil
	case "eukaryote":
		if pairs <= 0 {
			return nil, nil, fmt.Errorf("eukaryote pairs must be > 0, got %d", pairs)
		}
		generate := func(rng *rand.Rand) genetics.Genotype { return species.NewEukaryote(rng, pairs, size) }
		prototype := func() genetics.Genotype { return species.NewEukaryote(rand.New(rand.NewSource(0)), pairs, size) }
		return generate, prototype, nil
	default:
		return nil, nil, fmt.Errorf("unknown species: %s", name)
	}
}

func newStandardAlgorithm(sel1, sel2 evo.Selection, crossover evo.Crossover, mutation evo.Mutation, survivalRate float64) (evo.Algorithm, error) {
	return evo.NewStandard(evo.StandardConfig{
		Selection1:   sel1,
		Selection2:   sel2,
		Crossover:    crossover,
		Mutation:     mutation,
		SurvivalRate: survivalRate,
	})
}

func fitnessFromName(name string) (fitness.Function, error) {
	switch name {
	case "zero_count":
		return fitness.FunctionFunc(zeroCountScore), nil
	default:
		return nil, fmt.Errorf("unknown fitness function: %s", name)
	}
}

// zeroCountScore rewards zero-valued loci, normalized to [0,1] over all
// chromosomes of the genotype.
func zeroCountScore(_ context.Context, g genetics.Genotype) (float64, error) {
	zeros, total := 0, 0
	for _, ref := range g.Chromosomes() {
		for i := 0; i < ref.Chromosome.Len(); i++ {
			if ref.Chromosome.At(i) == 0 {
				zeros++
			}
			total++
		}
	}
	if total == 0 {
		return 0, fmt.Errorf("genotype %s has no loci to score", g.Meta().ID)
	}
	return float64(zeros) / float64(total), nil
}
