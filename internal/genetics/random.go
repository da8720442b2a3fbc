package genetics

import "math/rand"

// Random chromosome generators. Each locus is drawn uniformly from the
// ploidy's state space using the supplied source.

func RandomHaploid(rng *rand.Rand, size int) *Chromosome {
	return randomChromosome(rng, size, HaploidStates)
}

func RandomDiploid(rng *rand.Rand, size int) *Chromosome {
	return randomChromosome(rng, size, DiploidStates)
}

func RandomTriploid(rng *rand.Rand, size int) *Chromosome {
	return randomChromosome(rng, size, TriploidStates)
}

func randomChromosome(rng *rand.Rand, size int, states uint8) *Chromosome {
	values := make([]uint8, size)
	for i := range values {
		values[i] = uint8(rng.Intn(int(states)))
	}
	return &Chromosome{states: states, values: values}
}

// ResampleLocus draws one fresh uniform value from the chromosome's state
// space. Used by mutation to replace a masked locus; the draw may by chance
// reproduce the current value.
func (c *Chromosome) ResampleLocus(rng *rand.Rand) uint8 {
	return uint8(rng.Intn(int(c.states)))
}
