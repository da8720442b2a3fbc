// Package species provides ready-made genotype definitions. They mirror the
// classic textbook models: a haploid bacterium, a diploid jack jumper ant
// and a eukaryote with a set of paired chromosomes.
package species

import (
	"fmt"
	"math/rand"

	"gevo/internal/genetics"
)

// Bacteria is the most basic genotype: a single haploid chromosome.
type Bacteria struct {
	meta       genetics.Metadata
	Chromosome *genetics.Chromosome
}

// NewBacteria builds a founding bacteria with a uniformly random haploid
// chromosome of the given size.
func NewBacteria(rng *rand.Rand, size int) *Bacteria {
	return &Bacteria{
		meta:       genetics.NewMetadata(),
		Chromosome: genetics.RandomHaploid(rng, size),
	}
}

func (b *Bacteria) Meta() *genetics.Metadata { return &b.meta }

func (b *Bacteria) Chromosomes() []genetics.ChromosomeRef {
	return []genetics.ChromosomeRef{{Name: "chromosome", Chromosome: b.Chromosome}}
}

func (b *Bacteria) Clone() genetics.Genotype {
	return &Bacteria{
		meta:       b.meta.CloneValue(),
		Chromosome: b.Chromosome.Clone(),
	}
}

// JackJumper carries a single diploid chromosome, each locus spanning four
// states.
type JackJumper struct {
	meta       genetics.Metadata
	Chromosome *genetics.Chromosome
}

func NewJackJumper(rng *rand.Rand, size int) *JackJumper {
	return &JackJumper{
		meta:       genetics.NewMetadata(),
		Chromosome: genetics.RandomDiploid(rng, size),
	}
}

func (j *JackJumper) Meta() *genetics.Metadata { return &j.meta }

func (j *JackJumper) Chromosomes() []genetics.ChromosomeRef {
	return []genetics.ChromosomeRef{{Name: "chromosome", Chromosome: j.Chromosome}}
}

func (j *JackJumper) Clone() genetics.Genotype {
	return &JackJumper{
		meta:       j.meta.CloneValue(),
		Chromosome: j.Chromosome.Clone(),
	}
}

// Eukaryote carries a list of diploid chromosomes. It exercises the nested
// chromosome-collection case of the genotype schema.
type Eukaryote struct {
	meta  genetics.Metadata
	Pairs []*genetics.Chromosome
}

// NewEukaryote builds a founding eukaryote with `pairs` random diploid
// chromosomes of the given size.
func NewEukaryote(rng *rand.Rand, pairs, size int) *Eukaryote {
	chromosomes := make([]*genetics.Chromosome, pairs)
	for i := range chromosomes {
		chromosomes[i] = genetics.RandomDiploid(rng, size)
	}
	return &Eukaryote{meta: genetics.NewMetadata(), Pairs: chromosomes}
}

func (e *Eukaryote) Meta() *genetics.Metadata { return &e.meta }

func (e *Eukaryote) Chromosomes() []genetics.ChromosomeRef {
	refs := make([]genetics.ChromosomeRef, len(e.Pairs))
	for i, chromosome := range e.Pairs {
		refs[i] = genetics.ChromosomeRef{
			Name:       fmt.Sprintf("pairs[%d]", i),
			Chromosome: chromosome,
		}
	}
	return refs
}

func (e *Eukaryote) Clone() genetics.Genotype {
	pairs := make([]*genetics.Chromosome, len(e.Pairs))
	for i, chromosome := range e.Pairs {
		pairs[i] = chromosome.Clone()
	}
	return &Eukaryote{meta: e.meta.CloneValue(), Pairs: pairs}
}
