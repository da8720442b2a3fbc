package genetics

import (
	"time"

	"github.com/google/uuid"
)

// Metadata carries the identity and lineage of a genotype. Generation is 1
// for founding individuals and grows by one per crossover. Score is nil
// until the genotype has been evaluated.
type Metadata struct {
	ID         uuid.UUID
	Experiment string
	Created    time.Time
	Parents    []uuid.UUID
	Generation int
	Score      *float64
}

// NewMetadata returns founding-population metadata: fresh id, no parents,
// generation 1, unscored.
func NewMetadata() Metadata {
	return Metadata{
		ID:         uuid.New(),
		Created:    time.Now().UTC(),
		Generation: 1,
	}
}

// CloneValue returns a deep copy of the metadata with a fresh id and the
// score reset. Parents and generation carry over unchanged.
func (m Metadata) CloneValue() Metadata {
	clone := m
	clone.ID = uuid.New()
	clone.Score = nil
	clone.Parents = append([]uuid.UUID(nil), m.Parents...)
	return clone
}

// ChromosomeRef names one chromosome-bearing field of a genotype. Nested
// collections flatten to indexed names such as "plasmids[2]".
type ChromosomeRef struct {
	Name       string
	Chromosome *Chromosome
}

// Genotype is the contract every genetic model implements. Chromosomes
// returns live references to the genotype's own chromosomes in a fixed
// declared order, so operators iterate an explicit schema instead of
// reflecting over fields. Clone produces a deep copy with a fresh id and
// the score reset.
type Genotype interface {
	Meta() *Metadata
	Chromosomes() []ChromosomeRef
	Clone() Genotype
}

// Replicate deep-copies a genotype preserving its identity: same id,
// parents, generation and score. Mutation and isolated evaluation work on
// replicas so the original is never shared.
func Replicate(g Genotype) Genotype {
	replica := g.Clone()
	meta := replica.Meta()
	src := g.Meta()
	meta.ID = src.ID
	meta.Experiment = src.Experiment
	meta.Created = src.Created
	meta.Parents = append([]uuid.UUID(nil), src.Parents...)
	meta.Generation = src.Generation
	if src.Score != nil {
		score := *src.Score
		meta.Score = &score
	}
	return replica
}

// Equal reports structural equality: same schema length and element-wise
// equal chromosomes. Identity metadata is ignored.
func Equal(a, b Genotype) bool {
	refsA, refsB := a.Chromosomes(), b.Chromosomes()
	if len(refsA) != len(refsB) {
		return false
	}
	for i := range refsA {
		if !refsA[i].Chromosome.Equal(refsB[i].Chromosome) {
			return false
		}
	}
	return true
}
