package genetics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// stubGenotype is a minimal single-chromosome genotype for package tests.
type stubGenotype struct {
	meta       Metadata
	chromosome *Chromosome
}

func newStubGenotype(rng *rand.Rand, size int) *stubGenotype {
	return &stubGenotype{meta: NewMetadata(), chromosome: RandomHaploid(rng, size)}
}

func (s *stubGenotype) Meta() *Metadata { return &s.meta }

func (s *stubGenotype) Chromosomes() []ChromosomeRef {
	return []ChromosomeRef{{Name: "chromosome", Chromosome: s.chromosome}}
}

func (s *stubGenotype) Clone() Genotype {
	return &stubGenotype{meta: s.meta.CloneValue(), chromosome: s.chromosome.Clone()}
}

func TestNewMetadataFoundingDefaults(t *testing.T) {
	meta := NewMetadata()
	require.NotEqual(t, uuid.Nil, meta.ID)
	require.Equal(t, 1, meta.Generation)
	require.Empty(t, meta.Parents)
	require.Nil(t, meta.Score)
	require.WithinDuration(t, time.Now().UTC(), meta.Created, time.Minute)
}

func TestNewMetadataUniqueIDs(t *testing.T) {
	seen := map[uuid.UUID]bool{}
	for i := 0; i < 100; i++ {
		meta := NewMetadata()
		require.False(t, seen[meta.ID])
		seen[meta.ID] = true
	}
}

func TestCloneValueFreshIdentity(t *testing.T) {
	score := 0.5
	parent := uuid.New()
	meta := NewMetadata()
	meta.Score = &score
	meta.Parents = []uuid.UUID{parent}
	meta.Generation = 4

	clone := meta.CloneValue()
	require.NotEqual(t, meta.ID, clone.ID)
	require.Nil(t, clone.Score)
	require.Equal(t, 4, clone.Generation)
	require.Equal(t, []uuid.UUID{parent}, clone.Parents)

	clone.Parents[0] = uuid.New()
	require.Equal(t, parent, meta.Parents[0], "parents must be deep-copied")
}

func TestReplicatePreservesIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	original := newStubGenotype(rng, 8)
	score := 0.75
	original.meta.Score = &score
	original.meta.Generation = 3
	original.meta.Parents = []uuid.UUID{uuid.New(), uuid.New()}
	original.meta.Experiment = "exp"

	replica := Replicate(original)
	require.Equal(t, original.meta.ID, replica.Meta().ID)
	require.Equal(t, original.meta.Experiment, replica.Meta().Experiment)
	require.Equal(t, original.meta.Generation, replica.Meta().Generation)
	require.Equal(t, original.meta.Parents, replica.Meta().Parents)
	require.NotNil(t, replica.Meta().Score)
	require.Equal(t, score, *replica.Meta().Score)
	require.True(t, Equal(original, replica))

	// The replica owns its own chromosomes and score.
	require.NoError(t, replica.Chromosomes()[0].Chromosome.Set(0, 1-original.chromosome.At(0)))
	require.False(t, Equal(original, replica))
	*replica.Meta().Score = 0.1
	require.Equal(t, 0.75, *original.meta.Score)
}

func TestEqualIgnoresIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := newStubGenotype(rng, 16)
	b := a.Clone()
	require.NotEqual(t, a.Meta().ID, b.Meta().ID)
	require.True(t, Equal(a, b))

	require.NoError(t, b.Chromosomes()[0].Chromosome.Set(3, 1-a.chromosome.At(3)))
	require.False(t, Equal(a, b))
}

func TestToRecordFlattens(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := newStubGenotype(rng, 6)
	score := 0.25
	parent := uuid.New()
	g.meta.Score = &score
	g.meta.Parents = []uuid.UUID{parent}
	g.meta.Experiment = "exp-a"
	g.meta.Generation = 2

	rec := ToRecord(g)
	require.Equal(t, g.meta.ID.String(), rec.ID)
	require.Equal(t, "exp-a", rec.Experiment)
	require.Equal(t, 2, rec.Generation)
	require.Equal(t, []string{parent.String()}, rec.Parents)
	require.NotNil(t, rec.Score)
	require.Equal(t, score, *rec.Score)
	require.Equal(t, g.chromosome.Values(), rec.Chromosomes["chromosome"])

	// The record holds copies, not live references.
	rec.Chromosomes["chromosome"][0] = 1 - g.chromosome.At(0)
	require.NotEqual(t, rec.Chromosomes["chromosome"][0], g.chromosome.At(0))
}

func TestFromRecordRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	g := newStubGenotype(rng, 10)
	score := 0.9
	g.meta.Score = &score
	g.meta.Parents = []uuid.UUID{uuid.New()}
	g.meta.Generation = 5
	g.meta.Experiment = "exp-b"

	restored, err := FromRecord(ToRecord(g), func() Genotype {
		return newStubGenotype(rand.New(rand.NewSource(0)), 10)
	})
	require.NoError(t, err)
	require.Equal(t, g.meta.ID, restored.Meta().ID)
	require.Equal(t, g.meta.Parents, restored.Meta().Parents)
	require.Equal(t, g.meta.Generation, restored.Meta().Generation)
	require.Equal(t, g.meta.Experiment, restored.Meta().Experiment)
	require.NotNil(t, restored.Meta().Score)
	require.Equal(t, score, *restored.Meta().Score)
	require.True(t, Equal(g, restored))
}

func TestFromRecordErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	prototype := func() Genotype { return newStubGenotype(rand.New(rand.NewSource(0)), 10) }

	rec := ToRecord(newStubGenotype(rng, 10))
	rec.ID = "not-a-uuid"
	_, err := FromRecord(rec, prototype)
	require.Error(t, err)

	rec = ToRecord(newStubGenotype(rng, 10))
	rec.Parents = []string{"bogus"}
	_, err = FromRecord(rec, prototype)
	require.Error(t, err)

	rec = ToRecord(newStubGenotype(rng, 10))
	delete(rec.Chromosomes, "chromosome")
	_, err = FromRecord(rec, prototype)
	require.Error(t, err)

	// Prototype shape must match the recorded array length.
	rec = ToRecord(newStubGenotype(rng, 10))
	_, err = FromRecord(rec, func() Genotype { return newStubGenotype(rand.New(rand.NewSource(0)), 4) })
	require.Error(t, err)
}
