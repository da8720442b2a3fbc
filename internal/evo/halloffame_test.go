package evo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHallOfFameValidatesMaxSize(t *testing.T) {
	_, err := NewHallOfFame(0)
	require.Error(t, err)
	_, err = NewHallOfFame(-1)
	require.Error(t, err)

	h, err := NewHallOfFame(3)
	require.NoError(t, err)
	require.Equal(t, 3, h.MaxSize())
	require.Equal(t, 0, h.Len())
}

func TestHallOfFameKeepsTopMaxSize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	h, err := NewHallOfFame(3)
	require.NoError(t, err)

	require.NoError(t, h.Update(scoredPool(t, rng, 8, 0.1, 0.5, 0.3, 0.9, 0.7), 1))
	require.Equal(t, 3, h.Len())
	require.Equal(t, 0.9, h.At(0).Score)
	require.Equal(t, 0.7, h.At(1).Score)
	require.Equal(t, 0.5, h.At(2).Score)
}

func TestHallOfFameMergesAcrossGenerations(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	h, err := NewHallOfFame(3)
	require.NoError(t, err)

	require.NoError(t, h.Update(scoredPool(t, rng, 8, 0.4, 0.6), 1))
	require.NoError(t, h.Update(scoredPool(t, rng, 8, 0.5, 0.2), 2))

	require.Equal(t, 3, h.Len())
	require.Equal(t, []float64{0.6, 0.5, 0.4}, []float64{h.At(0).Score, h.At(1).Score, h.At(2).Score})
	require.Equal(t, 1, h.At(0).Generation)
	require.Equal(t, 2, h.At(1).Generation)
	require.Equal(t, 1, h.At(2).Generation)
}

func TestHallOfFameTieBreakOldBeatsNew(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	h, err := NewHallOfFame(1)
	require.NoError(t, err)

	veteran := scoredPool(t, rng, 8, 0.8)
	veteranID := veteran.At(0).Genotype.Meta().ID
	require.NoError(t, h.Update(veteran, 1))

	challenger := scoredPool(t, rng, 8, 0.8)
	require.NoError(t, h.Update(challenger, 5))

	require.Equal(t, veteranID, h.At(0).Genotype.Meta().ID, "equal score must not displace the older champion")
	require.Equal(t, 1, h.At(0).Generation)

	// A strictly better score does displace it.
	require.NoError(t, h.Update(scoredPool(t, rng, 8, 0.81), 6))
	require.Equal(t, 0.81, h.At(0).Score)
	require.Equal(t, 6, h.At(0).Generation)
}

func TestHallOfFameNegativeIndexing(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	h, err := NewHallOfFame(4)
	require.NoError(t, err)
	require.NoError(t, h.Update(scoredPool(t, rng, 8, 0.9, 0.3, 0.6), 1))

	require.Equal(t, 0.3, h.At(-1).Score)
	require.Equal(t, 0.6, h.At(-2).Score)
}

func TestHallOfFameSetMaxSizeShrinks(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	h, err := NewHallOfFame(5)
	require.NoError(t, err)
	require.NoError(t, h.Update(scoredPool(t, rng, 8, 0.1, 0.2, 0.3, 0.4, 0.5), 1))
	require.Equal(t, 5, h.Len())

	require.NoError(t, h.SetMaxSize(2))
	require.Equal(t, 2, h.Len())
	require.Equal(t, []float64{0.5, 0.4}, []float64{h.At(0).Score, h.At(1).Score})

	require.Error(t, h.SetMaxSize(0))
}

func TestHallOfFameUpdateValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	h, err := NewHallOfFame(2)
	require.NoError(t, err)

	require.Error(t, h.Update(nil, 1))
	require.Error(t, h.Update(scoredPool(t, rng, 8, 0.5), -1))
	require.NoError(t, h.Update(scoredPool(t, rng, 8, 0.5), 0), "generation 0 tags the entry evaluation")
}

func TestHallOfFameEntriesIsACopy(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	h, err := NewHallOfFame(2)
	require.NoError(t, err)
	require.NoError(t, h.Update(scoredPool(t, rng, 8, 0.5, 0.6), 1))

	entries := h.Entries()
	entries[0] = Entry{}
	require.Equal(t, 0.6, h.At(0).Score)
}
