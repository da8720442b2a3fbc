package evo

import (
	"fmt"

	"gevo/internal/genetics"
)

// Entry is one archived genotype with the score and generation it earned.
type Entry struct {
	Score      float64
	Generation int
	Genotype   genetics.Genotype
}

// HallOfFame is a bounded archive of the best genotypes ever seen, sorted
// by score descending with generation ascending as tie-break: a proven
// champion is never displaced by an unproven equal-score newcomer.
type HallOfFame struct {
	maxSize int
	entries []Entry
}

// NewHallOfFame builds an empty archive with the given capacity.
func NewHallOfFame(maxSize int) (*HallOfFame, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("maxsize must be > 0, got %d", maxSize)
	}
	return &HallOfFame{maxSize: maxSize}, nil
}

func (h *HallOfFame) Len() int     { return len(h.entries) }
func (h *HallOfFame) MaxSize() int { return h.maxSize }

// At returns the entry at rank i, best first. Negative indices count from
// the tail.
func (h *HallOfFame) At(i int) Entry {
	if i < 0 {
		i += len(h.entries)
	}
	return h.entries[i]
}

// Entries returns a copy of the archive in rank order.
func (h *HallOfFame) Entries() []Entry {
	return append([]Entry(nil), h.entries...)
}

// SetMaxSize changes the capacity. Shrinking truncates immediately,
// dropping the lowest-ranked entries.
func (h *HallOfFame) SetMaxSize(maxSize int) error {
	if maxSize <= 0 {
		return fmt.Errorf("maxsize must be > 0, got %d", maxSize)
	}
	h.maxSize = maxSize
	if len(h.entries) > maxSize {
		h.entries = h.entries[:maxSize:maxSize]
	}
	return nil
}

// Update merges the pool's items, tagged with the given generation, into
// the archive and keeps the top maxsize by (score desc, generation asc).
// Both inputs are already ordered, so this is a linear merge.
func (h *HallOfFame) Update(pool *Pool, generation int) error {
	if pool == nil {
		return fmt.Errorf("pool is required")
	}
	if generation < 0 {
		return fmt.Errorf("generation must be >= 0, got %d", generation)
	}

	merged := make([]Entry, 0, h.maxSize)
	i, j := 0, 0
	for len(merged) < h.maxSize && (i < len(h.entries) || j < pool.Len()) {
		switch {
		case i >= len(h.entries):
			item := pool.At(j)
			merged = append(merged, Entry{Score: item.Score, Generation: generation, Genotype: item.Genotype})
			j++
		case j >= pool.Len():
			merged = append(merged, h.entries[i])
			i++
		case h.entries[i].ranksAbove(pool.At(j).Score, generation):
			merged = append(merged, h.entries[i])
			i++
		default:
			item := pool.At(j)
			merged = append(merged, Entry{Score: item.Score, Generation: generation, Genotype: item.Genotype})
			j++
		}
	}
	h.entries = merged
	return nil
}

// ranksAbove reports whether the archived entry outranks a candidate with
// the given score and generation. On equal scores the older generation
// wins.
func (e Entry) ranksAbove(score float64, generation int) bool {
	if e.Score != score {
		return e.Score > score
	}
	return e.Generation <= generation
}
