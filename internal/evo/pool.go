package evo

import (
	"fmt"
	"sort"

	"gevo/internal/genetics"
)

// Item pairs a genotype with its evaluated score.
type Item struct {
	Score    float64
	Genotype genetics.Genotype
}

// Pool is the ranked population snapshot of one generation. It is built
// once from scored genotypes and kept sorted by descending score for its
// whole lifetime; it offers no structural mutation.
type Pool struct {
	items []Item
}

// NewPool builds a pool from scored genotypes. Every genotype must carry a
// score; unscored genotypes must not enter a pool.
func NewPool(genotypes []genetics.Genotype) (*Pool, error) {
	items := make([]Item, 0, len(genotypes))
	for i, g := range genotypes {
		score := g.Meta().Score
		if score == nil {
			return nil, fmt.Errorf("genotype at index %d (%s) has no score", i, g.Meta().ID)
		}
		items = append(items, Item{Score: *score, Genotype: g})
	}
	return NewPoolFromItems(items)
}

// NewPoolFromItems builds a pool from explicit (score, genotype) pairs.
// Insertion order among equal scores is kept but carries no meaning.
func NewPoolFromItems(items []Item) (*Pool, error) {
	for i, item := range items {
		if item.Genotype == nil {
			return nil, fmt.Errorf("nil genotype at index %d", i)
		}
	}
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return &Pool{items: sorted}, nil
}

func (p *Pool) Len() int { return len(p.items) }

// At returns the item at rank i, best first. Negative indices count from
// the worst end, so At(-1) is the lowest-scored item.
func (p *Pool) At(i int) Item {
	if i < 0 {
		i += len(p.items)
	}
	return p.items[i]
}

// Scores returns the pool scores in rank order (non-increasing).
func (p *Pool) Scores() []float64 {
	scores := make([]float64, len(p.items))
	for i, item := range p.items {
		scores[i] = item.Score
	}
	return scores
}

// Genotypes returns the underlying genotypes in rank order.
func (p *Pool) Genotypes() []genetics.Genotype {
	genotypes := make([]genetics.Genotype, len(p.items))
	for i, item := range p.items {
		genotypes[i] = item.Genotype
	}
	return genotypes
}

// Contains reports whether the genotype's id is present in the pool.
func (p *Pool) Contains(g genetics.Genotype) bool {
	id := g.Meta().ID
	for _, item := range p.items {
		if item.Genotype.Meta().ID == id {
			return true
		}
	}
	return false
}

// Append is unsupported; pools preserve their sort invariant by never
// accepting positional mutation.
func (p *Pool) Append(Item) error {
	return fmt.Errorf("append on pool: %w", genetics.ErrUnsupportedOperation)
}

// Insert is unsupported on pools.
func (p *Pool) Insert(int, Item) error {
	return fmt.Errorf("insert on pool: %w", genetics.ErrUnsupportedOperation)
}

// Reverse is unsupported on pools.
func (p *Pool) Reverse() error {
	return fmt.Errorf("reverse on pool: %w", genetics.ErrUnsupportedOperation)
}
