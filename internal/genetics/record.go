package genetics

import (
	"fmt"

	"github.com/google/uuid"

	"gevo/internal/model"
)

// ToRecord flattens a genotype into its serializable record form.
func ToRecord(g Genotype) model.Record {
	meta := g.Meta()
	parents := make([]string, len(meta.Parents))
	for i, parent := range meta.Parents {
		parents[i] = parent.String()
	}
	chromosomes := make(map[string][]uint8)
	for _, ref := range g.Chromosomes() {
		chromosomes[ref.Name] = ref.Chromosome.Values()
	}
	var score *float64
	if meta.Score != nil {
		s := *meta.Score
		score = &s
	}
	return model.Record{
		ID:          meta.ID.String(),
		Experiment:  meta.Experiment,
		Created:     meta.Created,
		Parents:     parents,
		Generation:  meta.Generation,
		Score:       score,
		Chromosomes: chromosomes,
	}
}

// FromRecord restores a genotype from its record form. The prototype
// factory supplies a genotype whose schema matches the record; chromosome
// arrays are written back by field name, preserving each field's length.
func FromRecord(rec model.Record, prototype func() Genotype) (Genotype, error) {
	g := prototype()

	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("parse genotype id %q: %w", rec.ID, err)
	}
	parents := make([]uuid.UUID, len(rec.Parents))
	for i, raw := range rec.Parents {
		parent, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse parent id %q: %w", raw, err)
		}
		parents[i] = parent
	}

	meta := g.Meta()
	meta.ID = id
	meta.Experiment = rec.Experiment
	meta.Created = rec.Created
	meta.Parents = parents
	meta.Generation = rec.Generation
	if rec.Score != nil {
		score := *rec.Score
		meta.Score = &score
	} else {
		meta.Score = nil
	}

	for _, ref := range g.Chromosomes() {
		values, ok := rec.Chromosomes[ref.Name]
		if !ok {
			return nil, fmt.Errorf("record %s missing chromosome field %q", rec.ID, ref.Name)
		}
		if err := ref.Chromosome.SetValues(values); err != nil {
			return nil, fmt.Errorf("restore chromosome %q of %s: %w", ref.Name, rec.ID, err)
		}
	}
	return g, nil
}
