// Package experiment wires populations, fitness evaluation, the
// generational algorithm and persistence into runnable evolution sessions.
package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"gevo/internal/evo"
	"gevo/internal/fitness"
	"gevo/internal/genetics"
	"gevo/internal/model"
	"gevo/internal/storage"
)

// Experiment groups every run under one name. The store is the external
// persistence collaborator; genotypes added to sessions are tagged with
// the experiment name so they can be cascade-deleted later.
type Experiment struct {
	name  string
	store storage.Store
}

// New builds an experiment. An empty name gets a fresh unique one.
func New(name string, store storage.Store) (*Experiment, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if name == "" {
		name = uuid.NewString()
	}
	return &Experiment{name: name, store: store}, nil
}

func (e *Experiment) Name() string { return e.name }

// Session opens a scoped run context bound to this experiment. The
// algorithm and evaluator are fixed per session; the rng seeds every
// stochastic operator in the run.
func (e *Experiment) Session(algorithm evo.Algorithm, evaluator *fitness.Evaluator, rng *rand.Rand) (*Session, error) {
	if algorithm == nil {
		return nil, fmt.Errorf("algorithm is required")
	}
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator is required")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	return &Session{
		experiment: e,
		algorithm:  algorithm,
		evaluator:  evaluator,
		rng:        rng,
	}, nil
}

// Session owns one population and drives it through evolution cycles.
type Session struct {
	experiment *Experiment
	algorithm  evo.Algorithm
	evaluator  *fitness.Evaluator
	rng        *rand.Rand
	population []genetics.Genotype
}

// AddGenotypes tags genotypes with the experiment name, persists them, and
// appends them to the session population.
func (s *Session) AddGenotypes(ctx context.Context, genotypes []genetics.Genotype) error {
	for _, g := range genotypes {
		g.Meta().Experiment = s.experiment.name
	}
	if err := s.save(ctx, genotypes); err != nil {
		return err
	}
	s.population = append(s.population, genotypes...)
	return nil
}

// Genotypes returns the current session population.
func (s *Session) Genotypes() []genetics.Genotype {
	return append([]genetics.Genotype(nil), s.population...)
}

// DeleteExperiment drops the session population and cascade-deletes every
// stored genotype of the experiment.
func (s *Session) DeleteExperiment(ctx context.Context) error {
	if err := s.experiment.store.DeleteExperiment(ctx, s.experiment.name); err != nil {
		return fmt.Errorf("delete experiment %s: %w", s.experiment.name, err)
	}
	s.population = nil
	return nil
}

func (s *Session) save(ctx context.Context, genotypes []genetics.Genotype) error {
	records := make([]model.Record, len(genotypes))
	for i, g := range genotypes {
		records[i] = genetics.ToRecord(g)
	}
	if _, err := s.experiment.store.SaveGenotypes(ctx, records); err != nil {
		return fmt.Errorf("save genotypes: %w", err)
	}
	return nil
}
