package storage

import (
	"context"

	"gevo/internal/model"
)

// Store is the persistence collaborator of the evolution engine. Any
// backend satisfying these four operations over genotype records is
// interchangeable.
type Store interface {
	Init(ctx context.Context) error
	// SaveGenotypes upserts records and returns their ids.
	SaveGenotypes(ctx context.Context, records []model.Record) ([]string, error)
	// LoadGenotypes returns the matching records in input id order,
	// skipping ids not found.
	LoadGenotypes(ctx context.Context, ids []string) ([]model.Record, error)
	// DeleteGenotypes removes records and returns the ids actually
	// deleted.
	DeleteGenotypes(ctx context.Context, ids []string) ([]string, error)
	// DeleteExperiment cascade-deletes every record tagged with the
	// experiment name.
	DeleteExperiment(ctx context.Context, experiment string) error
}
