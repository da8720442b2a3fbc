package storage

import (
	"context"
	"sync"

	"gevo/internal/model"
)

type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]model.Record)
	return nil
}

func (s *MemoryStore) SaveGenotypes(_ context.Context, records []model.Record) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		s.records[rec.ID] = copyRecord(rec)
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

func (s *MemoryStore) LoadGenotypes(_ context.Context, ids []string) ([]model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.Record, 0, len(ids))
	for _, id := range ids {
		rec, ok := s.records[id]
		if !ok {
			continue
		}
		records = append(records, copyRecord(rec))
	}
	return records, nil
}

func (s *MemoryStore) DeleteGenotypes(_ context.Context, ids []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := s.records[id]; !ok {
			continue
		}
		delete(s.records, id)
		deleted = append(deleted, id)
	}
	return deleted, nil
}

func (s *MemoryStore) DeleteExperiment(_ context.Context, experiment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rec := range s.records {
		if rec.Experiment == experiment {
			delete(s.records, id)
		}
	}
	return nil
}

func copyRecord(rec model.Record) model.Record {
	copied := rec
	copied.Parents = append([]string(nil), rec.Parents...)
	if rec.Score != nil {
		score := *rec.Score
		copied.Score = &score
	}
	copied.Chromosomes = make(map[string][]uint8, len(rec.Chromosomes))
	for name, values := range rec.Chromosomes {
		copied.Chromosomes[name] = append([]uint8(nil), values...)
	}
	return copied
}
