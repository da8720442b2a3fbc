package model

import "time"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Record is the flat, store-agnostic form of a genotype. Chromosome fields
// are flattened to plain arrays of small non-negative integers keyed by the
// field name the genotype schema declares.
type Record struct {
	VersionedRecord
	ID          string             `json:"id"`
	Experiment  string             `json:"experiment,omitempty"`
	Created     time.Time          `json:"created"`
	Parents     []string           `json:"parents"`
	Generation  int                `json:"generation"`
	Score       *float64           `json:"score"`
	Chromosomes map[string][]uint8 `json:"chromosomes"`
}
