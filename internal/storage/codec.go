package storage

import (
	"encoding/json"
	"errors"

	"gevo/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// EncodeRecord serializes a genotype record, stamping the current schema
// and codec versions.
func EncodeRecord(rec model.Record) ([]byte, error) {
	rec.SchemaVersion = CurrentSchemaVersion
	rec.CodecVersion = CurrentCodecVersion
	return json.Marshal(rec)
}

// DecodeRecord deserializes a genotype record, rejecting payloads written
// by a different schema or codec version.
func DecodeRecord(data []byte) (model.Record, error) {
	var rec model.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.Record{}, err
	}
	if err := checkVersion(rec.VersionedRecord); err != nil {
		return model.Record{}, err
	}
	return rec, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
