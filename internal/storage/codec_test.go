package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"gevo/internal/model"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rec := testRecord("a", "exp")

	data, err := EncodeRecord(rec)
	require.NoError(t, err)

	decoded, err := DecodeRecord(data)
	require.NoError(t, err)
	require.Equal(t, CurrentSchemaVersion, decoded.SchemaVersion)
	require.Equal(t, CurrentCodecVersion, decoded.CodecVersion)
	require.Equal(t, rec.ID, decoded.ID)
	require.Equal(t, rec.Experiment, decoded.Experiment)
	require.Equal(t, rec.Parents, decoded.Parents)
	require.Equal(t, *rec.Score, *decoded.Score)
	require.Equal(t, rec.Chromosomes, decoded.Chromosomes)
}

func TestEncodeStampsVersions(t *testing.T) {
	rec := testRecord("a", "exp")
	rec.SchemaVersion = 99
	rec.CodecVersion = 99

	data, err := EncodeRecord(rec)
	require.NoError(t, err)
	decoded, err := DecodeRecord(data)
	require.NoError(t, err)
	require.Equal(t, CurrentSchemaVersion, decoded.SchemaVersion)
	require.Equal(t, CurrentCodecVersion, decoded.CodecVersion)
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	mismatched := []model.VersionedRecord{
		{SchemaVersion: CurrentSchemaVersion + 1, CodecVersion: CurrentCodecVersion},
		{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion + 1},
		{},
	}
	for _, v := range mismatched {
		rec := testRecord("a", "exp")
		data, err := EncodeRecord(rec)
		require.NoError(t, err)

		decoded, err := DecodeRecord(data)
		require.NoError(t, err)
		decoded.VersionedRecord = v
		tampered, err := json.Marshal(decoded)
		require.NoError(t, err)

		_, err = DecodeRecord(tampered)
		require.ErrorIs(t, err, ErrVersionMismatch)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := DecodeRecord([]byte("{not json"))
	require.Error(t, err)
}
