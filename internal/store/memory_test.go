package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemory_GetMissingKey(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	var rec testRecord
	meta, err := s.Get(ctx, "player:p1:wallet", &rec)

	require.NoError(t, err)
	assert.False(t, meta.Found, "Missing key should report not found")
	assert.Equal(t, int64(VersionNone), meta.Version)
	assert.Equal(t, testRecord{}, rec, "Destination should be untouched")
}

func TestMemory_WriteThenReadRoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	version, err := s.Put(ctx, "player:p1:wallet", testRecord{Name: "coins", Count: 42}, VersionNone)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version, "First write starts at version 1")

	var rec testRecord
	meta, err := s.Get(ctx, "player:p1:wallet", &rec)
	require.NoError(t, err)
	assert.True(t, meta.Found)
	assert.Equal(t, int64(1), meta.Version)
	assert.Equal(t, testRecord{Name: "coins", Count: 42}, rec)
}

func TestMemory_PutRejectsStaleVersion(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.Put(ctx, "k", testRecord{Count: 1}, VersionNone)
	require.NoError(t, err)
	_, err = s.Put(ctx, "k", testRecord{Count: 2}, 1)
	require.NoError(t, err)

	// A writer still holding version 1 must lose.
	_, err = s.Put(ctx, "k", testRecord{Count: 99}, 1)
	assert.ErrorIs(t, err, ErrVersionConflict)

	var rec testRecord
	_, err = s.Get(ctx, "k", &rec)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Count, "Stale write must not land")
}

func TestMemory_PutRejectsDuplicateInsert(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.Put(ctx, "k", testRecord{Count: 1}, VersionNone)
	require.NoError(t, err)

	_, err = s.Put(ctx, "k", testRecord{Count: 2}, VersionNone)
	assert.ErrorIs(t, err, ErrVersionConflict, "Insert over an existing record must conflict")
}

func TestMemory_UnknownFieldsIgnoredOnRead(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	// A newer writer added a field this reader does not know about.
	_, err := s.Put(ctx, "k", map[string]any{"name": "x", "count": 3, "future_field": true}, VersionNone)
	require.NoError(t, err)

	var rec testRecord
	meta, err := s.Get(ctx, "k", &rec)
	require.NoError(t, err)
	assert.True(t, meta.Found)
	assert.Equal(t, testRecord{Name: "x", Count: 3}, rec)
}

func TestMemory_KeysAreIndependent(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.Put(ctx, "player:p1:wallet", testRecord{Count: 1}, VersionNone)
	require.NoError(t, err)
	_, err = s.Put(ctx, "player:p2:wallet", testRecord{Count: 2}, VersionNone)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())

	var rec testRecord
	_, err = s.Get(ctx, "player:p2:wallet", &rec)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Count)
}
