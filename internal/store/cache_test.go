package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps Memory and counts inner reads
type countingStore struct {
	*Memory
	gets int
}

func (c *countingStore) Get(ctx context.Context, key string, dest any) (Meta, error) {
	c.gets++
	return c.Memory.Get(ctx, key, dest)
}

func TestCached_ServesRepeatReadsFromCache(t *testing.T) {
	inner := &countingStore{Memory: NewMemory()}
	cached := NewCached(inner, 16, time.Minute)
	ctx := context.Background()

	_, err := cached.Put(ctx, "k", testRecord{Count: 7}, VersionNone)
	require.NoError(t, err)

	var rec testRecord
	for i := 0; i < 3; i++ {
		meta, err := cached.Get(ctx, "k", &rec)
		require.NoError(t, err)
		assert.True(t, meta.Found)
		assert.Equal(t, 7, rec.Count)
	}

	assert.Equal(t, 0, inner.gets, "Writes should prime the cache, reads should not hit the inner store")
}

func TestCached_ReadAfterWriteSeesWrittenValue(t *testing.T) {
	cached := NewCached(NewMemory(), 16, time.Minute)
	ctx := context.Background()

	v1, err := cached.Put(ctx, "k", testRecord{Count: 1}, VersionNone)
	require.NoError(t, err)
	_, err = cached.Put(ctx, "k", testRecord{Count: 2}, v1)
	require.NoError(t, err)

	var rec testRecord
	meta, err := cached.Get(ctx, "k", &rec)
	require.NoError(t, err)
	assert.Equal(t, int64(2), meta.Version)
	assert.Equal(t, 2, rec.Count)
}

func TestCached_ConflictDropsEntry(t *testing.T) {
	inner := &countingStore{Memory: NewMemory()}
	cached := NewCached(inner, 16, time.Minute)
	ctx := context.Background()

	_, err := cached.Put(ctx, "k", testRecord{Count: 1}, VersionNone)
	require.NoError(t, err)

	// Another process instance bumps the version behind our back.
	_, err = inner.Memory.Put(ctx, "k", testRecord{Count: 5}, 1)
	require.NoError(t, err)

	_, err = cached.Put(ctx, "k", testRecord{Count: 9}, 1)
	require.ErrorIs(t, err, ErrVersionConflict)

	// The dropped entry forces the next read through to the fresh value.
	var rec testRecord
	meta, err := cached.Get(ctx, "k", &rec)
	require.NoError(t, err)
	assert.Equal(t, int64(2), meta.Version)
	assert.Equal(t, 5, rec.Count)
	assert.Equal(t, 1, inner.gets)
}

func TestCached_CallersGetIndependentCopies(t *testing.T) {
	cached := NewCached(NewMemory(), 16, time.Minute)
	ctx := context.Background()

	_, err := cached.Put(ctx, "k", testRecord{Name: "a", Count: 1}, VersionNone)
	require.NoError(t, err)

	var first testRecord
	_, err = cached.Get(ctx, "k", &first)
	require.NoError(t, err)
	first.Count = 999

	var second testRecord
	_, err = cached.Get(ctx, "k", &second)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Count, "Mutating one read must not leak into the next")
}
