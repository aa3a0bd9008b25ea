// Package store is the typed entity store every engine component persists
// through. Each entity is an independent JSON record addressed by a stable
// key; the store performs no domain validation. Writes carry the version the
// caller read so interleaved mutations of the same key are rejected instead
// of silently lost, and I/O failures always surface as errors - a failed
// write must never look like a successful one.
package store

import (
	"context"
	"errors"
)

// Error message constants
const (
	ErrMsgVersionConflict = "entity version conflict"
)

// ErrVersionConflict is returned by Put when the expected version no longer
// matches the stored one. Callers re-read and retry or report the rejection.
var ErrVersionConflict = errors.New(ErrMsgVersionConflict)

// VersionNone is the expected version for creating a record that must not
// exist yet
const VersionNone int64 = 0

// Meta describes the stored state of a record at read time
type Meta struct {
	Found   bool
	Version int64
}

// Store provides versioned get/put access to durable entity records.
// Get decodes the record into dest and reports whether it existed; an absent
// record leaves dest untouched so the caller materializes the default. Put
// persists value when the stored version still equals expect (VersionNone to
// create) and returns the new version.
type Store interface {
	Get(ctx context.Context, key string, dest any) (Meta, error)
	Put(ctx context.Context, key string, value any, expect int64) (int64, error)
}
