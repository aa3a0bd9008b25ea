package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Store over a single entity_records table. Records are
// JSONB documents; version is bumped on every successful write and guards
// the compare-and-swap.
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres creates a Postgres-backed entity store
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// Get loads and decodes the record for key
func (s *Postgres) Get(ctx context.Context, key string, dest any) (Meta, error) {
	var raw []byte
	var version int64

	query := `SELECT record, version FROM entity_records WHERE entity_key = $1`
	err := s.db.QueryRow(ctx, query, key).Scan(&raw, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return Meta{}, nil
	}
	if err != nil {
		return Meta{}, fmt.Errorf("failed to read entity %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return Meta{}, fmt.Errorf("failed to decode entity %q: %w", key, err)
	}
	return Meta{Found: true, Version: version}, nil
}

// Put writes the record for key if the stored version still equals expect
func (s *Postgres) Put(ctx context.Context, key string, value any, expect int64) (int64, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("failed to encode entity %q: %w", key, err)
	}

	if expect == VersionNone {
		query := `
			INSERT INTO entity_records (entity_key, record, version, updated_at)
			VALUES ($1, $2, 1, NOW())
			ON CONFLICT (entity_key) DO NOTHING
		`
		tag, err := s.db.Exec(ctx, query, key, raw)
		if err != nil {
			return 0, fmt.Errorf("failed to create entity %q: %w", key, err)
		}
		if tag.RowsAffected() == 0 {
			return 0, fmt.Errorf("entity %q: %w", key, ErrVersionConflict)
		}
		return 1, nil
	}

	query := `
		UPDATE entity_records
		SET record = $2, version = version + 1, updated_at = NOW()
		WHERE entity_key = $1 AND version = $3
		RETURNING version
	`
	var newVersion int64
	err = s.db.QueryRow(ctx, query, key, raw, expect).Scan(&newVersion)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("entity %q: %w", key, ErrVersionConflict)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to update entity %q: %w", key, err)
	}
	return newVersion, nil
}
