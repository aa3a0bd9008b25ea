package store

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pawprintgames/gachapet/internal/database"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()

	if !testing.Short() {
		ctx := context.Background()
		testDBConnString, terminate = setupContainer(ctx)
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}

	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}

	if err := database.Migrate(ctx, connStr); err != nil {
		fmt.Printf("WARNING: Failed to run migrations: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func newTestPostgres(t *testing.T) *Postgres {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	pool, err := pgxpool.New(context.Background(), testDBConnString)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewPostgres(pool)
}

func TestPostgres_WriteThenReadRoundTrip(t *testing.T) {
	s := newTestPostgres(t)
	ctx := context.Background()
	key := fmt.Sprintf("player:rt-%d:wallet", time.Now().UnixNano())

	version, err := s.Put(ctx, key, testRecord{Name: "coins", Count: 42}, VersionNone)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	var rec testRecord
	meta, err := s.Get(ctx, key, &rec)
	require.NoError(t, err)
	assert.True(t, meta.Found)
	assert.Equal(t, int64(1), meta.Version)
	assert.Equal(t, testRecord{Name: "coins", Count: 42}, rec)
}

func TestPostgres_GetMissingKey(t *testing.T) {
	s := newTestPostgres(t)
	ctx := context.Background()

	var rec testRecord
	meta, err := s.Get(ctx, "player:nobody:wallet", &rec)
	require.NoError(t, err)
	assert.False(t, meta.Found)
}

func TestPostgres_VersionConflict(t *testing.T) {
	s := newTestPostgres(t)
	ctx := context.Background()
	key := fmt.Sprintf("player:cas-%d:wallet", time.Now().UnixNano())

	v1, err := s.Put(ctx, key, testRecord{Count: 1}, VersionNone)
	require.NoError(t, err)
	_, err = s.Put(ctx, key, testRecord{Count: 2}, v1)
	require.NoError(t, err)

	_, err = s.Put(ctx, key, testRecord{Count: 99}, v1)
	assert.ErrorIs(t, err, ErrVersionConflict)

	var rec testRecord
	_, err = s.Get(ctx, key, &rec)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Count, "Stale write must not land")
}

func TestPostgres_DuplicateInsertConflict(t *testing.T) {
	s := newTestPostgres(t)
	ctx := context.Background()
	key := fmt.Sprintf("player:dup-%d:wallet", time.Now().UnixNano())

	_, err := s.Put(ctx, key, testRecord{Count: 1}, VersionNone)
	require.NoError(t, err)

	_, err = s.Put(ctx, key, testRecord{Count: 2}, VersionNone)
	assert.ErrorIs(t, err, ErrVersionConflict)
}
