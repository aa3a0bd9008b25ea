package enhance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/content"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/store"
)

const (
	testPlayer    = "33333333-3333-3333-3333-333333333333"
	testCharacter = "char_mochi"
)

type fakeRecorder struct {
	unlocked []string
}

func (f *fakeRecorder) Unlock(ctx context.Context, playerID, achievementID string) error {
	f.unlocked = append(f.unlocked, achievementID)
	return nil
}

func newTestService(t *testing.T, recorder Recorder) Service {
	t.Helper()
	tables, err := content.Load("")
	require.NoError(t, err)
	return NewService(store.NewMemory(), concurrency.NewLockManager(), tables, recorder)
}

func TestEnhance_CostsLevelPlusOneDuplicates(t *testing.T) {
	// ARRANGE
	svc := newTestService(t, nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.AddDuplicate(ctx, testPlayer, testCharacter)
		require.NoError(t, err)
	}

	// ACT: level 0 -> 1 costs 1, level 1 -> 2 costs 2
	first, err := svc.Enhance(ctx, testPlayer, testCharacter)
	require.NoError(t, err)
	second, err := svc.Enhance(ctx, testPlayer, testCharacter)
	require.NoError(t, err)

	// ASSERT
	assert.Equal(t, StatusEnhanced, first.Status)
	assert.Equal(t, 1, first.Level)
	assert.Equal(t, 1, first.CostPaid)
	assert.Equal(t, StatusEnhanced, second.Status)
	assert.Equal(t, 2, second.Level)
	assert.Equal(t, 2, second.CostPaid)
	assert.Equal(t, 0, second.Duplicates)
}

func TestEnhance_InsufficientDuplicatesLeavesStateUntouched(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	_, err := svc.AddDuplicate(ctx, testPlayer, testCharacter)
	require.NoError(t, err)
	_, err = svc.Enhance(ctx, testPlayer, testCharacter) // now level 1, zero tokens
	require.NoError(t, err)

	_, err = svc.Enhance(ctx, testPlayer, testCharacter)

	assert.ErrorIs(t, err, domain.ErrInsufficientDuplicates)
	e, getErr := svc.Get(ctx, testPlayer, testCharacter)
	require.NoError(t, getErr)
	assert.Equal(t, 1, e.Level, "Failed attempt must not advance the level")
	assert.Equal(t, 0, e.Duplicates)
}

func TestEnhance_AtCapReportsAlreadyMaxed(t *testing.T) {
	recorder := &fakeRecorder{}
	svc := newTestService(t, recorder)
	ctx := context.Background()
	// 1+2+3+4+5 = 15 tokens carries level 0 to the cap.
	for i := 0; i < 16; i++ {
		_, err := svc.AddDuplicate(ctx, testPlayer, testCharacter)
		require.NoError(t, err)
	}
	for i := 0; i < domain.MaxEnhancementLevel; i++ {
		_, err := svc.Enhance(ctx, testPlayer, testCharacter)
		require.NoError(t, err)
	}

	result, err := svc.Enhance(ctx, testPlayer, testCharacter)

	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyMaxed, result.Status)
	assert.Equal(t, domain.MaxEnhancementLevel, result.Level)
	assert.Equal(t, 1, result.Duplicates, "Already maxed must not consume tokens")
	assert.Contains(t, recorder.unlocked, AchievementMaxLevel)
}

func TestEnhance_UnknownCharacterRejected(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Enhance(context.Background(), testPlayer, "char_nonexistent")

	assert.ErrorIs(t, err, domain.ErrCharacterUnknown)
}

func TestStats_DeriveFromGradeAndLevel(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	tables, err := content.Load("")
	require.NoError(t, err)
	char, ok := tables.Character(testCharacter)
	require.True(t, ok)
	cfg := tables.Grade(char.Grade)

	stats, err := svc.Stats(ctx, testPlayer, testCharacter)

	require.NoError(t, err)
	assert.Equal(t, cfg.BaseStats, *stats, "Level zero stats are the grade's base stats")
}

func TestStatsAt_LinearGrowthAndClamping(t *testing.T) {
	cfg := content.GradeConfig{
		BaseStats: domain.DerivedStats{ScorePerTap: 10, CoinDropChance: 0.1, CritChance: 0.05, HPLossInterval: 60},
		Growth:    content.StatGrowth{ScorePerTap: 2, CoinDropChance: 0.01, CritChance: 0.005, HPLossInterval: 5},
	}

	at3 := StatsAt(cfg, 3)
	assert.Equal(t, 16, at3.ScorePerTap)
	assert.InDelta(t, 0.13, at3.CoinDropChance, 1e-9)
	assert.InDelta(t, 0.065, at3.CritChance, 1e-9)
	assert.Equal(t, 75, at3.HPLossInterval)

	assert.Equal(t, StatsAt(cfg, 0), StatsAt(cfg, -2), "Negative levels clamp to zero")
	assert.Equal(t, StatsAt(cfg, domain.MaxEnhancementLevel), StatsAt(cfg, 99), "Levels beyond the cap clamp to the cap")
}
