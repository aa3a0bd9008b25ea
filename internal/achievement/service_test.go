package achievement

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
	testPlayer      = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	testAchievement = "ach_first_roll"
)

type fakeGranter struct {
	granted []domain.Reward
}

func (f *fakeGranter) Grant(ctx context.Context, playerID string, r domain.Reward) error {
	f.granted = append(f.granted, r)
	return nil
}

func newFixture(t *testing.T) (Service, *fakeGranter) {
	t.Helper()
	tables, err := content.Load("")
	require.NoError(t, err)
	granter := &fakeGranter{}
	svc := NewService(store.NewMemory(), concurrency.NewLockManager(), tables, granter)
	return svc, granter
}

func TestList_NewPlayerAllLockedUnclaimed(t *testing.T) {
	// ARRANGE
	svc, _ := newFixture(t)

	// ACT
	views, err := svc.List(context.Background(), testPlayer)

	// ASSERT
	require.NoError(t, err)
	require.NotEmpty(t, views)
	for _, v := range views {
		assert.False(t, v.Unlocked)
		assert.False(t, v.Claimed)
	}
}

func TestUnlock_IsIdempotent(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Unlock(ctx, testPlayer, testAchievement))
	require.NoError(t, svc.Unlock(ctx, testPlayer, testAchievement))

	views, err := svc.List(ctx, testPlayer)
	require.NoError(t, err)
	unlocked := 0
	for _, v := range views {
		if v.Unlocked {
			unlocked++
		}
	}
	assert.Equal(t, 1, unlocked)
}

func TestUnlock_UnknownIDIsANoOp(t *testing.T) {
	svc, _ := newFixture(t)

	err := svc.Unlock(context.Background(), testPlayer, "ach_nonexistent")

	assert.NoError(t, err, "Gameplay paths call unlock unconditionally; unknown IDs must not error")
}

func TestClaim_UnlockedAchievementGrantsOnce(t *testing.T) {
	svc, granter := newFixture(t)
	ctx := context.Background()
	require.NoError(t, svc.Unlock(ctx, testPlayer, testAchievement))

	result, err := svc.Claim(ctx, testPlayer, testAchievement)
	require.NoError(t, err)

	assert.Equal(t, testAchievement, result.Achievement.ID)
	require.Len(t, granter.granted, 1)
	assert.Equal(t, result.Reward, granter.granted[0])

	_, err = svc.Claim(ctx, testPlayer, testAchievement)
	assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
	assert.Len(t, granter.granted, 1)
}

func TestClaim_LockedAchievementRejected(t *testing.T) {
	svc, granter := newFixture(t)

	_, err := svc.Claim(context.Background(), testPlayer, testAchievement)

	assert.ErrorIs(t, err, domain.ErrQuestIncomplete)
	assert.Empty(t, granter.granted)
}

func TestClaim_UnknownAchievementRejected(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.Claim(context.Background(), testPlayer, "ach_nonexistent")

	assert.ErrorIs(t, err, domain.ErrItemUnknown)
}
