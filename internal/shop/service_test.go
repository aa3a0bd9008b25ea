package shop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/content"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/store"
	"github.com/pawprintgames/gachapet/internal/timewindow"
	"github.com/pawprintgames/gachapet/internal/wallet"
)

const testPlayer = "88888888-8888-8888-8888-888888888888"

type fakeGranter struct {
	granted []domain.Reward
}

func (f *fakeGranter) Grant(ctx context.Context, playerID string, r domain.Reward) error {
	f.granted = append(f.granted, r)
	return nil
}

type fakeSkins struct {
	added []string
}

func (f *fakeSkins) AddSkin(ctx context.Context, playerID, skinID string) error {
	f.added = append(f.added, skinID)
	return nil
}

type fixture struct {
	svc     Service
	wallet  wallet.Service
	clock   *timewindow.SimulatedClock
	granter *fakeGranter
	skins   *fakeSkins
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tables, err := content.Load("")
	require.NoError(t, err)
	locks := concurrency.NewLockManager()
	f := &fixture{
		wallet:  wallet.NewService(store.NewMemory(), locks),
		clock:   timewindow.NewSimulatedClock(time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)),
		granter: &fakeGranter{},
		skins:   &fakeSkins{},
	}
	f.svc = NewService(store.NewMemory(), locks, f.clock, tables, f.wallet, f.granter, f.skins)
	return f
}

func (f *fixture) fund(t *testing.T, coins, medals int) {
	t.Helper()
	_, err := f.wallet.Earn(context.Background(), testPlayer, coins, medals)
	require.NoError(t, err)
}

func TestBuy_GrantItemDebitsAndGrants(t *testing.T) {
	// ARRANGE
	f := newFixture(t)
	f.fund(t, 200, 0)

	// ACT
	result, err := f.svc.Buy(context.Background(), testPlayer, "dice_pack")

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, 1, result.Purchased)
	assert.Equal(t, 0, result.Wallet.Coins)
	require.Len(t, f.granter.granted, 1)
	assert.Equal(t, domain.Reward{Dice: 5}, f.granter.granted[0])
	assert.Empty(t, f.skins.added)
}

func TestBuy_SkinItemAddsSkinNotReward(t *testing.T) {
	f := newFixture(t)
	f.fund(t, 0, 5)

	result, err := f.svc.Buy(context.Background(), testPlayer, "skin_party_hat")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Purchased)
	assert.Equal(t, []string{"skin_party_hat"}, f.skins.added)
	assert.Empty(t, f.granter.granted)
}

func TestBuy_UnknownItemRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Buy(context.Background(), testPlayer, "mystery_box")

	assert.ErrorIs(t, err, domain.ErrItemUnknown)
}

func TestBuy_InsufficientFundsLeavesCounterUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Buy(ctx, testPlayer, "dice_pack")

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	catalog, catErr := f.svc.Catalog(ctx, testPlayer)
	require.NoError(t, catErr)
	assert.Equal(t, 0, catalog[0].Purchased)
}

func TestBuy_WeeklyCapEnforced(t *testing.T) {
	f := newFixture(t)
	f.fund(t, 0, 10)
	ctx := context.Background()
	_, err := f.svc.Buy(ctx, testPlayer, "skin_party_hat") // weekly_limit 1
	require.NoError(t, err)

	_, err = f.svc.Buy(ctx, testPlayer, "skin_party_hat")

	assert.ErrorIs(t, err, domain.ErrWeeklyLimitReached)
	assert.Len(t, f.skins.added, 1)
}

func TestBuy_CapResetsNextWeek(t *testing.T) {
	f := newFixture(t)
	f.fund(t, 0, 10)
	ctx := context.Background()
	_, err := f.svc.Buy(ctx, testPlayer, "skin_party_hat")
	require.NoError(t, err)

	f.clock.Advance(7 * 24 * time.Hour)
	result, err := f.svc.Buy(ctx, testPlayer, "skin_party_hat")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Purchased, "The counter restarts with the new week")
}

func TestCatalog_ReportsRemainingPerItem(t *testing.T) {
	f := newFixture(t)
	f.fund(t, 400, 0)
	ctx := context.Background()
	_, err := f.svc.Buy(ctx, testPlayer, "dice_pack")
	require.NoError(t, err)
	_, err = f.svc.Buy(ctx, testPlayer, "dice_pack")
	require.NoError(t, err)

	catalog, err := f.svc.Catalog(ctx, testPlayer)

	require.NoError(t, err)
	require.NotEmpty(t, catalog)
	assert.Equal(t, "dice_pack", catalog[0].Def.Key)
	assert.Equal(t, 2, catalog[0].Purchased)
	assert.Equal(t, catalog[0].Def.WeeklyLimit-2, catalog[0].Remaining)
}
