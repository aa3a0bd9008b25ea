package collection

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

const testPlayer = "cccccccc-cccc-cccc-cccc-cccccccccccc"

type fakeBusy struct {
	busy map[string]bool
}

func (f *fakeBusy) IsCharacterBusy(ctx context.Context, playerID, characterID string) (bool, error) {
	return f.busy[characterID], nil
}

func newTestService(t *testing.T) *ServiceImpl {
	t.Helper()
	tables, err := content.Load("")
	require.NoError(t, err)
	return NewService(store.NewMemory(), concurrency.NewLockManager(), tables)
}

func TestAdd_NewCharacterReportedAsAdded(t *testing.T) {
	// ARRANGE
	svc := newTestService(t)
	ctx := context.Background()

	// ACT
	added, err := svc.Add(ctx, testPlayer, "char_mochi")

	// ASSERT
	require.NoError(t, err)
	assert.True(t, added)
	owns, err := svc.Owns(ctx, testPlayer, "char_mochi")
	require.NoError(t, err)
	assert.True(t, owns)
}

func TestAdd_RepeatIsNotAdded(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, testPlayer, "char_mochi")
	require.NoError(t, err)

	added, err := svc.Add(ctx, testPlayer, "char_mochi")

	require.NoError(t, err)
	assert.False(t, added, "The owned set only grows, repeats are no-ops")
	c, err := svc.Get(ctx, testPlayer)
	require.NoError(t, err)
	assert.Len(t, c.Owned, 1)
}

func TestAdd_UnknownCharacterRejected(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Add(context.Background(), testPlayer, "char_nonexistent")

	assert.ErrorIs(t, err, domain.ErrCharacterUnknown)
}

func TestSelect_RequiresOwnership(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Select(context.Background(), testPlayer, "char_mochi")

	assert.ErrorIs(t, err, domain.ErrCharacterNotOwned)
}

func TestSelect_OwnedCharacterBecomesSelected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, testPlayer, "char_mochi")
	require.NoError(t, err)

	c, err := svc.Select(ctx, testPlayer, "char_mochi")

	require.NoError(t, err)
	assert.Equal(t, "char_mochi", c.Selected)
}

func TestSelect_BusyCharacterRejected(t *testing.T) {
	svc := newTestService(t)
	svc.SetBusyChecker(&fakeBusy{busy: map[string]bool{"char_mochi": true}})
	ctx := context.Background()
	_, err := svc.Add(ctx, testPlayer, "char_mochi")
	require.NoError(t, err)

	_, err = svc.Select(ctx, testPlayer, "char_mochi")

	assert.ErrorIs(t, err, domain.ErrCharacterBusy)
}

func TestAddSkin_UnknownSkinRejected(t *testing.T) {
	svc := newTestService(t)

	err := svc.AddSkin(context.Background(), testPlayer, "skin_nonexistent")

	assert.ErrorIs(t, err, domain.ErrSkinUnknown)
}

func TestEquipSkin_RequiresOwnedSkinAndCharacter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.EquipSkin(ctx, testPlayer, "char_mochi", "skin_party_hat")
	assert.ErrorIs(t, err, domain.ErrCharacterNotOwned)

	_, addErr := svc.Add(ctx, testPlayer, "char_mochi")
	require.NoError(t, addErr)
	_, err = svc.EquipSkin(ctx, testPlayer, "char_mochi", "skin_party_hat")
	assert.ErrorIs(t, err, domain.ErrSkinNotOwned)
}

func TestEquipSkin_EquipAndUnequip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, testPlayer, "char_mochi")
	require.NoError(t, err)
	require.NoError(t, svc.AddSkin(ctx, testPlayer, "skin_party_hat"))

	sk, err := svc.EquipSkin(ctx, testPlayer, "char_mochi", "skin_party_hat")
	require.NoError(t, err)
	assert.Equal(t, "skin_party_hat", sk.Equipped["char_mochi"])

	sk, err = svc.EquipSkin(ctx, testPlayer, "char_mochi", "")
	require.NoError(t, err)
	_, equipped := sk.Equipped["char_mochi"]
	assert.False(t, equipped, "An empty skin ID unequips")
}
