package wallet

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/store"
)

const testPlayer = "11111111-1111-1111-1111-111111111111"

func newTestService() Service {
	return NewService(store.NewMemory(), concurrency.NewLockManager())
}

func TestGet_MaterializesZeroWallet(t *testing.T) {
	svc := newTestService()

	w, err := svc.Get(context.Background(), testPlayer)

	require.NoError(t, err)
	assert.Equal(t, 0, w.Coins)
	assert.Equal(t, 0, w.Medals)
}

func TestEarn_CreditsBothCurrencies(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	w, err := svc.Earn(ctx, testPlayer, 250, 3)

	require.NoError(t, err)
	assert.Equal(t, 250, w.Coins)
	assert.Equal(t, 3, w.Medals)

	// Credited balance survives a fresh read.
	w, err = svc.Get(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, 250, w.Coins)
}

func TestEarn_RejectsNegativeAmount(t *testing.T) {
	svc := newTestService()

	_, err := svc.Earn(context.Background(), testPlayer, -1, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSpend_Success(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.Earn(ctx, testPlayer, 100, 5)
	require.NoError(t, err)

	w, err := svc.Spend(ctx, testPlayer, 100, 5)

	require.NoError(t, err)
	assert.Equal(t, 0, w.Coins, "Spending the full balance is allowed")
	assert.Equal(t, 0, w.Medals)
}

func TestSpend_InsufficientFundsLeavesBalanceUntouched(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.Earn(ctx, testPlayer, 99, 0)
	require.NoError(t, err)

	_, err = svc.Spend(ctx, testPlayer, 100, 0)

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	w, gerr := svc.Get(ctx, testPlayer)
	require.NoError(t, gerr)
	assert.Equal(t, 99, w.Coins, "Rejected spend must not write")
}

func TestSpend_ConcurrentDoubleSpendPreventsOverdraw(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.Earn(ctx, testPlayer, 100, 0)
	require.NoError(t, err)

	// Two simultaneous triggers of a 100-coin charge: exactly one may win.
	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Spend(ctx, testPlayer, 100, 0)
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range results {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "Exactly one spend must be rejected")

	w, err := svc.Get(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, 0, w.Coins, "Balance must never go negative")
}
