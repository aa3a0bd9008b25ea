package reward

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawprintgames/gachapet/internal/domain"
)

const testPlayer = "dddddddd-dddd-dddd-dddd-dddddddddddd"

type fakeCurrency struct {
	coins  int
	medals int
	calls  int
	err    error
}

func (f *fakeCurrency) Earn(ctx context.Context, playerID string, coins, medals int) (*domain.Wallet, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls++
	f.coins += coins
	f.medals += medals
	return &domain.Wallet{Coins: f.coins, Medals: f.medals}, nil
}

type fakeDice struct {
	dice  int
	calls int
	err   error
}

func (f *fakeDice) AddDice(ctx context.Context, playerID string, n int) error {
	if f.err != nil {
		return f.err
	}
	f.calls++
	f.dice += n
	return nil
}

func TestGrant_FansOutToBothSinks(t *testing.T) {
	// ARRANGE
	currency := &fakeCurrency{}
	dice := &fakeDice{}
	g := NewGranter(currency, dice)

	// ACT
	err := g.Grant(context.Background(), testPlayer, domain.Reward{Coins: 100, Medals: 2, Dice: 3})

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, 100, currency.coins)
	assert.Equal(t, 2, currency.medals)
	assert.Equal(t, 3, dice.dice)
}

func TestGrant_ZeroRewardTouchesNothing(t *testing.T) {
	currency := &fakeCurrency{}
	dice := &fakeDice{}
	g := NewGranter(currency, dice)

	err := g.Grant(context.Background(), testPlayer, domain.Reward{})

	require.NoError(t, err)
	assert.Equal(t, 0, currency.calls)
	assert.Equal(t, 0, dice.calls)
}

func TestGrant_CurrencyOnlySkipsDiceSink(t *testing.T) {
	currency := &fakeCurrency{}
	dice := &fakeDice{err: errors.New("should not be called")}
	g := NewGranter(currency, dice)

	err := g.Grant(context.Background(), testPlayer, domain.Reward{Coins: 50})

	require.NoError(t, err)
	assert.Equal(t, 50, currency.coins)
}

func TestGrant_DiceFailureSurfacesAfterCurrencyCredit(t *testing.T) {
	currency := &fakeCurrency{}
	dice := &fakeDice{err: errors.New("board unavailable")}
	g := NewGranter(currency, dice)

	err := g.Grant(context.Background(), testPlayer, domain.Reward{Coins: 50, Dice: 1})

	assert.Error(t, err)
	assert.Equal(t, 50, currency.coins, "The currency credit stands even when dice fail")
}
