// Package reward fans a Reward bundle out to the sinks that own each
// resource: coins and medals go to the wallet, dice to the maze board.
// Claim paths (quests, attendance, shop, achievements) all grant through it
// so reward bookkeeping lives in one place.
package reward

import (
	"context"
	"fmt"

	"github.com/pawprintgames/gachapet/internal/domain"
)

// CurrencySink credits coins and medals
type CurrencySink interface {
	Earn(ctx context.Context, playerID string, coins, medals int) (*domain.Wallet, error)
}

// DiceSink credits maze dice
type DiceSink interface {
	AddDice(ctx context.Context, playerID string, n int) error
}

// Granter credits a reward bundle to a player
type Granter struct {
	currency CurrencySink
	dice     DiceSink
}

// NewGranter creates a Granter over the given sinks
func NewGranter(currency CurrencySink, dice DiceSink) *Granter {
	return &Granter{currency: currency, dice: dice}
}

// Grant credits every resource in the bundle. Currency is credited before
// dice; a dice failure after currency succeeded is surfaced so the caller
// can log it, but the currency credit stands.
func (g *Granter) Grant(ctx context.Context, playerID string, r domain.Reward) error {
	if r.IsZero() {
		return nil
	}
	if r.Coins > 0 || r.Medals > 0 {
		if _, err := g.currency.Earn(ctx, playerID, r.Coins, r.Medals); err != nil {
			return fmt.Errorf("failed to grant currency: %w", err)
		}
	}
	if r.Dice > 0 {
		if err := g.dice.AddDice(ctx, playerID, r.Dice); err != nil {
			return fmt.Errorf("failed to grant dice: %w", err)
		}
	}
	return nil
}
