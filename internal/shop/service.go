// Package shop sells static catalog items with per-item weekly purchase caps.
// Caps reset lazily when the stored week-start falls behind the current one.
package shop

import (
	"context"
	"fmt"

	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/content"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/logger"
	"github.com/pawprintgames/gachapet/internal/store"
	"github.com/pawprintgames/gachapet/internal/timewindow"
)

// WalletService debits the purchase price
type WalletService interface {
	Spend(ctx context.Context, playerID string, coins, medals int) (*domain.Wallet, error)
	Earn(ctx context.Context, playerID string, coins, medals int) (*domain.Wallet, error)
}

// Granter credits non-skin item payouts
type Granter interface {
	Grant(ctx context.Context, playerID string, r domain.Reward) error
}

// SkinSink adds purchased skins to the player's collection
type SkinSink interface {
	AddSkin(ctx context.Context, playerID, skinID string) error
}

// ItemView is one catalog entry joined with this week's purchase count
type ItemView struct {
	Def       content.ShopItemDef `json:"def"`
	Purchased int                 `json:"purchased"`
	Remaining int                 `json:"remaining"`
}

// BuyResult is the outcome of a successful purchase
type BuyResult struct {
	Item      content.ShopItemDef `json:"item"`
	Purchased int                 `json:"purchased"`
	Wallet    *domain.Wallet      `json:"wallet"`
}

// Service defines the interface for shop purchases
type Service interface {
	Catalog(ctx context.Context, playerID string) ([]ItemView, error)
	Buy(ctx context.Context, playerID, itemKey string) (*BuyResult, error)
}

type service struct {
	store   store.Store
	locks   *concurrency.LockManager
	clock   timewindow.Clock
	tables  *content.Tables
	wallet  WalletService
	granter Granter
	skins   SkinSink
}

// NewService creates a new shop service
func NewService(st store.Store, locks *concurrency.LockManager, clock timewindow.Clock, tables *content.Tables, wallet WalletService, granter Granter, skins SkinSink) Service {
	return &service{store: st, locks: locks, clock: clock, tables: tables, wallet: wallet, granter: granter, skins: skins}
}

// load reads the counters and applies the lazy weekly reset
func (s *service) load(ctx context.Context, playerID string) (*domain.ShopCounters, int64, error) {
	sc := domain.NewShopCounters()
	meta, err := s.store.Get(ctx, store.ShopKey(playerID), sc)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load shop counters: %w", err)
	}
	sc.Normalize()
	if week := timewindow.WeekStart(s.clock); sc.WeekStart != week {
		sc.Reset(week)
	}
	return sc, meta.Version, nil
}

func (s *service) Catalog(ctx context.Context, playerID string) ([]ItemView, error) {
	sc, _, err := s.load(ctx, playerID)
	if err != nil {
		return nil, err
	}

	views := make([]ItemView, 0, len(s.tables.ShopItems))
	for _, def := range s.tables.ShopItems {
		bought := sc.Purchased[def.Key]
		remaining := def.WeeklyLimit - bought
		if remaining < 0 {
			remaining = 0
		}
		views = append(views, ItemView{Def: def, Purchased: bought, Remaining: remaining})
	}
	return views, nil
}

// Buy purchases one unit of an item. The cap check and counter bump happen
// under the shop lock; the price is debited in between, and refunded if the
// counter write fails.
func (s *service) Buy(ctx context.Context, playerID, itemKey string) (*BuyResult, error) {
	def, ok := s.tables.ShopItem(itemKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemUnknown, itemKey)
	}
	if def.SkinID != "" {
		if _, ok := s.tables.Skin(def.SkinID); !ok {
			return nil, fmt.Errorf("%w: skin %s", domain.ErrSkinUnknown, def.SkinID)
		}
	}

	var result *BuyResult
	err := s.locks.WithLock(store.ShopKey(playerID), func() error {
		sc, version, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}
		if sc.Purchased[def.Key] >= def.WeeklyLimit {
			return fmt.Errorf("%w: %s at %d/%d this week",
				domain.ErrWeeklyLimitReached, def.Key, sc.Purchased[def.Key], def.WeeklyLimit)
		}

		w, err := s.wallet.Spend(ctx, playerID, def.CostCoins, def.CostMedals)
		if err != nil {
			return err
		}

		sc.Purchased[def.Key]++
		if _, err := s.store.Put(ctx, store.ShopKey(playerID), sc, version); err != nil {
			// Refund so the failed write does not eat the price.
			if _, refundErr := s.wallet.Earn(ctx, playerID, def.CostCoins, def.CostMedals); refundErr != nil {
				logger.FromContext(ctx).Error("Failed to refund purchase",
					"player_id", playerID, "item", def.Key, "error", refundErr)
			}
			return fmt.Errorf("failed to persist shop counters: %w", err)
		}
		result = &BuyResult{Item: def, Purchased: sc.Purchased[def.Key], Wallet: w}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if def.SkinID != "" {
		if err := s.skins.AddSkin(ctx, playerID, def.SkinID); err != nil {
			return nil, err
		}
	} else if !def.Grants.IsZero() {
		if err := s.granter.Grant(ctx, playerID, def.Grants); err != nil {
			return nil, err
		}
	}

	logger.FromContext(ctx).Info("Shop purchase",
		"player_id", playerID, "item", def.Key, "purchased_this_week", result.Purchased)
	return result, nil
}
