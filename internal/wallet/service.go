package wallet

import (
	"context"
	"fmt"

	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/logger"
	"github.com/pawprintgames/gachapet/internal/metrics"
	"github.com/pawprintgames/gachapet/internal/store"
)

// Service defines the interface for currency operations. Balances are never
// negative; a spend the wallet cannot cover is rejected with no write.
type Service interface {
	Get(ctx context.Context, playerID string) (*domain.Wallet, error)
	Earn(ctx context.Context, playerID string, coins, medals int) (*domain.Wallet, error)
	Spend(ctx context.Context, playerID string, coins, medals int) (*domain.Wallet, error)
}

type service struct {
	store store.Store
	locks *concurrency.LockManager
}

// NewService creates a new wallet service
func NewService(st store.Store, locks *concurrency.LockManager) Service {
	return &service{store: st, locks: locks}
}

// load reads the wallet record, materializing the default when absent
func (s *service) load(ctx context.Context, playerID string) (*domain.Wallet, int64, error) {
	w := domain.NewWallet()
	meta, err := s.store.Get(ctx, store.WalletKey(playerID), w)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load wallet: %w", err)
	}
	w.Normalize()
	return w, meta.Version, nil
}

func (s *service) Get(ctx context.Context, playerID string) (*domain.Wallet, error) {
	w, _, err := s.load(ctx, playerID)
	return w, err
}

func (s *service) Earn(ctx context.Context, playerID string, coins, medals int) (*domain.Wallet, error) {
	if coins < 0 || medals < 0 {
		return nil, fmt.Errorf("%w: negative earn amount", domain.ErrInvalidInput)
	}

	var result *domain.Wallet
	err := s.locks.WithLock(store.WalletKey(playerID), func() error {
		w, version, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}
		w.Coins += coins
		w.Medals += medals
		if _, err := s.store.Put(ctx, store.WalletKey(playerID), w, version); err != nil {
			return fmt.Errorf("failed to persist wallet: %w", err)
		}
		result = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	if coins > 0 {
		metrics.CoinsEarnedTotal.Add(float64(coins))
	}
	logger.FromContext(ctx).Debug("Wallet credited", "player_id", playerID, "coins", coins, "medals", medals)
	return result, nil
}

func (s *service) Spend(ctx context.Context, playerID string, coins, medals int) (*domain.Wallet, error) {
	if coins < 0 || medals < 0 {
		return nil, fmt.Errorf("%w: negative spend amount", domain.ErrInvalidInput)
	}

	var result *domain.Wallet
	err := s.locks.WithLock(store.WalletKey(playerID), func() error {
		w, version, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}
		if !w.CanAfford(coins, medals) {
			return fmt.Errorf("%w: need %d coins and %d medals, have %d and %d",
				domain.ErrInsufficientFunds, coins, medals, w.Coins, w.Medals)
		}
		w.Coins -= coins
		w.Medals -= medals
		if _, err := s.store.Put(ctx, store.WalletKey(playerID), w, version); err != nil {
			return fmt.Errorf("failed to persist wallet: %w", err)
		}
		result = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	if coins > 0 {
		metrics.CoinsSpentTotal.Add(float64(coins))
	}
	logger.FromContext(ctx).Debug("Wallet debited", "player_id", playerID, "coins", coins, "medals", medals)
	return result, nil
}
