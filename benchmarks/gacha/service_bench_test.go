package gacha_bench

import (
	"context"
	"testing"

	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/content"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/gacha"
	"github.com/pawprintgames/gachapet/internal/store"
	"github.com/pawprintgames/gachapet/internal/wallet"
)

// --- Stubs (Zero-overhead fakes for benchmarking) ---

type stubWallet struct{}

func (s *stubWallet) Spend(ctx context.Context, playerID string, coins, medals int) (*domain.Wallet, error) {
	return &domain.Wallet{Coins: 1 << 30}, nil
}

func (s *stubWallet) Earn(ctx context.Context, playerID string, coins, medals int) (*domain.Wallet, error) {
	return &domain.Wallet{Coins: 1 << 30}, nil
}

type stubCollection struct{}

func (s *stubCollection) Add(ctx context.Context, playerID, characterID string) (bool, error) {
	return false, nil
}

func (s *stubCollection) Get(ctx context.Context, playerID string) (*domain.Collection, error) {
	return domain.NewCollection(), nil
}

type stubDuplicates struct{}

func (s *stubDuplicates) AddDuplicate(ctx context.Context, playerID, characterID string) (int, error) {
	return 1, nil
}

const benchPlayer = "00000000-0000-0000-0000-000000000001"

// BenchmarkRoll measures a full roll through stub sinks: the weighted draw
// plus result assembly, without storage overhead.
func BenchmarkRoll(b *testing.B) {
	tables, err := content.Load("")
	if err != nil {
		b.Fatal(err)
	}
	svc := gacha.NewService(tables, &stubWallet{}, &stubCollection{}, &stubDuplicates{}, nil)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Roll(ctx, benchPlayer); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRoll_MemoryStore measures the same roll against the in-memory
// store with real wallet debits, which adds the lock and CAS path.
func BenchmarkRoll_MemoryStore(b *testing.B) {
	tables, err := content.Load("")
	if err != nil {
		b.Fatal(err)
	}
	walletSvc := wallet.NewService(store.NewMemory(), concurrency.NewLockManager())
	ctx := context.Background()
	if _, err := walletSvc.Earn(ctx, benchPlayer, 1<<30, 0); err != nil {
		b.Fatal(err)
	}
	svc := gacha.NewService(tables, walletSvc, &stubCollection{}, &stubDuplicates{}, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Roll(ctx, benchPlayer); err != nil {
			b.Fatal(err)
		}
	}
}
