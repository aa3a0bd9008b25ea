package expedition

import (
	"context"
	"fmt"
	"time"

	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/content"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/logger"
	"github.com/pawprintgames/gachapet/internal/metrics"
	"github.com/pawprintgames/gachapet/internal/store"
	"github.com/pawprintgames/gachapet/internal/timewindow"
)

// AchievementFirstCollect is unlocked on a player's first collected expedition
const AchievementFirstCollect = "ach_first_expedition"

// SlotView is a slot plus its derived presentation fields
type SlotView struct {
	Slot          int                   `json:"slot"`
	State         domain.ExpeditionSlot `json:"state"`
	RewardPreview int                   `json:"reward_preview,omitempty"`
	MaturesAt     *time.Time            `json:"matures_at,omitempty"`
}

// CollectResult is the outcome of collecting a matured expedition
type CollectResult struct {
	Reward int            `json:"reward"`
	Wallet *domain.Wallet `json:"wallet"`
}

// OwnershipChecker verifies the character belongs to the player
type OwnershipChecker interface {
	Owns(ctx context.Context, playerID, characterID string) (bool, error)
}

// LevelProvider supplies the character's current enhancement level
type LevelProvider interface {
	LevelFor(ctx context.Context, playerID, characterID string) (int, error)
}

// WalletService credits collected rewards
type WalletService interface {
	Earn(ctx context.Context, playerID string, coins, medals int) (*domain.Wallet, error)
}

// Recorder unlocks achievements as a side effect of collections
type Recorder interface {
	Unlock(ctx context.Context, playerID, achievementID string) error
}

// Service defines the interface for expedition operations. Each player has a
// fixed set of slots; a character occupies at most one non-idle slot.
type Service interface {
	Slots(ctx context.Context, playerID string) ([]SlotView, error)
	Start(ctx context.Context, playerID string, slot int, characterID, tierKey string) (*SlotView, error)
	Preview(ctx context.Context, playerID string, slot int) (int, error)
	Collect(ctx context.Context, playerID string, slot int) (*CollectResult, error)
	IsCharacterBusy(ctx context.Context, playerID, characterID string) (bool, error)
}

type service struct {
	store        store.Store
	locks        *concurrency.LockManager
	clock        timewindow.Clock
	tables       *content.Tables
	ownership    OwnershipChecker
	levels       LevelProvider
	wallet       WalletService
	achievements Recorder
}

// NewService creates a new expedition service. achievements may be nil.
func NewService(st store.Store, locks *concurrency.LockManager, clock timewindow.Clock, tables *content.Tables,
	ownership OwnershipChecker, levels LevelProvider, wallet WalletService, achievements Recorder) Service {
	return &service{
		store:        st,
		locks:        locks,
		clock:        clock,
		tables:       tables,
		ownership:    ownership,
		levels:       levels,
		wallet:       wallet,
		achievements: achievements,
	}
}

func (s *service) load(ctx context.Context, playerID string, slot int) (*domain.ExpeditionSlot, int64, error) {
	e := domain.NewExpeditionSlot()
	meta, err := s.store.Get(ctx, store.ExpeditionKey(playerID, slot), e)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load expedition slot %d: %w", slot, err)
	}
	e.Normalize()
	return e, meta.Version, nil
}

// refresh applies the lazy active-to-complete transition for a matured slot
func (s *service) refresh(ctx context.Context, playerID string, slot int) (*domain.ExpeditionSlot, int64, error) {
	e, version, err := s.load(ctx, playerID, slot)
	if err != nil {
		return nil, 0, err
	}
	if e.Status == domain.SlotActive && e.Matured(s.clock.Now()) {
		e.Status = domain.SlotComplete
		newVersion, err := s.store.Put(ctx, store.ExpeditionKey(playerID, slot), e, version)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to persist matured slot %d: %w", slot, err)
		}
		version = newVersion
	}
	return e, version, nil
}

// preview computes the payout the slot would produce if collected now
func (s *service) preview(ctx context.Context, playerID string, e *domain.ExpeditionSlot) (int, error) {
	char, ok := s.tables.Character(e.CharacterID)
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrCharacterUnknown, e.CharacterID)
	}
	level, err := s.levels.LevelFor(ctx, playerID, e.CharacterID)
	if err != nil {
		return 0, err
	}
	return RewardFor(e.BaseReward, s.tables.Grade(char.Grade).RewardMultiplier, level), nil
}

func (s *service) view(ctx context.Context, playerID string, slot int, e *domain.ExpeditionSlot) SlotView {
	v := SlotView{Slot: slot, State: *e}
	if e.Status != domain.SlotIdle {
		maturesAt := e.MaturesAt()
		v.MaturesAt = &maturesAt
		if reward, err := s.preview(ctx, playerID, e); err == nil {
			v.RewardPreview = reward
		}
	}
	return v
}

func (s *service) Slots(ctx context.Context, playerID string) ([]SlotView, error) {
	views := make([]SlotView, 0, domain.ExpeditionSlotCount)
	for slot := 0; slot < domain.ExpeditionSlotCount; slot++ {
		var e *domain.ExpeditionSlot
		err := s.locks.WithLock(store.ExpeditionKey(playerID, slot), func() error {
			var err error
			e, _, err = s.refresh(ctx, playerID, slot)
			return err
		})
		if err != nil {
			return nil, err
		}
		views = append(views, s.view(ctx, playerID, slot, e))
	}
	return views, nil
}

func (s *service) IsCharacterBusy(ctx context.Context, playerID, characterID string) (bool, error) {
	for slot := 0; slot < domain.ExpeditionSlotCount; slot++ {
		e, _, err := s.load(ctx, playerID, slot)
		if err != nil {
			return false, err
		}
		if e.Status != domain.SlotIdle && e.CharacterID == characterID {
			return true, nil
		}
	}
	return false, nil
}

func slotKeys(playerID string) []string {
	keys := make([]string, domain.ExpeditionSlotCount)
	for slot := 0; slot < domain.ExpeditionSlotCount; slot++ {
		keys[slot] = store.ExpeditionKey(playerID, slot)
	}
	return keys
}

func (s *service) Start(ctx context.Context, playerID string, slot int, characterID, tierKey string) (*SlotView, error) {
	if slot < 0 || slot >= domain.ExpeditionSlotCount {
		return nil, fmt.Errorf("%w: slot %d out of range", domain.ErrInvalidInput, slot)
	}
	tier, ok := s.tables.ExpeditionTier(tierKey)
	if !ok {
		return nil, fmt.Errorf("%w: unknown expedition tier %q", domain.ErrInvalidInput, tierKey)
	}
	owns, err := s.ownership.Owns(ctx, playerID, characterID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterNotOwned, characterID)
	}

	var started *domain.ExpeditionSlot
	// All slots are locked so two concurrent starts cannot both pass the
	// exclusivity scan and assign the same character twice.
	err = s.locks.WithLocks(slotKeys(playerID), func() error {
		for i := 0; i < domain.ExpeditionSlotCount; i++ {
			e, _, err := s.load(ctx, playerID, i)
			if err != nil {
				return err
			}
			if e.Status != domain.SlotIdle && e.CharacterID == characterID {
				return fmt.Errorf("%w: %s already in slot %d", domain.ErrCharacterBusy, characterID, i)
			}
		}

		e, version, err := s.load(ctx, playerID, slot)
		if err != nil {
			return err
		}
		if e.Status != domain.SlotIdle {
			return fmt.Errorf("%w: slot %d", domain.ErrSlotBusy, slot)
		}

		e.Status = domain.SlotActive
		e.CharacterID = characterID
		e.StartedAt = s.clock.Now()
		e.DurationSec = tier.DurationSec
		e.BaseReward = tier.BaseReward
		if _, err := s.store.Put(ctx, store.ExpeditionKey(playerID, slot), e, version); err != nil {
			return fmt.Errorf("failed to persist expedition start: %w", err)
		}
		started = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Expedition started",
		"player_id", playerID, "slot", slot, "character_id", characterID, "tier", tierKey)
	v := s.view(ctx, playerID, slot, started)
	return &v, nil
}

func (s *service) Preview(ctx context.Context, playerID string, slot int) (int, error) {
	if slot < 0 || slot >= domain.ExpeditionSlotCount {
		return 0, fmt.Errorf("%w: slot %d out of range", domain.ErrInvalidInput, slot)
	}
	e, _, err := s.load(ctx, playerID, slot)
	if err != nil {
		return 0, err
	}
	if e.Status == domain.SlotIdle {
		return 0, fmt.Errorf("%w: slot %d", domain.ErrSlotIdle, slot)
	}
	return s.preview(ctx, playerID, e)
}

func (s *service) Collect(ctx context.Context, playerID string, slot int) (*CollectResult, error) {
	if slot < 0 || slot >= domain.ExpeditionSlotCount {
		return nil, fmt.Errorf("%w: slot %d out of range", domain.ErrInvalidInput, slot)
	}

	var reward int
	key := store.ExpeditionKey(playerID, slot)
	err := s.locks.WithLock(key, func() error {
		e, version, err := s.refresh(ctx, playerID, slot)
		if err != nil {
			return err
		}
		if e.Status == domain.SlotIdle {
			return fmt.Errorf("%w: slot %d", domain.ErrSlotIdle, slot)
		}
		if e.Status != domain.SlotComplete {
			return fmt.Errorf("%w: slot %d matures at %s", domain.ErrSlotNotComplete, slot, e.MaturesAt().Format(time.RFC3339))
		}

		// Reward uses the enhancement level at collection time, not the
		// level frozen at start.
		reward, err = s.preview(ctx, playerID, e)
		if err != nil {
			return err
		}

		e.Clear()
		if _, err := s.store.Put(ctx, key, e, version); err != nil {
			return fmt.Errorf("failed to persist collected slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	wallet, err := s.wallet.Earn(ctx, playerID, reward, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to credit expedition reward: %w", err)
	}

	metrics.ExpeditionCollectsTotal.Inc()
	logger.FromContext(ctx).Info("Expedition collected", "player_id", playerID, "slot", slot, "reward", reward)

	if s.achievements != nil {
		if err := s.achievements.Unlock(ctx, playerID, AchievementFirstCollect); err != nil {
			logger.FromContext(ctx).Warn("Failed to unlock achievement", "error", err)
		}
	}
	return &CollectResult{Reward: reward, Wallet: wallet}, nil
}
