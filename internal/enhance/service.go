package enhance

import (
	"context"
	"fmt"

	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/content"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/logger"
	"github.com/pawprintgames/gachapet/internal/metrics"
	"github.com/pawprintgames/gachapet/internal/store"
)

// AchievementMaxLevel is unlocked the first time a character reaches the cap
const AchievementMaxLevel = "ach_enhance_max"

// Status reports how an enhance attempt ended
type Status string

const (
	// StatusEnhanced means the duplicates were consumed and the level advanced
	StatusEnhanced Status = "enhanced"
	// StatusAlreadyMaxed means the character is at the cap; nothing changed
	StatusAlreadyMaxed Status = "already_maxed"
)

// Result is the outcome of an enhance attempt
type Result struct {
	Status     Status `json:"status"`
	Level      int    `json:"level"`
	Duplicates int    `json:"duplicates"`
	CostPaid   int    `json:"cost_paid"`
}

// Recorder unlocks achievements as a side effect of enhancement milestones
type Recorder interface {
	Unlock(ctx context.Context, playerID, achievementID string) error
}

// Service defines the interface for enhancement operations. Enhancing is
// atomic: either the duplicate deduction and the level increment both
// persist, or neither does.
type Service interface {
	Get(ctx context.Context, playerID, characterID string) (*domain.Enhancement, error)
	Stats(ctx context.Context, playerID, characterID string) (*domain.DerivedStats, error)
	LevelFor(ctx context.Context, playerID, characterID string) (int, error)
	Enhance(ctx context.Context, playerID, characterID string) (*Result, error)
	AddDuplicate(ctx context.Context, playerID, characterID string) (int, error)
}

type service struct {
	store        store.Store
	locks        *concurrency.LockManager
	tables       *content.Tables
	achievements Recorder
}

// NewService creates a new enhancement service. achievements may be nil.
func NewService(st store.Store, locks *concurrency.LockManager, tables *content.Tables, achievements Recorder) Service {
	return &service{store: st, locks: locks, tables: tables, achievements: achievements}
}

func (s *service) load(ctx context.Context, playerID, characterID string) (*domain.Enhancement, int64, error) {
	e := domain.NewEnhancement()
	meta, err := s.store.Get(ctx, store.EnhancementKey(playerID, characterID), e)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load enhancement: %w", err)
	}
	e.Normalize()
	return e, meta.Version, nil
}

func (s *service) Get(ctx context.Context, playerID, characterID string) (*domain.Enhancement, error) {
	e, _, err := s.load(ctx, playerID, characterID)
	return e, err
}

func (s *service) LevelFor(ctx context.Context, playerID, characterID string) (int, error) {
	e, _, err := s.load(ctx, playerID, characterID)
	if err != nil {
		return 0, err
	}
	return e.Level, nil
}

// Stats recomputes the character's effective stats from its grade
// configuration and current level. Derived, never persisted.
func (s *service) Stats(ctx context.Context, playerID, characterID string) (*domain.DerivedStats, error) {
	char, ok := s.tables.Character(characterID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterUnknown, characterID)
	}
	e, _, err := s.load(ctx, playerID, characterID)
	if err != nil {
		return nil, err
	}
	stats := StatsAt(s.tables.Grade(char.Grade), e.Level)
	return &stats, nil
}

// Enhance spends cost(level) duplicates and advances the level by one.
// At the cap it reports already_maxed and changes nothing.
func (s *service) Enhance(ctx context.Context, playerID, characterID string) (*Result, error) {
	if _, ok := s.tables.Character(characterID); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterUnknown, characterID)
	}

	var result *Result
	key := store.EnhancementKey(playerID, characterID)
	err := s.locks.WithLock(key, func() error {
		e, version, err := s.load(ctx, playerID, characterID)
		if err != nil {
			return err
		}

		if e.Level >= domain.MaxEnhancementLevel {
			result = &Result{Status: StatusAlreadyMaxed, Level: e.Level, Duplicates: e.Duplicates}
			return nil
		}

		cost := domain.EnhancementCost(e.Level)
		if e.Duplicates < cost {
			return fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientDuplicates, cost, e.Duplicates)
		}

		e.Duplicates -= cost
		e.Level++
		if _, err := s.store.Put(ctx, key, e, version); err != nil {
			return fmt.Errorf("failed to persist enhancement: %w", err)
		}
		result = &Result{Status: StatusEnhanced, Level: e.Level, Duplicates: e.Duplicates, CostPaid: cost}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Status == StatusEnhanced {
		metrics.EnhancementsTotal.Inc()
		logger.FromContext(ctx).Info("Character enhanced",
			"player_id", playerID, "character_id", characterID, "level", result.Level, "cost", result.CostPaid)
		if result.Level == domain.MaxEnhancementLevel && s.achievements != nil {
			if err := s.achievements.Unlock(ctx, playerID, AchievementMaxLevel); err != nil {
				logger.FromContext(ctx).Warn("Failed to unlock achievement", "error", err)
			}
		}
	}
	return result, nil
}

// AddDuplicate credits one duplicate token and returns the new count
func (s *service) AddDuplicate(ctx context.Context, playerID, characterID string) (int, error) {
	var count int
	key := store.EnhancementKey(playerID, characterID)
	err := s.locks.WithLock(key, func() error {
		e, version, err := s.load(ctx, playerID, characterID)
		if err != nil {
			return err
		}
		e.Duplicates++
		if _, err := s.store.Put(ctx, key, e, version); err != nil {
			return fmt.Errorf("failed to persist enhancement: %w", err)
		}
		count = e.Duplicates
		return nil
	})
	return count, err
}
