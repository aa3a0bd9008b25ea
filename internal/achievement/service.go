// Package achievement tracks one-time unlocks and their claimable rewards.
// Unlocks are monotonic and idempotent; each reward pays out at most once.
package achievement

import (
	"context"
	"fmt"

	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/content"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/logger"
	"github.com/pawprintgames/gachapet/internal/store"
)

// Granter credits achievement claim rewards
type Granter interface {
	Grant(ctx context.Context, playerID string, r domain.Reward) error
}

// View is one achievement definition joined with the player's state
type View struct {
	Def      content.AchievementDef `json:"def"`
	Unlocked bool                   `json:"unlocked"`
	Claimed  bool                   `json:"claimed"`
}

// ClaimResult is the outcome of claiming an unlocked achievement
type ClaimResult struct {
	Achievement content.AchievementDef `json:"achievement"`
	Reward      domain.Reward          `json:"reward"`
}

// Service defines the interface for achievement tracking
type Service interface {
	List(ctx context.Context, playerID string) ([]View, error)
	Unlock(ctx context.Context, playerID, achievementID string) error
	Claim(ctx context.Context, playerID, achievementID string) (*ClaimResult, error)
}

type service struct {
	store   store.Store
	locks   *concurrency.LockManager
	tables  *content.Tables
	granter Granter
}

// NewService creates a new achievement service
func NewService(st store.Store, locks *concurrency.LockManager, tables *content.Tables, granter Granter) Service {
	return &service{store: st, locks: locks, tables: tables, granter: granter}
}

func (s *service) load(ctx context.Context, playerID string) (*domain.Achievements, int64, error) {
	ach := domain.NewAchievements()
	meta, err := s.store.Get(ctx, store.AchievementsKey(playerID), ach)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load achievements: %w", err)
	}
	ach.Normalize()
	return ach, meta.Version, nil
}

func (s *service) List(ctx context.Context, playerID string) ([]View, error) {
	ach, _, err := s.load(ctx, playerID)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(s.tables.Achievements))
	for _, def := range s.tables.Achievements {
		views = append(views, View{
			Def:      def,
			Unlocked: ach.IsUnlocked(def.ID),
			Claimed:  ach.IsClaimed(def.ID),
		})
	}
	return views, nil
}

// Unlock marks an achievement reached. Unknown IDs and repeat unlocks are
// no-ops so gameplay paths can call this unconditionally.
func (s *service) Unlock(ctx context.Context, playerID, achievementID string) error {
	if _, ok := s.tables.Achievement(achievementID); !ok {
		logger.FromContext(ctx).Warn("Ignoring unknown achievement unlock",
			"player_id", playerID, "achievement_id", achievementID)
		return nil
	}

	return s.locks.WithLock(store.AchievementsKey(playerID), func() error {
		ach, version, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}
		if !ach.Unlock(achievementID) {
			return nil
		}
		if _, err := s.store.Put(ctx, store.AchievementsKey(playerID), ach, version); err != nil {
			return fmt.Errorf("failed to persist achievement unlock: %w", err)
		}
		logger.FromContext(ctx).Info("Achievement unlocked",
			"player_id", playerID, "achievement_id", achievementID)
		return nil
	})
}

func (s *service) Claim(ctx context.Context, playerID, achievementID string) (*ClaimResult, error) {
	def, ok := s.tables.Achievement(achievementID)
	if !ok {
		return nil, fmt.Errorf("%w: achievement %s", domain.ErrItemUnknown, achievementID)
	}

	err := s.locks.WithLock(store.AchievementsKey(playerID), func() error {
		ach, version, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}
		if !ach.IsUnlocked(achievementID) {
			return fmt.Errorf("%w: achievement %s not unlocked", domain.ErrQuestIncomplete, achievementID)
		}
		if ach.IsClaimed(achievementID) {
			return fmt.Errorf("%w: achievement %s", domain.ErrAlreadyClaimed, achievementID)
		}
		ach.Claimed = append(ach.Claimed, achievementID)
		if _, err := s.store.Put(ctx, store.AchievementsKey(playerID), ach, version); err != nil {
			return fmt.Errorf("failed to persist achievement claim: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.granter.Grant(ctx, playerID, def.Reward); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Achievement claimed",
		"player_id", playerID, "achievement_id", achievementID)
	return &ClaimResult{Achievement: def, Reward: def.Reward}, nil
}
