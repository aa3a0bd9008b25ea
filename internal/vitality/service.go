// Package vitality is the regeneration engine: per-character HP that heals
// over elapsed real time. There is no background timer; healing is credited
// lazily on the next read, which makes catch-up correct across process
// suspension.
package vitality

import (
	"context"
	"fmt"
	"time"

	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/logger"
	"github.com/pawprintgames/gachapet/internal/store"
	"github.com/pawprintgames/gachapet/internal/timewindow"
)

// StatsProvider supplies the character's current derived stats; the tap
// odometer needs the HP-loss interval, which grows with enhancement level.
type StatsProvider interface {
	Stats(ctx context.Context, playerID, characterID string) (*domain.DerivedStats, error)
}

// TapResult is the outcome of one tap event
type TapResult struct {
	Vitality *domain.Vitality `json:"vitality"`
	HPLost   bool             `json:"hp_lost"`
}

// Service defines the interface for vitality operations
type Service interface {
	// Read returns the record with elapsed-minute healing credited and
	// persisted. Absent records materialize at full HP.
	Read(ctx context.Context, playerID, characterID string) (*domain.Vitality, error)
	// Write clamps hp into range, stamps last_update and persists
	// unconditionally. It does not credit healing itself.
	Write(ctx context.Context, playerID, characterID string, hp, tapCount int) (*domain.Vitality, error)
	// RecordTap advances the tap odometer by one tap: the write either
	// increments tap_count or resets it and costs exactly one HP, never both.
	RecordTap(ctx context.Context, playerID, characterID string) (*TapResult, error)
}

type service struct {
	store store.Store
	locks *concurrency.LockManager
	clock timewindow.Clock
	stats StatsProvider
}

// NewService creates a new vitality service
func NewService(st store.Store, locks *concurrency.LockManager, clock timewindow.Clock, stats StatsProvider) Service {
	return &service{store: st, locks: locks, clock: clock, stats: stats}
}

func (s *service) load(ctx context.Context, playerID, characterID string) (*domain.Vitality, int64, error) {
	now := s.clock.Now()
	v := domain.NewVitality(now)
	meta, err := s.store.Get(ctx, store.VitalityKey(playerID, characterID), v)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load vitality: %w", err)
	}
	v.Normalize(now)
	return v, meta.Version, nil
}

// applyRegen credits one HP per whole elapsed minute, capped at MaxHP.
// Returns true when the record changed and needs persisting.
func (s *service) applyRegen(v *domain.Vitality) bool {
	now := s.clock.Now()
	minutes := int(now.Sub(v.LastUpdate) / time.Minute)
	if minutes <= 0 {
		return false
	}
	v.HP = domain.ClampHP(v.HP + minutes)
	v.LastUpdate = now
	return true
}

func (s *service) Read(ctx context.Context, playerID, characterID string) (*domain.Vitality, error) {
	var result *domain.Vitality
	key := store.VitalityKey(playerID, characterID)
	err := s.locks.WithLock(key, func() error {
		v, version, err := s.load(ctx, playerID, characterID)
		if err != nil {
			return err
		}
		if s.applyRegen(v) {
			if _, err := s.store.Put(ctx, key, v, version); err != nil {
				return fmt.Errorf("failed to persist vitality: %w", err)
			}
		}
		result = v
		return nil
	})
	return result, err
}

func (s *service) Write(ctx context.Context, playerID, characterID string, hp, tapCount int) (*domain.Vitality, error) {
	if tapCount < 0 {
		return nil, fmt.Errorf("%w: negative tap count", domain.ErrInvalidInput)
	}

	var result *domain.Vitality
	key := store.VitalityKey(playerID, characterID)
	err := s.locks.WithLock(key, func() error {
		v, version, err := s.load(ctx, playerID, characterID)
		if err != nil {
			return err
		}
		v.HP = domain.ClampHP(hp)
		v.TapCount = tapCount
		v.LastUpdate = s.clock.Now()
		if _, err := s.store.Put(ctx, key, v, version); err != nil {
			return fmt.Errorf("failed to persist vitality: %w", err)
		}
		result = v
		return nil
	})
	return result, err
}

func (s *service) RecordTap(ctx context.Context, playerID, characterID string) (*TapResult, error) {
	stats, err := s.stats.Stats(ctx, playerID, characterID)
	if err != nil {
		return nil, err
	}
	interval := stats.HPLossInterval
	if interval < 1 {
		interval = 1
	}

	var result *TapResult
	key := store.VitalityKey(playerID, characterID)
	err = s.locks.WithLock(key, func() error {
		v, version, err := s.load(ctx, playerID, characterID)
		if err != nil {
			return err
		}
		// Healing earned while the app was away is credited before the tap
		// is applied, so a decrement never eats into stale HP.
		s.applyRegen(v)

		hpLost := false
		if v.TapCount+1 >= interval {
			v.TapCount = 0
			v.HP = domain.ClampHP(v.HP - 1)
			hpLost = true
		} else {
			v.TapCount++
		}
		v.LastUpdate = s.clock.Now()

		if _, err := s.store.Put(ctx, key, v, version); err != nil {
			return fmt.Errorf("failed to persist vitality: %w", err)
		}
		result = &TapResult{Vitality: v, HPLost: hpLost}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.HPLost {
		logger.FromContext(ctx).Debug("Tap cost HP",
			"player_id", playerID, "character_id", characterID, "hp", result.Vitality.HP)
	}
	return result, nil
}
