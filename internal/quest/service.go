// Package quest tracks daily and weekly quest counters with lazy,
// read-triggered resets: there is no scheduled job, the stored boundary
// identifier is compared to the current one on every load and the cycle is
// zeroed when they differ.
package quest

import (
	"context"
	"fmt"

	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/content"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/logger"
	"github.com/pawprintgames/gachapet/internal/metrics"
	"github.com/pawprintgames/gachapet/internal/store"
	"github.com/pawprintgames/gachapet/internal/timewindow"
)

// CycleKind selects the daily or weekly quest block
type CycleKind string

const (
	CycleDaily  CycleKind = "daily"
	CycleWeekly CycleKind = "weekly"
)

// QuestView is one quest definition joined with the player's progress
type QuestView struct {
	Def      content.QuestDef `json:"def"`
	Count    int              `json:"count"`
	Claimed  bool             `json:"claimed"`
	Complete bool             `json:"complete"`
}

// Progress is the player's full quest state after lazy resets applied
type Progress struct {
	Daily  []QuestView `json:"daily"`
	Weekly []QuestView `json:"weekly"`
}

// ClaimResult is the outcome of claiming a completed quest
type ClaimResult struct {
	Quest  content.QuestDef `json:"quest"`
	Reward domain.Reward    `json:"reward"`
}

// Granter credits claim rewards
type Granter interface {
	Grant(ctx context.Context, playerID string, r domain.Reward) error
}

// Service defines the interface for quest progress tracking
type Service interface {
	Progress(ctx context.Context, playerID string) (*Progress, error)
	Record(ctx context.Context, playerID string, event domain.ProgressEvent, n int) error
	Claim(ctx context.Context, playerID string, cycle CycleKind, index int) (*ClaimResult, error)
}

type service struct {
	store   store.Store
	locks   *concurrency.LockManager
	clock   timewindow.Clock
	tables  *content.Tables
	granter Granter
}

// NewService creates a new quest service
func NewService(st store.Store, locks *concurrency.LockManager, clock timewindow.Clock, tables *content.Tables, granter Granter) Service {
	return &service{store: st, locks: locks, clock: clock, tables: tables, granter: granter}
}

// load reads the record and applies lazy cycle resets. The second return
// reports whether a reset happened and the record needs persisting.
func (s *service) load(ctx context.Context, playerID string) (*domain.QuestProgress, int64, bool, error) {
	qp := domain.NewQuestProgress()
	meta, err := s.store.Get(ctx, store.QuestsKey(playerID), qp)
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to load quest progress: %w", err)
	}
	qp.Normalize()

	changed := false
	if today := timewindow.Today(s.clock); qp.Daily.Boundary != today {
		qp.Daily.Reset(today, domain.DailyQuestCount)
		changed = true
	}
	if week := timewindow.WeekStart(s.clock); qp.Weekly.Boundary != week {
		qp.Weekly.Reset(week, domain.WeeklyQuestCount)
		changed = true
	}
	return qp, meta.Version, changed, nil
}

func (s *service) views(qp *domain.QuestProgress) *Progress {
	p := &Progress{}
	for i, def := range s.tables.DailyQuests {
		p.Daily = append(p.Daily, QuestView{
			Def:      def,
			Count:    qp.Daily.Counters[i],
			Claimed:  qp.Daily.Claimed[i],
			Complete: qp.Daily.Counters[i] >= def.Goal,
		})
	}
	for i, def := range s.tables.WeeklyQuests {
		p.Weekly = append(p.Weekly, QuestView{
			Def:      def,
			Count:    qp.Weekly.Counters[i],
			Claimed:  qp.Weekly.Claimed[i],
			Complete: qp.Weekly.Counters[i] >= def.Goal,
		})
	}
	return p
}

func (s *service) Progress(ctx context.Context, playerID string) (*Progress, error) {
	var qp *domain.QuestProgress
	err := s.locks.WithLock(store.QuestsKey(playerID), func() error {
		var version int64
		var changed bool
		var err error
		qp, version, changed, err = s.load(ctx, playerID)
		if err != nil {
			return err
		}
		if changed {
			if _, err := s.store.Put(ctx, store.QuestsKey(playerID), qp, version); err != nil {
				return fmt.Errorf("failed to persist quest reset: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.views(qp), nil
}

// Record bumps every unclaimed quest counting the given event
func (s *service) Record(ctx context.Context, playerID string, event domain.ProgressEvent, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: non-positive event count", domain.ErrInvalidInput)
	}

	return s.locks.WithLock(store.QuestsKey(playerID), func() error {
		qp, version, changed, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}

		for i, def := range s.tables.DailyQuests {
			if def.Event == event && !qp.Daily.Claimed[i] {
				qp.Daily.Counters[i] += n
				changed = true
			}
		}
		for i, def := range s.tables.WeeklyQuests {
			if def.Event == event && !qp.Weekly.Claimed[i] {
				qp.Weekly.Counters[i] += n
				changed = true
			}
		}

		if !changed {
			return nil
		}
		if _, err := s.store.Put(ctx, store.QuestsKey(playerID), qp, version); err != nil {
			return fmt.Errorf("failed to persist quest progress: %w", err)
		}
		return nil
	})
}

// Claim grants a completed quest's reward. Idempotent per cycle: the claim
// flag blocks re-granting until the next reset.
func (s *service) Claim(ctx context.Context, playerID string, cycle CycleKind, index int) (*ClaimResult, error) {
	var defs []content.QuestDef
	switch cycle {
	case CycleDaily:
		defs = s.tables.DailyQuests
	case CycleWeekly:
		defs = s.tables.WeeklyQuests
	default:
		return nil, fmt.Errorf("%w: unknown cycle %q", domain.ErrInvalidInput, cycle)
	}
	if index < 0 || index >= len(defs) {
		return nil, fmt.Errorf("%w: quest index %d out of range", domain.ErrInvalidInput, index)
	}
	def := defs[index]

	err := s.locks.WithLock(store.QuestsKey(playerID), func() error {
		qp, version, _, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}

		block := &qp.Daily
		if cycle == CycleWeekly {
			block = &qp.Weekly
		}
		if block.Claimed[index] {
			return fmt.Errorf("%w: quest %q", domain.ErrAlreadyClaimed, def.Key)
		}
		if block.Counters[index] < def.Goal {
			return fmt.Errorf("%w: quest %q at %d/%d", domain.ErrQuestIncomplete, def.Key, block.Counters[index], def.Goal)
		}

		block.Claimed[index] = true
		if _, err := s.store.Put(ctx, store.QuestsKey(playerID), qp, version); err != nil {
			return fmt.Errorf("failed to persist quest claim: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.granter.Grant(ctx, playerID, def.Reward); err != nil {
		return nil, err
	}

	metrics.QuestClaimsTotal.WithLabelValues(string(cycle)).Inc()
	logger.FromContext(ctx).Info("Quest claimed", "player_id", playerID, "cycle", cycle, "quest", def.Key)
	return &ClaimResult{Quest: def, Reward: def.Reward}, nil
}
