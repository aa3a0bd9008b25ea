// Package attendance implements the daily check-in streak. One claim per
// calendar day; a claim on the day after the previous one extends the streak,
// any gap resets it to 1.
package attendance

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

// Granter credits attendance rewards
type Granter interface {
	Grant(ctx context.Context, playerID string, r domain.Reward) error
}

// Recorder feeds claim events into progress tracking. Optional.
type Recorder interface {
	Track(ctx context.Context, playerID string, event domain.ProgressEvent, n int)
}

// Status is the player's streak state plus whether today is still claimable
type Status struct {
	ConsecutiveDays int           `json:"consecutive_days"`
	LastClaimDate   string        `json:"last_claim_date,omitempty"`
	ClaimedToday    bool          `json:"claimed_today"`
	NextReward      domain.Reward `json:"next_reward"`
}

// ClaimResult is the outcome of a successful check-in
type ClaimResult struct {
	ConsecutiveDays int           `json:"consecutive_days"`
	Reward          domain.Reward `json:"reward"`
}

// Service defines the interface for attendance tracking
type Service interface {
	Status(ctx context.Context, playerID string) (*Status, error)
	Claim(ctx context.Context, playerID string) (*ClaimResult, error)
}

type service struct {
	store    store.Store
	locks    *concurrency.LockManager
	clock    timewindow.Clock
	tables   *content.Tables
	granter  Granter
	recorder Recorder
}

// NewService creates a new attendance service. recorder may be nil.
func NewService(st store.Store, locks *concurrency.LockManager, clock timewindow.Clock, tables *content.Tables, granter Granter, recorder Recorder) Service {
	return &service{store: st, locks: locks, clock: clock, tables: tables, granter: granter, recorder: recorder}
}

func (s *service) load(ctx context.Context, playerID string) (*domain.Attendance, int64, error) {
	att := domain.NewAttendance()
	meta, err := s.store.Get(ctx, store.AttendanceKey(playerID), att)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load attendance: %w", err)
	}
	att.Normalize()
	return att, meta.Version, nil
}

func (s *service) Status(ctx context.Context, playerID string) (*Status, error) {
	att, _, err := s.load(ctx, playerID)
	if err != nil {
		return nil, err
	}

	today := timewindow.Today(s.clock)
	next := att.ConsecutiveDays + 1
	if att.LastClaimDate != timewindow.Yesterday(s.clock) {
		next = 1
	}
	if att.ClaimedOn(today) {
		next = att.ConsecutiveDays
	}
	return &Status{
		ConsecutiveDays: att.ConsecutiveDays,
		LastClaimDate:   att.LastClaimDate,
		ClaimedToday:    att.ClaimedOn(today),
		NextReward:      s.tables.AttendanceReward(next),
	}, nil
}

// Claim performs today's check-in
func (s *service) Claim(ctx context.Context, playerID string) (*ClaimResult, error) {
	var result *ClaimResult
	err := s.locks.WithLock(store.AttendanceKey(playerID), func() error {
		att, version, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}

		today := timewindow.Today(s.clock)
		if att.ClaimedOn(today) {
			return fmt.Errorf("%w: attendance for %s", domain.ErrAlreadyClaimed, today)
		}

		if att.LastClaimDate == timewindow.Yesterday(s.clock) {
			att.ConsecutiveDays++
		} else {
			att.ConsecutiveDays = 1
		}
		att.LastClaimDate = today

		if _, err := s.store.Put(ctx, store.AttendanceKey(playerID), att, version); err != nil {
			return fmt.Errorf("failed to persist attendance: %w", err)
		}
		result = &ClaimResult{
			ConsecutiveDays: att.ConsecutiveDays,
			Reward:          s.tables.AttendanceReward(att.ConsecutiveDays),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.granter.Grant(ctx, playerID, result.Reward); err != nil {
		return nil, err
	}
	if s.recorder != nil {
		s.recorder.Track(ctx, playerID, domain.EventAttendanceClaim, 1)
	}

	metrics.AttendanceClaimsTotal.Inc()
	logger.FromContext(ctx).Info("Attendance claimed",
		"player_id", playerID, "consecutive_days", result.ConsecutiveDays)
	return result, nil
}
