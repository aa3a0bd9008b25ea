// Package tutorial runs the first-session step machine. Steps advance
// linearly off gameplay events and the state is persisted so an interrupted
// tutorial resumes where it left off. The machine fails open: a step whose
// precondition can no longer be met is skipped, never blocking the player.
package tutorial

import (
	"context"
	"fmt"

	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/logger"
	"github.com/pawprintgames/gachapet/internal/store"
)

// OwnershipChecker verifies the equip step's target is still obtainable
type OwnershipChecker interface {
	Owns(ctx context.Context, playerID, characterID string) (bool, error)
}

// State is the tutorial machine as reported to clients
type State struct {
	Step            int    `json:"step"`
	Active          bool   `json:"active"`
	TargetCharacter string `json:"target_character,omitempty"`
}

// Service defines the interface for tutorial progression
type Service interface {
	Get(ctx context.Context, playerID string) (*State, error)
	// Acknowledge advances past the welcome step on explicit client request
	Acknowledge(ctx context.Context, playerID string) (*State, error)
	// OnEvent advances the machine when a gameplay event satisfies the
	// current step. Unrelated events are ignored.
	OnEvent(ctx context.Context, playerID string, event domain.ProgressEvent) error
	// SetTarget records the character the equip step will point at
	SetTarget(ctx context.Context, playerID, characterID string) error
}

type service struct {
	store  store.Store
	locks  *concurrency.LockManager
	owners OwnershipChecker
}

// NewService creates a new tutorial service
func NewService(st store.Store, locks *concurrency.LockManager, owners OwnershipChecker) Service {
	return &service{store: st, locks: locks, owners: owners}
}

func (s *service) load(ctx context.Context, playerID string) (*domain.Tutorial, int64, error) {
	t := domain.NewTutorial()
	meta, err := s.store.Get(ctx, store.TutorialKey(playerID), t)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load tutorial: %w", err)
	}
	t.Normalize()
	return t, meta.Version, nil
}

// stepFor maps a gameplay event to the step it completes
func stepFor(event domain.ProgressEvent) int {
	switch event {
	case domain.EventGachaRoll:
		return domain.TutorialFirstRoll
	case domain.EventCharacterSelect:
		return domain.TutorialEquip
	case domain.EventTap:
		return domain.TutorialFirstTap
	default:
		return domain.TutorialDone
	}
}

// failOpen skips the equip step when its target character cannot be equipped.
// A misconfigured or lost target must never strand the player mid-tutorial.
func (s *service) failOpen(ctx context.Context, playerID string, t *domain.Tutorial) bool {
	if t.Step != domain.TutorialEquip || t.TargetCharacter == "" {
		return false
	}
	owned, err := s.owners.Owns(ctx, playerID, t.TargetCharacter)
	if err != nil {
		logger.FromContext(ctx).Warn("Skipping tutorial equip step, ownership check failed",
			"player_id", playerID, "target", t.TargetCharacter, "error", err)
		t.Step = advance(t.Step)
		return true
	}
	if !owned {
		logger.FromContext(ctx).Warn("Skipping tutorial equip step, target not owned",
			"player_id", playerID, "target", t.TargetCharacter)
		t.Step = advance(t.Step)
		return true
	}
	return false
}

func advance(step int) int {
	if step >= domain.TutorialFinalStep {
		return domain.TutorialDone
	}
	return step + 1
}

func toState(t *domain.Tutorial) *State {
	return &State{Step: t.Step, Active: t.Active(), TargetCharacter: t.TargetCharacter}
}

func (s *service) Get(ctx context.Context, playerID string) (*State, error) {
	var state *State
	err := s.locks.WithLock(store.TutorialKey(playerID), func() error {
		t, version, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}
		if s.failOpen(ctx, playerID, t) {
			if _, err := s.store.Put(ctx, store.TutorialKey(playerID), t, version); err != nil {
				return fmt.Errorf("failed to persist tutorial: %w", err)
			}
		}
		state = toState(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *service) Acknowledge(ctx context.Context, playerID string) (*State, error) {
	var state *State
	err := s.locks.WithLock(store.TutorialKey(playerID), func() error {
		t, version, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}
		if t.Step == domain.TutorialWelcome {
			t.Step = advance(t.Step)
			if _, err := s.store.Put(ctx, store.TutorialKey(playerID), t, version); err != nil {
				return fmt.Errorf("failed to persist tutorial: %w", err)
			}
		}
		state = toState(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *service) SetTarget(ctx context.Context, playerID, characterID string) error {
	return s.locks.WithLock(store.TutorialKey(playerID), func() error {
		t, version, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}
		if !t.Active() || t.TargetCharacter == characterID {
			return nil
		}
		t.TargetCharacter = characterID
		if _, err := s.store.Put(ctx, store.TutorialKey(playerID), t, version); err != nil {
			return fmt.Errorf("failed to persist tutorial: %w", err)
		}
		return nil
	})
}

func (s *service) OnEvent(ctx context.Context, playerID string, event domain.ProgressEvent) error {
	want := stepFor(event)
	if want == domain.TutorialDone {
		return nil
	}

	return s.locks.WithLock(store.TutorialKey(playerID), func() error {
		t, version, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}
		if !t.Active() {
			return nil
		}

		changed := s.failOpen(ctx, playerID, t)
		if t.Step == want {
			t.Step = advance(t.Step)
			changed = true
		}
		if !changed {
			return nil
		}
		if _, err := s.store.Put(ctx, store.TutorialKey(playerID), t, version); err != nil {
			return fmt.Errorf("failed to persist tutorial: %w", err)
		}
		if !t.Active() {
			logger.FromContext(ctx).Info("Tutorial completed", "player_id", playerID)
		}
		return nil
	})
}
