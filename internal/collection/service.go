package collection

import (
	"context"
	"fmt"

	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/content"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/logger"
	"github.com/pawprintgames/gachapet/internal/store"
)

// BusyChecker reports whether a character is tied up in an expedition.
// A busy character cannot become the selected character.
type BusyChecker interface {
	IsCharacterBusy(ctx context.Context, playerID, characterID string) (bool, error)
}

// Service defines the interface for roster ownership, character selection
// and skins. The owned set only grows; selection must reference an owned,
// non-busy character; an equipped skin must be owned.
type Service interface {
	Get(ctx context.Context, playerID string) (*domain.Collection, error)
	Add(ctx context.Context, playerID, characterID string) (bool, error)
	Select(ctx context.Context, playerID, characterID string) (*domain.Collection, error)
	Owns(ctx context.Context, playerID, characterID string) (bool, error)

	GetSkins(ctx context.Context, playerID string) (*domain.Skins, error)
	AddSkin(ctx context.Context, playerID, skinID string) error
	EquipSkin(ctx context.Context, playerID, characterID, skinID string) (*domain.Skins, error)
}

type service struct {
	store  store.Store
	locks  *concurrency.LockManager
	tables *content.Tables
	busy   BusyChecker
}

// NewService creates a new collection service. The busy checker is attached
// after construction because the expedition service is built on top of this
// one.
func NewService(st store.Store, locks *concurrency.LockManager, tables *content.Tables) *ServiceImpl {
	return &ServiceImpl{service{store: st, locks: locks, tables: tables}}
}

// ServiceImpl exposes the setter needed at wiring time
type ServiceImpl struct {
	service
}

// SetBusyChecker attaches the expedition-side busy check
func (s *ServiceImpl) SetBusyChecker(b BusyChecker) {
	s.busy = b
}

func (s *service) load(ctx context.Context, playerID string) (*domain.Collection, int64, error) {
	c := domain.NewCollection()
	meta, err := s.store.Get(ctx, store.CollectionKey(playerID), c)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load collection: %w", err)
	}
	c.Normalize()
	return c, meta.Version, nil
}

func (s *service) Get(ctx context.Context, playerID string) (*domain.Collection, error) {
	c, _, err := s.load(ctx, playerID)
	return c, err
}

func (s *service) Owns(ctx context.Context, playerID, characterID string) (bool, error) {
	c, _, err := s.load(ctx, playerID)
	if err != nil {
		return false, err
	}
	return c.Owns(characterID), nil
}

// Add inserts a character into the owned set. Returns true when the
// character was newly added, false when it was already owned.
func (s *service) Add(ctx context.Context, playerID, characterID string) (bool, error) {
	if _, ok := s.tables.Character(characterID); !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrCharacterUnknown, characterID)
	}

	added := false
	err := s.locks.WithLock(store.CollectionKey(playerID), func() error {
		c, version, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}
		if !c.Add(characterID) {
			return nil
		}
		if _, err := s.store.Put(ctx, store.CollectionKey(playerID), c, version); err != nil {
			return fmt.Errorf("failed to persist collection: %w", err)
		}
		added = true
		return nil
	})
	return added, err
}

// Select sets the player's active character. A character mid-expedition is a
// forbidden selection, not just a UI restriction.
func (s *service) Select(ctx context.Context, playerID, characterID string) (*domain.Collection, error) {
	if s.busy != nil {
		busy, err := s.busy.IsCharacterBusy(ctx, playerID, characterID)
		if err != nil {
			return nil, err
		}
		if busy {
			return nil, fmt.Errorf("%w: %s is on an expedition", domain.ErrCharacterBusy, characterID)
		}
	}

	var result *domain.Collection
	err := s.locks.WithLock(store.CollectionKey(playerID), func() error {
		c, version, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}
		if !c.Owns(characterID) {
			return fmt.Errorf("%w: %s", domain.ErrCharacterNotOwned, characterID)
		}
		c.Selected = characterID
		if _, err := s.store.Put(ctx, store.CollectionKey(playerID), c, version); err != nil {
			return fmt.Errorf("failed to persist collection: %w", err)
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Character selected", "player_id", playerID, "character_id", characterID)
	return result, nil
}
