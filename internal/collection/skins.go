package collection

import (
	"context"
	"fmt"

	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/store"
)

func (s *service) loadSkins(ctx context.Context, playerID string) (*domain.Skins, int64, error) {
	sk := domain.NewSkins()
	meta, err := s.store.Get(ctx, store.SkinsKey(playerID), sk)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load skins: %w", err)
	}
	sk.Normalize()
	return sk, meta.Version, nil
}

func (s *service) GetSkins(ctx context.Context, playerID string) (*domain.Skins, error) {
	sk, _, err := s.loadSkins(ctx, playerID)
	return sk, err
}

// AddSkin inserts a skin into the owned set. Idempotent.
func (s *service) AddSkin(ctx context.Context, playerID, skinID string) error {
	if _, ok := s.tables.Skin(skinID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrSkinUnknown, skinID)
	}

	return s.locks.WithLock(store.SkinsKey(playerID), func() error {
		sk, version, err := s.loadSkins(ctx, playerID)
		if err != nil {
			return err
		}
		if !sk.AddSkin(skinID) {
			return nil
		}
		if _, err := s.store.Put(ctx, store.SkinsKey(playerID), sk, version); err != nil {
			return fmt.Errorf("failed to persist skins: %w", err)
		}
		return nil
	})
}

// EquipSkin assigns an owned skin to an owned character. An empty skinID
// unequips.
func (s *service) EquipSkin(ctx context.Context, playerID, characterID, skinID string) (*domain.Skins, error) {
	owns, err := s.Owns(ctx, playerID, characterID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterNotOwned, characterID)
	}

	var result *domain.Skins
	err = s.locks.WithLock(store.SkinsKey(playerID), func() error {
		sk, version, err := s.loadSkins(ctx, playerID)
		if err != nil {
			return err
		}
		if skinID == "" {
			delete(sk.Equipped, characterID)
		} else {
			if !sk.OwnsSkin(skinID) {
				return fmt.Errorf("%w: %s", domain.ErrSkinNotOwned, skinID)
			}
			sk.Equipped[characterID] = skinID
		}
		if _, err := s.store.Put(ctx, store.SkinsKey(playerID), sk, version); err != nil {
			return fmt.Errorf("failed to persist skins: %w", err)
		}
		result = sk
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
