// Package board implements the maze mini-game: a fixed-length tile sequence
// walked with dice. Dice come from quest and attendance rewards, each roll
// advances the marker and pays the landing tile, and clearing the board pays
// a bonus and regenerates a fresh tile sequence.
package board

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/content"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/logger"
	"github.com/pawprintgames/gachapet/internal/metrics"
	"github.com/pawprintgames/gachapet/internal/store"
)

// CurrencySink credits coin and medal payouts
type CurrencySink interface {
	Earn(ctx context.Context, playerID string, coins, medals int) (*domain.Wallet, error)
}

// Recorder unlocks the board clear milestone. Optional.
type Recorder interface {
	Unlock(ctx context.Context, playerID, achievementID string) error
}

// AchievementBoardClear is unlocked the first time a board is completed
const AchievementBoardClear = "ach_board_clear"

// RollResult describes one die roll and everything it paid out
type RollResult struct {
	Die       int             `json:"die"`
	From      int             `json:"from"`
	To        int             `json:"to"`
	Tile      domain.TileType `json:"tile"`
	Payout    domain.Reward   `json:"payout"`
	Completed bool            `json:"completed"`
	Bonus     domain.Reward   `json:"bonus,omitempty"`
	Board     *domain.Board   `json:"board"`
}

// Service defines the interface for the maze board
type Service interface {
	Get(ctx context.Context, playerID string) (*domain.Board, error)
	Roll(ctx context.Context, playerID string) (*RollResult, error)
	AddDice(ctx context.Context, playerID string, n int) error
}

type service struct {
	store    store.Store
	locks    *concurrency.LockManager
	tables   *content.Tables
	currency CurrencySink
	recorder Recorder

	// swapped out in tests for deterministic walks
	intn func(n int) int
}

// NewService creates a new board service. recorder may be nil.
func NewService(st store.Store, locks *concurrency.LockManager, tables *content.Tables, currency CurrencySink, recorder Recorder) Service {
	return &service{
		store:    st,
		locks:    locks,
		tables:   tables,
		currency: currency,
		recorder: recorder,
		intn:     rand.Intn, //nolint:gosec // game RNG, not security sensitive
	}
}

// generateTiles builds a fresh weighted tile sequence. The start tile is
// always empty so a new board never pays out before the first roll.
func (s *service) generateTiles() []domain.TileType {
	tiles := make([]domain.TileType, domain.BoardLength)
	tiles[0] = domain.TileEmpty
	for i := 1; i < len(tiles); i++ {
		tiles[i] = s.rollTile()
	}
	return tiles
}

func (s *service) rollTile() domain.TileType {
	total := 0
	for _, def := range s.tables.BoardTiles {
		total += def.Weight
	}
	if total <= 0 {
		return domain.TileEmpty
	}
	r := s.intn(total)
	for _, def := range s.tables.BoardTiles {
		r -= def.Weight
		if r < 0 {
			return def.Tile
		}
	}
	return domain.TileEmpty
}

func (s *service) tilePayout(t domain.TileType) domain.Reward {
	for _, def := range s.tables.BoardTiles {
		if def.Tile == t {
			return def.Payout
		}
	}
	return domain.Reward{}
}

// load reads the board, regenerating the tile sequence when absent
func (s *service) load(ctx context.Context, playerID string) (*domain.Board, int64, bool, error) {
	b := &domain.Board{SchemaVersion: domain.BoardSchemaVersion}
	meta, err := s.store.Get(ctx, store.BoardKey(playerID), b)
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to load board: %w", err)
	}
	b.Normalize()

	changed := false
	if len(b.Tiles) == 0 {
		b.Tiles = s.generateTiles()
		b.Position = 0
		changed = true
	}
	return b, meta.Version, changed, nil
}

func (s *service) Get(ctx context.Context, playerID string) (*domain.Board, error) {
	var board *domain.Board
	err := s.locks.WithLock(store.BoardKey(playerID), func() error {
		b, version, changed, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}
		if changed {
			if _, err := s.store.Put(ctx, store.BoardKey(playerID), b, version); err != nil {
				return fmt.Errorf("failed to persist board: %w", err)
			}
		}
		board = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// AddDice credits dice to the player's board record
func (s *service) AddDice(ctx context.Context, playerID string, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: non-positive dice count", domain.ErrInvalidInput)
	}
	return s.locks.WithLock(store.BoardKey(playerID), func() error {
		b, version, _, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}
		b.Dice += n
		if _, err := s.store.Put(ctx, store.BoardKey(playerID), b, version); err != nil {
			return fmt.Errorf("failed to persist board: %w", err)
		}
		return nil
	})
}

// Roll consumes one die, advances 1-6 tiles and pays the landing tile.
// Reaching the final tile pays the clear bonus and regenerates the board.
func (s *service) Roll(ctx context.Context, playerID string) (*RollResult, error) {
	var result *RollResult
	err := s.locks.WithLock(store.BoardKey(playerID), func() error {
		b, version, _, err := s.load(ctx, playerID)
		if err != nil {
			return err
		}
		if b.Dice <= 0 {
			return domain.ErrNoDice
		}

		die := s.intn(6) + 1
		from := b.Position
		to := from + die
		last := len(b.Tiles) - 1
		if to > last {
			to = last
		}

		tile := b.Tiles[to]
		payout := s.tilePayout(tile)
		completed := to == last
		bonus := domain.Reward{}
		if completed {
			bonus = s.tables.BoardClearBonus
		}

		b.Dice--
		b.Dice += payout.Dice + bonus.Dice
		if completed {
			b.Tiles = s.generateTiles()
			b.Position = 0
		} else {
			b.Position = to
		}

		if _, err := s.store.Put(ctx, store.BoardKey(playerID), b, version); err != nil {
			return fmt.Errorf("failed to persist board: %w", err)
		}
		result = &RollResult{
			Die: die, From: from, To: to,
			Tile: tile, Payout: payout,
			Completed: completed, Bonus: bonus,
			Board: b,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	coins := result.Payout.Coins + result.Bonus.Coins
	medals := result.Payout.Medals + result.Bonus.Medals
	if coins > 0 || medals > 0 {
		if _, err := s.currency.Earn(ctx, playerID, coins, medals); err != nil {
			return nil, err
		}
	}
	if result.Completed && s.recorder != nil {
		if err := s.recorder.Unlock(ctx, playerID, AchievementBoardClear); err != nil {
			logger.FromContext(ctx).Error("Failed to unlock board clear achievement",
				"player_id", playerID, "error", err)
		}
	}

	metrics.BoardRollsTotal.Inc()
	logger.FromContext(ctx).Info("Board roll",
		"player_id", playerID, "die", result.Die, "tile", result.Tile, "completed", result.Completed)
	return result, nil
}
