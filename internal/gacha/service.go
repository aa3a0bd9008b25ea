package gacha

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/pawprintgames/gachapet/internal/content"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/logger"
	"github.com/pawprintgames/gachapet/internal/metrics"
)

// Achievements unlocked by roll milestones
const (
	AchievementFirstRoll    = "ach_first_roll"
	AchievementCollection10 = "ach_collection_10"
)

// CollectionMilestone is the owned-count that unlocks the collection achievement
const CollectionMilestone = 10

// RollResult describes one gacha pull
type RollResult struct {
	Character  content.Character `json:"character"`
	Grade      domain.Grade      `json:"grade"`
	New        bool              `json:"new"`
	Duplicates int               `json:"duplicates,omitempty"`
	Wallet     *domain.Wallet    `json:"wallet"`
}

// CollectionService is the slice of the collection API a roll needs
type CollectionService interface {
	Add(ctx context.Context, playerID, characterID string) (bool, error)
	Get(ctx context.Context, playerID string) (*domain.Collection, error)
}

// WalletService debits the roll cost and credits it back when a pull
// cannot be recorded
type WalletService interface {
	Spend(ctx context.Context, playerID string, coins, medals int) (*domain.Wallet, error)
	Earn(ctx context.Context, playerID string, coins, medals int) (*domain.Wallet, error)
}

// DuplicateSink converts a redundant pull into an enhancement token
type DuplicateSink interface {
	AddDuplicate(ctx context.Context, playerID, characterID string) (int, error)
}

// Recorder unlocks achievements as a side effect of rolls
type Recorder interface {
	Unlock(ctx context.Context, playerID, achievementID string) error
}

// Service defines the interface for gacha rolls
type Service interface {
	Roll(ctx context.Context, playerID string) (*RollResult, error)
}

type service struct {
	tables       *content.Tables
	wallet       WalletService
	collection   CollectionService
	duplicates   DuplicateSink
	achievements Recorder
	intn         func(int) int // for rolling RNG
}

// NewService creates a new gacha service. achievements may be nil.
func NewService(tables *content.Tables, wallet WalletService, coll CollectionService, dup DuplicateSink, achievements Recorder) Service {
	return &service{
		tables:       tables,
		wallet:       wallet,
		collection:   coll,
		duplicates:   dup,
		achievements: achievements,
		//nolint:gosec // G404: math/rand is acceptable for game mechanics, not for cryptographic purposes
		intn: rand.Intn,
	}
}

// Roll spends the configured coin cost and draws one character. An unowned
// result joins the collection; an owned one converts to a duplicate token.
func (s *service) Roll(ctx context.Context, playerID string) (*RollResult, error) {
	log := logger.FromContext(ctx)

	wallet, err := s.wallet.Spend(ctx, playerID, s.tables.RollCostCoins, 0)
	if err != nil {
		return nil, err
	}

	grade := rollGrade(s.tables, s.intn)
	char := rollCharacter(s.tables, grade, s.intn)

	result := &RollResult{Character: char, Grade: char.Grade, Wallet: wallet}

	added, err := s.collection.Add(ctx, playerID, char.ID)
	if err != nil {
		s.refund(ctx, playerID)
		return nil, fmt.Errorf("failed to record pull: %w", err)
	}
	if added {
		result.New = true
	} else {
		count, err := s.duplicates.AddDuplicate(ctx, playerID, char.ID)
		if err != nil {
			s.refund(ctx, playerID)
			return nil, fmt.Errorf("failed to credit duplicate: %w", err)
		}
		result.Duplicates = count
	}

	metrics.GachaRollsTotal.WithLabelValues(string(char.Grade)).Inc()
	log.Info("Gacha roll", "player_id", playerID, "character_id", char.ID, "grade", char.Grade, "new", result.New)

	s.unlockMilestones(ctx, playerID)
	return result, nil
}

// refund credits the roll cost back when the pull could not be recorded.
func (s *service) refund(ctx context.Context, playerID string) {
	if _, err := s.wallet.Earn(ctx, playerID, s.tables.RollCostCoins, 0); err != nil {
		logger.FromContext(ctx).Error("Failed to refund roll",
			"player_id", playerID, "error", err)
	}
}

func (s *service) unlockMilestones(ctx context.Context, playerID string) {
	if s.achievements == nil {
		return
	}
	log := logger.FromContext(ctx)

	if err := s.achievements.Unlock(ctx, playerID, AchievementFirstRoll); err != nil {
		log.Warn("Failed to unlock achievement", "achievement", AchievementFirstRoll, "error", err)
	}

	coll, err := s.collection.Get(ctx, playerID)
	if err != nil {
		log.Warn("Failed to check collection milestone", "error", err)
		return
	}
	if len(coll.Owned) >= CollectionMilestone {
		if err := s.achievements.Unlock(ctx, playerID, AchievementCollection10); err != nil {
			log.Warn("Failed to unlock achievement", "achievement", AchievementCollection10, "error", err)
		}
	}
}
