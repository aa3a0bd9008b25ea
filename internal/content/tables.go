package content

import (
	"github.com/pawprintgames/gachapet/internal/domain"
)

// Character is one roster entry. The roster is static game content supplied
// externally; ownership lives in the player's collection record.
type Character struct {
	ID    string       `json:"id" validate:"required"`
	Name  string       `json:"name" validate:"required"`
	Grade domain.Grade `json:"grade" validate:"required"`
}

// StatGrowth is the per-level increment applied to each derived stat
type StatGrowth struct {
	ScorePerTap    int     `json:"score_per_tap"`
	CoinDropChance float64 `json:"coin_drop_chance"`
	CritChance     float64 `json:"crit_chance"`
	HPLossInterval int     `json:"hp_loss_interval"`
}

// GradeConfig is the static configuration for one rarity tier: its roll
// weight, expedition reward multiplier, base stats and growth curve.
type GradeConfig struct {
	Weight           int                 `json:"weight" validate:"gte=0"`
	RewardMultiplier float64             `json:"reward_multiplier" validate:"gt=0"`
	BaseStats        domain.DerivedStats `json:"base_stats"`
	Growth           StatGrowth          `json:"growth"`
}

// QuestDef defines one daily or weekly quest: which event it counts, the
// goal, and the claim reward.
type QuestDef struct {
	Key    string               `json:"key" validate:"required"`
	Title  string               `json:"title"`
	Event  domain.ProgressEvent `json:"event" validate:"required"`
	Goal   int                  `json:"goal" validate:"gt=0"`
	Reward domain.Reward        `json:"reward"`
}

// ShopItemDef defines one purchasable item type with its weekly cap.
// Exactly one of Grants or SkinID should be set.
type ShopItemDef struct {
	Key         string        `json:"key" validate:"required"`
	CostCoins   int           `json:"cost_coins" validate:"gte=0"`
	CostMedals  int           `json:"cost_medals" validate:"gte=0"`
	WeeklyLimit int           `json:"weekly_limit" validate:"gt=0"`
	Grants      domain.Reward `json:"grants"`
	SkinID      string        `json:"skin_id,omitempty"`
}

// ExpeditionTierDef defines one selectable expedition length
type ExpeditionTierDef struct {
	Key         string `json:"key" validate:"required"`
	DurationSec int    `json:"duration_sec" validate:"gt=0"`
	BaseReward  int    `json:"base_reward" validate:"gt=0"`
}

// SkinDef is one cosmetic skin
type SkinDef struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

// TileDef is one weighted board tile type and its landing payout
type TileDef struct {
	Tile   domain.TileType `json:"tile" validate:"required"`
	Weight int             `json:"weight" validate:"gte=0"`
	Payout domain.Reward   `json:"payout"`
}

// AchievementDef is one achievement and its one-time claim reward
type AchievementDef struct {
	ID     string        `json:"id" validate:"required"`
	Title  string        `json:"title"`
	Reward domain.Reward `json:"reward"`
}

// Tables is the full static content set the engine is configured with
type Tables struct {
	Version         string                        `json:"version" validate:"required"`
	Roster          []Character                   `json:"roster" validate:"min=1,dive"`
	Grades          map[domain.Grade]GradeConfig  `json:"grades" validate:"min=1,dive"`
	RollCostCoins   int                           `json:"roll_cost_coins" validate:"gte=0"`
	DailyQuests     []QuestDef                    `json:"daily_quests" validate:"len=5,dive"`
	WeeklyQuests    []QuestDef                    `json:"weekly_quests" validate:"len=5,dive"`
	ShopItems       []ShopItemDef                 `json:"shop_items" validate:"min=1,dive"`
	ExpeditionTiers []ExpeditionTierDef           `json:"expedition_tiers" validate:"min=1,dive"`
	Skins           []SkinDef                     `json:"skins" validate:"dive"`
	BoardTiles      []TileDef                     `json:"board_tiles" validate:"min=1,dive"`
	BoardClearBonus domain.Reward                 `json:"board_clear_bonus"`
	Attendance      []domain.Reward               `json:"attendance_rewards" validate:"min=1"`
	Achievements    []AchievementDef              `json:"achievements" validate:"dive"`
}

// CharactersByGrade groups the roster into per-grade pools
func (t *Tables) CharactersByGrade() map[domain.Grade][]Character {
	pools := make(map[domain.Grade][]Character, len(t.Grades))
	for _, c := range t.Roster {
		pools[c.Grade] = append(pools[c.Grade], c)
	}
	return pools
}

// Character looks up a roster entry by ID
func (t *Tables) Character(id string) (Character, bool) {
	for _, c := range t.Roster {
		if c.ID == id {
			return c, true
		}
	}
	return Character{}, false
}

// Grade returns the configuration for a grade, falling back to the lowest
// grade's config when the grade is unknown
func (t *Tables) Grade(g domain.Grade) GradeConfig {
	if cfg, ok := t.Grades[g]; ok {
		return cfg
	}
	return t.Grades[domain.GradeNormal]
}

// ShopItem looks up a shop item by key
func (t *Tables) ShopItem(key string) (ShopItemDef, bool) {
	for _, it := range t.ShopItems {
		if it.Key == key {
			return it, true
		}
	}
	return ShopItemDef{}, false
}

// ExpeditionTier looks up an expedition tier by key
func (t *Tables) ExpeditionTier(key string) (ExpeditionTierDef, bool) {
	for _, tier := range t.ExpeditionTiers {
		if tier.Key == key {
			return tier, true
		}
	}
	return ExpeditionTierDef{}, false
}

// Skin looks up a skin by ID
func (t *Tables) Skin(id string) (SkinDef, bool) {
	for _, s := range t.Skins {
		if s.ID == id {
			return s, true
		}
	}
	return SkinDef{}, false
}

// Achievement looks up an achievement definition by ID
func (t *Tables) Achievement(id string) (AchievementDef, bool) {
	for _, a := range t.Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return AchievementDef{}, false
}

// AttendanceReward returns the reward for the given streak day. Streaks
// longer than the configured ladder cycle through it again.
func (t *Tables) AttendanceReward(consecutiveDays int) domain.Reward {
	if len(t.Attendance) == 0 {
		return domain.Reward{}
	}
	idx := (consecutiveDays - 1) % len(t.Attendance)
	if idx < 0 {
		idx = 0
	}
	return t.Attendance[idx]
}
