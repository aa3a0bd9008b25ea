package domain

// Vitality bounds
const (
	MinHP = 0
	MaxHP = 100
)

// MaxEnhancementLevel is the hard cap for character enhancement
const MaxEnhancementLevel = 5

// EnhancementRewardBonus is the per-level multiplier applied to expedition rewards (+20% per level)
const EnhancementRewardBonus = 0.2

// ExpeditionSlotCount is the fixed number of expedition slots per player
const ExpeditionSlotCount = 3

// BoardLength is the number of tiles on a maze board
const BoardLength = 24

// Quest slots per cycle
const (
	DailyQuestCount  = 5
	WeeklyQuestCount = 5
)

// Grade identifies a character rarity tier
type Grade string

// Grades, lowest to highest rarity. GradeOrder is the canonical declared
// order used by the weighted roll; it must never be reordered.
const (
	GradeNormal    Grade = "normal"
	GradeRare      Grade = "rare"
	GradeEpic      Grade = "epic"
	GradeUnique    Grade = "unique"
	GradeLegendary Grade = "legendary"
)

// GradeOrder is the fixed iteration order for weighted rolls
var GradeOrder = []Grade{GradeNormal, GradeRare, GradeEpic, GradeUnique, GradeLegendary}

// Valid reports whether g is a known grade
func (g Grade) Valid() bool {
	switch g {
	case GradeNormal, GradeRare, GradeEpic, GradeUnique, GradeLegendary:
		return true
	}
	return false
}

// ProgressEvent identifies a player action tracked by quests, achievements
// and the tutorial
type ProgressEvent string

const (
	EventTap               ProgressEvent = "tap"
	EventGachaRoll         ProgressEvent = "gacha_roll"
	EventBoardRoll         ProgressEvent = "board_roll"
	EventExpeditionCollect ProgressEvent = "expedition_collect"
	EventAttendanceClaim   ProgressEvent = "attendance_claim"
	EventEnhance           ProgressEvent = "enhance"
	EventCharacterSelect   ProgressEvent = "character_select"
)
