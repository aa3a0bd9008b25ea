package domain

// EnhancementSchemaVersion is the current persisted enhancement record shape
const EnhancementSchemaVersion = 1

// Enhancement tracks a character's upgrade level and unspent duplicate
// tokens. Level is bounded by MaxEnhancementLevel; duplicates never go
// negative.
type Enhancement struct {
	SchemaVersion int `json:"schema_version"`
	Level         int `json:"level"`
	Duplicates    int `json:"duplicates"`
}

// NewEnhancement returns the default record materialized on first read
func NewEnhancement() *Enhancement {
	return &Enhancement{SchemaVersion: EnhancementSchemaVersion}
}

// Normalize clamps a possibly corrupted record back into its invariants
func (e *Enhancement) Normalize() {
	if e.SchemaVersion == 0 {
		e.SchemaVersion = EnhancementSchemaVersion
	}
	if e.Level < 0 {
		e.Level = 0
	}
	if e.Level > MaxEnhancementLevel {
		e.Level = MaxEnhancementLevel
	}
	if e.Duplicates < 0 {
		e.Duplicates = 0
	}
}

// EnhancementCost returns the duplicates needed to advance from the given
// level: going from 0 to 1 costs 1, from 1 to 2 costs 2, up to 5 for the
// final step.
func EnhancementCost(level int) int {
	return level + 1
}

// DerivedStats are a character's effective stats at a given enhancement
// level. They are recomputed on every read and never persisted.
type DerivedStats struct {
	ScorePerTap    int     `json:"score_per_tap"`
	CoinDropChance float64 `json:"coin_drop_chance"`
	CritChance     float64 `json:"crit_chance"`
	HPLossInterval int     `json:"hp_loss_interval"`
}
