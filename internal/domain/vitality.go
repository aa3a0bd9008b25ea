package domain

import "time"

// VitalitySchemaVersion is the current persisted vitality record shape
const VitalitySchemaVersion = 1

// Vitality is a character's per-player HP record. HP heals one point per
// whole elapsed minute, credited lazily on read, and is clamped to
// [MinHP, MaxHP] on every write.
type Vitality struct {
	SchemaVersion int       `json:"schema_version"`
	HP            int       `json:"hp"`
	LastUpdate    time.Time `json:"last_update"`
	TapCount      int       `json:"tap_count"`
}

// NewVitality returns the default record materialized on first read
func NewVitality(now time.Time) *Vitality {
	return &Vitality{SchemaVersion: VitalitySchemaVersion, HP: MaxHP, LastUpdate: now}
}

// Normalize clamps a possibly corrupted record back into its invariants
func (v *Vitality) Normalize(now time.Time) {
	if v.SchemaVersion == 0 {
		v.SchemaVersion = VitalitySchemaVersion
	}
	if v.HP < MinHP {
		v.HP = MinHP
	}
	if v.HP > MaxHP {
		v.HP = MaxHP
	}
	if v.TapCount < 0 {
		v.TapCount = 0
	}
	if v.LastUpdate.IsZero() || v.LastUpdate.After(now) {
		v.LastUpdate = now
	}
}

// ClampHP bounds an arbitrary hp value into the legal range
func ClampHP(hp int) int {
	if hp < MinHP {
		return MinHP
	}
	if hp > MaxHP {
		return MaxHP
	}
	return hp
}
