package domain

import "time"

// ExpeditionSchemaVersion is the current persisted expedition slot shape
const ExpeditionSchemaVersion = 1

// SlotStatus is the lifecycle state of an expedition slot
type SlotStatus string

const (
	SlotIdle     SlotStatus = "idle"
	SlotActive   SlotStatus = "active"
	SlotComplete SlotStatus = "complete"
)

// ExpeditionSlot is one of a player's fixed expedition slots. A character may
// occupy at most one non-idle slot across all slots at a time.
type ExpeditionSlot struct {
	SchemaVersion int        `json:"schema_version"`
	Status        SlotStatus `json:"status"`
	CharacterID   string     `json:"character_id,omitempty"`
	StartedAt     time.Time  `json:"started_at,omitempty"`
	DurationSec   int        `json:"duration_sec,omitempty"`
	BaseReward    int        `json:"base_reward,omitempty"`
}

// NewExpeditionSlot returns the default idle slot materialized on first read
func NewExpeditionSlot() *ExpeditionSlot {
	return &ExpeditionSlot{SchemaVersion: ExpeditionSchemaVersion, Status: SlotIdle}
}

// Normalize defaults absent fields and clears a malformed non-idle slot
func (s *ExpeditionSlot) Normalize() {
	if s.SchemaVersion == 0 {
		s.SchemaVersion = ExpeditionSchemaVersion
	}
	switch s.Status {
	case SlotIdle, SlotActive, SlotComplete:
	default:
		s.Status = SlotIdle
	}
	// A non-idle slot without a character cannot mature; release it.
	if s.Status != SlotIdle && s.CharacterID == "" {
		s.Clear()
	}
}

// Clear returns the slot to idle, dropping all assignment fields
func (s *ExpeditionSlot) Clear() {
	s.Status = SlotIdle
	s.CharacterID = ""
	s.StartedAt = time.Time{}
	s.DurationSec = 0
	s.BaseReward = 0
}

// MaturesAt returns the wall-clock time the expedition completes
func (s *ExpeditionSlot) MaturesAt() time.Time {
	return s.StartedAt.Add(time.Duration(s.DurationSec) * time.Second)
}

// Matured reports whether the expedition timer has elapsed
func (s *ExpeditionSlot) Matured(now time.Time) bool {
	return s.Status != SlotIdle && !now.Before(s.MaturesAt())
}
