package domain

// TutorialSchemaVersion is the current persisted tutorial record shape
const TutorialSchemaVersion = 1

// Tutorial step identifiers. Step 0 means inactive/complete; steps advance
// linearly and are persisted so the tutorial resumes across restarts.
const (
	TutorialDone       = 0
	TutorialWelcome    = 1
	TutorialFirstRoll  = 2
	TutorialEquip      = 3
	TutorialFirstTap   = 4
	TutorialFinalStep  = TutorialFirstTap
)

// Tutorial is the persisted tutorial state machine. TargetCharacter is the
// character the equip step expects; if it is ever missing from the collection
// the tutorial fails open (skips) rather than deadlocking the player.
type Tutorial struct {
	SchemaVersion   int    `json:"schema_version"`
	Step            int    `json:"step"`
	TargetCharacter string `json:"target_character,omitempty"`
}

// NewTutorial returns the tutorial at its first step, materialized when a
// player is first seen
func NewTutorial() *Tutorial {
	return &Tutorial{SchemaVersion: TutorialSchemaVersion, Step: TutorialWelcome}
}

// Normalize clamps an out-of-range step back to done
func (t *Tutorial) Normalize() {
	if t.SchemaVersion == 0 {
		t.SchemaVersion = TutorialSchemaVersion
	}
	if t.Step < TutorialDone || t.Step > TutorialFinalStep {
		t.Step = TutorialDone
	}
}

// Active reports whether the tutorial still has steps to run
func (t *Tutorial) Active() bool {
	return t.Step != TutorialDone
}
