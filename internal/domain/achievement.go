package domain

// AchievementsSchemaVersion is the current persisted achievements record shape
const AchievementsSchemaVersion = 1

// Achievements is a player's unlocked and claimed achievement sets. Both are
// monotonic; unlock and claim are idempotent.
type Achievements struct {
	SchemaVersion int      `json:"schema_version"`
	Unlocked      []string `json:"unlocked"`
	Claimed       []string `json:"claimed"`
}

// NewAchievements returns the default record materialized on first read
func NewAchievements() *Achievements {
	return &Achievements{SchemaVersion: AchievementsSchemaVersion, Unlocked: []string{}, Claimed: []string{}}
}

// Normalize defaults absent fields on read
func (a *Achievements) Normalize() {
	if a.SchemaVersion == 0 {
		a.SchemaVersion = AchievementsSchemaVersion
	}
	if a.Unlocked == nil {
		a.Unlocked = []string{}
	}
	if a.Claimed == nil {
		a.Claimed = []string{}
	}
}

// IsUnlocked reports whether the achievement has been unlocked
func (a *Achievements) IsUnlocked(id string) bool {
	return contains(a.Unlocked, id)
}

// IsClaimed reports whether the achievement reward has been claimed
func (a *Achievements) IsClaimed(id string) bool {
	return contains(a.Claimed, id)
}

// Unlock adds the achievement to the unlocked set. Idempotent; returns true
// when newly unlocked.
func (a *Achievements) Unlock(id string) bool {
	if a.IsUnlocked(id) {
		return false
	}
	a.Unlocked = append(a.Unlocked, id)
	return true
}

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}
