package domain

// CollectionSchemaVersion is the current persisted collection record shape
const CollectionSchemaVersion = 1

// Collection tracks which roster characters a player owns and which one is
// currently selected. Membership only grows; there is no removal path.
type Collection struct {
	SchemaVersion int      `json:"schema_version"`
	Owned         []string `json:"owned"`
	Selected      string   `json:"selected,omitempty"`
}

// NewCollection returns the default collection materialized on first read
func NewCollection() *Collection {
	return &Collection{SchemaVersion: CollectionSchemaVersion, Owned: []string{}}
}

// Normalize defaults absent fields and drops a dangling selection
func (c *Collection) Normalize() {
	if c.SchemaVersion == 0 {
		c.SchemaVersion = CollectionSchemaVersion
	}
	if c.Owned == nil {
		c.Owned = []string{}
	}
	if c.Selected != "" && !c.Owns(c.Selected) {
		c.Selected = ""
	}
}

// Owns reports whether the character is in the owned set
func (c *Collection) Owns(characterID string) bool {
	for _, id := range c.Owned {
		if id == characterID {
			return true
		}
	}
	return false
}

// Add inserts a character into the owned set. Idempotent; returns true when
// the character was newly added.
func (c *Collection) Add(characterID string) bool {
	if c.Owns(characterID) {
		return false
	}
	c.Owned = append(c.Owned, characterID)
	return true
}

// SkinsSchemaVersion is the current persisted skins record shape
const SkinsSchemaVersion = 1

// Skins tracks owned skin IDs and which skin each character has equipped.
// An equipped skin must always be present in the owned set.
type Skins struct {
	SchemaVersion int               `json:"schema_version"`
	Owned         []string          `json:"owned"`
	Equipped      map[string]string `json:"equipped"`
}

// NewSkins returns the default skins record materialized on first read
func NewSkins() *Skins {
	return &Skins{
		SchemaVersion: SkinsSchemaVersion,
		Owned:         []string{},
		Equipped:      map[string]string{},
	}
}

// Normalize defaults absent fields and unequips skins missing from the owned set
func (s *Skins) Normalize() {
	if s.SchemaVersion == 0 {
		s.SchemaVersion = SkinsSchemaVersion
	}
	if s.Owned == nil {
		s.Owned = []string{}
	}
	if s.Equipped == nil {
		s.Equipped = map[string]string{}
	}
	for characterID, skinID := range s.Equipped {
		if !s.OwnsSkin(skinID) {
			delete(s.Equipped, characterID)
		}
	}
}

// OwnsSkin reports whether the skin is in the owned set
func (s *Skins) OwnsSkin(skinID string) bool {
	for _, id := range s.Owned {
		if id == skinID {
			return true
		}
	}
	return false
}

// AddSkin inserts a skin into the owned set. Idempotent.
func (s *Skins) AddSkin(skinID string) bool {
	if s.OwnsSkin(skinID) {
		return false
	}
	s.Owned = append(s.Owned, skinID)
	return true
}
