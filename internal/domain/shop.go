package domain

// ShopCountersSchemaVersion is the current persisted shop record shape
const ShopCountersSchemaVersion = 1

// ShopCounters tracks per-item purchases made during the current week.
// Counts reset to zero lazily when the stored week-start no longer matches.
type ShopCounters struct {
	SchemaVersion int            `json:"schema_version"`
	WeekStart     string         `json:"week_start"`
	Purchased     map[string]int `json:"purchased"`
}

// NewShopCounters returns the default record materialized on first read
func NewShopCounters() *ShopCounters {
	return &ShopCounters{SchemaVersion: ShopCountersSchemaVersion, Purchased: map[string]int{}}
}

// Normalize defaults absent fields on read
func (s *ShopCounters) Normalize() {
	if s.SchemaVersion == 0 {
		s.SchemaVersion = ShopCountersSchemaVersion
	}
	if s.Purchased == nil {
		s.Purchased = map[string]int{}
	}
	for k, v := range s.Purchased {
		if v < 0 {
			s.Purchased[k] = 0
		}
	}
}

// Reset clears all purchase counts and stamps the new week
func (s *ShopCounters) Reset(weekStart string) {
	s.WeekStart = weekStart
	s.Purchased = map[string]int{}
}
