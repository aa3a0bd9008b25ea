package domain

// QuestProgressSchemaVersion is the current persisted quest record shape
const QuestProgressSchemaVersion = 1

// CycleProgress holds the counters and claim flags for one reset cycle
// (daily or weekly). Boundary is the date or week-start identifier the
// counters belong to; when it no longer matches the current one the whole
// block is zeroed lazily on read.
type CycleProgress struct {
	Boundary string `json:"boundary"`
	Counters []int  `json:"counters"`
	Claimed  []bool `json:"claimed"`
}

// Reset zeroes all counters and claim flags and stamps the new boundary
func (c *CycleProgress) Reset(boundary string, n int) {
	c.Boundary = boundary
	c.Counters = make([]int, n)
	c.Claimed = make([]bool, n)
}

// normalize pads truncated slices so index access stays in bounds
func (c *CycleProgress) normalize(n int) {
	for len(c.Counters) < n {
		c.Counters = append(c.Counters, 0)
	}
	for len(c.Claimed) < n {
		c.Claimed = append(c.Claimed, false)
	}
	for i, v := range c.Counters {
		if v < 0 {
			c.Counters[i] = 0
		}
	}
}

// QuestProgress is a player's daily and weekly quest state
type QuestProgress struct {
	SchemaVersion int           `json:"schema_version"`
	Daily         CycleProgress `json:"daily"`
	Weekly        CycleProgress `json:"weekly"`
}

// NewQuestProgress returns the default record materialized on first read
func NewQuestProgress() *QuestProgress {
	qp := &QuestProgress{SchemaVersion: QuestProgressSchemaVersion}
	qp.Daily.Reset("", DailyQuestCount)
	qp.Weekly.Reset("", WeeklyQuestCount)
	return qp
}

// Normalize defaults absent fields on read
func (qp *QuestProgress) Normalize() {
	if qp.SchemaVersion == 0 {
		qp.SchemaVersion = QuestProgressSchemaVersion
	}
	qp.Daily.normalize(DailyQuestCount)
	qp.Weekly.normalize(WeeklyQuestCount)
}

// Reward is a bundle of granted resources. Zero fields grant nothing.
type Reward struct {
	Coins  int `json:"coins,omitempty"`
	Medals int `json:"medals,omitempty"`
	Dice   int `json:"dice,omitempty"`
}

// IsZero reports whether the reward grants nothing
func (r Reward) IsZero() bool {
	return r.Coins == 0 && r.Medals == 0 && r.Dice == 0
}
