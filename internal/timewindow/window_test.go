package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToday_FormatsCalendarDate(t *testing.T) {
	clock := NewSimulatedClock(time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC))

	assert.Equal(t, "2025-03-14", Today(clock))
}

func TestToday_ChangesAtMidnight(t *testing.T) {
	clock := NewSimulatedClock(time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC))

	before := Today(clock)
	clock.Advance(2 * time.Minute)
	after := Today(clock)

	assert.Equal(t, "2025-03-14", before)
	assert.Equal(t, "2025-03-15", after)
}

func TestWeekStart_ReturnsMostRecentMonday(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"monday maps to itself", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), "2025-03-10"},
		{"wednesday maps back to monday", time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC), "2025-03-10"},
		{"sunday maps back six days", time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC), "2025-03-10"},
		{"next monday starts a new week", time.Date(2025, 3, 17, 0, 1, 0, 0, time.UTC), "2025-03-17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewSimulatedClock(tt.now)
			assert.Equal(t, tt.want, WeekStart(clock))
		})
	}
}

func TestYesterday_CrossesMonthBoundary(t *testing.T) {
	clock := NewSimulatedClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, "2025-02-28", Yesterday(clock))
}

func TestSimulatedClock_Advance(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewSimulatedClock(start)

	clock.Advance(90 * time.Minute)

	assert.Equal(t, start.Add(90*time.Minute), clock.Now())
	assert.Equal(t, 90*time.Minute, clock.Since(start))
}
