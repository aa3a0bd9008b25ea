package domain

// AttendanceSchemaVersion is the current persisted attendance record shape
const AttendanceSchemaVersion = 1

// Attendance tracks the daily check-in streak. The streak increments only on
// the first claim of a new calendar day and resets to 1 when a day was
// skipped.
type Attendance struct {
	SchemaVersion   int    `json:"schema_version"`
	ConsecutiveDays int    `json:"consecutive_days"`
	LastClaimDate   string `json:"last_claim_date,omitempty"`
}

// NewAttendance returns the default record materialized on first read
func NewAttendance() *Attendance {
	return &Attendance{SchemaVersion: AttendanceSchemaVersion, ConsecutiveDays: 1}
}

// Normalize clamps a possibly corrupted record back into its invariants
func (a *Attendance) Normalize() {
	if a.SchemaVersion == 0 {
		a.SchemaVersion = AttendanceSchemaVersion
	}
	if a.ConsecutiveDays < 1 {
		a.ConsecutiveDays = 1
	}
}

// ClaimedOn reports whether the streak was already claimed on the given day
func (a *Attendance) ClaimedOn(day string) bool {
	return a.LastClaimDate == day
}
