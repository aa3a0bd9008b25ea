package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal   = "http_requests_total"
	MetricNameHTTPRequestDuration = "http_request_duration_seconds"
)

// Business metric names
const (
	MetricNameGachaRollsTotal    = "gacha_rolls_total"
	MetricNameQuestClaimsTotal   = "quest_claims_total"
	MetricNameExpeditionCollects = "expedition_collects_total"
	MetricNameAttendanceClaims   = "attendance_claims_total"
	MetricNameEnhancements       = "enhancements_total"
	MetricNameBoardRolls         = "board_rolls_total"
	MetricNameCoinsEarned        = "coins_earned_total"
	MetricNameCoinsSpent         = "coins_spent_total"
	MetricNameStoreConflicts     = "store_version_conflicts_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal   = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration = "HTTP request latency in seconds"
)

// Business metric help text
const (
	HelpTextGachaRollsTotal    = "Total number of gacha rolls by grade"
	HelpTextQuestClaimsTotal   = "Total number of quest rewards claimed by cycle"
	HelpTextExpeditionCollects = "Total number of expedition rewards collected"
	HelpTextAttendanceClaims   = "Total number of attendance check-ins"
	HelpTextEnhancements       = "Total number of successful enhancements"
	HelpTextBoardRolls         = "Total number of maze dice rolls"
	HelpTextCoinsEarned        = "Total coins credited to players"
	HelpTextCoinsSpent         = "Total coins debited from players"
	HelpTextStoreConflicts     = "Total optimistic write conflicts in the entity store"
)
