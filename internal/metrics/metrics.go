package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: MetricNameHTTPRequestsTotal,
		Help: HelpTextHTTPRequestsTotal,
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    MetricNameHTTPRequestDuration,
		Help:    HelpTextHTTPRequestDuration,
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Business metrics
var (
	GachaRollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: MetricNameGachaRollsTotal,
		Help: HelpTextGachaRollsTotal,
	}, []string{"grade"})

	QuestClaimsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: MetricNameQuestClaimsTotal,
		Help: HelpTextQuestClaimsTotal,
	}, []string{"cycle"})

	ExpeditionCollectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: MetricNameExpeditionCollects,
		Help: HelpTextExpeditionCollects,
	})

	AttendanceClaimsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: MetricNameAttendanceClaims,
		Help: HelpTextAttendanceClaims,
	})

	EnhancementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: MetricNameEnhancements,
		Help: HelpTextEnhancements,
	})

	BoardRollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: MetricNameBoardRolls,
		Help: HelpTextBoardRolls,
	})

	CoinsEarnedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: MetricNameCoinsEarned,
		Help: HelpTextCoinsEarned,
	})

	CoinsSpentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: MetricNameCoinsSpent,
		Help: HelpTextCoinsSpent,
	})

	StoreConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: MetricNameStoreConflicts,
		Help: HelpTextStoreConflicts,
	})
)

// statusRecorder captures the response status for the requests counter
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latencies per chi route pattern
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
