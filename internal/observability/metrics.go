package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// MagicLinksIssued counts magic link emails requested, by delivery outcome.
	MagicLinksIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tone_magic_links_issued_total",
		Help: "Total number of magic links issued by delivery outcome",
	}, []string{"outcome"})

	// MagicLinksVerified counts magic link verification attempts by result.
	MagicLinksVerified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tone_magic_links_verified_total",
		Help: "Total number of magic link verification attempts by result",
	}, []string{"result"})

	// LogsCreated counts reaction logs created, by stamp.
	LogsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tone_logs_created_total",
		Help: "Total number of reaction logs created by stamp",
	}, []string{"stamp"})

	// AvatarUploads counts avatar uploads by result.
	AvatarUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tone_avatar_uploads_total",
		Help: "Total number of avatar upload attempts by result",
	}, []string{"result"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tone_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
