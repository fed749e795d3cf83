package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis operation failures by operation name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusboard_redis_errors_total",
		Help: "Total number of Redis operation errors",
	}, []string{"operation"})

	// DBQueryDuration observes database query latency by operation.
	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "campusboard_db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// ReportsCreated counts abuse reports filed, labeled by reason.
	ReportsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusboard_reports_created_total",
		Help: "Total number of abuse reports created",
	}, []string{"reason"})

	// PostsCreated counts posts created, labeled by post type.
	PostsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusboard_posts_created_total",
		Help: "Total number of posts created",
	}, []string{"post_type"})

	// SanctionsApplied counts moderation sanctions applied, labeled by type.
	SanctionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusboard_sanctions_applied_total",
		Help: "Total number of sanctions applied to users",
	}, []string{"type"})
)
