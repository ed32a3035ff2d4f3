package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instaclone_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records query latency by statement kind
	// (select, insert, update, delete). Observed from the GORM logger.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "instaclone_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// NotificationFanout counts notifications created by kind. Suppressed
	// self-notifications are counted separately so the ratio is visible.
	NotificationFanout = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instaclone_notification_fanout_total",
		Help: "Total number of notifications produced by kind",
	}, []string{"kind", "outcome"})

	// StoriesReaped counts expired stories removed by the reaper.
	StoriesReaped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instaclone_stories_reaped_total",
		Help: "Total number of expired stories deleted",
	})

	// FeedAssemblyLatency records end-to-end feed assembly latency.
	FeedAssemblyLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "instaclone_feed_assembly_latency_seconds",
		Help:    "Feed assembly latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// RecommendationRequests counts recommendation computations by strategy.
	RecommendationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instaclone_recommendation_requests_total",
		Help: "Total recommendation computations by strategy",
	}, []string{"strategy"})
)
