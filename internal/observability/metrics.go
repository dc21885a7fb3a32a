package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain-level metrics. Request-level metrics (latency, status codes) come
// from the fiberprometheus middleware registered in the server.
var (
	// FollowOperations counts graph mutations by operation ("follow",
	// "unfollow") and result ("changed", "noop", "rejected").
	FollowOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microlog_follow_operations_total",
		Help: "Follower graph mutations by operation and result",
	}, []string{"operation", "result"})

	// PostsCreated counts published posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "microlog_posts_created_total",
		Help: "Total number of posts created",
	})

	// FeedQueryDuration observes feed aggregation query latency.
	FeedQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "microlog_feed_query_duration_seconds",
		Help:    "Latency of feed aggregation queries",
		Buckets: prometheus.DefBuckets,
	})

	// ResetTokens counts recovery token operations by operation ("issue",
	// "verify") and result ("ok", "invalid").
	ResetTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microlog_reset_tokens_total",
		Help: "Password recovery token operations by operation and result",
	}, []string{"operation", "result"})

	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microlog_redis_errors_total",
		Help: "Redis command failures by command",
	}, []string{"command"})
)
