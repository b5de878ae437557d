package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aitutor_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// InviteRedemptions counts invite redemption attempts and their outcome
	// (accepted|rejected).
	InviteRedemptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aitutor_invite_redemptions_total",
			Help: "Total number of invite redemption attempts",
		},
		[]string{"result"},
	)

	// QuizAttemptsStarted counts quiz attempts started across all users.
	QuizAttemptsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aitutor_quiz_attempts_started_total",
			Help: "Total number of quiz attempts started",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aitutor_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
