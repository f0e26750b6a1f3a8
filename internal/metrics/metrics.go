package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the application
type Metrics struct {
	// Notifications served by the HTTP endpoint, by outcome
	NotificationsTotal *prometheus.CounterVec

	// Synthesis attempts per provider, by outcome
	TTSAttempts *prometheus.CounterVec

	// Rate-limited requests
	RateLimited prometheus.Counter
}

var globalMetrics *Metrics

// Init initializes the Prometheus metrics
func Init() *Metrics {
	if globalMetrics != nil {
		return globalMetrics
	}

	globalMetrics = &Metrics{
		NotificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "voicebox_notifications_total",
			Help: "Total notification requests by status",
		}, []string{"status"}), // "success", "invalid", "rate_limited"

		TTSAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "voicebox_tts_attempts_total",
			Help: "Total synthesis attempts by provider and outcome",
		}, []string{"provider", "outcome"}), // outcome: "success", "failure", "quota"

		RateLimited: promauto.NewCounter(prometheus.CounterOpts{
			Name: "voicebox_rate_limited_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}

	return globalMetrics
}

// Get returns the initialized metrics, or nil before Init.
func Get() *Metrics {
	return globalMetrics
}

// CountNotification increments the notification counter if metrics are
// initialized. Safe to call from tests that never set up Prometheus.
func CountNotification(status string) {
	if globalMetrics != nil {
		globalMetrics.NotificationsTotal.WithLabelValues(status).Inc()
	}
}

// CountRateLimited increments the rate-limited request counter.
func CountRateLimited() {
	if globalMetrics != nil {
		globalMetrics.RateLimited.Inc()
	}
}

// CountTTSAttempt increments the synthesis attempt counter.
func CountTTSAttempt(provider, outcome string) {
	if globalMetrics != nil {
		globalMetrics.TTSAttempts.WithLabelValues(provider, outcome).Inc()
	}
}
