// Package observability provides metrics and tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loppis_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// AdsCreated counts ads created since process start.
	AdsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loppis_ads_created_total",
		Help: "Total number of ads created",
	})

	// AdsDeleted counts ads deleted by their owners.
	AdsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loppis_ads_deleted_total",
		Help: "Total number of ads deleted",
	})

	// AdResponsesPublished counts ad-response events handed to the mail pipeline.
	AdResponsesPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loppis_ad_responses_published_total",
		Help: "Total number of ad-response events published",
	})

	// AuthFailures counts rejected requests by reason (missing_token, invalid_token).
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loppis_auth_failures_total",
		Help: "Total number of authentication failures by reason",
	}, []string{"reason"})
)
