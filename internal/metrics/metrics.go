package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// catalog reads
	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "placewise_catalog_request_duration_seconds",
			Help:    "Duration of catalog reads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	CatalogRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placewise_catalog_request_errors_total",
			Help: "Total number of failed catalog reads",
		},
		[]string{"operation"},
	)

	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placewise_catalog_cache_hits_total",
			Help: "Total number of catalog cache hits",
		},
		[]string{"operation"},
	)

	CatalogCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placewise_catalog_cache_misses_total",
			Help: "Total number of catalog cache misses",
		},
		[]string{"operation"},
	)

	CatalogBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "placewise_catalog_breaker_state",
			Help: "Catalog circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// planning
	PlansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placewise_plans_total",
			Help: "Total number of planning calls by outcome",
		},
		[]string{"outcome"},
	)

	PlanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "placewise_plan_duration_seconds",
			Help:    "End-to-end planning duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	PlanUtilization = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "placewise_plan_budget_utilization",
			Help:    "Fraction of the requested budget allocated per plan",
			Buckets: []float64{0.1, 0.25, 0.5, 0.75, 0.9, 0.99, 1},
		},
	)

	PlanAllocations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "placewise_plan_allocations",
			Help:    "Number of creators allocated per plan",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	// api
	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placewise_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// records one planning call
func ObservePlan(outcome string, duration time.Duration, utilization float64, allocations int) {
	PlansTotal.WithLabelValues(outcome).Inc()
	PlanDuration.Observe(duration.Seconds())

	if outcome == "ok" {
		PlanUtilization.Observe(utilization)
		PlanAllocations.Observe(float64(allocations))
	}
}
