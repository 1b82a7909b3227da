// Package metrics holds the process-wide Prometheus collectors. They are
// registered on the default registry and served by promhttp on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "menu_sites"

// Outcome labels shared by resolver and loader counters.
const (
	OutcomeTenant      = "tenant"
	OutcomeRoot        = "root"
	OutcomeInvalid     = "invalid"
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeOnboarding  = "onboarding_incomplete"
	OutcomeIntegrity   = "integrity"
	OutcomeTimeout     = "timeout"
	OutcomeUnavailable = "unavailable"
	CacheHit           = "hit"
	CacheMiss          = "miss"
	CacheError         = "error"
	CacheStale         = "stale"
)

var (
	// TenantResolutions counts host resolutions.
	// Labels: outcome (tenant, root, invalid), kind (subdomain, custom_domain, "")
	TenantResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tenant",
		Name:      "resolutions_total",
		Help:      "Host to tenant resolutions by outcome",
	}, []string{"outcome", "kind"})

	// AggregateLoads counts loader outcomes.
	AggregateLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "loader",
		Name:      "loads_total",
		Help:      "Restaurant aggregate loads by outcome",
	}, []string{"outcome"})

	// AggregateLoadSeconds measures the persistence fetch plus validation.
	AggregateLoadSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "loader",
		Name:      "load_duration_seconds",
		Help:      "Restaurant aggregate load latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"outcome"})

	// AggregateCache counts cache lookups.
	// Labels: result (hit, miss, error, stale = write dropped after an invalidation)
	AggregateCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "loader",
		Name:      "cache_lookups_total",
		Help:      "Aggregate cache lookups by result",
	}, []string{"result"})

	// SharedLoads counts loads that joined an in-flight fetch for the same key.
	SharedLoads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "loader",
		Name:      "shared_total",
		Help:      "Loads served by an in-flight fetch for the same tenant key",
	})

	// HTTPRequests counts served requests.
	// Labels: surface (site, root), status (HTTP status code class)
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by surface and status class",
	}, []string{"surface", "status"})
)
