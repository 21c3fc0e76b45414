package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/rankks/internal/platform/resilience"
)

// Upstream call outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeAbsent      = "absent"
	OutcomeHTTPError   = "http_error"
	OutcomeTransport   = "transport_error"
	OutcomeDecodeError = "decode_error"
	OutcomeRejected    = "circuit_open"
)

// Recorder owns a private Prometheus registry. A nil *Recorder is valid and
// records nothing, so clients can be built without metrics in tests.
type Recorder struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	circuitState     *prometheus.GaugeVec
}

func NewRecorder(namespace string) *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Recorder{
		registry: reg,
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream API calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream API call latency including retries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by backend and result.",
		}, []string{"backend", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Served HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Served HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		circuitState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "0 closed, 1 half-open, 2 open.",
		}, []string{"breaker"}),
	}
	reg.MustRegister(
		r.upstreamRequests,
		r.upstreamLatency,
		r.cacheLookups,
		r.httpRequests,
		r.httpLatency,
		r.circuitState,
	)
	return r
}

func (r *Recorder) RecordUpstream(provider, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.upstreamRequests.WithLabelValues(provider, outcome).Inc()
	r.upstreamLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// CacheLookup satisfies cache.Observer.
func (r *Recorder) CacheLookup(backend string, hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(backend, result).Inc()
}

func (r *Recorder) RecordHTTP(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// CircuitStateChanged satisfies resilience.StateListener.
func (r *Recorder) CircuitStateChanged(name string, _, to resilience.CircuitState) {
	if r == nil {
		return
	}
	value := 0.0
	switch to {
	case resilience.CircuitStateHalfOpen:
		value = 1
	case resilience.CircuitStateOpen:
		value = 2
	}
	r.circuitState.WithLabelValues(name).Set(value)
}

func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}
