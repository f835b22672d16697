// Package metrics exposes Prometheus collectors for inbound page traffic and
// outbound CMS API calls.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/firehorseusa/firehorse/internal/services/web/platform/httpx"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "firehorse"

// Options configures collector registration.
type Options struct {
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Namespace  string
	Buckets    []float64
}

// Metrics holds every collector the web service records.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge
	Remote   *prometheus.CounterVec
	RemoteIO *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New constructs and registers collectors. Collectors already registered
// under the same name are reused so repeated construction in one process
// stays safe.
func New(opts Options) (*Metrics, error) {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = defaultNamespace
	}
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		if g, ok := reg.(prometheus.Gatherer); ok {
			gatherer = g
		} else {
			gatherer = prometheus.DefaultGatherer
		}
	}
	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests partitioned by method, route, and status code.",
	}, []string{"method", "route", "status"}))
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Histogram of HTTP request latencies in seconds partitioned by method, route, and status code.",
		Buckets:   buckets,
	}, []string{"method", "route", "status"}))
	if err != nil {
		return nil, err
	}
	inFlight, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "in_flight_requests",
		Help:      "Current number of in-flight HTTP requests.",
	}))
	if err != nil {
		return nil, err
	}
	remote, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cms",
		Name:      "calls_total",
		Help:      "Total number of CMS API calls partitioned by operation and outcome.",
	}, []string{"operation", "outcome"}))
	if err != nil {
		return nil, err
	}
	remoteIO, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "cms",
		Name:      "call_duration_seconds",
		Help:      "Histogram of CMS API call latencies in seconds partitioned by operation.",
		Buckets:   buckets,
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		Requests: requests,
		Duration: duration,
		InFlight: inFlight,
		Remote:   remote,
		RemoteIO: remoteIO,
		gatherer: gatherer,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	if err := reg.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			var zero C
			return zero, fmt.Errorf("register collector: %w", err)
		}
		existing, ok := already.ExistingCollector.(C)
		if !ok {
			var zero C
			return zero, fmt.Errorf("existing collector has unexpected type %T", already.ExistingCollector)
		}
		return existing, nil
	}
	return collector, nil
}

// Middleware records request count, latency, and in-flight gauge. route
// maps a request to a bounded label; nil uses the URL path.
func (m *Metrics) Middleware(route func(*http.Request) string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.InFlight.Inc()
			defer m.InFlight.Dec()

			recorder := observability.NewStatusRecorder(w)
			next.ServeHTTP(recorder, r)

			label := r.URL.Path
			if route != nil {
				label = route(r)
			}
			labels := prometheus.Labels{
				"method": r.Method,
				"route":  label,
				"status": strconv.Itoa(recorder.Status),
			}
			m.Requests.With(labels).Inc()
			m.Duration.With(labels).Observe(time.Since(start).Seconds())
		})
	}
}

// ObserveRemote records one CMS API call.
func (m *Metrics) ObserveRemote(operation string, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Remote.WithLabelValues(operation, outcome).Inc()
	m.RemoteIO.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Handler serves the registered collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
