package metrics

import (
	"cargo-route-service/internal/domain"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records solver and HTTP activity in Prometheus collectors.
type Metrics struct {
	solveDuration prometheus.Histogram
	routes        *prometheus.CounterVec
	unassigned    prometheus.Counter
	shortages     prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registers the collectors on reg. Collectors that are already
// registered are reused, so New may be called more than once per registry.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		solveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "routing_solve_duration_seconds",
			Help:    "Time spent in a single solve",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		routes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "routing_routes_total",
			Help: "Routes produced by the solver",
		}, []string{"kind"}),
		unassigned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routing_unassigned_stations_total",
			Help: "Stations whose demand could not be assigned to any vehicle",
		}),
		shortages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routing_capacity_shortages_total",
			Help: "Solves where demand exceeded owned capacity",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	var err error
	if m.solveDuration, err = register(reg, m.solveDuration); err != nil {
		return nil, err
	}
	if m.routes, err = register(reg, m.routes); err != nil {
		return nil, err
	}
	if m.unassigned, err = register(reg, m.unassigned); err != nil {
		return nil, err
	}
	if m.shortages, err = register(reg, m.shortages); err != nil {
		return nil, err
	}
	if m.httpRequests, err = register(reg, m.httpRequests); err != nil {
		return nil, err
	}
	if m.httpDuration, err = register(reg, m.httpDuration); err != nil {
		return nil, err
	}

	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveSolve(result domain.RoutingResult, took time.Duration) {
	m.solveDuration.Observe(took.Seconds())

	for _, r := range result.Routes {
		if r.IsRented {
			m.routes.WithLabelValues("rental").Inc()
		} else {
			m.routes.WithLabelValues("owned").Inc()
		}
	}
	m.unassigned.Add(float64(len(result.UnassignedDemand)))
	if result.NeedsRental {
		m.shortages.Inc()
	}
}

// ObserveRequest records one finished HTTP request. route is the matched
// mux pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, took time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(took.Seconds())
}
