// Package metrics instruments calls to the storefront API with Prometheus
// collectors kept on a private registry, so several clients (and tests) can
// coexist in one process.
package metrics

import (
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Outcome labels for a finished request.
const (
	OutcomeOK          = "ok"
	OutcomeClientError = "client_error"
	OutcomeServerError = "server_error"
	OutcomeTransport   = "transport_error"
)

type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vibecart",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Storefront API requests by route and outcome.",
		}, []string{"route", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vibecart",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Storefront API request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	m.registry.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Requests exposes the request counter, labelled by route and outcome.
func (m *Metrics) Requests() *prometheus.CounterVec { return m.requests }

// Observe records one finished request. route is the method plus the route
// template ("GET /api/cart"), never a concrete id.
func (m *Metrics) Observe(route, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, outcome).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// RouteSummary is a per-route aggregate for display.
type RouteSummary struct {
	Route    string
	Requests uint64
	Failures uint64
	MeanTime time.Duration
}

// Summary folds the collectors into one row per route, sorted by route.
func (m *Metrics) Summary() ([]RouteSummary, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	rows := make(map[string]*RouteSummary)
	row := func(route string) *RouteSummary {
		r, ok := rows[route]
		if !ok {
			r = &RouteSummary{Route: route}
			rows[route] = r
		}
		return r
	}

	for _, fam := range families {
		switch fam.GetName() {
		case "vibecart_api_requests_total":
			for _, mt := range fam.GetMetric() {
				r := row(label(mt, "route"))
				n := uint64(mt.GetCounter().GetValue())
				r.Requests += n
				if label(mt, "outcome") != OutcomeOK {
					r.Failures += n
				}
			}
		case "vibecart_api_request_duration_seconds":
			for _, mt := range fam.GetMetric() {
				h := mt.GetHistogram()
				if h.GetSampleCount() == 0 {
					continue
				}
				mean := h.GetSampleSum() / float64(h.GetSampleCount())
				row(label(mt, "route")).MeanTime = time.Duration(mean * float64(time.Second))
			}
		}
	}

	out := make([]RouteSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Route < out[j].Route })
	return out, nil
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
