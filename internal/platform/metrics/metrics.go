package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	Namespace = "dogs"

	LabelSource  = "source"
	LabelOutcome = "outcome"
	LabelMethod  = "method"
	LabelRoute   = "route"
	LabelStatus  = "status"

	OutcomeOK       = "ok"
	OutcomeUpstream = "upstream_error"
	OutcomeNetwork  = "network_error"
	OutcomeError    = "error"
)

// Metrics agrupa los collectors del servicio sobre un registry propio
// (evita colisiones con el registry global en tests).
type Metrics struct {
	Registry *prometheus.Registry

	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	HTTPRequests     *prometheus.CounterVec
	TemperamentSeeds prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "upstream_requests_total",
				Help:      "Requests made to external breed sources",
			},
			[]string{LabelSource, LabelOutcome},
		),
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Duration of requests made to external breed sources",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{LabelSource},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Handled HTTP requests",
			},
			[]string{LabelMethod, LabelRoute, LabelStatus},
		),
		TemperamentSeeds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "temperament_seeds_total",
				Help:      "Times the temperament table was populated from the external source",
			},
		),
	}

	reg.MustRegister(m.UpstreamRequests, m.UpstreamDuration, m.HTTPRequests, m.TemperamentSeeds)
	return m
}

// Handler expone /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
