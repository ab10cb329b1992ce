// Package metrics counts promesso responses with Prometheus.
//
//	m := metrics.New(prometheus.DefaultRegisterer)
//	router := promesso.TheUsual(promesso.WithObserver(m))
//	http.Handle("/metrics", promhttp.Handler())
package metrics

import (
	"strconv"

	"github.com/augustoroman/promesso"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector is a promesso.Observer that counts responses by outcome kind,
// status code and method.
type Collector struct {
	responses *prometheus.CounterVec
	failures  *prometheus.CounterVec
}

// New creates a Collector and registers its metrics with reg. A nil reg
// skips registration.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		responses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "promesso",
				Name:      "responses_total",
				Help:      "responses concluded by handlers, by outcome kind, code and method",
			},
			[]string{"kind", "code", "method"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "promesso",
				Name:      "domain_errors_total",
				Help:      "domain errors returned by handlers, by error code",
			},
			[]string{"error_code"},
		),
	}
	if reg != nil {
		reg.MustRegister(c.responses, c.failures)
	}
	return c
}

// Observe implements promesso.Observer.
func (c *Collector) Observe(req *promesso.Request, kind promesso.Kind, status int) {
	c.responses.WithLabelValues(kind.String(), strconv.Itoa(status), req.Method).Inc()
}

// ObserveDomainError counts a domain error by its code.
func (c *Collector) ObserveDomainError(code string) {
	c.failures.WithLabelValues(code).Inc()
}
