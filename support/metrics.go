package support

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weegigs/tally-go/tally"
)

// Metrics records counter activity on a private registry so tests and the
// process never share collectors.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	value      prometheus.Gauge
}

func NewMetrics() *Metrics {
	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tally",
			Subsystem: "counter",
			Name:      "operations_total",
			Help:      "Number of counter operations by kind",
		},
		[]string{"operation"},
	)

	value := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tally",
		Subsystem: "counter",
		Name:      "value",
		Help:      "Current counter value",
	})

	m := &Metrics{
		registry:   prometheus.NewRegistry(),
		operations: operations,
		value:      value,
	}

	for _, op := range tally.Operations() {
		m.operations.WithLabelValues(op.String())
	}

	m.registry.MustRegister(
		m.operations,
		m.value,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Observe(op tally.Operation, count int) {
	m.operations.WithLabelValues(op.String()).Inc()
	m.value.Set(float64(count))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
