package analysis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the counters of one run in a private registry.
type metrics struct {
	reg    *prometheus.Registry
	rows   *prometheus.CounterVec
	models *prometheus.CounterVec
	stages *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		reg: prometheus.NewRegistry(),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hstrade",
			Name:      "preprocess_rows_total",
			Help:      "Rows seen by preprocessing, by outcome.",
		}, []string{"outcome"}),
		models: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hstrade",
			Name:      "models_total",
			Help:      "Models run, by kind and status.",
		}, []string{"kind", "status"}),
		stages: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hstrade",
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"stage"}),
	}

	m.reg.MustRegister(m.rows, m.models, m.stages)

	return m
}

func (m *metrics) observe(stage string, start time.Time) {
	m.stages.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func (m *metrics) model(kind string, e error) {
	status := "ok"
	if e != nil {
		status = "failed"
	}

	m.models.WithLabelValues(kind, status).Inc()
}

// write saves the registry in the text exposition format.
func (m *metrics) write(fileName string) error {
	return prometheus.WriteToTextfile(fileName, m.reg)
}
