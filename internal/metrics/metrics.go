// Package metrics exposes Prometheus collectors for ingestion runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "protgraph"

type Recorder struct {
	Runs        *prometheus.CounterVec
	RowsWritten *prometheus.CounterVec
	RunDuration prometheus.Histogram
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Ingestion runs by outcome.",
		}, []string{"status"}),
		RowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Rows written to the graph, by entity batch.",
		}, []string{"entity"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of ingestion runs.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(r.Runs, r.RowsWritten, r.RunDuration)
	return r
}

func (r *Recorder) ObserveBatch(entity string, rows int) {
	if r == nil {
		return
	}
	r.RowsWritten.WithLabelValues(entity).Add(float64(rows))
}

func (r *Recorder) ObserveRun(err error, elapsed time.Duration) {
	if r == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	r.Runs.WithLabelValues(status).Inc()
	r.RunDuration.Observe(elapsed.Seconds())
}
