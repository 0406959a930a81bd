// Package metrics records alignment run metrics in a private Prometheus
// registry and exports them in the text exposition format, suitable for the
// node_exporter textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"artalign/internal/batch"
	"artalign/internal/classify"
)

const namespace = "artalign"

const rejectedLabel = "rejected"

// Recorder implements batch.Observer on top of Prometheus collectors.
type Recorder struct {
	registry   *prometheus.Registry
	decisions  *prometheus.CounterVec
	stages     *prometheus.CounterVec
	batches    prometheus.Counter
	candidates prometheus.Counter
	dropped    prometheus.Counter
	books      prometheus.Counter
	duration   prometheus.Histogram
	lastRun    prometheus.Gauge
}

var _ batch.Observer = (*Recorder)(nil)

// New creates a recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Classified candidate pairs by label and method.",
		}, []string{"label", "method"}),
		stages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascade_stage_reached_total",
			Help:      "Candidates by the deepest classification stage they reached.",
		}, []string{"stage"}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Batches aligned.",
		}),
		candidates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Candidate pairs produced by the sequence aligner.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_dropped_total",
			Help:      "Alignments removed because another source claimed the same target.",
		}),
		books: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "books_total",
			Help:      "Books aligned.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall time of one batch.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}
	r.registry.MustRegister(r.decisions, r.stages, r.batches, r.candidates, r.dropped, r.books, r.duration, r.lastRun)
	return r
}

// BatchDone implements batch.Observer.
func (r *Recorder) BatchDone(_ batch.Window, candidates int, elapsed time.Duration) {
	r.batches.Inc()
	r.candidates.Add(float64(candidates))
	r.duration.Observe(elapsed.Seconds())
}

// Classified implements batch.Observer.
func (r *Recorder) Classified(d classify.Decision) {
	r.stages.WithLabelValues(StageName(d.Reached)).Inc()
	if !d.Accepted {
		r.decisions.WithLabelValues(rejectedLabel, "none").Inc()
		return
	}
	r.decisions.WithLabelValues(string(d.Label), string(d.Method)).Inc()
}

// Deduplicated implements batch.Observer.
func (r *Recorder) Deduplicated(dropped int) {
	r.dropped.Add(float64(dropped))
}

// BookDone counts a finished book.
func (r *Recorder) BookDone() { r.books.Inc() }

// RunFinished stamps the completion time.
func (r *Recorder) RunFinished(at time.Time) {
	r.lastRun.Set(float64(at.Unix()))
}

// WriteTextfile writes the registry to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// StageName is the metric label of a cascade stage.
func StageName(s classify.Stage) string {
	switch s {
	case classify.StageBLEU:
		return "bleu"
	case classify.StageNumberLength:
		return "number_length"
	case classify.StageTFIDF:
		return "tfidf"
	default:
		return "unknown"
	}
}
