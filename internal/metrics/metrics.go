package metrics

import (
	"time"

	"github.com/codex-14499/codexcheck/bundle"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the collectors for one validation run on a private
// registry, so repeated runs in one process never collide.
type Recorder struct {
	reg      *prometheus.Registry
	nodes    prometheus.Counter
	issues   *prometheus.CounterVec
	success  prometheus.Gauge
	duration prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "codex_nodes_validated_total",
			Help: "Nodes checked against the schema and safety rules.",
		}),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "codex_validation_issues_total",
			Help: "Validation issues reported, by issue code.",
		}, []string{"code"}),
		success: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "codex_validation_success",
			Help: "1 if the last run found no issues, 0 otherwise.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "codex_validation_duration_seconds",
			Help: "Wall time of the last validation run.",
		}),
	}
	r.reg.MustRegister(r.nodes, r.issues, r.success, r.duration)
	return r
}

// Observe records the outcome of a bundle check.
func (r *Recorder) Observe(rep bundle.Report, took time.Duration) {
	r.nodes.Add(float64(rep.NodeCount))
	for _, is := range rep.Issues {
		r.issues.WithLabelValues(is.Code).Inc()
	}
	if rep.OK() {
		r.success.Set(1)
	} else {
		r.success.Set(0)
	}
	r.duration.Set(took.Seconds())
}

// Fail marks a run that stopped before producing a report.
func (r *Recorder) Fail(took time.Duration) {
	r.success.Set(0)
	r.duration.Set(took.Seconds())
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
