package generate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeWritten   = "written"
	outcomeUnchanged = "unchanged"
	outcomeSkipped   = "skipped"
	outcomeFailed    = "failed"
	outcomeDryRun    = "dry_run"
)

type metrics struct {
	registry *prometheus.Registry

	filesProcessed *prometheus.CounterVec
	typesDerived   prometheus.Counter
	runsTotal      prometheus.Counter
}

// newMetrics registers the generator's counters with reg. A registry holds
// the counters of one generator only.
func newMetrics(reg *prometheus.Registry) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		filesProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "derive_ord_files_total",
			Help: "The total number of source files processed, by outcome",
		}, []string{"outcome"}),
		typesDerived: factory.NewCounter(prometheus.CounterOpts{
			Name: "derive_ord_types_total",
			Help: "The total number of types a comparison was derived for",
		}),
		runsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "derive_ord_runs_total",
			Help: "The total number of generator runs",
		}),
	}
}

// Metrics returns the gatherer holding the generator's counters.
func (g *Generator) Metrics() prometheus.Gatherer {
	return g.metrics.registry
}

// WriteMetrics writes the generator's counters to path in the Prometheus text
// format, for node_exporter's textfile collector or a CI artifact.
func (g *Generator) WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, g.metrics.registry)
}
