// Package metrics exposes the outcome of a sync run as Prometheus gauges.
//
// A run is a batch job, so the gauges describe the last run and are written
// to a node_exporter textfile rather than served.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "epsync"

// Metrics holds the gauges describing one run.
type Metrics struct {
	Files         *prometheus.GaugeVec // label: outcome
	Episodes      *prometheus.GaugeVec // label: outcome
	Series        *prometheus.GaugeVec // label: outcome
	Resolutions   *prometheus.GaugeVec // label: stage
	Links         *prometheus.GaugeVec // label: state
	FailedBatches prometheus.Gauge
	Duration      prometheus.Gauge
	LastRun       prometheus.Gauge
	Live          prometheus.Gauge
}

// New creates and registers run metrics with the given registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Files: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "archive",
			Name:      "files",
			Help:      "Archive files seen in the last run, by outcome.",
		}, []string{"outcome"}),
		Episodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "episodes",
			Help:      "Episode groups in the last run, by match outcome.",
		}, []string{"outcome"}),
		Series: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "series",
			Help:      "Distinct parsed series in the last run, by match outcome.",
		}, []string{"outcome"}),
		Resolutions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "resolutions",
			Help:      "Series resolutions in the last run, by resolver stage.",
		}, []string{"stage"}),
		Links: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "links",
			Name:      "rows",
			Help:      "Download link rows in the last run, by state.",
		}, []string{"state"}),
		FailedBatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "links",
			Name:      "failed_batches",
			Help:      "Insert batches that failed in the last run.",
		}),
		Duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		Live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_live",
			Help:      "1 if the last run wrote to the catalog, 0 for a dry run.",
		}),
	}

	reg.MustRegister(
		m.Files,
		m.Episodes,
		m.Series,
		m.Resolutions,
		m.Links,
		m.FailedBatches,
		m.Duration,
		m.LastRun,
		m.Live,
	)

	return m
}

// WriteTextfile writes every metric in g to path in the text exposition
// format. The file is replaced atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
