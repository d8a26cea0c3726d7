package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/insartools/sarcut/cut"
)

var (
	registry = prometheus.NewRegistry()

	errorCounter = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "cutvelts",
		Name:      "error_total",
		Help:      "The total number of errors occurring",
	})

	regionCounter = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "cutvelts",
		Name:      "region_total",
		Help:      "Regions processed, by outcome",
	}, []string{"outcome"})

	rowsCounter = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "cutvelts",
		Name:      "rows_total",
		Help:      "Rows seen by stage: candidate, prefiltered, selected",
	}, []string{"stage"})

	versionGauge = promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "cutvelts",
		Name:      "version",
		Help:      "App version.",
	}, []string{"version"})
)

func recordReport(rep cut.Report) {
	rowsCounter.WithLabelValues("candidate").Add(float64(rep.Candidates))
	rowsCounter.WithLabelValues("prefiltered").Add(float64(rep.Prefiltered))
	rowsCounter.WithLabelValues("selected").Add(float64(rep.Selected))

	if rep.File == "" {
		regionCounter.WithLabelValues("empty").Inc()
		return
	}
	regionCounter.WithLabelValues("written").Inc()
}

// writeMetrics writes the run metrics for the node exporter textfile collector
func writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, registry)
}
