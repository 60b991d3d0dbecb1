// Package metrics exposes Prometheus collectors for the survey editor.
// Observe* functions are no-ops until Init has run, so packages can record
// unconditionally and tests need not register anything.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "road_"

	// ResultSuccess and ResultError label outcomes.
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	mutationsTotal *prometheus.CounterVec

	tonnageLatency prometheus.Histogram
	projectTonnes  prometheus.Gauge
	projectCounts  *prometheus.GaugeVec

	dragMovesTotal *prometheus.CounterVec

	snapshotSaveTotal   *prometheus.CounterVec
	snapshotSaveLatency *prometheus.HistogramVec

	reportExportTotal   *prometheus.CounterVec
	reportExportLatency *prometheus.HistogramVec

	eventSubscribers prometheus.Gauge
)

// Init registers the collectors with the default registry.
func Init() {
	registerOnce.Do(func() {
		mutationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "mutations_total",
				Help: "Project mutations by resource, action and result",
			},
			[]string{"resource", "action", "result"},
		)

		tonnageLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "tonnage_compute_seconds",
				Help:    "Tonnage computation latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		)
		projectTonnes = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "project_tonnes",
				Help: "Total tonnage of the open project",
			},
		)
		projectCounts = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "project_items",
				Help: "Items in the open project by kind",
			},
			[]string{"kind"},
		)

		dragMovesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "drag_moves_total",
				Help: "Applied profile drag moves by axis",
			},
			[]string{"axis"},
		)

		snapshotSaveTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "snapshot_save_total",
				Help: "Snapshot saves by backend and result",
			},
			[]string{"backend", "result"},
		)
		snapshotSaveLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "snapshot_save_latency_seconds",
				Help:    "Snapshot save latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend"},
		)

		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Tonnage report exports by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Tonnage report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		)

		eventSubscribers = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "event_subscribers",
				Help: "Open editor event streams",
			},
		)

		prometheus.MustRegister(
			mutationsTotal,
			tonnageLatency,
			projectTonnes,
			projectCounts,
			dragMovesTotal,
			snapshotSaveTotal,
			snapshotSaveLatency,
			reportExportTotal,
			reportExportLatency,
			eventSubscribers,
		)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

// ObserveMutation counts a project mutation.
func ObserveMutation(resource, action string, err error) {
	if mutationsTotal != nil {
		mutationsTotal.WithLabelValues(resource, action, result(err)).Inc()
	}
}

// ObserveTonnage records a tonnage computation and the project size it ran on.
func ObserveTonnage(total float64, stations, layers int, duration time.Duration) {
	if tonnageLatency != nil {
		tonnageLatency.Observe(duration.Seconds())
	}
	if projectTonnes != nil {
		projectTonnes.Set(total)
	}
	if projectCounts != nil {
		projectCounts.WithLabelValues("stations").Set(float64(stations))
		projectCounts.WithLabelValues("layers").Set(float64(layers))
	}
}

// IncDragMove counts an applied drag move.
func IncDragMove(axis string) {
	if axis == "" {
		axis = "unknown"
	}
	if dragMovesTotal != nil {
		dragMovesTotal.WithLabelValues(axis).Inc()
	}
}

// ObserveSnapshotSave records a snapshot save.
func ObserveSnapshotSave(backend string, err error, duration time.Duration) {
	if backend == "" {
		backend = "unknown"
	}
	if snapshotSaveTotal != nil {
		snapshotSaveTotal.WithLabelValues(backend, result(err)).Inc()
	}
	if snapshotSaveLatency != nil {
		snapshotSaveLatency.WithLabelValues(backend).Observe(duration.Seconds())
	}
}

// ObserveReportExport records a report export.
func ObserveReportExport(format string, err error, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result(err)).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format).Observe(duration.Seconds())
	}
}

// SetEventSubscribers sets the number of open event streams.
func SetEventSubscribers(n int) {
	if eventSubscribers != nil {
		eventSubscribers.Set(float64(n))
	}
}
