package observability

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds the Prometheus counters and histograms for one report run.
// Each Metrics carries its own registry: the process is one-shot, so instead
// of a scrape endpoint the run dumps the registry to a textfile that the
// node_exporter textfile collector can pick up.
type Metrics struct {
	registry *prometheus.Registry

	RowsRead     prometheus.Counter
	RowsKept     prometheus.Counter
	RowsExcluded *prometheus.CounterVec // label: reason={before_cutoff,unparseable_date}

	DownloadBytes    prometheus.Counter
	DownloadDuration prometheus.Histogram
	StageDuration    *prometheus.HistogramVec // label: stage={acquire,load,clean,aggregate,render}
}

// NewMetrics creates all report metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "rows_read_total",
			Help:      "Raw rows loaded from the Storm Events CSV.",
		}),
		RowsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "rows_kept_total",
			Help:      "Rows inside the inclusion window after cleaning.",
		}),
		RowsExcluded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "rows_excluded_total",
			Help:      "Rows dropped during cleaning, by reason.",
		}, []string{"reason"}),
		DownloadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "download_bytes_total",
			Help:      "Bytes written to disk by the dataset download.",
		}),
		DownloadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_report",
			Name:      "download_duration_seconds",
			Help:      "Duration of the dataset download.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storm_report",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
		}, []string{"stage"}),
	}

	m.registry.MustRegister(
		m.RowsRead,
		m.RowsKept,
		m.RowsExcluded,
		m.DownloadBytes,
		m.DownloadDuration,
		m.StageDuration,
	)
	return m
}

// WriteTextfile writes the registry contents to path in the Prometheus text
// exposition format. Pass an empty path to skip the dump.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}

	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}

	enc := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			f.Close()
			return fmt.Errorf("encode metric family %q: %w", mf.GetName(), err)
		}
	}
	return f.Close()
}
