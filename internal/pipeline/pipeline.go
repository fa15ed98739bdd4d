// Package pipeline orchestrates the report run: acquire the raw archive,
// load and clean it, aggregate, and render. Every stage fully materializes
// its output before the next begins; a failed stage aborts the whole run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
)

// Acquirer downloads the raw dataset to local disk, returning bytes written
// (0 when the file was already present).
type Acquirer interface {
	Fetch(ctx context.Context, url, dest string) (int64, error)
}

// Loader reads projected raw records from a dataset file.
type Loader interface {
	Load(path string) ([]domain.RawRecord, error)
}

// LoaderFunc adapts a plain load function to the Loader interface.
type LoaderFunc func(path string) ([]domain.RawRecord, error)

func (f LoaderFunc) Load(path string) ([]domain.RawRecord, error) { return f(path) }

// Renderer writes aggregation tables out as chart images.
type Renderer interface {
	RenderHealth(rows []domain.HealthImpact, path string) error
	RenderEconomic(rows []domain.EconomicImpact, path string) error
}

// Options carries the explicit settings for one run. The pipeline reads no
// ambient state; everything it needs arrives here.
type Options struct {
	SourceURL string
	RawPath   string

	Cutoff            time.Time
	TopN              int
	FrequencyMinCount int

	OutputDir    string
	HealthFile   string
	EconomicFile string
	MetricsFile  string
}

// Pipeline runs the storm impact report end to end.
type Pipeline struct {
	acquirer Acquirer
	loader   Loader
	renderer Renderer
	opts     Options
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(a Acquirer, l Loader, r Renderer, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		acquirer: a,
		loader:   l,
		renderer: r,
		opts:     opts,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run executes one complete report run and returns the computed tables.
func (p *Pipeline) Run(ctx context.Context) (*domain.Report, error) {
	events, rowsRead, err := p.prepare(ctx)
	if err != nil {
		return nil, err
	}

	report := p.aggregate(events)
	report.RowsRead = rowsRead
	report.RowsKept = len(events)
	report.GeneratedAt = domain.Now()

	if err := p.render(report); err != nil {
		return nil, err
	}

	if err := p.metrics.WriteTextfile(p.opts.MetricsFile); err != nil {
		return nil, fmt.Errorf("write metrics textfile: %w", err)
	}

	p.logger.Info("report complete",
		"rows_read", report.RowsRead,
		"rows_kept", report.RowsKept,
		"health_categories", len(report.Health),
		"economic_categories", len(report.Economic),
	)
	return report, nil
}

// prepare acquires, loads, and cleans the dataset.
func (p *Pipeline) prepare(ctx context.Context) ([]domain.StormEvent, int, error) {
	start := time.Now()
	written, err := p.acquirer.Fetch(ctx, p.opts.SourceURL, p.opts.RawPath)
	if err != nil {
		return nil, 0, fmt.Errorf("acquire dataset: %w", err)
	}
	p.metrics.DownloadBytes.Add(float64(written))
	p.metrics.DownloadDuration.Observe(time.Since(start).Seconds())
	p.metrics.StageDuration.WithLabelValues("acquire").Observe(time.Since(start).Seconds())

	start = time.Now()
	raws, err := p.loader.Load(p.opts.RawPath)
	if err != nil {
		return nil, 0, fmt.Errorf("load dataset: %w", err)
	}
	p.metrics.RowsRead.Add(float64(len(raws)))
	p.metrics.StageDuration.WithLabelValues("load").Observe(time.Since(start).Seconds())
	p.logger.Info("dataset loaded", "rows", len(raws))

	start = time.Now()
	events := make([]domain.StormEvent, 0, len(raws))
	dropped := map[domain.DropReason]int{}
	for _, raw := range raws {
		event, drop := domain.CleanRecord(raw, p.opts.Cutoff)
		if drop != domain.DropNone {
			dropped[drop]++
			p.metrics.RowsExcluded.WithLabelValues(string(drop)).Inc()
			continue
		}
		events = append(events, event)
	}
	p.metrics.RowsKept.Add(float64(len(events)))
	p.metrics.StageDuration.WithLabelValues("clean").Observe(time.Since(start).Seconds())
	p.logger.Info("dataset cleaned",
		"kept", len(events),
		"before_cutoff", dropped[domain.DropBeforeCutoff],
		"unparseable_date", dropped[domain.DropUnparseableDate],
	)

	return events, len(raws), nil
}

func (p *Pipeline) aggregate(events []domain.StormEvent) *domain.Report {
	start := time.Now()
	report := &domain.Report{
		Health:    domain.AggregateHealth(events),
		Economic:  domain.AggregateEconomic(events),
		Frequency: domain.AggregateFrequency(events, p.opts.FrequencyMinCount),
	}
	p.metrics.StageDuration.WithLabelValues("aggregate").Observe(time.Since(start).Seconds())
	return report
}

func (p *Pipeline) render(report *domain.Report) error {
	start := time.Now()

	healthPath := filepath.Join(p.opts.OutputDir, p.opts.HealthFile)
	if err := p.renderer.RenderHealth(domain.TopN(report.Health, p.opts.TopN), healthPath); err != nil {
		return fmt.Errorf("render health chart: %w", err)
	}
	p.logger.Info("chart written", "path", healthPath)

	economicPath := filepath.Join(p.opts.OutputDir, p.opts.EconomicFile)
	if err := p.renderer.RenderEconomic(domain.TopN(report.Economic, p.opts.TopN), economicPath); err != nil {
		return fmt.Errorf("render economic chart: %w", err)
	}
	p.logger.Info("chart written", "path", economicPath)

	p.metrics.StageDuration.WithLabelValues("render").Observe(time.Since(start).Seconds())
	return nil
}
