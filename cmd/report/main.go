// Command report runs the storm impact analysis end to end: it downloads the
// NOAA Storm Events archive (reusing a cached copy when present), cleans and
// aggregates it, and writes the two impact charts plus a metrics textfile.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/storm-impact-report/internal/acquire"
	"github.com/couchcryptid/storm-impact-report/internal/config"
	"github.com/couchcryptid/storm-impact-report/internal/dataset"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/couchcryptid/storm-impact-report/internal/pipeline"
	"github.com/couchcryptid/storm-impact-report/internal/render"
)

func main() {
	configPath := flag.String("config", "", "optional path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	metrics := observability.NewMetrics()

	cutoff, err := cfg.CutoffTime()
	if err != nil {
		logger.Error("invalid cutoff date", "error", err)
		os.Exit(1)
	}

	opts := pipeline.Options{
		SourceURL:         cfg.Dataset.SourceURL,
		RawPath:           cfg.Dataset.RawPath,
		Cutoff:            cutoff,
		TopN:              cfg.Report.TopN,
		FrequencyMinCount: cfg.Report.FrequencyMinCount,
		OutputDir:         cfg.Report.OutputDir,
		HealthFile:        cfg.Chart.HealthFile,
		EconomicFile:      cfg.Chart.EconomicFile,
		MetricsFile:       cfg.Report.MetricsFile,
	}

	p := pipeline.New(
		acquire.NewFetcher(cfg.Dataset.DownloadTimeout, logger),
		pipeline.LoaderFunc(dataset.Load),
		render.NewChartWriter(cfg.Chart.Width, cfg.Chart.Height),
		opts,
		logger,
		metrics,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := p.Run(ctx)
	if err != nil {
		logger.Error("report run failed", "error", err)
		os.Exit(1)
	}

	if len(report.Health) > 0 {
		top := report.Health[0]
		logger.Info("highest population impact",
			"event_type", top.EventType,
			"injuries", top.Injuries,
			"fatalities", top.Fatalities,
		)
	}
	if len(report.Economic) > 0 {
		top := report.Economic[0]
		logger.Info("highest economic impact",
			"event_type", top.EventType,
			"total_damage", top.Total,
		)
	}
}
