// Package config loads report settings from defaults, an optional config
// file, and STORM_REPORT_* environment variables. Every knob the pipeline
// needs is passed in explicitly from here; nothing reads ambient state.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// cutoffLayout is the date-only format for the dataset.cutoff setting.
const cutoffLayout = "2006-01-02"

// envKeyReplacer maps nested keys to env names: dataset.raw_path becomes
// STORM_REPORT_DATASET_RAW_PATH.
var envKeyReplacer = strings.NewReplacer(".", "_")

// Config holds all settings for one report run.
type Config struct {
	Dataset DatasetConfig `mapstructure:"dataset"`
	Report  ReportConfig  `mapstructure:"report"`
	Chart   ChartConfig   `mapstructure:"chart"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DatasetConfig controls acquisition and cleaning of the raw archive.
type DatasetConfig struct {
	SourceURL       string        `mapstructure:"source_url"`
	RawPath         string        `mapstructure:"raw_path"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
	Cutoff          string        `mapstructure:"cutoff"` // YYYY-MM-DD, inclusive window start
}

// ReportConfig controls the aggregation outputs.
type ReportConfig struct {
	OutputDir         string `mapstructure:"output_dir"`
	TopN              int    `mapstructure:"top_n"`
	FrequencyMinCount int    `mapstructure:"frequency_min_count"`
	MetricsFile       string `mapstructure:"metrics_file"` // empty disables the textfile dump
}

// ChartConfig controls rendered chart geometry and filenames.
type ChartConfig struct {
	Width        int    `mapstructure:"width"`
	Height       int    `mapstructure:"height"`
	HealthFile   string `mapstructure:"health_file"`
	EconomicFile string `mapstructure:"economic_file"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration, layering an optional config file and environment
// overrides on top of the defaults. Pass an empty path to skip the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("STORM_REPORT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(envKeyReplacer)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset.source_url", "https://d396qusza40orc.cloudfront.net/repdata%2Fdata%2FStormData.csv.bz2")
	v.SetDefault("dataset.raw_path", "data/StormData.csv.bz2")
	v.SetDefault("dataset.download_timeout", "10m")
	// All 48 event types are recorded from 1996 on; earlier years only cover
	// tornado, thunderstorm wind, and hail.
	v.SetDefault("dataset.cutoff", "1996-01-01")

	v.SetDefault("report.output_dir", "out")
	v.SetDefault("report.top_n", 25)
	v.SetDefault("report.frequency_min_count", 100)
	v.SetDefault("report.metrics_file", "out/storm_report.prom")

	v.SetDefault("chart.width", 1200)
	v.SetDefault("chart.height", 800)
	v.SetDefault("chart.health_file", "population_impact.png")
	v.SetDefault("chart.economic_file", "economic_impact.png")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	if c.Dataset.SourceURL == "" {
		return errors.New("dataset.source_url is required")
	}
	if c.Dataset.RawPath == "" {
		return errors.New("dataset.raw_path is required")
	}
	if c.Dataset.DownloadTimeout <= 0 {
		return errors.New("dataset.download_timeout must be positive")
	}
	if _, err := c.CutoffTime(); err != nil {
		return fmt.Errorf("dataset.cutoff: %w", err)
	}
	if c.Report.OutputDir == "" {
		return errors.New("report.output_dir is required")
	}
	if c.Report.TopN < 1 {
		return errors.New("report.top_n must be at least 1")
	}
	if c.Report.FrequencyMinCount < 1 {
		return errors.New("report.frequency_min_count must be at least 1")
	}
	if c.Chart.Width < 400 || c.Chart.Height < 300 {
		return errors.New("chart dimensions must be at least 400x300")
	}
	if c.Chart.HealthFile == "" || c.Chart.EconomicFile == "" {
		return errors.New("chart filenames are required")
	}
	return nil
}

// CutoffTime parses the configured cutoff date as midnight UTC.
func (c *Config) CutoffTime() (time.Time, error) {
	t, err := time.Parse(cutoffLayout, c.Dataset.Cutoff)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", c.Dataset.Cutoff, err)
	}
	return t, nil
}
