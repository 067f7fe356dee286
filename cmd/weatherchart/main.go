// Command weatherchart reads a station CSV export, charts the daily high and
// low temperatures, and asks whether to view or save the chart.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-chart/internal/adapter/csvfile"
	"github.com/couchcryptid/weather-chart/internal/adapter/filesink"
	httpadapter "github.com/couchcryptid/weather-chart/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/weather-chart/internal/adapter/kafka"
	"github.com/couchcryptid/weather-chart/internal/chart"
	"github.com/couchcryptid/weather-chart/internal/config"
	"github.com/couchcryptid/weather-chart/internal/observability"
	"github.com/couchcryptid/weather-chart/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	renderer, err := chart.NewRenderer(cfg.ChartDPI, cfg.ChartPeriod)
	if err != nil {
		logger.Error("failed to create chart renderer", "error", err)
		os.Exit(1)
	}

	var open httpadapter.Opener
	if cfg.OpenBrowser {
		open = httpadapter.OpenBrowser
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, logger, metrics)
	viewer := httpadapter.NewViewer(srv, open, cfg.ShutdownTimeout, logger)

	opts := pipeline.Options{
		OutputPath: cfg.OutputPath,
		Debug:      cfg.Debug,
		In:         stdin(),
		Out:        os.Stdout,
	}

	// Observation export is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		opts.Publisher = writer
		logger.Info("kafka export enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(
		csvfile.NewReader(cfg.InputPath, logger),
		renderer,
		viewer,
		filesink.New("", cfg.ChartDPI, os.Stdout, logger),
		logger,
		metrics,
		opts,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome, runErr := p.Run(ctx)

	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	switch {
	case errors.Is(runErr, context.Canceled):
		logger.Info("interrupted")
		stop()
		os.Exit(130)
	case runErr != nil:
		logger.Error("pipeline error", "error", runErr)
		stop()
		os.Exit(1)
	}
	logger.Info("done", "outcome", outcome)
}

// stdin returns nil when the process has no usable standard input.
func stdin() io.Reader {
	if _, err := os.Stdin.Stat(); err != nil {
		return nil
	}
	return os.Stdin
}
