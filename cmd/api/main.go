package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	httpadapter "projecthub/internal/adapter/http"
	"projecthub/internal/adapter/telemetry"
	"projecthub/pkg/config"
	"projecthub/pkg/logging"
)

func main() {
	ctx := context.Background()

	logger, err := logging.NewLogger("projecthub")

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	otlpEndpoint := os.Getenv("OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	telemetryContainer, err := telemetry.NewContainer(telemetry.Config{
		ServiceName:    "projecthub",
		ServiceVersion: "1.0.0",
		MetricsPort:    "9091",
		OTLPEndpoint:   otlpEndpoint,
	}, slog.Default())

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer telemetryContainer.Shutdown(ctx)

	metrics := telemetryContainer.AppMetrics
	metrics.StartSystemMetrics(ctx)

	probe := telemetryContainer.NewTelemetryProbe(slog.Default())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		appConfig := config.GetDefaultConfig()

		if os.Getenv("GIN_MODE") == "release" {
			appConfig.Environment = "production"
			appConfig.EnforceHTTPS = true
		}

		httpadapter.StartServerWithConfig(metrics, logger, probe, appConfig)
	}()

	<-c
	logger.Zap().Info("Shutting down gracefully...")
}
