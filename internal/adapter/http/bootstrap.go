package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"projecthub/internal/adapter/database"
	"projecthub/internal/adapter/database/postgres"
	"projecthub/internal/adapter/database/sqlite"
	"projecthub/internal/adapter/http/routes"
	"projecthub/internal/core/port"
	"projecthub/internal/core/telemetry"
	"projecthub/pkg/config"
	"projecthub/pkg/logging"
)

func StartServer(metrics *telemetry.AppMetrics, logger *logging.Logger, probe port.Telemetry) {
	StartServerWithConfig(metrics, logger, probe, config.GetDefaultConfig())
}

func StartServerWithConfig(metrics *telemetry.AppMetrics, logger *logging.Logger, probe port.Telemetry, appConfig *config.AppConfig) {
	db, closeDB, err := openDatabase()
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		return
	}
	defer closeDB()

	container := NewContainer(db, appConfig, probe)

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		AuthHandler:    container.AuthHandler,
		ProjectHandler: container.ProjectHandler,
		TaskHandler:    container.TaskHandler,
		UserHandler:    container.UserHandler,
		Tokens:         container.Tokens,
	}, metrics, logger, appConfig)

	slog.Info("Server starting",
		"port", appConfig.Port,
		"environment", appConfig.Environment,
		"rate_limit_enabled", appConfig.RateLimitEnabled,
		"https_enforced", appConfig.EnforceHTTPS)

	srv := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
	}
}

// openDatabase picks Postgres when DATABASE_URL is set, SQLite otherwise.
func openDatabase() (*database.DB, func() error, error) {
	if os.Getenv("DATABASE_URL") != "" {
		pg, err := postgres.NewDB()
		if err != nil {
			return nil, nil, err
		}

		return pg.DB, pg.Close, nil
	}

	db, err := sqlite.NewDB()
	if err != nil {
		return nil, nil, err
	}

	return db, db.Close, nil
}
