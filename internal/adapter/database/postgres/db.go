package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"

	"projecthub/internal/adapter/database"
)

// DB keeps the pgx pool for health checks alongside the database/sql
// handle the repositories query through.
type DB struct {
	*database.DB
	Pool *pgxpool.Pool
}

func NewDB() (*DB, error) {
	url := os.Getenv("DATABASE_URL")

	if url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, url)

	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if err := RunMigrations(url); err != nil {
		pool.Close()
		return nil, err
	}

	sqlDB, err := otelsql.Open("pgx", url,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName("projecthub"),
		otelsql.WithTracerProvider(otel.GetTracerProvider()),
	)

	if err != nil {
		pool.Close()
		return nil, err
	}

	return &DB{
		DB:   database.NewDB(sqlDB),
		Pool: pool,
	}, nil
}

func (db *DB) Close() error {
	db.Pool.Close()
	return db.DB.Close()
}

func RunMigrations(dbURL string) error {
	migrationsPath := os.Getenv("MIGRATIONS_PATH")

	if migrationsPath == "" {
		migrationsPath = "db/migrations"
	}

	sqlDB, err := sql.Open("pgx", dbURL)

	if err != nil {
		return err
	}

	defer sqlDB.Close()

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})

	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres",
		driver,
	)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}
