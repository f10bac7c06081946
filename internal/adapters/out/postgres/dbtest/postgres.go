// Package dbtest provides throwaway databases with the production schema:
// a PostgreSQL container for adapter suites and an in-memory SQLite for
// application tests.
package dbtest

import (
	"context"
	"time"

	postgres_adapter "mes/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Truncate lists every table in an order TRUNCATE ... CASCADE accepts.
const Truncate = "TRUNCATE TABLE tasks, work_orders, route_steps, routes, processes CASCADE"

// StartPostgres runs postgres:15-alpine, connects through the production Open path and
// migrates the schema.
func StartPostgres(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	db, err := postgres_adapter.Open(postgres_adapter.DriverPgx, dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	if err := postgres_adapter.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	return container, db, nil
}
