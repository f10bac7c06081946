package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"mes/internal/adapters/out/postgres/processrepo"
	"mes/internal/adapters/out/postgres/routerepo"
	"mes/internal/adapters/out/postgres/taskrepo"
	"mes/internal/adapters/out/postgres/workorderrepo"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// database/sql driver names accepted by Open.
const (
	DriverPgx = "pgx"
	DriverPq  = "postgres"
)

// Open connects to PostgreSQL through the named database/sql driver and wraps
// the pool in GORM. Both drivers accept the same key=value or URL DSN; pgerr
// understands the errors of either.
func Open(driver, dsn string) (*gorm.DB, error) {
	if driver != DriverPgx && driver != DriverPq {
		return nil, fmt.Errorf("open postgres: unsupported driver %q", driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("init gorm: %w", err)
	}

	return db, nil
}

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&processrepo.ProcessDTO{},
		&routerepo.RouteDTO{},
		&routerepo.RouteStepDTO{},
		&workorderrepo.WorkOrderDTO{},
		&taskrepo.TaskDTO{},
	}
}

// Migrate creates or updates the schema, including the foreign keys:
//
//	route_steps.route_id   -> routes      ON DELETE CASCADE
//	tasks.work_order_id    -> work_orders ON DELETE CASCADE
//	tasks.route_step_id    -> route_steps ON DELETE SET NULL
//	work_orders.route_id   -> routes      ON DELETE RESTRICT
//	*.process_id           -> processes   ON DELETE RESTRICT
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
