// Package database resolves the configured back-end and hands out connection
// handles bound to the right driver. Handles are created lazily: sql.Open
// validates arguments but does not dial, so callers own open/close scoping.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"olshop/internal/config"
	"olshop/internal/dialect"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// ErrConnStringMissing is returned when the resolved driver has no configured
// connection string.
var ErrConnStringMissing = errors.New("connection string not configured")

// sql.Open registration names for each supported back-end.
var sqlDriverNames = map[dialect.Driver]string{
	dialect.SQLite:   "sqlite",
	dialect.MySQL:    "mysql",
	dialect.Postgres: "pgx",
}

// ConnectionFactory creates database connection handles for the configured
// provider. It holds no connection state itself; configuration is consulted
// on every call.
type ConnectionFactory struct {
	cfg config.DatabaseConfig
}

func NewConnectionFactory(cfg config.DatabaseConfig) *ConnectionFactory {
	return &ConnectionFactory{cfg: cfg}
}

// DriverName returns the resolved provider name, defaulting to sqlite when
// the configuration leaves it unset. It never fails; unknown names surface
// from CreateConnection instead.
func (f *ConnectionFactory) DriverName() string {
	name := strings.TrimSpace(f.cfg.Driver)
	if name == "" {
		return dialect.SQLite.String()
	}
	return strings.ToLower(name)
}

// Driver resolves the provider name to its dialect value.
func (f *ConnectionFactory) Driver() (dialect.Driver, error) {
	return dialect.ParseDriver(f.DriverName())
}

// CreateConnection constructs an unopened connection handle for the resolved
// provider. It fails when the provider is unrecognized or has no configured
// connection string; no I/O happens before the caller uses the handle.
func (f *ConnectionFactory) CreateConnection() (*sql.DB, error) {
	driver, err := f.Driver()
	if err != nil {
		return nil, err
	}

	dsn, ok := f.cfg.ConnectionString(driver.String())
	if !ok {
		return nil, fmt.Errorf("%w for driver %s", ErrConnStringMissing, driver)
	}

	db, err := sql.Open(sqlDriverNames[driver], dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}

	return db, nil
}
