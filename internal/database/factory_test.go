package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"olshop/internal/config"
	"olshop/internal/dialect"

	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver: "sqlite",
		ConnectionStrings: map[string]string{
			"sqlite": "file:" + filepath.Join(t.TempDir(), "olshop.db"),
		},
	}
}

func TestDriverNameDefaultsToSqlite(t *testing.T) {
	factory := NewConnectionFactory(config.DatabaseConfig{})
	require.Equal(t, "sqlite", factory.DriverName())
}

func TestDriverNameIsLowercased(t *testing.T) {
	factory := NewConnectionFactory(config.DatabaseConfig{Driver: "PostgreSQL"})
	require.Equal(t, "postgresql", factory.DriverName())

	driver, err := factory.Driver()
	require.NoError(t, err)
	require.Equal(t, dialect.Postgres, driver)
}

func TestCreateConnectionUnsupportedDriver(t *testing.T) {
	factory := NewConnectionFactory(config.DatabaseConfig{Driver: "oracle"})

	_, err := factory.CreateConnection()
	require.ErrorIs(t, err, dialect.ErrUnsupportedDriver)
}

func TestCreateConnectionMissingConnString(t *testing.T) {
	factory := NewConnectionFactory(config.DatabaseConfig{
		Driver:            "mysql",
		ConnectionStrings: map[string]string{"sqlite": "file:olshop.db"},
	})

	_, err := factory.CreateConnection()
	require.ErrorIs(t, err, ErrConnStringMissing)
}

func TestCreateConnectionSqlite(t *testing.T) {
	factory := NewConnectionFactory(sqliteConfig(t))

	db, err := factory.CreateConnection()
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(ctx))
}

func TestHealthCheckerHealthy(t *testing.T) {
	checker := NewHealthChecker(NewConnectionFactory(sqliteConfig(t)))

	require.NoError(t, checker.Check(context.Background()))
}

func TestHealthCheckerUnhealthyOnBadConfig(t *testing.T) {
	checker := NewHealthChecker(NewConnectionFactory(config.DatabaseConfig{Driver: "mysql"}))

	err := checker.Check(context.Background())
	require.ErrorIs(t, err, ErrConnStringMissing)
}
