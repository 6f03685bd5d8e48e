package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// DatabaseConfig carries the configured driver name and one connection string
// per driver. Driver defaults to sqlite when unset; the connection string for
// the resolved driver is required, but its absence is reported at
// connection-creation time, not here.
type DatabaseConfig struct {
	Driver            string
	ConnectionStrings map[string]string
}

// ConnectionString returns the connection string configured for the given
// driver name, or false when none is set.
func (c DatabaseConfig) ConnectionString(driver string) (string, bool) {
	dsn, ok := c.ConnectionStrings[strings.ToLower(driver)]
	if !ok || dsn == "" {
		return "", false
	}
	return dsn, true
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("DB_DRIVER", "sqlite")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	var origins []string
	if raw := viper.GetString("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			AllowedOrigins: origins,
		},
		Database: DatabaseConfig{
			Driver: viper.GetString("DB_DRIVER"),
			ConnectionStrings: map[string]string{
				"sqlite":     viper.GetString("DB_SQLITE_DSN"),
				"mysql":      viper.GetString("DB_MYSQL_DSN"),
				"postgresql": viper.GetString("DB_POSTGRES_DSN"),
			},
		},
	}
}
