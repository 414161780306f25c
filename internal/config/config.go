// Package config reads the service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config is the configuration of the service and its tools.
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string

	Port           string
	RequestLogging bool
	LogLevel       string

	// RedisURL selects the Redis audit queue. Without it audit entries are only logged.
	RedisURL            string
	AuditQueueKey       string
	AuditEnqueueTimeout time.Duration
}

// FromEnv builds the configuration from environment variables, applying defaults for the ones
// not set.
//
// Usage example:
// > export DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 PORT=8080 GIN_LOGGING=off
func FromEnv() (Config, error) {
	cfg := Config{
		DBHost:         getenv("DBHOST", "localhost:3306"),
		DBUser:         os.Getenv("DBUSER"),
		DBPassword:     os.Getenv("DBPWD"),
		DBName:         getenv("DBNAME", "test"),
		Port:           getenv("PORT", "8080"),
		RequestLogging: !strings.EqualFold(os.Getenv("GIN_LOGGING"), "off"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		RedisURL:       os.Getenv("REDIS_URL"),
		AuditQueueKey:  getenv("AUDIT_QUEUE_KEY", "audit:jobs"),
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("could not parse PORT env variable: %w", err)
	}
	timeout, err := time.ParseDuration(getenv("AUDIT_ENQUEUE_TIMEOUT", "2s"))
	if err != nil {
		return Config{}, fmt.Errorf("could not parse AUDIT_ENQUEUE_TIMEOUT env variable: %w", err)
	}
	cfg.AuditEnqueueTimeout = timeout
	return cfg, nil
}

// DSN returns the data source name of the MySQL database.
func (c Config) DSN() string {
	dsn := mysql.NewConfig()
	dsn.User = c.DBUser
	dsn.Passwd = c.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = c.DBHost
	dsn.DBName = c.DBName
	dsn.ParseTime = true
	return dsn.FormatDSN()
}

// Addr returns the listen address of the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
