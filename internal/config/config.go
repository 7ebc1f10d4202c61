package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Supported values for DB_DRIVER.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Database connection settings.
	DBDriver          string
	DBURL             string
	DBUsername        string
	DBPassword        string
	DBMaxOpenConns    int
	DBConnMaxLifetime time.Duration
	DBBootstrapSchema bool

	// Change feed settings. The feed is disabled when KafkaBrokers is empty.
	KafkaBrokers      []string
	KafkaChangesTopic string
}

// ChangeFeedEnabled reports whether change events should be published.
func (c *Config) ChangeFeedEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	maxOpen, err := parsePositiveInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return nil, err
	}

	lifetime, err := time.ParseDuration(sharedcfg.EnvOrDefault("DB_CONN_MAX_LIFETIME", "5m"))
	if err != nil || lifetime < 0 {
		return nil, errors.New("invalid DB_CONN_MAX_LIFETIME")
	}

	driver := sharedcfg.EnvOrDefault("DB_DRIVER", DriverSQLite)
	if driver != DriverMySQL && driver != DriverSQLite {
		return nil, fmt.Errorf("invalid DB_DRIVER %q: want %s or %s", driver, DriverMySQL, DriverSQLite)
	}

	bootstrap := driver == DriverSQLite
	if v := os.Getenv("DB_BOOTSTRAP_SCHEMA"); v != "" {
		bootstrap, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid DB_BOOTSTRAP_SCHEMA")
		}
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DBDriver:          driver,
		DBURL:             sharedcfg.EnvOrDefault("DB_URL", "climate.db"),
		DBUsername:        os.Getenv("DB_USERNAME"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBMaxOpenConns:    maxOpen,
		DBConnMaxLifetime: lifetime,
		DBBootstrapSchema: bootstrap,

		KafkaBrokers:      brokers,
		KafkaChangesTopic: sharedcfg.EnvOrDefault("KAFKA_CHANGES_TOPIC", "climate-record-changes"),
	}

	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is required")
	}
	if cfg.ChangeFeedEnabled() && cfg.KafkaChangesTopic == "" {
		return nil, errors.New("KAFKA_CHANGES_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}
