// Package database owns the connection to the climate_data store.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Supported driver names in Settings.Driver.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// ErrNotInitialized is returned by Conn before a successful Init.
var ErrNotInitialized = errors.New("database provider not initialized")

// Settings configures how the provider reaches the database.
//
// For mysql, URL is a go-sql-driver DSN such as "tcp(localhost:3306)/climate";
// non-empty Username and Password replace any credentials it carries. For
// sqlite, URL is a file path or a "file:" URI and credentials are ignored.
type Settings struct {
	Driver          string
	URL             string
	Username        string
	Password        string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Provider lazily opens one shared *sql.DB and hands it to callers. The
// handle is a connection pool, so it is safe to share across requests.
type Provider struct {
	mu       sync.Mutex
	settings Settings
	ready    bool
	db       *sql.DB
	logger   *slog.Logger
}

// NewProvider returns an uninitialized provider.
func NewProvider(logger *slog.Logger) *Provider {
	return &Provider{logger: logger}
}

// Init stores the connection settings. Only the first successful call takes
// effect; later calls return nil without changing anything.
func (p *Provider) Init(s Settings) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if _, err := driverName(s.Driver); err != nil {
		return err
	}
	if s.URL == "" {
		return errors.New("database URL is required")
	}

	p.settings = s
	p.ready = true
	p.logger.Info("database provider initialized", "driver", s.Driver)
	return nil
}

// Conn returns the shared handle, opening and pinging it on first use or
// after Close.
func (p *Provider) Conn(ctx context.Context) (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return nil, ErrNotInitialized
	}
	if p.db != nil {
		return p.db, nil
	}

	db, err := open(ctx, p.settings)
	if err != nil {
		p.logger.Error("error establishing database connection", "driver", p.settings.Driver, "error", err)
		return nil, err
	}
	p.db = db
	p.logger.Debug("database connection opened", "driver", p.settings.Driver)
	return db, nil
}

// Close releases the shared handle. It is a no-op when nothing is open.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	if err != nil {
		p.logger.Warn("error while closing database connection", "error", err)
		return fmt.Errorf("closing database: %w", err)
	}
	p.logger.Info("database connection closed")
	return nil
}

// CheckReadiness pings the database.
func (p *Provider) CheckReadiness(ctx context.Context) error {
	db, err := p.Conn(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func open(ctx context.Context, s Settings) (*sql.DB, error) {
	name, err := driverName(s.Driver)
	if err != nil {
		return nil, err
	}
	dsn, err := DSN(s)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if isSQLiteMemory(s) {
		// Each pooled connection would get its own empty in-memory database.
		db.SetMaxOpenConns(1)
	} else {
		if s.MaxOpenConns > 0 {
			db.SetMaxOpenConns(s.MaxOpenConns)
		}
		db.SetConnMaxLifetime(s.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// DSN builds the driver-specific data source name for s.
func DSN(s Settings) (string, error) {
	switch s.Driver {
	case DriverMySQL:
		cfg, err := mysql.ParseDSN(s.URL)
		if err != nil {
			return "", fmt.Errorf("parsing mysql URL: %w", err)
		}
		if s.Username != "" {
			cfg.User = s.Username
		}
		if s.Password != "" {
			cfg.Passwd = s.Password
		}
		return cfg.FormatDSN(), nil
	case DriverSQLite:
		if isSQLiteMemory(s) {
			return "file::memory:", nil
		}
		if strings.HasPrefix(s.URL, "file:") {
			return s.URL, nil
		}
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", s.URL), nil
	default:
		_, err := driverName(s.Driver)
		return "", err
	}
}

func driverName(driver string) (string, error) {
	switch driver {
	case DriverMySQL:
		return "mysql", nil
	case DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func isSQLiteMemory(s Settings) bool {
	return s.Driver == DriverSQLite && s.URL == ":memory:"
}
