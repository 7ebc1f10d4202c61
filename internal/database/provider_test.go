package database

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sqliteSettings(t *testing.T) Settings {
	t.Helper()
	return Settings{
		Driver: DriverSQLite,
		URL:    filepath.Join(t.TempDir(), "climate.db"),
	}
}

func TestProvider_ConnBeforeInit(t *testing.T) {
	p := NewProvider(discardLogger())
	_, err := p.Conn(context.Background())
	assert.True(t, errors.Is(err, ErrNotInitialized))
}

func TestProvider_InitRejectsUnsupportedDriver(t *testing.T) {
	p := NewProvider(discardLogger())
	err := p.Init(Settings{Driver: "postgres", URL: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")

	// A failed Init leaves the provider open for a valid one.
	require.NoError(t, p.Init(sqliteSettings(t)))
}

func TestProvider_InitRequiresURL(t *testing.T) {
	p := NewProvider(discardLogger())
	require.Error(t, p.Init(Settings{Driver: DriverSQLite}))
}

func TestProvider_InitIsIdempotent(t *testing.T) {
	p := NewProvider(discardLogger())
	first := sqliteSettings(t)
	require.NoError(t, p.Init(first))
	require.NoError(t, p.Init(Settings{Driver: DriverMySQL, URL: "tcp(nowhere:3306)/x"}))

	assert.Equal(t, first, p.settings)
}

func TestProvider_ConnReusesHandle(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(discardLogger())
	require.NoError(t, p.Init(sqliteSettings(t)))
	t.Cleanup(func() { _ = p.Close() })

	a, err := p.Conn(ctx)
	require.NoError(t, err)
	b, err := p.Conn(ctx)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestProvider_CloseIsIdempotentAndReopens(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(discardLogger())
	require.NoError(t, p.Close(), "close before anything is open")

	require.NoError(t, p.Init(sqliteSettings(t)))
	first, err := p.Conn(ctx)
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	second, err := p.Conn(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	assert.NotSame(t, first, second)
	assert.NoError(t, second.PingContext(ctx))
}

func TestProvider_CheckReadiness(t *testing.T) {
	p := NewProvider(discardLogger())
	assert.Error(t, p.CheckReadiness(context.Background()))

	require.NoError(t, p.Init(sqliteSettings(t)))
	t.Cleanup(func() { _ = p.Close() })
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestProvider_ConnectionRefused(t *testing.T) {
	p := NewProvider(discardLogger())
	require.NoError(t, p.Init(Settings{
		Driver: DriverMySQL,
		URL:    "tcp(127.0.0.1:1)/climate?timeout=1s",
	}))

	_, err := p.Conn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to database")
}

func TestDSN(t *testing.T) {
	t.Run("mysql credentials override URL", func(t *testing.T) {
		dsn, err := DSN(Settings{
			Driver:   DriverMySQL,
			URL:      "old:pw@tcp(db:3306)/climate",
			Username: "climate",
			Password: "secret",
		})
		require.NoError(t, err)
		assert.Contains(t, dsn, "climate:secret@tcp(db:3306)/climate")
	})

	t.Run("mysql keeps URL credentials when none configured", func(t *testing.T) {
		dsn, err := DSN(Settings{Driver: DriverMySQL, URL: "root:pw@tcp(db:3306)/climate"})
		require.NoError(t, err)
		assert.Contains(t, dsn, "root:pw@tcp(db:3306)/climate")
	})

	t.Run("mysql invalid URL", func(t *testing.T) {
		_, err := DSN(Settings{Driver: DriverMySQL, URL: "tcp(db:3306)"})
		require.Error(t, err)
	})

	t.Run("sqlite path", func(t *testing.T) {
		dsn, err := DSN(Settings{Driver: DriverSQLite, URL: "/var/lib/climate.db", Username: "ignored"})
		require.NoError(t, err)
		assert.Equal(t, "file:/var/lib/climate.db?_pragma=busy_timeout(5000)", dsn)
	})

	t.Run("sqlite URI passes through", func(t *testing.T) {
		dsn, err := DSN(Settings{Driver: DriverSQLite, URL: "file:test.db?mode=ro"})
		require.NoError(t, err)
		assert.Equal(t, "file:test.db?mode=ro", dsn)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := DSN(Settings{Driver: "oracle", URL: "x"})
		require.Error(t, err)
	})
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(discardLogger())
	require.NoError(t, p.Init(sqliteSettings(t)))
	t.Cleanup(func() { _ = p.Close() })

	db, err := p.Conn(ctx)
	require.NoError(t, err)

	require.NoError(t, Bootstrap(ctx, db, DriverSQLite))
	require.NoError(t, Bootstrap(ctx, db, DriverSQLite), "second run is a no-op")

	var name string
	err = db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name='climate_data'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "climate_data", name)

	require.Error(t, Bootstrap(ctx, db, "oracle"))
}
