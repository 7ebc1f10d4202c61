//go:build integration

package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-dashboard/internal/adapter/sqlstore"
	"github.com/couchcryptid/climate-dashboard/internal/domain"
	"github.com/couchcryptid/climate-dashboard/internal/observability"
)

// TestMySQLRepository runs the repository against a real MySQL server, where
// DATE columns come back as []byte and LIKE follows the server collation.
func TestMySQLRepository(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	provider := startMySQL(ctx, t)
	store := sqlstore.New(provider, discardLogger(), observability.NewMetricsForTesting())

	victoria, err := domain.NewClimateRecord("2024-01-15", "Victoria", 12.5, 20)
	require.NoError(t, err)
	tofino, err := domain.NewClimateRecord("2024-01-16", "Tofino", -3, 45.5)
	require.NoError(t, err)

	for _, r := range []domain.ClimateRecord{victoria, tofino} {
		ok, err := store.Insert(ctx, r)
		require.NoError(t, err)
		require.True(t, ok)
	}

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2024-01-15", all[0].Date())
	assert.Equal(t, "Victoria", all[0].Location())
	assert.InDelta(t, 45.5, all[1].Wind(), 1e-9)

	id := all[0].ID()
	got, found, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Equal(all[0]))

	matches, err := store.FindByCity(ctx, "Vic%")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, id, matches[0].ID())

	updated, err := domain.NewClimateRecordWithID(id, "2024-02-01", "Duncan", 4, 0)
	require.NoError(t, err)
	ok, err := store.Update(ctx, updated)
	require.NoError(t, err)
	assert.True(t, ok)

	got, found, err = store.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "2024-02-01", got.Date())
	assert.Equal(t, "Duncan", got.Location())

	ok, err = store.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	_, found, err = store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)

	ok, err = store.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

// A date that matches the yyyy-MM-dd shape but is not a calendar date passes
// validation and is rejected by the server.
func TestMySQLRepository_InvalidCalendarDate(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	provider := startMySQL(ctx, t)
	store := sqlstore.New(provider, discardLogger(), observability.NewMetricsForTesting())

	record, err := domain.NewClimateRecord("2024-13-99", "Victoria", 1, 1)
	require.NoError(t, err)

	ok, err := store.Insert(ctx, record)
	require.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, "Failed to insert climate record.", err.Error())
	assert.False(t, ok)
}
