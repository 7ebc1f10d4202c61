package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
)

//go:embed schema/*.sql
var schemas embed.FS

// Bootstrap creates the climate_data table when it does not exist. It never
// alters an existing table.
func Bootstrap(ctx context.Context, db *sql.DB, driver string) error {
	if _, err := driverName(driver); err != nil {
		return err
	}
	ddl, err := schemas.ReadFile("schema/" + driver + ".sql")
	if err != nil {
		return fmt.Errorf("reading %s schema: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, string(ddl)); err != nil {
		return fmt.Errorf("creating climate_data table: %w", err)
	}
	return nil
}
