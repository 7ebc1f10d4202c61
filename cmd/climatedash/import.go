package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/climate-dashboard/internal/importer"
)

func newImportCmd() *cobra.Command {
	var (
		path      string
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import climate records from a CSV file",
		Long: `Import reads a CSV file with a date,location,temperature,wind header and
inserts every valid row. Invalid rows are logged with their line number and
skipped; a database failure stops the import.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd, path, batchSize)
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "Path to the CSV file")
	cmd.Flags().IntVar(&batchSize, "batch-size", importer.DefaultBatchSize, "Rows read per batch")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(cmd *cobra.Command, path string, batchSize int) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	source, err := importer.NewCSVSource(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	summary, err := importer.New(source, a.store, a.logger, a.metrics, batchSize).Run(ctx)
	fmt.Fprintf(cmd.OutOrStdout(), "read %d, inserted %d, rejected %d\n", summary.Read, summary.Inserted, summary.Rejected)
	return err
}
