package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clearlabel/clearlabel/pkg/clearlabel/internalerr"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/store/jsonstore"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/store/sqlite"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <dataset.json>",
		Short: "Import a JSON hazard dataset into a SQLite database",
		Long: `Import reads a hazard dataset in the JSON document format and upserts
it into a SQLite database, creating the schema if needed. Existing
records with the same ingredient name are replaced.

Examples:
  clearlabel import toxic_ingredients.json --db hazards.db`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCmd,
	}

	cmd.Flags().StringP("db", "d", "hazards.db", "SQLite database path to import into")

	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(getVerboseFlag(cmd))

	dbPath, err := cmd.Flags().GetString("db")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	src := jsonstore.New(args[0], logger)
	ds, err := src.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	if len(ds.Records) == 0 {
		return fmt.Errorf("%w: dataset %s contains no ingredient records", internalerr.ErrInvalidInput, args[0])
	}

	db, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.ImportDataset(ctx, ds); err != nil {
		return fmt.Errorf("import dataset: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d ingredients, %d alternatives, %d categories into %s\n",
		len(ds.Records), len(ds.Alternatives), len(ds.Categories), dbPath)
	return nil
}
