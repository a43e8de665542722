// Package main provides the entry point for the clearlabel CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/clearlabel/clearlabel/pkg/clearlabel"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/config"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/store"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/store/jsonstore"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/store/sqlite"
)

// NewRootCmd creates the root command for clearlabel.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clearlabel",
		Short: "Cosmetic-ingredient label safety analyzer",
		Long: `clearlabel analyzes cosmetic-ingredient label text against a curated
hazard database. It extracts ingredient candidates from free-form label
text, matches each against the database through an exact / pattern /
compound / fuzzy cascade, and computes an aggregate product safety score.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Configuration file path (YAML)")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewLookupCmd())
	cmd.AddCommand(NewImportCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogger builds the process logger. Verbose mode lowers the level
// to debug; everything goes to stderr so stdout stays parseable.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the configuration file named by --config, or the
// defaults when the flag is unset.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// openStore opens the hazard-database store named by the configuration.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (store.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.Store.Path)
	default:
		return jsonstore.New(cfg.Store.Path, logger), nil
	}
}

// newAnalyzer opens the configured store, loads the hazard database, and
// builds an analyzer. The returned func closes the store.
func newAnalyzer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*clearlabel.Analyzer, func(), error) {
	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	analyzer := clearlabel.New(clearlabel.Options{
		Thresholds:  cfg.Thresholds(),
		Logger:      logger,
		MaxParallel: cfg.Analyze.MaxParallel,
		CacheSize:   cfg.Analyze.CacheSize,
	})
	if err := analyzer.Reload(ctx, st); err != nil {
		st.Close()
		return nil, nil, err
	}

	return analyzer, func() {
		if err := st.Close(); err != nil {
			logger.Warn("close store", "error", err)
		}
	}, nil
}

func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return false
	}
	return verbose
}
