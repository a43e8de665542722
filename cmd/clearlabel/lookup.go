package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clearlabel/clearlabel/pkg/clearlabel/internalerr"
)

// NewLookupCmd creates the lookup command.
func NewLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <ingredient>",
		Short: "Check a single ingredient against the hazard database",
		Long: `Lookup normalizes a single ingredient name and runs it through the
match cascade, skipping label-text extraction.

Examples:
  clearlabel lookup methylparaben
  clearlabel lookup "Titanium Dioxide (CI 77891)" --json`,
		Args: cobra.ExactArgs(1),
		RunE: runLookupCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output the verdict as JSON")

	return cmd
}

func runLookupCmd(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("%w: empty ingredient name", internalerr.ErrInvalidInput)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(getVerboseFlag(cmd))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	analyzer, closeStore, err := newAnalyzer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	verdict := analyzer.Lookup(args[0])

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(verdict)
	}

	w := cmd.OutOrStdout()
	if !verdict.IsHarmful {
		fmt.Fprintf(w, "%s: no match in the hazard database\n", args[0])
		return nil
	}
	fmt.Fprintf(w, "%s: matched %q (confidence %.2f, hazard %d/10)\n",
		args[0], verdict.MatchedName, verdict.Confidence, verdict.Score)
	if len(verdict.Categories) > 0 {
		fmt.Fprintf(w, "  categories: %s\n", strings.Join(verdict.Categories, ", "))
	}
	if len(verdict.Concerns) > 0 {
		fmt.Fprintf(w, "  concerns:   %s\n", strings.Join(verdict.Concerns, ", "))
	}
	if len(verdict.FoundIn) > 0 {
		fmt.Fprintf(w, "  found in:   %s\n", strings.Join(verdict.FoundIn, ", "))
	}
	return nil
}
