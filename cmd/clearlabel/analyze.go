package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clearlabel/clearlabel/pkg/clearlabel"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/internalerr"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [label text]",
		Short: "Analyze ingredient label text for harmful ingredients",
		Long: `Analyze extracts ingredient candidates from free-form label text,
matches each one against the hazard database, and reports the verdicts
together with an aggregate product safety score.

Label text is taken from the argument, from --file, or from stdin.
HTML input is accepted; markup is stripped before extraction.

Examples:
  # Analyze label text directly
  clearlabel analyze "Aqua, Glycerin, Methylparaben, Parfum"

  # Analyze a saved label (plain text or HTML)
  clearlabel analyze --file label.html

  # Pipe label text in and get a JSON report
  cat label.txt | clearlabel analyze --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().StringP("file", "f", "", "Read label text from a file instead of the argument")
	cmd.Flags().BoolP("json", "j", false, "Output the report as JSON")

	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(getVerboseFlag(cmd))

	text, err := readLabelText(cmd, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: empty label text", internalerr.ErrInvalidInput)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer, closeStore, err := newAnalyzer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	report, err := analyzer.Analyze(ctx, text)
	if err != nil {
		return fmt.Errorf("analyze label: %w", err)
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}

// readLabelText resolves the label text from the argument, --file, or
// stdin, in that order of precedence.
func readLabelText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}

	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return "", err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read label file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// printReport renders the human-readable report.
func printReport(w io.Writer, r *clearlabel.Report) {
	fmt.Fprintf(w, "Report %s\n", r.ID)
	fmt.Fprintf(w, "Safety score: %d/100 (%d ingredients, %d flagged)\n",
		r.SafetyScore, r.TotalCount, len(r.Harmful))

	if len(r.Harmful) > 0 {
		fmt.Fprintln(w, "\nFlagged ingredients:")
		for _, v := range r.Harmful {
			fmt.Fprintf(w, "  %-30s matched %q (confidence %.2f, hazard %d/10)\n",
				v.Ingredient, v.MatchedName, v.Confidence, v.Score)
			if len(v.Categories) > 0 {
				fmt.Fprintf(w, "    categories: %s\n", strings.Join(v.Categories, ", "))
			}
			if len(v.Concerns) > 0 {
				fmt.Fprintf(w, "    concerns:   %s\n", strings.Join(v.Concerns, ", "))
			}
		}
	}

	if len(r.Safe) > 0 {
		fmt.Fprintf(w, "\nNo concerns: %s\n", strings.Join(r.Safe, ", "))
	}

	if len(r.Advisories) > 0 {
		fmt.Fprintln(w, "\nAdvisories (heuristic, not database-backed):")
		for _, adv := range r.Advisories {
			fmt.Fprintf(w, "  %s: possible %s (confidence %.2f)\n",
				adv.Ingredient, adv.Category, adv.Confidence)
		}
	}

	if len(r.CategoryDescriptions) > 0 {
		cats := make([]string, 0, len(r.CategoryDescriptions))
		for cat := range r.CategoryDescriptions {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
		fmt.Fprintln(w, "\nCategory guide:")
		for _, cat := range cats {
			fmt.Fprintf(w, "  %s: %s\n", cat, r.CategoryDescriptions[cat])
		}
	}

	if len(r.Recommendations) > 0 {
		fmt.Fprintln(w, "\nSafer alternatives:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(w, "  instead of %s: %s (%s)\n",
				rec.HarmfulIngredient, strings.Join(rec.SaferAlternatives, ", "), rec.Explanation)
		}
	}

	if len(r.Tips) > 0 {
		fmt.Fprintln(w, "\nTips:")
		for _, tip := range r.Tips {
			fmt.Fprintf(w, "  - %s\n", tip)
		}
	}
}
