package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"adsopt/adapters/excel"
	"adsopt/internal/config"
	"adsopt/internal/logging"
	"adsopt/internal/strategies"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "optimize",
		Short:         "Apply optimization strategies to an advertising bulk workbook",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newStrategiesCmd(),
		newTemplateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run strategies over a bulk workbook and write the merged result",
		Long: `Run the selected strategies over one bulk workbook (xlsx or csv).

Every strategy is validated before any of them runs; a single failure aborts
the run and nothing is written. Updated rows are highlighted in the output and
a Run Report sheet summarizes the run.

Example: optimize run --input bulk.xlsx --strategies empty_portfolios,top_campaigns --asins asins.xlsx --output out.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.NewLogger(cfg.LogLevel)
			defer logger.Sync()

			if len(opts.Strategies) == 0 {
				opts.Strategies = cfg.Strategies.Default
			}
			report, err := runOptimize(cfg, opts, logger)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report, opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Bulk workbook to optimize (.xlsx or .csv)")
	cmd.Flags().StringSliceVarP(&opts.Strategies, "strategies", "s", nil, "Comma separated strategy names (default DEFAULT_STRATEGIES)")
	cmd.Flags().StringVarP(&opts.ASINs, "asins", "a", "", "ASIN template workbook for top_campaigns")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output workbook path (default <input>_optimized.xlsx)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List available strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTEMPLATE\tDESCRIPTION")
			for _, info := range strategies.Available(cfg.Strategies.Options()) {
				template := "no"
				if info.RequiresTemplate {
					template = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, template, info.Description)
			}
			return w.Flush()
		},
	}
}

func newTemplateCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an empty ASIN template workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := excel.WriteTemplate(f, excel.DefaultExcelConfig()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "asins_template.xlsx", "Template path")

	return cmd
}

func printReport(w io.Writer, r *runResult, output string) {
	fmt.Fprintf(w, "Run %s\n", r.Report.RunID)
	fmt.Fprintf(w, "  strategies:  %d of %d succeeded\n", r.Report.SuccessfulStrategies, len(r.Report.Selected))
	fmt.Fprintf(w, "  rows updated: %d\n", r.Report.TotalRowsUpdated)
	if n := r.Report.ConflictCount(); n > 0 {
		fmt.Fprintf(w, "  conflicts:   %d (later strategies won)\n", n)
	}
	for _, s := range r.Report.Strategies {
		fmt.Fprintf(w, "  - %s: %d updated, %d found, %d data errors\n", s.Name, s.RowsUpdated, s.Found, len(s.CleanErrors))
		for _, warning := range s.Warnings {
			fmt.Fprintf(w, "      warning: %s\n", warning)
		}
	}
	fmt.Fprintf(w, "Output written to %s\n", r.Output)
}
