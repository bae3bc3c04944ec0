package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driving"
	"github.com/custodia-labs/figprep/internal/logger"
)

var (
	runSamples   int
	runFormat    string
	runTable     bool
	runNoHistory bool
)

var runCmd = &cobra.Command{
	Use:   "run [root]",
	Short: "Load, preprocess and validate the dataset",
	Long: `Loads train_set, dev_set and test_set under root, adds text_clean and
label to every record, drops idx and unique_id, and prints an integrity
report per split: empty cleaned texts, label distribution and sample
before/after texts.

Root defaults to dataset.root from the configuration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVarP(&runSamples, "samples", "n", domain.DefaultSettings().Samples, "Sample texts to print per split")
	runCmd.Flags().StringVar(&runFormat, "format", "", "Storage format: arrow or jsonl (default from config)")
	runCmd.Flags().BoolVar(&runTable, "table", false, "Print the dataset summary as a table")
	runCmd.Flags().BoolVar(&runNoHistory, "no-history", false, "Do not record this run")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	opts, format, err := resolveRunOptions(cmd, svc, args)
	if err != nil {
		return err
	}

	pipeline, err := svc.NewPipeline(PipelineOptions{Format: format, Out: cmd.OutOrStdout(), Table: runTable})
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}

	result, err := pipeline.Run(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	logger.Info("Processed %d records in %s (run %s)",
		result.Summary.TotalRecords(), result.Summary.Duration, result.Summary.ID)
	return nil
}

// resolveRunOptions merges flags, arguments and configured settings.
// Flags given on the command line win over configuration.
func resolveRunOptions(cmd *cobra.Command, svc *Services, args []string) (driving.RunOptions, domain.StorageFormat, error) {
	settings := svc.Settings.Get()

	opts := driving.RunOptions{
		Root:    settings.DatasetRoot,
		Samples: settings.Samples,
		Record:  settings.HistoryEnabled && !runNoHistory,
	}
	if len(args) > 0 {
		opts.Root = args[0]
	}
	if cmd.Flags().Changed("samples") {
		if runSamples < 0 {
			return opts, "", fmt.Errorf("%w: --samples must not be negative", domain.ErrInvalidInput)
		}
		opts.Samples = runSamples
	}

	format := settings.Format
	if runFormat != "" {
		format = domain.StorageFormat(runFormat)
		if !format.IsValid() {
			return opts, "", fmt.Errorf("%w: unknown format %q", domain.ErrUnsupportedType, runFormat)
		}
	}
	return opts, format, nil
}
