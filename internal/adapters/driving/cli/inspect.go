package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/figprep/internal/core/domain"
)

var (
	inspectFormat string
	inspectTable  bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [root]",
	Short: "Show the stored dataset layout without processing it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "", "Storage format: arrow or jsonl (default from config)")
	inspectCmd.Flags().BoolVar(&inspectTable, "table", false, "Print the summary as a table")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	settings := svc.Settings.Get()
	root := settings.DatasetRoot
	if len(args) > 0 {
		root = args[0]
	}
	format := settings.Format
	if inspectFormat != "" {
		format = domain.StorageFormat(inspectFormat)
		if !format.IsValid() {
			return fmt.Errorf("%w: unknown format %q", domain.ErrUnsupportedType, inspectFormat)
		}
	}

	pipeline, err := svc.NewPipeline(PipelineOptions{Format: format, Out: cmd.OutOrStdout(), Table: inspectTable})
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}

	if _, err := pipeline.Inspect(cmd.Context(), root); err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}
	return nil
}
