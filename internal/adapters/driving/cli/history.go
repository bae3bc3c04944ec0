package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/figprep/internal/adapters/driven/report"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded pipeline runs",
	Long: `Lists past runs, newest first. Only counts are recorded: split sizes,
empty cleaned texts and label distributions.`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the per-split counts of one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum runs to list (0 for all)")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	if svc.History == nil {
		return errors.New("history service not configured")
	}

	runs, err := svc.History.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	report.New(cmd.OutOrStdout()).WriteHistory(runs)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	if svc.History == nil {
		return errors.New("history service not configured")
	}

	run, err := svc.History.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get run %s: %w", args[0], err)
	}

	report.New(cmd.OutOrStdout()).WriteRun(run)
	return nil
}
