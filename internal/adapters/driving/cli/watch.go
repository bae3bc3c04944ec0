package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/logger"
)

var (
	watchDebounce    time.Duration
	watchMinInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Rerun the pipeline whenever the stored dataset changes",
	Long: `Runs the pipeline once, then again every time a file under a split
directory changes. Bursts of changes are coalesced. Failed runs are reported
and watching continues. Press Ctrl+C to stop.

Only one watcher may run per configuration directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVarP(&runSamples, "samples", "n", domain.DefaultSettings().Samples, "Sample texts to print per split")
	watchCmd.Flags().StringVar(&runFormat, "format", "", "Storage format: arrow or jsonl (default from config)")
	watchCmd.Flags().BoolVar(&runTable, "table", false, "Print the dataset summary as a table")
	watchCmd.Flags().BoolVar(&runNoHistory, "no-history", false, "Do not record runs")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Quiet period before a change triggers a run")
	watchCmd.Flags().DurationVar(&watchMinInterval, "min-interval", 2*time.Second, "Minimum time between runs")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	if svc.NewWatch == nil {
		return errors.New("watch service not configured")
	}

	opts, format, err := resolveRunOptions(cmd, svc, args)
	if err != nil {
		return err
	}

	unlock, err := acquireWatchLock(svc.ConfigDir)
	if err != nil {
		return err
	}
	defer unlock()

	pipeline, err := svc.NewPipeline(PipelineOptions{Format: format, Out: cmd.OutOrStdout(), Table: runTable})
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", opts.Root)
	watcher := svc.NewWatch(pipeline, watchDebounce, watchMinInterval)
	return watcher.Watch(cmd.Context(), opts, func(result *domain.RunResult, err error) {
		if err != nil {
			cmd.PrintErrf("run failed: %v\n", err)
			return
		}
		logger.Info("Processed %d records (run %s)", result.Summary.TotalRecords(), result.Summary.ID)
	})
}

// acquireWatchLock takes the per-config-dir watch lock.
func acquireWatchLock(dir string) (func(), error) {
	if dir == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, "watch.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another figprep watch is already running")
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release watch lock: %v", err)
		}
	}, nil
}
