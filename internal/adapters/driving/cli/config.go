package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Stores one setting in the configuration file.

Keys:
  dataset.root            Directory holding train_set, dev_set and test_set
  dataset.format          arrow or jsonl
  validate.samples        Sample texts printed per split
  history.enabled         Record run summaries (true/false)
  pipeline.processors     Comma-separated processor names, in order
  pipeline.label.strict   Reject annotations that are not one-hot (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	if svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings := svc.Settings.Get()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Dataset]")
	cmd.Printf("  Root: %s\n", settings.DatasetRoot)
	cmd.Printf("  Format: %s\n", settings.Format)
	cmd.Println()

	cmd.Println("[Validate]")
	cmd.Printf("  Samples: %d\n", settings.Samples)
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Enabled: %t\n", settings.HistoryEnabled)
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Processors: %s\n", strings.Join(settings.Pipeline.Processors, ", "))
	for _, name := range settings.Pipeline.Processors {
		cfg := settings.Pipeline.ProcessorConfigs[name]
		for _, key := range slices.Sorted(maps.Keys(cfg)) {
			cmd.Printf("  %s.%s: %v\n", name, key, cfg[key])
		}
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	if svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	if err := svc.Settings.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}
