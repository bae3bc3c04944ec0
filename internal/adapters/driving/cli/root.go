// Package cli provides the figprep command-line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driving"
	"github.com/custodia-labs/figprep/internal/logger"
)

// PipelineOptions selects the per-invocation parts of a pipeline.
type PipelineOptions struct {
	// Format picks the split reader.
	Format domain.StorageFormat

	// Out receives the rendered summary and reports.
	Out io.Writer

	// Table renders the dataset summary as a table.
	Table bool
}

// PipelineFactory builds a pipeline service for one invocation.
type PipelineFactory func(opts PipelineOptions) (driving.PipelineService, error)

// WatchFactory builds a watch service around a pipeline.
type WatchFactory func(pipeline driving.PipelineService, debounce, minInterval time.Duration) driving.WatchService

// Services holds everything the commands need.
type Services struct {
	Settings    driving.SettingsService
	History     driving.HistoryService
	NewPipeline PipelineFactory
	NewWatch    WatchFactory

	// ConfigDir is where lock files live.
	ConfigDir string
}

// BootstrapFunc wires services for the given config directory.
// The returned func releases them.
type BootstrapFunc func(configDir string) (*Services, func(), error)

var (
	verbose   bool
	configDir string

	services      *Services
	bootstrap     BootstrapFunc
	closeServices func()

	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "figprep",
	Short: "Preprocess and validate the FIG-Loneliness dataset",
	Long: `figprep loads the FIG-Loneliness train, dev and test splits, normalises
their text, turns the one-hot loneliness annotation into a binary label and
prints an integrity report for every split.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print stage progress and timings to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.figprep)")
}

// setup enables logging and wires services on first use.
func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if services != nil || bootstrap == nil {
		return nil
	}
	s, closer, err := bootstrap(configDir)
	if err != nil {
		return err
	}
	services = s
	closeServices = closer
	return nil
}

// SetServices injects services directly, bypassing bootstrap.
func SetServices(s *Services) {
	services = s
}

// SetBootstrap registers the function that wires services once flags
// are parsed.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command. Interrupts cancel the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() {
		if closeServices != nil {
			closeServices()
		}
	}()

	return rootCmd.ExecuteContext(ctx)
}

// errNotConfigured is returned when a command runs without its services.
var errNotConfigured = errors.New("services not configured")

func requireServices() (*Services, error) {
	if services == nil {
		return nil, errNotConfigured
	}
	return services, nil
}
