package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/figprep/internal/adapters/driven/config/file"
	"github.com/custodia-labs/figprep/internal/adapters/driven/report"
	"github.com/custodia-labs/figprep/internal/adapters/driven/storage/arrowfile"
	"github.com/custodia-labs/figprep/internal/adapters/driven/storage/jsonl"
	"github.com/custodia-labs/figprep/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/figprep/internal/adapters/driving/cli"
	"github.com/custodia-labs/figprep/internal/connectors/filesystem"
	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
	"github.com/custodia-labs/figprep/internal/core/ports/driving"
	"github.com/custodia-labs/figprep/internal/core/services"
	"github.com/custodia-labs/figprep/internal/logger"
	"github.com/custodia-labs/figprep/internal/postprocessors"
)

// bootstrap wires the production adapters rooted at configDir.
func bootstrap(configDir string) (*cli.Services, func(), error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".figprep")
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings := settingsService.Get()

	var (
		history driven.RunHistoryStore
		closer  = func() {}
	)
	if settings.HistoryEnabled {
		store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
		if err != nil {
			// Runs still work without history.
			logger.Warn("history unavailable: %v", err)
		} else {
			history = store.HistoryStore()
			closer = func() {
				if err := store.Close(); err != nil {
					logger.Warn("closing history store: %v", err)
				}
			}
		}
	}

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)

	newPipeline := func(opts cli.PipelineOptions) (driving.PipelineService, error) {
		reader, err := splitReader(opts.Format)
		if err != nil {
			return nil, err
		}
		pipelineCfg := settingsService.Get().Pipeline
		pipeline, err := registry.BuildPipeline(pipelineCfg.Processors, pipelineCfg.ProcessorConfigs)
		if err != nil {
			return nil, err
		}
		return services.NewPipelineService(
			services.NewDatasetLoader(reader),
			services.NewPreprocessor(pipeline),
			services.NewValidator(),
			report.New(opts.Out, report.WithTable(opts.Table)),
			history,
		), nil
	}

	newWatch := func(p driving.PipelineService, debounce, minInterval time.Duration) driving.WatchService {
		return services.NewWatchService(p, filesystem.New(debounce), minInterval)
	}

	return &cli.Services{
		Settings:    settingsService,
		History:     services.NewHistoryService(history),
		NewPipeline: newPipeline,
		NewWatch:    newWatch,
		ConfigDir:   configDir,
	}, closer, nil
}

func splitReader(format domain.StorageFormat) (driven.SplitReader, error) {
	switch format {
	case domain.FormatArrow:
		return arrowfile.New(), nil
	case domain.FormatJSONL:
		return jsonl.New(), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", domain.ErrUnsupportedType, format)
	}
}
