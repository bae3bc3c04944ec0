package services

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
	"github.com/custodia-labs/figprep/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyDatasetRoot     = "dataset.root"
	KeyDatasetFormat   = "dataset.format"
	KeyValidateSamples = "validate.samples"
	KeyHistoryEnabled  = "history.enabled"
	KeyProcessors      = "pipeline.processors"
	KeyLabelStrict     = "pipeline.label.strict"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() domain.Settings {
	defaults := domain.DefaultSettings()

	return domain.Settings{
		DatasetRoot:    s.getString(KeyDatasetRoot, defaults.DatasetRoot),
		Format:         s.getFormat(defaults.Format),
		Samples:        s.getInt(KeyValidateSamples, defaults.Samples),
		HistoryEnabled: s.getBool(KeyHistoryEnabled, defaults.HistoryEnabled),
		Pipeline:       s.GetPipelineConfig(),
	}
}

// GetPipelineConfig returns the record processor pipeline configuration.
// Returns default configuration if nothing is configured.
func (s *SettingsService) GetPipelineConfig() domain.PipelineConfig {
	cfg := domain.DefaultPipelineConfig()

	if processors := s.configStore.GetStringSlice(KeyProcessors); len(processors) > 0 {
		cfg.Processors = processors
	}

	for _, name := range cfg.Processors {
		prefix := "pipeline." + name + "."
		for _, key := range s.configStore.Keys() {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			val, _ := s.configStore.Get(key)
			existing := maps.Clone(cfg.ProcessorConfigs[name])
			if existing == nil {
				existing = make(map[string]any)
			}
			existing[strings.TrimPrefix(key, prefix)] = val
			cfg.ProcessorConfigs[name] = existing
		}
	}

	return cfg
}

// Set validates and stores one setting given as text.
func (s *SettingsService) Set(key, value string) error {
	var parsed any
	switch key {
	case KeyDatasetRoot:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
		}
		parsed = value
	case KeyDatasetFormat:
		if !domain.StorageFormat(value).IsValid() {
			return fmt.Errorf("%w: unknown format %q", domain.ErrUnsupportedType, value)
		}
		parsed = value
	case KeyValidateSamples:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case KeyHistoryEnabled, KeyLabelStrict:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	case KeyProcessors:
		var names []string
		for _, name := range strings.Split(value, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if slices.Contains(names, name) {
				return fmt.Errorf("%w: %s lists %q more than once", domain.ErrInvalidInput, key, name)
			}
			names = append(names, name)
		}
		if len(names) == 0 {
			return fmt.Errorf("%w: %s must list at least one processor", domain.ErrInvalidInput, key)
		}
		parsed = names
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Set(key, parsed)
}

// Keys returns the configurable keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{
		KeyDatasetRoot,
		KeyDatasetFormat,
		KeyValidateSamples,
		KeyHistoryEnabled,
		KeyProcessors,
		KeyLabelStrict,
	}
	slices.Sort(keys)
	return keys
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFormat(defaultVal domain.StorageFormat) domain.StorageFormat {
	format := domain.StorageFormat(s.configStore.GetString(KeyDatasetFormat))
	if !format.IsValid() {
		return defaultVal
	}
	return format
}
