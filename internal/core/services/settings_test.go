package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/figprep/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/figprep/internal/core/domain"
)

func TestSettingsService_GetDefaults(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultSettings(), svc.Get())
}

func TestSettingsService_GetConfigured(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		KeyDatasetRoot:     "/srv/fig",
		KeyDatasetFormat:   "jsonl",
		KeyValidateSamples: int64(5),
		KeyHistoryEnabled:  false,
		KeyProcessors:      []any{"label", "text_clean"},
		KeyLabelStrict:     false,
	})

	settings := NewSettingsService(store).Get()

	assert.Equal(t, "/srv/fig", settings.DatasetRoot)
	assert.Equal(t, domain.FormatJSONL, settings.Format)
	assert.Equal(t, 5, settings.Samples)
	assert.False(t, settings.HistoryEnabled)
	assert.Equal(t, []string{"label", "text_clean"}, settings.Pipeline.Processors)
	assert.Equal(t, false, settings.Pipeline.ProcessorConfigs["label"]["strict"])
}

func TestSettingsService_ZeroSamplesIsKept(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{KeyValidateSamples: 0})

	assert.Equal(t, 0, NewSettingsService(store).Get().Samples)
}

func TestSettingsService_InvalidFormatFallsBack(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{KeyDatasetFormat: "parquet"})

	assert.Equal(t, domain.FormatArrow, NewSettingsService(store).Get().Format)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)

	require.NoError(t, svc.Set(KeyDatasetRoot, "/data"))
	require.NoError(t, svc.Set(KeyDatasetFormat, "jsonl"))
	require.NoError(t, svc.Set(KeyValidateSamples, "7"))
	require.NoError(t, svc.Set(KeyHistoryEnabled, "false"))
	require.NoError(t, svc.Set(KeyProcessors, " text_clean , label ,"))
	require.NoError(t, svc.Set(KeyLabelStrict, "false"))

	settings := svc.Get()
	assert.Equal(t, "/data", settings.DatasetRoot)
	assert.Equal(t, domain.FormatJSONL, settings.Format)
	assert.Equal(t, 7, settings.Samples)
	assert.False(t, settings.HistoryEnabled)
	assert.Equal(t, []string{"text_clean", "label"}, settings.Pipeline.Processors)
	assert.Equal(t, false, settings.Pipeline.ProcessorConfigs["label"]["strict"])
}

func TestSettingsService_SetInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		err   error
	}{
		{"empty root", KeyDatasetRoot, "  ", domain.ErrInvalidInput},
		{"unknown format", KeyDatasetFormat, "csv", domain.ErrUnsupportedType},
		{"negative samples", KeyValidateSamples, "-1", domain.ErrInvalidInput},
		{"non numeric samples", KeyValidateSamples, "two", domain.ErrInvalidInput},
		{"bad bool", KeyHistoryEnabled, "maybe", domain.ErrInvalidInput},
		{"no processors", KeyProcessors, " , ", domain.ErrInvalidInput},
		{"duplicate processor", KeyProcessors, "text_clean,label, label", domain.ErrInvalidInput},
		{"unknown key", "dataset.colour", "blue", domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			err := NewSettingsService(store).Set(tt.key, tt.value)
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, store.Keys())
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()

	assert.Len(t, keys, 6)
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, KeyLabelStrict)
}
