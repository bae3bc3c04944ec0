package driving

import "github.com/custodia-labs/figprep/internal/core/domain"

// SettingsService reads and updates application configuration.
type SettingsService interface {
	// Get returns the resolved settings, with defaults for unset keys.
	Get() domain.Settings

	// Set validates and stores a single configuration value given as text.
	Set(key, value string) error

	// Keys returns the configurable keys in sorted order.
	Keys() []string
}
