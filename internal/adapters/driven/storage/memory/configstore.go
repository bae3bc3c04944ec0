package memory

import (
	"github.com/custodia-labs/figprep/internal/adapters/driven/config/values"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory configuration store used by tests and
// by runs that must not touch the user's config directory.
type ConfigStore struct {
	*values.Map
}

// NewConfigStore creates a new in-memory config store, optionally
// seeded with initial values.
func NewConfigStore(seed ...map[string]any) *ConfigStore {
	initial := map[string]any{}
	for _, s := range seed {
		for k, v := range s {
			initial[k] = v
		}
	}
	return &ConfigStore{Map: values.New(initial)}
}

// Set stores a configuration value.
func (s *ConfigStore) Set(key string, value any) error {
	s.Put(key, value)
	return nil
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return ":memory:"
}
