// Package values holds the typed key-value map shared by config stores.
// Keys use dot notation ("dataset.root"); values come from TOML decoding
// or from typed Set calls, so numeric and slice types vary.
package values

import (
	"maps"
	"slices"
	"sync"
)

// Map is a concurrency-safe configuration map with typed accessors.
type Map struct {
	mu   sync.RWMutex
	data map[string]any
}

// New creates a map holding a copy of data.
func New(data map[string]any) *Map {
	m := &Map{data: make(map[string]any, len(data))}
	maps.Copy(m.data, data)
	return m
}

// Get retrieves a configuration value by key.
func (m *Map) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (m *Map) GetString(key string) string {
	val, _ := m.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt retrieves an integer configuration value.
// TOML integers decode as int64; JSON numbers as float64.
func (m *Map) GetInt(key string) int {
	val, _ := m.Get(key)
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (m *Map) GetBool(key string) bool {
	val, _ := m.Get(key)
	b, _ := val.(bool)
	return b
}

// GetStringSlice retrieves a string slice configuration value.
// TOML arrays decode as []any; non-string items are skipped.
func (m *Map) GetStringSlice(key string) []string {
	val, _ := m.Get(key)
	switch v := val.(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}

// Keys returns every key in sorted order.
func (m *Map) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.data))
}

// Put stores a value.
func (m *Map) Put(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Replace swaps the whole content for a copy of data.
func (m *Map) Replace(data map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]any, len(data))
	maps.Copy(m.data, data)
}

// Snapshot returns a copy of the content.
func (m *Map) Snapshot() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.data)
}
