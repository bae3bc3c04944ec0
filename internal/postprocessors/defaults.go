package postprocessors

import (
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
	"github.com/custodia-labs/figprep/internal/normalisers/text"
	"github.com/custodia-labs/figprep/internal/postprocessors/label"
	"github.com/custodia-labs/figprep/internal/postprocessors/textclean"
)

// DefaultProcessors is the processor order used when none is configured.
var DefaultProcessors = []string{textclean.Name, label.Name}

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(textclean.Name, buildTextClean)
	r.Register(label.Name, buildLabel)
}

// buildTextClean creates the text cleaning processor. It takes no config.
func buildTextClean(_ map[string]any) (driven.RecordProcessor, error) {
	return textclean.New(text.New()), nil
}

// buildLabel creates the label processor from generic config.
// Supported config keys:
//   - strict (bool): Require a one-hot binary vector (default: true)
func buildLabel(cfg map[string]any) (driven.RecordProcessor, error) {
	var opts []label.Option

	if strict, ok := getBoolFromConfig(cfg, "strict"); ok {
		opts = append(opts, label.WithStrict(strict))
	}

	return label.New(opts...), nil
}

// getBoolFromConfig safely extracts a bool from generic config map.
// The second result is false when the key is absent or not a bool.
func getBoolFromConfig(cfg map[string]any, key string) (bool, bool) {
	if cfg == nil {
		return false, false
	}
	v, ok := cfg[key].(bool)
	return v, ok
}
