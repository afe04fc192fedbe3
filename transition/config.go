package transition

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amp-labs/amp-motion/curve"
	"github.com/amp-labs/amp-motion/engine"
	"github.com/amp-labs/amp-motion/registry"
)

// ConfigLoader is an interface for loading preset configurations by name.
// Applications can implement this to provide embedded or custom loading.
type ConfigLoader interface {
	LoadByName(name string) ([]byte, error)
	ListAvailable() []string
}

// defaultConfigLoader is the global config loader used by LoadPresets.
// Applications can set this to provide embedded configs.
var defaultConfigLoader ConfigLoader //nolint:gochecknoglobals

// SetConfigLoader sets the default config loader for name-based loading.
func SetConfigLoader(loader ConfigLoader) {
	defaultConfigLoader = loader
}

// PresetConfig is a named catalogue of reusable transition specs, so hosts
// can keep durations and curves in configuration instead of code.
type PresetConfig struct {
	Name    string   `json:"name"    yaml:"name"`
	Presets []Preset `json:"presets" yaml:"presets"`
}

// Preset defines one reusable transition spec.
type Preset struct {
	Name     string `json:"name"     yaml:"name"`
	Duration string `json:"duration" yaml:"duration"` // Go duration string, e.g. "250ms"
	Curve    string `json:"curve"    yaml:"curve"`    // registered curve name; empty = engine default
	Method   string `json:"method"   yaml:"method"`   // registered method name; empty = default method
}

// LoadPresets loads a preset configuration by path or name.
// Supports two modes:
//   - Path mode: pass a file path (containing '/', '\', or ending in
//     '.yaml') to load from the filesystem.
//   - Name mode: pass a bare name to load via the registered ConfigLoader.
func LoadPresets(pathOrName string) (*PresetConfig, error) {
	isPath := strings.Contains(pathOrName, "/") ||
		strings.Contains(pathOrName, `\`) ||
		strings.HasSuffix(strings.ToLower(pathOrName), ".yaml")

	if isPath {
		data, err := os.ReadFile(pathOrName) //nolint:gosec // Intentional path-based loading
		if err != nil {
			return nil, fmt.Errorf("failed to read preset file %q: %w", pathOrName, err)
		}

		return LoadPresetsFromBytes(data)
	}

	if defaultConfigLoader == nil {
		return nil, ErrNoConfigLoader
	}

	data, err := defaultConfigLoader.LoadByName(pathOrName)
	if err != nil {
		available := defaultConfigLoader.ListAvailable()

		return nil, fmt.Errorf("failed to load presets %q (available: %v): %w", pathOrName, available, err)
	}

	return LoadPresetsFromBytes(data)
}

// LoadPresetsFromBytes loads a preset configuration from YAML bytes.
func LoadPresetsFromBytes(data []byte) (*PresetConfig, error) {
	var config PresetConfig

	err := yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadPresetsFromFS loads a preset configuration from an embedded
// filesystem. Convenience for embed.FS.
func LoadPresetsFromFS(fsys fs.FS, path string) (*PresetConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets from FS: %w", err)
	}

	return LoadPresetsFromBytes(data)
}

// Validate checks that every preset is well-formed and refers only to
// registered curves and methods.
func (c *PresetConfig) Validate() error {
	seen := make(map[string]struct{}, len(c.Presets))

	for _, p := range c.Presets {
		if p.Name == "" {
			return ErrPresetNameRequired
		}

		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePresetName, p.Name)
		}

		seen[p.Name] = struct{}{}

		if p.Duration == "" {
			return fmt.Errorf("%w: %s", ErrPresetDurationRequired, p.Name)
		}

		if _, err := time.ParseDuration(p.Duration); err != nil {
			return fmt.Errorf("preset %s: invalid duration: %w", p.Name, err)
		}

		if p.Curve != "" {
			if _, ok := curve.Lookup(p.Curve); !ok {
				return fmt.Errorf("preset %s: %w: %q", p.Name, ErrUnknownCurve, p.Curve)
			}
		}

		if p.Method != "" {
			if _, ok := registry.Lookup(p.Method); !ok {
				return fmt.Errorf("preset %s: %w: %q", p.Name, ErrUnknownMethod, p.Method)
			}
		}
	}

	return nil
}

// Spec builds an engine.Spec from the named preset.
func (c *PresetConfig) Spec(name string) (*engine.Spec, error) {
	for _, p := range c.Presets {
		if p.Name != name {
			continue
		}

		// Validate guaranteed parseability at load time.
		duration, err := time.ParseDuration(p.Duration)
		if err != nil {
			return nil, fmt.Errorf("preset %s: invalid duration: %w", p.Name, err)
		}

		return &engine.Spec{
			Duration:   duration,
			CurveName:  p.Curve,
			MethodName: p.Method,
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
}
