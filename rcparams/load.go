package rcparams

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gplot"
)

// Parse decodes rc data and returns the flattened key/value pairs without
// validating them. format is "toml" or "yaml".
func Parse(data []byte, format string) (map[string]any, error) {
	raw := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("rcparams: decode toml: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("rcparams: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: rc format %q", gplot.ErrUnknownFormat, format)
	}
	flat := make(map[string]any, len(raw))
	flatten("", raw, flat)
	return flat, nil
}

func flatten(prefix string, in map[string]any, out map[string]any) {
	for k, v := range in {
		key := strings.TrimSpace(k)
		if prefix != "" {
			key = prefix + "." + key
		}
		if sub, ok := v.(map[string]any); ok {
			flatten(key, sub, out)
			continue
		}
		out[key] = v
	}
}

// Apply validates every pair in kv and stores them all, or none when any
// key is unknown or any value is invalid.
func (p *Params) Apply(kv map[string]any) error {
	validated := make(map[string]any, len(kv))
	for _, k := range slices.Sorted(maps.Keys(kv)) {
		v := kv[k]
		if v == nil {
			// An empty value in an rc file keeps the current setting.
			continue
		}
		e, ok := table[k]
		if !ok {
			return fmt.Errorf("%w: %q", gplot.ErrUnknownConfigKey, k)
		}
		cv, err := e.validate(v)
		if err != nil {
			return fmt.Errorf("rcparams: %s: %w", k, err)
		}
		validated[k] = cv
	}
	p.mu.Lock()
	maps.Copy(p.values, validated)
	p.mu.Unlock()
	return nil
}

func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// LoadFile reads an rc file and applies it atomically.
func (p *Params) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("rcparams: %w", err)
	}
	kv, err := Parse(data, formatOf(path))
	if err != nil {
		return fmt.Errorf("rcparams: %s: %w", path, err)
	}
	if err := p.Apply(kv); err != nil {
		return fmt.Errorf("rcparams: %s: %w", path, err)
	}
	gplot.Logger().Debug("rcparams: loaded", "path", path, "keys", len(kv))
	return nil
}
