// Package preset ships the named scale-ratio presets offered by the
// ratio picker and the generate command. The canonical set is derived
// from musical intervals (minor second through golden ratio) and can be
// extended or overridden by a user YAML file.
package preset

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultPresetsYAML []byte

// Preset is one named per-step scale ratio.
type Preset struct {
	Name  string  `yaml:"name"`
	Ratio float64 `yaml:"ratio"`
}

type catalog struct {
	Presets []Preset `yaml:"presets"`
}

// Defaults returns the embedded preset set.
func Defaults() ([]Preset, error) {
	var c catalog
	if err := yaml.Unmarshal(defaultPresetsYAML, &c); err != nil {
		return nil, fmt.Errorf("parsing embedded presets: %w", err)
	}
	return c.Presets, nil
}

// Load merges the defaults with an optional user presets file. User
// entries with a known name override the default ratio; new names are
// appended after the defaults. An empty path returns the defaults.
func Load(path string) ([]Preset, error) {
	presets, err := Defaults()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return presets, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets file: %w", err)
	}
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing presets file %s: %w", path, err)
	}

	byName := make(map[string]int, len(presets))
	for i, p := range presets {
		byName[p.Name] = i
	}
	for _, p := range c.Presets {
		if p.Ratio <= 0 {
			return nil, fmt.Errorf("preset %q: ratio must be positive", p.Name)
		}
		if i, ok := byName[p.Name]; ok {
			presets[i].Ratio = p.Ratio
		} else {
			byName[p.Name] = len(presets)
			presets = append(presets, p)
		}
	}
	return presets, nil
}

// Find looks a preset up by name.
func Find(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
