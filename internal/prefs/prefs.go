// Package prefs persists the overlay toggles (stats, grid) between runs.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Path is the prefs file, relative to the process working directory.
const Path = "config/prefs.yaml"

// Prefs holds what the user last toggled from the keyboard. Settings in the
// config file and on the command line are separate.
type Prefs struct {
	ShowStats   bool `yaml:"show_stats"`
	GridVisible bool `yaml:"grid_visible"`
}

// Load reads prefs from path. found is false when the file does not exist or
// cannot be parsed; callers then keep their configured values.
func Load(path string) (p Prefs, found bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Prefs{}, false
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prefs{}, false
	}
	return p, true
}

// Save writes p to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	return nil
}
