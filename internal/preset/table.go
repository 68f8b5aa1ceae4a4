package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table is the on-disk preset document.
type Table struct {
	Version string   `yaml:"version"`
	Presets []Preset `yaml:"presets"`
}

// WriteTable writes a preset table to a YAML file.
func WriteTable(t *Table, path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadTable reads and validates a preset table from a YAML file.
// Validation happens here, at the configuration boundary, so the
// pipeline downstream never sees an unknown theme or a dangling node.
func ReadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(t.Presets))
	for _, p := range t.Presets {
		if err := Validate(p); err != nil {
			return nil, err
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate preset id %q", p.ID)
		}
		seen[p.ID] = true
	}

	return &t, nil
}

// Find returns the preset with the given id.
func (t *Table) Find(id string) (Preset, error) {
	for _, p := range t.Presets {
		if p.ID == id {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("preset %q not found", id)
}
