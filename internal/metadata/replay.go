package metadata

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ReplayPath returns the replay file for a template name inside dir.
func ReplayPath(dir, name string) string {
	return filepath.Join(dir, name+".yaml")
}

// SaveReplay records p so a later run can regenerate without prompting.
func SaveReplay(dir, name string, p Project) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating replay directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling replay: %w", err)
	}
	path := ReplayPath(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing replay %s: %w", path, err)
	}
	return nil
}

// LoadReplay reads a project previously written by SaveReplay, or any YAML
// file with the same keys.
func LoadReplay(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("reading metadata %s: %w", path, err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("parsing metadata %s: %w", path, err)
	}
	return p, nil
}
