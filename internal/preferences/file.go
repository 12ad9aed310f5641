package preferences

import (
	"fmt"
	"slices"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Load reads a preferences YAML file. Keys missing from the file keep their
// Default() values; the result is validated before it is returned.
func Load(fs afero.Fs, path string) (Preferences, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Preferences{}, fmt.Errorf("failed to read preferences file: %w", err)
	}

	prefs := Default()
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return Preferences{}, fmt.Errorf("failed to parse preferences file: %w", err)
	}

	prefs.Normalize()
	if err := prefs.Validate(); err != nil {
		return Preferences{}, fmt.Errorf("invalid preferences in %s: %w", path, err)
	}
	return prefs, nil
}

// Save writes p as YAML, replacing any existing file
func Save(fs afero.Fs, path string, p Preferences) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences file: %w", err)
	}
	return nil
}

// Normalize restores the sorted, duplicate-free genre set after decoding
func (p *Preferences) Normalize() {
	slices.Sort(p.GenreIDs)
	p.GenreIDs = slices.Compact(p.GenreIDs)
}
