package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pmm09c/power-graph/pkg/consumption"
)

// LoadScenario reads a complete calculation config from a YAML file.
// Hardware model references are not part of the file; calculators resolve
// them to the built-in parts.
func LoadScenario(path string) (consumption.Config, error) {
	var cfg consumption.Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("profile: read scenario: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("profile: decode scenario: %w", err)
	}
	return cfg, nil
}

// SaveScenario writes a calculation config as YAML.
func SaveScenario(path string, cfg consumption.Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("profile: encode scenario: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("profile: write scenario: %w", err)
	}
	return nil
}
