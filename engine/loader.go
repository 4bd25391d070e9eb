package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads the engine configuration.
// Search order: customPath -> ./basedengine.yaml -> embedded default.
// Loaded files overlay the defaults, so partial configs are fine.
func LoadConfig(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try local config next to the working directory
	if data, err := os.ReadFile("basedengine.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config basedengine.yaml: %w", err)
		}
		return cfg, nil
	}

	// Embedded default
	return cfg, nil
}
