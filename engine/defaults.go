package engine

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultEngineYAML, &cfg); err != nil {
		// The embedded default ships with the binary; failing to
		// parse it is a build defect.
		panic("engine: invalid embedded default config: " + err.Error())
	}
	return cfg
}
