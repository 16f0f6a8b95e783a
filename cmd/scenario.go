package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/checkout-sim/sim"
)

// LoadScenario reads a YAML scenario file on top of the default config.
// Keys absent from the file keep their defaults; unknown keys are rejected.
func LoadScenario(path string) (sim.SimConfig, error) {
	cfg := sim.DefaultSimConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading scenario: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return cfg, nil
}
