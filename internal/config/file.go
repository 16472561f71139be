package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadFile decodes a YAML configuration file into cfg.  Only keys present in
// the file are overwritten, so the defaults survive for everything else.
func loadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}
	return nil
}
