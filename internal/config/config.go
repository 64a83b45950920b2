package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MergeFile overlays the keys present in a YAML config file onto c.
// Keys missing from the file keep their current value.
func (c *AppConfig) MergeFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Reading config from user supplied path
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return nil
}

// MergeDefaultFile overlays DefaultConfigFile from the working directory when it exists.
// It reports whether a file was merged.
func (c *AppConfig) MergeDefaultFile() (bool, error) {
	if _, err := os.Stat(DefaultConfigFile); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", DefaultConfigFile, err)
	}

	if err := c.MergeFile(DefaultConfigFile); err != nil {
		return false, err
	}

	return true, nil
}
