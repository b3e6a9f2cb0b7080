package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// CompressionModes lists the accepted normalize.compression values.
var CompressionModes = []string{"none", "speed", "default", "best"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateNormalize(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateNormalize() error {
	if c.Normalize.Source == "" {
		return errors.New("normalize.source must be set")
	}
	if c.Normalize.Destination == "" {
		return errors.New("normalize.destination must be set")
	}
	if SamePath(c.Normalize.Source, c.Normalize.Destination) {
		return fmt.Errorf("normalize.destination must differ from normalize.source (%s)", c.Normalize.Source)
	}
	if !validCompression(c.Normalize.Compression) {
		return fmt.Errorf("normalize.compression: unsupported value %q (want one of %v)", c.Normalize.Compression, CompressionModes)
	}
	if _, err := parseFileMode(c.Normalize.FileMode); err != nil {
		return fmt.Errorf("normalize.file_mode: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func validCompression(value string) bool {
	for _, mode := range CompressionModes {
		if mode == value {
			return true
		}
	}
	return false
}

// SamePath reports whether a and b resolve to the same absolute path.
func SamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
