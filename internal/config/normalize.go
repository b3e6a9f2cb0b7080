package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeNormalize(); err != nil {
		return err
	}
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.StateDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeNormalize() error {
	var err error
	if value, ok := os.LookupEnv("PNGSAFE_SOURCE"); ok && strings.TrimSpace(value) != "" {
		c.Normalize.Source = value
	}
	if value, ok := os.LookupEnv("PNGSAFE_DESTINATION"); ok && strings.TrimSpace(value) != "" {
		c.Normalize.Destination = value
	}
	if c.Normalize.Source, err = ExpandUserPath(c.Normalize.Source); err != nil {
		return fmt.Errorf("normalize.source: %w", err)
	}
	if c.Normalize.Destination, err = ExpandUserPath(c.Normalize.Destination); err != nil {
		return fmt.Errorf("normalize.destination: %w", err)
	}
	c.Normalize.Compression = strings.ToLower(strings.TrimSpace(c.Normalize.Compression))
	if c.Normalize.Compression == "" {
		c.Normalize.Compression = defaultCompression
	}
	c.Normalize.FileMode = strings.TrimSpace(c.Normalize.FileMode)
	if c.Normalize.FileMode == "" {
		c.Normalize.FileMode = defaultFileModeString
	}
	return nil
}

func (c *Config) normalizeJournal() error {
	var err error
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = filepath.Join(c.Paths.StateDir, defaultJournalName)
	}
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
