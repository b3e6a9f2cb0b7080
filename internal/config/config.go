package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains state and log directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Normalize contains the default source/destination pair and output encoding knobs.
type Normalize struct {
	Source      string `toml:"source"`
	Destination string `toml:"destination"`
	// Compression selects the zlib level used for IDAT data: none, speed, default, best.
	Compression string `toml:"compression"`
	// FileMode is the octal permission string applied to the destination file.
	FileMode string `toml:"file_mode"`
}

// Journal contains configuration for the run history database.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // Default: <state_dir>/journal.db
}

// Logging contains configuration for log output.
type Logging struct {
	Format  string `toml:"format"`
	Level   string `toml:"level"`
	Console bool   `toml:"console"`
}

// Config encapsulates all configuration values for pngsafe.
//
// Configuration sections:
//   - Paths: state and log directories
//   - Normalize: default source/destination and encoding options
//   - Journal: run history database
//   - Logging: log format, level, and stderr mirroring
type Config struct {
	Paths     Paths     `toml:"paths"`
	Normalize Normalize `toml:"normalize"`
	Journal   Journal   `toml:"journal"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/pngsafe/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("pngsafe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockDir returns the directory holding destination lock files.
func (c *Config) LockDir() string {
	return filepath.Join(c.Paths.StateDir, "locks")
}

// LogPath returns the log file path.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "pngsafe.log")
}

// OutputFileMode parses Normalize.FileMode. Validate guarantees it parses.
func (c *Config) OutputFileMode() os.FileMode {
	mode, err := parseFileMode(c.Normalize.FileMode)
	if err != nil {
		return defaultFileMode
	}
	return mode
}

func parseFileMode(value string) (os.FileMode, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultFileMode, nil
	}
	parsed, err := strconv.ParseUint(value, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("parse octal mode %q: %w", value, err)
	}
	if parsed > 0o777 {
		return 0, fmt.Errorf("mode %q exceeds 0777", value)
	}
	return os.FileMode(parsed), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	expanded, err := expandHome(pathValue)
	if err != nil {
		return "", err
	}
	cleaned := filepath.Clean(expanded)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// expandHome resolves a leading tilde but keeps relative paths relative so
// status output reads the same way the path was configured.
func expandHome(pathValue string) (string, error) {
	if !strings.HasPrefix(pathValue, "~") {
		return pathValue, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if pathValue == "~" {
		return home, nil
	}
	if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
		return filepath.Join(home, pathValue[2:]), nil
	}
	return pathValue, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// ExpandUserPath resolves a leading tilde without making the path absolute.
func ExpandUserPath(pathValue string) (string, error) {
	if strings.TrimSpace(pathValue) == "" {
		return "", nil
	}
	expanded, err := expandHome(strings.TrimSpace(pathValue))
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}

func defaultStateDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "pngsafe")
	}
	return defaultStateDirFallback
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
