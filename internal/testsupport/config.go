package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"pngsafe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Source and destination point into <base>/assets, which is created empty.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "state", "logs")
	cfgVal.Journal.Path = filepath.Join(base, "state", "journal.db")
	cfgVal.Normalize.Source = filepath.Join(base, "assets", "icon.png")
	cfgVal.Normalize.Destination = filepath.Join(base, "assets", "icon-safe.png")

	if err := os.MkdirAll(filepath.Join(base, "assets"), 0o755); err != nil {
		t.Fatalf("mkdir assets: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithJournalDisabled turns off run history.
func WithJournalDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// WithCompression sets normalize.compression.
func WithCompression(level string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Normalize.Compression = level
	}
}

// WithDestination overrides the destination path.
func WithDestination(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Normalize.Destination = path
	}
}

// WriteConfigFile encodes cfg as TOML in the base directory and returns the path.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "pngsafe.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
