package config

import "os"

const (
	defaultStateDirFallback = "~/.local/state/pngsafe"
	defaultSource           = "apps/mobile/assets/icon-ouroboros.png"
	defaultDestination      = "apps/mobile/assets/icon-ouroboros-safe.png"
	defaultCompression      = "none"
	defaultFileModeString   = "0644"
	defaultFileMode         = os.FileMode(0o644)
	defaultJournalName      = "journal.db"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir(),
		},
		Normalize: Normalize{
			Source:      defaultSource,
			Destination: defaultDestination,
			Compression: defaultCompression,
			FileMode:    defaultFileModeString,
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
