// Command pngsafe rewrites a PNG icon as a plain 8-bit RGBA file with
// uncompressed image data.
//
// Run without a subcommand it converts the configured source to the
// configured destination, printing
//
//	Reading apps/mobile/assets/icon-ouroboros.png...
//	Format: PNG, Mode: P
//	Saved to apps/mobile/assets/icon-ouroboros-safe.png
//
// Failures print "Failed: <cause>" and still exit 0 unless --strict is set.
// The identify, history, check and config subcommands inspect inputs,
// past runs, readiness and configuration.
package main
