// Package normalize runs the load, convert and save pipeline that turns an
// arbitrary raster image into an 8-bit RGBA PNG.
//
// A run reports progress as plain status lines through a Reporter:
//
//	Reading <source>...
//	Format: <format>, Mode: <mode>
//	Saved to <destination>
//
// or a single "Failed: <cause>" line. Errors carry one of the exported
// markers so callers can branch on Kind without parsing messages.
package normalize
