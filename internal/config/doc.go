// Package config loads, normalizes, and validates pngsafe configuration data.
//
// It supplies repository defaults (including the icon source/destination pair
// the tool was written for), expands user paths, reads TOML files, and honours
// the PNGSAFE_SOURCE and PNGSAFE_DESTINATION environment fallbacks.
//
// Always obtain settings through this package so commands receive expanded
// state paths and clear validation errors.
package config
