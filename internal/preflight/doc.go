// Package preflight provides readiness checks for the source image, the
// destination directory and the state directory before a run.
package preflight
