// Package logs reads the pngsafe log file: the last N lines, optionally
// filtered to one run, and a polling follow mode.
package logs
