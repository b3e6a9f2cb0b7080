package preflight

import (
	"pngsafe/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll checks the configured source, destination and state directory.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{
		CheckSourceFile("Source", cfg.Normalize.Source),
		CheckDestination("Destination", cfg.Normalize.Destination),
	}
	results = append(results, CheckStateDirectory("State directory", cfg.Paths.StateDir))
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
