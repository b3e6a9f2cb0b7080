package main

import (
	"errors"
	"testing"

	"pngsafe/internal/testsupport"
)

func TestCheckReportsMissingSource(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	var reported *reportedError
	if !errors.As(err, &reported) {
		t.Fatalf("expected reportedError, got %v", err)
	}
	requireContains(t, out, "== Preflight ==")
	requireContains(t, out, "[ERROR]")
	requireContains(t, out, "does not exist")
}

func TestCheckPasses(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WritePNG(t, env.cfg.Normalize.Source, testsupport.GrayImage())

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "Source:")
	requireContains(t, out, "Destination:")
	requireContains(t, out, "[OK]")
	requireContains(t, out, env.cfg.Journal.Path)
}

func TestCheckShowsLastSuccess(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WritePNG(t, env.cfg.Normalize.Source, testsupport.GrayImage())

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "Last success:")
	requireContains(t, out, "never")

	if _, _, err := runCLI(t, nil, env.configPath); err != nil {
		t.Fatalf("pngsafe: %v", err)
	}
	out, _, err = runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check after run: %v", err)
	}
	requireContains(t, out, "sha256 ")
}
