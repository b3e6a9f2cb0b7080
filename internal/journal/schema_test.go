package journal

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSchemaStepsAreOrdered(t *testing.T) {
	steps, err := schemaSteps()
	if err != nil {
		t.Fatalf("schemaSteps: %v", err)
	}
	if len(steps) == 0 {
		t.Fatal("expected at least one schema file")
	}
	for i := 1; i < len(steps); i++ {
		if steps[i].version <= steps[i-1].version {
			t.Fatalf("steps out of order: %d after %d", steps[i].version, steps[i-1].version)
		}
	}
}

func TestOpenSetsSchemaVersionOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	steps, err := schemaSteps()
	if err != nil {
		t.Fatalf("schemaSteps: %v", err)
	}
	want := steps[len(steps)-1].version

	for i := 0; i < 2; i++ {
		store, err := Open(path)
		if err != nil {
			t.Fatalf("Open #%d: %v", i+1, err)
		}
		got, err := store.schemaVersion(context.Background())
		_ = store.Close()
		if err != nil {
			t.Fatalf("schemaVersion: %v", err)
		}
		if got != want {
			t.Fatalf("open #%d: schema version %d want %d", i+1, got, want)
		}
	}
}
