package journal

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

// schemaStep is one numbered file under migrations/. Its number is stored in
// PRAGMA user_version once applied.
type schemaStep struct {
	version int
	name    string
	sql     string
}

func schemaSteps() ([]schemaStep, error) {
	files, err := fs.Glob(schemaFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list schema files: %w", err)
	}

	steps := make([]schemaStep, 0, len(files))
	seen := make(map[int]string, len(files))
	for _, file := range files {
		name := path.Base(file)
		prefix, _, _ := strings.Cut(name, "_")
		version, err := strconv.Atoi(prefix)
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("schema file %s: name must start with a positive number", name)
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("schema files %s and %s share version %d", other, name, version)
		}
		seen[version] = name

		data, err := schemaFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read schema file %s: %w", name, err)
		}
		steps = append(steps, schemaStep{version: version, name: name, sql: string(data)})
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].version < steps[j].version })
	return steps, nil
}

// migrate brings the database up to the newest embedded schema in a single
// transaction.
func (s *Store) migrate(ctx context.Context) error {
	steps, err := schemaSteps()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var current int
	if err := tx.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for _, step := range steps {
		if step.version <= current {
			continue
		}
		if _, err := tx.ExecContext(ctx, step.sql); err != nil {
			return fmt.Errorf("apply schema %s: %w", step.name, err)
		}
		// PRAGMA arguments cannot be bound parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", step.version)); err != nil {
			return fmt.Errorf("set schema version %d: %w", step.version, err)
		}
		current = step.version
	}
	return tx.Commit()
}

func (s *Store) schemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	return version, err
}
