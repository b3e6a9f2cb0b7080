package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultLimit bounds Recent when the caller passes a non-positive limit.
const DefaultLimit = 20

// Store persists run history in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or connects to the journal database at path and applies
// pending migrations.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("journal path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts entry and returns its row id. A zero CreatedAt is set to
// the current time.
func (s *Store) Record(ctx context.Context, entry Entry) (int64, error) {
	if entry.Status == "" {
		return 0, errors.New("entry status required")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            run_id, source_path, destination_path, format, mode, width, height,
            bytes_written, checksum, status, error_kind, error_message, duration_ms, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.Source,
		entry.Destination,
		nullableString(entry.Format),
		nullableString(entry.Mode),
		entry.Width,
		entry.Height,
		entry.Bytes,
		nullableString(entry.Checksum),
		string(entry.Status),
		nullableString(entry.ErrorKind),
		nullableString(entry.Error),
		entry.Duration.Milliseconds(),
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

const entryColumns = "id, run_id, source_path, destination_path, format, mode, width, height, bytes_written, checksum, status, error_kind, error_message, duration_ms, created_at"

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return entries, nil
}

// LastSuccess returns the newest successful entry for destination, or nil.
// Relative paths are resolved against the working directory.
func (s *Store) LastSuccess(ctx context.Context, destination string) (*Entry, error) {
	if abs, err := filepath.Abs(destination); err == nil {
		destination = abs
	}
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+entryColumns+` FROM runs WHERE destination_path = ? AND status = ? ORDER BY id DESC LIMIT 1`,
		destination,
		string(StatusSucceeded),
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Prune deletes all but the newest keep entries and returns the number removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (Entry, error) {
	var (
		entry      Entry
		format     sql.NullString
		mode       sql.NullString
		checksum   sql.NullString
		status     string
		errorKind  sql.NullString
		errorMsg   sql.NullString
		durationMS int64
		createdRaw string
	)
	if err := scanner.Scan(
		&entry.ID,
		&entry.RunID,
		&entry.Source,
		&entry.Destination,
		&format,
		&mode,
		&entry.Width,
		&entry.Height,
		&entry.Bytes,
		&checksum,
		&status,
		&errorKind,
		&errorMsg,
		&durationMS,
		&createdRaw,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scan run: %w", err)
	}
	entry.Format = format.String
	entry.Mode = mode.String
	entry.Checksum = checksum.String
	entry.Status = Status(status)
	entry.ErrorKind = errorKind.String
	entry.Error = errorMsg.String
	entry.Duration = time.Duration(durationMS) * time.Millisecond
	if ts, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		entry.CreatedAt = ts
	}
	return entry, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
