// Package sqlite persists search history in a local SQLite database.
//
// The adapter uses modernc.org/sqlite, a pure Go driver that needs no
// CGO. The schema is managed through versioned migrations embedded at
// compile time; the database runs in WAL mode and lives at
// ~/.lakesearch/data/history.db by default.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/driftline-labs/lakesearch/internal/adapters/driven/history/sqlite/migrations"
	"github.com/driftline-labs/lakesearch/internal/core/domain"
	"github.com/driftline-labs/lakesearch/internal/core/ports/driven"
)

const defaultRecentLimit = 20

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// Store is the SQLite-backed search history store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens the history database, creating and migrating it if
// needed. If dataDir is empty, defaults to ~/.lakesearch/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lakesearch", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// WAL mode for concurrent readers
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record saves one completed search summary. Recording the same id
// twice updates the row.
func (s *Store) Record(ctx context.Context, rec domain.SearchRecord) error {
	if rec.ExecutedAt.IsZero() {
		rec.ExecutedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (id, query, scope, backend, result_count, query_time_ms, executed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			result_count = excluded.result_count,
			query_time_ms = excluded.query_time_ms,
			executed_at = excluded.executed_at
	`, rec.ID, rec.Query, string(rec.Scope), string(rec.Backend),
		rec.ResultCount, rec.QueryTimeMS, rec.ExecutedAt)

	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, scope, backend, result_count, query_time_ms, executed_at
		FROM searches
		ORDER BY executed_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying search history: %w", err)
	}
	defer rows.Close()

	var records []domain.SearchRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search history: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (domain.SearchRecord, error) {
	var rec domain.SearchRecord
	var scope, backend string
	var executedAt sql.NullTime
	if err := rows.Scan(&rec.ID, &rec.Query, &scope, &backend,
		&rec.ResultCount, &rec.QueryTimeMS, &executedAt); err != nil {
		return domain.SearchRecord{}, fmt.Errorf("scanning search record: %w", err)
	}
	rec.Scope = domain.Scope(scope)
	rec.Backend = domain.BackendType(backend)
	if executedAt.Valid {
		rec.ExecutedAt = executedAt.Time
	}
	return rec, nil
}

// migrate applies any unapplied .up.sql migrations in version order.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_search_history.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
