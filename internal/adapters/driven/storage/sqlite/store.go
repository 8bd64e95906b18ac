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

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/clockprose/clockprose-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/clockprose/clockprose-cli/internal/core/domain"
	"github.com/clockprose/clockprose-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// the processed-document and corpus store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.clockprose/data/clockprose.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".clockprose", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "clockprose.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// ProcessedStore returns a ProcessedStore interface backed by this store.
func (s *Store) ProcessedStore() driven.ProcessedStore {
	return &processedStore{store: s}
}

// CorpusStore returns a CorpusStore interface backed by this store.
func (s *Store) CorpusStore() driven.CorpusStore {
	return &corpusStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Processed Store ====================

// processedStore implements driven.ProcessedStore.
type processedStore struct {
	store *Store
}

var _ driven.ProcessedStore = (*processedStore)(nil)

// IsProcessed reports whether the source ID was already handled.
func (s *processedStore) IsProcessed(ctx context.Context, sourceID string) (bool, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM processed WHERE source_id = ?", sourceID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking processed: %w", err)
	}
	return count > 0, nil
}

// MarkProcessed records the source ID as handled.
func (s *processedStore) MarkProcessed(ctx context.Context, sourceID string) error {
	if sourceID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO processed (source_id, marked_at)
		VALUES (?, ?)
		ON CONFLICT(source_id) DO NOTHING
	`, sourceID, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("marking processed: %w", err)
	}
	return nil
}

// Clear forgets every recorded ID.
func (s *processedStore) Clear(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM processed")
	if err != nil {
		return fmt.Errorf("clearing processed: %w", err)
	}
	return nil
}

// Stats summarises the recorded IDs by source prefix.
func (s *processedStore) Stats(ctx context.Context) (driven.ProcessedStats, error) {
	stats := driven.ProcessedStats{BySource: make(map[string]int)}

	rows, err := s.store.db.QueryContext(ctx, "SELECT source_id FROM processed")
	if err != nil {
		return stats, fmt.Errorf("querying processed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return stats, fmt.Errorf("scanning processed: %w", err)
		}
		stats.Total++
		source, _, found := strings.Cut(id, ":")
		if !found {
			source = id
		}
		stats.BySource[source]++
	}

	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterating processed: %w", err)
	}

	return stats, nil
}

// ==================== Corpus Store ====================

// corpusStore implements driven.CorpusStore.
type corpusStore struct {
	store *Store
}

var _ driven.CorpusStore = (*corpusStore)(nil)

// Load reads every stored quote and groups rows into a corpus keyed by
// HH:MM, preserving each pool's insertion order via the position column.
func (s *corpusStore) Load(ctx context.Context) (domain.Corpus, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT time_key, quote_first, quote_time_case, quote_last, title, author, sfw
		FROM quotes
		ORDER BY time_key, position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying quotes: %w", err)
	}
	defer rows.Close()

	corpus := domain.Corpus{}
	for rows.Next() {
		var key string
		var q domain.Quote
		if err := rows.Scan(&key, &q.QuoteFirst, &q.QuoteTimeCase, &q.QuoteLast,
			&q.Title, &q.Author, &q.SFW); err != nil {
			return nil, fmt.Errorf("scanning quote: %w", err)
		}
		corpus.Add(key, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quotes: %w", err)
	}

	return corpus, nil
}

// Save replaces the stored corpus with the given one in a single transaction.
func (s *corpusStore) Save(ctx context.Context, corpus domain.Corpus) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM quotes"); err != nil {
		return fmt.Errorf("clearing quotes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quotes (id, time_key, quote_first, quote_time_case, quote_last, title, author, sfw, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, key := range corpus.Keys() {
		for pos, q := range corpus[key] {
			if _, err := stmt.ExecContext(ctx, uuid.NewString(), key,
				q.QuoteFirst, q.QuoteTimeCase, q.QuoteLast,
				q.Title, q.Author, q.SFW, pos, now); err != nil {
				return fmt.Errorf("saving quote: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
