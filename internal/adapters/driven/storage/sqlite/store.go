package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/skillscout/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ResultCache = (*Store)(nil)

const dbFileName = "cache.db"

// Store is a SQLite-backed driven.ResultCache.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore opens (or creates) the cache database in dataDir.
// If dataDir is empty, defaults to ~/.skillscout/data/cache.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".skillscout", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	// WAL lets the MCP server and a CLI invocation share the cache.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// SetClock replaces the clock used for expiry.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending up migrations in version order.
func (s *Store) migrate(fsys fs.FS) error {
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
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_result_cache.up.sql" -> 1
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
	}

	return nil
}

// Get returns the cached resources for key if present and not expired.
func (s *Store) Get(ctx context.Context, key string) ([]domain.Resource, bool, error) {
	var payload string
	var expiresAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT payload, expires_at FROM result_cache WHERE cache_key = ?", key,
	).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying cache: %w", err)
	}

	if s.now().UnixNano() >= expiresAt {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM result_cache WHERE cache_key = ?", key); err != nil {
			return nil, false, fmt.Errorf("deleting expired entry: %w", err)
		}
		return nil, false, nil
	}

	var resources []domain.Resource
	if err := json.Unmarshal([]byte(payload), &resources); err != nil {
		return nil, false, fmt.Errorf("decoding cached payload: %w", err)
	}
	return resources, true, nil
}

// Set stores resources under key for ttl. A non-positive ttl removes the entry.
// Expired rows are purged on every write.
func (s *Store) Set(ctx context.Context, key string, resources []domain.Resource, ttl time.Duration) error {
	if ttl <= 0 {
		return s.Delete(ctx, key)
	}

	payload, err := json.Marshal(resources)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	now := s.now()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM result_cache WHERE expires_at <= ?", now.UnixNano(),
	); err != nil {
		return fmt.Errorf("purging expired entries: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO result_cache (cache_key, payload, expires_at, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			payload = excluded.payload,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at
	`, key, string(payload), now.Add(ttl).UnixNano(), now.UnixNano()); err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}

	return tx.Commit()
}

// Delete removes key from the cache.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM result_cache WHERE cache_key = ?", key); err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}
