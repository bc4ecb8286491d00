package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/stampede-tools/stampede-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/stampede-tools/stampede-cli/internal/core/domain"
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driven"
)

// Ensure Store implements the template store port.
var _ driven.TemplateStore = (*Store)(nil)

// Store is a SQLite-backed template store. Templates are write-once,
// so a single connection with WAL mode is plenty.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.stampede/data/templates.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".stampede", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "templates.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// migrate runs all pending migrations.
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
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
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

// Save stores a template keyed by its id.
func (s *Store) Save(ctx context.Context, tpl *domain.Template) error {
	createdAt := tpl.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO templates (id, name, source_document_id, source_container_id, source_title, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, tpl.ID, tpl.Name, tpl.SourceDocumentID, tpl.SourceContainerID, tpl.SourceTitle, tpl.Content, createdAt)
	if err != nil {
		return fmt.Errorf("saving template: %w", err)
	}
	return nil
}

// Get retrieves a template by id, including its content.
func (s *Store) Get(ctx context.Context, id string) (*domain.Template, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, source_document_id, source_container_id, source_title, content, created_at
		FROM templates WHERE id = ?
	`, id)

	var tpl domain.Template
	var createdAt sql.NullTime
	if err := row.Scan(&tpl.ID, &tpl.Name, &tpl.SourceDocumentID, &tpl.SourceContainerID,
		&tpl.SourceTitle, &tpl.Content, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}
	if createdAt.Valid {
		tpl.CreatedAt = createdAt.Time
	}

	return &tpl, nil
}

// List returns metadata for all stored templates, newest first.
// Content is not loaded.
func (s *Store) List(ctx context.Context) ([]domain.TemplateInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, source_title, created_at
		FROM templates ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var infos []domain.TemplateInfo //nolint:prealloc // size unknown from query
	for rows.Next() {
		var info domain.TemplateInfo
		var createdAt sql.NullTime
		if err := rows.Scan(&info.ID, &info.Name, &info.SourceTitle, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		if createdAt.Valid {
			info.CreatedAt = createdAt.Time
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}

	return infos, nil
}

// Delete removes a template.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM templates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return nil
}
