package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	documentTable = "parking_spaces"
	documentID    = "current_data"
)

// DocumentBackend keeps the snapshot as a single row keyed by documentID in a
// SQL database, either PostgreSQL or SQLite.
type DocumentBackend struct {
	db     *sqlx.DB
	driver string
}

// OpenDocumentBackend connects using connString and makes sure the document
// table exists. Accepted forms are postgres://, postgresql://, sqlite://<path>
// and file:<path>.
func OpenDocumentBackend(ctx context.Context, connString string) (*DocumentBackend, error) {
	driver, dsn, err := parseConnectionString(connString)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorageUnavailable, driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: connect %s: %w", ErrStorageUnavailable, driver, err)
	}
	db.SetMaxOpenConns(1)

	if err := ensureDocumentSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return &DocumentBackend{db: db, driver: driver}, nil
}

func parseConnectionString(connString string) (string, string, error) {
	connString = strings.TrimSpace(connString)
	switch {
	case strings.HasPrefix(connString, "postgres://"), strings.HasPrefix(connString, "postgresql://"):
		return "pgx", connString, nil
	case strings.HasPrefix(connString, "sqlite://"):
		path := strings.TrimPrefix(connString, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("%w: sqlite connection string has no path", ErrStorageUnavailable)
		}
		return "sqlite3", path, nil
	case strings.HasPrefix(connString, "file:"):
		return "sqlite3", connString, nil
	}
	return "", "", fmt.Errorf("%w: unsupported connection string scheme", ErrStorageUnavailable)
}

func ensureDocumentSchema(ctx context.Context, db *sqlx.DB) error {
	createTable := `
CREATE TABLE IF NOT EXISTS ` + documentTable + ` (
  id TEXT PRIMARY KEY,
  document TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`

	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("create %s table: %w", documentTable, err)
	}
	return nil
}

func (b *DocumentBackend) Name() string {
	return b.driver + ":" + documentTable
}

func (b *DocumentBackend) Read(ctx context.Context) ([]byte, error) {
	query := b.db.Rebind("SELECT document FROM " + documentTable + " WHERE id = ?")

	var document string
	if err := b.db.GetContext(ctx, &document, query, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: read document: %w", ErrStorageUnavailable, err)
	}
	return []byte(document), nil
}

// Write upserts the snapshot row in one statement.
func (b *DocumentBackend) Write(ctx context.Context, data []byte) error {
	query := b.db.Rebind(`
INSERT INTO ` + documentTable + ` (id, document, updated_at) VALUES (?, ?, ?)
ON CONFLICT (id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at;`)

	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := b.db.ExecContext(ctx, query, documentID, string(data), updatedAt); err != nil {
		return fmt.Errorf("%w: write document: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (b *DocumentBackend) Close() error {
	return b.db.Close()
}
