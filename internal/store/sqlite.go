package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const dbFileName = "slate.sqlite"

// DBPath returns the workspace database file location under dir.
func DBPath(dir string) string {
	return filepath.Join(filepath.Clean(dir), dbFileName)
}

func openSQLite(ctx context.Context, dir string) (*sql.DB, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("empty workspace dir")
	}
	if err := os.MkdirAll(filepath.Clean(dir), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite registers itself as "sqlite".
	db, err := sql.Open("sqlite", DBPath(dir))
	if err != nil {
		return nil, err
	}
	// Pragmas for local multi-process usage: WAL allows one writer plus readers,
	// busy_timeout avoids "database is locked" flakiness when the CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL,
			json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL,
			json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sidebar (
			kind TEXT NOT NULL,
			id TEXT NOT NULL,
			section TEXT NOT NULL,
			rank TEXT NOT NULL,
			PRIMARY KEY (kind, id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sidebar_section ON sidebar(section, rank);`,
		`CREATE TABLE IF NOT EXISTS events (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			ts_unixms INTEGER NOT NULL,
			actor TEXT NOT NULL,
			type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			payload_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_id, seq);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	_, err := ensureMetaValue(ctx, db, "workspace_id")
	return err
}

// ensureMetaValue reads meta[key], generating and persisting a fresh UUID when
// the key is missing or blank.
func ensureMetaValue(ctx context.Context, db *sql.DB, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("empty meta key")
	}
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, key).Scan(&v)
	if err == nil && strings.TrimSpace(v) != "" {
		return v, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	id := uuid.NewString()
	if _, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, key, id); err != nil {
		return "", err
	}
	return id, nil
}
