package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite database connection with thread-safe access.
type DB struct {
	conn *sql.DB
	mu   sync.RWMutex
}

// New creates and initializes a new SQLite database connection.
func New(dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// migrate creates the necessary tables if they don't exist.
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS images (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		create_date DATETIME NOT NULL,
		focal_length REAL,
		f_number REAL,
		camera TEXT NOT NULL,
		lens TEXT,
		flag INTEGER NOT NULL,
		crop_factor REAL,
		equivalent_focal_length REAL,
		date TEXT NOT NULL,
		file_path TEXT
	);

	CREATE TABLE IF NOT EXISTS keywords (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		keyword TEXT NOT NULL UNIQUE,
		ai_tag BOOLEAN NOT NULL DEFAULT 0,
		category TEXT NOT NULL DEFAULT 'manual'
	);

	CREATE TABLE IF NOT EXISTS image_keywords (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		keyword_id INTEGER NOT NULL,
		image_id INTEGER NOT NULL,
		FOREIGN KEY (keyword_id) REFERENCES keywords(id),
		FOREIGN KEY (image_id) REFERENCES images(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS ai_tagged_images (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		keyword_id INTEGER NOT NULL,
		image_id INTEGER NOT NULL,
		tagging_date DATETIME NOT NULL,
		FOREIGN KEY (keyword_id) REFERENCES keywords(id),
		FOREIGN KEY (image_id) REFERENCES images(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_images_camera ON images(camera);
	CREATE INDEX IF NOT EXISTS idx_images_lens ON images(lens);
	CREATE INDEX IF NOT EXISTS idx_images_date ON images(date);
	CREATE INDEX IF NOT EXISTS idx_image_keywords_image_id ON image_keywords(image_id);
	CREATE INDEX IF NOT EXISTS idx_ai_tagged_images_image_id ON ai_tagged_images(image_id);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// Reset drops all data tables and recreates them.
func (db *DB) Reset() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	drops := []string{
		"DROP TABLE IF EXISTS ai_tagged_images",
		"DROP TABLE IF EXISTS image_keywords",
		"DROP TABLE IF EXISTS keywords",
		"DROP TABLE IF EXISTS images",
	}
	for _, stmt := range drops {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
	}
	return db.migrate()
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying database connection for use by repositories.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Lock acquires a write lock.
func (db *DB) Lock() {
	db.mu.Lock()
}

// Unlock releases the write lock.
func (db *DB) Unlock() {
	db.mu.Unlock()
}

// RLock acquires a read lock.
func (db *DB) RLock() {
	db.mu.RLock()
}

// RUnlock releases the read lock.
func (db *DB) RUnlock() {
	db.mu.RUnlock()
}
