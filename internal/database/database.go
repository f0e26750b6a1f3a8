package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"voicebox/internal/models"
)

// DB wraps the SQL database connection
type DB struct {
	*sql.DB
}

// New opens (creating if needed) the sqlite database at path.
func New(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single local writer; sqlite dislikes connection churn.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Initialize creates the schema if it does not exist.
func (db *DB) Initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS notifications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TIMESTAMP NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL,
		emotion TEXT NOT NULL DEFAULT '',
		provider TEXT NOT NULL DEFAULT '',
		success INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at);

	CREATE TABLE IF NOT EXISTS synthesis_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TIMESTAMP NOT NULL,
		message TEXT NOT NULL,
		error TEXT NOT NULL
	);`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// RecordNotification appends one notification to the history.
func (db *DB) RecordNotification(rec models.NotificationRecord) error {
	_, err := db.Exec(
		`INSERT INTO notifications (created_at, title, message, emotion, provider, success)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.CreatedAt, rec.Title, rec.Message, rec.Emotion, rec.Provider, rec.Success,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// LogSynthesisError records an exhausted synthesis cascade.
func (db *DB) LogSynthesisError(message, errMsg string) error {
	_, err := db.Exec(
		`INSERT INTO synthesis_errors (created_at, message, error) VALUES (?, ?, ?)`,
		time.Now(), message, errMsg,
	)
	if err != nil {
		return fmt.Errorf("insert synthesis error: %w", err)
	}
	return nil
}

// RecentNotifications returns the newest entries, most recent first.
func (db *DB) RecentNotifications(limit int) ([]models.NotificationRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := db.Query(
		`SELECT id, created_at, title, message, emotion, provider, success
		 FROM notifications ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var out []models.NotificationRecord
	for rows.Next() {
		var rec models.NotificationRecord
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.Title, &rec.Message,
			&rec.Emotion, &rec.Provider, &rec.Success); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
