package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02 15:04:05"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStore, error) {
	if path == "" {
		projectDir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		path = filepath.Join(projectDir, "data", "assistant.db")
		log.Printf("📂 storage path not set, using default: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db at %s: %w", path, err)
	}

	if _, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS exchanges (
            id INTEGER NOT NULL,
            session_id TEXT NOT NULL,
            role TEXT NOT NULL,
            content TEXT NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (session_id, id)
        );
        CREATE INDEX IF NOT EXISTS idx_session_id ON exchanges (session_id);
        CREATE TABLE IF NOT EXISTS documents (
            id TEXT PRIMARY KEY,
            source TEXT NOT NULL,
            chunks INTEGER NOT NULL,
            sha TEXT NOT NULL,
            ingested_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        );
    `); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) SaveExchange(ctx context.Context, exchange Exchange) error {
	var lastID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id), 0) FROM exchanges WHERE session_id = ?`, exchange.SessionID,
	).Scan(&lastID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Printf("⚠️ Error retrieving last ID for session %s: %v", exchange.SessionID, err)
		return err
	}

	exchange.ID = lastID + 1
	if exchange.CreatedAt.IsZero() {
		exchange.CreatedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO exchanges (id, session_id, role, content, created_at)
		 VALUES (?, ?, ?, ?, datetime(?))`,
		exchange.ID, exchange.SessionID, exchange.Role, exchange.Content,
		exchange.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		log.Printf("⚠️ Error saving exchange for session %s: %v", exchange.SessionID, err)
		return err
	}
	return nil
}

func (s *SQLiteStore) HistoryBySession(ctx context.Context, sessionID string, limit int) ([]Exchange, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, role, content, created_at
		 FROM exchanges
		 WHERE session_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []Exchange
	for rows.Next() {
		var ex Exchange
		if err = rows.Scan(&ex.ID, &ex.SessionID, &ex.Role, &ex.Content, &ex.CreatedAt); err != nil {
			log.Printf("⚠️ Error scanning exchange for session %s: %v", sessionID, err)
			continue
		}
		history = append(history, ex)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	// rows came out newest first, callers expect chronological order
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history, nil
}

func (s *SQLiteStore) SaveDocument(ctx context.Context, doc Document) error {
	if doc.IngestedAt.IsZero() {
		doc.IngestedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (id, source, chunks, sha, ingested_at)
		 VALUES (?, ?, ?, ?, datetime(?))`,
		doc.ID, doc.Source, doc.Chunks, doc.SHA, doc.IngestedAt.Format(timeLayout),
	)
	if err != nil {
		log.Printf("⚠️ Error saving document %s: %v", doc.Source, err)
	}
	return err
}

func (s *SQLiteStore) Documents(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, chunks, sha, ingested_at FROM documents ORDER BY source ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err = rows.Scan(&d.ID, &d.Source, &d.Chunks, &d.SHA, &d.IngestedAt); err != nil {
			log.Printf("⚠️ Error scanning document row: %v", err)
			continue
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
