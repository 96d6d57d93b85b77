package storage

import (
	"context"
	"time"
)

type Interface interface {
	SaveExchange(ctx context.Context, exchange Exchange) error
	HistoryBySession(ctx context.Context, sessionID string, limit int) ([]Exchange, error)
	SaveDocument(ctx context.Context, doc Document) error
	Documents(ctx context.Context) ([]Document, error)
	Close() error
}

// Exchange is one turn of a conversation: what the user said or what the
// assistant spoke back.
type Exchange struct {
	ID        int64     `json:"id" db:"id"`
	SessionID string    `json:"session_id" db:"session_id"`
	Role      string    `json:"role" db:"role"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Document records an ingested corpus file so startup can tell whether the
// vector index already covers it.
type Document struct {
	ID         string    `json:"id" db:"id"`
	Source     string    `json:"source" db:"source"`
	Chunks     int       `json:"chunks" db:"chunks"`
	SHA        string    `json:"sha" db:"sha"`
	IngestedAt time.Time `json:"ingested_at" db:"ingested_at"`
}
