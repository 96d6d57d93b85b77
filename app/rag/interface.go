package rag

import "context"

type VectorDoc struct {
	ID       string
	Content  string
	Metadata map[string]any
	Vector   []float32
}

type Interface interface {
	// Init loads the persisted index or, when empty, ingests the corpus.
	Init(ctx context.Context) error
	// Answer runs the full retrieve-and-generate pass for one query.
	Answer(ctx context.Context, query string) (string, error)
	// Search returns the k closest chunks to text.
	Search(ctx context.Context, text string, k int) ([]VectorDoc, error)
	Close() error
}

type vectorStore interface {
	// Init prepares the backend and reports whether persisted data already
	// exists, so the engine knows whether to ingest.
	Init(ctx context.Context, vectorSize int) (bool, error)
	UpsertBatch(ctx context.Context, docs []VectorDoc) error
	Query(ctx context.Context, vector []float32, k int) ([]VectorDoc, error)
	// Persist flushes the index to durable storage; a no-op for backends
	// that persist on write.
	Persist() error
	Close() error
}
