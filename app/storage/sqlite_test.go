package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveExchangeAssignsSequentialIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveExchange(ctx, Exchange{SessionID: "room/nexi", Role: "user", Content: "where is the library"}))
	require.NoError(t, store.SaveExchange(ctx, Exchange{SessionID: "room/nexi", Role: "assistant", Content: "next to the main gate"}))
	require.NoError(t, store.SaveExchange(ctx, Exchange{SessionID: "other", Role: "user", Content: "hello"}))

	history, err := store.HistoryBySession(ctx, "room/nexi", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// IDs count per session, chronological order
	assert.Equal(t, int64(1), history[0].ID)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, int64(2), history[1].ID)
	assert.Equal(t, "assistant", history[1].Role)

	other, err := store.HistoryBySession(ctx, "other", 10)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, int64(1), other[0].ID)
}

func TestHistoryBySessionLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	contents := []string{"one", "two", "three", "four", "five"}
	for _, c := range contents {
		require.NoError(t, store.SaveExchange(ctx, Exchange{SessionID: "s", Role: "user", Content: c}))
	}

	history, err := store.HistoryBySession(ctx, "s", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// the newest two, oldest first
	assert.Equal(t, "four", history[0].Content)
	assert.Equal(t, "five", history[1].Content)
}

func TestHistoryBySessionEmpty(t *testing.T) {
	store := newTestStore(t)

	history, err := store.HistoryBySession(context.Background(), "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDocumentsRoundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := Document{ID: "doc-1", Source: "hostel_rules.txt", Chunks: 12, SHA: "abc123"}
	require.NoError(t, store.SaveDocument(ctx, doc))

	docs, err := store.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "hostel_rules.txt", docs[0].Source)
	assert.Equal(t, 12, docs[0].Chunks)
	assert.Equal(t, "abc123", docs[0].SHA)
	assert.False(t, docs[0].IngestedAt.IsZero())

	// same ID replaces, it does not duplicate
	doc.Chunks = 15
	require.NoError(t, store.SaveDocument(ctx, doc))
	docs, err = store.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 15, docs[0].Chunks)
}
