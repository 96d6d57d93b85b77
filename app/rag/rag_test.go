package rag

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NexiAssistant/app/configs"
	"NexiAssistant/app/models"
	"NexiAssistant/app/storage"
)

type stubModel struct {
	answer     string
	prompts    []string
	embedCalls int
}

func (m *stubModel) Think(ctx context.Context, messages []models.Message, temp float64, maxTokens int) (string, error) {
	for _, msg := range messages {
		m.prompts = append(m.prompts, msg.Content)
	}
	return m.answer, nil
}

func (m *stubModel) EmbedText(ctx context.Context, input string) ([]float32, error) {
	m.embedCalls++
	return []float32{1, 0, 0}, nil
}

type stubVectors struct {
	exists    bool
	docs      []VectorDoc
	upserts   [][]VectorDoc
	persisted bool
}

func (v *stubVectors) Init(ctx context.Context, vectorSize int) (bool, error) { return v.exists, nil }

func (v *stubVectors) UpsertBatch(ctx context.Context, docs []VectorDoc) error {
	v.upserts = append(v.upserts, docs)
	return nil
}

func (v *stubVectors) Query(ctx context.Context, vector []float32, k int) ([]VectorDoc, error) {
	if k > len(v.docs) {
		k = len(v.docs)
	}
	return v.docs[:k], nil
}

func (v *stubVectors) Persist() error { v.persisted = true; return nil }
func (v *stubVectors) Close() error   { return nil }

type stubDocStore struct {
	saved []storage.Document
}

func (s *stubDocStore) SaveExchange(ctx context.Context, ex storage.Exchange) error { return nil }

func (s *stubDocStore) HistoryBySession(ctx context.Context, sessionID string, limit int) ([]storage.Exchange, error) {
	return nil, nil
}

func (s *stubDocStore) SaveDocument(ctx context.Context, doc storage.Document) error {
	s.saved = append(s.saved, doc)
	return nil
}

func (s *stubDocStore) Documents(ctx context.Context) ([]storage.Document, error) { return nil, nil }
func (s *stubDocStore) Close() error                                              { return nil }

func newTestEngine(model *stubModel, vectors *stubVectors, store *stubDocStore, corpusDir string) *Engine {
	return &Engine{
		vectors: vectors,
		model:   model,
		store:   store,
		cfg: configs.RAGConfig{
			CorpusDir:    corpusDir,
			Backend:      "vecgo",
			ChunkSize:    40,
			ChunkOverlap: 10,
			TopK:         2,
		},
		dimension: 3,
	}
}

func TestAnswerEmptyQuery(t *testing.T) {
	engine := newTestEngine(&stubModel{}, &stubVectors{}, &stubDocStore{}, t.TempDir())
	_, err := engine.Answer(context.Background(), "   ")
	assert.Error(t, err)
}

func TestAnswerWithoutChunks(t *testing.T) {
	model := &stubModel{}
	engine := newTestEngine(model, &stubVectors{}, &stubDocStore{}, t.TempDir())

	answer, err := engine.Answer(context.Background(), "where is the library")
	require.NoError(t, err)
	assert.Equal(t, NotAvailableAnswer, answer)
	assert.Empty(t, model.prompts, "the model must not run without context")
}

func TestAnswerAssemblesExtractionPrompt(t *testing.T) {
	model := &stubModel{answer: "The library opens at 8 AM"}
	vectors := &stubVectors{docs: []VectorDoc{
		{ID: "1", Content: "Library hours are 8 AM to 10 PM on all days."},
		{ID: "2", Content: "The library is next to the main gate."},
		{ID: "3", Content: "Hostel curfew is 11 PM."},
	}}
	engine := newTestEngine(model, vectors, &stubDocStore{}, t.TempDir())

	answer, err := engine.Answer(context.Background(), "when does the library open")
	require.NoError(t, err)
	assert.Equal(t, "The library opens at 8 AM", answer)

	require.Len(t, model.prompts, 1)
	prompt := model.prompts[0]
	assert.Contains(t, prompt, "Library hours are 8 AM to 10 PM")
	assert.Contains(t, prompt, "The library is next to the main gate.")
	// top_k is 2, the third chunk stays out
	assert.NotContains(t, prompt, "Hostel curfew")
	assert.Contains(t, prompt, "when does the library open")
	assert.Contains(t, prompt, NotAvailableAnswer)
}

func TestInitIngestsCorpusWhenIndexIsEmpty(t *testing.T) {
	dir := t.TempDir()
	text := strings.Repeat("Hostel rules and fee schedules. ", 4)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.txt"), []byte(text), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.pdf"), []byte("binary"), 0o644))

	model := &stubModel{}
	vectors := &stubVectors{exists: false}
	store := &stubDocStore{}
	engine := newTestEngine(model, vectors, store, dir)

	require.NoError(t, engine.Init(context.Background()))

	require.Len(t, vectors.upserts, 1, "one batch per corpus file")
	batch := vectors.upserts[0]
	assert.Greater(t, len(batch), 1, "text longer than one chunk")
	assert.Equal(t, "rules.txt", batch[0].Metadata["source"])
	assert.Equal(t, model.embedCalls, len(batch))
	assert.True(t, vectors.persisted)

	require.Len(t, store.saved, 1)
	assert.Equal(t, "rules.txt", store.saved[0].Source)
	assert.Equal(t, len(batch), store.saved[0].Chunks)
}

func TestInitIngestsHTMLAsPlainText(t *testing.T) {
	dir := t.TempDir()
	page := "<html><body><h1>Campus Map</h1><p>Block C is behind the canteen.</p>" +
		"<script>var x = 1;</script></body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "map.html"), []byte(page), 0o644))

	vectors := &stubVectors{exists: false}
	engine := newTestEngine(&stubModel{}, vectors, &stubDocStore{}, dir)

	require.NoError(t, engine.Init(context.Background()))

	require.Len(t, vectors.upserts, 1)
	joined := ""
	for _, doc := range vectors.upserts[0] {
		joined += doc.Content
	}
	assert.Contains(t, joined, "Block C is behind the canteen")
	assert.NotContains(t, joined, "<p>")
	assert.NotContains(t, joined, "var x")
}

func TestInitSkipsIngestWhenIndexExists(t *testing.T) {
	vectors := &stubVectors{exists: true}
	engine := newTestEngine(&stubModel{}, vectors, &stubDocStore{}, t.TempDir())

	require.NoError(t, engine.Init(context.Background()))
	assert.Empty(t, vectors.upserts)
	assert.False(t, vectors.persisted, "no re-persist when the index was loaded")
}

func TestInitEmptyCorpusStartsEmptyIndex(t *testing.T) {
	vectors := &stubVectors{exists: false}
	engine := newTestEngine(&stubModel{}, vectors, &stubDocStore{}, t.TempDir())

	require.NoError(t, engine.Init(context.Background()))
	assert.Empty(t, vectors.upserts)
	assert.True(t, vectors.persisted)
}
