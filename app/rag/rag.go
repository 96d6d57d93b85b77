// Package rag implements the retrieval-augmented answer pipeline: ingest a
// document corpus into a vector store, then answer queries by retrieving the
// closest chunks and asking the model to extract an answer from them.
package rag

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"NexiAssistant/app/configs"
	"NexiAssistant/app/metrics"
	"NexiAssistant/app/models"
	"NexiAssistant/app/storage"
	"NexiAssistant/app/utils"
)

// NotAvailableAnswer is what the extraction prompt instructs the model to say
// when the context does not contain the answer. The agent keys its fallback
// reply off this string.
const NotAvailableAnswer = "This information is not available in the provided documents"

const answerPromptTemplate = `Extract the exact answer from the context below. Follow these rules strictly:

1. ONLY use information directly stated in the context
2. Quote exact text, dates, numbers, and procedures from the context
3. If the answer is not in the context, respond: "%s"
4. Keep answers brief and factual
5. Do not interpret, assume, or add any information

Context:
%s

Question: %s

Answer (extract exact information only):`

var corpusExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
}

var _ Interface = &Engine{}

type Engine struct {
	vectors vectorStore
	model   models.Interface
	store   storage.Interface
	metrics *metrics.Metrics
	cfg     configs.RAGConfig

	// dimension is the embedding width the vector store is created with.
	dimension int
}

func NewEngine(model models.Interface, store storage.Interface, m *metrics.Metrics,
	cfg configs.RAGConfig, dimension int) (*Engine, error) {
	var vectors vectorStore
	var err error
	switch cfg.Backend {
	case "qdrant":
		vectors, err = newQdrantStore(cfg.Qdrant)
	default:
		vectors = newVecgoStore(cfg.SnapshotPath)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s vector store: %w", cfg.Backend, err)
	}

	return &Engine{
		vectors:   vectors,
		model:     model,
		store:     store,
		metrics:   m,
		cfg:       cfg,
		dimension: dimension,
	}, nil
}

// Init loads persisted index state, ingesting the corpus directory when the
// store is empty. Called once at startup.
func (e *Engine) Init(ctx context.Context) error {
	alreadyExists, err := e.vectors.Init(ctx, e.dimension)
	if err != nil {
		return err
	}
	if alreadyExists {
		docs, err := e.store.Documents(ctx)
		if err != nil {
			log.Printf("⚠️ Error listing ingested documents: %v", err)
		} else {
			log.Printf("📚 Vector store ready with %d ingested documents", len(docs))
		}
		return nil
	}

	log.Println("📥 No existing index found, ingesting corpus...")
	if err := e.ingestCorpus(ctx); err != nil {
		return fmt.Errorf("ingest corpus: %w", err)
	}
	return e.vectors.Persist()
}

func (e *Engine) ingestCorpus(ctx context.Context) error {
	if tree, err := utils.BuildTree(e.cfg.CorpusDir, nil, nil); err == nil {
		log.Printf("🌲 Corpus layout:\n%s", tree)
	}

	paths, err := utils.LoadFilesFromDir(e.cfg.CorpusDir, corpusExtensions)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		log.Printf("⚠️ Corpus folder %s has no ingestible files, starting with an empty index", e.cfg.CorpusDir)
		return nil
	}

	for _, p := range paths {
		text, err := utils.ReadFile(p)
		if err != nil {
			return err
		}

		ext := strings.ToLower(filepath.Ext(p))
		if ext == ".html" || ext == ".htm" {
			if text, err = utils.ExtractHTMLText(text); err != nil {
				return fmt.Errorf("extract text from %s: %w", p, err)
			}
		}

		chunks := ChunkText(text, e.cfg.ChunkSize, e.cfg.ChunkOverlap)
		batch := make([]VectorDoc, 0, len(chunks))

		for i, ch := range chunks {
			vec, err := e.model.EmbedText(ctx, ch)
			if err != nil {
				return err
			}
			batch = append(batch, VectorDoc{
				ID:      uuid.New().String(),
				Content: ch,
				Metadata: map[string]any{
					"source": filepath.Base(p),
					"chunk":  i,
				},
				Vector: vec,
			})
		}

		if err = e.vectors.UpsertBatch(ctx, batch); err != nil {
			return err
		}

		doc := storage.Document{
			ID:     uuid.New().String(),
			Source: filepath.Base(p),
			Chunks: len(chunks),
			SHA:    utils.HashText(text),
		}
		if err = e.store.SaveDocument(ctx, doc); err != nil {
			log.Printf("⚠️ Error recording document %s: %v", doc.Source, err)
		}
		log.Printf("✅ Ingested %s (%d chunks)", doc.Source, len(chunks))
	}

	return nil
}

func (e *Engine) Search(ctx context.Context, text string, k int) ([]VectorDoc, error) {
	vec, err := e.model.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}
	return e.vectors.Query(ctx, vec, k)
}

// Answer runs the single-pass retrieve-and-generate flow: embed the query,
// fetch the top-k chunks, assemble the extraction prompt and ask the model.
func (e *Engine) Answer(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("empty query")
	}

	start := time.Now()
	chunks, err := e.Search(ctx, query, e.cfg.TopK)
	if err != nil {
		return "", fmt.Errorf("retrieve: %w", err)
	}
	if len(chunks) == 0 {
		if e.metrics != nil {
			e.metrics.ObserveRAG(start, 0)
		}
		return NotAvailableAnswer, nil
	}

	var contextText strings.Builder
	for _, c := range chunks {
		contextText.WriteString(c.Content)
		contextText.WriteString("\n\n")
	}

	prompt := fmt.Sprintf(answerPromptTemplate, NotAvailableAnswer, contextText.String(), query)
	answer, err := e.model.Think(ctx, []models.Message{
		{Role: "user", Content: prompt},
	}, 0, -1)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	if e.metrics != nil {
		e.metrics.ObserveRAG(start, len(chunks))
	}
	return answer, nil
}

func (e *Engine) Close() error {
	if err := e.vectors.Persist(); err != nil {
		log.Printf("⚠️ Error persisting vector index: %v", err)
	}
	return e.vectors.Close()
}
