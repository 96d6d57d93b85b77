package rag

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hupe1980/vecgo"
	"github.com/hupe1980/vecgo/index"
	"github.com/hupe1980/vecgo/index/hnsw"
)

// chunkPayload is the per-vector record stored in the embedded index.
type chunkPayload struct {
	Source string `json:"source"`
	Chunk  int    `json:"chunk"`
	Text   string `json:"text"`
}

// vecgoStore keeps the index in process memory and persists it as a snapshot
// file next to the worker, so no external vector database is needed.
type vecgoStore struct {
	db           *vecgo.Vecgo[chunkPayload]
	snapshotPath string
}

func newVecgoStore(snapshotPath string) *vecgoStore {
	return &vecgoStore{snapshotPath: snapshotPath}
}

func (s *vecgoStore) Init(ctx context.Context, vectorSize int) (bool, error) {
	if _, err := os.Stat(s.snapshotPath); err == nil {
		db, err := vecgo.NewFromFilename[chunkPayload](s.snapshotPath)
		if err != nil {
			return false, fmt.Errorf("load snapshot %s: %w", s.snapshotPath, err)
		}
		s.db = db
		log.Printf("📦 Loaded vector index snapshot from %s", s.snapshotPath)
		return true, nil
	}

	if err := os.MkdirAll(filepath.Dir(s.snapshotPath), os.ModePerm); err != nil {
		return false, fmt.Errorf("create snapshot directory: %w", err)
	}

	s.db = vecgo.NewHNSW[chunkPayload](func(o *hnsw.Options) {
		o.DistanceType = index.DistanceTypeCosineSimilarity
	})
	return false, nil
}

func (s *vecgoStore) UpsertBatch(ctx context.Context, docs []VectorDoc) error {
	items := make([]vecgo.VectorWithData[chunkPayload], 0, len(docs))
	for _, d := range docs {
		payload := chunkPayload{Text: d.Content}
		if src, ok := d.Metadata["source"].(string); ok {
			payload.Source = src
		}
		if n, ok := d.Metadata["chunk"].(int); ok {
			payload.Chunk = n
		}
		items = append(items, vecgo.VectorWithData[chunkPayload]{
			Vector: d.Vector,
			Data:   payload,
		})
	}

	inserted := 0
	for _, item := range items {
		if _, err := s.db.Insert(item); err != nil {
			return fmt.Errorf("batch insert stored %d of %d vectors: %w", inserted, len(items), err)
		}
		inserted++
	}
	return nil
}

func (s *vecgoStore) Query(ctx context.Context, vector []float32, k int) ([]VectorDoc, error) {
	results, err := s.db.KNNSearch(vector, k)
	if err != nil {
		return nil, err
	}

	out := make([]VectorDoc, 0, len(results))
	for _, r := range results {
		out = append(out, VectorDoc{
			ID:      strconv.FormatUint(uint64(r.ID), 10),
			Content: r.Data.Text,
			Metadata: map[string]any{
				"source":   r.Data.Source,
				"chunk":    r.Data.Chunk,
				"distance": r.Distance,
			},
		})
	}
	return out, nil
}

func (s *vecgoStore) Persist() error {
	if err := s.db.SaveToFile(s.snapshotPath); err != nil {
		return fmt.Errorf("save snapshot %s: %w", s.snapshotPath, err)
	}
	log.Printf("💾 Vector index snapshot written to %s", s.snapshotPath)
	return nil
}

func (s *vecgoStore) Close() error {
	return nil
}
