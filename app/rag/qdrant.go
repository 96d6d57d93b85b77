package rag

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"NexiAssistant/app/configs"
)

// qdrantStore is the remote alternative to the embedded index, for
// deployments that already run a qdrant instance.
type qdrantStore struct {
	client     *qdrant.Client
	collection string
}

func newQdrantStore(cfg configs.QdrantConfig) (*qdrantStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: cfg.Host,
		Port: cfg.Port,
	})
	if err != nil {
		return nil, err
	}
	return &qdrantStore{
		client:     client,
		collection: cfg.Collection,
	}, nil
}

func (s *qdrantStore) Init(ctx context.Context, vectorSize int) (bool, error) {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return false, err
	}
	if !exists {
		if err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collection,
			VectorsConfig: &qdrant.VectorsConfig{
				Config: &qdrant.VectorsConfig_Params{
					Params: &qdrant.VectorParams{
						Size:     uint64(vectorSize),
						Distance: qdrant.Distance_Cosine,
					},
				},
			},
		}); err != nil {
			return exists, fmt.Errorf("create collection: %w", err)
		}
	}
	return exists, nil
}

func (s *qdrantStore) UpsertBatch(ctx context.Context, docs []VectorDoc) error {
	pts := make([]*qdrant.PointStruct, len(docs))

	for i, d := range docs {
		id := d.ID
		if id == "" {
			id = uuid.New().String()
		}

		payload := map[string]any{
			"text": d.Content,
		}
		for k, v := range d.Metadata {
			payload[k] = v
		}

		pts[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(id),
			Vectors: qdrant.NewVectors(d.Vector...),
			Payload: qdrant.NewValueMap(payload),
		}
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         pts,
	})

	return err
}

func (s *qdrantStore) Query(ctx context.Context, vector []float32, k int) ([]VectorDoc, error) {
	limit := uint64(k)
	resp, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Limit:          &limit,
		Query:          qdrant.NewQuery(vector...),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, err
	}

	var out []VectorDoc
	for _, r := range resp {
		md := make(map[string]any)
		for key, v := range r.Payload {
			md[key] = convertQdrantValue(v)
		}

		content := ""
		if val, ok := md["text"]; ok {
			content = fmt.Sprintf("%v", val)
		}

		var id string
		if r.Id != nil {
			switch x := r.Id.PointIdOptions.(type) {
			case *qdrant.PointId_Uuid:
				id = x.Uuid
			case *qdrant.PointId_Num:
				id = fmt.Sprintf("%d", x.Num)
			}
		}

		out = append(out, VectorDoc{
			ID:       id,
			Content:  content,
			Metadata: md,
		})
	}

	return out, nil
}

// Persist is a no-op: qdrant persists on write.
func (s *qdrantStore) Persist() error {
	return nil
}

func (s *qdrantStore) Close() error {
	return s.client.Close()
}

func convertQdrantValue(v *qdrant.Value) any {
	switch val := v.Kind.(type) {
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_ListValue:
		out := make([]any, len(val.ListValue.Values))
		for i, lv := range val.ListValue.Values {
			out[i] = convertQdrantValue(lv)
		}
		return out
	case *qdrant.Value_StructValue:
		out := make(map[string]any)
		for k, nv := range val.StructValue.Fields {
			out[k] = convertQdrantValue(nv)
		}
		return out
	}
	return nil
}
