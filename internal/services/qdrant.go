package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// Snippet doc types stored in the vector collection.
const (
	DocTypeSessionNote  = "session_note"
	DocTypeResume       = "resume_context"
	DocTypeRole         = "role_description"
	DocTypeQuestionBank = "question_bank"
	DocTypeRubric       = "rubric_reference"
)

type ContextSnippet struct {
	ID      string
	Score   float32
	Text    string
	DocType string
}

type VectorStore interface {
	InitCollection() error
	UpsertSnippet(ctx context.Context, docID, docType, text string, embedding []float32) error
	SearchSnippets(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]ContextSnippet, error)
	DeleteSnippets(ctx context.Context, docID string) error
}

type qdrantStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantStore(urlStr, apiKey, collectionName string) (VectorStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 dimension
	}, nil
}

// InitCollection implements VectorStore.
func (q *qdrantStore) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertSnippet implements VectorStore.
func (q *qdrantStore) UpsertSnippet(ctx context.Context, docID, docType, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"doc_id":   docID,
			"doc_type": docType,
			"text":     text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert snippet: %w", err)
	}

	return nil
}

// SearchSnippets implements VectorStore. An empty docType searches every
// snippet type.
func (q *qdrantStore) SearchSnippets(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]ContextSnippet, error) {
	var filter *qdrant.Filter
	if docType != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("doc_type", docType),
			},
		}
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search snippets: %w", err)
	}

	var snippets []ContextSnippet
	for _, point := range points {
		snippet := ContextSnippet{Score: point.Score}

		if v, ok := point.Payload["doc_id"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				snippet.ID = s.StringValue
			}
		}
		if v, ok := point.Payload["text"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				snippet.Text = s.StringValue
			}
		}
		if v, ok := point.Payload["doc_type"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				snippet.DocType = s.StringValue
			}
		}

		snippets = append(snippets, snippet)
	}

	return snippets, nil
}

// DeleteSnippets implements VectorStore.
func (q *qdrantStore) DeleteSnippets(ctx context.Context, docID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("doc_id", docID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete snippets: %w", err)
	}

	return nil
}
