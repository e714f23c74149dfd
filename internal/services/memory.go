package services

import (
	"context"
	"fmt"
	"strings"
)

// MemoryStore recalls prior-session text snippets used as optional context for
// feedback generation. Callers are expected to treat recall errors as "no
// context" - a broken memory store must never block the pipeline.
type MemoryStore interface {
	RecallContext(ctx context.Context, query string, limit int) ([]string, error)
	StoreSnippet(ctx context.Context, docID, docType, text string) error
}

type memoryStore struct {
	embedder EmbeddingService
	vectors  VectorStore
}

func NewMemoryStore(embedder EmbeddingService, vectors VectorStore) MemoryStore {
	return &memoryStore{
		embedder: embedder,
		vectors:  vectors,
	}
}

// RecallContext implements MemoryStore.
func (m *memoryStore) RecallContext(ctx context.Context, query string, limit int) ([]string, error) {
	embedding, err := m.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed recall query: %w", err)
	}

	snippets, err := m.vectors.SearchSnippets(ctx, embedding, "", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search memory: %w", err)
	}

	var texts []string
	for _, snippet := range snippets {
		text := strings.TrimSpace(snippet.Text)
		if text == "" {
			continue
		}
		texts = append(texts, text)
	}

	return texts, nil
}

// StoreSnippet implements MemoryStore.
func (m *memoryStore) StoreSnippet(ctx context.Context, docID, docType, text string) error {
	embedding, err := m.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed snippet: %w", err)
	}

	if err := m.vectors.UpsertSnippet(ctx, docID, docType, text, embedding); err != nil {
		return fmt.Errorf("failed to store snippet: %w", err)
	}

	return nil
}
