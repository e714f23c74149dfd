package services

import (
	"context"
	"errors"
	"testing"
)

type fakeEmbedder struct {
	embedding []float32
	err       error
}

func (f *fakeEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.embedding, nil
}

type fakeVectorStore struct {
	snippets  []ContextSnippet
	searchErr error
	upserts   []ContextSnippet
}

func (f *fakeVectorStore) InitCollection() error { return nil }

func (f *fakeVectorStore) UpsertSnippet(ctx context.Context, docID, docType, text string, embedding []float32) error {
	f.upserts = append(f.upserts, ContextSnippet{ID: docID, DocType: docType, Text: text})
	return nil
}

func (f *fakeVectorStore) SearchSnippets(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]ContextSnippet, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.snippets, nil
}

func (f *fakeVectorStore) DeleteSnippets(ctx context.Context, docID string) error { return nil }

func TestRecallContextReturnsSnippetTexts(t *testing.T) {
	vectors := &fakeVectorStore{
		snippets: []ContextSnippet{
			{Text: "Q: What is TCP? Feedback: too shallow."},
			{Text: "  "},
			{Text: "Struggles with concurrency questions."},
		},
	}
	memory := NewMemoryStore(&fakeEmbedder{embedding: []float32{0.1, 0.2}}, vectors)

	texts, err := memory.RecallContext(context.Background(), "concurrency", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("blank snippets should be dropped, got %#v", texts)
	}
}

func TestRecallContextSurfacesEmbeddingFailure(t *testing.T) {
	memory := NewMemoryStore(&fakeEmbedder{err: errors.New("quota exceeded")}, &fakeVectorStore{})

	if _, err := memory.RecallContext(context.Background(), "q", 3); err == nil {
		t.Fatal("expected embedding failure to surface")
	}
}

func TestStoreSnippetEmbedsThenUpserts(t *testing.T) {
	vectors := &fakeVectorStore{}
	memory := NewMemoryStore(&fakeEmbedder{embedding: []float32{0.5}}, vectors)

	err := memory.StoreSnippet(context.Background(), "doc-1", DocTypeSessionNote, "Q: ... A: ... Feedback: ...")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors.upserts) != 1 {
		t.Fatalf("expected one upsert, got %d", len(vectors.upserts))
	}
	if vectors.upserts[0].DocType != DocTypeSessionNote {
		t.Fatalf("unexpected doc type: %q", vectors.upserts[0].DocType)
	}
}
