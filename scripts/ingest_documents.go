package main

import (
	"context"
	"log"
	"os"

	"alfredoptarigan/ai-interviewer/internal/config"
	"alfredoptarigan/ai-interviewer/internal/services"
)

// Seeds the vector collection with the interviewer reference material
// (question bank, scoring rubric). Run once per environment.
func main() {
	log.Println("🚀 Starting reference document ingestion...")

	cfg := config.Load()

	ctx := context.Background()

	embedder, err := services.NewGeminiEmbedder(ctx, cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini embedder: %v", err)
	}

	vectorStore, err := services.NewQdrantStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	memory := services.NewMemoryStore(embedder, vectorStore)
	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()

	documents := []struct {
		Path    string
		DocType string
		Name    string
	}{
		{
			Path:    "./reference_docs/question_bank.pdf",
			DocType: services.DocTypeQuestionBank,
			Name:    "Interview Question Bank",
		},
		{
			Path:    "./reference_docs/scoring_rubric.pdf",
			DocType: services.DocTypeRubric,
			Name:    "Interview Scoring Rubric",
		},
	}

	successCount := 0
	failCount := 0

	for _, doc := range documents {
		log.Printf("\n📄 Processing: %s", doc.Name)
		log.Printf("   Path: %s", doc.Path)
		log.Printf("   Type: %s", doc.DocType)

		if _, err := os.Stat(doc.Path); os.IsNotExist(err) {
			log.Printf("⚠️  File not found, skipping: %s", doc.Path)
			failCount++
			continue
		}

		content, err := pdfParser.ExtractText(doc.Path)
		if err != nil {
			log.Printf("❌ Failed to parse %s: %v", doc.Name, err)
			failCount++
			continue
		}

		chunks := chunker.ChunkText(content.Text, 1000)
		log.Printf("   Chunks: %d", len(chunks))

		ingested := 0
		for _, chunk := range chunks {
			if err := memory.StoreSnippet(ctx, doc.Name, doc.DocType, chunk); err != nil {
				log.Printf("⚠️  Failed to store chunk: %v", err)
				continue
			}
			ingested++
		}

		log.Printf("✅ Ingested %d/%d chunks for %s", ingested, len(chunks), doc.Name)
		successCount++
	}

	log.Printf("\n🏁 Ingestion finished: %d succeeded, %d failed", successCount, failCount)
}
