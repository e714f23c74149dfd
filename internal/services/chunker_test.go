package services

import (
	"strings"
	"testing"
)

func TestChunkTextShortInput(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("A short paragraph.", 1000)
	if len(chunks) != 1 || chunks[0] != "A short paragraph." {
		t.Fatalf("unexpected chunks: %#v", chunks)
	}
}

func TestChunkTextEmptyInput(t *testing.T) {
	chunker := NewTextChunker()

	if chunks := chunker.ChunkText("", 1000); len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %#v", chunks)
	}
	if chunks := chunker.ChunkText("\n\n  \n\n", 1000); len(chunks) != 0 {
		t.Fatalf("expected no chunks for whitespace input, got %#v", chunks)
	}
}

func TestChunkTextMergesParagraphsUpToLimit(t *testing.T) {
	chunker := NewTextChunker()

	text := "First paragraph.\n\nSecond paragraph.\n\nThird paragraph."
	chunks := chunker.ChunkText(text, 20)

	if len(chunks) < 2 {
		t.Fatalf("expected the text to split across chunks, got %#v", chunks)
	}
	joined := strings.Join(chunks, " ")
	for _, want := range []string{"First paragraph.", "Second paragraph.", "Third paragraph."} {
		if !strings.Contains(joined, want) {
			t.Fatalf("chunk output lost %q: %#v", want, chunks)
		}
	}
}

func TestChunkTextSplitsOversizedParagraph(t *testing.T) {
	chunker := NewTextChunker()

	sentence := "This sentence pads the paragraph well past the limit. "
	text := strings.Repeat(sentence, 20)

	chunks := chunker.ChunkText(text, 120)
	if len(chunks) < 2 {
		t.Fatalf("expected oversized paragraph to split, got %d chunk(s)", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 200 {
			t.Fatalf("chunk %d far exceeds the limit: %d bytes", i, len(chunk))
		}
	}
}

func TestChunkTextBudgetsBytesForMultiByteText(t *testing.T) {
	chunker := NewTextChunker()

	// Each sentence is 10 bytes (5 two-byte runes); the paragraph overflows a
	// 40-byte budget only under byte accounting.
	sentence := strings.Repeat("é", 5)
	text := strings.Repeat(sentence+". ", 5)

	chunks := chunker.ChunkText(text, 40)
	if len(chunks) < 2 {
		t.Fatalf("expected multi-byte paragraph to split, got %#v", chunks)
	}
	for i, chunk := range chunks {
		if len(chunk) > 40 {
			t.Fatalf("chunk %d exceeds the byte budget: %d bytes", i, len(chunk))
		}
	}
}

func TestChunkTextDefaultsChunkSize(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("Some text.", 0)
	if len(chunks) != 1 {
		t.Fatalf("expected one chunk with defaulted size, got %#v", chunks)
	}
}
