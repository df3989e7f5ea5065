//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/providers/ollama"
	"github.com/admiralicic/starting-ragchatbot-codebase/test"
)

func TestOllamaEmbedder(t *testing.T) {
	baseURL := test.OllamaURL(t)

	embedder := ollama.NewEmbedder(baseURL, test.EmbeddingModel())

	vec, err := embedder.Embed(context.Background(), "Hello course materials")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) == 0 {
		t.Fatal("Generated vector is empty")
	}

	t.Logf("Vector dimensions: %d", len(vec))

	// Sanity check: ensure not all zeros
	allZeros := true
	for _, v := range vec {
		if v != 0 {
			allZeros = false
			break
		}
	}
	if allZeros {
		t.Fatal("Generated vector is all zeros")
	}
}

func TestOllamaEmbedBatch(t *testing.T) {
	baseURL := test.OllamaURL(t)

	embedder := ollama.NewEmbedder(baseURL, test.EmbeddingModel())

	texts := []string{"First passage about databases.", "Second passage about networks."}
	vecs, err := embedder.EmbedBatch(context.Background(), texts)
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if len(vecs) != len(texts) {
		t.Fatalf("got %d vectors for %d texts", len(vecs), len(texts))
	}
	for i, vec := range vecs {
		if len(vec) == 0 {
			t.Errorf("vector %d is empty", i)
		}
	}
}
