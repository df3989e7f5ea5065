package test

import (
	"net/http"
	"os"
	"testing"
	"time"
)

const defaultOllamaURL = "http://localhost:11434"

// OllamaURL returns the base URL of a reachable Ollama instance, skipping
// the test when none is available.
func OllamaURL(t *testing.T) string {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/version")
	if err != nil {
		t.Skipf("Ollama not reachable at %s: %v", baseURL, err)
	}
	resp.Body.Close()

	return baseURL
}

// EmbeddingModel returns the model under test, defaulting to the one the
// server runs with.
func EmbeddingModel() string {
	if model := os.Getenv("EMBEDDING_MODEL"); model != "" {
		return model
	}
	return "nomic-embed-text"
}
