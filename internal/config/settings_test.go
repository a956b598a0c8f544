package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.VectorBackend != "qdrant" {
		t.Errorf("VectorBackend got %q, want qdrant", s.VectorBackend)
	}
	if s.ChunkSize != DefaultChunkSize {
		t.Errorf("ChunkSize got %d, want %d", s.ChunkSize, DefaultChunkSize)
	}
	if s.DocstoreURL != "http://localhost:8001" {
		t.Errorf("DocstoreURL got %q", s.DocstoreURL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VECTOR_BACKEND", "chromem")
	t.Setenv("CHUNK_SIZE", "1000")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.VectorBackend != "chromem" || s.ChunkSize != 1000 {
		t.Errorf("overrides not applied: %+v", s)
	}
}

func TestLoad_ChromaBackend(t *testing.T) {
	t.Setenv("VECTOR_BACKEND", "chroma")
	t.Setenv("CHROMA_URL", "http://chroma:8000")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.VectorBackend != "chroma" || s.ChromaURL != "http://chroma:8000" {
		t.Errorf("chroma settings not applied: %+v", s)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("MODEL_NAME=tiny.gguf\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("MODEL_NAME") })

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.LLMModel != "tiny.gguf" {
		t.Errorf("LLMModel got %q, want tiny.gguf", s.LLMModel)
	}
}

func TestLoad_MissingDotEnvIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("missing .env should not fail: %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad backend", "VECTOR_BACKEND", "pinecone"},
		{"bad embedder", "EMBEDDING_PROVIDER", "cohere"},
		{"bad llm", "LLM_PROVIDER", "claude"},
		{"zero chunk size", "CHUNK_SIZE", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(""); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
