package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings are the values that differ between deployments. Everything else is a constant above.
type Settings struct {
	IsProd   bool   `env:"IS_PROD" envDefault:"false"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`

	DocstoreListenAddr  string `env:"DOCSTORE_LISTEN_ADDR" envDefault:":8001"`
	AssistantListenAddr string `env:"API_LISTEN_ADDR" envDefault:":8080"`
	DocstoreURL         string `env:"DOCSTORE_URL" envDefault:"http://localhost:8001"`

	AuthToken    string `env:"AUTH_TOKEN"`
	RateLimiting bool   `env:"RATE_LIMITING" envDefault:"true"`

	// qdrant | chroma | chromem | memory
	VectorBackend string `env:"VECTOR_BACKEND" envDefault:"qdrant"`
	Collection    string `env:"COLLECTION_NAME" envDefault:"llm-assistant-docs"`
	QdrantHost    string `env:"QDRANT_HOST" envDefault:"localhost"`
	QdrantPort    int    `env:"QDRANT_PORT" envDefault:"6334"`
	QdrantAPIKey  string `env:"QDRANT_API_KEY"`
	QdrantUseTLS  bool   `env:"QDRANT_USE_TLS" envDefault:"false"`
	ChromaURL     string `env:"CHROMA_URL" envDefault:"http://localhost:8000"`
	ChromemPath   string `env:"CHROMEM_PATH" envDefault:"data/chromadb"`
	ChromemGzip   bool   `env:"CHROMEM_COMPRESS" envDefault:"false"`

	// openai (any OpenAI compatible server, e.g. llama.cpp or ollama) | google
	EmbeddingProvider  string `env:"EMBEDDING_PROVIDER" envDefault:"openai"`
	EmbeddingBaseURL   string `env:"EMBEDDING_BASE_URL" envDefault:"http://localhost:11434/v1"`
	EmbeddingModel     string `env:"EMBEDDING_MODEL" envDefault:"all-mpnet-base-v2"`
	EmbeddingAPIKey    string `env:"EMBEDDING_API_KEY"`
	EmbeddingDimension int    `env:"EMBEDDING_DIMENSION" envDefault:"768"`

	// openai | gemini
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"openai"`
	LLMBaseURL  string `env:"LLM_BASE_URL" envDefault:"http://localhost:8081/v1"`
	LLMModel    string `env:"MODEL_NAME" envDefault:"Qwen2-7B-Instruct.Q5_K_M.gguf"`
	LLMAPIKey   string `env:"LLM_API_KEY"`

	GoogleAPIKey string `env:"GOOGLE_API_KEY"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	ChunkSize int `env:"CHUNK_SIZE" envDefault:"500"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFile string) (*Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	s := &Settings{}
	if err := env.Parse(s); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return s, nil
}

func (s *Settings) validate() error {
	switch s.VectorBackend {
	case "qdrant", "chroma", "chromem", "memory":
	default:
		return fmt.Errorf("VECTOR_BACKEND must be one of qdrant, chroma, chromem, memory; got %q", s.VectorBackend)
	}
	switch s.EmbeddingProvider {
	case "openai", "google":
	default:
		return fmt.Errorf("EMBEDDING_PROVIDER must be openai or google; got %q", s.EmbeddingProvider)
	}
	switch s.LLMProvider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("LLM_PROVIDER must be openai or gemini; got %q", s.LLMProvider)
	}
	if s.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", s.ChunkSize)
	}
	if s.EmbeddingDimension <= 0 {
		return fmt.Errorf("EMBEDDING_DIMENSION must be positive, got %d", s.EmbeddingDimension)
	}
	return nil
}
