// Package bootstrap turns Settings into the concrete index, embedder, model and stores
// shared by the docstore, the assistant and the loader.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/customHttpClient"
	"github.com/akolanti/llm-assistant/internal/data/redisStore"
	"github.com/akolanti/llm-assistant/internal/data/store"
	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/domain/jobModel"
	"github.com/akolanti/llm-assistant/internal/rag"
	"github.com/akolanti/llm-assistant/internal/rag/embedding"
	"github.com/akolanti/llm-assistant/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/llm-assistant/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/llm-assistant/internal/rag/llm"
	"github.com/akolanti/llm-assistant/internal/rag/llm/gemini"
	"github.com/akolanti/llm-assistant/internal/rag/llm/openaiLLM"
	"github.com/akolanti/llm-assistant/internal/rag/vectorDB"
	"github.com/akolanti/llm-assistant/internal/rag/vectorDB/chromaDB"
	"github.com/akolanti/llm-assistant/internal/rag/vectorDB/chromemDB"
	"github.com/akolanti/llm-assistant/internal/rag/vectorDB/memoryDB"
	"github.com/akolanti/llm-assistant/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"github.com/openai/openai-go/option"
)

func NewIndex(ctx context.Context, s *config.Settings) (vectorDB.Index, error) {
	switch s.VectorBackend {
	case "qdrant":
		return qdrantDB.NewClient(ctx, qdrantDB.Config{
			Host:       s.QdrantHost,
			Port:       s.QdrantPort,
			APIKey:     s.QdrantAPIKey,
			UseTLS:     s.QdrantUseTLS,
			Collection: s.Collection,
			Dimension:  s.EmbeddingDimension,
		})
	case "chroma":
		return chromaDB.NewStore(ctx, chromaDB.Config{BaseURL: s.ChromaURL, Collection: s.Collection})
	case "chromem":
		return chromemDB.NewStore(s.ChromemPath, s.ChromemGzip, s.Collection)
	case "memory":
		return memoryDB.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown vector backend %q", s.VectorBackend)
	}
}

func NewEmbedder(ctx context.Context, s *config.Settings) (embedding.Embedder, error) {
	switch s.EmbeddingProvider {
	case "google":
		return googleEmbedding.NewClient(ctx, s.GoogleAPIKey, s.EmbeddingModel, s.EmbeddingDimension)
	case "openai":
		return openaiEmbedding.NewClient(s.EmbeddingBaseURL, s.EmbeddingAPIKey, s.EmbeddingModel,
			option.WithHTTPClient(customHttpClient.NewClient(config.RetrievalTimeout))), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", s.EmbeddingProvider)
	}
}

func NewProvider(ctx context.Context, s *config.Settings) (llm.Provider, error) {
	switch s.LLMProvider {
	case "gemini":
		return gemini.NewClient(ctx, s.GoogleAPIKey, s.LLMModel)
	case "openai":
		//no client timeout, streams are bounded by the request context
		return openaiLLM.NewClient(s.LLMBaseURL, s.LLMAPIKey, s.LLMModel,
			option.WithHTTPClient(customHttpClient.NewClient(0))), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", s.LLMProvider)
	}
}

// NewRegistry prefers redis and falls back to memory when it is offline. The in-memory
// backend never touches redis.
func NewRegistry(ctx context.Context, s *config.Settings) (commonModels.DocumentRegistry, func()) {
	if s.VectorBackend == "memory" {
		return store.NewInMemoryDocumentRegistry(), func() {}
	}
	redis, err := redisStore.NewStore(ctx, s.RedisAddr, s.RedisPassword, config.RedisDocumentStore)
	if err != nil {
		logger_i.NewLogger("bootstrap").Warn("Redis registry offline, using in-memory registry", "error", err)
		return store.NewInMemoryDocumentRegistry(), func() {}
	}
	return store.NewRedisDocumentRegistry(redis), func() { redis.Close() }
}

func NewJobStore(ctx context.Context, s *config.Settings) (jobModel.JobStore, func()) {
	if s.VectorBackend == "memory" {
		return store.NewInMemoryJobStore(), func() {}
	}
	redis, err := redisStore.NewStore(ctx, s.RedisAddr, s.RedisPassword, config.RedisJobStore)
	if err != nil {
		logger_i.NewLogger("bootstrap").Warn("Redis job store offline, using in-memory store", "error", err)
		return store.NewInMemoryJobStore(), func() {}
	}
	return store.NewRedisJobStore(redis), func() { redis.Close() }
}

// NewDocumentService wires index, embedder and registry. Failures wrap rag.ErrNotInitialized.
func NewDocumentService(ctx context.Context, s *config.Settings) (rag.DocumentService, func(), error) {
	index, err := NewIndex(ctx, s)
	if err != nil {
		return nil, func() {}, fmt.Errorf("%w: vector index: %w", rag.ErrNotInitialized, err)
	}
	embedder, err := NewEmbedder(ctx, s)
	if err != nil {
		index.Close()
		return nil, func() {}, fmt.Errorf("%w: embedder: %w", rag.ErrNotInitialized, err)
	}
	registry, closeRegistry := NewRegistry(ctx, s)

	docs := rag.NewDocumentService(index, embedder, registry, rag.DocumentServiceConfig{
		ChunkSize:  s.ChunkSize,
		Collection: s.Collection,
		Backend:    s.VectorBackend,
	})
	return docs, func() {
		closeRegistry()
		if err := index.Close(); err != nil {
			logger_i.NewLogger("bootstrap").Error("closing vector index", "error", err)
		}
	}, nil
}
