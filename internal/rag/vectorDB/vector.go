package vectorDB

import (
	"context"

	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
)

// Index is the similarity store behind the docstore. Similarity is cosine on normalized
// vectors, so every backend returns scores in [-1, 1] with higher meaning closer.
type Index interface {
	EnsureCollection(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, vector []float32, limit int) ([]commonModels.ScoredChunk, error)
	Upsert(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error
	// GetChunk looks a chunk up by its deterministic id.
	GetChunk(ctx context.Context, chunkId string) (commonModels.DocChunk, bool, error)
	Close() error
}
