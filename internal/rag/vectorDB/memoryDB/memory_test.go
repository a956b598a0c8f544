package memoryDB

import (
	"context"
	"testing"

	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(id, source string) commonModels.DocChunk {
	return commonModels.DocChunk{ChunkId: id, Source: source, Chunk: source + " text"}
}

func TestStore_SearchOrdersBySimilarity(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Upsert(ctx,
		[]commonModels.DocChunk{chunk("a", "a.txt"), chunk("b", "b.txt"), chunk("c", "c.txt")},
		[][]float32{{1, 0}, {0, 1}, {0.6, 0.8}},
	))

	hits, err := s.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a.txt", hits[0].Chunk.Source)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.Equal(t, "c.txt", hits[1].Chunk.Source)
	assert.InDelta(t, 0.6, hits[1].Similarity, 1e-6)
}

func TestStore_UpsertOverwritesSameId(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Upsert(ctx, []commonModels.DocChunk{chunk("a", "old.txt")}, [][]float32{{1, 0}}))
	require.NoError(t, s.Upsert(ctx, []commonModels.DocChunk{chunk("a", "new.txt")}, [][]float32{{0, 1}}))

	n, _ := s.Count(ctx)
	assert.Equal(t, 1, n)

	got, found, err := s.GetChunk(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "new.txt", got.Source)
}

func TestStore_EmptyAndMismatch(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	hits, err := s.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	_, found, _ := s.GetChunk(ctx, "missing")
	assert.False(t, found)

	assert.Error(t, s.Upsert(ctx, []commonModels.DocChunk{chunk("a", "a.txt")}, nil))
}
