package retrieval

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct{ err error }

func (s stubEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, s.err
}
func (s stubEmbedder) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("not used")
}

// stubIndex returns canned hits already sorted by score, like a real backend.
type stubIndex struct {
	hits      []commonModels.ScoredChunk
	searchErr error
	lastLimit int
}

func (s *stubIndex) EnsureCollection(ctx context.Context) error { return nil }
func (s *stubIndex) Close() error                               { return nil }
func (s *stubIndex) Count(ctx context.Context) (int, error)     { return len(s.hits), nil }
func (s *stubIndex) Upsert(ctx context.Context, c []commonModels.DocChunk, v [][]float32) error {
	return nil
}
func (s *stubIndex) GetChunk(ctx context.Context, id string) (commonModels.DocChunk, bool, error) {
	return commonModels.DocChunk{}, false, nil
}
func (s *stubIndex) Search(ctx context.Context, v []float32, limit int) ([]commonModels.ScoredChunk, error) {
	s.lastLimit = limit
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.hits[:min(limit, len(s.hits))], nil
}

func hit(source string, idx int, sim float64) commonModels.ScoredChunk {
	return commonModels.ScoredChunk{
		Chunk:      commonModels.DocChunk{Source: source, ChunkIndex: idx, Chunk: source + " chunk", FullDocument: source + " full"},
		Similarity: sim,
	}
}

func ptr[T any](v T) *T { return &v }

func TestClassify(t *testing.T) {
	tests := []struct {
		similarity float64
		want       commonModels.RelevanceLevel
	}{
		{0.9, commonModels.High},
		{0.5000001, commonModels.High},
		{0.5, commonModels.Medium},
		{0.3, commonModels.Medium},
		{0.2, commonModels.Low},
		{0.15, commonModels.Low},
		{0.1, commonModels.NotRelevant},
		{0.0, commonModels.NotRelevant},
		{-0.4, commonModels.NotRelevant},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.similarity), "Classify(%v)", tt.similarity)
	}
}

func TestRank_EmptyIndex(t *testing.T) {
	r := NewRanker(stubEmbedder{}, &stubIndex{})
	results, err := r.Rank(context.Background(), "anything", 3, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRank_NonPositiveK(t *testing.T) {
	r := NewRanker(stubEmbedder{}, &stubIndex{hits: []commonModels.ScoredChunk{hit("a", 0, 0.9)}})
	results, err := r.Rank(context.Background(), "q", 0, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRank_OverFetchesTwiceK(t *testing.T) {
	idx := &stubIndex{hits: []commonModels.ScoredChunk{hit("a", 0, 0.9)}}
	_, err := NewRanker(stubEmbedder{}, idx).Rank(context.Background(), "q", 3, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, idx.lastLimit)
}

func TestRank_CapsSearchLimit(t *testing.T) {
	idx := &stubIndex{hits: []commonModels.ScoredChunk{hit("a", 0, 0.9)}}
	_, err := NewRanker(stubEmbedder{}, idx).Rank(context.Background(), "q", math.MaxInt, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, config.MaxNumResults*config.OverFetchFactor, idx.lastLimit)
}

func TestRank_DedupKeepsBestPerSource(t *testing.T) {
	idx := &stubIndex{hits: []commonModels.ScoredChunk{
		hit("a", 1, 0.8),
		hit("b", 0, 0.7),
		hit("a", 0, 0.6),
		hit("c", 0, 0.4),
		hit("b", 3, 0.3),
	}}
	results, err := NewRanker(stubEmbedder{}, idx).Rank(context.Background(), "q", 5, nil, nil)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{results[0].Source, results[1].Source, results[2].Source})
	assert.Equal(t, 1, results[0].ChunkIndex)
	assert.Equal(t, 0.8, results[0].Similarity)
	assert.Equal(t, "a full", results[0].FullDocument)
}

func TestRank_SortedAndBounded(t *testing.T) {
	idx := &stubIndex{hits: []commonModels.ScoredChunk{
		hit("a", 0, 0.3),
		hit("b", 0, 0.9),
		hit("c", 0, 0.3),
		hit("d", 0, 0.6),
	}}
	results, err := NewRanker(stubEmbedder{}, idx).Rank(context.Background(), "q", 2, nil, nil)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "b", results[0].Source)
	assert.Equal(t, "d", results[1].Source)
}

func TestRank_StableOnTies(t *testing.T) {
	idx := &stubIndex{hits: []commonModels.ScoredChunk{
		hit("first", 0, 0.4),
		hit("second", 0, 0.4),
		hit("third", 0, 0.4),
	}}
	results, err := NewRanker(stubEmbedder{}, idx).Rank(context.Background(), "q", 3, nil, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Source)
	assert.Equal(t, "second", results[1].Source)
	assert.Equal(t, "third", results[2].Source)
}

func TestRank_Filters(t *testing.T) {
	hits := []commonModels.ScoredChunk{
		hit("high", 0, 0.7),
		hit("medium", 0, 0.3),
		hit("low", 0, 0.15),
		hit("edge", 0, 0.1),
		hit("none", 0, 0.05),
	}

	tests := []struct {
		name          string
		minSimilarity *float64
		minRelevance  *commonModels.RelevanceLevel
		want          []string
	}{
		{"no filters", nil, nil, []string{"high", "medium", "low", "edge", "none"}},
		{"min similarity keeps equal score", ptr(0.1), nil, []string{"high", "medium", "low", "edge"}},
		{"min relevance medium", nil, ptr(commonModels.Medium), []string{"high", "medium"}},
		{"min relevance low drops boundary", nil, ptr(commonModels.Low), []string{"high", "medium", "low"}},
		{"both filters", ptr(0.5), ptr(commonModels.Low), []string{"high"}},
		{"nothing survives", ptr(0.99), nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := &stubIndex{hits: hits}
			results, err := NewRanker(stubEmbedder{}, idx).Rank(context.Background(), "q", 5, tt.minSimilarity, tt.minRelevance)
			require.NoError(t, err)

			got := []string{}
			for _, r := range results {
				got = append(got, r.Source)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRank_RelevanceFlags(t *testing.T) {
	idx := &stubIndex{hits: []commonModels.ScoredChunk{hit("a", 0, 0.11), hit("b", 0, 0.1)}}
	results, err := NewRanker(stubEmbedder{}, idx).Rank(context.Background(), "q", 2, nil, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, commonModels.Low, results[0].Relevance)
	assert.True(t, results[0].IsRelevant)
	assert.Equal(t, commonModels.NotRelevant, results[1].Relevance)
	assert.False(t, results[1].IsRelevant)
}

func TestRank_Errors(t *testing.T) {
	boom := errors.New("boom")

	_, err := NewRanker(stubEmbedder{err: boom}, &stubIndex{hits: []commonModels.ScoredChunk{hit("a", 0, 0.9)}}).
		Rank(context.Background(), "q", 1, nil, nil)
	assert.ErrorIs(t, err, boom)

	_, err = NewRanker(stubEmbedder{}, &stubIndex{hits: []commonModels.ScoredChunk{hit("a", 0, 0.9)}, searchErr: boom}).
		Rank(context.Background(), "q", 1, nil, nil)
	assert.ErrorIs(t, err, boom)
}

func TestAssemble(t *testing.T) {
	assert.Equal(t, "", Assemble(nil))

	got := Assemble([]commonModels.QueryResult{
		{Source: "cats.txt", FullDocument: "Cats purr.", Text: "Cats purr."},
		{Source: "dogs.txt", Text: "Dogs bark."},
	})
	assert.Equal(t, "Source: cats.txt\n\nCats purr.\n\n---\n\nSource: dogs.txt\n\nDogs bark.", got)
}
