package retrieval

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/metrics"
	"github.com/akolanti/llm-assistant/internal/rag/embedding"
	"github.com/akolanti/llm-assistant/internal/rag/vectorDB"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
)

type Ranker struct {
	embedder embedding.Embedder
	index    vectorDB.Index
	logger   *logger_i.Logger
}

func NewRanker(embedder embedding.Embedder, index vectorDB.Index) *Ranker {
	return &Ranker{
		embedder: embedder,
		index:    index,
		logger:   logger_i.NewLogger("ranker"),
	}
}

// Classify buckets a similarity score. Boundaries belong to the lower tier.
func Classify(similarity float64) commonModels.RelevanceLevel {
	switch {
	case similarity > config.HighRelevanceThreshold:
		return commonModels.High
	case similarity > config.MediumRelevanceThreshold:
		return commonModels.Medium
	case similarity > config.LowRelevanceThreshold:
		return commonModels.Low
	default:
		return commonModels.NotRelevant
	}
}

// Rank returns at most k results, one per source, sorted by descending similarity.
// k is clamped to config.MaxNumResults.
// An empty index or a query with no surviving candidates gives an empty slice and no error.
func (r *Ranker) Rank(ctx context.Context, query string, k int, minSimilarity *float64, minRelevance *commonModels.RelevanceLevel) ([]commonModels.QueryResult, error) {
	log := r.logger.Trace(ctx)
	results := []commonModels.QueryResult{}
	if k <= 0 {
		return results, nil
	}
	k = min(k, config.MaxNumResults)

	count, err := r.index.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("index count: %w", err)
	}
	if count == 0 {
		log.Debug("index is empty")
		return results, nil
	}

	start := time.Now()
	vector, err := r.embedder.GetEmbedding(ctx, query)
	metrics.CaptureExecutionMetrics("query_embedding", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("query embedding: %w", err)
	}

	start = time.Now()
	candidates, err := r.index.Search(ctx, vector, k*config.OverFetchFactor)
	metrics.CaptureExecutionMetrics("vector_search", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	for _, c := range dedupBySource(candidates) {
		tier := Classify(c.Similarity)
		if minSimilarity != nil && c.Similarity < *minSimilarity {
			continue
		}
		if minRelevance != nil && tier < *minRelevance {
			continue
		}
		results = append(results, commonModels.QueryResult{
			Text:         c.Chunk.Chunk,
			Source:       c.Chunk.Source,
			DocId:        c.Chunk.DocId,
			ChunkIndex:   c.Chunk.ChunkIndex,
			FullDocument: c.Chunk.FullDocument,
			Similarity:   c.Similarity,
			Relevance:    tier,
			IsRelevant:   tier != commonModels.NotRelevant,
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Similarity > results[j].Similarity })
	if len(results) > k {
		results = results[:k]
	}

	metrics.ObserveRetrievalResults(len(results))
	log.Debug("ranked", "candidates", len(candidates), "results", len(results))
	return results, nil
}

// dedupBySource keeps the best scoring chunk per source, in order of first appearance.
func dedupBySource(candidates []commonModels.ScoredChunk) []commonModels.ScoredChunk {
	position := make(map[string]int, len(candidates))
	unique := make([]commonModels.ScoredChunk, 0, len(candidates))
	for _, c := range candidates {
		i, seen := position[c.Chunk.Source]
		if !seen {
			position[c.Chunk.Source] = len(unique)
			unique = append(unique, c)
			continue
		}
		if c.Similarity > unique[i].Similarity {
			unique[i] = c
		}
	}
	return unique
}
