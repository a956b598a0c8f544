package memoryDB

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/rag/vectorDB"
)

type entry struct {
	chunk  commonModels.DocChunk
	vector []float32
}

// Store is a brute force index kept in process memory. Vectors are expected to be normalized.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	order   []string
}

var _ vectorDB.Index = (*Store)(nil)

func NewStore() *Store {
	return &Store{entries: make(map[string]entry)}
}

func (s *Store) EnsureCollection(ctx context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

func (s *Store) Upsert(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range chunks {
		if _, ok := s.entries[c.ChunkId]; !ok {
			s.order = append(s.order, c.ChunkId)
		}
		s.entries[c.ChunkId] = entry{chunk: c, vector: vectors[i]}
	}
	return nil
}

func (s *Store) Search(ctx context.Context, vector []float32, limit int) ([]commonModels.ScoredChunk, error) {
	if limit <= 0 {
		return nil, nil
	}
	s.mu.RLock()
	scored := make([]commonModels.ScoredChunk, 0, len(s.order))
	for _, id := range s.order {
		e := s.entries[id]
		scored = append(scored, commonModels.ScoredChunk{Chunk: e.chunk, Similarity: dot(vector, e.vector)})
	}
	s.mu.RUnlock()

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Similarity > scored[j].Similarity })
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func (s *Store) GetChunk(ctx context.Context, chunkId string) (commonModels.DocChunk, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[chunkId]
	return e.chunk, ok, nil
}

func dot(a, b []float32) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
