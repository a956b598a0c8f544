package rag_test

import (
	"context"
	"iter"
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/rag/llm"
	"github.com/akolanti/llm-assistant/internal/rag/vectorDB/memoryDB"
)

const vocabularySize = 256

// wordEmbedder gives every distinct word its own dimension, so texts without shared words
// are exactly orthogonal.
type wordEmbedder struct {
	mu    sync.Mutex
	vocab map[string]int
}

func newWordEmbedder() *wordEmbedder {
	return &wordEmbedder{vocab: make(map[string]int)}
}

func (w *wordEmbedder) embed(text string) []float32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	v := make([]float32, vocabularySize)
	for _, word := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool { return !unicode.IsLetter(r) }) {
		word = strings.TrimSuffix(word, "s")
		id, ok := w.vocab[word]
		if !ok {
			id = len(w.vocab) % vocabularySize
			w.vocab[word] = id
		}
		v[id]++
	}
	var sum float64
	for _, x := range v {
		sum += float64(x * x)
	}
	if sum > 0 {
		norm := float32(math.Sqrt(sum))
		for i := range v {
			v[i] /= norm
		}
	}
	return v
}

type MockEmbedder struct {
	words            *wordEmbedder
	mu               sync.Mutex
	BatchCalls       int
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
}

func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{words: newWordEmbedder()}
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	m.mu.Lock()
	m.BatchCalls++
	m.mu.Unlock()
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	vectors := make([][]float32, len(chunks))
	for i, c := range chunks {
		vectors[i] = m.words.embed(c)
	}
	return vectors, nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return m.words.embed(query), nil
}

// MockIndex is a real in-memory index with overridable failures.
type MockIndex struct {
	*memoryDB.Store
	OnUpsert func(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error
	OnSearch func(ctx context.Context, vector []float32, limit int) ([]commonModels.ScoredChunk, error)
}

func NewMockIndex() *MockIndex {
	return &MockIndex{Store: memoryDB.NewStore()}
}

func (m *MockIndex) Upsert(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if m.OnUpsert != nil {
		return m.OnUpsert(ctx, chunks, vectors)
	}
	return m.Store.Upsert(ctx, chunks, vectors)
}

func (m *MockIndex) Search(ctx context.Context, vector []float32, limit int) ([]commonModels.ScoredChunk, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, vector, limit)
	}
	return m.Store.Search(ctx, vector, limit)
}

// MockLLM implements llm.Provider
type MockLLM struct {
	mu         sync.Mutex
	LastPrompt string
	OnStream   func(ctx context.Context, prompt string, s llm.SamplingConfig) iter.Seq2[string, error]
	OnComplete func(ctx context.Context, prompt string, s llm.SamplingConfig) (string, error)
}

func (m *MockLLM) Model() string { return "mock" }

func (m *MockLLM) record(prompt string) {
	m.mu.Lock()
	m.LastPrompt = prompt
	m.mu.Unlock()
}

func (m *MockLLM) Stream(ctx context.Context, prompt string, s llm.SamplingConfig) iter.Seq2[string, error] {
	m.record(prompt)
	if m.OnStream != nil {
		return m.OnStream(ctx, prompt, s)
	}
	return fragments(ctx, "mocked ", "llm ", "response")
}

func (m *MockLLM) Complete(ctx context.Context, prompt string, s llm.SamplingConfig) (string, error) {
	m.record(prompt)
	if m.OnComplete != nil {
		return m.OnComplete(ctx, prompt, s)
	}
	return "  mocked llm response  ", nil
}

// fragments behaves like a real provider: it stops quietly once ctx is done.
func fragments(ctx context.Context, parts ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, p := range parts {
			if ctx.Err() != nil {
				return
			}
			if !yield(p, nil) {
				return
			}
		}
	}
}

type MockContextSource struct {
	OnGetContext func(ctx context.Context, prompt string) (string, error)
}

func (m *MockContextSource) GetContext(ctx context.Context, prompt string) (string, error) {
	if m.OnGetContext != nil {
		return m.OnGetContext(ctx, prompt)
	}
	return "", nil
}
