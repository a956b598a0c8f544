package store

import (
	"context"
	"sync"

	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
)

type InMemoryDocumentRegistry struct {
	mu   sync.RWMutex
	docs map[string]commonModels.Document
}

func NewInMemoryDocumentRegistry() *InMemoryDocumentRegistry {
	return &InMemoryDocumentRegistry{docs: make(map[string]commonModels.Document)}
}

func (r *InMemoryDocumentRegistry) Reserve(ctx context.Context, doc commonModels.Document) (commonModels.Document, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.docs[doc.Source]; ok {
		return existing, false, nil
	}
	r.docs[doc.Source] = doc
	return doc, true, nil
}

func (r *InMemoryDocumentRegistry) Save(ctx context.Context, doc commonModels.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.Source] = doc
	return nil
}

func (r *InMemoryDocumentRegistry) Release(ctx context.Context, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, source)
	return nil
}

func (r *InMemoryDocumentRegistry) Get(ctx context.Context, source string) (commonModels.Document, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[source]
	return doc, ok, nil
}

func (r *InMemoryDocumentRegistry) List(ctx context.Context) ([]commonModels.Document, error) {
	r.mu.RLock()
	docs := make([]commonModels.Document, 0, len(r.docs))
	for _, d := range r.docs {
		docs = append(docs, d)
	}
	r.mu.RUnlock()
	sortDocuments(docs)
	return docs, nil
}
