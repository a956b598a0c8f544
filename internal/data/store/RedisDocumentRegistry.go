package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/data/redisStore"
	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
)

// RedisDocumentRegistry keeps one hash field per source. HSETNX makes the reservation atomic
// across docstore replicas.
type RedisDocumentRegistry struct {
	store  *redisStore.Store
	key    string
	logger *logger_i.Logger
}

func NewRedisDocumentRegistry(store *redisStore.Store) *RedisDocumentRegistry {
	return &RedisDocumentRegistry{
		store:  store,
		key:    config.DocumentRegistryKey,
		logger: logger_i.NewLogger("DocumentRegistry"),
	}
}

func (r *RedisDocumentRegistry) Reserve(ctx context.Context, doc commonModels.Document) (commonModels.Document, bool, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return doc, false, err
	}
	ok, err := r.store.HashSetNX(ctx, r.key, doc.Source, data)
	if err != nil {
		return doc, false, fmt.Errorf("reserve %s: %w", doc.Source, err)
	}
	if ok {
		r.logger.Trace(ctx).Debug("reserved source", "source", doc.Source, "docId", doc.Id)
		return doc, true, nil
	}

	existing, found, err := r.Get(ctx, doc.Source)
	if err != nil {
		return doc, false, err
	}
	if !found {
		//released between HSETNX and HGET, retrying the reservation is safe
		return r.Reserve(ctx, doc)
	}
	return existing, false, nil
}

func (r *RedisDocumentRegistry) Save(ctx context.Context, doc commonModels.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return r.store.HashSet(ctx, r.key, doc.Source, data)
}

func (r *RedisDocumentRegistry) Release(ctx context.Context, source string) error {
	return r.store.HashDel(ctx, r.key, source)
}

func (r *RedisDocumentRegistry) Get(ctx context.Context, source string) (commonModels.Document, bool, error) {
	var doc commonModels.Document
	val, err := r.store.HashGet(ctx, r.key, source)
	if r.store.IsNil(err) {
		return doc, false, nil
	} else if err != nil {
		return doc, false, err
	}
	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		return doc, false, fmt.Errorf("corrupt registry entry for %s: %w", source, err)
	}
	return doc, true, nil
}

func (r *RedisDocumentRegistry) List(ctx context.Context) ([]commonModels.Document, error) {
	all, err := r.store.HashGetAll(ctx, r.key)
	if err != nil {
		return nil, err
	}
	docs := make([]commonModels.Document, 0, len(all))
	for source, val := range all {
		var doc commonModels.Document
		if err := json.Unmarshal([]byte(val), &doc); err != nil {
			r.logger.Warn("skipping corrupt registry entry", "source", source, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	sortDocuments(docs)
	return docs, nil
}

func sortDocuments(docs []commonModels.Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].Source < docs[j].Source })
}
