// Package chromaDB stores chunks in a Chroma server through its v2 HTTP API.
package chromaDB

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/rag/vectorDB"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
)

const (
	keySource       = "source"
	keyDocId        = "doc_id"
	keyFullDocument = "full_document"
	keyChunkIndex   = "chunk_index"
)

type Config struct {
	BaseURL    string
	Collection string
}

type Store struct {
	client     chroma.Client
	collection chroma.Collection
	name       string
	logger     *logger_i.Logger
}

var _ vectorDB.Index = (*Store)(nil)

func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	logger := logger_i.NewLogger("Chroma").With("collection", cfg.Collection)

	client, err := chroma.NewHTTPClient(chroma.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("chroma client: %w", err)
	}
	s := &Store{client: client, name: cfg.Collection, logger: logger}

	ctx, cancel := context.WithTimeout(ctx, config.ChromaConnectionTimeout)
	defer cancel()
	if err := s.EnsureCollection(ctx); err != nil {
		logger.Error("could not create collection", "error", err)
		client.Close()
		return nil, err
	}
	logger.Info("Chroma ready", "url", cfg.BaseURL)
	return s, nil
}

// EnsureCollection opens the cosine collection. Vectors always come from our embedder, the
// hash function only satisfies the client and is never used for stored chunks.
func (s *Store) EnsureCollection(ctx context.Context) error {
	if s.name == "" {
		return errors.New("empty collection name")
	}
	col, err := s.client.GetOrCreateCollection(ctx, s.name,
		chroma.WithHNSWSpaceCreate(embeddings.COSINE),
		chroma.WithEmbeddingFunctionCreate(embeddings.NewConsistentHashEmbeddingFunction()),
	)
	if err != nil {
		return fmt.Errorf("chroma collection %s: %w", s.name, err)
	}
	s.collection = col
	return nil
}

func (s *Store) Close() error {
	s.logger.Info("Shutting down Chroma client")
	return s.client.Close()
}

func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := s.collection.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("chroma count failed: %w", err)
	}
	return n, nil
}

func (s *Store) Upsert(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	ids := make([]chroma.DocumentID, len(chunks))
	texts := make([]string, len(chunks))
	metadatas := make([]chroma.DocumentMetadata, len(chunks))
	embs := make([]embeddings.Embedding, len(chunks))
	for i, chunk := range chunks {
		ids[i] = chroma.DocumentID(chunk.ChunkId)
		texts[i] = chunk.Chunk
		metadatas[i] = chunkMetadata(chunk)
		embs[i] = embeddings.NewEmbeddingFromFloat32(vectors[i])
	}

	err := s.collection.Upsert(ctx,
		chroma.WithIDs(ids...),
		chroma.WithTexts(texts...),
		chroma.WithMetadatas(metadatas...),
		chroma.WithEmbeddings(embs...),
	)
	if err != nil {
		return fmt.Errorf("chroma upsert failed: %w", err)
	}
	return nil
}

func (s *Store) Search(ctx context.Context, vector []float32, limit int) ([]commonModels.ScoredChunk, error) {
	log := s.logger.Trace(ctx)
	if limit <= 0 {
		return nil, nil
	}
	res, err := s.collection.Query(ctx,
		chroma.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(vector)),
		chroma.WithNResults(limit),
		chroma.WithIncludeQuery(chroma.IncludeDocuments, chroma.IncludeMetadatas, chroma.IncludeDistances),
	)
	if err != nil {
		log.Error("Error querying Chroma", "error", err)
		return nil, fmt.Errorf("chroma query failed: %w", err)
	}

	idGroups, docGroups := res.GetIDGroups(), res.GetDocumentsGroups()
	metaGroups, distGroups := res.GetMetadatasGroups(), res.GetDistancesGroups()
	if len(idGroups) == 0 {
		return nil, nil
	}

	matches := make([]commonModels.ScoredChunk, 0, len(idGroups[0]))
	for i, id := range idGroups[0] {
		var text string
		if len(docGroups) > 0 && i < len(docGroups[0]) && docGroups[0][i] != nil {
			text = docGroups[0][i].ContentString()
		}
		var meta chroma.DocumentMetadata
		if len(metaGroups) > 0 && i < len(metaGroups[0]) {
			meta = metaGroups[0][i]
		}
		var distance float64 = 1
		if len(distGroups) > 0 && i < len(distGroups[0]) {
			distance = float64(distGroups[0][i])
		}
		matches = append(matches, commonModels.ScoredChunk{
			Chunk:      chunkFromMetadata(string(id), text, meta),
			Similarity: similarity(distance),
		})
	}
	log.Debug("Found matches", "count", len(matches))
	return matches, nil
}

func (s *Store) GetChunk(ctx context.Context, chunkId string) (commonModels.DocChunk, bool, error) {
	res, err := s.collection.Get(ctx,
		chroma.WithIDsGet(chroma.DocumentID(chunkId)),
		chroma.WithIncludeGet(chroma.IncludeDocuments, chroma.IncludeMetadatas),
	)
	if err != nil {
		return commonModels.DocChunk{}, false, fmt.Errorf("chroma get failed: %w", err)
	}
	if len(res.GetIDs()) == 0 {
		return commonModels.DocChunk{}, false, nil
	}

	var text string
	if docs := res.GetDocuments(); len(docs) > 0 && docs[0] != nil {
		text = docs[0].ContentString()
	}
	var meta chroma.DocumentMetadata
	if metas := res.GetMetadatas(); len(metas) > 0 {
		meta = metas[0]
	}
	return chunkFromMetadata(chunkId, text, meta), true, nil
}

// similarity converts a cosine distance (1 - cos) back to the cosine score the ranker expects.
func similarity(distance float64) float64 {
	return 1 - distance
}

func chunkMetadata(chunk commonModels.DocChunk) chroma.DocumentMetadata {
	return chroma.NewDocumentMetadata(
		chroma.NewStringAttribute(keySource, chunk.Source),
		chroma.NewStringAttribute(keyDocId, chunk.DocId),
		chroma.NewStringAttribute(keyFullDocument, chunk.FullDocument),
		chroma.NewIntAttribute(keyChunkIndex, int64(chunk.ChunkIndex)),
	)
}

func chunkFromMetadata(id, text string, meta chroma.DocumentMetadata) commonModels.DocChunk {
	chunk := commonModels.DocChunk{ChunkId: id, Chunk: text}
	if meta == nil {
		return chunk
	}
	chunk.Source, _ = meta.GetString(keySource)
	chunk.DocId, _ = meta.GetString(keyDocId)
	chunk.FullDocument, _ = meta.GetString(keyFullDocument)
	if idx, ok := meta.GetInt(keyChunkIndex); ok {
		chunk.ChunkIndex = int(idx)
	}
	return chunk
}
