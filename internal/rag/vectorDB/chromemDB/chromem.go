package chromemDB

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/rag/vectorDB"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"github.com/philippgille/chromem-go"
)

const (
	keySource       = "source"
	keyDocId        = "doc_id"
	keyFullDocument = "full_document"
	keyChunkIndex   = "chunk_index"
)

var errNoEmbeddingFunc = errors.New("chromem collection only accepts precomputed embeddings")

// Store is an embedded, file backed index for single node deployments without a qdrant server.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
	logger     *logger_i.Logger
}

var _ vectorDB.Index = (*Store)(nil)

// NewStore opens (or creates) the database under path. An empty path keeps everything in memory.
func NewStore(path string, compress bool, collection string) (*Store, error) {
	logger := logger_i.NewLogger("chromem").With("collection", collection)

	var db *chromem.DB
	if path == "" {
		db = chromem.NewDB()
	} else {
		var err error
		db, err = chromem.NewPersistentDB(path, compress)
		if err != nil {
			return nil, fmt.Errorf("opening chromem db at %s: %w", path, err)
		}
	}

	s := &Store{db: db, name: collection, logger: logger}
	if err := s.EnsureCollection(context.Background()); err != nil {
		return nil, err
	}
	logger.Info("chromem ready", "path", path, "documents", s.collection.Count())
	return s, nil
}

func noEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, errNoEmbeddingFunc
}

func (s *Store) EnsureCollection(ctx context.Context) error {
	if s.name == "" {
		return errors.New("empty collection name")
	}
	col, err := s.db.GetOrCreateCollection(s.name, nil, noEmbedding)
	if err != nil {
		return fmt.Errorf("getting/creating collection %s: %w", s.name, err)
	}
	s.collection = col
	return nil
}

func (s *Store) Close() error { return nil }

func (s *Store) Count(ctx context.Context) (int, error) {
	return s.collection.Count(), nil
}

func (s *Store) Upsert(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = chromem.Document{
			ID:        c.ChunkId,
			Content:   c.Chunk,
			Embedding: vectors[i],
			Metadata: map[string]string{
				keySource:       c.Source,
				keyDocId:        c.DocId,
				keyFullDocument: c.FullDocument,
				keyChunkIndex:   strconv.Itoa(c.ChunkIndex),
			},
		}
	}
	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("adding documents: %w", err)
	}
	return nil
}

func (s *Store) Search(ctx context.Context, vector []float32, limit int) ([]commonModels.ScoredChunk, error) {
	// chromem requires nResults <= doc count
	limit = min(limit, s.collection.Count())
	if limit <= 0 {
		return nil, nil
	}

	results, err := s.collection.QueryEmbedding(ctx, vector, limit, nil, nil)
	if err != nil {
		s.logger.Trace(ctx).Error("Error querying chromem", "error", err)
		return nil, fmt.Errorf("querying collection %s: %w", s.name, err)
	}

	hits := make([]commonModels.ScoredChunk, len(results))
	for i, r := range results {
		hits[i] = commonModels.ScoredChunk{
			Chunk:      toChunk(r.ID, r.Content, r.Metadata),
			Similarity: float64(r.Similarity),
		}
	}
	return hits, nil
}

func (s *Store) GetChunk(ctx context.Context, chunkId string) (commonModels.DocChunk, bool, error) {
	doc, err := s.collection.GetByID(ctx, chunkId)
	if err != nil {
		//chromem only fails here on an unknown id
		return commonModels.DocChunk{}, false, nil
	}
	return toChunk(doc.ID, doc.Content, doc.Metadata), true, nil
}

func toChunk(id, content string, meta map[string]string) commonModels.DocChunk {
	index, _ := strconv.Atoi(meta[keyChunkIndex])
	return commonModels.DocChunk{
		ChunkId:      id,
		Chunk:        content,
		Source:       meta[keySource],
		DocId:        meta[keyDocId],
		FullDocument: meta[keyFullDocument],
		ChunkIndex:   index,
	}
}
