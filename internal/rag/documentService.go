package rag

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/domain/jobModel"
	"github.com/akolanti/llm-assistant/internal/rag/embedding"
	"github.com/akolanti/llm-assistant/internal/rag/ingest"
	"github.com/akolanti/llm-assistant/internal/rag/retrieval"
	"github.com/akolanti/llm-assistant/internal/rag/vectorDB"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"github.com/google/uuid"
)

// DocumentService is everything the docstore handlers, the MCP tools and the ingest
// workers may call. The index, embedder and registry stay private to the implementation.
type DocumentService interface {
	AddDocument(ctx context.Context, sourceName string, raw []byte) (string, error)
	AddDocumentFile(ctx context.Context, sourceName string, path string) (string, error)
	IngestJob(ctx context.Context, job jobModel.Job) jobModel.Job
	Query(ctx context.Context, query string, numResults int, minSimilarity *float64, minRelevance *commonModels.RelevanceLevel) ([]commonModels.QueryResult, error)
	GetContext(ctx context.Context, prompt string, numResults int, minSimilarity float64) (string, error)
	ListDocuments(ctx context.Context) ([]commonModels.Document, error)
	Stats(ctx context.Context) (Stats, error)
}

type Stats struct {
	Collection    string `json:"collection_name"`
	Backend       string `json:"backend"`
	DocumentCount int    `json:"document_count"`
	ChunkCount    int    `json:"chunk_count"`
}

type DocumentServiceConfig struct {
	ChunkSize  int
	Collection string
	Backend    string
}

type documentService struct {
	// writers hold mu exclusively so a query never sees half of a document
	mu       sync.RWMutex
	index    vectorDB.Index
	embedder embedding.Embedder
	registry commonModels.DocumentRegistry
	ranker   *retrieval.Ranker
	cfg      DocumentServiceConfig
	logger   *logger_i.Logger
}

func NewDocumentService(index vectorDB.Index, em embedding.Embedder, registry commonModels.DocumentRegistry, cfg DocumentServiceConfig) DocumentService {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = config.DefaultChunkSize
	}
	return &documentService{
		index:    index,
		embedder: em,
		registry: registry,
		ranker:   retrieval.NewRanker(em, index),
		cfg:      cfg,
		logger:   logger_i.NewLogger("Document Service"),
	}
}

func (s *documentService) AddDocument(ctx context.Context, sourceName string, raw []byte) (string, error) {
	text, err := ingest.DecodeText(raw)
	if err != nil {
		s.logger.Trace(ctx).Warn("rejecting document", "source", sourceName, "error", err)
		return "", fmt.Errorf("%w: %s: %w", ErrDecode, sourceName, err)
	}
	return s.ingestText(ctx, sourceName, text, ingest.GetDocType(sourceName))
}

func (s *documentService) AddDocumentFile(ctx context.Context, sourceName string, path string) (string, error) {
	text, docType, err := ingest.ExtractText(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		s.logger.Trace(ctx).Warn("rejecting document", "source", sourceName, "path", path, "error", err)
		return "", fmt.Errorf("%w: %s: %w", ErrDecode, sourceName, err)
	}
	return s.ingestText(ctx, sourceName, text, docType)
}

// ingestText is idempotent by source: the deterministic id of chunk 0 tells whether the
// index already has the source, and the registry reservation settles concurrent uploads.
func (s *documentService) ingestText(ctx context.Context, source, text string, docType commonModels.DocType) (string, error) {
	log := s.logger.Trace(ctx).With("source", source)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s has no text", ErrDecode, source)
	}

	ctx, cancel := context.WithTimeout(ctx, config.IngestJobTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	first, found, err := s.index.GetChunk(ctx, ingest.ChunkId(source, 0))
	if err != nil {
		log.Error("index lookup failed", "error", err)
		return "", fmt.Errorf("%w: lookup %s: %w", ErrRetrieval, source, err)
	}
	if found {
		log.Info("source already indexed", "docId", first.DocId)
		s.backfillRegistry(ctx, log, first, docType)
		return first.DocId, nil
	}

	//a reservation is an entry without chunks, stamped with the time it was taken
	doc := commonModels.Document{Id: uuid.NewString(), Source: source, ContentType: docType, LastIngestTimestamp: time.Now().UTC()}
	stored, reserved, err := s.registry.Reserve(ctx, doc)
	if err != nil {
		log.Error("registry reservation failed", "error", err)
		return "", fmt.Errorf("reserve %s: %w", source, err)
	}
	if !reserved {
		switch {
		case stored.ChunkCount == 0 && time.Since(stored.LastIngestTimestamp) < config.ReservationTTL:
			log.Info("source is being ingested elsewhere", "docId", stored.Id)
			return stored.Id, nil
		case stored.ChunkCount == 0:
			log.Warn("reclaiming stale reservation", "docId", stored.Id, "reservedAt", stored.LastIngestTimestamp)
		default:
			//finished entry whose chunks are gone from the index
			log.Warn("registry entry has no chunks in the index, re-ingesting", "docId", stored.Id)
		}
		doc.Id = stored.Id
		if err := s.registry.Save(ctx, doc); err != nil {
			log.Error("could not refresh reservation", "error", err)
			return "", fmt.Errorf("reserve %s: %w", source, err)
		}
	}

	chunks := ingest.PrepareChunks(doc, text, s.cfg.ChunkSize)
	log = log.With("docId", doc.Id, "chunks", len(chunks))

	vectors, err := s.executeEmbeddingStep(ctx, log, chunks)
	if err != nil {
		s.release(ctx, log, source)
		return "", fmt.Errorf("embedding %s: %w", source, err)
	}
	if err := s.executeUpsertStep(ctx, log, chunks, vectors); err != nil {
		s.release(ctx, log, source)
		return "", fmt.Errorf("%w: upsert %s: %w", ErrRetrieval, source, err)
	}

	doc.ChunkCount = len(chunks)
	doc.LastIngestTimestamp = time.Now().UTC()
	if err := s.registry.Save(ctx, doc); err != nil {
		//the index is authoritative for idempotency, a stale registry only affects listings
		log.Warn("could not record document in registry", "error", err)
	}
	log.Info("document ingested")
	return doc.Id, nil
}

func (s *documentService) Query(ctx context.Context, query string, numResults int, minSimilarity *float64, minRelevance *commonModels.RelevanceLevel) ([]commonModels.QueryResult, error) {
	log := s.logger.Trace(ctx)
	ctx, cancel := context.WithTimeout(ctx, config.RetrievalTimeout)
	defer cancel()

	s.mu.RLock()
	defer s.mu.RUnlock()

	results, err := s.ranker.Rank(ctx, query, numResults, minSimilarity, minRelevance)
	if err != nil {
		log.Error("query failed", "stage", "rank", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	return results, nil
}

func (s *documentService) GetContext(ctx context.Context, prompt string, numResults int, minSimilarity float64) (string, error) {
	results, err := s.Query(ctx, prompt, numResults, &minSimilarity, nil)
	if err != nil {
		return "", err
	}
	return retrieval.Assemble(results), nil
}

func (s *documentService) ListDocuments(ctx context.Context) ([]commonModels.Document, error) {
	docs, err := s.registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range docs {
		first, found, err := s.index.GetChunk(ctx, ingest.ChunkId(docs[i].Source, 0))
		if err != nil || !found {
			continue
		}
		docs[i].Preview = preview(first.FullDocument)
	}
	return docs, nil
}

func preview(text string) string {
	r := []rune(text)
	if len(r) <= config.DocumentPreviewLength {
		return text
	}
	return string(r[:config.DocumentPreviewLength]) + "..."
}

func (s *documentService) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Collection: s.cfg.Collection, Backend: s.cfg.Backend}

	s.mu.RLock()
	chunks, err := s.index.Count(ctx)
	s.mu.RUnlock()
	if err != nil {
		return stats, fmt.Errorf("%w: count: %w", ErrRetrieval, err)
	}
	docs, err := s.registry.List(ctx)
	if err != nil {
		return stats, fmt.Errorf("list documents: %w", err)
	}
	stats.ChunkCount = chunks
	stats.DocumentCount = len(docs)
	return stats, nil
}
