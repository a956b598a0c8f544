package qdrantDB

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/rag/vectorDB"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
)

const (
	keyContent      = "content"
	keySource       = "source"
	keyDocId        = "doc_id"
	keyFullDocument = "full_document"
	keyChunkIndex   = "chunk_index"
)

type Config struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
	Dimension  int
}

type ClientHolder struct {
	QObj       *qdrant.Client
	collection string
	dimension  uint64
	logger     *logger_i.Logger
}

var _ vectorDB.Index = (*ClientHolder)(nil)

func NewClient(ctx context.Context, cfg Config) (*ClientHolder, error) {
	logger := logger_i.NewLogger("Qdrant").With("collection", cfg.Collection)

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		APIKey:   cfg.APIKey,
		UseTLS:   cfg.UseTLS,
		PoolSize: uint(config.QdrantPoolSize),
		GrpcOptions: []grpc.DialOption{
			grpc.WithKeepaliveParams(keepalive.ClientParameters{
				Time:                config.QdrantKeepAliveTimeout,
				PermitWithoutStream: true,
			}),
		},
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil, fmt.Errorf("qdrant client: %w", err)
	}

	holder := &ClientHolder{
		QObj:       client,
		collection: cfg.Collection,
		dimension:  uint64(cfg.Dimension),
		logger:     logger,
	}

	ctx, cancel := context.WithTimeout(ctx, config.QdrantConnectionTimeout)
	defer cancel()
	if err := holder.EnsureCollection(ctx); err != nil {
		logger.Error("could not create collection: ", "error:", err)
		client.Close()
		return nil, err
	}
	logger.Info("Qdrant ready", "host", cfg.Host, "port", cfg.Port)
	return holder, nil
}

func (db *ClientHolder) Close() error {
	db.logger.Info("Shutting down Qdrant")
	return db.QObj.Close()
}

func (db *ClientHolder) EnsureCollection(ctx context.Context) error {
	if db.collection == "" {
		return errors.New("empty collection name")
	}

	exists, err := db.QObj.CollectionExists(ctx, db.collection)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return db.QObj.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: db.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     db.dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func (db *ClientHolder) Count(ctx context.Context) (int, error) {
	n, err := db.QObj.Count(ctx, &qdrant.CountPoints{
		CollectionName: db.collection,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("qdrant count failed: %w", err)
	}
	return int(n), nil
}

func (db *ClientHolder) Search(ctx context.Context, vectorFloat []float32, limit int) ([]commonModels.ScoredChunk, error) {
	log := db.logger.Trace(ctx)
	if limit <= 0 {
		return nil, nil
	}
	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: db.collection,
		Query:          qdrant.NewQuery(vectorFloat...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		log.Error("Error querying Qdrant: ", "error:", err)
		return nil, fmt.Errorf("qdrant query failed: %w", err)
	}

	matches := make([]commonModels.ScoredChunk, 0, len(result))
	for _, hit := range result {
		matches = append(matches, commonModels.ScoredChunk{
			Chunk:      chunkFromPayload(hit.Id.GetUuid(), hit.Payload),
			Similarity: float64(hit.Score),
		})
	}
	log.Debug("Found matches", "count", len(matches))
	return matches, nil
}

func (db *ClientHolder) Upsert(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ChunkId),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(chunkPayload(chunk)),
		}
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: db.collection,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (db *ClientHolder) GetChunk(ctx context.Context, chunkId string) (commonModels.DocChunk, bool, error) {
	points, err := db.QObj.Get(ctx, &qdrant.GetPoints{
		CollectionName: db.collection,
		Ids:            []*qdrant.PointId{qdrant.NewID(chunkId)},
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return commonModels.DocChunk{}, false, fmt.Errorf("qdrant get failed: %w", err)
	}
	if len(points) == 0 {
		return commonModels.DocChunk{}, false, nil
	}
	return chunkFromPayload(chunkId, points[0].Payload), true, nil
}

func chunkPayload(chunk commonModels.DocChunk) map[string]any {
	return map[string]any{
		keyContent:      chunk.Chunk,
		keySource:       chunk.Source,
		keyDocId:        chunk.DocId,
		keyFullDocument: chunk.FullDocument,
		keyChunkIndex:   int64(chunk.ChunkIndex),
	}
}

func chunkFromPayload(id string, payload map[string]*qdrant.Value) commonModels.DocChunk {
	return commonModels.DocChunk{
		ChunkId:      id,
		Chunk:        payload[keyContent].GetStringValue(),
		Source:       payload[keySource].GetStringValue(),
		DocId:        payload[keyDocId].GetStringValue(),
		FullDocument: payload[keyFullDocument].GetStringValue(),
		ChunkIndex:   int(payload[keyChunkIndex].GetIntegerValue()),
	}
}
