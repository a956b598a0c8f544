package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/rag/embedding"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"github.com/google/uuid"
)

var chunkNamespace = uuid.MustParse(config.ChunkIdNamespace)

// ChunkText splits text on periods and packs whole sentences into chunks of roughly
// targetSize characters. A chunk only closes once it holds at least one sentence, so a
// single long sentence becomes one oversized chunk. Text without periods is one chunk.
func ChunkText(text string, targetSize int) []string {
	parts := strings.Split(text, ".")
	var chunks []string
	var current []string
	currentSize := 0

	for i, part := range parts {
		sentence := strings.TrimSpace(part)
		if sentence == "" {
			continue
		}
		//only segments that were followed by a separator get their period back
		if i < len(parts)-1 {
			sentence += "."
		}

		if currentSize+len(sentence) > targetSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			currentSize = 0
		}
		current = append(current, sentence)
		currentSize += len(sentence)
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// ChunkId is stable for a (source, index) pair so re-ingesting a source overwrites instead of duplicating.
func ChunkId(source string, index int) string {
	return uuid.NewSHA1(chunkNamespace, []byte(source+"#"+strconv.Itoa(index))).String()
}

func PrepareChunks(doc commonModels.Document, text string, chunkSize int) []commonModels.DocChunk {
	stringChunks := ChunkText(text, chunkSize)
	allChunks := make([]commonModels.DocChunk, 0, len(stringChunks))

	for i, chunk := range stringChunks {
		allChunks = append(allChunks, commonModels.DocChunk{
			ChunkId:      ChunkId(doc.Source, i),
			DocId:        doc.Id,
			Source:       doc.Source,
			Chunk:        chunk,
			FullDocument: text,
			ChunkIndex:   i,
		})
	}
	return allChunks
}

// BatchEmbed embeds chunk texts IngestBatchSize at a time and returns one vector per chunk, in order.
func BatchEmbed(ctx context.Context, chunks []commonModels.DocChunk, embedder embedding.Embedder) ([][]float32, error) {
	log := logger_i.NewLogger("Batch Ingestion").Trace(ctx)
	vectors := make([][]float32, 0, len(chunks))

	for i := 0; i < len(chunks); i += config.IngestBatchSize {
		end := min(i+config.IngestBatchSize, len(chunks))
		currentBatch := chunks[i:end]

		texts := make([]string, len(currentBatch))
		for j, c := range currentBatch {
			texts[j] = c.Chunk
		}

		log.Debug("Starting embedding call", "batch start", i, "batch length", len(texts))
		start := time.Now()
		batchVectors, err := embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding batch failed: %w", err)
		}
		if len(batchVectors) != len(texts) {
			return nil, fmt.Errorf("embedding batch mismatch: got %d vectors for %d chunks", len(batchVectors), len(texts))
		}
		log.Debug("Embedding batch done", "took", time.Since(start))
		vectors = append(vectors, batchVectors...)
	}

	return vectors, nil
}
