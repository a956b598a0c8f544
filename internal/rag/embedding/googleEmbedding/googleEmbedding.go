package googleEmbedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/llm-assistant/internal/rag/embedding"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"google.golang.org/genai"
)

const (
	taskDocument = "RETRIEVAL_DOCUMENT"
	taskQuery    = "RETRIEVAL_QUERY"
)

type Client struct {
	genAi     *genai.Client
	model     string
	dimension int32
	logger    *logger_i.Logger
}

var _ embedding.Embedder = (*Client)(nil)

func NewClient(ctx context.Context, apiKey, modelName string, dimension int) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("google embedding needs GOOGLE_API_KEY")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("creating Google Embedding client: %w", err)
	}
	log := logger_i.NewLogger("google_embedding")
	log.Info("Google Embedding client created", "model", modelName)
	return &Client{
		genAi:     c,
		model:     modelName,
		dimension: int32(dimension),
		logger:    log,
	}, nil
}

func (c *Client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.embed(ctx, []string{query}, taskQuery)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *Client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	return c.embed(ctx, chunks, taskDocument)
}

func (c *Client) embed(ctx context.Context, texts []string, task string) ([][]float32, error) {
	log := c.logger.Trace(ctx)
	res, err := c.genAi.Models.EmbedContent(ctx, c.model, getContent(texts), &genai.EmbedContentConfig{
		OutputDimensionality: &c.dimension,
		TaskType:             task,
	})
	if err != nil {
		log.Error("Error getting Embeddings from Google", "error", err, "count", len(texts))
		return nil, fmt.Errorf("google embedding failed: %w", err)
	}
	if res == nil || len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("google embedding returned an unexpected number of vectors for %d texts", len(texts))
	}

	results := make([][]float32, 0, len(res.Embeddings))
	for _, r := range res.Embeddings {
		//truncated gemini vectors are not unit length
		results = append(results, embedding.Normalize(r.Values))
	}
	return results, nil
}

func getContent(chunks []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(chunks))
	for _, chunk := range chunks {
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: chunk}},
		})
	}
	return contentsToSend
}
