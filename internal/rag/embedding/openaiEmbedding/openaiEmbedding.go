package openaiEmbedding

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/akolanti/llm-assistant/internal/rag/embedding"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client talks to any server exposing the OpenAI /embeddings endpoint (llama.cpp, ollama, vLLM).
type Client struct {
	api    openai.Client
	model  string
	logger *logger_i.Logger
}

var _ embedding.Embedder = (*Client)(nil)

func NewClient(baseURL, apiKey, model string, opts ...option.RequestOption) *Client {
	if apiKey == "" {
		//local servers ignore the key but the sdk insists on one
		apiKey = "none"
	}
	opts = append([]option.RequestOption{option.WithBaseURL(baseURL), option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	return &Client{
		api:    openai.NewClient(opts...),
		model:  model,
		logger: logger_i.NewLogger("openai_embedding").With("model", model),
	}
}

func (c *Client) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.BatchEmbedding(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *Client) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	log := c.logger.Trace(ctx)
	if len(texts) == 0 {
		return nil, errors.New("no texts to embed")
	}

	res, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.model),
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
	})
	if err != nil {
		log.Error("Error getting Embeddings", "error", err, "count", len(texts))
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(res.Data) != len(texts) {
		return nil, fmt.Errorf("embedding server returned %d vectors for %d texts", len(res.Data), len(texts))
	}

	data := res.Data
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	vectors := make([][]float32, len(data))
	for i, d := range data {
		v := make([]float32, len(d.Embedding))
		for j, x := range d.Embedding {
			v[j] = float32(x)
		}
		vectors[i] = embedding.Normalize(v)
	}
	log.Debug("embedded batch", "count", len(vectors))
	return vectors, nil
}
