package gemini

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/akolanti/llm-assistant/internal/rag/llm"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
	logger    *logger_i.Logger
}

var _ llm.Provider = (*llmClient)(nil)

func NewClient(ctx context.Context, apikey string, modelName string) (llm.Provider, error) {
	if apikey == "" {
		return nil, errors.New("gemini needs GOOGLE_API_KEY")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	logger := logger_i.NewLogger("llm_gemini").With("model", modelName)
	logger.Info("Gemini client created")
	return &llmClient{client: c, modelName: modelName, logger: logger}, nil
}

func (c *llmClient) Model() string { return c.modelName }

func (c *llmClient) Stream(ctx context.Context, prompt string, sampling llm.SamplingConfig) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		log := c.logger.Trace(ctx)
		for resp, err := range c.client.Models.GenerateContentStream(ctx, c.modelName, genai.Text(prompt), contentConfig(sampling)) {
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				log.Error("Gemini stream failed", "error", err)
				yield("", fmt.Errorf("gemini stream: %w", err))
				return
			}
			text := resp.Text()
			if text == "" {
				continue
			}
			if !yield(text, nil) {
				return
			}
		}
	}
}

func (c *llmClient) Complete(ctx context.Context, prompt string, sampling llm.SamplingConfig) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), contentConfig(sampling))
	if err != nil {
		c.logger.Trace(ctx).Error("Gemini generate failed", "error", err)
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return result.Text(), nil
}

// contentConfig maps sampling onto Gemini. Gemini has no repeat penalty; penalties are only
// sent when set because several models reject them.
func contentConfig(s llm.SamplingConfig) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(s.Temperature),
		TopP:            genai.Ptr(s.TopP),
		MaxOutputTokens: int32(s.MaxTokens),
		StopSequences:   s.Stop,
	}
	if s.TopK > 0 {
		cfg.TopK = genai.Ptr(float32(s.TopK))
	}
	if s.PresencePenalty != 0 {
		cfg.PresencePenalty = genai.Ptr(s.PresencePenalty)
	}
	if s.FrequencyPenalty != 0 {
		cfg.FrequencyPenalty = genai.Ptr(s.FrequencyPenalty)
	}
	return cfg
}
