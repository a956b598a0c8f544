package openaiLLM

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/akolanti/llm-assistant/internal/rag/llm"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client drives a raw text completion endpoint (llama.cpp server, ollama, vLLM). The chat
// transcript is built by llm.BuildChatPrompt, so the chat completions API is not used.
type Client struct {
	api    openai.Client
	model  string
	logger *logger_i.Logger
}

var _ llm.Provider = (*Client)(nil)

func NewClient(baseURL, apiKey, model string, opts ...option.RequestOption) *Client {
	if apiKey == "" {
		apiKey = "none"
	}
	opts = append([]option.RequestOption{option.WithBaseURL(baseURL), option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	return &Client{
		api:    openai.NewClient(opts...),
		model:  model,
		logger: logger_i.NewLogger("llm_openai").With("model", model),
	}
}

func (c *Client) Model() string { return c.model }

func (c *Client) Stream(ctx context.Context, prompt string, sampling llm.SamplingConfig) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		log := c.logger.Trace(ctx)
		stream := c.api.Completions.NewStreaming(ctx, c.params(prompt, sampling), samplingOptions(sampling)...)
		defer stream.Close()

		fragments := 0
		for stream.Next() {
			if ctx.Err() != nil {
				return
			}
			chunk := stream.Current()
			if len(chunk.Choices) == 0 || chunk.Choices[0].Text == "" {
				continue
			}
			fragments++
			if !yield(chunk.Choices[0].Text, nil) {
				return
			}
		}

		err := stream.Err()
		if err == nil || ctx.Err() != nil {
			log.Debug("stream finished", "fragments", fragments)
			return
		}
		log.Error("completion stream failed", "error", err, "fragments", fragments)
		yield("", fmt.Errorf("completion stream: %w", err))
	}
}

func (c *Client) Complete(ctx context.Context, prompt string, sampling llm.SamplingConfig) (string, error) {
	res, err := c.api.Completions.New(ctx, c.params(prompt, sampling), samplingOptions(sampling)...)
	if err != nil {
		c.logger.Trace(ctx).Error("completion failed", "error", err)
		return "", fmt.Errorf("completion: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return res.Choices[0].Text, nil
}

func (c *Client) params(prompt string, s llm.SamplingConfig) openai.CompletionNewParams {
	params := openai.CompletionNewParams{
		Model:            openai.CompletionNewParamsModel(c.model),
		Prompt:           openai.CompletionNewParamsPromptUnion{OfString: openai.String(prompt)},
		Temperature:      openai.Float(float64(s.Temperature)),
		TopP:             openai.Float(float64(s.TopP)),
		PresencePenalty:  openai.Float(float64(s.PresencePenalty)),
		FrequencyPenalty: openai.Float(float64(s.FrequencyPenalty)),
	}
	if s.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(s.MaxTokens))
	}
	if len(s.Stop) > 0 {
		params.Stop = openai.CompletionNewParamsStopUnion{OfStringArray: s.Stop}
	}
	return params
}

// top_k and repeat_penalty are not part of the OpenAI schema but llama.cpp and ollama honor them.
func samplingOptions(s llm.SamplingConfig) []option.RequestOption {
	var opts []option.RequestOption
	if s.TopK > 0 {
		opts = append(opts, option.WithJSONSet("top_k", s.TopK))
	}
	if s.RepeatPenalty > 0 {
		opts = append(opts, option.WithJSONSet("repeat_penalty", s.RepeatPenalty))
	}
	return opts
}
