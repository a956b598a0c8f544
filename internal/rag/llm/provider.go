package llm

import (
	"context"
	"iter"

	"github.com/akolanti/llm-assistant/internal/config"
)

// Provider is a completion generator. Stream yields text fragments in order and at most one
// terminal error; it stops early when ctx is done. The sequence can only be ranged over once.
type Provider interface {
	Stream(ctx context.Context, prompt string, sampling SamplingConfig) iter.Seq2[string, error]
	Complete(ctx context.Context, prompt string, sampling SamplingConfig) (string, error)
	Model() string
}

type SamplingConfig struct {
	Temperature      float32
	TopP             float32
	TopK             int
	RepeatPenalty    float32
	PresencePenalty  float32
	FrequencyPenalty float32
	MaxTokens        int
	Stop             []string
}

// ChatSampling is used for conversational turns.
func ChatSampling(temperature float32, maxTokens int) SamplingConfig {
	return SamplingConfig{
		Temperature:      temperature,
		TopP:             config.ChatTopP,
		TopK:             config.ChatTopK,
		RepeatPenalty:    config.ChatRepeatPenalty,
		PresencePenalty:  config.ChatPresencePenalty,
		FrequencyPenalty: config.ChatFrequencyPenalty,
		MaxTokens:        maxTokens,
		Stop:             ChatStopSequences,
	}
}

// AnswerSampling is near deterministic and short, for single question prompts.
func AnswerSampling() SamplingConfig {
	return SamplingConfig{
		Temperature:   config.AnswerTemperature,
		TopP:          config.AnswerTopP,
		TopK:          config.ChatTopK,
		RepeatPenalty: config.ChatRepeatPenalty,
		MaxTokens:     config.AnswerMaxTokens,
		Stop:          AnswerStopSequences,
	}
}
