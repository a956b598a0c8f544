package gemini

import (
	"context"
	"testing"

	"github.com/akolanti/llm-assistant/internal/rag/llm"
)

func TestContentConfig(t *testing.T) {
	cfg := contentConfig(llm.ChatSampling(0.7, 2000))
	if *cfg.Temperature != 0.7 || cfg.MaxOutputTokens != 2000 || *cfg.TopK != 10 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.StopSequences) != 3 || cfg.PresencePenalty == nil {
		t.Errorf("stops or penalties missing: %+v", cfg)
	}

	answer := contentConfig(llm.AnswerSampling())
	if answer.PresencePenalty != nil || answer.FrequencyPenalty != nil {
		t.Error("zero penalties should not be sent")
	}
}

func TestNewClient_MissingKey(t *testing.T) {
	if _, err := NewClient(context.Background(), "", "gemini-2.0-flash"); err == nil {
		t.Error("expected error without api key")
	}
}
