package rag

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/metrics"
	"github.com/akolanti/llm-assistant/internal/rag/llm"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
)

// ContextSource returns assembled context for a prompt, "" when nothing relevant exists.
type ContextSource interface {
	GetContext(ctx context.Context, prompt string) (string, error)
}

type ChatService interface {
	StreamChat(ctx context.Context, messages []commonModels.ConversationMessage, temperature float32, maxTokens int) iter.Seq2[string, error]
	Answer(ctx context.Context, prompt string) (string, error)
	Model() string
}

type chatService struct {
	provider llm.Provider
	contexts ContextSource
	system   string
	logger   *logger_i.Logger
}

func NewChatService(provider llm.Provider, contexts ContextSource) ChatService {
	return &chatService{
		provider: provider,
		contexts: contexts,
		system:   config.SystemPrompt,
		logger:   logger_i.NewLogger("Chat Service"),
	}
}

func (s *chatService) Model() string { return s.provider.Model() }

// StreamChat yields completion fragments in generation order. A provider failure ends the
// sequence with exactly one ErrGeneration; cancellation by the caller ends it silently.
func (s *chatService) StreamChat(ctx context.Context, messages []commonModels.ConversationMessage, temperature float32, maxTokens int) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		log := s.logger.Trace(ctx)
		parent := ctx
		ctx, cancel := context.WithTimeout(ctx, config.GenerationTimeout)
		defer cancel()

		contextText := s.retrieveContext(ctx, log, lastUserMessage(messages))
		prompt := llm.BuildChatPrompt(s.system, contextText, messages)

		start := time.Now()
		defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

		fragments := 0
		for text, err := range s.provider.Stream(ctx, prompt, llm.ChatSampling(temperature, maxTokens)) {
			if err != nil {
				log.Error("generation failed", "stage", "stream", "fragments", fragments, "error", err)
				yield("", fmt.Errorf("%w: %w", ErrGeneration, err))
				return
			}
			fragments++
			if !yield(text, nil) {
				return
			}
		}

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && parent.Err() == nil {
			log.Error("generation failed", "stage", "stream", "fragments", fragments, "error", ctx.Err())
			yield("", fmt.Errorf("%w: timed out after %s", ErrGeneration, config.GenerationTimeout))
			return
		}
		log.Debug("stream complete", "fragments", fragments)
	}
}

func (s *chatService) Answer(ctx context.Context, prompt string) (string, error) {
	log := s.logger.Trace(ctx)
	ctx, cancel := context.WithTimeout(ctx, config.GenerationTimeout)
	defer cancel()

	contextText := s.retrieveContext(ctx, log, prompt)

	start := time.Now()
	answer, err := s.provider.Complete(ctx, llm.BuildAnswerPrompt(s.system, contextText, prompt), llm.AnswerSampling())
	metrics.CaptureExecutionMetrics("llm_generation", time.Since(start))
	if err != nil {
		log.Error("generation failed", "stage", "complete", "error", err)
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	answer = strings.TrimSpace(answer)
	if contextText == "" {
		//the refusal was pre-filled into the prompt, the model only continues it
		answer = strings.TrimSpace(llm.NoContextAnswer + " " + answer)
	}
	return answer, nil
}

// retrieveContext never fails the request: without context the model is told so by the prompt.
func (s *chatService) retrieveContext(ctx context.Context, log *logger_i.Logger, query string) string {
	if s.contexts == nil || strings.TrimSpace(query) == "" {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, config.RetrievalTimeout)
	defer cancel()

	start := time.Now()
	contextText, err := s.contexts.GetContext(ctx, query)
	metrics.CaptureExecutionMetrics("context_retrieval", time.Since(start))
	if err != nil {
		log.Error("context retrieval failed, continuing without context", "error", err)
		return ""
	}
	if contextText == "" {
		log.Info("No relevant context found")
	} else {
		log.Info("Context found and will be used for response")
	}
	return contextText
}

func lastUserMessage(messages []commonModels.ConversationMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == commonModels.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
