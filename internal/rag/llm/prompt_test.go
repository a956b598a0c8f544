package llm

import (
	"strings"
	"testing"

	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/stretchr/testify/assert"
)

func TestBuildChatPrompt(t *testing.T) {
	history := []commonModels.ConversationMessage{
		{Role: "user", Content: "What are cats?"},
		{Role: "tool", Content: "ignored"},
		{Role: "assistant", Content: "Mammals."},
		{Role: "user", Content: "And dogs?"},
	}

	got := BuildChatPrompt("Be brief.", "Source: A\n\nCats are mammals.", history)

	want := "System: Be brief.\n" +
		"\nRelevant Context:\nSource: A\n\nCats are mammals.\n\n" +
		"User: What are cats?\n" +
		"Assistant: Mammals.\n" +
		"User: And dogs?\n" +
		"Assistant:"
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "ignored")
}

func TestBuildChatPrompt_NoContext(t *testing.T) {
	got := BuildChatPrompt("S", "", []commonModels.ConversationMessage{{Role: "user", Content: "hi"}})
	assert.Equal(t, "System: S\nUser: hi\nAssistant:", got)
	assert.NotContains(t, got, "Relevant Context")
}

func TestBuildChatPrompt_EndsWithOpenAssistantTurn(t *testing.T) {
	got := BuildChatPrompt("S", "ctx", nil)
	assert.True(t, strings.HasSuffix(got, "Assistant:"))
}

func TestBuildAnswerPrompt(t *testing.T) {
	got := BuildAnswerPrompt("S", "Source: A\n\nCats.", "What are cats?")
	assert.Equal(t, "S\n\nContext:\nSource: A\n\nCats.\n\nQuestion: What are cats?\nAnswer (based strictly on the above context):", got)

	noCtx := BuildAnswerPrompt("S", "", "Q?")
	assert.NotContains(t, noCtx, "Context:")
	assert.True(t, strings.HasSuffix(noCtx, NoContextAnswer))
}

func TestSamplingPresets(t *testing.T) {
	chat := ChatSampling(0.7, 2000)
	assert.Equal(t, float32(0.7), chat.Temperature)
	assert.Equal(t, 2000, chat.MaxTokens)
	assert.Equal(t, 10, chat.TopK)
	assert.Equal(t, ChatStopSequences, chat.Stop)

	answer := AnswerSampling()
	assert.Equal(t, 150, answer.MaxTokens)
	assert.Equal(t, AnswerStopSequences, answer.Stop)
}
