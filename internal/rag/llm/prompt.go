package llm

import (
	"strings"

	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
)

var ChatStopSequences = []string{"User:", "Context:", "System:"}

var AnswerStopSequences = []string{"Question:", "Context:", "System:"}

// BuildChatPrompt renders the system prompt, optional context and the conversation as a
// plain text transcript ending in an open "Assistant:" turn. Roles other than user and
// assistant are dropped.
func BuildChatPrompt(system, context string, history []commonModels.ConversationMessage) string {
	parts := []string{"System: " + system}
	if context != "" {
		parts = append(parts, "\nRelevant Context:\n"+context+"\n")
	}
	for _, msg := range history {
		switch msg.Role {
		case commonModels.RoleUser:
			parts = append(parts, "User: "+msg.Content)
		case commonModels.RoleAssistant:
			parts = append(parts, "Assistant: "+msg.Content)
		}
	}
	return strings.Join(parts, "\n") + "\nAssistant:"
}

// NoContextAnswer is pre-filled into the answer prompt when retrieval found nothing.
const NoContextAnswer = "I don't have any relevant information in my context to answer this question."

// BuildAnswerPrompt frames a single question. Without context the answer slot is pre-filled
// so the model continues from a refusal instead of guessing.
func BuildAnswerPrompt(system, context, question string) string {
	if context == "" {
		return system + "\n\nQuestion: " + question + "\nAnswer: " + NoContextAnswer
	}
	return system + "\n\nContext:\n" + context + "\n\nQuestion: " + question + "\nAnswer (based strictly on the above context):"
}
