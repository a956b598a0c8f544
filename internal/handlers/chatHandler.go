package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/akolanti/llm-assistant/internal/api"
	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/metrics"
	"github.com/akolanti/llm-assistant/internal/rag"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
)

const modelNotLoaded = "LLM model not loaded. Please check server logs for details."

// ChatHandler serves the assistant routes. chat is nil when the model could not be reached.
type ChatHandler struct {
	chat   rag.ChatService
	logger *logger_i.Logger
}

func NewChatHandler(chat rag.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger_i.NewLogger("ChatHandler")}
}

func (h *ChatHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.RootResponse{Message: "Welcome to LLM Assistant API"})
}

func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	loaded := h.chat != nil
	res := api.HealthResponse{Status: "healthy", ModelLoaded: &loaded}
	if loaded {
		res.Model = h.chat.Model()
	}
	writeJsonResponse(w, http.StatusOK, res)
}

// StreamChat answers with server sent events, one `data: {"text": ...}` per fragment and a
// single `data: {"error": ...}` if generation fails midway.
func (h *ChatHandler) StreamChat(w http.ResponseWriter, r *http.Request) {
	if h.chat == nil {
		WriteErrorResponse(w, http.StatusServiceUnavailable, "", modelNotLoaded)
		return
	}
	log := h.logger.Trace(r.Context())

	var req api.ChatRequest
	if err := decodeJSON(r, &req); err != nil || len(req.Messages) == 0 {
		log.Warn("Bad chat request", "err", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "messages are required")
		return
	}
	temperature := config.DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := config.DefaultMaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}
	if temperature < 0 || temperature > 2 || maxTokens <= 0 {
		WriteErrorResponse(w, http.StatusBadRequest, "", "temperature must be in [0, 2] and max_tokens positive")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	rc := http.NewResponseController(w)

	fragments := 0
	for text, err := range h.chat.StreamChat(r.Context(), req.Messages, temperature, maxTokens) {
		if err != nil {
			writeEvent(w, rc, api.StreamError{Error: err.Error()})
			break
		}
		if !writeEvent(w, rc, api.StreamText{Text: text}) {
			log.Info("client went away, stopping generation", "fragments", fragments)
			break
		}
		fragments++
		metrics.IncrementStreamedFragments()
	}
	log.Debug("stream closed", "fragments", fragments)
}

func writeEvent(w http.ResponseWriter, rc *http.ResponseController, event any) bool {
	payload, err := json.Marshal(event)
	if err != nil {
		return false
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return false
	}
	return rc.Flush() == nil
}

func (h *ChatHandler) Prompt(w http.ResponseWriter, r *http.Request) {
	if h.chat == nil {
		WriteErrorResponse(w, http.StatusServiceUnavailable, "", modelNotLoaded)
		return
	}
	var req api.PromptRequest
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "prompt is required")
		return
	}
	answer, err := h.chat.Answer(r.Context(), req.Prompt)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, api.PromptResponse{Response: answer})
}
