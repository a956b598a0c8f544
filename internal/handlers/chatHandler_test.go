package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"iter"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akolanti/llm-assistant/internal/api"
	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/rag"
)

func streamOf(parts []string, tail error) func(context.Context, []commonModels.ConversationMessage, float32, int) iter.Seq2[string, error] {
	return func(ctx context.Context, m []commonModels.ConversationMessage, temp float32, max int) iter.Seq2[string, error] {
		return func(yield func(string, error) bool) {
			for _, p := range parts {
				if !yield(p, nil) {
					return
				}
			}
			if tail != nil {
				yield("", tail)
			}
		}
	}
}

func sseEvents(t *testing.T, body string) []string {
	t.Helper()
	var events []string
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		if line, ok := strings.CutPrefix(sc.Text(), "data: "); ok {
			events = append(events, line)
		}
	}
	return events
}

func TestChatHandler_StreamChat(t *testing.T) {
	tests := []struct {
		name       string
		parts      []string
		tail       error
		wantEvents []string
	}{
		{
			name:       "fragments in order",
			parts:      []string{"Cats ", "are ", "mammals."},
			wantEvents: []string{`{"text":"Cats "}`, `{"text":"are "}`, `{"text":"mammals."}`},
		},
		{
			name:       "terminal error event",
			parts:      []string{"Cats "},
			tail:       errors.Join(rag.ErrGeneration, errors.New("model crashed")),
			wantEvents: []string{`{"text":"Cats "}`, `{"error":"generation failed\nmodel crashed"}`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewChatHandler(&mockChat{OnStream: streamOf(tt.parts, tt.tail)})
			w := httptest.NewRecorder()
			body := `{"messages":[{"role":"user","content":"What are cats?"}]}`
			h.StreamChat(w, httptest.NewRequest(http.MethodPost, "/chat/stream", strings.NewReader(body)))

			if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "text/event-stream" {
				t.Fatalf("status %d content type %q", w.Code, w.Header().Get("Content-Type"))
			}
			events := sseEvents(t, w.Body.String())
			if len(events) != len(tt.wantEvents) {
				t.Fatalf("events = %q, want %q", events, tt.wantEvents)
			}
			for i := range events {
				if events[i] != tt.wantEvents[i] {
					t.Errorf("event %d = %s, want %s", i, events[i], tt.wantEvents[i])
				}
			}
		})
	}
}

func TestChatHandler_StreamChatDefaults(t *testing.T) {
	var gotTemp float32
	var gotMax int
	chat := &mockChat{OnStream: func(ctx context.Context, m []commonModels.ConversationMessage, temp float32, max int) iter.Seq2[string, error] {
		gotTemp, gotMax = temp, max
		return streamOf(nil, nil)(ctx, m, temp, max)
	}}
	h := NewChatHandler(chat)

	w := httptest.NewRecorder()
	h.StreamChat(w, httptest.NewRequest(http.MethodPost, "/chat/stream", strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`)))
	if gotTemp != 0.7 || gotMax != 2000 {
		t.Errorf("defaults = %v %d", gotTemp, gotMax)
	}
}

func TestChatHandler_BadRequests(t *testing.T) {
	h := NewChatHandler(&mockChat{OnStream: streamOf(nil, nil)})
	for _, body := range []string{
		`{"messages":[]}`,
		`not json`,
		`{"messages":[{"role":"user","content":"hi"}],"temperature":3}`,
		`{"messages":[{"role":"user","content":"hi"}],"max_tokens":0}`,
	} {
		w := httptest.NewRecorder()
		h.StreamChat(w, httptest.NewRequest(http.MethodPost, "/chat/stream", strings.NewReader(body)))
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d", body, w.Code)
		}
	}
}

func TestChatHandler_NotLoaded(t *testing.T) {
	h := NewChatHandler(nil)

	w := httptest.NewRecorder()
	h.StreamChat(w, httptest.NewRequest(http.MethodPost, "/chat/stream", strings.NewReader(`{}`)))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("stream status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	var health api.HealthResponse
	json.NewDecoder(w.Body).Decode(&health)
	if health.ModelLoaded == nil || *health.ModelLoaded {
		t.Errorf("health = %+v", health)
	}
}

func TestChatHandler_RootAndPrompt(t *testing.T) {
	chat := &mockChat{OnAnswer: func(ctx context.Context, prompt string) (string, error) {
		if prompt == "fail" {
			return "", errors.Join(rag.ErrGeneration, errors.New("oom"))
		}
		return "Cats are mammals.", nil
	}}
	h := NewChatHandler(chat)

	w := httptest.NewRecorder()
	h.Root(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(w.Body.String(), "Welcome to LLM Assistant API") {
		t.Errorf("root body = %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	h.Prompt(w, httptest.NewRequest(http.MethodPost, "/prompt", strings.NewReader(`{"prompt":"What are cats?"}`)))
	var res api.PromptResponse
	json.NewDecoder(w.Body).Decode(&res)
	if w.Code != http.StatusOK || res.Response != "Cats are mammals." {
		t.Errorf("prompt %d %+v", w.Code, res)
	}

	w = httptest.NewRecorder()
	h.Prompt(w, httptest.NewRequest(http.MethodPost, "/prompt", strings.NewReader(`{"prompt":"fail"}`)))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("failed prompt status = %d", w.Code)
	}
}
