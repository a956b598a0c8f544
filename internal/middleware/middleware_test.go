package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"golang.org/x/time/rate"
)

func okHandler(gotTrace *string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gotTrace != nil {
			*gotTrace = logger_i.TraceID(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestWrap_Trace(t *testing.T) {
	m := New(&config.Settings{})

	tests := []struct {
		name   string
		header string
	}{
		{"propagates caller trace", "trace-123"},
		{"generates trace when absent", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.header != "" {
				req.Header.Set(config.TRACE_ID_HEADER, tt.header)
			}
			w := httptest.NewRecorder()
			m.Wrap(okHandler(&got))(w, req)

			if got == "" {
				t.Fatal("handler saw no trace id")
			}
			if tt.header != "" && got != tt.header {
				t.Errorf("trace = %s, want %s", got, tt.header)
			}
			if w.Header().Get(config.TRACE_ID_HEADER) != got {
				t.Error("trace id not echoed in the response")
			}
		})
	}
}

func TestWrap_Auth(t *testing.T) {
	m := New(&config.Settings{AuthToken: "secret"})

	tests := []struct {
		name     string
		header   string
		public   bool
		wantCode int
	}{
		{"valid token", "Bearer secret", false, http.StatusOK},
		{"wrong token", "Bearer nope", false, http.StatusUnauthorized},
		{"missing bearer prefix", "secret", false, http.StatusUnauthorized},
		{"no header", "", false, http.StatusUnauthorized},
		{"public route", "", true, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/query", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			if tt.public {
				m.WrapPublic(okHandler(nil))(w, req)
			} else {
				m.Wrap(okHandler(nil))(w, req)
			}
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestWrap_NoTokenBypassesAuth(t *testing.T) {
	m := New(&config.Settings{})
	w := httptest.NewRecorder()
	m.Wrap(okHandler(nil))(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d without configured token", w.Code)
	}
}

func TestWrap_RateLimit(t *testing.T) {
	m := New(&config.Settings{RateLimiting: true})
	m.limiter = NewIPRateLimiter(rate.Limit(0.001), 2)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		m.Wrap(okHandler(nil))(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("status sequence = %v", codes)
	}

	other := httptest.NewRequest(http.MethodGet, "/stats", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	m.Wrap(okHandler(nil))(w, other)
	if w.Code != http.StatusOK {
		t.Error("limit leaked across IPs")
	}
}
