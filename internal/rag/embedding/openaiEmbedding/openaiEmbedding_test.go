package openaiEmbedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func embeddingServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":{"message":"boom"}}`))
			return
		}
		var body struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		type item struct {
			Object    string    `json:"object"`
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		}
		// answer in reverse order to check the client re-sorts by index
		data := make([]item, 0, len(body.Input))
		for i := len(body.Input) - 1; i >= 0; i-- {
			data = append(data, item{Object: "embedding", Index: i, Embedding: []float64{float64(i + 1), 0}})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  body.Model,
			"data":   data,
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
}

func TestBatchEmbedding(t *testing.T) {
	srv := embeddingServer(t, http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "", "test-model")
	vectors, err := c.BatchEmbedding(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("BatchEmbedding failed: %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vectors))
	}
	for i, v := range vectors {
		if v[0] != 1 || v[1] != 0 {
			t.Errorf("vector %d not normalized: %v", i, v)
		}
	}
}

func TestGetEmbedding_ServerError(t *testing.T) {
	srv := embeddingServer(t, http.StatusInternalServerError)
	defer srv.Close()

	c := NewClient(srv.URL, "key", "test-model")
	if _, err := c.GetEmbedding(context.Background(), "hello"); err == nil {
		t.Error("expected error from failing server")
	}
}
