package docstoreClient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/akolanti/llm-assistant/internal/adapter"
	"github.com/akolanti/llm-assistant/internal/api"
	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/rag"
	"github.com/akolanti/llm-assistant/internal/rag/retrieval"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
)

// Client is the assistant's view of the docstore: POST /query, then the same assembly the
// docstore uses for /context.
type Client struct {
	baseURL   string
	authToken string
	http      *http.Client
	logger    *logger_i.Logger
}

var _ rag.ContextSource = (*Client)(nil)

func NewClient(baseURL, authToken string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		authToken: authToken,
		http:      httpClient,
		logger:    logger_i.NewLogger("DocstoreClient").With("baseURL", baseURL),
	}
}

func (c *Client) Query(ctx context.Context, req api.QueryRequest) (api.QueryResponse, error) {
	var res api.QueryResponse
	err := c.doRequest(ctx, http.MethodPost, "/query", req, &res)
	return res, err
}

// GetContext asks for the two best documents above the minimum similarity and assembles them.
func (c *Client) GetContext(ctx context.Context, prompt string) (string, error) {
	numResults := config.AssistantContextResults
	minSimilarity := config.DefaultMinSimilarity
	res, err := c.Query(ctx, api.QueryRequest{Query: prompt, NumResults: &numResults, MinSimilarity: &minSimilarity})
	if err != nil {
		return "", err
	}
	return retrieval.Assemble(uniqueSources(adapter.FromQueryResponse(res))), nil
}

func (c *Client) Health(ctx context.Context) error {
	var res api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, &res); err != nil {
		return err
	}
	if res.Status != "healthy" {
		return fmt.Errorf("docstore is %s: %s", res.Status, res.Message)
	}
	return nil
}

// uniqueSources keeps the first result per source. The docstore already dedups, this guards
// against an older docstore that does not.
func uniqueSources(results []commonModels.QueryResult) []commonModels.QueryResult {
	seen := make(map[string]bool, len(results))
	out := results[:0]
	for _, r := range results {
		if seen[r.Source] {
			continue
		}
		seen[r.Source] = true
		out = append(out, r)
	}
	return out
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, out any) error {
	log := c.logger.Trace(ctx)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if trace := logger_i.TraceID(ctx); trace != "" {
		req.Header.Set(config.TRACE_ID_HEADER, trace)
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("docstore request failed", "path", path, "error", err)
		return fmt.Errorf("%w: docstore %s: %w", rag.ErrRetrieval, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr api.ErrorResponse
		json.NewDecoder(resp.Body).Decode(&apiErr)
		log.Error("docstore returned an error", "path", path, "status", resp.StatusCode, "detail", apiErr.Detail)
		return fmt.Errorf("%w: docstore %s returned %d: %s", rag.ErrRetrieval, path, resp.StatusCode, apiErr.Detail)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode docstore %s response: %w", rag.ErrRetrieval, path, err)
	}
	return nil
}
