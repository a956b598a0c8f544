package mcpServer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/akolanti/llm-assistant/internal/adapter"
	"github.com/akolanti/llm-assistant/internal/api"
	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/rag"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const Version = "0.1.0"

// Server exposes docstore retrieval as MCP tools.
type Server struct {
	docs   rag.DocumentService
	server *mcp.Server
	logger *logger_i.Logger
}

type QueryInput struct {
	Query         string   `json:"query" jsonschema:"the text to search the indexed documents for"`
	NumResults    int      `json:"num_results,omitempty" jsonschema:"maximum number of documents to return (default 3)"`
	MinSimilarity *float64 `json:"min_similarity,omitempty" jsonschema:"drop results below this cosine similarity"`
	MinRelevance  string   `json:"min_relevance,omitempty" jsonschema:"one of high, medium, low, not_relevant"`
}

type ContextInput struct {
	Prompt        string   `json:"prompt" jsonschema:"the question the context is for"`
	NumContext    int      `json:"num_context,omitempty" jsonschema:"maximum number of documents to include (default 3)"`
	MinSimilarity *float64 `json:"min_similarity,omitempty" jsonschema:"drop documents below this cosine similarity (default 0.1)"`
}

// QueryOutput mirrors the /query response with relevance spelled out, since tool output is
// validated against a schema inferred from these types.
type QueryOutput struct {
	Results    []ResultOutput `json:"results"`
	HasResults bool           `json:"has_results"`
}

type ResultOutput struct {
	Text         string  `json:"text"`
	Source       string  `json:"source"`
	DocId        string  `json:"doc_id"`
	ChunkIndex   int     `json:"chunk_index"`
	FullDocument string  `json:"full_document"`
	Similarity   float64 `json:"similarity"`
	Relevance    string  `json:"relevance"`
	IsRelevant   bool    `json:"is_relevant"`
}

var (
	errNoQuery        = errors.New("query must not be empty")
	errTooManyResults = fmt.Errorf("at most %d results can be requested", config.MaxNumResults)
)

func NewServer(docs rag.DocumentService) *Server {
	s := &Server{
		docs:   docs,
		server: mcp.NewServer(&mcp.Implementation{Name: "llm-assistant-docstore", Version: Version}, nil),
		logger: logger_i.NewLogger("MCP"),
	}
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_documents",
		Description: "Similarity search over the indexed documents, one best passage per source",
	}, s.handleQuery)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_context",
		Description: "Assembled context block of the most relevant full documents for a prompt",
	}, s.handleContext)
	return s
}

// Handler serves the tools over streamable HTTP.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

func (s *Server) handleQuery(ctx context.Context, _ *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, QueryOutput, error) {
	if input.Query == "" {
		return nil, QueryOutput{}, errNoQuery
	}
	numResults := input.NumResults
	if numResults <= 0 {
		numResults = config.DefaultNumResults
	}
	if numResults > config.MaxNumResults {
		return nil, QueryOutput{}, errTooManyResults
	}
	var minRelevance *commonModels.RelevanceLevel
	if input.MinRelevance != "" {
		level, err := commonModels.ParseRelevanceLevel(input.MinRelevance)
		if err != nil {
			return nil, QueryOutput{}, err
		}
		minRelevance = &level
	}

	results, err := s.docs.Query(ctx, input.Query, numResults, input.MinSimilarity, minRelevance)
	if err != nil {
		s.logger.Trace(ctx).Error("query_documents failed", "error", err)
		return nil, QueryOutput{}, err
	}
	return nil, toQueryOutput(results), nil
}

func (s *Server) handleContext(ctx context.Context, _ *mcp.CallToolRequest, input ContextInput) (*mcp.CallToolResult, api.ContextResponse, error) {
	if input.Prompt == "" {
		return nil, api.ContextResponse{}, errNoQuery
	}
	numContext := input.NumContext
	if numContext <= 0 {
		numContext = config.DefaultContextResults
	}
	if numContext > config.MaxNumResults {
		return nil, api.ContextResponse{}, errTooManyResults
	}
	minSimilarity := config.DefaultMinSimilarity
	if input.MinSimilarity != nil {
		minSimilarity = *input.MinSimilarity
	}

	contextText, err := s.docs.GetContext(ctx, input.Prompt, numContext, minSimilarity)
	if err != nil {
		s.logger.Trace(ctx).Error("get_context failed", "error", err)
		return nil, api.ContextResponse{}, err
	}
	return nil, adapter.ToContextResponse(contextText), nil
}

func toQueryOutput(results []commonModels.QueryResult) QueryOutput {
	out := QueryOutput{Results: make([]ResultOutput, 0, len(results)), HasResults: len(results) > 0}
	for _, r := range results {
		out.Results = append(out.Results, ResultOutput{
			Text:         r.Text,
			Source:       r.Source,
			DocId:        r.DocId,
			ChunkIndex:   r.ChunkIndex,
			FullDocument: r.FullDocument,
			Similarity:   r.Similarity,
			Relevance:    r.Relevance.String(),
			IsRelevant:   r.IsRelevant,
		})
	}
	return out
}
