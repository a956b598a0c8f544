package api

import (
	"time"

	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type ErrorResponse struct {
	Detail  string `json:"detail" example:"Document service not initialized"`
	Code    int    `json:"code" example:"503"`
	Id      string `json:"id,omitempty"`
	TraceId string `json:"trace_id,omitempty"`
}

// docstore -------------------

type DocumentResponse struct {
	Id       string `json:"id" example:"6a0c1f0e-8d0b-4a36-9c4e-2f3b1f6d2a10"`
	Filename string `json:"filename" example:"cats.txt"`
}

type QueryRequest struct {
	Query         string                       `json:"query" validate:"required" example:"What are cats?"`
	NumResults    *int                         `json:"num_results,omitempty" example:"3" maximum:"50"`
	MinRelevance  *commonModels.RelevanceLevel `json:"min_relevance,omitempty" swaggertype:"string" enums:"high,medium,low,not_relevant"`
	MinSimilarity *float64                     `json:"min_similarity,omitempty" example:"0.1"`
}

type DocumentMetadata struct {
	Source       string                      `json:"source" example:"cats.txt"`
	FullDocument string                      `json:"full_document"`
	Similarity   float64                     `json:"similarity" example:"0.54"`
	Relevance    commonModels.RelevanceLevel `json:"relevance" swaggertype:"string" example:"high"`
	DocId        string                      `json:"doc_id"`
	ChunkIndex   int                         `json:"chunk_index"`
}

type QueryResult struct {
	Text       string           `json:"text"`
	Metadata   DocumentMetadata `json:"metadata"`
	IsRelevant bool             `json:"is_relevant"`
}

type QueryResponse struct {
	Results    []QueryResult `json:"results"`
	HasResults bool          `json:"has_results"`
}

type ContextRequest struct {
	Prompt        string   `json:"prompt" validate:"required" example:"What are cats?"`
	NumContext    *int     `json:"num_context,omitempty" example:"3" maximum:"50"`
	MinSimilarity *float64 `json:"min_similarity,omitempty" example:"0.1"`
}

type ContextResponse struct {
	Context    string `json:"context"`
	HasContext bool   `json:"has_context"`
}

type DocumentSummary struct {
	Id          string    `json:"id"`
	Source      string    `json:"source"`
	ChunkCount  int       `json:"chunk_count"`
	ContentType string    `json:"content_type"`
	IngestedAt  time.Time `json:"ingested_at"`
	Text        string    `json:"text"`
}

type DocumentListResponse struct {
	TotalDocuments int               `json:"total_documents"`
	Documents      []DocumentSummary `json:"documents"`
}

type StatsResponse struct {
	Status        string `json:"status" example:"ok"`
	Collection    string `json:"collection_name"`
	Backend       string `json:"backend" example:"qdrant"`
	DocumentCount int    `json:"document_count"`
	ChunkCount    int    `json:"chunk_count"`
}

type HealthResponse struct {
	Status      string `json:"status" example:"healthy"`
	Message     string `json:"message,omitempty"`
	ModelLoaded *bool  `json:"model_loaded,omitempty"`
	Model       string `json:"model,omitempty"`
}

// async ingestion -------------

type JobResponse struct {
	Id         string            `json:"id" example:"job_cz109"`
	Status     string            `json:"status" example:"COMPLETE"`
	Step       string            `json:"current_step"`
	SourceName string            `json:"source_name"`
	DocId      string            `json:"doc_id,omitempty"`
	Error      *JobOutgoingError `json:"error,omitempty"`
	StartTime  time.Time         `json:"start_time"`
	EndTime    time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// assistant ------------------

type RootResponse struct {
	Message string `json:"message" example:"Welcome to LLM Assistant API"`
}

type ChatRequest struct {
	Messages    []commonModels.ConversationMessage `json:"messages" validate:"required"`
	Temperature *float32                           `json:"temperature,omitempty" example:"0.7"`
	MaxTokens   *int                               `json:"max_tokens,omitempty" example:"2000"`
}

type StreamText struct {
	Text string `json:"text"`
}

type StreamError struct {
	Error string `json:"error"`
}

type PromptRequest struct {
	Prompt string `json:"prompt" validate:"required" example:"What are cats?"`
}

type PromptResponse struct {
	Response string `json:"response"`
}
