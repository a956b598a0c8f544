package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/akolanti/llm-assistant/internal/adapter"
	"github.com/akolanti/llm-assistant/internal/api"
	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/job"
	"github.com/akolanti/llm-assistant/internal/rag"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
)

const docServiceDown = "Document service not initialized"

// DocHandler serves the docstore routes. docs is nil when the index or the embedder could
// not be reached at startup, and jobs is nil when async ingestion is disabled.
type DocHandler struct {
	docs      rag.DocumentService
	jobs      *job.Service
	uploadDir string
	logger    *logger_i.Logger
}

func NewDocHandler(docs rag.DocumentService, jobs *job.Service, uploadDir string) *DocHandler {
	return &DocHandler{
		docs:      docs,
		jobs:      jobs,
		uploadDir: uploadDir,
		logger:    logger_i.NewLogger("DocHandler"),
	}
}

func (h *DocHandler) available(w http.ResponseWriter) bool {
	if h.docs == nil {
		WriteErrorResponse(w, http.StatusServiceUnavailable, "", docServiceDown)
		return false
	}
	return true
}

// UploadDocument godoc
// @Summary      Upload and index a document
// @Description  Reads the multipart file, chunks, embeds and indexes it. Uploading the same file name again returns the existing id.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "UTF-8 text, PDF or DOCX file"
// @Success      200  {object}  api.DocumentResponse
// @Failure      400  {object}  api.ErrorResponse "Not decodable as text"
// @Failure      502  {object}  api.ErrorResponse "Vector index unavailable"
// @Failure      503  {object}  api.ErrorResponse "Document service not initialized"
// @Router       /documents/ [post]
func (h *DocHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}
	fileReader, fileMetadata, err := r.FormFile("file")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	raw, err := io.ReadAll(fileReader)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not read file")
		return
	}
	filename := filepath.Base(fileMetadata.Filename)

	var docId string
	if ext := strings.ToLower(filepath.Ext(filename)); ext == ".pdf" || ext == ".docx" || ext == ".odt" || ext == ".rtf" {
		docId, err = h.addBinary(r, filename, raw)
	} else {
		docId, err = h.docs.AddDocument(r.Context(), filename, raw)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, api.DocumentResponse{Id: docId, Filename: filename})
}

// Query godoc
// @Summary      Similarity search
// @Description  Returns at most num_results passages, one per source, best first.
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest  true  "Query and optional filters"
// @Success      200      {object}  api.QueryResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      502      {object}  api.ErrorResponse
// @Router       /query [post]
func (h *DocHandler) Query(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	var req api.QueryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Trace(r.Context()).Warn("Bad query request", "err", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "query is required")
		return
	}
	numResults := config.DefaultNumResults
	if req.NumResults != nil {
		numResults = *req.NumResults
	}
	if numResults > config.MaxNumResults {
		WriteErrorResponse(w, http.StatusBadRequest, "", fmt.Sprintf("num_results must be at most %d", config.MaxNumResults))
		return
	}

	results, err := h.docs.Query(r.Context(), req.Query, numResults, req.MinSimilarity, req.MinRelevance)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToQueryResponse(results))
}

// Context godoc
// @Summary      Assembled context for a prompt
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        request  body      api.ContextRequest  true  "Prompt"
// @Success      200      {object}  api.ContextResponse
// @Failure      400      {object}  api.ErrorResponse
// @Router       /context [post]
func (h *DocHandler) Context(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	var req api.ContextRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "prompt is required")
		return
	}
	numContext := config.DefaultContextResults
	if req.NumContext != nil {
		numContext = *req.NumContext
	}
	if numContext > config.MaxNumResults {
		WriteErrorResponse(w, http.StatusBadRequest, "", fmt.Sprintf("num_context must be at most %d", config.MaxNumResults))
		return
	}
	minSimilarity := config.DefaultMinSimilarity
	if req.MinSimilarity != nil {
		minSimilarity = *req.MinSimilarity
	}

	contextText, err := h.docs.GetContext(r.Context(), req.Prompt, numContext, minSimilarity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToContextResponse(contextText))
}

// ListDocuments godoc
// @Summary      List indexed documents
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  api.DocumentListResponse
// @Router       /documents [get]
func (h *DocHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	docs, err := h.docs.ListDocuments(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentList(docs))
}

// Stats godoc
// @Summary      Collection statistics
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  api.StatsResponse
// @Router       /stats [get]
func (h *DocHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	stats, err := h.docs.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToStatsResponse(stats))
}

// Health godoc
// @Summary      Liveness
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func (h *DocHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.docs == nil {
		writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "unhealthy", Message: docServiceDown})
		return
	}
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "healthy"})
}
