package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/akolanti/llm-assistant/internal/adapter"
	"github.com/akolanti/llm-assistant/internal/adapter/utils"
	"github.com/akolanti/llm-assistant/internal/config"
)

// PostIngestHandler queues a document for background ingestion.
// @Summary      Upload a document for async ingestion
// @Description  Receives a file via multipart/form-data, saves it to a temporary directory, and queues an ingestion job.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        document_name  formData  string  true  "The source name the document is indexed under"
// @Param        document       formData  file    true  "The TXT, PDF or DOCX file to upload"
// @Success      202  {object}  api.InitJobResponse "Accepted - returns job id"
// @Failure      400  {object}  api.ErrorResponse "Bad Request - Missing fields or file too large"
// @Failure      500  {object}  api.ErrorResponse "Internal Server Error - Storage or Write Error"
// @Router       /ingest [post]
func (h *DocHandler) PostIngestHandler(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	if h.jobs == nil {
		WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Async ingestion is disabled")
		return
	}
	log := h.logger.Trace(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}
	docName := r.FormValue("document_name")
	if docName == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "document_name is required")
		return
	}
	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, docName, "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	tempFilePath, err := h.saveUpload(fileReader, fileMetadata.Filename)
	if err != nil {
		log.Error("Couldn't store upload", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, docName, "Storage error")
		return
	}

	job, err := h.jobs.Submit(r.Context(), docName, tempFilePath)
	if err != nil {
		os.Remove(tempFilePath)
		log.Error("Couldn't queue ingest job", "err", err)
		WriteErrorResponse(w, http.StatusServiceUnavailable, docName, "Ingest queue unavailable")
		return
	}
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(job.Id))
}

// GetStatusHandler godoc
// @Summary      Get ingest job status
// @Description  Retrieves the current status of a specific job using its ID.
// @Tags         Ingestion
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse   "The current status of the job"
// @Failure      404  {object}  api.ErrorResponse "Job not found"
// @Router       /status/{id} [get]
func (h *DocHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	idString := utils.GetChiURLParam(r, "id")
	if h.jobs == nil {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}
	result, isFound := h.jobs.Status(r.Context(), idString)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

// addBinary stages formats that need a file on disk for text extraction.
func (h *DocHandler) addBinary(r *http.Request, filename string, raw []byte) (string, error) {
	targetDir, err := getTargetDirectory(h.uploadDir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(targetDir, fmt.Sprintf("%d-%s", time.Now().UnixNano(), filename))
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return "", err
	}
	defer os.Remove(path)
	return h.docs.AddDocumentFile(r.Context(), filename, path)
}

func (h *DocHandler) saveUpload(src io.Reader, originalName string) (string, error) {
	targetDir, err := getTargetDirectory(h.uploadDir)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(originalName))
	tempFilePath := filepath.Join(targetDir, filename)
	dst, err := os.Create(tempFilePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(tempFilePath)
		return "", err
	}
	return tempFilePath, nil
}
