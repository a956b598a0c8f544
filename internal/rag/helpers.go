package rag

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/domain/jobModel"
	"github.com/akolanti/llm-assistant/internal/metrics"
	"github.com/akolanti/llm-assistant/internal/rag/ingest"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
)

func (s *documentService) executeEmbeddingStep(ctx context.Context, log *logger_i.Logger, chunks []commonModels.DocChunk) ([][]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	vectors, err := ingest.BatchEmbed(ctx, chunks, s.embedder)
	if err != nil {
		log.Error("ingest failed", "stage", "embedding", "error", err)
	}
	return vectors, err
}

func (s *documentService) executeUpsertStep(ctx context.Context, log *logger_i.Logger, chunks []commonModels.DocChunk, vectors [][]float32) error {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_upsert", time.Since(start)) }()

	if err := s.index.Upsert(ctx, chunks, vectors); err != nil {
		log.Error("ingest failed", "stage", "upsert", "error", err)
		metrics.AddIngestedChunks("failed", len(chunks))
		return err
	}
	metrics.AddIngestedChunks("stored", len(chunks))
	return nil
}

// release runs even when the ingest context is already done, otherwise the reservation
// outlives the failed ingest.
func (s *documentService) release(ctx context.Context, log *logger_i.Logger, source string) {
	if err := s.registry.Release(context.WithoutCancel(ctx), source); err != nil {
		log.Error("could not release registry reservation", "error", err)
	}
}

func (s *documentService) backfillRegistry(ctx context.Context, log *logger_i.Logger, first commonModels.DocChunk, docType commonModels.DocType) {
	if _, found, err := s.registry.Get(ctx, first.Source); err != nil || found {
		return
	}
	doc := commonModels.Document{Id: first.DocId, Source: first.Source, ContentType: docType, LastIngestTimestamp: time.Now().UTC()}
	if err := s.registry.Save(ctx, doc); err != nil {
		log.Warn("could not backfill registry", "error", err)
	}
}

// IngestJob runs an uploaded file through AddDocumentFile on behalf of a worker and removes
// the temporary upload afterwards.
func (s *documentService) IngestJob(ctx context.Context, job jobModel.Job) jobModel.Job {
	log := s.logger.Trace(ctx).With("jobId", job.Id, "source", job.JobPayload.SourceName)
	start := time.Now()
	defer os.Remove(job.JobPayload.FilePath)

	job.Status = jobModel.JobStatusRunning
	job.CurrentStep = jobModel.IngestProcessing
	log.Debug("IngestJob", "Current Status", job.CurrentStep)

	docId, err := s.AddDocumentFile(ctx, job.JobPayload.SourceName, job.JobPayload.FilePath)
	job.EndTime = time.Now().UTC()
	if err != nil {
		job = s.jobError(job, err, log)
	} else {
		job.JobPayload.DocId = docId
		job.Status = jobModel.JobStatusComplete
		job.CurrentStep = jobModel.Complete
	}
	metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	return job
}

func (s *documentService) jobError(job jobModel.Job, err error, log *logger_i.Logger) jobModel.Job {
	log.Error("INGESTION_FAILURE", "error", err)

	job.Error = jobModel.JobError{Code: http.StatusInternalServerError, Message: "Internal Server Error"}
	switch {
	case errors.Is(err, ErrDecode):
		job.Error = jobModel.JobError{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, ErrRetrieval):
		job.Error = jobModel.JobError{Code: http.StatusBadGateway, Message: "vector index unavailable"}
	}
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	return job
}
