package worker

import (
	"context"

	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/domain/jobModel"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
)

func (p *Pool) executeJob(job jobModel.Job) {
	ctx, cancel := context.WithTimeout(logger_i.WithTraceID(context.Background(), job.TraceId), config.IngestJobTimeout)
	defer cancel()
	log := p.logger.Trace(ctx).With("jobId", job.Id)
	log.Debug("Processing job")

	job.Status = jobModel.JobStatusRunning
	job.CurrentStep = jobModel.IngestExtracting
	p.saveJobState(ctx, log, job)

	job = p.ingestor.IngestJob(ctx, job)

	//the final state must land even when the ingest used up the deadline
	p.saveJobState(context.WithoutCancel(ctx), log, job)
	log.Info("Job finished", "status", job.Status)
}

func (p *Pool) saveJobState(ctx context.Context, log *logger_i.Logger, job jobModel.Job) {
	if err := p.jobs.JobStore.SaveJob(ctx, job); err != nil {
		log.Error("Failed to update job status", "err", err)
	}
}
