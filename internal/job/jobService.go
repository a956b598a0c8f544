package job

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/domain/jobModel"
	"github.com/akolanti/llm-assistant/internal/metrics"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"github.com/google/uuid"
)

var ErrQueueFull = errors.New("ingest queue is full")

// Service queues ingestion jobs for the worker pool and answers status lookups.
type Service struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
	logger            *logger_i.Logger
}

type ServiceConfig struct {
	JobChannel        chan jobModel.Job
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		DispatcherChannel: cfg.DispatcherChannel,
		JobStore:          cfg.JobStore,
		logger:            logger_i.NewLogger("JobService"),
	}
}

// Submit records a QUEUED job for the uploaded file and hands it to the workers.
func (s *Service) Submit(ctx context.Context, sourceName, filePath string) (jobModel.Job, error) {
	job := jobModel.Job{
		Id:          uuid.NewString(),
		TraceId:     logger_i.TraceID(ctx),
		JobType:     jobModel.JobTypeIngest,
		CreatedTime: time.Now().UTC(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.IngestInit,
		JobPayload:  jobModel.JobPayload{SourceName: sourceName, FilePath: filePath},
	}
	log := s.logger.Trace(ctx).With("jobId", job.Id, "source", sourceName)

	if err := s.JobStore.SaveJob(ctx, job); err != nil {
		log.Error("Failed to save queued job", "err", err)
		return job, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, config.QueueWaitTimeout)
	defer cancel()
	select {
	case s.JobChannel <- job:
	case <-waitCtx.Done():
		s.JobStore.DeleteJob(context.WithoutCancel(ctx), job.Id)
		return job, ErrQueueFull
	}
	metrics.IncrementJobsInQueue()
	log.Info("Created new job")

	//grow the pool when jobs are piling up, the dispatcher caps its size
	accurateCount := atomic.AddInt64(&s.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || len(s.JobChannel) > 1 {
		select {
		case s.DispatcherChannel <- true:
			metrics.StartDispatcherSignalCount()
		default:
			//a signal is already pending
		}
	}
	return job, nil
}

func (s *Service) Status(ctx context.Context, id string) (jobModel.Job, bool) {
	if id == "" {
		return jobModel.Job{}, false
	}
	return s.JobStore.GetJob(ctx, id)
}
