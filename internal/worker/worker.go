package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/domain/jobModel"
	"github.com/akolanti/llm-assistant/internal/job"
	"github.com/akolanti/llm-assistant/internal/metrics"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
)

// Ingestor runs one ingest job to completion and returns it in its final state.
type Ingestor interface {
	IngestJob(ctx context.Context, job jobModel.Job) jobModel.Job
}

// Pool grows on dispatcher signals up to config.MaxWorkerCount and shrinks back to
// minWorkers once workers sit idle.
type Pool struct {
	jobs               *job.Service
	ingestor           Ingestor
	stopWorkerChannel  chan bool
	workerWaitGroup    *sync.WaitGroup
	currentWorkerCount int64
	minWorkers         int64
	maxWorkers         int64
	idleTimeout        time.Duration
	logger             *logger_i.Logger
}

func NewPool(jobService *job.Service, ingestor Ingestor, stopWorkerChan chan bool, waitGroup *sync.WaitGroup) *Pool {
	return &Pool{
		jobs:              jobService,
		ingestor:          ingestor,
		stopWorkerChannel: stopWorkerChan,
		workerWaitGroup:   waitGroup,
		minWorkers:        config.MinWorkerCount,
		maxWorkers:        config.MaxWorkerCount,
		idleTimeout:       config.IdleWorkerTimeout,
		logger:            logger_i.NewLogger("WorkerPool"),
	}
}

func (p *Pool) Start() {
	p.logger.Info("Initializing worker pool")
	go p.dispatcher()
}

func (p *Pool) WorkerCount() int64 {
	return atomic.LoadInt64(&p.currentWorkerCount)
}

func (p *Pool) dispatcher() {
	p.createWorker()
	p.logger.Info("Dispatcher started")
	for {
		select {
		case <-p.jobs.DispatcherChannel:
			if p.WorkerCount() < p.maxWorkers {
				p.logger.Info("Creating new worker", "workerCount", p.WorkerCount())
				p.createWorker()
			}
		case <-p.stopWorkerChannel:
			p.logger.Info("Dispatcher stopped")
			return
		}
	}
}

func (p *Pool) createWorker() {
	p.workerWaitGroup.Add(1)
	atomic.AddInt64(&p.currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
	go p.worker()
	p.logger.Debug("Created new worker")
}

func (p *Pool) worker() {
	for {
		select {
		case currentJob := <-p.jobs.JobChannel:
			p.executeJob(currentJob)
			metrics.DecrementJobsInQueue()

		case <-p.stopWorkerChannel:
			atomic.AddInt64(&p.currentWorkerCount, -1)
			p.removeWorker("Stop worker signal received")
			return

		case <-time.After(p.idleTimeout):
			if p.tryRetire() {
				p.removeWorker("Idle worker timeout")
				return
			}
		}
	}
}

// tryRetire decrements the worker count unless that would drop below minWorkers.
func (p *Pool) tryRetire() bool {
	for {
		n := atomic.LoadInt64(&p.currentWorkerCount)
		if n <= p.minWorkers {
			return false
		}
		if atomic.CompareAndSwapInt64(&p.currentWorkerCount, n, n-1) {
			return true
		}
	}
}

func (p *Pool) removeWorker(reason string) {
	p.workerWaitGroup.Done()
	metrics.DecrementActiveWorkerCount()
	p.logger.Info("Removed worker", "reason", reason, "workerCount", p.WorkerCount())
}
