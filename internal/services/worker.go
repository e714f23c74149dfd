package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/ai-interviewer/internal/repositories"
)

// Worker runs report generation off the request path. Jobs land in a buffered
// queue and a poller sweeps up anything still queued in the database (e.g.
// after a restart).
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(jobID uuid.UUID)
}

type worker struct {
	jobRepo       repositories.ReportJobRepository
	reportService ReportService
	jobQueue      chan uuid.UUID
	concurrency   int
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

func NewWorker(
	jobRepo repositories.ReportJobRepository,
	reportService ReportService,
	concurrency int,
) Worker {
	return &worker{
		jobRepo:       jobRepo,
		reportService: reportService,
		jobQueue:      make(chan uuid.UUID, 100),
		concurrency:   concurrency,
		stopChan:      make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.WithField("concurrency", w.concurrency).Info("starting report worker")

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Info("stopping report worker")
	close(w.stopChan)
	w.wg.Wait()
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(jobID uuid.UUID) {
	select {
	case w.jobQueue <- jobID:
		log.WithField("job_id", jobID).Info("report job enqueued")
	case <-w.stopChan:
		log.WithField("job_id", jobID).Warn("worker stopped, cannot enqueue job")
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.WithField("worker", workerID).Info("report worker stopped")
			return
		case jobID := <-w.jobQueue:
			if err := w.reportService.ProcessReportJob(ctx, jobID); err != nil {
				log.WithError(err).
					WithField("worker", workerID).
					WithField("job_id", jobID).
					Error("report job failed")
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.jobRepo.FindPendingJobs(10)
			if err != nil {
				log.WithError(err).Warn("failed to fetch pending report jobs")
				continue
			}

			for _, job := range pending {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
