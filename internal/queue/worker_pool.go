package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/suz-u3n-chu/line-image-bot/internal/domain"
	"github.com/suz-u3n-chu/line-image-bot/internal/observability"
)

type WorkerPool struct {
	workerCounts int
	retryCounts  int
	JobQueue     chan domain.GenerateImageJob
	Ctx          context.Context
	CancelFunc   context.CancelFunc
	Wg           *sync.WaitGroup
	Logger       domain.LoggingRepository
	Executer     domain.JobExecuter
	Completion   domain.JobCompletionHandler
}

func NewWorkerPool(ctx context.Context, workercounts, queuesize, retrycounts int,
	logger domain.LoggingRepository, executer domain.JobExecuter, completion domain.JobCompletionHandler) *WorkerPool {
	ctx, cancelFunc := context.WithCancel(ctx)

	wp := &WorkerPool{
		workerCounts: workercounts,
		retryCounts:  retrycounts,
		JobQueue:     make(chan domain.GenerateImageJob, queuesize),
		Ctx:          ctx,
		CancelFunc:   cancelFunc,
		Wg:           &sync.WaitGroup{},
		Logger:       logger,
		Executer:     executer,
		Completion:   completion,
	}

	return wp
}

func (wp *WorkerPool) ProcessJob(workerid int) {
	go func() {
		log := wp.Logger.With("service", "worker_pool", "worker_id", workerid)
		log.Info("worker_started")

		defer func() {
			if r := recover(); r != nil {
				log.Error("worker_paniced", "reason", fmt.Sprintf("%v", r))
			}
		}()

		for {
			select {
			case <-wp.Ctx.Done():
				log.Warn("worker_stopped", "reason", "worker_exited_context_canceled")
				return
			case job, ok := <-wp.JobQueue:
				if !ok {
					log.Warn("worker_stopped", "reason", "worker_exited_job_queue_closed")
					return
				}
				wp.runJob(log, job)
				wp.Wg.Done()
			}
		}
	}()
}

// runJob executes one generation job, retrying with jittered exponential
// backoff until the retry budget is spent. Retries block only this worker;
// other users' jobs keep flowing through the remaining workers.
func (wp *WorkerPool) runJob(log domain.LoggingRepository, job domain.GenerateImageJob) {
	start := time.Now()

	ctx := observability.WithRequestID(wp.Ctx, job.RequestID)

	err := wp.Executer.Execute(ctx, job)
	for err != nil && job.RetryCount < wp.retryCounts {
		delay := CalculateBackoffDelay(job.RetryCount)
		log.Warn("image_job_retry_scheduled",
			"request_id", job.RequestID,
			"retry_count", job.RetryCount,
			"delay_ms", delay.Milliseconds(),
			"reason", err.Error())

		select {
		case <-wp.Ctx.Done():
			return
		case <-time.After(delay):
		}

		job.RetryCount++
		err = wp.Executer.Execute(ctx, job)
	}

	if err != nil {
		log.Error("image_job_failed",
			"request_id", job.RequestID,
			"retry_count", job.RetryCount,
			"reason", err.Error(),
			"duration_ms", time.Since(start).Milliseconds())
		wp.Completion.OnExhausted(ctx, job)
		return
	}

	log.Info("image_job_completed",
		"request_id", job.RequestID,
		"retry_count", job.RetryCount,
		"duration_ms", time.Since(start).Milliseconds())
}

func (wp *WorkerPool) Start() {
	for i := 1; i <= wp.workerCounts; i++ {
		wp.ProcessJob(i)
	}
}

// Submit enqueues without blocking the webhook response. A full queue is
// reported to the caller so the sender can be notified instead of dropped.
func (wp *WorkerPool) Submit(job domain.GenerateImageJob) error {
	select {
	case wp.JobQueue <- job:
		wp.Wg.Add(1)
		wp.Logger.Info("image_job_submitted", "request_id", job.RequestID, "current_queue_size", len(wp.JobQueue))
		return nil
	default:
		wp.Logger.Warn("image_job_dropped", "request_id", job.RequestID, "current_queue_size", len(wp.JobQueue))
		return domain.ErrQueueFull
	}
}

func (wp *WorkerPool) Cancel() {
	wp.CancelFunc()
}

func (wp *WorkerPool) Wait() {
	wp.Wg.Wait()
}

func (wp *WorkerPool) Close() {
	close(wp.JobQueue)
}
