package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/khajiev13/cv-agent-fiilterer/internal/models"
)

// ErrStopTimeout is returned by Stop when workers do not finish their
// in-flight jobs within the grace period.
var ErrStopTimeout = errors.New("scheduler stop timed out")

const maxWorkers = 8

// Job is one queued piece of work.
type Job = models.IngestionJob

// JobFunc processes one dequeued job end to end.
type JobFunc func(ctx context.Context, job Job) error

// Scheduler drains the queue with a fixed pool of workers. Workers run
// jobs to completion; stopping is cooperative and never interrupts a
// job mid-flight.
type Scheduler struct {
	queue   *Queue
	run     JobFunc
	workers int
	logger  *slog.Logger
	tracker *Tracker

	// IsFatal, when set, marks errors that should halt streaming
	// processing entirely instead of moving on to the next job.
	IsFatal func(error) bool

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// New creates a scheduler. workers <= 0 derives the pool size from the
// machine, capped at 8.
func New(workers int, run JobFunc, logger *slog.Logger) *Scheduler {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return &Scheduler{
		queue:   NewQueue(),
		run:     run,
		workers: workers,
		logger:  logger,
		tracker: &Tracker{},
	}
}

// Workers returns the pool size.
func (s *Scheduler) Workers() int {
	return s.workers
}

// Enqueue adds a job to the queue and starts the worker pool if it is
// not already running.
func (s *Scheduler) Enqueue(job Job) {
	s.Queue(job)
	s.Start()
}

// Queue adds a job without touching the worker pool. Used by batch
// callers that drain with ProcessAll afterwards.
func (s *Scheduler) Queue(job Job) {
	s.queue.Enqueue(job)
	s.tracker.jobEnqueued()
	s.logger.Info("job enqueued", "file", job.StorageName, "queue_depth", s.queue.Len())
}

// Status returns a snapshot of queue depth and counters.
func (s *Scheduler) Status() Status {
	return s.tracker.snapshot(s.queue.Len())
}

// Start launches the worker pool. Starting an already-running
// scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.tracker.setActive(true)

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.workerLoop(i, s.stop)
	}
	s.logger.Info("scheduler started", "workers", s.workers)
}

// Stop signals workers to finish their current job and waits up to
// timeout for the pool to drain. Pending jobs stay queued.
func (s *Scheduler) Stop(timeout time.Duration) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stop)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.tracker.setActive(false)
		s.logger.Info("scheduler stopped", "queue_depth", s.queue.Len())
		return nil
	case <-time.After(timeout):
		// Abandoned in-flight jobs keep running, but the pool no
		// longer dispatches and must report idle.
		s.tracker.setActive(false)
		return fmt.Errorf("%w after %s", ErrStopTimeout, timeout)
	}
}

func (s *Scheduler) workerLoop(id int, stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		default:
		}

		job, ok := s.queue.TryDequeue()
		if !ok {
			select {
			case <-stop:
				return
			case <-s.queue.Notify():
			case <-ticker.C:
			}
			continue
		}

		if _, fatal := s.runJob(context.Background(), id, job); fatal {
			go s.Stop(time.Second)
			return
		}
	}
}

// runJob executes one job with panic isolation. Both processing modes
// go through here so panics and counters are handled once. It reports
// whether the job succeeded and whether its failure was fatal for the
// whole pool.
func (s *Scheduler) runJob(ctx context.Context, workerID int, job Job) (succeeded, fatal bool) {
	defer func() {
		if r := recover(); r != nil {
			s.tracker.jobFailed()
			s.logger.Error("job panicked", "worker", workerID, "file", job.StorageName, "panic", r)
		}
	}()

	start := time.Now()
	if err := s.run(ctx, job); err != nil {
		s.tracker.jobFailed()
		s.logger.Error("job failed", "worker", workerID, "file", job.StorageName, "error", err)
		if s.IsFatal != nil && s.IsFatal(err) {
			s.logger.Error("fatal job error, halting workers", "file", job.StorageName)
			return false, true
		}
		return false, false
	}

	s.tracker.jobSucceeded()
	s.logger.Info("job completed", "worker", workerID, "file", job.StorageName, "duration", time.Since(start))
	return true, false
}

// ProcessAll drains the queue with a temporary worker pool and blocks
// until every currently-queued job has been attempted. It returns the
// number of jobs that succeeded. Streaming workers should be stopped
// first; the two modes share the queue but not the pool.
func (s *Scheduler) ProcessAll(ctx context.Context) int {
	var succeeded atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}
				job, ok := s.queue.TryDequeue()
				if !ok {
					return
				}
				ran, fatal := s.runJob(ctx, workerID, job)
				if fatal {
					return
				}
				if ran {
					succeeded.Add(1)
				}
			}
		}(i)
	}

	wg.Wait()
	return int(succeeded.Load())
}

// ProcessOne pulls and fully processes a single job, returning false
// if the queue was empty. Failures and panics are absorbed into the
// counters, same as the pooled modes.
func (s *Scheduler) ProcessOne(ctx context.Context) bool {
	job, ok := s.queue.TryDequeue()
	if !ok {
		return false
	}
	s.runJob(ctx, 0, job)
	return true
}
