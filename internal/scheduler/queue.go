// Package scheduler runs ingestion jobs on a bounded worker pool fed by
// an in-memory FIFO queue.
package scheduler

import (
	"sync"

	"github.com/khajiev13/cv-agent-fiilterer/internal/models"
)

// Queue is an unbounded FIFO of pending ingestion jobs. Enqueue never
// blocks; consumers poll with TryDequeue and wait on Notify.
type Queue struct {
	mu     sync.Mutex
	jobs   []models.IngestionJob
	notify chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		notify: make(chan struct{}, 1),
	}
}

// Enqueue appends a job and wakes one waiting consumer.
func (q *Queue) Enqueue(job models.IngestionJob) {
	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// TryDequeue removes and returns the oldest job, if any.
func (q *Queue) TryDequeue() (models.IngestionJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.jobs) == 0 {
		return models.IngestionJob{}, false
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, true
}

// Len returns the number of pending jobs.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Notify returns a channel that receives a signal after an enqueue.
// The signal is coalesced; consumers must re-check the queue.
func (q *Queue) Notify() <-chan struct{} {
	return q.notify
}
