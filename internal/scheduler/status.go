package scheduler

import "sync/atomic"

// Tracker holds thread-safe processing counters.
type Tracker struct {
	enqueued  atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
	active    atomic.Bool
}

// Status is a point-in-time snapshot of the scheduler state.
type Status struct {
	QueueDepth int   `json:"queue_depth"`
	Active     bool  `json:"active"`
	Enqueued   int64 `json:"enqueued"`
	Succeeded  int64 `json:"succeeded"`
	Failed     int64 `json:"failed"`
}

func (t *Tracker) jobEnqueued()  { t.enqueued.Add(1) }
func (t *Tracker) jobSucceeded() { t.succeeded.Add(1) }
func (t *Tracker) jobFailed()    { t.failed.Add(1) }

func (t *Tracker) setActive(v bool) { t.active.Store(v) }

// Active reports whether workers are currently running.
func (t *Tracker) Active() bool { return t.active.Load() }

func (t *Tracker) snapshot(queueDepth int) Status {
	return Status{
		QueueDepth: queueDepth,
		Active:     t.active.Load(),
		Enqueued:   t.enqueued.Load(),
		Succeeded:  t.succeeded.Load(),
		Failed:     t.failed.Load(),
	}
}
