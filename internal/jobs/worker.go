package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/chenmq77/duckiki/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker manages background jobs and scheduled tasks
type Worker struct {
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	queue         chan namedJob
	asyncSem      chan struct{}
	maxConcurrent int
	closeOnce     sync.Once
	stats         WorkerStats
	statsMu       sync.RWMutex
}

type namedJob struct {
	name string
	run  Job
}

// WorkerStats holds statistics about the worker. CompletedJobs counts every
// finished run; FailedJobs is the subset that returned an error or panicked.
type WorkerStats struct {
	ActiveJobs    int               `json:"active_jobs"`
	CompletedJobs int64             `json:"completed_jobs"`
	FailedJobs    int64             `json:"failed_jobs"`
	QueueLength   int               `json:"queue_length"`
	MaxConcurrent int               `json:"max_concurrent"`
	LastRuns      map[string]JobRun `json:"last_runs"`
	Schedules     map[string]string `json:"schedules"`
}

// JobRun describes the most recent run of a named job
type JobRun struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
}

// NewWorker creates a worker with N concurrent processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	// Allow 2x workers for async jobs
	asyncLimit := numWorkers * 2
	if asyncLimit < 4 {
		asyncLimit = 4
	}

	w := &Worker{
		ctx:           ctx,
		cancel:        cancel,
		queue:         make(chan namedJob, 100),
		asyncSem:      make(chan struct{}, asyncLimit),
		maxConcurrent: asyncLimit,
		stats: WorkerStats{
			LastRuns:  make(map[string]JobRun),
			Schedules: make(map[string]string),
		},
	}

	// Start worker goroutines
	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to be processed by the worker pool. When the queue is
// full the job runs on the caller's goroutine.
func (w *Worker) Enqueue(name string, job Job) {
	if w.ctx.Err() != nil {
		logger.Warn("worker stopped, dropping job", slog.String("job", name))
		return
	}
	select {
	case w.queue <- namedJob{name: name, run: job}:
	default:
		logger.Warn("worker queue full, running job synchronously", slog.String("job", name))
		w.run("sync", namedJob{name: name, run: job})
	}
}

// EnqueueAsync runs a job in a new goroutine (fire-and-forget), bounded by semaphore
func (w *Worker) EnqueueAsync(name string, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		// Acquire semaphore to limit concurrency
		select {
		case w.asyncSem <- struct{}{}:
		case <-w.ctx.Done():
			return
		}
		defer func() { <-w.asyncSem }()

		w.run("async", namedJob{name: name, run: job})
	}()
}

// process handles jobs from the queue
func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.run("queue", job)
		}
	}
}

// ScheduleEvery runs a job at fixed intervals. The first run happens after the interval (not at startup).
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, job, false)
}

// ScheduleEveryImmediate runs a job once at startup, then at fixed intervals.
func (w *Worker) ScheduleEveryImmediate(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, job, true)
}

func (w *Worker) schedule(name string, interval time.Duration, job Job, immediate bool) {
	w.statsMu.Lock()
	w.stats.Schedules[name] = interval.String()
	w.statsMu.Unlock()

	nj := namedJob{name: name, run: job}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if immediate {
			w.run("scheduler", nj)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.run("scheduler", nj)
			}
		}
	}()
}

// run executes one job, recording stats and recovering from panics
func (w *Worker) run(source string, job namedJob) {
	start := time.Now()
	w.trackJobStart()

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r}
			}
		}()
		err = job.run(w.ctx)
	}()

	elapsed := time.Since(start)
	w.trackJobEnd(job.name, start, elapsed, err)

	if err != nil {
		logger.Error("job failed",
			slog.String("job", job.name),
			slog.String("source", source),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()))
		return
	}
	logger.Debug("job completed",
		slog.String("job", job.name),
		slog.String("source", source),
		slog.Duration("elapsed", elapsed))
}

// Shutdown gracefully stops all workers
func (w *Worker) Shutdown() {
	w.closeOnce.Do(func() {
		w.cancel()
		close(w.queue)
		w.wg.Wait()
	})
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := WorkerStats{
		ActiveJobs:    w.stats.ActiveJobs,
		CompletedJobs: w.stats.CompletedJobs,
		FailedJobs:    w.stats.FailedJobs,
		QueueLength:   len(w.queue),
		MaxConcurrent: w.maxConcurrent,
		LastRuns:      make(map[string]JobRun, len(w.stats.LastRuns)),
		Schedules:     make(map[string]string, len(w.stats.Schedules)),
	}
	for k, v := range w.stats.LastRuns {
		stats.LastRuns[k] = v
	}
	for k, v := range w.stats.Schedules {
		stats.Schedules[k] = v
	}
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

func (w *Worker) trackJobEnd(name string, start time.Time, elapsed time.Duration, err error) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
	run := JobRun{StartedAt: start, Duration: elapsed}
	if err != nil {
		w.stats.FailedJobs++
		run.Error = err.Error()
	}
	w.stats.LastRuns[name] = run
}
