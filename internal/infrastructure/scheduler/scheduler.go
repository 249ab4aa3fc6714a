// Package scheduler implements background job scheduling for the cinema
// community bot. It runs periodic tasks such as watch party reminders.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// JOB INTERFACE
// ══════════════════════════════════════════════════════════════════════════════

// Job defines the interface that all scheduled jobs must implement.
type Job interface {
	// Name returns the unique name of the job.
	Name() string

	// Run executes the job. The context is cancelled when the scheduler
	// is stopping.
	Run(ctx context.Context) error
}

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULER
// ══════════════════════════════════════════════════════════════════════════════

// Scheduler runs registered jobs at fixed intervals.
type Scheduler struct {
	mu      sync.Mutex
	logger  *slog.Logger
	jobs    []scheduledJob
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

type scheduledJob struct {
	job      Job
	interval time.Duration
}

// New creates a Scheduler.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{logger: logger.With("component", "scheduler")}
}

// AddJob registers a job to run at the given interval. Jobs must be added
// before Start.
func (s *Scheduler) AddJob(job Job, interval time.Duration) error {
	if job == nil {
		return fmt.Errorf("scheduler: job cannot be nil")
	}
	if interval <= 0 {
		return fmt.Errorf("scheduler: interval must be positive for job %s", job.Name())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("scheduler: cannot add job %s while running", job.Name())
	}
	s.jobs = append(s.jobs, scheduledJob{job: job, interval: interval})
	return nil
}

// Start launches one goroutine per job. It is not an error to start with no
// jobs registered.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, sj := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(runCtx, sj)
	}

	s.logger.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop cancels all job loops and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runLoop(ctx context.Context, sj scheduledJob) {
	defer s.wg.Done()

	ticker := time.NewTicker(sj.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			if err := sj.job.Run(ctx); err != nil {
				s.logger.Error("job failed",
					"job", sj.job.Name(),
					"duration", time.Since(start),
					"error", err,
				)
				continue
			}
			s.logger.Debug("job completed",
				"job", sj.job.Name(),
				"duration", time.Since(start),
			)
		}
	}
}
