// Package worker runs the periodic jobs of the service.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultJobTimeout = 5 * time.Minute

var ErrInvalidTTL = errors.New("invalid proposal ttl")

// IProposalExpirer expires proposals that stayed too long without a client answer.
type IProposalExpirer interface {
	ExpireStale(ctx context.Context, ttl time.Duration) (int, error)
}

// ExpiryJob expires stale proposals. Runs never overlap.
type ExpiryJob struct {
	expirer IProposalExpirer
	ttl     time.Duration
	timeout time.Duration
	log     *zap.Logger

	mu sync.Mutex
}

func NewExpiryJob(expirer IProposalExpirer, ttl time.Duration, log *zap.Logger) (*ExpiryJob, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExpiryJob{expirer: expirer, ttl: ttl, timeout: defaultJobTimeout, log: log}, nil
}

// RunOnce expires stale proposals and returns how many changed status.
// A run started while another is in progress is skipped.
func (j *ExpiryJob) RunOnce(ctx context.Context) (int, error) {
	if !j.mu.TryLock() {
		j.log.Info("[worker][expiry] previous run still in progress, skipping")
		return 0, nil
	}
	defer j.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	started := time.Now()
	n, err := j.expirer.ExpireStale(ctx, j.ttl)
	if err != nil {
		j.log.Error("[worker][expiry] run failed", zap.Int("expired", n), zap.Error(err))
		return n, err
	}
	j.log.Info("[worker][expiry] run finished", zap.Int("expired", n), zap.Duration("took", time.Since(started)))
	return n, nil
}

// Scheduler owns the cron runner the jobs are registered on.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

func NewScheduler(loc *time.Location, log *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{cron: cron.New(cron.WithLocation(loc)), log: log}
}

// AddExpiry registers job on schedule, a standard five-field cron expression or a
// descriptor such as "@every 1h".
func (s *Scheduler) AddExpiry(ctx context.Context, schedule string, job *ExpiryJob) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(schedule, func() {
		_, _ = job.RunOnce(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("schedule expiry %q: %w", schedule, err)
	}
	s.log.Info("[worker] expiry scheduled", zap.String("schedule", schedule))
	return id, nil
}

func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// Run starts the runner and blocks until ctx is done, then waits for running jobs.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	s.log.Info("[worker] scheduler started", zap.Int("jobs", len(s.cron.Entries())))
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("[worker] scheduler stopped")
}
