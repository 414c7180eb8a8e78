package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/astropost/internal/domain"
	"github.com/bnema/astropost/internal/ports"
	"github.com/sirupsen/logrus"
)

const (
	DefaultRecheckInterval = time.Minute
	DefaultStopTimeout     = 2 * time.Second
)

// Job is the unit of work the scheduler runs once per day.
type Job func(ctx context.Context)

type SchedulerConfig struct {
	Clock           ports.Clock
	Location        *time.Location
	Logger          logrus.FieldLogger
	RecheckInterval time.Duration
	StopTimeout     time.Duration
}

// Scheduler runs a job at a fixed local time of day. It is either idle or
// has exactly one active task.
type Scheduler struct {
	job     Job
	clock   ports.Clock
	loc     *time.Location
	logger  logrus.FieldLogger
	recheck time.Duration
	timeout time.Duration

	mu      sync.Mutex
	task    *scheduledTask
	lastRun time.Time
}

type scheduledTask struct {
	at     domain.TimeOfDay
	next   time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(job Job, cfg SchedulerConfig) *Scheduler {
	s := &Scheduler{
		job:     job,
		clock:   cfg.Clock,
		loc:     cfg.Location,
		logger:  cfg.Logger,
		recheck: cfg.RecheckInterval,
		timeout: cfg.StopTimeout,
	}
	if s.clock == nil {
		s.clock = ports.SystemClock{}
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	s.logger = s.logger.WithField("component", "scheduler")
	if s.recheck <= 0 {
		s.recheck = DefaultRecheckInterval
	}
	if s.timeout <= 0 {
		s.timeout = DefaultStopTimeout
	}
	return s
}

// Start activates the schedule. It returns false when a task is already active.
func (s *Scheduler) Start(at domain.TimeOfDay) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.task != nil {
		s.logger.WithField("at", s.task.at.String()).Info("automation already active")
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	task := &scheduledTask{
		at:     at,
		next:   at.Next(s.clock.Now(), s.loc),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.task = task

	go s.loop(ctx, task)

	s.logger.WithFields(logrus.Fields{"at": at.String(), "next_run": task.next}).Info("automation started")
	return true
}

// Stop deactivates the schedule and waits briefly for the task to exit. A
// job already in progress runs to completion.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	task := s.task
	s.task = nil
	s.mu.Unlock()

	if task == nil {
		s.logger.Info("automation is not active")
		return false
	}

	task.cancel()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	select {
	case <-task.done:
	case <-timer.C:
		s.logger.WithField("timeout", s.timeout).Info("job still running, it will finish in the background")
	}

	s.logger.Info("automation stopped")
	return true
}

func (s *Scheduler) State() domain.ScheduleState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := domain.ScheduleState{LastRun: s.lastRun}
	if s.task != nil {
		state.Active = true
		state.At = s.task.at.String()
		state.NextRun = s.task.next
	}
	return state
}

func (s *Scheduler) loop(ctx context.Context, task *scheduledTask) {
	defer close(task.done)

	for {
		next := s.nextFor(task)
		wait := next.Sub(s.clock.Now())
		if wait > 0 {
			if wait > s.recheck {
				wait = s.recheck
			}
			timer := s.clock.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C():
			}
			continue
		}

		if !s.claim(task) {
			return
		}

		started := s.clock.Now()
		s.logger.WithField("scheduled_for", next).Info("running scheduled job")
		s.job(context.WithoutCancel(ctx))

		s.mu.Lock()
		s.lastRun = started
		following := task.at.After(next, s.loc)
		if now := s.clock.Now(); following.Before(now) {
			following = task.at.Next(now, s.loc)
		}
		task.next = following
		s.mu.Unlock()

		s.logger.WithField("next_run", following).Info("scheduled job finished")
	}
}

// claim reports whether task is still the active one, under the lock that Stop takes.
func (s *Scheduler) claim(task *scheduledTask) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.task == task
}

func (s *Scheduler) nextFor(task *scheduledTask) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return task.next
}
