package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/astropost/internal/domain"
	"github.com/bnema/astropost/internal/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

type OrchestratorDeps struct {
	Sessions    *SessionManager
	Pipeline    *Pipeline
	History     ports.CycleRepository
	Observer    ports.CycleObserver
	Clock       ports.Clock
	Location    *time.Location
	Logger      logrus.FieldLogger
	DefaultMode domain.PublishMode
	// Scheduler settings; Clock, Location and Logger are filled in when empty.
	Scheduler SchedulerConfig
	NewID     func() string
}

// Orchestrator is the flat trigger surface used by the CLI and the scheduler.
type Orchestrator struct {
	sessions    *SessionManager
	pipeline    *Pipeline
	history     ports.CycleRepository
	observer    ports.CycleObserver
	clock       ports.Clock
	logger      logrus.FieldLogger
	defaultMode domain.PublishMode
	scheduler   *Scheduler
	newID       func() string
	cycles      singleflight.Group

	mu     sync.Mutex
	active domain.PublishMode
}

type AutomationResult struct {
	Success bool                 `json:"success"`
	Reason  string               `json:"reason,omitempty"`
	State   domain.ScheduleState `json:"state"`
}

type CycleReport struct {
	Record   domain.CycleRecord   `json:"cycle"`
	Packages []domain.PostPackage `json:"packages"`
	// Shared is set when this caller joined a cycle another trigger started.
	Shared bool  `json:"shared,omitempty"`
	Err    error `json:"-"`
}

func (r CycleReport) OK() bool {
	return r.Err == nil
}

func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	o := &Orchestrator{
		sessions:    deps.Sessions,
		pipeline:    deps.Pipeline,
		history:     deps.History,
		observer:    deps.Observer,
		clock:       deps.Clock,
		logger:      deps.Logger,
		defaultMode: deps.DefaultMode,
		newID:       deps.NewID,
	}
	if o.observer == nil {
		o.observer = ports.NopObserver{}
	}
	if o.clock == nil {
		o.clock = ports.SystemClock{}
	}
	if o.logger == nil {
		o.logger = logrus.StandardLogger()
	}
	if !o.defaultMode.Valid() {
		o.defaultMode = domain.PublishModeCarousel
	}
	if o.newID == nil {
		o.newID = uuid.NewString
	}

	schedulerCfg := deps.Scheduler
	if schedulerCfg.Clock == nil {
		schedulerCfg.Clock = o.clock
	}
	if schedulerCfg.Location == nil {
		schedulerCfg.Location = deps.Location
	}
	if schedulerCfg.Logger == nil {
		schedulerCfg.Logger = o.logger
	}
	o.scheduler = NewScheduler(o.scheduledJob, schedulerCfg)
	o.logger = o.logger.WithField("component", "orchestrator")

	return o
}

func (o *Orchestrator) Login(ctx context.Context, account, secret string) domain.LoginResult {
	return o.sessions.Login(ctx, account, secret)
}

func (o *Orchestrator) Logout(ctx context.Context) domain.LogoutResult {
	return o.sessions.Logout(ctx)
}

func (o *Orchestrator) Status() domain.SessionStatus {
	return o.sessions.Status()
}

func (o *Orchestrator) StartAutomation(timeOfDay string) AutomationResult {
	at, err := domain.ParseTimeOfDay(timeOfDay)
	if err != nil {
		return AutomationResult{Reason: err.Error(), State: o.scheduler.State()}
	}

	if !o.scheduler.Start(at) {
		return AutomationResult{Reason: "automation is already active", State: o.scheduler.State()}
	}
	return AutomationResult{Success: true, State: o.scheduler.State()}
}

func (o *Orchestrator) StopAutomation() AutomationResult {
	if !o.scheduler.Stop() {
		return AutomationResult{Reason: "automation is not active", State: o.scheduler.State()}
	}
	return AutomationResult{Success: true, State: o.scheduler.State()}
}

func (o *Orchestrator) AutomationStatus() domain.ScheduleState {
	return o.scheduler.State()
}

func (o *Orchestrator) History(ctx context.Context) ([]domain.CycleRecord, error) {
	if o.history == nil {
		return nil, nil
	}
	return o.history.List(ctx)
}

func (o *Orchestrator) LastCycle(ctx context.Context) (domain.CycleRecord, bool, error) {
	if o.history == nil {
		return domain.CycleRecord{}, false, nil
	}
	return o.history.Last(ctx)
}

func (o *Orchestrator) RunGenerationOnly(ctx context.Context) CycleReport {
	return o.runCycle(ctx, domain.TriggerManual, domain.PublishModeNone)
}

// RunGenerationAndPublish runs a full cycle. An empty mode means the configured default.
func (o *Orchestrator) RunGenerationAndPublish(ctx context.Context, mode domain.PublishMode) CycleReport {
	if mode == "" {
		mode = o.defaultMode
	}
	if !mode.Valid() {
		err := fmt.Errorf("unsupported publish mode %q", mode)
		return CycleReport{Record: domain.CycleRecord{Mode: mode, Outcome: domain.CycleOutcomeFailed, Reason: err.Error()}, Err: err}
	}
	return o.runCycle(ctx, domain.TriggerManual, mode)
}

func (o *Orchestrator) scheduledJob(ctx context.Context) {
	report := o.runCycle(ctx, domain.TriggerScheduled, o.defaultMode)
	entry := o.logger.WithFields(logrus.Fields{"cycle": report.Record.ID, "outcome": report.Record.Outcome})
	if report.Err != nil {
		entry.WithError(report.Err).Warn("scheduled cycle did not complete")
		return
	}
	entry.Info("scheduled cycle complete")
}

// runCycle collapses concurrent triggers of the same mode into one cycle. A
// trigger for a different mode while a cycle runs is refused, never joined.
// The cycle runs detached from the caller's cancellation so joiners are not
// aborted with it.
func (o *Orchestrator) runCycle(ctx context.Context, trigger domain.Trigger, mode domain.PublishMode) CycleReport {
	result, _, shared := o.cycles.Do(string(mode), func() (any, error) {
		if busy, ok := o.claim(mode); !ok {
			return busyReport(trigger, mode, busy), nil
		}
		defer o.release()

		return o.execute(context.WithoutCancel(ctx), trigger, mode), nil
	})

	report := result.(CycleReport)
	report.Shared = shared
	return report
}

// claim marks mode as the running cycle. It reports the running mode when
// another one holds the slot.
func (o *Orchestrator) claim(mode domain.PublishMode) (domain.PublishMode, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.active != "" {
		return o.active, false
	}
	o.active = mode
	return "", true
}

func (o *Orchestrator) release() {
	o.mu.Lock()
	o.active = ""
	o.mu.Unlock()
}

func busyReport(trigger domain.Trigger, mode, running domain.PublishMode) CycleReport {
	err := fmt.Errorf("%w (mode %s)", domain.ErrCycleInProgress, running)
	return CycleReport{
		Record: domain.CycleRecord{
			Trigger:   trigger,
			Mode:      mode,
			Generated: []domain.Topic{},
			Published: []domain.Topic{},
			Outcome:   domain.CycleOutcomeFailed,
			Reason:    err.Error(),
		},
		Err: err,
	}
}

func (o *Orchestrator) execute(ctx context.Context, trigger domain.Trigger, mode domain.PublishMode) CycleReport {
	record := domain.CycleRecord{
		ID:        o.newID(),
		Trigger:   trigger,
		Mode:      mode,
		StartedAt: o.clock.Now(),
		Generated: []domain.Topic{},
		Published: []domain.Topic{},
	}
	logger := o.logger.WithFields(logrus.Fields{"cycle": record.ID, "trigger": trigger, "mode": mode})
	logger.Info("cycle started")

	report := CycleReport{}
	finish := func(outcome domain.CycleOutcome, err error) CycleReport {
		record.FinishedAt = o.clock.Now()
		record.Outcome = outcome
		if err != nil {
			record.Reason = err.Error()
		}
		report.Record = record
		report.Err = err

		o.observer.CycleFinished(trigger, outcome)
		if o.history != nil {
			if appendErr := o.history.Append(context.WithoutCancel(ctx), record); appendErr != nil {
				logger.WithError(appendErr).Warn("could not record cycle history")
			}
		}
		logger.WithField("outcome", outcome).Info("cycle finished")
		return report
	}

	if mode != domain.PublishModeNone {
		if _, err := o.sessions.Channel(); err != nil {
			return finish(domain.CycleOutcomeFailed, err)
		}
	}

	packages := o.pipeline.Generate(ctx)
	report.Packages = packages
	record.Generated = domain.PackageTopics(packages)

	if len(packages) == 0 {
		return finish(domain.CycleOutcomeFailed, errors.New("no packages were generated"))
	}
	if mode == domain.PublishModeNone {
		return finish(domain.CycleOutcomeGenerated, nil)
	}

	var publish PublishReport
	switch mode {
	case domain.PublishModeSequential:
		publish = o.pipeline.PublishSequential(ctx, packages)
	default:
		publish = o.pipeline.PublishCarousel(ctx, packages)
	}

	record.Published = domain.PackageTopics(publish.Published)
	record.Failures = publish.Failures

	switch {
	case publish.OK():
		return finish(domain.CycleOutcomePublished, nil)
	case len(publish.Published) > 0:
		return finish(domain.CycleOutcomePartial, publishError(publish))
	default:
		return finish(domain.CycleOutcomeFailed, publishError(publish))
	}
}

func publishError(report PublishReport) error {
	if report.Err != nil {
		return report.Err
	}
	return fmt.Errorf("%w: %d of %d packages failed", domain.ErrPublishRejected, len(report.Failures), len(report.Failures)+len(report.Published))
}
