package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/astropost/internal/domain"
	"github.com/bnema/astropost/internal/ports"
	"github.com/stretchr/testify/mock"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	ch      chan time.Time
	stopped bool
	fired   bool
}

func (t *fakeTimer) C() <-chan time.Time {
	return t.ch
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

// fakeClock only moves when Advance is called and announces each new timer.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	timers  []*fakeTimer
	created chan time.Duration
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now, created: make(chan time.Duration, 64)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTimer(d time.Duration) ports.Timer {
	c.mu.Lock()
	timer := &fakeTimer{clock: c, at: c.now.Add(d), ch: make(chan time.Time, 1)}
	c.timers = append(c.timers, timer)
	c.mu.Unlock()

	c.created <- d
	return timer
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
	for _, timer := range c.timers {
		if timer.stopped || timer.fired || timer.at.After(c.now) {
			continue
		}
		timer.fired = true
		timer.ch <- c.now
	}
}

type recordingObserver struct {
	mu        sync.Mutex
	generated []domain.Topic
	skipped   map[domain.Topic]string
	publishes []bool
	cycles    []domain.CycleOutcome
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{skipped: map[domain.Topic]string{}}
}

func (o *recordingObserver) TopicGenerated(topic domain.Topic) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.generated = append(o.generated, topic)
}

func (o *recordingObserver) TopicSkipped(topic domain.Topic, stage string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.skipped[topic] = stage
}

func (o *recordingObserver) PublishAttempted(_ domain.PublishMode, published bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.publishes = append(o.publishes, published)
}

func (o *recordingObserver) CycleFinished(_ domain.Trigger, outcome domain.CycleOutcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cycles = append(o.cycles, outcome)
}

type countingPacer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (p *countingPacer) Pause(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.err
}

type staticChannels struct {
	channel ports.Channel
	err     error
}

func (s staticChannels) Channel() (ports.Channel, error) {
	return s.channel, s.err
}
