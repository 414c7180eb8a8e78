package ports

import "github.com/bnema/astropost/internal/domain"

// CycleObserver receives per-topic, per-publish and per-cycle events.
type CycleObserver interface {
	TopicGenerated(topic domain.Topic)
	TopicSkipped(topic domain.Topic, stage string)
	PublishAttempted(mode domain.PublishMode, published bool)
	CycleFinished(trigger domain.Trigger, outcome domain.CycleOutcome)
}

type NopObserver struct{}

func (NopObserver) TopicGenerated(domain.Topic)                       {}
func (NopObserver) TopicSkipped(domain.Topic, string)                 {}
func (NopObserver) PublishAttempted(domain.PublishMode, bool)         {}
func (NopObserver) CycleFinished(domain.Trigger, domain.CycleOutcome) {}
