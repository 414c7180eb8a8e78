package domain

import "time"

type PublishMode string

const (
	PublishModeNone       PublishMode = "none"
	PublishModeSequential PublishMode = "sequential"
	PublishModeCarousel   PublishMode = "carousel"
)

func (m PublishMode) Valid() bool {
	switch m {
	case PublishModeSequential, PublishModeCarousel:
		return true
	default:
		return false
	}
}

type Trigger string

const (
	TriggerManual    Trigger = "manual"
	TriggerScheduled Trigger = "scheduled"
)

type CycleOutcome string

const (
	CycleOutcomeGenerated CycleOutcome = "generated"
	CycleOutcomePublished CycleOutcome = "published"
	CycleOutcomePartial   CycleOutcome = "partial"
	CycleOutcomeFailed    CycleOutcome = "failed"
)

type PublishFailure struct {
	Topic  Topic  `json:"topic"`
	Reason string `json:"reason"`
}

// CycleRecord is the persisted summary of one cycle.
type CycleRecord struct {
	ID         string           `json:"id"`
	Trigger    Trigger          `json:"trigger"`
	Mode       PublishMode      `json:"mode"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Generated  []Topic          `json:"generated"`
	Published  []Topic          `json:"published"`
	Failures   []PublishFailure `json:"failures,omitempty"`
	Outcome    CycleOutcome     `json:"outcome"`
	Reason     string           `json:"reason,omitempty"`
}
