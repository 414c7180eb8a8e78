package domain

import "errors"

var (
	ErrNotAuthenticated    = errors.New("platform session is not authenticated")
	ErrUnderfilledBatch    = errors.New("carousel batch is missing topics")
	ErrPublishRejected     = errors.New("platform rejected the publication")
	ErrCredentialNotFound  = errors.New("session credential not found")
	ErrSessionRejected     = errors.New("platform rejected the saved session")
	ErrImageSourceDisabled = errors.New("image source is not configured")
	ErrInvalidTimeOfDay    = errors.New("invalid time of day")
	ErrUnknownTopic        = errors.New("unknown topic")
	ErrInvalidPayload      = errors.New("invalid content payload")
	ErrCycleInProgress     = errors.New("cycle already in progress")
)
