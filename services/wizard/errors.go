package wizard

import "errors"

var (
	ErrSessionNotFound      = errors.New("wizard session not found or expired")
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	ErrNotReadyToSubmit     = errors.New("booking is not ready to submit")
	ErrUnknownField         = errors.New("unknown form field")
	ErrUnknownSensoryKey    = errors.New("unknown sensory preference")
	ErrInvalidContactMethod = errors.New("invalid contact method")
	ErrInvalidStep          = errors.New("invalid step")
)
