package models

import "time"

// StepID identifies a wizard step. Steps are visited in ascending order.
type StepID int

const (
	StepAboutYou StepID = iota + 1
	StepLocation
	StepService
	StepSensory
	StepReview
)

const (
	FirstStep = StepAboutYou
	MaxStep   = StepReview
)

// Valid reports whether s is one of the five wizard steps.
func (s StepID) Valid() bool {
	return s >= FirstStep && s <= MaxStep
}

// FieldError pins a validation failure to one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WizardSession is the state of one booking attempt.
type WizardSession struct {
	SessionID       string      `json:"sessionId"`
	CurrentStep     StepID      `json:"currentStep"`
	FormData        FormData    `json:"formData"`
	IsSubmitting    bool        `json:"isSubmitting"`
	SubmitError     string      `json:"submitError,omitempty"`
	Step1FieldError *FieldError `json:"step1FieldError,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// NewWizardSession returns a session on the first step with a blank form.
func NewWizardSession(id string) *WizardSession {
	now := time.Now().UTC()
	return &WizardSession{
		SessionID:   id,
		CurrentStep: FirstStep,
		FormData:    NewFormData(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
