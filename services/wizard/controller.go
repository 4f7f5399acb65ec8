package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bookingwizard/models"

	"go.uber.org/zap"
)

// EventKind names a side effect the view layer should react to.
type EventKind string

const (
	// EventScrollToTop follows every successful step transition.
	EventScrollToTop EventKind = "scrollToTop"
	// EventSubmitStarted is emitted once isSubmitting has been set.
	EventSubmitStarted EventKind = "submitStarted"
	// EventSubmitFinished is emitted once isSubmitting has been cleared.
	EventSubmitFinished EventKind = "submitFinished"
)

// Event is emitted by the Controller after its state has changed.
type Event struct {
	Kind EventKind
	Step models.StepID
}

// Listener receives controller events. It is never called with the
// controller's lock held, so it may read the controller.
type Listener func(Event)

// Submitter performs the outbound booking request.
type Submitter interface {
	Submit(ctx context.Context, data models.FormData) Outcome
}

// Controller is the wizard state machine for one session.
type Controller struct {
	mu        sync.Mutex
	session   *models.WizardSession
	submitter Submitter
	listener  Listener
	logger    *zap.Logger
	now       func() time.Time
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithListener registers the event listener.
func WithListener(l Listener) ControllerOption {
	return func(c *Controller) { c.listener = l }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// WithClock overrides the clock used to stamp UpdatedAt.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// NewController wraps session. A nil session starts a fresh one.
func NewController(session *models.WizardSession, submitter Submitter, opts ...ControllerOption) *Controller {
	if session == nil {
		session = models.NewWizardSession("")
	}
	if !session.CurrentStep.Valid() {
		session.CurrentStep = models.FirstStep
	}
	c := &Controller{
		session:   session,
		submitter: submitter,
		logger:    zap.NewNop(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns a snapshot of the current session state.
func (c *Controller) Session() models.WizardSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := *c.session
	if c.session.Step1FieldError != nil {
		fe := *c.session.Step1FieldError
		snap.Step1FieldError = &fe
	}
	return snap
}

// Step returns the current step.
func (c *Controller) Step() models.StepID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.CurrentStep
}

// IsSubmitting reports whether a submission is in flight.
func (c *Controller) IsSubmitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.IsSubmitting
}

// CanAdvance applies the cheap gate of the current step.
func (c *Controller) CanAdvance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CanAdvance(c.session.CurrentStep, c.session.FormData)
}

// SetField writes one text field. Editing the name or the contact detail
// clears a pending step 1 field error.
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data := &c.session.FormData
	switch field {
	case "name":
		data.Name = value
	case "contactMethod":
		m, err := models.ParseContactMethod(value)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidContactMethod, err)
		}
		data.ContactMethod = m
	case "contactDetail":
		data.ContactDetail = value
	case "address":
		data.Address = value
	case "service":
		data.Service = value
	case "preferredTime":
		data.PreferredTime = value
	case "notes":
		data.Notes = value
	case "otherPreferences":
		data.OtherPreferences = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	if field == FieldName || field == FieldContactDetail {
		c.session.Step1FieldError = nil
	}
	c.touch()
	return nil
}

// SetSensory toggles one sensory preference.
func (c *Controller) SetSensory(key string, value bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.FormData.Sensory.Set(key, value) {
		return fmt.Errorf("%w: %q", ErrUnknownSensoryKey, key)
	}
	c.touch()
	return nil
}

// Next moves forward one step. Leaving the contact step runs the strict
// check and records its field error on failure; other steps re-check their
// gate. It reports whether the step changed.
func (c *Controller) Next() bool {
	c.mu.Lock()
	s := c.session
	if s.CurrentStep >= models.MaxStep {
		c.mu.Unlock()
		return false
	}

	if s.CurrentStep == models.StepAboutYou {
		res := ValidateStep1Strict(s.FormData)
		if !res.Valid() {
			s.Step1FieldError = res.Error
			c.touch()
			c.mu.Unlock()
			c.logger.Debug("wizard: contact step rejected",
				zap.String("sessionId", s.SessionID),
				zap.String("field", res.Error.Field))
			return false
		}
		s.Step1FieldError = nil
	} else if !CanAdvance(s.CurrentStep, s.FormData) {
		c.mu.Unlock()
		return false
	}

	s.CurrentStep++
	step := s.CurrentStep
	c.touch()
	c.mu.Unlock()

	c.emit(Event{Kind: EventScrollToTop, Step: step})
	return true
}

// Prev moves back one step without validating.
func (c *Controller) Prev() bool {
	c.mu.Lock()
	if c.session.CurrentStep <= models.FirstStep {
		c.mu.Unlock()
		return false
	}
	c.session.CurrentStep--
	step := c.session.CurrentStep
	c.touch()
	c.mu.Unlock()

	c.emit(Event{Kind: EventScrollToTop, Step: step})
	return true
}

// GoTo jumps back to an earlier step. Jumps forward or to the current step
// are ignored.
func (c *Controller) GoTo(step models.StepID) bool {
	c.mu.Lock()
	if !step.Valid() || step >= c.session.CurrentStep {
		c.mu.Unlock()
		return false
	}
	c.session.CurrentStep = step
	c.touch()
	c.mu.Unlock()

	c.emit(Event{Kind: EventScrollToTop, Step: step})
	return true
}

// DismissError clears the submission error banner.
func (c *Controller) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.SubmitError = ""
	c.touch()
}

// ClearStep1Error clears the contact step field error.
func (c *Controller) ClearStep1Error() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Step1FieldError = nil
	c.touch()
}

// Submit sends the booking. While a submission is in flight further calls
// return ErrSubmissionInProgress without contacting the submitter. Submit is
// only allowed from the review step with every gate satisfied.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	s := c.session
	if s.IsSubmitting {
		c.mu.Unlock()
		return Outcome{}, ErrSubmissionInProgress
	}
	if s.CurrentStep != models.MaxStep || !readyToSubmit(s.FormData) {
		c.mu.Unlock()
		return Outcome{}, ErrNotReadyToSubmit
	}
	s.SubmitError = ""
	s.IsSubmitting = true
	data := s.FormData
	c.touch()
	c.mu.Unlock()

	c.emit(Event{Kind: EventSubmitStarted, Step: models.MaxStep})

	outcome := c.send(ctx, data)

	c.mu.Lock()
	s.IsSubmitting = false
	if outcome.Kind == OutcomeFailure {
		s.SubmitError = outcome.Message
	}
	c.touch()
	c.mu.Unlock()

	c.emit(Event{Kind: EventSubmitFinished, Step: models.MaxStep})
	return outcome, nil
}

// send calls the submitter and turns a panic into a generic failure so the
// in-flight flag is always cleared.
func (c *Controller) send(ctx context.Context, data models.FormData) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("wizard: submitter panicked", zap.Any("panic", r))
			outcome = Failure(GenericFailureMessage)
		}
	}()
	if c.submitter == nil {
		c.logger.Error("wizard: no submitter configured")
		return Failure(GenericFailureMessage)
	}
	return c.submitter.Submit(ctx, data)
}

func (c *Controller) emit(e Event) {
	if c.listener != nil {
		c.listener(e)
	}
}

// touch must be called with c.mu held.
func (c *Controller) touch() {
	c.session.UpdatedAt = c.now()
}

func readyToSubmit(data models.FormData) bool {
	for _, step := range []models.StepID{models.StepAboutYou, models.StepLocation, models.StepService} {
		if !CanAdvance(step, data) {
			return false
		}
	}
	return ValidateStep1Strict(data).Valid()
}
