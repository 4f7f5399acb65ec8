package wizard

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bookingwizard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubmitter struct {
	outcome Outcome
	calls   atomic.Int32
	last    models.FormData
}

func (s *stubSubmitter) Submit(_ context.Context, data models.FormData) Outcome {
	s.calls.Add(1)
	s.last = data
	return s.outcome
}

// blockingSubmitter holds every call until release is closed.
type blockingSubmitter struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func newBlockingSubmitter() *blockingSubmitter {
	return &blockingSubmitter{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (b *blockingSubmitter) Submit(ctx context.Context, _ models.FormData) Outcome {
	b.calls.Add(1)
	b.started <- struct{}{}
	<-b.release
	return Redirected("/thank-you")
}

type panicSubmitter struct{}

func (panicSubmitter) Submit(context.Context, models.FormData) Outcome {
	panic("boom")
}

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) listen(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) kinds() []EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]EventKind, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Kind)
	}
	return out
}

func completeSession() *models.WizardSession {
	s := models.NewWizardSession("s-1")
	s.FormData.Name = "Alex Smith"
	s.FormData.ContactMethod = models.ContactEmail
	s.FormData.ContactDetail = "alex@example.com"
	s.FormData.Address = "12 High Street"
	s.FormData.Service = "cut"
	s.CurrentStep = models.StepReview
	return s
}

func TestNewController_StartsOnFirstStep(t *testing.T) {
	c := NewController(nil, nil)
	snap := c.Session()
	assert.Equal(t, models.StepAboutYou, snap.CurrentStep)
	assert.Equal(t, models.ContactEmail, snap.FormData.ContactMethod)
	assert.False(t, snap.IsSubmitting)
	assert.Empty(t, snap.SubmitError)
	assert.Nil(t, snap.Step1FieldError)
}

func TestNewController_RepairsInvalidStep(t *testing.T) {
	s := models.NewWizardSession("s-1")
	s.CurrentStep = 9
	assert.Equal(t, models.StepAboutYou, NewController(s, nil).Step())
}

func TestNext_EmptyStep1RecordsNameError(t *testing.T) {
	log := &eventLog{}
	c := NewController(nil, nil, WithListener(log.listen))

	assert.False(t, c.Next())
	snap := c.Session()
	assert.Equal(t, models.StepAboutYou, snap.CurrentStep)
	require.NotNil(t, snap.Step1FieldError)
	assert.Equal(t, FieldName, snap.Step1FieldError.Field)
	assert.Empty(t, log.kinds(), "a refused transition does not scroll")
}

func TestNext_ValidStep1Advances(t *testing.T) {
	log := &eventLog{}
	c := NewController(nil, nil, WithListener(log.listen))

	require.NoError(t, c.SetField("name", "Alex Smith"))
	require.NoError(t, c.SetField("contactMethod", "Email"))
	require.NoError(t, c.SetField("contactDetail", "alex@example.com"))

	assert.True(t, c.Next())
	snap := c.Session()
	assert.Equal(t, models.StepLocation, snap.CurrentStep)
	assert.Nil(t, snap.Step1FieldError)
	require.Len(t, log.events, 1)
	assert.Equal(t, Event{Kind: EventScrollToTop, Step: models.StepLocation}, log.events[0])
}

func TestNext_InvalidContactDetailStays(t *testing.T) {
	c := NewController(nil, nil)
	require.NoError(t, c.SetField("name", "Alex Smith"))
	require.NoError(t, c.SetField("contactMethod", "Phone"))
	require.NoError(t, c.SetField("contactDetail", "12345"))

	assert.False(t, c.Next())
	snap := c.Session()
	require.NotNil(t, snap.Step1FieldError)
	assert.Equal(t, FieldContactDetail, snap.Step1FieldError.Field)
	assert.Equal(t, msgPhone, snap.Step1FieldError.Message)
}

func TestSetField_ClearsStep1ErrorOnlyForContactFields(t *testing.T) {
	c := NewController(nil, nil)
	require.False(t, c.Next())
	require.NotNil(t, c.Session().Step1FieldError)

	require.NoError(t, c.SetField("notes", "hello"))
	assert.NotNil(t, c.Session().Step1FieldError)

	require.NoError(t, c.SetField("name", "A"))
	assert.Nil(t, c.Session().Step1FieldError)

	require.False(t, c.Next())
	require.NoError(t, c.SetField("contactDetail", "x"))
	assert.Nil(t, c.Session().Step1FieldError)
}

func TestClearStep1Error(t *testing.T) {
	c := NewController(nil, nil)
	require.False(t, c.Next())
	c.ClearStep1Error()
	assert.Nil(t, c.Session().Step1FieldError)
}

func TestSetField_Errors(t *testing.T) {
	c := NewController(nil, nil)
	assert.ErrorIs(t, c.SetField("favouriteColour", "blue"), ErrUnknownField)
	assert.ErrorIs(t, c.SetField("contactMethod", "Pigeon"), ErrInvalidContactMethod)
	assert.Equal(t, models.ContactEmail, c.Session().FormData.ContactMethod)
}

func TestSetSensory(t *testing.T) {
	c := NewController(nil, nil)
	require.NoError(t, c.SetSensory("quiet", true))
	assert.True(t, c.Session().FormData.Sensory.Quiet)
	assert.ErrorIs(t, c.SetSensory("loud", true), ErrUnknownSensoryKey)
}

func TestNext_RechecksGateForMiddleSteps(t *testing.T) {
	s := models.NewWizardSession("s-1")
	s.CurrentStep = models.StepLocation
	c := NewController(s, nil)

	assert.False(t, c.Next())
	assert.Equal(t, models.StepLocation, c.Step())

	require.NoError(t, c.SetField("address", "12 High Street"))
	assert.True(t, c.Next())
	assert.Equal(t, models.StepService, c.Step())

	assert.False(t, c.Next())
	require.NoError(t, c.SetField("service", "cut"))
	assert.True(t, c.Next())
	assert.True(t, c.Next())
	assert.Equal(t, models.StepReview, c.Step())
}

func TestNext_NoOpOnLastStep(t *testing.T) {
	log := &eventLog{}
	c := NewController(completeSession(), nil, WithListener(log.listen))
	assert.False(t, c.Next())
	assert.Equal(t, models.StepReview, c.Step())
	assert.Empty(t, log.kinds())
}

func TestPrev(t *testing.T) {
	log := &eventLog{}
	c := NewController(nil, nil, WithListener(log.listen))
	assert.False(t, c.Prev(), "no-op on the first step")
	assert.Empty(t, log.kinds())

	s := models.NewWizardSession("s-1")
	s.CurrentStep = models.StepService
	c = NewController(s, nil, WithListener(log.listen))
	assert.True(t, c.Prev())
	assert.Equal(t, models.StepLocation, c.Step())
	assert.Equal(t, []EventKind{EventScrollToTop}, log.kinds())
}

func TestGoTo_OnlyBackwards(t *testing.T) {
	log := &eventLog{}
	s := completeSession()
	s.CurrentStep = models.StepSensory
	c := NewController(s, nil, WithListener(log.listen))

	assert.False(t, c.GoTo(models.StepReview))
	assert.False(t, c.GoTo(models.StepSensory))
	assert.False(t, c.GoTo(models.StepID(0)))
	assert.Empty(t, log.kinds())

	assert.True(t, c.GoTo(models.StepAboutYou))
	assert.Equal(t, models.StepAboutYou, c.Step())
	assert.Equal(t, []EventKind{EventScrollToTop}, log.kinds())
}

func TestSubmit_RequiresReviewStep(t *testing.T) {
	sub := &stubSubmitter{outcome: Success()}
	s := completeSession()
	s.CurrentStep = models.StepSensory
	c := NewController(s, sub)

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotReadyToSubmit)
	assert.Zero(t, sub.calls.Load())
}

func TestSubmit_RequiresValidData(t *testing.T) {
	sub := &stubSubmitter{outcome: Success()}
	s := completeSession()
	s.FormData.ContactDetail = "not-an-email"
	c := NewController(s, sub)

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotReadyToSubmit)
	assert.Zero(t, sub.calls.Load())
}

func TestSubmit_Redirected(t *testing.T) {
	log := &eventLog{}
	sub := &stubSubmitter{outcome: Redirected("https://example.com/thank-you")}
	c := NewController(completeSession(), sub, WithListener(log.listen))

	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirected, out.Kind)
	assert.Equal(t, "https://example.com/thank-you", out.Location)
	assert.Equal(t, "Alex Smith", sub.last.Name)

	snap := c.Session()
	assert.False(t, snap.IsSubmitting)
	assert.Empty(t, snap.SubmitError)
	assert.Equal(t, []EventKind{EventSubmitStarted, EventSubmitFinished}, log.kinds())
}

func TestSubmit_FailureSetsAndDismissClearsError(t *testing.T) {
	sub := &stubSubmitter{outcome: Failure("Slot no longer available")}
	c := NewController(completeSession(), sub)

	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailure, out.Kind)

	snap := c.Session()
	assert.False(t, snap.IsSubmitting)
	assert.Equal(t, "Slot no longer available", snap.SubmitError)
	assert.Equal(t, models.StepReview, snap.CurrentStep)

	c.DismissError()
	assert.Empty(t, c.Session().SubmitError)
}

func TestSubmit_RetryClearsPreviousError(t *testing.T) {
	sub := &stubSubmitter{outcome: Failure("first")}
	c := NewController(completeSession(), sub)
	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	sub.outcome = Success()
	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, out.Kind)
	assert.Empty(t, c.Session().SubmitError)
	assert.EqualValues(t, 2, sub.calls.Load())
}

func TestSubmit_SecondCallWhileInFlightIsRejected(t *testing.T) {
	sub := newBlockingSubmitter()
	c := NewController(completeSession(), sub)

	done := make(chan Outcome, 1)
	go func() {
		out, err := c.Submit(context.Background())
		assert.NoError(t, err)
		done <- out
	}()

	select {
	case <-sub.started:
	case <-time.After(2 * time.Second):
		t.Fatal("submitter was not called")
	}

	assert.True(t, c.IsSubmitting())
	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInProgress)

	close(sub.release)
	out := <-done
	assert.Equal(t, OutcomeRedirected, out.Kind)
	assert.EqualValues(t, 1, sub.calls.Load())
	assert.False(t, c.IsSubmitting())
}

func TestSubmit_PanicBecomesGenericFailure(t *testing.T) {
	c := NewController(completeSession(), panicSubmitter{})

	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Failure(GenericFailureMessage), out)
	assert.False(t, c.IsSubmitting())
	assert.Equal(t, GenericFailureMessage, c.Session().SubmitError)
}

func TestSubmit_WithoutSubmitter(t *testing.T) {
	c := NewController(completeSession(), nil)
	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailure, out.Kind)
	assert.False(t, c.IsSubmitting())
}

func TestListenerMayReadController(t *testing.T) {
	var c *Controller
	var seen []bool
	c = NewController(completeSession(), &stubSubmitter{outcome: Success()}, WithListener(func(e Event) {
		seen = append(seen, c.IsSubmitting())
	}))

	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, seen)
}

func TestWithClock_StampsUpdatedAt(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	c := NewController(nil, nil, WithClock(func() time.Time { return fixed }))
	require.NoError(t, c.SetField("notes", "hi"))
	assert.Equal(t, fixed, c.Session().UpdatedAt)
}

func TestWizard_EndToEnd(t *testing.T) {
	sub := &stubSubmitter{outcome: Redirected("/thank-you")}
	c := NewController(models.NewWizardSession("s-1"), sub)

	require.False(t, c.Next())
	require.Equal(t, FieldName, c.Session().Step1FieldError.Field)

	require.NoError(t, c.SetField("name", "Alex Smith"))
	require.NoError(t, c.SetField("contactMethod", "Email"))
	require.NoError(t, c.SetField("contactDetail", "alex@example.com"))
	require.True(t, c.Next())
	require.Nil(t, c.Session().Step1FieldError)

	require.False(t, c.CanAdvance())
	require.NoError(t, c.SetField("address", "12 High Street"))
	require.True(t, c.CanAdvance())
	require.True(t, c.Next())

	require.NoError(t, c.SetField("service", "cut"))
	require.True(t, c.Next())

	require.NoError(t, c.SetSensory("quiet", true))
	require.NoError(t, c.SetSensory("noMusic", true))
	require.True(t, c.Next())
	require.Equal(t, models.StepReview, c.Step())

	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Redirected("/thank-you"), out)
	assert.Equal(t, []string{"quiet", "noMusic"}, sub.last.Sensory.Selected())
}
