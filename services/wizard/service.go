// File: services/wizard/service.go
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	sessionRepo "bookingwizard/database/repository/session"
	"bookingwizard/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActionResult is what every wizard action hands back to the transport layer.
type ActionResult struct {
	Session     models.WizardSession `json:"session"`
	CanAdvance  bool                 `json:"canAdvance"`
	Moved       bool                 `json:"moved"`
	ScrollToTop bool                 `json:"scrollToTop"`
	Outcome     *Outcome             `json:"outcome,omitempty"`
	RedirectTo  string               `json:"redirectTo,omitempty"`
}

// WizardSessionService drives server-held wizard sessions.
type WizardSessionService interface {
	StartSession(ctx context.Context) (*ActionResult, error)
	GetSession(ctx context.Context, sessionID string) (*ActionResult, error)
	SetFields(ctx context.Context, sessionID string, fields map[string]string) (*ActionResult, error)
	SetSensory(ctx context.Context, sessionID string, prefs map[string]bool) (*ActionResult, error)
	Next(ctx context.Context, sessionID string) (*ActionResult, error)
	Prev(ctx context.Context, sessionID string) (*ActionResult, error)
	GoTo(ctx context.Context, sessionID string, step models.StepID) (*ActionResult, error)
	DismissError(ctx context.Context, sessionID string) (*ActionResult, error)
	Submit(ctx context.Context, sessionID string) (*ActionResult, error)
	CancelSession(ctx context.Context, sessionID string) error
}

// DefaultWizardService implements WizardSessionService on a SessionRepository.
type DefaultWizardService struct {
	Repo          sessionRepo.SessionRepository
	Submitter     Submitter
	Logger        *zap.Logger
	SubmitTimeout time.Duration
	// ThankYouURL is where a plain 2xx submission sends the client.
	ThankYouURL string
}

func (s *DefaultWizardService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultWizardService) StartSession(ctx context.Context) (*ActionResult, error) {
	session := models.NewWizardSession(uuid.New().String())
	if err := s.Repo.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logger().Info("wizard session started", zap.String("sessionId", session.SessionID))
	return resultFor(NewController(session, s.Submitter), false, false), nil
}

func (s *DefaultWizardService) GetSession(ctx context.Context, sessionID string) (*ActionResult, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return resultFor(NewController(session, s.Submitter), false, false), nil
}

// SetFields applies every field edit or none of them.
func (s *DefaultWizardService) SetFields(ctx context.Context, sessionID string, fields map[string]string) (*ActionResult, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return s.apply(ctx, sessionID, func(c *Controller) (bool, error) {
		for _, k := range keys {
			if err := c.SetField(k, fields[k]); err != nil {
				return false, err
			}
		}
		return false, nil
	})
}

func (s *DefaultWizardService) SetSensory(ctx context.Context, sessionID string, prefs map[string]bool) (*ActionResult, error) {
	for k := range prefs {
		if _, ok := (models.SensoryPrefs{}).Get(k); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSensoryKey, k)
		}
	}
	return s.apply(ctx, sessionID, func(c *Controller) (bool, error) {
		for k, v := range prefs {
			if err := c.SetSensory(k, v); err != nil {
				return false, err
			}
		}
		return false, nil
	})
}

func (s *DefaultWizardService) Next(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.apply(ctx, sessionID, func(c *Controller) (bool, error) {
		return c.Next(), nil
	})
}

func (s *DefaultWizardService) Prev(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.apply(ctx, sessionID, func(c *Controller) (bool, error) {
		return c.Prev(), nil
	})
}

func (s *DefaultWizardService) GoTo(ctx context.Context, sessionID string, step models.StepID) (*ActionResult, error) {
	if !step.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStep, step)
	}
	return s.apply(ctx, sessionID, func(c *Controller) (bool, error) {
		return c.GoTo(step), nil
	})
}

func (s *DefaultWizardService) DismissError(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.apply(ctx, sessionID, func(c *Controller) (bool, error) {
		c.DismissError()
		return false, nil
	})
}

// Submit runs the controller's submission under a per-session lock so that
// concurrent requests for one session produce a single outbound request.
// While the lock is held no other action may change the session. A
// successful submission ends the session.
func (s *DefaultWizardService) Submit(ctx context.Context, sessionID string) (*ActionResult, error) {
	timeout := s.SubmitTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	acquired, err := s.Repo.AcquireSubmitLock(ctx, sessionID, timeout+5*time.Second)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrSubmissionInProgress
	}
	defer func() {
		if err := s.Repo.ReleaseSubmitLock(context.Background(), sessionID); err != nil {
			s.logger().Warn("wizard: failed to release submit lock", zap.String("sessionId", sessionID), zap.Error(err))
		}
	}()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// Holding the lock means no submission is running, so a stored flag was
	// left by one that never finished.
	if session.IsSubmitting {
		s.logger().Warn("wizard: clearing stale in-flight flag", zap.String("sessionId", sessionID))
		session.IsSubmitting = false
	}

	var c *Controller
	c = NewController(session, s.Submitter,
		WithLogger(s.logger()),
		WithListener(func(e Event) {
			if e.Kind != EventSubmitStarted {
				return
			}
			snap := c.Session()
			if err := s.Repo.Save(ctx, &snap); err != nil {
				s.logger().Warn("wizard: failed to persist submitting state", zap.String("sessionId", sessionID), zap.Error(err))
			}
		}))

	subCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	outcome, err := c.Submit(subCtx)
	if err != nil {
		return nil, err
	}

	// The outcome has to be recorded even when the caller has gone away.
	doneCtx, doneCancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer doneCancel()

	if outcome.Kind == OutcomeFailure {
		latest, err := s.finishFailed(doneCtx, session, outcome.Message)
		if err != nil {
			return nil, err
		}
		res := resultFor(NewController(latest, s.Submitter), false, false)
		res.Outcome = &outcome
		s.logger().Info("wizard submission failed", zap.String("sessionId", sessionID))
		return res, nil
	}

	res := resultFor(c, false, false)
	res.Outcome = &outcome
	if outcome.Kind == OutcomeRedirected {
		res.RedirectTo = outcome.Location
	} else {
		res.RedirectTo = s.ThankYouURL
	}

	if err := s.Repo.Delete(doneCtx, sessionID); err != nil {
		s.logger().Warn("wizard: failed to delete finished session", zap.String("sessionId", sessionID), zap.Error(err))
	}
	s.logger().Info("wizard booking submitted", zap.String("sessionId", sessionID), zap.Stringer("outcome", outcome.Kind))
	return res, nil
}

// finishFailed records a failed submission on the stored session, keeping
// anything written to it while the request was running.
func (s *DefaultWizardService) finishFailed(ctx context.Context, submitted *models.WizardSession, message string) (*models.WizardSession, error) {
	latest, err := s.Repo.Get(ctx, submitted.SessionID)
	if errors.Is(err, sessionRepo.ErrNotFound) {
		// Cancelled mid-flight; nothing left to update.
		return submitted, nil
	}
	if err != nil {
		return nil, err
	}
	latest.IsSubmitting = false
	latest.SubmitError = message
	latest.UpdatedAt = submitted.UpdatedAt
	if err := s.Repo.Save(ctx, latest); err != nil {
		return nil, err
	}
	return latest, nil
}

func (s *DefaultWizardService) CancelSession(ctx context.Context, sessionID string) error {
	if _, err := s.load(ctx, sessionID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to cancel wizard session: %w", err)
	}
	return nil
}

// apply loads a session, runs fn against its controller and saves the result.
// fn reports whether the step changed. Sessions with a submission in flight
// are read-only.
func (s *DefaultWizardService) apply(ctx context.Context, sessionID string, fn func(*Controller) (bool, error)) (*ActionResult, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	locked, err := s.Repo.SubmitLockHeld(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, ErrSubmissionInProgress
	}

	scrolled := false
	c := NewController(session, s.Submitter,
		WithLogger(s.logger()),
		WithListener(func(e Event) {
			if e.Kind == EventScrollToTop {
				scrolled = true
			}
		}))

	moved, err := fn(c)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return resultFor(c, moved, scrolled), nil
}

func (s *DefaultWizardService) load(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.Repo.Get(ctx, sessionID)
	if errors.Is(err, sessionRepo.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func resultFor(c *Controller, moved, scrolled bool) *ActionResult {
	return &ActionResult{
		Session:     c.Session(),
		CanAdvance:  c.CanAdvance(),
		Moved:       moved,
		ScrollToTop: scrolled,
	}
}
