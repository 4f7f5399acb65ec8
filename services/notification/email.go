package notification

import (
	"context"
	"errors"
	"fmt"

	"bookingwizard/models"

	"github.com/go-playground/validator/v10"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

var (
	ErrEmailNotConfigured     = errors.New("email is not configured")
	ErrRecipientNotConfigured = errors.New("booking recipient email is not configured")
)

// EmailSender is the part of the Resend emails service used here.
type EmailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailNotifier delivers booking notifications by email through Resend.
type EmailNotifier struct {
	emails   EmailSender
	from     string
	to       string
	validate *validator.Validate
	logger   *zap.Logger
}

// NewResendNotifier builds an EmailNotifier on a Resend client.
func NewResendNotifier(apiKey, from, to string, logger *zap.Logger) (*EmailNotifier, error) {
	if apiKey == "" {
		return nil, ErrEmailNotConfigured
	}
	return NewEmailNotifier(resend.NewClient(apiKey).Emails, from, to, logger)
}

func NewEmailNotifier(emails EmailSender, from, to string, logger *zap.Logger) (*EmailNotifier, error) {
	if emails == nil {
		return nil, ErrEmailNotConfigured
	}
	if to == "" {
		return nil, ErrRecipientNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailNotifier{
		emails:   emails,
		from:     from,
		to:       to,
		validate: validator.New(),
		logger:   logger,
	}, nil
}

// Validate checks a payload against the notification schema.
func (e *EmailNotifier) Validate(n models.BookingNotification) error {
	if err := e.validate.Struct(n); err != nil {
		return fmt.Errorf("invalid booking notification: %w", err)
	}
	return nil
}

func (e *EmailNotifier) NotifyBooking(ctx context.Context, n models.BookingNotification) error {
	if err := e.Validate(n); err != nil {
		return err
	}

	html, err := RenderBookingEmail(n)
	if err != nil {
		return err
	}

	sent, err := e.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    e.from,
		To:      []string{e.to},
		Subject: BookingEmailSubject(n),
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("NotifyBooking: failed to send email: %w", err)
	}

	e.logger.Info("booking email sent", zap.String("emailId", sent.Id), zap.String("client", n.Name))
	return nil
}
