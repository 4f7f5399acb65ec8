package cron

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"bookingwizard/models"
	"bookingwizard/services/tasks"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	got []models.BookingNotification
	err error
}

func (r *recordingNotifier) NotifyBooking(_ context.Context, n models.BookingNotification) error {
	r.got = append(r.got, n)
	return r.err
}

func bookingTask(t *testing.T) *asynq.Task {
	t.Helper()
	data := models.NewFormData()
	data.Name = "Alex Smith"
	data.ContactDetail = "alex@example.com"
	task, _, err := tasks.NewBookingNotificationTask(models.NewBookingNotification(data, time.Now()))
	require.NoError(t, err)
	return task
}

func TestNotificationMuxDispatchesBookingTask(t *testing.T) {
	notifier := &recordingNotifier{}
	mux := NewNotificationMux(notifier, zap.NewNop())

	require.NoError(t, mux.ProcessTask(context.Background(), bookingTask(t)))
	require.Len(t, notifier.got, 1)
	assert.Equal(t, "Alex Smith", notifier.got[0].Name)
}

func TestBadPayloadIsNotRetried(t *testing.T) {
	mux := NewNotificationMux(&recordingNotifier{}, zap.NewNop())

	err := mux.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeBookingNotify, []byte("not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestValidationFailureIsNotRetried(t *testing.T) {
	v := validator.New()
	verr := v.Struct(models.BookingNotification{})
	require.Error(t, verr)

	notifier := &recordingNotifier{err: fmt.Errorf("invalid booking notification: %w", verr)}
	mux := NewNotificationMux(notifier, zap.NewNop())

	assert.ErrorIs(t, mux.ProcessTask(context.Background(), bookingTask(t)), asynq.SkipRetry)
}

func TestSendFailureIsRetried(t *testing.T) {
	boom := errors.New("smtp down")
	mux := NewNotificationMux(&recordingNotifier{err: boom}, zap.NewNop())

	err := mux.ProcessTask(context.Background(), bookingTask(t))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
