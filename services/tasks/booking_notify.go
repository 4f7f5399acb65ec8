package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"bookingwizard/models"

	"github.com/hibiken/asynq"
)

const TypeBookingNotify = "booking:notify"

// NewBookingNotificationTask wraps an accepted booking for the notification worker.
func NewBookingNotificationTask(payload models.BookingNotification) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal booking notification: %w", err)
	}
	task := asynq.NewTask(TypeBookingNotify, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// ParseBookingNotification decodes the payload of a booking:notify task.
func ParseBookingNotification(task *asynq.Task) (models.BookingNotification, error) {
	var p models.BookingNotification
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid booking notification payload: %w", err)
	}
	return p, nil
}
