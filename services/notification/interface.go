package notification

import (
	"context"
	"fmt"

	"bookingwizard/models"
	"bookingwizard/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingNotifier announces an accepted booking request.
type BookingNotifier interface {
	NotifyBooking(ctx context.Context, n models.BookingNotification) error
}

// Enqueuer is the part of *asynq.Client the queue notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotifier hands notifications to the background worker.
type QueueNotifier struct {
	client Enqueuer
	logger *zap.Logger
}

func NewQueueNotifier(client Enqueuer, logger *zap.Logger) (*QueueNotifier, error) {
	if client == nil {
		return nil, fmt.Errorf("notification service initialization error: queue client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueueNotifier{client: client, logger: logger}, nil
}

func (q *QueueNotifier) NotifyBooking(ctx context.Context, n models.BookingNotification) error {
	task, opts, err := tasks.NewBookingNotificationTask(n)
	if err != nil {
		return err
	}
	info, err := q.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("NotifyBooking: failed to enqueue notification: %w", err)
	}
	q.logger.Info("booking notification queued", zap.String("taskId", info.ID), zap.String("queue", info.Queue))
	return nil
}
