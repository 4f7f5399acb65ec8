package cron

import (
	"context"
	"errors"
	"fmt"

	"bookingwizard/config"
	"bookingwizard/services/notification"
	"bookingwizard/services/tasks"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt returns the asynq connection settings for the notification queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewNotificationMux routes booking notification tasks to notifier.
func NewNotificationMux(notifier notification.BookingNotifier, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingNotify, handleBookingNotification(notifier, logger))
	return mux
}

// RunNotificationWorker processes booking notifications until ctx is done.
func RunNotificationWorker(ctx context.Context, notifier notification.BookingNotifier, logger *zap.Logger) error {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	logger.Info("notification worker starting")
	if err := srv.Start(NewNotificationMux(notifier, logger)); err != nil {
		return fmt.Errorf("failed to start notification worker: %w", err)
	}

	<-ctx.Done()
	srv.Shutdown()
	logger.Info("notification worker stopped")
	return nil
}

func handleBookingNotification(notifier notification.BookingNotifier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := tasks.ParseBookingNotification(task)
		if err != nil {
			logger.Error("booking notification: bad payload", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		if err := notifier.NotifyBooking(ctx, n); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				logger.Error("booking notification: payload rejected", zap.Error(err))
				return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
			}
			logger.Warn("booking notification: send failed, will retry", zap.Error(err))
			return err
		}
		return nil
	}
}
