package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookingwizard/config"
	"bookingwizard/cron"
	sessionRepo "bookingwizard/database/repository/session"
	"bookingwizard/handlers"
	"bookingwizard/routes"
	"bookingwizard/services/notification"
	"bookingwizard/services/wizard"
	"bookingwizard/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveNoWorker bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wizard API and booking endpoint",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveNoWorker, "no-worker", false, "Do not run the notification worker in this process")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := utils.GetSessionCacheClient()
	utils.StartHealthMonitor(ctx, redisClient, time.Minute)

	queueClient := asynq.NewClient(cron.QueueRedisOpt())
	defer queueClient.Close()
	queueNotifier, err := notification.NewQueueNotifier(queueClient, logger)
	if err != nil {
		return err
	}

	// services.
	wizardService := &wizard.DefaultWizardService{
		Repo:          sessionRepo.NewRedisSessionRepo(redisClient, config.AppConfig.SessionTTL()),
		Submitter:     wizard.NewSubmissionClient(config.AppConfig.BookingEndpoint, config.AppConfig.SubmitTimeout(), logger),
		Logger:        logger,
		SubmitTimeout: config.AppConfig.SubmitTimeout(),
		ThankYouURL:   config.AppConfig.ThankYouPath,
	}

	wizardHandler := handlers.NewWizardHandler(wizardService)
	bookHandler := handlers.NewBookHandler(queueNotifier, config.AppConfig.ThankYouPath)

	handlerBundle := &handlers.HandlerBundle{
		GetCatalog:    wizardHandler.GetCatalog,
		StartSession:  wizardHandler.StartSession,
		GetSession:    wizardHandler.GetSession,
		SetFields:     wizardHandler.SetFields,
		SetSensory:    wizardHandler.SetSensory,
		NextStep:      wizardHandler.NextStep,
		PrevStep:      wizardHandler.PrevStep,
		GoToStep:      wizardHandler.GoToStep,
		SubmitBooking: wizardHandler.SubmitBooking,
		DismissError:  wizardHandler.DismissError,
		CancelSession: wizardHandler.CancelSession,

		CreateBooking: bookHandler.CreateBooking,

		Health: handlers.Health,
	}

	router := routes.NewRouter(handlerBundle, logger, config.AppConfig.MaxRequestsPerMin)

	if !serveNoWorker {
		emailNotifier, err := newEmailNotifier(logger)
		if err != nil {
			logger.Warn("serve: notification worker disabled", zap.Error(err))
		} else {
			go func() {
				if err := cron.RunNotificationWorker(ctx, emailNotifier, logger); err != nil {
					logger.Error("serve: notification worker failed", zap.Error(err))
				}
			}()
		}
	}

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Sugar().Info("serve: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Sugar().Info("serve: server stopped gracefully")
	return nil
}

func newEmailNotifier(logger *zap.Logger) (*notification.EmailNotifier, error) {
	return notification.NewResendNotifier(
		config.AppConfig.ResendAPIKey,
		config.AppConfig.EmailFromAddress,
		config.AppConfig.BookingRecipient(),
		logger,
	)
}
