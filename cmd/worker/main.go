package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smarthealth/booking-api/internal/config"
	"github.com/smarthealth/booking-api/internal/email"
	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
	"github.com/smarthealth/booking-api/internal/repository/postgres"
	"github.com/smarthealth/booking-api/pkg/logger"
	"github.com/smarthealth/booking-api/pkg/messaging"
	"github.com/smarthealth/booking-api/pkg/messaging/redis"
	"github.com/smarthealth/booking-api/pkg/metrics"
	"github.com/smarthealth/booking-api/pkg/worker"
)

// Dispatcher consumes notification events off the broker and delivers them
// over SMTP, recording the result on the notification row.
type Dispatcher struct {
	broker        messaging.Broker
	notifications repository.NotificationRepository
	sender        email.Service
	logger        *zerolog.Logger
	metrics       *metrics.Metrics
	maxRetries    int
	retryDelay    time.Duration
}

func NewDispatcher(
	broker messaging.Broker,
	notifications repository.NotificationRepository,
	sender email.Service,
	logger *zerolog.Logger,
	m *metrics.Metrics,
	maxRetries int,
	retryDelay time.Duration,
) *Dispatcher {
	return &Dispatcher{
		broker:        broker,
		notifications: notifications,
		sender:        sender,
		logger:        logger,
		metrics:       m,
		maxRetries:    maxRetries,
		retryDelay:    retryDelay,
	}
}

func (d *Dispatcher) Start(ctx context.Context) error {
	msgs, err := d.broker.Subscribe(ctx, model.EventNotificationCreated)
	if err != nil {
		return err
	}

	d.logger.Info().Msg("notification dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Msg("notification dispatcher shutting down")
			return nil
		case payload, ok := <-msgs:
			if !ok {
				return nil
			}
			d.handle(ctx, payload)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, payload []byte) {
	var notification model.Notification
	if err := json.Unmarshal(payload, &notification); err != nil {
		d.logger.Error().Err(err).Msg("failed to decode notification event")
		return
	}

	var sendErr error
	for attempt := 0; attempt < d.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(d.retryDelay * time.Duration(attempt))
			notification.RetryCount++
			notification.Status = model.NotificationStatusRetrying
		}

		sendErr = d.sender.Send(ctx, &email.Message{
			To:      notification.Recipient,
			Subject: notification.Subject,
			Body:    notification.Content,
		})
		if sendErr == nil {
			break
		}

		d.logger.Warn().
			Err(sendErr).
			Str("notification_id", notification.ID.String()).
			Int("attempt", attempt+1).
			Msg("email send failed")
	}

	now := time.Now()
	notification.UpdatedAt = now
	if sendErr != nil {
		d.metrics.EmailsFailed.Inc()
		notification.Status = model.NotificationStatusFailed
		errStr := sendErr.Error()
		notification.LastError = &errStr
	} else {
		d.metrics.EmailsSent.Inc()
		notification.Status = model.NotificationStatusSent
		notification.SentAt = &now
		notification.LastError = nil
	}

	if err := d.notifications.Update(ctx, &notification); err != nil {
		d.logger.Error().Err(err).
			Str("notification_id", notification.ID.String()).
			Msg("failed to update notification")
	}
}

func setupHealthCheck(l *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			l.Error().Err(err).Msg("health check server failed")
			os.Exit(1)
		}
	}()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Redis broker")
	}
	defer broker.Close()

	notificationRepo := postgres.NewNotificationRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	m := metrics.NewMetrics("smarthealth", "worker")

	processor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:     cfg.Outbox.BatchSize,
			PollInterval:  cfg.Outbox.PollInterval,
			RetryAttempts: cfg.Outbox.RetryAttempts,
			RetryDelay:    cfg.Outbox.RetryDelay,
		},
		logger.NewLogger(nil),
		m,
	)

	dispatcher := NewDispatcher(
		broker,
		notificationRepo,
		email.NewSMTPService(cfg.Email),
		&log.Logger,
		m,
		cfg.Outbox.RetryAttempts,
		cfg.Outbox.RetryDelay,
	)

	setupHealthCheck(&log.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("shutting down...")
		cancel()
	}()

	go func() {
		if err := dispatcher.Start(ctx); err != nil {
			log.Error().Err(err).Msg("dispatcher stopped")
			cancel()
		}
	}()

	// Retention sweep: processed outbox rows older than a day are noise.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := outboxRepo.DeleteProcessedBefore(ctx, time.Now().Add(-24*time.Hour))
				if err != nil {
					log.Error().Err(err).Msg("outbox cleanup failed")
					continue
				}
				if deleted > 0 {
					log.Info().Int64("deleted", deleted).Msg("outbox cleanup")
				}
			}
		}
	}()

	processor.Start(ctx)
}
