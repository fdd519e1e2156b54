package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reserva_backend/internal/admin"
	"reserva_backend/internal/booking"
	"reserva_backend/internal/booking/repository"
	"reserva_backend/internal/email"
	"reserva_backend/internal/events"
	apphttp "reserva_backend/internal/http"
	"reserva_backend/internal/http/router"
	"reserva_backend/internal/notification"
	"reserva_backend/internal/reminders"
	"reserva_backend/internal/scheduler"
	"reserva_backend/internal/telegram"
	"reserva_backend/migrations"
	"reserva_backend/platform/config"
	"reserva_backend/platform/db"
	"reserva_backend/platform/logger"
	"reserva_backend/platform/metrics"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	defer eventBus.Wait()

	m := metrics.New(prometheus.DefaultRegisterer)

	store := repository.NewPostgres(pool)

	sender := buildEmailSender(cfg, log)
	messenger := buildMessenger(cfg, log)

	enqueuer, closeEnqueuer := initReminderEnqueuer(cfg, log)
	if closeEnqueuer != nil {
		defer closeEnqueuer()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(store, sender, messenger, cfg, m, log)
	notificationModule.RegisterHandlers(eventBus)

	bookingModule := booking.NewModule(store, eventBus, m, log)
	adminModule := admin.NewModule(store, eventBus, m, log)

	remindersSvc := reminders.New(store, sender, messenger, m, log)
	remindersModule := reminders.NewModule(remindersSvc, enqueuer, cfg.CronSecret, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Metrics:  m,
		Modules: []apphttp.Module{
			bookingModule,
			adminModule,
			remindersModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// buildEmailSender returns an SMTP sender when email delivery is configured
// and a noop sender otherwise.
func buildEmailSender(cfg *config.Config, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() {
		log.Warn("email delivery disabled; confirmations and reminders will not be mailed")
		return email.NoopSender{}
	}
	return email.NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}

// buildMessenger authenticates the Telegram bot when a token is configured.
// Auth failures degrade to a noop messenger instead of blocking startup.
func buildMessenger(cfg *config.Config, log *logger.Logger) telegram.Messenger {
	token := cfg.GetTelegramBotToken()
	if token == "" {
		log.Warn("TELEGRAM_BOT_TOKEN not configured; telegram notifications disabled")
		return telegram.Noop{}
	}
	bot, err := telegram.NewBot(token)
	if err != nil {
		log.Error("failed to initialize telegram bot", "error", err)
		return telegram.Noop{}
	}
	return bot
}

func initReminderEnqueuer(cfg config.SchedulerConfig, log *logger.Logger) (reminders.ReminderScanEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; reminder scans run inline")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
