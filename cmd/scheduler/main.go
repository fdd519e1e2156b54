package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reserva_backend/internal/booking/repository"
	"reserva_backend/internal/email"
	"reserva_backend/internal/reminders"
	"reserva_backend/internal/scheduler"
	"reserva_backend/internal/telegram"
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

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	m := metrics.New(prometheus.DefaultRegisterer)
	store := repository.NewPostgres(pool)

	sender := buildEmailSender(cfg, log)
	messenger := buildMessenger(cfg, log)

	remindersSvc := reminders.New(store, sender, messenger, m, log)

	worker, err := scheduler.NewWorker(cfg, remindersSvc, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func buildEmailSender(cfg *config.Config, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() {
		log.Warn("email delivery disabled; reminders will not be mailed")
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

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
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
