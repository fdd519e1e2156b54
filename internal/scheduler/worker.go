package scheduler

import (
	"context"
	"fmt"
	"time"

	"reserva_backend/platform/config"
	"reserva_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// ReminderScanner runs one reminder scan pass. Declared on the consumer
// side so the worker stays decoupled from the reminders module.
type ReminderScanner interface {
	SendPendingReminders(ctx context.Context) (int, error)
}

// Worker consumes scheduler tasks and owns the periodic reminder scan.
type Worker struct {
	server      *asynq.Server
	mux         *asynq.ServeMux
	scheduler   *asynq.Scheduler
	reminders   ReminderScanner
	scanTimeout time.Duration
	log         *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, svc ReminderScanner, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 5
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	periodic := asynq.NewScheduler(opt, nil)
	if _, err := periodic.Register(cfg.GetReminderScanSpec(), NewReminderScanTask(), asynq.Queue(queue)); err != nil {
		return nil, fmt.Errorf("register reminder scan: %w", err)
	}

	w := &Worker{
		server:      server,
		mux:         asynq.NewServeMux(),
		scheduler:   periodic,
		reminders:   svc,
		scanTimeout: cfg.GetReminderScanTimeout(),
		log:         log,
	}
	w.mux.HandleFunc(TaskReminderScan, w.handleReminderScan)

	return w, nil
}

func (w *Worker) handleReminderScan(ctx context.Context, _ *asynq.Task) error {
	if w.scanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.scanTimeout)
		defer cancel()
	}

	sent, err := w.reminders.SendPendingReminders(ctx)
	if err != nil {
		w.log.Error("reminder scan failed", "error", err)
		return err
	}
	w.log.Info("reminder scan completed", "remindersSent", sent)
	return nil
}

// Run starts the periodic scheduler and the task server, blocking until
// the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.scheduler.Shutdown()
		w.server.Shutdown()
	}()

	go func() {
		if err := w.scheduler.Run(); err != nil {
			w.log.Error("periodic scheduler stopped", "error", err)
		}
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
