package reminders

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	apphttp "reserva_backend/internal/http"
	"reserva_backend/platform/apperr"
	"reserva_backend/platform/httpkit"
	"reserva_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// ReminderScanEnqueuer hands the scan off to an out-of-band worker. The
// scheduler's asynq client satisfies it; the port lives here so the
// scheduler package never has to know about this module.
type ReminderScanEnqueuer interface {
	EnqueueReminderScan(ctx context.Context) error
}

// Module exposes the reminder scan trigger for external cron services.
// When an asynq client is wired the scan runs on the worker; otherwise it
// runs inline in the request.
type Module struct {
	svc        *Service
	enqueuer   ReminderScanEnqueuer
	cronSecret string
	log        *logger.Logger
}

// NewModule wires the reminder trigger endpoint.
func NewModule(svc *Service, enqueuer ReminderScanEnqueuer, cronSecret string, log *logger.Logger) *Module {
	return &Module{svc: svc, enqueuer: enqueuer, cronSecret: cronSecret, log: log}
}

// Name identifies the module in logs.
func (m *Module) Name() string { return "reminders" }

// Service exposes the reminder service for worker wiring.
func (m *Module) Service() *Service { return m.svc }

// RegisterRoutes mounts the internal trigger endpoint.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	internal := ctx.V1.Group("/internal")
	internal.POST("/reminders/run", m.runReminders)
}

// runReminders authenticates the external cron caller with the shared
// secret and kicks off a scan.
// POST /internal/reminders/run
func (m *Module) runReminders(c *gin.Context) {
	if m.cronSecret == "" {
		httpkit.HandleError(c, apperr.Forbidden("cron trigger is not configured"))
		return
	}

	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if subtle.ConstantTimeCompare([]byte(token), []byte(m.cronSecret)) != 1 {
		httpkit.HandleError(c, apperr.Unauthorized("invalid cron secret"))
		return
	}

	if m.enqueuer != nil {
		if err := m.enqueuer.EnqueueReminderScan(c.Request.Context()); err != nil {
			m.log.Error("failed to enqueue reminder scan", "error", err)
			httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, "failed to enqueue reminder scan", err))
			return
		}
		httpkit.JSON(c, http.StatusAccepted, gin.H{"status": "enqueued"})
		return
	}

	sent, err := m.svc.SendPendingReminders(c.Request.Context())
	if err != nil {
		m.log.Error("reminder scan failed", "error", err)
		httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, "reminder scan failed", err))
		return
	}
	httpkit.OK(c, gin.H{"remindersSent": sent})
}

var _ apphttp.Module = (*Module)(nil)
