// Package notification provides event handlers for sending notifications
// (emails and Telegram messages) in response to domain events. The module
// subscribes to events and inverts the dependency: booking modules never
// need to know about mail providers or chat APIs.
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reserva_backend/internal/booking/domain"
	"reserva_backend/internal/booking/repository"
	"reserva_backend/internal/email"
	"reserva_backend/internal/events"
	"reserva_backend/internal/telegram"
	"reserva_backend/platform/config"
	"reserva_backend/platform/logger"
	"reserva_backend/platform/metrics"

	"github.com/google/uuid"
)

const startTimeLayout = "Mon, 02 Jan 2006 15:04"

// Module handles all notification-related event subscriptions.
type Module struct {
	store     repository.Store
	sender    email.Sender
	messenger telegram.Messenger
	cfg       config.NotificationConfig
	metrics   *metrics.Metrics
	log       *logger.Logger
}

// New creates a new notification module.
func New(store repository.Store, sender email.Sender, messenger telegram.Messenger, cfg config.NotificationConfig, m *metrics.Metrics, log *logger.Logger) *Module {
	return &Module{
		store:     store,
		sender:    sender,
		messenger: messenger,
		cfg:       cfg,
		metrics:   m,
		log:       log,
	}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.BookingCreated{}.EventName(), m)
	bus.Subscribe(events.BookingCancelled{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.BookingCreated:
		return m.handleBookingCreated(ctx, e)
	case events.BookingCancelled:
		return m.handleBookingCancelled(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

// bookingContext bundles the entities every notification needs.
type bookingContext struct {
	tenant   *domain.Tenant
	service  *domain.Service
	customer *domain.Customer
}

func (m *Module) loadBookingContext(ctx context.Context, tenantID, serviceID, customerID uuid.UUID) (*bookingContext, error) {
	tenant, err := m.store.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, fmt.Errorf("tenant %s not found", tenantID)
	}

	svc, err := m.store.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("service %s not found", serviceID)
	}

	customer, err := m.store.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s not found", customerID)
	}

	return &bookingContext{tenant: tenant, service: svc, customer: customer}, nil
}

func (m *Module) handleBookingCreated(ctx context.Context, e events.BookingCreated) error {
	bc, err := m.loadBookingContext(ctx, e.TenantID, e.ServiceID, e.CustomerID)
	if err != nil {
		m.log.Error("failed to load booking context for confirmation", "bookingId", e.BookingID, "error", err)
		return err
	}

	settings := bc.tenant.Settings()
	serviceName := bc.service.LocalizedName(bc.tenant.Language())
	startTime := e.StartTime.Format(startTimeLayout)

	if settings.NotifyEmailConfirmations && bc.customer.Email != "" {
		manageURL := m.buildManageURL(e.BookingID, e.ManagementToken)
		if err := m.sender.SendBookingConfirmationEmail(ctx, bc.customer.Email, bc.customer.Name, bc.tenant.Name, serviceName, startTime, manageURL); err != nil {
			m.recordFailure("email", e.BookingID.String(), err)
		} else {
			m.markConfirmationSent(ctx, e.BookingID)
			m.log.Info("booking confirmation email sent", "bookingId", e.BookingID, "email", bc.customer.Email)
		}
	}

	if settings.NotifyTelegramConfirmations && bc.tenant.TelegramChatID != nil {
		text := fmt.Sprintf(
			"📅 <b>Nueva Reserva</b>\n\nCliente: %s\nServicio: %s\nFecha: %s",
			bc.customer.Name, serviceName, startTime,
		)
		if err := m.messenger.SendMessage(ctx, *bc.tenant.TelegramChatID, text); err != nil {
			m.recordFailure("telegram", e.BookingID.String(), err)
		}
	}

	return nil
}

func (m *Module) handleBookingCancelled(ctx context.Context, e events.BookingCancelled) error {
	bc, err := m.loadBookingContext(ctx, e.TenantID, e.ServiceID, e.CustomerID)
	if err != nil {
		m.log.Error("failed to load booking context for cancellation", "bookingId", e.BookingID, "error", err)
		return err
	}

	settings := bc.tenant.Settings()
	serviceName := bc.service.LocalizedName(bc.tenant.Language())
	startTime := e.StartTime.Format(startTimeLayout)

	if settings.NotifyEmailConfirmations && bc.customer.Email != "" {
		if err := m.sender.SendBookingCancelledEmail(ctx, bc.customer.Email, bc.customer.Name, bc.tenant.Name, serviceName, startTime); err != nil {
			m.recordFailure("email", e.BookingID.String(), err)
		}
	}

	if settings.NotifyTelegramConfirmations && bc.tenant.TelegramChatID != nil {
		heading := "❌ <b>Cita Cancelada por Cliente</b>"
		if e.CancelledBy == "tenant" {
			heading = "❌ <b>Cita Cancelada</b>"
		}
		text := fmt.Sprintf(
			"%s\n\nCliente: %s\nServicio: %s\nFecha: %s",
			heading, bc.customer.Name, serviceName, startTime,
		)
		if err := m.messenger.SendMessage(ctx, *bc.tenant.TelegramChatID, text); err != nil {
			m.recordFailure("telegram", e.BookingID.String(), err)
		}
	}

	return nil
}

// markConfirmationSent stamps the booking once the confirmation email went
// out. Failures only log; the booking itself is already persisted.
func (m *Module) markConfirmationSent(ctx context.Context, bookingID uuid.UUID) {
	sentAt := time.Now().UTC()
	if _, err := m.store.UpdateBooking(ctx, bookingID, repository.BookingUpdate{ConfirmationSentAt: &sentAt}); err != nil {
		m.log.Error("failed to mark confirmation sent", "bookingId", bookingID, "error", err)
	}
}

func (m *Module) recordFailure(channel, bookingID string, err error) {
	if m.metrics != nil {
		m.metrics.NotificationFailures.WithLabelValues(channel).Inc()
	}
	m.log.NotificationError(channel, bookingID, err)
}

func (m *Module) buildManageURL(bookingID uuid.UUID, token string) string {
	base := strings.TrimRight(m.cfg.GetAppBaseURL(), "/")
	return base + "/bookings/" + bookingID.String() + "?token=" + token
}
