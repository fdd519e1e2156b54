// Package reminders scans for upcoming confirmed bookings and dispatches
// reminder notifications over the tenant's enabled channels.
package reminders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reserva_backend/internal/booking/domain"
	"reserva_backend/internal/booking/repository"
	"reserva_backend/internal/email"
	"reserva_backend/internal/telegram"
	"reserva_backend/platform/logger"
	"reserva_backend/platform/metrics"
	"reserva_backend/platform/sanitize"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// scanWindow bounds the repository query. Individual tenants narrow it
// further through their reminderHoursPrior setting.
const scanWindow = 48 * time.Hour

// defaultReminderBody is used when the tenant has not configured a
// reminder template. {{serviceName}} is substituted before sending.
const defaultReminderBody = "<p>This is a reminder for your upcoming {{serviceName}} appointment.</p>"

const reminderTimeLayout = "Mon, 02 Jan 2006 15:04"

// Service sends due booking reminders.
type Service struct {
	store     repository.Store
	sender    email.Sender
	messenger telegram.Messenger
	metrics   *metrics.Metrics
	log       *logger.Logger
	now       func() time.Time
}

// New creates the reminder service.
func New(store repository.Store, sender email.Sender, messenger telegram.Messenger, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		sender:    sender,
		messenger: messenger,
		metrics:   m,
		log:       log,
		now:       time.Now,
	}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SendPendingReminders processes every confirmed booking inside the scan
// window that has not been reminded yet. Each booking is marked as reminded
// exactly once, whether or not delivery succeeded: a broken mailbox must
// not make the customer receive the same reminder on every scan. Failures
// on a single booking are logged and skipped so the rest of the batch still
// runs. Returns the number of bookings reminded.
func (s *Service) SendPendingReminders(ctx context.Context) (int, error) {
	now := s.now().UTC()
	bookings, err := s.store.GetPendingReminders(ctx, now, now.Add(scanWindow))
	if err != nil {
		return 0, err
	}

	tenants := make(map[uuid.UUID]*domain.Tenant)
	sent := 0

	for i := range bookings {
		booking := &bookings[i]

		tenant, ok := tenants[booking.TenantID]
		if !ok {
			tenant, err = s.store.GetTenantByID(ctx, booking.TenantID)
			if err != nil {
				s.log.Error("skipping reminder, tenant lookup failed", "bookingId", booking.ID, "tenantId", booking.TenantID, "error", err.Error())
				continue
			}
			tenants[booking.TenantID] = tenant
		}
		if tenant == nil {
			s.log.Warn("skipping reminder for unknown tenant", "bookingId", booking.ID, "tenantId", booking.TenantID)
			continue
		}

		settings := tenant.Settings()

		// The repository window is a superset; the tenant's own lead time
		// decides whether the reminder is due right now.
		hoursUntil := booking.StartTime.Sub(now).Hours()
		if hoursUntil <= 0 || hoursUntil > float64(settings.ReminderHoursPrior) {
			continue
		}

		s.dispatch(ctx, booking, tenant, settings)

		// An unmarked booking is retried on the next scan.
		if err := s.markReminded(ctx, booking.ID, now); err != nil {
			s.log.Error("failed to mark booking as reminded", "bookingId", booking.ID, "error", err.Error())
			continue
		}
		sent++
	}

	return sent, nil
}

// dispatch sends the reminder over every enabled channel concurrently.
// Delivery failures are logged and counted but never abort the scan.
func (s *Service) dispatch(ctx context.Context, booking *domain.Booking, tenant *domain.Tenant, settings domain.TenantSettings) {
	serviceName := s.resolveServiceName(ctx, booking.ServiceID, tenant.Language())
	startTime := booking.StartTime.Format(reminderTimeLayout)
	body := renderReminderBody(settings.ReminderTemplateBody, serviceName)

	var g errgroup.Group

	if settings.NotifyEmailReminders {
		g.Go(func() error {
			toEmail, err := s.store.GetCustomerEmail(ctx, booking.CustomerID)
			if err != nil || toEmail == "" {
				if err != nil {
					s.recordFailure("email", booking.ID.String(), err)
				}
				return nil
			}
			subject := fmt.Sprintf("Reminder: your appointment with %s", tenant.Name)
			emailBody := fmt.Sprintf("%s<p>%s</p>", body, startTime)
			if err := s.sender.SendCustomEmail(ctx, toEmail, subject, emailBody); err != nil {
				s.recordFailure("email", booking.ID.String(), err)
				return nil
			}
			if s.metrics != nil {
				s.metrics.RemindersSent.WithLabelValues("email").Inc()
			}
			return nil
		})
	}

	if settings.NotifyTelegramReminders {
		g.Go(func() error {
			chatID, err := s.store.GetCustomerTelegramID(ctx, booking.CustomerID)
			if err != nil || chatID == "" {
				if err != nil {
					s.recordFailure("telegram", booking.ID.String(), err)
				}
				return nil
			}
			// Same template as the email, as plain text.
			text := fmt.Sprintf("🔔 %s\n%s", sanitize.StripHTML(body), startTime)
			if err := s.messenger.SendMessage(ctx, chatID, text); err != nil {
				s.recordFailure("telegram", booking.ID.String(), err)
				return nil
			}
			if s.metrics != nil {
				s.metrics.RemindersSent.WithLabelValues("telegram").Inc()
			}
			return nil
		})
	}

	// Goroutines swallow their own errors; Wait only synchronizes.
	_ = g.Wait()
}

func (s *Service) resolveServiceName(ctx context.Context, serviceID uuid.UUID, language string) string {
	svc, err := s.store.GetServiceByID(ctx, serviceID)
	if err != nil || svc == nil {
		return domain.FallbackServiceName
	}
	return svc.LocalizedName(language)
}

func (s *Service) markReminded(ctx context.Context, bookingID uuid.UUID, at time.Time) error {
	_, err := s.store.UpdateBooking(ctx, bookingID, repository.BookingUpdate{ReminderSentAt: &at})
	return err
}

func (s *Service) recordFailure(channel, bookingID string, err error) {
	if s.metrics != nil {
		s.metrics.NotificationFailures.WithLabelValues(channel).Inc()
	}
	s.log.NotificationError(channel, bookingID, err)
}

func renderReminderBody(template, serviceName string) string {
	body := template
	if strings.TrimSpace(body) == "" {
		body = defaultReminderBody
	}
	return strings.ReplaceAll(body, "{{serviceName}}", serviceName)
}
