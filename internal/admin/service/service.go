// Package service implements the tenant dashboard operations: catalog and
// schedule management, booking oversight and policy settings.
package service

import (
	"context"
	"time"

	"reserva_backend/internal/booking/domain"
	"reserva_backend/internal/booking/repository"
	"reserva_backend/internal/events"
	"reserva_backend/platform/apperr"
	"reserva_backend/platform/logger"
	"reserva_backend/platform/metrics"
	"reserva_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Service implements the tenant admin operations. Every method is scoped to
// the tenant extracted from the caller's JWT.
type Service struct {
	store   repository.Store
	bus     events.Bus
	metrics *metrics.Metrics
	log     *logger.Logger
}

// New creates the admin service.
func New(store repository.Store, bus events.Bus, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{store: store, bus: bus, metrics: m, log: log}
}

// =============================================================================
// Services
// =============================================================================

// ListServices returns the tenant's services.
func (s *Service) ListServices(ctx context.Context, tenantID uuid.UUID) ([]domain.Service, error) {
	return s.store.ListServicesByTenant(ctx, tenantID)
}

// CreateService adds a bookable service.
func (s *Service) CreateService(ctx context.Context, tenantID uuid.UUID, input repository.ServiceInput) (*domain.Service, error) {
	if !hasTranslation(input.Name) {
		return nil, apperr.Validation("service name requires at least one translation")
	}
	return s.store.CreateService(ctx, tenantID, input)
}

// UpdateService partially updates a service.
func (s *Service) UpdateService(ctx context.Context, tenantID, id uuid.UUID, update repository.ServiceUpdate) (*domain.Service, error) {
	if update.Name != nil && !hasTranslation(update.Name) {
		return nil, apperr.Validation("service name requires at least one translation")
	}
	svc, err := s.store.UpdateService(ctx, tenantID, id, update)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperr.NotFound("service not found")
	}
	return svc, nil
}

// DeleteService removes a service.
func (s *Service) DeleteService(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.DeleteService(ctx, tenantID, id)
}

func hasTranslation(name map[string]string) bool {
	for _, v := range name {
		if v != "" {
			return true
		}
	}
	return false
}

// =============================================================================
// Schedules
// =============================================================================

// ListSchedules returns the tenant's weekly blocks.
func (s *Service) ListSchedules(ctx context.Context, tenantID uuid.UUID) ([]domain.Schedule, error) {
	return s.store.ListSchedules(ctx, tenantID)
}

// CreateSchedule adds a weekly opening block after validating its window.
func (s *Service) CreateSchedule(ctx context.Context, tenantID uuid.UUID, input repository.ScheduleInput) (*domain.Schedule, error) {
	if err := validateWindow(input.OpenTime, input.CloseTime); err != nil {
		return nil, err
	}
	if input.ValidFrom > input.ValidTo {
		return nil, apperr.Validation("validFrom must not be after validTo")
	}
	return s.store.CreateSchedule(ctx, tenantID, input)
}

// DeleteSchedule removes a weekly block.
func (s *Service) DeleteSchedule(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.DeleteSchedule(ctx, tenantID, id)
}

// =============================================================================
// Schedule exceptions
// =============================================================================

// ListScheduleExceptions returns the tenant's per-date overrides.
func (s *Service) ListScheduleExceptions(ctx context.Context, tenantID uuid.UUID) ([]domain.ScheduleException, error) {
	return s.store.ListScheduleExceptions(ctx, tenantID)
}

// CreateScheduleException adds a per-date override. Open exceptions must
// carry a valid window; closed ones must not.
func (s *Service) CreateScheduleException(ctx context.Context, tenantID uuid.UUID, input repository.ExceptionInput) (*domain.ScheduleException, error) {
	input.Reason = sanitize.TextPtr(input.Reason)
	if input.IsClosed {
		input.OpenTime = nil
		input.CloseTime = nil
	} else {
		if input.OpenTime == nil || input.CloseTime == nil {
			return nil, apperr.Validation("open exceptions require openTime and closeTime")
		}
		if err := validateWindow(*input.OpenTime, *input.CloseTime); err != nil {
			return nil, err
		}
	}
	return s.store.CreateScheduleException(ctx, tenantID, input)
}

// DeleteScheduleException removes a per-date override.
func (s *Service) DeleteScheduleException(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.DeleteScheduleException(ctx, tenantID, id)
}

func validateWindow(openStr, closeStr string) error {
	// Any date works as anchor; only the wall-clock ordering matters.
	anchor := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	open, err := domain.AtTime(anchor, openStr)
	if err != nil {
		return apperr.Validation("openTime must be formatted as HH:mm")
	}
	close, err := domain.AtTime(anchor, closeStr)
	if err != nil {
		return apperr.Validation("closeTime must be formatted as HH:mm")
	}
	if !open.Before(close) {
		return apperr.Validation("openTime must be before closeTime")
	}
	return nil
}

// =============================================================================
// Bookings
// =============================================================================

// ListBookings returns the tenant's bookings narrowed by the filter.
func (s *Service) ListBookings(ctx context.Context, tenantID uuid.UUID, filter repository.BookingFilter) ([]domain.Booking, error) {
	return s.store.ListBookings(ctx, tenantID, filter)
}

// allowedTransitions describes the booking lifecycle: pending bookings are
// confirmed or cancelled, confirmed ones complete or cancel. Cancelled and
// completed are terminal.
var allowedTransitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingStatusPending:   {domain.BookingStatusConfirmed, domain.BookingStatusCancelled},
	domain.BookingStatusConfirmed: {domain.BookingStatusCompleted, domain.BookingStatusCancelled},
}

// UpdateBookingStatus moves a booking through its lifecycle.
func (s *Service) UpdateBookingStatus(ctx context.Context, tenantID, bookingID uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	if !domain.ValidBookingStatus(status) {
		return nil, apperr.Validation("unknown booking status")
	}

	booking, err := s.store.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.TenantID != tenantID {
		return nil, apperr.NotFound("booking not found")
	}
	if !transitionAllowed(booking.Status, status) {
		return nil, apperr.Conflict("cannot transition booking from " + string(booking.Status) + " to " + string(status))
	}

	updated, err := s.store.UpdateBooking(ctx, bookingID, repository.BookingUpdate{Status: &status})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("booking not found")
	}

	s.log.BookingEvent("status_"+string(status), updated.ID.String(), tenantID.String())

	if s.bus != nil {
		if status == domain.BookingStatusCancelled {
			if s.metrics != nil {
				s.metrics.BookingsCancelled.WithLabelValues("tenant").Inc()
			}
			s.bus.Publish(ctx, events.BookingCancelled{
				BaseEvent:   events.NewBaseEvent(),
				BookingID:   updated.ID,
				TenantID:    updated.TenantID,
				ServiceID:   updated.ServiceID,
				CustomerID:  updated.CustomerID,
				StartTime:   updated.StartTime,
				CancelledBy: "tenant",
			})
		} else {
			s.bus.Publish(ctx, events.BookingStatusChanged{
				BaseEvent: events.NewBaseEvent(),
				BookingID: updated.ID,
				TenantID:  updated.TenantID,
				OldStatus: string(booking.Status),
				NewStatus: string(status),
			})
		}
	}
	return updated, nil
}

func transitionAllowed(from, to domain.BookingStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// =============================================================================
// Settings
// =============================================================================

// GetSettings returns the tenant's booking policy.
func (s *Service) GetSettings(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error) {
	tenant, err := s.store.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperr.NotFound("tenant not found")
	}
	return tenant, nil
}

// UpdateSettings applies a partial policy update.
func (s *Service) UpdateSettings(ctx context.Context, tenantID uuid.UUID, update repository.TenantSettingsUpdate) (*domain.Tenant, error) {
	tenant, err := s.store.UpdateTenantSettings(ctx, tenantID, update)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperr.NotFound("tenant not found")
	}
	return tenant, nil
}
