package service

import (
	"context"
	"crypto/subtle"
	"time"

	"reserva_backend/internal/booking/domain"
	"reserva_backend/internal/booking/repository"
	"reserva_backend/internal/events"
	"reserva_backend/platform/apperr"
	"reserva_backend/platform/phone"

	"github.com/google/uuid"
)

// SubmitBookingInput is the orchestration input for a public booking
// submission: customer contact details plus the chosen slot.
type SubmitBookingInput struct {
	ServiceID      uuid.UUID
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	TelegramChatID string
	StartTime      time.Time
}

// GetTenantBySlug resolves a tenant's public booking page.
func (s *Service) GetTenantBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	tenant, err := s.store.GetTenantBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperr.NotFound("tenant not found")
	}
	return tenant, nil
}

// ListServices returns the tenant's bookable services.
func (s *Service) ListServices(ctx context.Context, tenantID uuid.UUID) ([]domain.Service, error) {
	return s.store.ListServicesByTenant(ctx, tenantID)
}

// SubmitBooking resolves (or creates) the customer by email, then books the
// requested slot. Phone numbers are stored in E.164 form.
func (s *Service) SubmitBooking(ctx context.Context, tenantID uuid.UUID, input SubmitBookingInput) (*domain.Booking, error) {
	customer, err := s.store.UpsertCustomerByEmail(ctx, repository.NewCustomer{
		TenantID:       tenantID,
		Name:           input.CustomerName,
		Email:          input.CustomerEmail,
		Phone:          optionalString(phone.NormalizeE164(input.CustomerPhone)),
		TelegramChatID: optionalString(input.TelegramChatID),
	})
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperr.Internal("failed to resolve customer")
	}
	return s.CreateBooking(ctx, tenantID, input.ServiceID, customer.ID, input.StartTime)
}

// CreateBooking books the slot starting exactly at startTime. Availability is
// recomputed against current bookings, so a concurrent claim of the same slot
// surfaces as slot-unavailable rather than a double booking.
func (s *Service) CreateBooking(ctx context.Context, tenantID, serviceID, customerID uuid.UUID, startTime time.Time) (*domain.Booking, error) {
	slots, err := s.ComputeAvailableSlots(ctx, tenantID, serviceID, startTime)
	if err != nil {
		return nil, err
	}

	var matched *time.Time
	requested := startTime.UnixMilli()
	for i := range slots {
		if slots[i].StartTime.UnixMilli() == requested {
			end := slots[i].EndTime
			matched = &end
			break
		}
	}
	if matched == nil {
		if s.metrics != nil {
			s.metrics.SlotConflicts.Inc()
		}
		return nil, apperr.SlotUnavailable("the requested time slot is not available")
	}

	booking, err := s.store.CreateBooking(ctx, repository.NewBooking{
		TenantID:        tenantID,
		ServiceID:       serviceID,
		CustomerID:      customerID,
		StartTime:       startTime,
		EndTime:         *matched,
		Status:          domain.BookingStatusPending,
		PaymentStatus:   domain.PaymentStatusUnpaid,
		ManagementToken: uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.log.BookingEvent("created", booking.ID.String(), tenantID.String())

	if s.bus != nil {
		s.bus.Publish(ctx, events.BookingCreated{
			BaseEvent:       events.NewBaseEvent(),
			BookingID:       booking.ID,
			TenantID:        booking.TenantID,
			ServiceID:       booking.ServiceID,
			CustomerID:      booking.CustomerID,
			StartTime:       booking.StartTime,
			EndTime:         booking.EndTime,
			ManagementToken: booking.ManagementToken,
		})
	}
	return booking, nil
}

// GetBookingWithToken loads a booking for customer self-service. The
// management token must match.
func (s *Service) GetBookingWithToken(ctx context.Context, bookingID uuid.UUID, token string) (*domain.Booking, error) {
	booking, err := s.authorizeManagement(ctx, bookingID, token)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// CancelBookingWithToken cancels a booking through its management link.
func (s *Service) CancelBookingWithToken(ctx context.Context, bookingID uuid.UUID, token string) (*domain.Booking, error) {
	booking, err := s.authorizeManagement(ctx, bookingID, token)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingStatusCancelled {
		return nil, apperr.Conflict("booking is already cancelled")
	}

	cancelled := domain.BookingStatusCancelled
	updated, err := s.store.UpdateBooking(ctx, bookingID, repository.BookingUpdate{Status: &cancelled})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("booking not found")
	}

	if s.metrics != nil {
		s.metrics.BookingsCancelled.WithLabelValues("customer").Inc()
	}
	s.log.BookingEvent("cancelled_by_customer", updated.ID.String(), updated.TenantID.String())

	if s.bus != nil {
		s.bus.Publish(ctx, events.BookingCancelled{
			BaseEvent:   events.NewBaseEvent(),
			BookingID:   updated.ID,
			TenantID:    updated.TenantID,
			ServiceID:   updated.ServiceID,
			CustomerID:  updated.CustomerID,
			StartTime:   updated.StartTime,
			CancelledBy: "customer",
		})
	}
	return updated, nil
}

func (s *Service) authorizeManagement(ctx context.Context, bookingID uuid.UUID, token string) (*domain.Booking, error) {
	if token == "" {
		return nil, apperr.Unauthorized("management token is required")
	}
	booking, err := s.store.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFound("booking not found")
	}
	if subtle.ConstantTimeCompare([]byte(booking.ManagementToken), []byte(token)) != 1 {
		return nil, apperr.NotFound("booking not found")
	}
	return booking, nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
