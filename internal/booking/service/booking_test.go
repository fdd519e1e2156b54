package service

import (
	"context"
	"testing"
	"time"

	"reserva_backend/internal/booking/domain"
	"reserva_backend/internal/booking/repository"
	"reserva_backend/platform/apperr"

	"github.com/google/uuid"
)

func TestSubmitBookingCreatesPendingBooking(t *testing.T) {
	store := repository.NewMemory()
	tenant := seedTenant(store, nil)
	bookable := seedBookableService(store, tenant.ID, 60)
	seedSchedule(store, tenant.ID, int(time.Wednesday), "09:00", "17:00")
	svc := newTestService(store)

	start := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	booking, err := svc.SubmitBooking(context.Background(), tenant.ID, SubmitBookingInput{
		ServiceID:     bookable.ID,
		CustomerName:  "Ana García",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "612 345 678",
		StartTime:     start,
	})
	if err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}

	if booking.Status != domain.BookingStatusPending {
		t.Errorf("expected status pending, got %s", booking.Status)
	}
	if booking.PaymentStatus != domain.PaymentStatusUnpaid {
		t.Errorf("expected payment status unpaid, got %s", booking.PaymentStatus)
	}
	wantEnd := time.Date(2026, time.March, 4, 11, 0, 0, 0, time.UTC)
	if !booking.EndTime.Equal(wantEnd) {
		t.Errorf("expected end time %v, got %v", wantEnd, booking.EndTime)
	}
	if booking.ManagementToken == "" {
		t.Error("expected a management token")
	}

	customer, err := store.GetCustomerByID(context.Background(), booking.CustomerID)
	if err != nil || customer == nil {
		t.Fatalf("expected customer to exist: %v", err)
	}
	if customer.Email != "ana@example.com" {
		t.Errorf("unexpected customer email %q", customer.Email)
	}
	if customer.Phone == nil || *customer.Phone == "" {
		t.Error("expected customer phone to be stored")
	}
}

func TestSubmitBookingDeduplicatesCustomerByEmail(t *testing.T) {
	store := repository.NewMemory()
	tenant := seedTenant(store, nil)
	bookable := seedBookableService(store, tenant.ID, 30)
	seedSchedule(store, tenant.ID, int(time.Wednesday), "09:00", "17:00")
	svc := newTestService(store)

	first, err := svc.SubmitBooking(context.Background(), tenant.ID, SubmitBookingInput{
		ServiceID:     bookable.ID,
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		StartTime:     time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("first SubmitBooking: %v", err)
	}
	second, err := svc.SubmitBooking(context.Background(), tenant.ID, SubmitBookingInput{
		ServiceID:     bookable.ID,
		CustomerName:  "Ana García",
		CustomerEmail: "Ana@Example.com",
		StartTime:     time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("second SubmitBooking: %v", err)
	}
	if first.CustomerID != second.CustomerID {
		t.Errorf("expected both bookings to share one customer, got %s and %s", first.CustomerID, second.CustomerID)
	}
}

func TestCreateBookingRejectsUnavailableSlot(t *testing.T) {
	store := repository.NewMemory()
	tenant := seedTenant(store, nil)
	bookable := seedBookableService(store, tenant.ID, 30)
	seedSchedule(store, tenant.ID, int(time.Wednesday), "09:00", "12:00")
	customer := domain.Customer{ID: uuid.New(), TenantID: tenant.ID, Name: "Ana", Email: "ana@example.com"}
	store.PutCustomer(customer)
	svc := newTestService(store)

	// Not on the interval grid.
	offGrid := time.Date(2026, time.March, 4, 9, 10, 0, 0, time.UTC)
	_, err := svc.CreateBooking(context.Background(), tenant.ID, bookable.ID, customer.ID, offGrid)
	if !apperr.Is(err, apperr.KindSlotUnavailable) {
		t.Errorf("expected slot-unavailable for off-grid start, got %v", err)
	}

	// Grid slot taken by an earlier booking.
	start := time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC)
	if _, err := svc.CreateBooking(context.Background(), tenant.ID, bookable.ID, customer.ID, start); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	_, err = svc.CreateBooking(context.Background(), tenant.ID, bookable.ID, customer.ID, start)
	if !apperr.Is(err, apperr.KindSlotUnavailable) {
		t.Errorf("expected slot-unavailable for a taken slot, got %v", err)
	}
}

func TestGetBookingWithTokenAuthorization(t *testing.T) {
	store := repository.NewMemory()
	tenant := seedTenant(store, nil)
	booking := domain.Booking{
		ID:              uuid.New(),
		TenantID:        tenant.ID,
		ServiceID:       uuid.New(),
		CustomerID:      uuid.New(),
		StartTime:       time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2026, time.March, 4, 10, 30, 0, 0, time.UTC),
		Status:          domain.BookingStatusPending,
		ManagementToken: uuid.NewString(),
	}
	store.PutBooking(booking)
	svc := newTestService(store)

	if _, err := svc.GetBookingWithToken(context.Background(), booking.ID, ""); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Errorf("expected unauthorized for missing token, got %v", err)
	}
	// A wrong token reads the same as a missing booking.
	if _, err := svc.GetBookingWithToken(context.Background(), booking.ID, "wrong"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not-found for wrong token, got %v", err)
	}
	got, err := svc.GetBookingWithToken(context.Background(), booking.ID, booking.ManagementToken)
	if err != nil {
		t.Fatalf("GetBookingWithToken: %v", err)
	}
	if got.ID != booking.ID {
		t.Errorf("expected booking %s, got %s", booking.ID, got.ID)
	}
}

func TestCancelBookingWithTokenFreesTheSlot(t *testing.T) {
	store := repository.NewMemory()
	tenant := seedTenant(store, nil)
	bookable := seedBookableService(store, tenant.ID, 30)
	seedSchedule(store, tenant.ID, int(time.Wednesday), "09:00", "10:00")
	customer := domain.Customer{ID: uuid.New(), TenantID: tenant.ID, Name: "Ana", Email: "ana@example.com"}
	store.PutCustomer(customer)
	svc := newTestService(store)

	start := time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC)
	booking, err := svc.CreateBooking(context.Background(), tenant.ID, bookable.ID, customer.ID, start)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	cancelled, err := svc.CancelBookingWithToken(context.Background(), booking.ID, booking.ManagementToken)
	if err != nil {
		t.Fatalf("CancelBookingWithToken: %v", err)
	}
	if cancelled.Status != domain.BookingStatusCancelled {
		t.Errorf("expected status cancelled, got %s", cancelled.Status)
	}

	if _, err := svc.CancelBookingWithToken(context.Background(), booking.ID, booking.ManagementToken); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("expected conflict for a second cancellation, got %v", err)
	}

	// The cancelled slot is bookable again.
	if _, err := svc.CreateBooking(context.Background(), tenant.ID, bookable.ID, customer.ID, start); err != nil {
		t.Errorf("expected cancelled slot to be bookable again, got %v", err)
	}
}
