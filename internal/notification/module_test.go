package notification

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"reserva_backend/internal/booking/domain"
	"reserva_backend/internal/booking/repository"
	"reserva_backend/internal/events"
	"reserva_backend/platform/logger"

	"github.com/google/uuid"
)

type confirmationEmail struct {
	To        string
	ManageURL string
}

type fakeSender struct {
	mu            sync.Mutex
	confirmations []confirmationEmail
	cancellations []string
}

func (f *fakeSender) SendBookingConfirmationEmail(_ context.Context, toEmail, _, _, _, _, manageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmations = append(f.confirmations, confirmationEmail{To: toEmail, ManageURL: manageURL})
	return nil
}

func (f *fakeSender) SendBookingCancelledEmail(_ context.Context, toEmail, _, _, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancellations = append(f.cancellations, toEmail)
	return nil
}

func (f *fakeSender) SendCustomEmail(context.Context, string, string, string) error {
	return nil
}

type fakeMessenger struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeMessenger) SendMessage(_ context.Context, _, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, text)
	return nil
}

type staticConfig struct{ baseURL string }

func (c staticConfig) GetAppBaseURL() string { return c.baseURL }

type fixture struct {
	store     *repository.Memory
	sender    *fakeSender
	messenger *fakeMessenger
	module    *Module
	tenant    domain.Tenant
	customer  domain.Customer
	service   domain.Service
	booking   domain.Booking
}

func newFixture(t *testing.T, mutateTenant func(*domain.Tenant)) *fixture {
	t.Helper()
	store := repository.NewMemory()
	sender := &fakeSender{}
	messenger := &fakeMessenger{}

	chatID := "987654321"
	tenant := domain.Tenant{
		ID:              uuid.New(),
		Name:            "Corte Clásico",
		Slug:            "corte-clasico",
		DefaultLanguage: "es",
		TelegramChatID:  &chatID,
	}
	if mutateTenant != nil {
		mutateTenant(&tenant)
	}
	store.PutTenant(tenant)

	customer := domain.Customer{
		ID:       uuid.New(),
		TenantID: tenant.ID,
		Name:     "Ana García",
		Email:    "ana@example.com",
	}
	store.PutCustomer(customer)

	bookable := domain.Service{
		ID:              uuid.New(),
		TenantID:        tenant.ID,
		Name:            map[string]string{"es": "Corte de pelo"},
		DurationMinutes: 30,
	}
	store.PutService(bookable)

	start := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	booking := domain.Booking{
		ID:              uuid.New(),
		TenantID:        tenant.ID,
		ServiceID:       bookable.ID,
		CustomerID:      customer.ID,
		StartTime:       start,
		EndTime:         start.Add(30 * time.Minute),
		Status:          domain.BookingStatusPending,
		ManagementToken: uuid.NewString(),
	}
	store.PutBooking(booking)

	module := New(store, sender, messenger, staticConfig{baseURL: "https://reserva.example/"}, nil, logger.New("test"))

	return &fixture{
		store:     store,
		sender:    sender,
		messenger: messenger,
		module:    module,
		tenant:    tenant,
		customer:  customer,
		service:   bookable,
		booking:   booking,
	}
}

func (f *fixture) createdEvent() events.BookingCreated {
	return events.BookingCreated{
		BaseEvent:       events.NewBaseEvent(),
		BookingID:       f.booking.ID,
		TenantID:        f.tenant.ID,
		ServiceID:       f.service.ID,
		CustomerID:      f.customer.ID,
		StartTime:       f.booking.StartTime,
		EndTime:         f.booking.EndTime,
		ManagementToken: f.booking.ManagementToken,
	}
}

func TestHandleBookingCreatedSendsConfirmation(t *testing.T) {
	f := newFixture(t, nil)

	if err := f.module.Handle(context.Background(), f.createdEvent()); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(f.sender.confirmations) != 1 {
		t.Fatalf("expected 1 confirmation email, got %d", len(f.sender.confirmations))
	}
	sent := f.sender.confirmations[0]
	if sent.To != "ana@example.com" {
		t.Errorf("unexpected recipient %q", sent.To)
	}
	wantURL := "https://reserva.example/bookings/" + f.booking.ID.String() + "?token=" + f.booking.ManagementToken
	if sent.ManageURL != wantURL {
		t.Errorf("expected manage URL %q, got %q", wantURL, sent.ManageURL)
	}

	if len(f.messenger.messages) != 1 {
		t.Fatalf("expected 1 telegram message, got %d", len(f.messenger.messages))
	}
	if !strings.Contains(f.messenger.messages[0], "Nueva Reserva") {
		t.Errorf("unexpected telegram text %q", f.messenger.messages[0])
	}
	if !strings.Contains(f.messenger.messages[0], "Corte de pelo") {
		t.Errorf("expected telegram text to name the service, got %q", f.messenger.messages[0])
	}

	booking, err := f.store.GetBookingByID(context.Background(), f.booking.ID)
	if err != nil || booking == nil {
		t.Fatalf("booking not found: %v", err)
	}
	if booking.ConfirmationSentAt == nil {
		t.Error("expected booking to be stamped after the confirmation email")
	}
}

func TestHandleBookingCreatedHonorsToggles(t *testing.T) {
	off := false
	f := newFixture(t, func(tn *domain.Tenant) {
		tn.NotifyEmailConfirmations = &off
		tn.NotifyTelegramConfirmations = &off
	})

	if err := f.module.Handle(context.Background(), f.createdEvent()); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(f.sender.confirmations) != 0 || len(f.messenger.messages) != 0 {
		t.Error("expected no deliveries with both channels disabled")
	}
}

func TestHandleBookingCancelledByTenant(t *testing.T) {
	f := newFixture(t, nil)

	err := f.module.Handle(context.Background(), events.BookingCancelled{
		BaseEvent:   events.NewBaseEvent(),
		BookingID:   f.booking.ID,
		TenantID:    f.tenant.ID,
		ServiceID:   f.service.ID,
		CustomerID:  f.customer.ID,
		StartTime:   f.booking.StartTime,
		CancelledBy: "tenant",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(f.sender.cancellations) != 1 {
		t.Fatalf("expected 1 cancellation email, got %d", len(f.sender.cancellations))
	}
	if len(f.messenger.messages) != 1 {
		t.Fatalf("expected 1 telegram message, got %d", len(f.messenger.messages))
	}
	if strings.Contains(f.messenger.messages[0], "por Cliente") {
		t.Errorf("tenant cancellation must not read as customer-initiated: %q", f.messenger.messages[0])
	}
}

func TestHandleReturnsErrorForMissingEntities(t *testing.T) {
	f := newFixture(t, nil)
	event := f.createdEvent()
	event.CustomerID = uuid.New()

	if err := f.module.Handle(context.Background(), event); err == nil {
		t.Error("expected error when the customer no longer exists")
	}
	if len(f.sender.confirmations) != 0 {
		t.Error("expected no delivery for a broken booking context")
	}
}
