// Package repository provides persistence for the booking bounded context.
// Store is the capability port consumed by the booking, admin and reminder
// services; Postgres is the production implementation and Memory backs tests.
package repository

import (
	"context"
	"time"

	"reserva_backend/internal/booking/domain"

	"github.com/google/uuid"
)

// NewBooking carries the fields needed to persist a booking.
type NewBooking struct {
	TenantID        uuid.UUID
	ServiceID       uuid.UUID
	CustomerID      uuid.UUID
	StartTime       time.Time
	EndTime         time.Time
	Status          domain.BookingStatus
	PaymentStatus   domain.PaymentStatus
	ManagementToken string
}

// BookingUpdate is a partial update: nil fields are left untouched.
type BookingUpdate struct {
	Status             *domain.BookingStatus
	PaymentStatus      *domain.PaymentStatus
	PaymentIntentID    *string
	ConfirmationSentAt *time.Time
	ReminderSentAt     *time.Time
}

// BookingFilter narrows admin booking listings.
type BookingFilter struct {
	Status *domain.BookingStatus
	From   *time.Time
	To     *time.Time
	Limit  int
}

// NewCustomer carries the fields for customer upsert.
type NewCustomer struct {
	TenantID       uuid.UUID
	Name           string
	Email          string
	Phone          *string
	TelegramChatID *string
}

// ServiceInput carries the fields for service creation.
type ServiceInput struct {
	Name            map[string]string
	Description     map[string]string
	ImageURL        *string
	DurationMinutes int
	PriceCents      int64
	Currency        domain.Currency
}

// ServiceUpdate is a partial service update: nil fields are left untouched.
type ServiceUpdate struct {
	Name            map[string]string
	Description     map[string]string
	ImageURL        *string
	DurationMinutes *int
	PriceCents      *int64
	Currency        *domain.Currency
}

// ScheduleInput carries the fields for a weekly schedule block.
type ScheduleInput struct {
	DayOfWeek int
	OpenTime  string
	CloseTime string
	ValidFrom string
	ValidTo   string
}

// ExceptionInput carries the fields for a per-date schedule exception.
type ExceptionInput struct {
	ExceptionDate string
	IsClosed      bool
	OpenTime      *string
	CloseTime     *string
	Reason        *string
}

// TenantSettingsUpdate is a partial tenant policy update: nil fields are left
// untouched.
type TenantSettingsUpdate struct {
	Name                        *string
	DefaultLanguage             *string
	PreferredCurrency           *domain.Currency
	SlotIntervalMinutes         *int
	MinBookingNoticeHours       *int
	MaxBookingNoticeDays        *int
	ReminderHoursPrior          *int
	ReminderTemplateBody        *string
	TelegramChatID              *string
	NotifyEmailConfirmations    *bool
	NotifyTelegramConfirmations *bool
	NotifyEmailReminders        *bool
	NotifyTelegramReminders     *bool
}

// Store is the persistence port for the booking context. Lookup methods
// return (nil, nil) when the entity does not exist; services translate that
// into domain not-found errors.
type Store interface {
	// Tenants
	GetTenantByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	UpdateTenantSettings(ctx context.Context, id uuid.UUID, update TenantSettingsUpdate) (*domain.Tenant, error)

	// Services
	GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	ListServicesByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Service, error)
	CreateService(ctx context.Context, tenantID uuid.UUID, input ServiceInput) (*domain.Service, error)
	UpdateService(ctx context.Context, tenantID, id uuid.UUID, update ServiceUpdate) (*domain.Service, error)
	DeleteService(ctx context.Context, tenantID, id uuid.UUID) error

	// Schedules
	GetTenantSchedulesForDate(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]domain.Schedule, error)
	ListSchedules(ctx context.Context, tenantID uuid.UUID) ([]domain.Schedule, error)
	CreateSchedule(ctx context.Context, tenantID uuid.UUID, input ScheduleInput) (*domain.Schedule, error)
	DeleteSchedule(ctx context.Context, tenantID, id uuid.UUID) error

	// Schedule exceptions
	GetScheduleExceptionsByDate(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]domain.ScheduleException, error)
	ListScheduleExceptions(ctx context.Context, tenantID uuid.UUID) ([]domain.ScheduleException, error)
	CreateScheduleException(ctx context.Context, tenantID uuid.UUID, input ExceptionInput) (*domain.ScheduleException, error)
	DeleteScheduleException(ctx context.Context, tenantID, id uuid.UUID) error

	// Bookings
	GetBookingsByDate(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]domain.Booking, error)
	GetBookingByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListBookings(ctx context.Context, tenantID uuid.UUID, filter BookingFilter) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, input NewBooking) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, update BookingUpdate) (*domain.Booking, error)
	GetPendingReminders(ctx context.Context, now, until time.Time) ([]domain.Booking, error)

	// Customers
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetCustomerEmail(ctx context.Context, id uuid.UUID) (string, error)
	GetCustomerTelegramID(ctx context.Context, id uuid.UUID) (string, error)
	UpsertCustomerByEmail(ctx context.Context, input NewCustomer) (*domain.Customer, error)
}
