package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the booking lifecycle state.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// ValidBookingStatus reports whether the value is a known lifecycle state.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// PaymentStatus tracks how (and whether) a booking was paid.
type PaymentStatus string

const (
	PaymentStatusUnpaid     PaymentStatus = "unpaid"
	PaymentStatusPaidOnline PaymentStatus = "paid_online"
	PaymentStatusPaidLocal  PaymentStatus = "paid_local"
)

// Booking is a reserved time slot. Cancelled bookings do not block
// availability. ManagementToken authorizes customer self-service actions.
type Booking struct {
	ID                 uuid.UUID
	TenantID           uuid.UUID
	ServiceID          uuid.UUID
	CustomerID         uuid.UUID
	StartTime          time.Time
	EndTime            time.Time
	Status             BookingStatus
	PaymentStatus      PaymentStatus
	PaymentIntentID    *string
	ManagementToken    string
	ConfirmationSentAt *time.Time
	ReminderSentAt     *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Blocks reports whether this booking occupies its time range for
// availability purposes.
func (b *Booking) Blocks() bool {
	return b.Status != BookingStatusCancelled
}

// Overlaps reports whether [start, end) intersects the booking's time range.
// Ranges are half-open: a slot starting exactly at the booking's end is free.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndTime) && end.After(b.StartTime)
}

// Customer is a person who books with a tenant, deduplicated per tenant by
// email.
type Customer struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	Name           string
	Email          string
	Phone          *string
	TelegramChatID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
