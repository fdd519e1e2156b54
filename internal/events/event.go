// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"reserva_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Booking Domain Events
// =============================================================================

// BookingCreated is published when a customer books a slot.
type BookingCreated struct {
	BaseEvent
	BookingID       uuid.UUID `json:"bookingId"`
	TenantID        uuid.UUID `json:"tenantId"`
	ServiceID       uuid.UUID `json:"serviceId"`
	CustomerID      uuid.UUID `json:"customerId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	ManagementToken string    `json:"managementToken"`
}

func (e BookingCreated) EventName() string { return "bookings.booking.created" }

// BookingCancelled is published when a booking is cancelled, either by the
// customer through the management link or by the tenant from the dashboard.
type BookingCancelled struct {
	BaseEvent
	BookingID   uuid.UUID `json:"bookingId"`
	TenantID    uuid.UUID `json:"tenantId"`
	ServiceID   uuid.UUID `json:"serviceId"`
	CustomerID  uuid.UUID `json:"customerId"`
	StartTime   time.Time `json:"startTime"`
	CancelledBy string    `json:"cancelledBy"` // "customer" or "tenant"
}

func (e BookingCancelled) EventName() string { return "bookings.booking.cancelled" }

// BookingStatusChanged is published when a tenant moves a booking through its
// lifecycle (pending -> confirmed -> completed).
type BookingStatusChanged struct {
	BaseEvent
	BookingID uuid.UUID `json:"bookingId"`
	TenantID  uuid.UUID `json:"tenantId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

func (e BookingStatusChanged) EventName() string { return "bookings.booking.status_changed" }
