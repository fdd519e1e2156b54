// Package transport defines request and response DTOs for the public
// booking API.
package transport

import (
	"time"

	"reserva_backend/internal/booking/domain"
)

// TimeSlot is one bookable interval in an availability response.
type TimeSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Available bool      `json:"available"`
}

// AvailabilityResponse wraps the slots for a tenant/service/date query.
type AvailabilityResponse struct {
	Date  string     `json:"date"`
	Slots []TimeSlot `json:"slots"`
}

// TenantPublicResponse is the public profile of a tenant booking page.
type TenantPublicResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	PreferredCurrency string `json:"preferredCurrency"`
	DefaultLanguage   string `json:"defaultLanguage"`
}

// ServiceResponse is a bookable service as shown to customers.
type ServiceResponse struct {
	ID              string            `json:"id"`
	Name            map[string]string `json:"name"`
	Description     map[string]string `json:"description,omitempty"`
	ImageURL        *string           `json:"imageUrl,omitempty"`
	DurationMinutes int               `json:"durationMinutes"`
	PriceCents      int64             `json:"priceCents"`
	Currency        string            `json:"currency"`
}

// CreateBookingRequest is the public booking submission payload.
type CreateBookingRequest struct {
	ServiceID      string    `json:"serviceId" binding:"required,uuid"`
	CustomerName   string    `json:"customerName" binding:"required,min=1,max=200"`
	CustomerEmail  string    `json:"customerEmail" binding:"required,email"`
	CustomerPhone  string    `json:"customerPhone" binding:"omitempty,max=50"`
	TelegramChatID string    `json:"telegramChatId" binding:"omitempty,max=64"`
	StartTime      time.Time `json:"startTime" binding:"required"`
}

// BookingResponse is a booking as returned to its customer.
type BookingResponse struct {
	ID              string    `json:"id"`
	TenantID        string    `json:"tenantId"`
	ServiceID       string    `json:"serviceId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"paymentStatus"`
	ManagementToken string    `json:"managementToken,omitempty"`
}

// NewBookingResponse maps a domain booking. includeToken controls whether the
// management token is exposed; only creation and token-authorized lookups
// include it.
func NewBookingResponse(b *domain.Booking, includeToken bool) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID.String(),
		TenantID:      b.TenantID.String(),
		ServiceID:     b.ServiceID.String(),
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
	}
	if includeToken {
		resp.ManagementToken = b.ManagementToken
	}
	return resp
}

// NewServiceResponse maps a domain service.
func NewServiceResponse(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID.String(),
		Name:            s.Name,
		Description:     s.Description,
		ImageURL:        s.ImageURL,
		DurationMinutes: s.DurationMinutes,
		PriceCents:      s.PriceCents,
		Currency:        string(s.Currency),
	}
}

// NewTenantPublicResponse maps a domain tenant to its public profile.
func NewTenantPublicResponse(t *domain.Tenant) TenantPublicResponse {
	return TenantPublicResponse{
		ID:                t.ID.String(),
		Name:              t.Name,
		Slug:              t.Slug,
		PreferredCurrency: string(t.PreferredCurrency),
		DefaultLanguage:   t.Language(),
	}
}
