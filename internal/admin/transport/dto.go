// Package transport defines request and response DTOs for the tenant
// admin API.
package transport

import (
	"time"

	"reserva_backend/internal/booking/domain"
)

// CreateServiceRequest creates a bookable service.
type CreateServiceRequest struct {
	Name            map[string]string `json:"name" binding:"required,min=1"`
	Description     map[string]string `json:"description"`
	ImageURL        *string           `json:"imageUrl" binding:"omitempty,url"`
	DurationMinutes int               `json:"durationMinutes" binding:"required,min=1,max=1440"`
	PriceCents      int64             `json:"priceCents" binding:"min=0"`
	Currency        string            `json:"currency" binding:"required,oneof=EUR USD GBP"`
}

// UpdateServiceRequest partially updates a service.
type UpdateServiceRequest struct {
	Name            map[string]string `json:"name"`
	Description     map[string]string `json:"description"`
	ImageURL        *string           `json:"imageUrl" binding:"omitempty,url"`
	DurationMinutes *int              `json:"durationMinutes" binding:"omitempty,min=1,max=1440"`
	PriceCents      *int64            `json:"priceCents" binding:"omitempty,min=0"`
	Currency        *string           `json:"currency" binding:"omitempty,oneof=EUR USD GBP"`
}

// CreateScheduleRequest adds a weekly opening block.
type CreateScheduleRequest struct {
	DayOfWeek int    `json:"dayOfWeek" binding:"min=0,max=6"`
	OpenTime  string `json:"openTime" binding:"required,hhmm"`
	CloseTime string `json:"closeTime" binding:"required,hhmm"`
	ValidFrom string `json:"validFrom" binding:"required,datetime=2006-01-02"`
	ValidTo   string `json:"validTo" binding:"required,datetime=2006-01-02"`
}

// CreateExceptionRequest adds a per-date schedule override.
type CreateExceptionRequest struct {
	ExceptionDate string  `json:"exceptionDate" binding:"required,datetime=2006-01-02"`
	IsClosed      bool    `json:"isClosed"`
	OpenTime      *string `json:"openTime" binding:"omitempty,hhmm"`
	CloseTime     *string `json:"closeTime" binding:"omitempty,hhmm"`
	Reason        *string `json:"reason" binding:"omitempty,max=500"`
}

// UpdateBookingStatusRequest moves a booking through its lifecycle.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

// UpdateSettingsRequest partially updates the tenant's booking policy.
type UpdateSettingsRequest struct {
	Name                        *string `json:"name" binding:"omitempty,min=1,max=200"`
	DefaultLanguage             *string `json:"defaultLanguage" binding:"omitempty,len=2"`
	PreferredCurrency           *string `json:"preferredCurrency" binding:"omitempty,oneof=EUR USD GBP"`
	SlotIntervalMinutes         *int    `json:"slotIntervalMinutes" binding:"omitempty,min=5,max=240"`
	MinBookingNoticeHours       *int    `json:"minBookingNoticeHours" binding:"omitempty,min=0,max=720"`
	MaxBookingNoticeDays        *int    `json:"maxBookingNoticeDays" binding:"omitempty,min=1,max=365"`
	ReminderHoursPrior          *int    `json:"reminderHoursPrior" binding:"omitempty,min=1,max=168"`
	ReminderTemplateBody        *string `json:"reminderTemplateBody" binding:"omitempty,max=5000"`
	TelegramChatID              *string `json:"telegramChatId" binding:"omitempty,max=64"`
	NotifyEmailConfirmations    *bool   `json:"notifyEmailConfirmations"`
	NotifyTelegramConfirmations *bool   `json:"notifyTelegramConfirmations"`
	NotifyEmailReminders        *bool   `json:"notifyEmailReminders"`
	NotifyTelegramReminders     *bool   `json:"notifyTelegramReminders"`
}

// ScheduleResponse is a weekly block as shown in the dashboard.
type ScheduleResponse struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	ValidFrom string `json:"validFrom"`
	ValidTo   string `json:"validTo"`
}

// ExceptionResponse is a per-date override as shown in the dashboard.
type ExceptionResponse struct {
	ID            string  `json:"id"`
	ExceptionDate string  `json:"exceptionDate"`
	IsClosed      bool    `json:"isClosed"`
	OpenTime      *string `json:"openTime,omitempty"`
	CloseTime     *string `json:"closeTime,omitempty"`
	Reason        *string `json:"reason,omitempty"`
}

// AdminBookingResponse is a booking as shown in the dashboard.
type AdminBookingResponse struct {
	ID            string    `json:"id"`
	ServiceID     string    `json:"serviceId"`
	CustomerID    string    `json:"customerId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SettingsResponse is the tenant's policy with defaults resolved alongside
// the raw configured values.
type SettingsResponse struct {
	Name                        string  `json:"name"`
	Slug                        string  `json:"slug"`
	DefaultLanguage             string  `json:"defaultLanguage"`
	PreferredCurrency           string  `json:"preferredCurrency"`
	SlotIntervalMinutes         int     `json:"slotIntervalMinutes"`
	MinBookingNoticeHours       int     `json:"minBookingNoticeHours"`
	MaxBookingNoticeDays        int     `json:"maxBookingNoticeDays"`
	ReminderHoursPrior          int     `json:"reminderHoursPrior"`
	ReminderTemplateBody        string  `json:"reminderTemplateBody,omitempty"`
	TelegramChatID              *string `json:"telegramChatId,omitempty"`
	NotifyEmailConfirmations    bool    `json:"notifyEmailConfirmations"`
	NotifyTelegramConfirmations bool    `json:"notifyTelegramConfirmations"`
	NotifyEmailReminders        bool    `json:"notifyEmailReminders"`
	NotifyTelegramReminders     bool    `json:"notifyTelegramReminders"`
}

// NewScheduleResponse maps a domain schedule.
func NewScheduleResponse(s *domain.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:        s.ID.String(),
		DayOfWeek: s.DayOfWeek,
		OpenTime:  s.OpenTime,
		CloseTime: s.CloseTime,
		ValidFrom: s.ValidFrom,
		ValidTo:   s.ValidTo,
	}
}

// NewExceptionResponse maps a domain schedule exception.
func NewExceptionResponse(e *domain.ScheduleException) ExceptionResponse {
	return ExceptionResponse{
		ID:            e.ID.String(),
		ExceptionDate: e.ExceptionDate,
		IsClosed:      e.IsClosed,
		OpenTime:      e.OpenTime,
		CloseTime:     e.CloseTime,
		Reason:        e.Reason,
	}
}

// NewAdminBookingResponse maps a domain booking for the dashboard.
func NewAdminBookingResponse(b *domain.Booking) AdminBookingResponse {
	return AdminBookingResponse{
		ID:            b.ID.String(),
		ServiceID:     b.ServiceID.String(),
		CustomerID:    b.CustomerID.String(),
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt,
	}
}

// NewSettingsResponse maps a tenant with its policy defaults resolved.
func NewSettingsResponse(t *domain.Tenant) SettingsResponse {
	settings := t.Settings()
	return SettingsResponse{
		Name:                        t.Name,
		Slug:                        t.Slug,
		DefaultLanguage:             t.Language(),
		PreferredCurrency:           string(t.PreferredCurrency),
		SlotIntervalMinutes:         settings.SlotIntervalMinutes,
		MinBookingNoticeHours:       settings.MinBookingNoticeHours,
		MaxBookingNoticeDays:        settings.MaxBookingNoticeDays,
		ReminderHoursPrior:          settings.ReminderHoursPrior,
		ReminderTemplateBody:        settings.ReminderTemplateBody,
		TelegramChatID:              t.TelegramChatID,
		NotifyEmailConfirmations:    settings.NotifyEmailConfirmations,
		NotifyTelegramConfirmations: settings.NotifyTelegramConfirmations,
		NotifyEmailReminders:        settings.NotifyEmailReminders,
		NotifyTelegramReminders:     settings.NotifyTelegramReminders,
	}
}
