// Package domain defines the booking bounded context's entities and the
// policy defaults applied when a tenant leaves a knob unset.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Currency is an ISO 4217 currency code accepted for service pricing.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// Defaults applied by Tenant.Settings when the tenant has not configured
// a booking-policy knob.
const (
	DefaultSlotIntervalMinutes   = 30
	DefaultMinBookingNoticeHours = 2
	DefaultMaxBookingNoticeDays  = 60
	DefaultReminderHoursPrior    = 24
	DefaultLanguage              = "es"
)

// Tenant is a business offering bookable services. Optional policy knobs are
// pointers: nil means "use the platform default", resolved via Settings.
type Tenant struct {
	ID                          uuid.UUID
	Name                        string
	Slug                        string
	PreferredCurrency           Currency
	DefaultLanguage             string
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
	PaymentAccountID            *string
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// TenantSettings is the tenant's booking policy with all defaults resolved.
// Callers resolve it once and read plain values afterwards.
type TenantSettings struct {
	SlotIntervalMinutes         int
	MinBookingNoticeHours       int
	MaxBookingNoticeDays        int
	ReminderHoursPrior          int
	ReminderTemplateBody        string
	NotifyEmailConfirmations    bool
	NotifyTelegramConfirmations bool
	NotifyEmailReminders        bool
	NotifyTelegramReminders     bool
}

// Settings resolves the tenant's booking policy, substituting platform
// defaults for unset knobs. Notification toggles default to enabled.
func (t *Tenant) Settings() TenantSettings {
	s := TenantSettings{
		SlotIntervalMinutes:         DefaultSlotIntervalMinutes,
		MinBookingNoticeHours:       DefaultMinBookingNoticeHours,
		MaxBookingNoticeDays:        DefaultMaxBookingNoticeDays,
		ReminderHoursPrior:          DefaultReminderHoursPrior,
		NotifyEmailConfirmations:    true,
		NotifyTelegramConfirmations: true,
		NotifyEmailReminders:        true,
		NotifyTelegramReminders:     true,
	}
	if t.SlotIntervalMinutes != nil && *t.SlotIntervalMinutes > 0 {
		s.SlotIntervalMinutes = *t.SlotIntervalMinutes
	}
	if t.MinBookingNoticeHours != nil && *t.MinBookingNoticeHours >= 0 {
		s.MinBookingNoticeHours = *t.MinBookingNoticeHours
	}
	if t.MaxBookingNoticeDays != nil && *t.MaxBookingNoticeDays > 0 {
		s.MaxBookingNoticeDays = *t.MaxBookingNoticeDays
	}
	if t.ReminderHoursPrior != nil && *t.ReminderHoursPrior > 0 {
		s.ReminderHoursPrior = *t.ReminderHoursPrior
	}
	if t.ReminderTemplateBody != nil {
		s.ReminderTemplateBody = *t.ReminderTemplateBody
	}
	if t.NotifyEmailConfirmations != nil {
		s.NotifyEmailConfirmations = *t.NotifyEmailConfirmations
	}
	if t.NotifyTelegramConfirmations != nil {
		s.NotifyTelegramConfirmations = *t.NotifyTelegramConfirmations
	}
	if t.NotifyEmailReminders != nil {
		s.NotifyEmailReminders = *t.NotifyEmailReminders
	}
	if t.NotifyTelegramReminders != nil {
		s.NotifyTelegramReminders = *t.NotifyTelegramReminders
	}
	return s
}

// Language returns the tenant's UI language, falling back to the platform
// default when unset.
func (t *Tenant) Language() string {
	if t.DefaultLanguage != "" {
		return t.DefaultLanguage
	}
	return DefaultLanguage
}
