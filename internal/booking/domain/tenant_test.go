package domain

import "testing"

func TestSettingsAppliesDefaults(t *testing.T) {
	tenant := Tenant{}
	s := tenant.Settings()

	if s.SlotIntervalMinutes != DefaultSlotIntervalMinutes {
		t.Errorf("expected default interval %d, got %d", DefaultSlotIntervalMinutes, s.SlotIntervalMinutes)
	}
	if s.MinBookingNoticeHours != DefaultMinBookingNoticeHours {
		t.Errorf("expected default min notice %d, got %d", DefaultMinBookingNoticeHours, s.MinBookingNoticeHours)
	}
	if s.MaxBookingNoticeDays != DefaultMaxBookingNoticeDays {
		t.Errorf("expected default max notice %d, got %d", DefaultMaxBookingNoticeDays, s.MaxBookingNoticeDays)
	}
	if s.ReminderHoursPrior != DefaultReminderHoursPrior {
		t.Errorf("expected default reminder lead %d, got %d", DefaultReminderHoursPrior, s.ReminderHoursPrior)
	}
	if !s.NotifyEmailConfirmations || !s.NotifyTelegramConfirmations || !s.NotifyEmailReminders || !s.NotifyTelegramReminders {
		t.Error("expected notification toggles to default to enabled")
	}
}

func TestSettingsUsesConfiguredValues(t *testing.T) {
	interval, minNotice, maxNotice, lead := 15, 0, 7, 48
	off := false
	template := "<p>Recuerda tu cita</p>"
	tenant := Tenant{
		SlotIntervalMinutes:   &interval,
		MinBookingNoticeHours: &minNotice,
		MaxBookingNoticeDays:  &maxNotice,
		ReminderHoursPrior:    &lead,
		ReminderTemplateBody:  &template,
		NotifyEmailReminders:  &off,
	}
	s := tenant.Settings()

	if s.SlotIntervalMinutes != 15 {
		t.Errorf("expected interval 15, got %d", s.SlotIntervalMinutes)
	}
	if s.MinBookingNoticeHours != 0 {
		t.Errorf("expected zero min notice to be honored, got %d", s.MinBookingNoticeHours)
	}
	if s.MaxBookingNoticeDays != 7 {
		t.Errorf("expected max notice 7, got %d", s.MaxBookingNoticeDays)
	}
	if s.ReminderHoursPrior != 48 {
		t.Errorf("expected reminder lead 48, got %d", s.ReminderHoursPrior)
	}
	if s.ReminderTemplateBody != template {
		t.Errorf("expected configured template, got %q", s.ReminderTemplateBody)
	}
	if s.NotifyEmailReminders {
		t.Error("expected email reminders to be disabled")
	}
	if !s.NotifyTelegramReminders {
		t.Error("expected untouched toggle to keep its default")
	}
}

func TestSettingsRejectsNonPositiveOverrides(t *testing.T) {
	zero := 0
	negative := -5
	tenant := Tenant{
		SlotIntervalMinutes:  &zero,
		MaxBookingNoticeDays: &negative,
		ReminderHoursPrior:   &zero,
	}
	s := tenant.Settings()

	if s.SlotIntervalMinutes != DefaultSlotIntervalMinutes {
		t.Errorf("expected zero interval to fall back to default, got %d", s.SlotIntervalMinutes)
	}
	if s.MaxBookingNoticeDays != DefaultMaxBookingNoticeDays {
		t.Errorf("expected negative max notice to fall back to default, got %d", s.MaxBookingNoticeDays)
	}
	if s.ReminderHoursPrior != DefaultReminderHoursPrior {
		t.Errorf("expected zero reminder lead to fall back to default, got %d", s.ReminderHoursPrior)
	}
}

func TestLanguageFallback(t *testing.T) {
	tenant := Tenant{}
	if got := tenant.Language(); got != DefaultLanguage {
		t.Errorf("expected default language %q, got %q", DefaultLanguage, got)
	}
	tenant.DefaultLanguage = "en"
	if got := tenant.Language(); got != "en" {
		t.Errorf("expected configured language, got %q", got)
	}
}
