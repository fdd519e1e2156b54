package service

import (
	"context"
	"testing"
	"time"

	"reserva_backend/internal/booking/domain"
	"reserva_backend/internal/booking/repository"
	"reserva_backend/platform/apperr"
	"reserva_backend/platform/logger"

	"github.com/google/uuid"
)

// The fixed clock is a Monday morning; testDate is the Wednesday two days
// later, so the default minimum notice never interferes unless a test
// queries the current day on purpose.
var (
	testNow  = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
)

func newTestService(store *repository.Memory) *Service {
	return New(store, nil, nil, logger.New("test")).WithClock(func() time.Time { return testNow })
}

func seedTenant(store *repository.Memory, mutate func(*domain.Tenant)) domain.Tenant {
	interval := 30
	minNotice := 0
	tenant := domain.Tenant{
		ID:                    uuid.New(),
		Name:                  "Corte Clásico",
		Slug:                  "corte-clasico",
		DefaultLanguage:       "es",
		PreferredCurrency:     domain.CurrencyEUR,
		SlotIntervalMinutes:   &interval,
		MinBookingNoticeHours: &minNotice,
	}
	if mutate != nil {
		mutate(&tenant)
	}
	store.PutTenant(tenant)
	return tenant
}

func seedBookableService(store *repository.Memory, tenantID uuid.UUID, durationMinutes int) domain.Service {
	svc := domain.Service{
		ID:              uuid.New(),
		TenantID:        tenantID,
		Name:            map[string]string{"es": "Corte de pelo"},
		DurationMinutes: durationMinutes,
		PriceCents:      1500,
		Currency:        domain.CurrencyEUR,
	}
	store.PutService(svc)
	return svc
}

func seedSchedule(store *repository.Memory, tenantID uuid.UUID, dayOfWeek int, open, close string) domain.Schedule {
	sched := domain.Schedule{
		ID:        uuid.New(),
		TenantID:  tenantID,
		DayOfWeek: dayOfWeek,
		OpenTime:  open,
		CloseTime: close,
	}
	store.PutSchedule(sched)
	return sched
}

func slotStarts(t *testing.T, svc *Service, tenantID, serviceID uuid.UUID, date time.Time) []time.Time {
	t.Helper()
	slots, err := svc.ComputeAvailableSlots(context.Background(), tenantID, serviceID, date)
	if err != nil {
		t.Fatalf("ComputeAvailableSlots: %v", err)
	}
	starts := make([]time.Time, len(slots))
	for i, slot := range slots {
		starts[i] = slot.StartTime
	}
	return starts
}

func TestComputeAvailableSlotsFitsDurationWithinBlock(t *testing.T) {
	store := repository.NewMemory()
	tenant := seedTenant(store, nil)
	bookable := seedBookableService(store, tenant.ID, 45)
	seedSchedule(store, tenant.ID, int(time.Wednesday), "09:00", "11:00")

	starts := slotStarts(t, newTestService(store), tenant.ID, bookable.ID, testDate)

	want := []time.Time{
		time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC),
		time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC),
	}
	if len(starts) != len(want) {
		t.Fatalf("expected %d slots, got %d: %v", len(want), len(starts), starts)
	}
	for i := range want {
		if !starts[i].Equal(want[i]) {
			t.Errorf("slot %d: expected %v, got %v", i, want[i], starts[i])
		}
	}
}

func TestComputeAvailableSlotsClosedExceptionEmptiesDay(t *testing.T) {
	store := repository.NewMemory()
	tenant := seedTenant(store, nil)
	bookable := seedBookableService(store, tenant.ID, 30)
	seedSchedule(store, tenant.ID, int(time.Wednesday), "09:00", "17:00")
	store.PutScheduleException(domain.ScheduleException{
		ID:            uuid.New(),
		TenantID:      tenant.ID,
		ExceptionDate: domain.DateString(testDate),
		IsClosed:      true,
	})

	starts := slotStarts(t, newTestService(store), tenant.ID, bookable.ID, testDate)
	if len(starts) != 0 {
		t.Fatalf("expected no slots on a closed day, got %v", starts)
	}
}

func TestComputeAvailableSlotsOpenExceptionReplacesWeeklySchedule(t *testing.T) {
	store := repository.NewMemory()
	tenant := seedTenant(store, nil)
	bookable := seedBookableService(store, tenant.ID, 60)
	seedSchedule(store, tenant.ID, int(time.Wednesday), "09:00", "17:00")

	open, close := "14:00", "16:00"
	store.PutScheduleException(domain.ScheduleException{
		ID:            uuid.New(),
		TenantID:      tenant.ID,
		ExceptionDate: domain.DateString(testDate),
		OpenTime:      &open,
		CloseTime:     &close,
	})

	starts := slotStarts(t, newTestService(store), tenant.ID, bookable.ID, testDate)
	if len(starts) == 0 {
		t.Fatal("expected slots inside the exception window")
	}
	first := time.Date(2026, time.March, 4, 14, 0, 0, 0, time.UTC)
	if !starts[0].Equal(first) {
		t.Errorf("expected first slot at %v, got %v", first, starts[0])
	}
	for _, start := range starts {
		if start.Hour() < 14 {
			t.Errorf("weekly schedule leaked through the exception: slot at %v", start)
		}
	}
}

func TestComputeAvailableSlotsSplitShiftsAscending(t *testing.T) {
	store := repository.NewMemory()
	tenant := seedTenant(store, nil)
	bookable := seedBookableService(store, tenant.ID, 60)
	// Seed the afternoon shift first to make ordering observable.
	seedSchedule(store, tenant.ID, int(time.Wednesday), "15:00", "17:00")
	seedSchedule(store, tenant.ID, int(time.Wednesday), "09:00", "11:00")

	starts := slotStarts(t, newTestService(store), tenant.ID, bookable.ID, testDate)
	if len(starts) == 0 {
		t.Fatal("expected slots from both shifts")
	}
	for i := 1; i < len(starts); i++ {
		if !starts[i-1].Before(starts[i]) {
			t.Fatalf("slots out of order: %v before %v", starts[i-1], starts[i])
		}
	}
	sawMorning, sawAfternoon := false, false
	for _, start := range starts {
		if start.Hour() < 12 {
			sawMorning = true
		} else {
			sawAfternoon = true
		}
		if start.Hour() >= 11 && start.Hour() < 15 {
			t.Errorf("slot outside both shifts: %v", start)
		}
	}
	if !sawMorning || !sawAfternoon {
		t.Errorf("expected slots from both shifts, got %v", starts)
	}
}

func TestComputeAvailableSlotsExcludesOverlappingBookings(t *testing.T) {
	store := repository.NewMemory()
	tenant := seedTenant(store, nil)
	bookable := seedBookableService(store, tenant.ID, 30)
	seedSchedule(store, tenant.ID, int(time.Wednesday), "09:00", "12:00")
	store.PutBooking(domain.Booking{
		ID:        uuid.New(),
		TenantID:  tenant.ID,
		ServiceID: bookable.ID,
		StartTime: time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.March, 4, 10, 30, 0, 0, time.UTC),
		Status:    domain.BookingStatusConfirmed,
	})

	starts := slotStarts(t, newTestService(store), tenant.ID, bookable.ID, testDate)

	// Ranges are half-open: 10:30 starts exactly where the booking ends.
	want := []time.Time{
		time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 4, 10, 30, 0, 0, time.UTC),
		time.Date(2026, time.March, 4, 11, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 4, 11, 30, 0, 0, time.UTC),
	}
	if len(starts) != len(want) {
		t.Fatalf("expected %d slots, got %d: %v", len(want), len(starts), starts)
	}
	for i := range want {
		if !starts[i].Equal(want[i]) {
			t.Errorf("slot %d: expected %v, got %v", i, want[i], starts[i])
		}
	}
}

func TestComputeAvailableSlotsIgnoresCancelledBookings(t *testing.T) {
	store := repository.NewMemory()
	tenant := seedTenant(store, nil)
	bookable := seedBookableService(store, tenant.ID, 30)
	seedSchedule(store, tenant.ID, int(time.Wednesday), "09:00", "10:00")
	store.PutBooking(domain.Booking{
		ID:        uuid.New(),
		TenantID:  tenant.ID,
		ServiceID: bookable.ID,
		StartTime: time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC),
		Status:    domain.BookingStatusCancelled,
	})

	starts := slotStarts(t, newTestService(store), tenant.ID, bookable.ID, testDate)
	if len(starts) != 2 {
		t.Fatalf("expected cancelled booking to free its slot, got %v", starts)
	}
}

func TestComputeAvailableSlotsBookingHorizon(t *testing.T) {
	store := repository.NewMemory()
	maxDays := 1
	tenant := seedTenant(store, func(t *domain.Tenant) { t.MaxBookingNoticeDays = &maxDays })
	bookable := seedBookableService(store, tenant.ID, 30)
	seedSchedule(store, tenant.ID, int(time.Tuesday), "09:00", "12:00")
	seedSchedule(store, tenant.ID, int(time.Wednesday), "09:00", "12:00")

	svc := newTestService(store)

	// The whole last bookable day stays open.
	lastDay := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	if starts := slotStarts(t, svc, tenant.ID, bookable.ID, lastDay); len(starts) == 0 {
		t.Error("expected slots on the last day inside the horizon")
	}
	if starts := slotStarts(t, svc, tenant.ID, bookable.ID, testDate); len(starts) != 0 {
		t.Errorf("expected no slots past the booking horizon, got %v", starts)
	}
}

func TestComputeAvailableSlotsMinimumNotice(t *testing.T) {
	store := repository.NewMemory()
	minNotice := 3
	tenant := seedTenant(store, func(t *domain.Tenant) { t.MinBookingNoticeHours = &minNotice })
	bookable := seedBookableService(store, tenant.ID, 30)
	seedSchedule(store, tenant.ID, int(time.Monday), "08:00", "12:00")

	// Querying the current day: everything before now+3h is filtered out.
	today := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	starts := slotStarts(t, newTestService(store), tenant.ID, bookable.ID, today)
	if len(starts) == 0 {
		t.Fatal("expected slots after the notice cutoff")
	}
	cutoff := testNow.Add(3 * time.Hour)
	if starts[0].Before(cutoff) {
		t.Errorf("first slot %v violates the minimum notice cutoff %v", starts[0], cutoff)
	}
}

func TestComputeAvailableSlotsScheduleValidityBounds(t *testing.T) {
	store := repository.NewMemory()
	tenant := seedTenant(store, nil)
	bookable := seedBookableService(store, tenant.ID, 30)
	sched := seedSchedule(store, tenant.ID, int(time.Wednesday), "09:00", "12:00")
	sched.ValidTo = "2026-03-03"
	store.PutSchedule(sched)

	starts := slotStarts(t, newTestService(store), tenant.ID, bookable.ID, testDate)
	if len(starts) != 0 {
		t.Fatalf("expected expired schedule to yield no slots, got %v", starts)
	}

	sched.ValidTo = "2026-03-04"
	store.PutSchedule(sched)
	if starts := slotStarts(t, newTestService(store), tenant.ID, bookable.ID, testDate); len(starts) == 0 {
		t.Error("expected slots on the schedule's last valid day")
	}
}

func TestComputeAvailableSlotsUnknownEntities(t *testing.T) {
	store := repository.NewMemory()
	tenant := seedTenant(store, nil)
	bookable := seedBookableService(store, tenant.ID, 30)
	svc := newTestService(store)

	_, err := svc.ComputeAvailableSlots(context.Background(), uuid.New(), bookable.ID, testDate)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not-found for unknown tenant, got %v", err)
	}

	_, err = svc.ComputeAvailableSlots(context.Background(), tenant.ID, uuid.New(), testDate)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not-found for unknown service, got %v", err)
	}

	other := seedTenant(store, func(t *domain.Tenant) { t.Slug = "otro" })
	foreign := seedBookableService(store, other.ID, 30)
	_, err = svc.ComputeAvailableSlots(context.Background(), tenant.ID, foreign.ID, testDate)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not-found for a service of another tenant, got %v", err)
	}
}
