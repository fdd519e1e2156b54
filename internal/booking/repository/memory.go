package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"reserva_backend/internal/booking/domain"
	"reserva_backend/platform/apperr"

	"github.com/google/uuid"
)

// Memory is an in-memory Store used by tests and local development.
// All methods copy entities in and out, so callers never share state.
type Memory struct {
	mu         sync.RWMutex
	tenants    map[uuid.UUID]domain.Tenant
	services   map[uuid.UUID]domain.Service
	schedules  map[uuid.UUID]domain.Schedule
	exceptions map[uuid.UUID]domain.ScheduleException
	bookings   map[uuid.UUID]domain.Booking
	customers  map[uuid.UUID]domain.Customer
	now        func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		tenants:    make(map[uuid.UUID]domain.Tenant),
		services:   make(map[uuid.UUID]domain.Service),
		schedules:  make(map[uuid.UUID]domain.Schedule),
		exceptions: make(map[uuid.UUID]domain.ScheduleException),
		bookings:   make(map[uuid.UUID]domain.Booking),
		customers:  make(map[uuid.UUID]domain.Customer),
		now:        time.Now,
	}
}

var _ Store = (*Memory)(nil)

// =============================================================================
// Seeding helpers (tests, local fixtures)
// =============================================================================

// PutTenant stores a tenant as-is.
func (m *Memory) PutTenant(t domain.Tenant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenants[t.ID] = t
}

// PutService stores a service as-is.
func (m *Memory) PutService(s domain.Service) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services[s.ID] = s
}

// PutSchedule stores a schedule as-is.
func (m *Memory) PutSchedule(s domain.Schedule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[s.ID] = s
}

// PutScheduleException stores an exception as-is.
func (m *Memory) PutScheduleException(e domain.ScheduleException) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exceptions[e.ID] = e
}

// PutBooking stores a booking as-is.
func (m *Memory) PutBooking(b domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = b
}

// PutCustomer stores a customer as-is.
func (m *Memory) PutCustomer(c domain.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[c.ID] = c
}

// =============================================================================
// Tenants
// =============================================================================

func (m *Memory) GetTenantByID(_ context.Context, id uuid.UUID) (*domain.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.tenants[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (m *Memory) GetTenantBySlug(_ context.Context, slug string) (*domain.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tenants {
		if t.Slug == slug {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (m *Memory) UpdateTenantSettings(_ context.Context, id uuid.UUID, update TenantSettingsUpdate) (*domain.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tenants[id]
	if !ok {
		return nil, nil
	}
	if update.Name != nil {
		t.Name = *update.Name
	}
	if update.DefaultLanguage != nil {
		t.DefaultLanguage = *update.DefaultLanguage
	}
	if update.PreferredCurrency != nil {
		t.PreferredCurrency = *update.PreferredCurrency
	}
	if update.SlotIntervalMinutes != nil {
		t.SlotIntervalMinutes = update.SlotIntervalMinutes
	}
	if update.MinBookingNoticeHours != nil {
		t.MinBookingNoticeHours = update.MinBookingNoticeHours
	}
	if update.MaxBookingNoticeDays != nil {
		t.MaxBookingNoticeDays = update.MaxBookingNoticeDays
	}
	if update.ReminderHoursPrior != nil {
		t.ReminderHoursPrior = update.ReminderHoursPrior
	}
	if update.ReminderTemplateBody != nil {
		t.ReminderTemplateBody = update.ReminderTemplateBody
	}
	if update.TelegramChatID != nil {
		t.TelegramChatID = update.TelegramChatID
	}
	if update.NotifyEmailConfirmations != nil {
		t.NotifyEmailConfirmations = update.NotifyEmailConfirmations
	}
	if update.NotifyTelegramConfirmations != nil {
		t.NotifyTelegramConfirmations = update.NotifyTelegramConfirmations
	}
	if update.NotifyEmailReminders != nil {
		t.NotifyEmailReminders = update.NotifyEmailReminders
	}
	if update.NotifyTelegramReminders != nil {
		t.NotifyTelegramReminders = update.NotifyTelegramReminders
	}
	t.UpdatedAt = m.now()
	m.tenants[id] = t
	return &t, nil
}

// =============================================================================
// Services
// =============================================================================

func (m *Memory) GetServiceByID(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.services[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *Memory) ListServicesByTenant(_ context.Context, tenantID uuid.UUID) ([]domain.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	services := make([]domain.Service, 0)
	for _, s := range m.services {
		if s.TenantID == tenantID {
			services = append(services, s)
		}
	}
	sort.Slice(services, func(i, j int) bool { return services[i].CreatedAt.Before(services[j].CreatedAt) })
	return services, nil
}

func (m *Memory) CreateService(_ context.Context, tenantID uuid.UUID, input ServiceInput) (*domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	s := domain.Service{
		ID:              uuid.New(),
		TenantID:        tenantID,
		Name:            input.Name,
		Description:     input.Description,
		ImageURL:        input.ImageURL,
		DurationMinutes: input.DurationMinutes,
		PriceCents:      input.PriceCents,
		Currency:        input.Currency,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.services[s.ID] = s
	return &s, nil
}

func (m *Memory) UpdateService(_ context.Context, tenantID, id uuid.UUID, update ServiceUpdate) (*domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[id]
	if !ok || s.TenantID != tenantID {
		return nil, nil
	}
	if update.Name != nil {
		s.Name = update.Name
	}
	if update.Description != nil {
		s.Description = update.Description
	}
	if update.ImageURL != nil {
		s.ImageURL = update.ImageURL
	}
	if update.DurationMinutes != nil {
		s.DurationMinutes = *update.DurationMinutes
	}
	if update.PriceCents != nil {
		s.PriceCents = *update.PriceCents
	}
	if update.Currency != nil {
		s.Currency = *update.Currency
	}
	s.UpdatedAt = m.now()
	m.services[id] = s
	return &s, nil
}

func (m *Memory) DeleteService(_ context.Context, tenantID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.services[id]; !ok || s.TenantID != tenantID {
		return apperr.NotFound("service not found")
	}
	delete(m.services, id)
	return nil
}

// =============================================================================
// Schedules
// =============================================================================

func (m *Memory) GetTenantSchedulesForDate(_ context.Context, tenantID uuid.UUID, date time.Time) ([]domain.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dateStr := domain.DateString(date)
	schedules := make([]domain.Schedule, 0)
	for _, s := range m.schedules {
		if s.TenantID == tenantID && s.CoversDate(date.Weekday(), dateStr) {
			schedules = append(schedules, s)
		}
	}
	sort.Slice(schedules, func(i, j int) bool { return schedules[i].OpenTime < schedules[j].OpenTime })
	return schedules, nil
}

func (m *Memory) ListSchedules(_ context.Context, tenantID uuid.UUID) ([]domain.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	schedules := make([]domain.Schedule, 0)
	for _, s := range m.schedules {
		if s.TenantID == tenantID {
			schedules = append(schedules, s)
		}
	}
	sort.Slice(schedules, func(i, j int) bool {
		if schedules[i].DayOfWeek != schedules[j].DayOfWeek {
			return schedules[i].DayOfWeek < schedules[j].DayOfWeek
		}
		return schedules[i].OpenTime < schedules[j].OpenTime
	})
	return schedules, nil
}

func (m *Memory) CreateSchedule(_ context.Context, tenantID uuid.UUID, input ScheduleInput) (*domain.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	s := domain.Schedule{
		ID:        uuid.New(),
		TenantID:  tenantID,
		DayOfWeek: input.DayOfWeek,
		OpenTime:  input.OpenTime,
		CloseTime: input.CloseTime,
		ValidFrom: input.ValidFrom,
		ValidTo:   input.ValidTo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.schedules[s.ID] = s
	return &s, nil
}

func (m *Memory) DeleteSchedule(_ context.Context, tenantID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.schedules[id]; !ok || s.TenantID != tenantID {
		return apperr.NotFound("schedule not found")
	}
	delete(m.schedules, id)
	return nil
}

// =============================================================================
// Schedule exceptions
// =============================================================================

func (m *Memory) GetScheduleExceptionsByDate(_ context.Context, tenantID uuid.UUID, date time.Time) ([]domain.ScheduleException, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dateStr := domain.DateString(date)
	exceptions := make([]domain.ScheduleException, 0)
	for _, e := range m.exceptions {
		if e.TenantID == tenantID && e.ExceptionDate == dateStr {
			exceptions = append(exceptions, e)
		}
	}
	sort.Slice(exceptions, func(i, j int) bool {
		left, right := "", ""
		if exceptions[i].OpenTime != nil {
			left = *exceptions[i].OpenTime
		}
		if exceptions[j].OpenTime != nil {
			right = *exceptions[j].OpenTime
		}
		return left < right
	})
	return exceptions, nil
}

func (m *Memory) ListScheduleExceptions(_ context.Context, tenantID uuid.UUID) ([]domain.ScheduleException, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	exceptions := make([]domain.ScheduleException, 0)
	for _, e := range m.exceptions {
		if e.TenantID == tenantID {
			exceptions = append(exceptions, e)
		}
	}
	sort.Slice(exceptions, func(i, j int) bool { return exceptions[i].ExceptionDate < exceptions[j].ExceptionDate })
	return exceptions, nil
}

func (m *Memory) CreateScheduleException(_ context.Context, tenantID uuid.UUID, input ExceptionInput) (*domain.ScheduleException, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	e := domain.ScheduleException{
		ID:            uuid.New(),
		TenantID:      tenantID,
		ExceptionDate: input.ExceptionDate,
		IsClosed:      input.IsClosed,
		OpenTime:      input.OpenTime,
		CloseTime:     input.CloseTime,
		Reason:        input.Reason,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.exceptions[e.ID] = e
	return &e, nil
}

func (m *Memory) DeleteScheduleException(_ context.Context, tenantID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.exceptions[id]; !ok || e.TenantID != tenantID {
		return apperr.NotFound("schedule exception not found")
	}
	delete(m.exceptions, id)
	return nil
}

// =============================================================================
// Bookings
// =============================================================================

func (m *Memory) GetBookingsByDate(_ context.Context, tenantID uuid.UUID, date time.Time) ([]domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dayStart := domain.StartOfDay(date)
	dayEnd := domain.EndOfDay(date)
	bookings := make([]domain.Booking, 0)
	for _, b := range m.bookings {
		if b.TenantID == tenantID && !b.StartTime.Before(dayStart) && !b.StartTime.After(dayEnd) {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].StartTime.Before(bookings[j].StartTime) })
	return bookings, nil
}

func (m *Memory) GetBookingByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.bookings[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (m *Memory) ListBookings(_ context.Context, tenantID uuid.UUID, filter BookingFilter) ([]domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bookings := make([]domain.Booking, 0)
	for _, b := range m.bookings {
		if b.TenantID != tenantID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.From != nil && b.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && b.StartTime.After(*filter.To) {
			continue
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].StartTime.Before(bookings[j].StartTime) })
	if filter.Limit > 0 && len(bookings) > filter.Limit {
		bookings = bookings[:filter.Limit]
	}
	return bookings, nil
}

func (m *Memory) CreateBooking(_ context.Context, input NewBooking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	b := domain.Booking{
		ID:              uuid.New(),
		TenantID:        input.TenantID,
		ServiceID:       input.ServiceID,
		CustomerID:      input.CustomerID,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Status:          input.Status,
		PaymentStatus:   input.PaymentStatus,
		ManagementToken: input.ManagementToken,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.bookings[b.ID] = b
	return &b, nil
}

func (m *Memory) UpdateBooking(_ context.Context, id uuid.UUID, update BookingUpdate) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	if update.Status != nil {
		b.Status = *update.Status
	}
	if update.PaymentStatus != nil {
		b.PaymentStatus = *update.PaymentStatus
	}
	if update.PaymentIntentID != nil {
		b.PaymentIntentID = update.PaymentIntentID
	}
	if update.ConfirmationSentAt != nil {
		b.ConfirmationSentAt = update.ConfirmationSentAt
	}
	if update.ReminderSentAt != nil {
		b.ReminderSentAt = update.ReminderSentAt
	}
	b.UpdatedAt = m.now()
	m.bookings[id] = b
	return &b, nil
}

func (m *Memory) GetPendingReminders(_ context.Context, now, until time.Time) ([]domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bookings := make([]domain.Booking, 0)
	for _, b := range m.bookings {
		if b.Status != domain.BookingStatusConfirmed || b.ReminderSentAt != nil {
			continue
		}
		if b.StartTime.After(now) && !b.StartTime.After(until) {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].StartTime.Before(bookings[j].StartTime) })
	return bookings, nil
}

// =============================================================================
// Customers
// =============================================================================

func (m *Memory) GetCustomerByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *Memory) GetCustomerEmail(_ context.Context, id uuid.UUID) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.customers[id]; ok {
		return c.Email, nil
	}
	return "", nil
}

func (m *Memory) GetCustomerTelegramID(_ context.Context, id uuid.UUID) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.customers[id]; ok && c.TelegramChatID != nil {
		return *c.TelegramChatID, nil
	}
	return "", nil
}

func (m *Memory) UpsertCustomerByEmail(_ context.Context, input NewCustomer) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := strings.ToLower(input.Email)
	for id, c := range m.customers {
		if c.TenantID == input.TenantID && strings.ToLower(c.Email) == email {
			c.Name = input.Name
			if input.Phone != nil {
				c.Phone = input.Phone
			}
			if input.TelegramChatID != nil {
				c.TelegramChatID = input.TelegramChatID
			}
			c.UpdatedAt = m.now()
			m.customers[id] = c
			return &c, nil
		}
	}
	now := m.now()
	c := domain.Customer{
		ID:             uuid.New(),
		TenantID:       input.TenantID,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		TelegramChatID: input.TelegramChatID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	m.customers[c.ID] = c
	return &c, nil
}
