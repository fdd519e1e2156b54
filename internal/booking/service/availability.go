package service

import (
	"context"
	"sort"
	"time"

	"reserva_backend/internal/booking/domain"
	"reserva_backend/internal/booking/transport"
	"reserva_backend/platform/apperr"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// timeBlock is a resolved opening window on the requested date.
type timeBlock struct {
	open  time.Time
	close time.Time
}

// ComputeAvailableSlots returns the open slots for a service on the requested
// date, ascending by start time. Resolution order: max-notice horizon check,
// then per-date exceptions (a closed exception empties the day, open
// exceptions replace the weekly schedule), then weekly schedule blocks.
// Slots are stepped by the tenant's interval, fitted to block bounds, and
// filtered by min-notice and by overlap with non-cancelled bookings.
func (s *Service) ComputeAvailableSlots(ctx context.Context, tenantID, serviceID uuid.UUID, date time.Time) ([]transport.TimeSlot, error) {
	var (
		tenant *domain.Tenant
		svc    *domain.Service
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tenant, err = s.store.GetTenantByID(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		svc, err = s.store.GetServiceByID(gctx, serviceID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperr.NotFound("tenant not found")
	}
	if svc == nil || svc.TenantID != tenantID {
		return nil, apperr.NotFound("service not found")
	}

	if s.metrics != nil {
		s.metrics.AvailabilityQueries.Inc()
	}

	settings := tenant.Settings()
	now := s.now()

	// Booking horizon: nothing is offered past the last bookable day. The
	// whole day at the horizon boundary stays bookable.
	maxDate := domain.EndOfDay(now.AddDate(0, 0, settings.MaxBookingNoticeDays))
	if date.After(maxDate) {
		return []transport.TimeSlot{}, nil
	}

	blocks, err := s.resolveBlocks(ctx, tenant, date)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return []transport.TimeSlot{}, nil
	}

	bookings, err := s.store.GetBookingsByDate(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}

	duration := svc.Duration()
	interval := time.Duration(settings.SlotIntervalMinutes) * time.Minute
	minStart := now.Add(time.Duration(settings.MinBookingNoticeHours) * time.Hour)

	slots := make([]transport.TimeSlot, 0)
	for _, block := range blocks {
		slots = append(slots, enumerateSlots(block, duration, interval, minStart, bookings)...)
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime.Before(slots[j].StartTime) })

	if s.metrics != nil {
		s.metrics.SlotsOffered.Add(float64(len(slots)))
	}
	return slots, nil
}

// resolveBlocks determines the opening windows for the date. Exceptions take
// full precedence over the weekly schedule: one closed exception removes the
// day entirely, and open exceptions replace (not merge with) weekly blocks.
func (s *Service) resolveBlocks(ctx context.Context, tenant *domain.Tenant, date time.Time) ([]timeBlock, error) {
	exceptions, err := s.store.GetScheduleExceptionsByDate(ctx, tenant.ID, date)
	if err != nil {
		return nil, err
	}

	if len(exceptions) > 0 {
		for _, e := range exceptions {
			if e.IsClosed {
				return nil, nil
			}
		}
		blocks := make([]timeBlock, 0, len(exceptions))
		for _, e := range exceptions {
			if e.OpenTime == nil || e.CloseTime == nil {
				continue
			}
			block, ok := s.parseBlock(date, *e.OpenTime, *e.CloseTime)
			if !ok {
				continue
			}
			blocks = append(blocks, block)
		}
		return blocks, nil
	}

	schedules, err := s.store.GetTenantSchedulesForDate(ctx, tenant.ID, date)
	if err != nil {
		return nil, err
	}
	blocks := make([]timeBlock, 0, len(schedules))
	for _, sched := range schedules {
		block, ok := s.parseBlock(date, sched.OpenTime, sched.CloseTime)
		if !ok {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func (s *Service) parseBlock(date time.Time, openStr, closeStr string) (timeBlock, bool) {
	open, err := domain.AtTime(date, openStr)
	if err != nil {
		s.log.Warn("skipping block with invalid open time", "value", openStr, "error", err.Error())
		return timeBlock{}, false
	}
	close, err := domain.AtTime(date, closeStr)
	if err != nil {
		s.log.Warn("skipping block with invalid close time", "value", closeStr, "error", err.Error())
		return timeBlock{}, false
	}
	if !open.Before(close) {
		return timeBlock{}, false
	}
	return timeBlock{open: open, close: close}, true
}

// enumerateSlots walks a block stepping by interval. A candidate survives if
// the full service duration fits before close, it honors the minimum notice,
// and it does not overlap a blocking booking. Ranges are half-open, so
// back-to-back bookings never conflict.
func enumerateSlots(block timeBlock, duration, interval time.Duration, minStart time.Time, bookings []domain.Booking) []transport.TimeSlot {
	slots := make([]transport.TimeSlot, 0)
	for slotStart := block.open; ; slotStart = slotStart.Add(interval) {
		slotEnd := slotStart.Add(duration)
		if slotEnd.After(block.close) {
			break
		}
		if slotStart.Before(minStart) {
			continue
		}
		if overlapsAny(slotStart, slotEnd, bookings) {
			continue
		}
		slots = append(slots, transport.TimeSlot{
			StartTime: slotStart,
			EndTime:   slotEnd,
			Available: true,
		})
	}
	return slots
}

func overlapsAny(start, end time.Time, bookings []domain.Booking) bool {
	for i := range bookings {
		b := &bookings[i]
		if !b.Blocks() {
			continue
		}
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
