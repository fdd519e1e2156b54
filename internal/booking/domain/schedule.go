package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Schedule is a weekly recurring opening block. DayOfWeek follows time.Weekday
// numbering (0 = Sunday). Times are local "HH:mm" strings; validity bounds are
// "YYYY-MM-DD" strings compared lexically, which matches chronological order.
type Schedule struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	DayOfWeek int
	OpenTime  string
	CloseTime string
	ValidFrom string
	ValidTo   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoversDate reports whether the schedule applies on the given calendar date.
func (s *Schedule) CoversDate(weekday time.Weekday, dateStr string) bool {
	if s.DayOfWeek != int(weekday) {
		return false
	}
	if s.ValidFrom != "" && dateStr < s.ValidFrom {
		return false
	}
	if s.ValidTo != "" && dateStr > s.ValidTo {
		return false
	}
	return true
}

// ScheduleException overrides the weekly schedule on a single date. A closed
// exception removes all availability; an open one replaces the weekly blocks
// with its own window.
type ScheduleException struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	ExceptionDate string
	IsClosed      bool
	OpenTime      *string
	CloseTime     *string
	Reason        *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DateString formats a time as the "YYYY-MM-DD" key used by schedule validity
// bounds and exception dates.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// AtTime anchors a "HH:mm" wall-clock string onto the given date, preserving
// the date's location.
func AtTime(date time.Time, hhmm string) (time.Time, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:mm", hhmm)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return time.Time{}, fmt.Errorf("invalid hour in %q", hhmm)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return time.Time{}, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hours, minutes, 0, 0, date.Location()), nil
}

// EndOfDay returns the last representable millisecond of the given date.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

// StartOfDay returns midnight of the given date.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
