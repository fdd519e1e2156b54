package domain

import (
	"testing"
	"time"
)

func TestCoversDate(t *testing.T) {
	cases := []struct {
		name     string
		schedule Schedule
		weekday  time.Weekday
		date     string
		want     bool
	}{
		{"matchingWeekdayNoBounds", Schedule{DayOfWeek: 3}, time.Wednesday, "2026-03-04", true},
		{"wrongWeekday", Schedule{DayOfWeek: 3}, time.Thursday, "2026-03-05", false},
		{"withinBounds", Schedule{DayOfWeek: 3, ValidFrom: "2026-03-01", ValidTo: "2026-03-31"}, time.Wednesday, "2026-03-04", true},
		{"beforeValidFrom", Schedule{DayOfWeek: 3, ValidFrom: "2026-03-05"}, time.Wednesday, "2026-03-04", false},
		{"afterValidTo", Schedule{DayOfWeek: 3, ValidTo: "2026-03-03"}, time.Wednesday, "2026-03-04", false},
		{"boundaryDaysInclusive", Schedule{DayOfWeek: 3, ValidFrom: "2026-03-04", ValidTo: "2026-03-04"}, time.Wednesday, "2026-03-04", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.schedule.CoversDate(tc.weekday, tc.date); got != tc.want {
				t.Errorf("CoversDate(%v, %s) = %v, want %v", tc.weekday, tc.date, got, tc.want)
			}
		})
	}
}

func TestAtTime(t *testing.T) {
	date := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)

	got, err := AtTime(date, "09:30")
	if err != nil {
		t.Fatalf("AtTime: %v", err)
	}
	want := time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	for _, invalid := range []string{"9am", "24:00", "09:60", "0930", "-1:00"} {
		if _, err := AtTime(date, invalid); err == nil {
			t.Errorf("expected error for %q", invalid)
		}
	}
}

func TestDayBounds(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	at := time.Date(2026, time.March, 4, 13, 45, 12, 0, loc)

	start := StartOfDay(at)
	if start.Hour() != 0 || start.Minute() != 0 || start.Location() != loc {
		t.Errorf("unexpected start of day %v", start)
	}
	end := EndOfDay(at)
	if end.Hour() != 23 || end.Minute() != 59 || !end.After(at) {
		t.Errorf("unexpected end of day %v", end)
	}
	if DateString(at) != "2026-03-04" {
		t.Errorf("unexpected date string %q", DateString(at))
	}
}
