package domain

import (
	"testing"
	"time"
)

func TestBookingBlocks(t *testing.T) {
	for _, status := range []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted} {
		b := Booking{Status: status}
		if !b.Blocks() {
			t.Errorf("expected %s booking to block its slot", status)
		}
	}
	cancelled := Booking{Status: BookingStatusCancelled}
	if cancelled.Blocks() {
		t.Error("expected cancelled booking not to block")
	}
}

func TestBookingOverlapsHalfOpen(t *testing.T) {
	b := Booking{
		StartTime: time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.March, 4, 11, 0, 0, 0, time.UTC),
	}

	at := func(h, m int) time.Time {
		return time.Date(2026, time.March, 4, h, m, 0, 0, time.UTC)
	}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside", at(10, 15), at(10, 45), true},
		{"spanning", at(9, 30), at(11, 30), true},
		{"partialFront", at(9, 30), at(10, 30), true},
		{"partialBack", at(10, 30), at(11, 30), true},
		{"endsAtStart", at(9, 0), at(10, 0), false},
		{"startsAtEnd", at(11, 0), at(12, 0), false},
		{"disjoint", at(12, 0), at(13, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Overlaps(tc.start, tc.end); got != tc.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestValidBookingStatus(t *testing.T) {
	for _, status := range []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted} {
		if !ValidBookingStatus(status) {
			t.Errorf("expected %s to be valid", status)
		}
	}
	if ValidBookingStatus(BookingStatus("archived")) {
		t.Error("expected unknown status to be invalid")
	}
}
