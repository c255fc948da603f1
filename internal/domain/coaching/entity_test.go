package coaching

import (
	"errors"
	"testing"
	"time"
)

func TestAppointment_Confirm(t *testing.T) {
	a := Appointment{Status: AppointmentPending}
	if err := a.Confirm("https://meet.example.com/abc"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if a.Status != AppointmentConfirmed || a.MeetingLink == "" {
		t.Fatalf("unexpected appointment %+v", a)
	}
	if err := a.Confirm(""); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending on second confirm, got %v", err)
	}
}

func TestValidateSchedule(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	if err := ValidateSchedule(now, now.Add(time.Hour)); err != nil {
		t.Fatalf("future slot rejected: %v", err)
	}
	if err := ValidateSchedule(now, now); !errors.Is(err, ErrPastSchedule) {
		t.Fatalf("expected ErrPastSchedule for now, got %v", err)
	}
	if err := ValidateSchedule(now, now.Add(-time.Minute)); !errors.Is(err, ErrPastSchedule) {
		t.Fatalf("expected ErrPastSchedule for past, got %v", err)
	}
}

func TestValidateMeetingLink(t *testing.T) {
	ok := []string{"", "https://meet.google.com/xyz", "http://zoom.us/j/1"}
	for _, l := range ok {
		if err := ValidateMeetingLink(l); err != nil {
			t.Fatalf("%q rejected: %v", l, err)
		}
	}
	bad := []string{"meet.google.com/xyz", "javascript:alert(1)", "ftp://files.example.com", "https://"}
	for _, l := range bad {
		if err := ValidateMeetingLink(l); !errors.Is(err, ErrInvalidMeetingURL) {
			t.Fatalf("%q should be rejected, got %v", l, err)
		}
	}
}

func TestSortUpcomingFirst(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	at := func(h int) AppointmentDetail {
		return AppointmentDetail{Appointment: Appointment{ScheduledAt: now.Add(time.Duration(h) * time.Hour)}}
	}
	items := []AppointmentDetail{at(-48), at(72), at(-1), at(2)}

	SortUpcomingFirst(items, now)

	want := []time.Duration{2, 72, -48, -1}
	for i, w := range want {
		if got := items[i].ScheduledAt.Sub(now); got != w*time.Hour {
			t.Fatalf("position %d: got offset %v, want %v", i, got, w*time.Hour)
		}
	}
}
