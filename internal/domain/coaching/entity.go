package coaching

import (
	"errors"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Assignment struct {
	ID        uuid.UUID
	CoachID   uuid.UUID
	TalentID  uuid.UUID
	CreatedAt time.Time
}

// AssignmentDetail carries both parties' names and contact numbers.
type AssignmentDetail struct {
	Assignment
	CoachName       string
	CoachSpecialty  string
	CoachWhatsApp   string
	TalentName      string
	TalentCategory  string
	TalentWhatsApp  string
	TalentRoleTitle string
}

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
)

var (
	ErrNotPending        = errors.New("appointment is not pending")
	ErrPastSchedule      = errors.New("appointment must be scheduled in the future")
	ErrInvalidMeetingURL = errors.New("meeting link must be an http or https url")
)

type Appointment struct {
	ID          uuid.UUID
	CoachID     uuid.UUID
	TalentID    uuid.UUID
	ScheduledAt time.Time
	Status      AppointmentStatus
	Note        string
	MeetingLink string
	RequestedBy string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type AppointmentDetail struct {
	Appointment
	CoachName  string
	TalentName string
}

// Confirm moves a pending appointment to confirmed.
func (a *Appointment) Confirm(meetingLink string) error {
	if a.Status != AppointmentPending {
		return ErrNotPending
	}
	a.Status = AppointmentConfirmed
	a.MeetingLink = meetingLink
	return nil
}

// SortUpcomingFirst orders appointments still ahead of now first, soonest
// first, followed by past ones in chronological order.
func SortUpcomingFirst(items []AppointmentDetail, now time.Time) {
	slices.SortStableFunc(items, func(a, b AppointmentDetail) int {
		aPast, bPast := a.ScheduledAt.Before(now), b.ScheduledAt.Before(now)
		if aPast != bPast {
			if aPast {
				return 1
			}
			return -1
		}
		return a.ScheduledAt.Compare(b.ScheduledAt)
	})
}

func ValidateSchedule(now, at time.Time) error {
	if !at.After(now) {
		return ErrPastSchedule
	}
	return nil
}

// ValidateMeetingLink accepts an empty link or an absolute http(s) url.
func ValidateMeetingLink(link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ErrInvalidMeetingURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidMeetingURL
	}
	return nil
}
