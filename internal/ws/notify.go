package ws

import (
	"time"

	"fsti-hub/internal/domain/coaching"
	"fsti-hub/internal/domain/job"

	"github.com/google/uuid"
)

// Notifier turns marketplace changes into hub events.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

type jobPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	CompanyName string `json:"company_name"`
}

type applicationPayload struct {
	ID       string `json:"id"`
	JobID    string `json:"job_id"`
	TalentID string `json:"talent_id"`
	Status   string `json:"status"`
}

type appointmentPayload struct {
	ID          string `json:"id"`
	ScheduledAt string `json:"scheduled_at"`
	MeetingLink string `json:"meeting_link,omitempty"`
}

func (n *Notifier) JobPosted(l job.Listing) {
	if n == nil {
		return
	}
	n.hub.Publish(TopicJobs, EventJobPosted, jobPayload{
		ID:          l.ID.String(),
		Title:       l.Title,
		Category:    l.Category,
		Location:    l.Location,
		CompanyName: l.CompanyName,
	})
}

func (n *Notifier) ApplicationCreated(recruiterID uuid.UUID, a job.Application) {
	if n == nil {
		return
	}
	n.hub.Publish(RecruiterTopic(recruiterID), EventApplicationCreated, toApplicationPayload(a))
}

func (n *Notifier) ApplicationDecided(a job.Application) {
	if n == nil {
		return
	}
	n.hub.Publish(TalentTopic(a.TalentID), EventApplicationDecided, toApplicationPayload(a))
}

func (n *Notifier) AppointmentConfirmed(a coaching.Appointment) {
	if n == nil {
		return
	}
	n.hub.Publish(TalentTopic(a.TalentID), EventAppointmentConfirmed, appointmentPayload{
		ID:          a.ID.String(),
		ScheduledAt: a.ScheduledAt.UTC().Format(time.RFC3339),
		MeetingLink: a.MeetingLink,
	})
}

func toApplicationPayload(a job.Application) applicationPayload {
	return applicationPayload{
		ID:       a.ID.String(),
		JobID:    a.JobID.String(),
		TalentID: a.TalentID.String(),
		Status:   string(a.Status),
	}
}
