package dto

import (
	"time"

	"fsti-hub/internal/domain/coaching"
	"fsti-hub/internal/pkg/whatsapp"

	"github.com/google/uuid"
)

type AssignmentResponse struct {
	ID             uuid.UUID `json:"id"`
	CoachID        uuid.UUID `json:"coach_id"`
	TalentID       uuid.UUID `json:"talent_id"`
	CoachName      string    `json:"coach_name"`
	CoachSpecialty string    `json:"coach_specialty"`
	CoachWhatsApp  string    `json:"coach_whatsapp_link"`
	TalentName     string    `json:"talent_name"`
	TalentCategory string    `json:"talent_category"`
	TalentRole     string    `json:"talent_role_title"`
	TalentWhatsApp string    `json:"talent_whatsapp_link"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewAssignmentResponse(d coaching.AssignmentDetail) AssignmentResponse {
	return AssignmentResponse{
		ID:             d.ID,
		CoachID:        d.CoachID,
		TalentID:       d.TalentID,
		CoachName:      d.CoachName,
		CoachSpecialty: d.CoachSpecialty,
		CoachWhatsApp:  whatsapp.Link(d.CoachWhatsApp, ""),
		TalentName:     d.TalentName,
		TalentCategory: d.TalentCategory,
		TalentRole:     d.TalentRoleTitle,
		TalentWhatsApp: whatsapp.Link(d.TalentWhatsApp, ""),
		CreatedAt:      d.CreatedAt,
	}
}

func NewAssignmentList(items []coaching.AssignmentDetail) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(items))
	for _, d := range items {
		out = append(out, NewAssignmentResponse(d))
	}
	return out
}

type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	CoachID     uuid.UUID `json:"coach_id"`
	TalentID    uuid.UUID `json:"talent_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	Note        string    `json:"note"`
	MeetingLink string    `json:"meeting_link"`
	RequestedBy string    `json:"requested_by"`
	CoachName   string    `json:"coach_name,omitempty"`
	TalentName  string    `json:"talent_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewAppointmentResponse(a coaching.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:          a.ID,
		CoachID:     a.CoachID,
		TalentID:    a.TalentID,
		ScheduledAt: a.ScheduledAt,
		Status:      string(a.Status),
		Note:        a.Note,
		MeetingLink: a.MeetingLink,
		RequestedBy: a.RequestedBy,
		CreatedAt:   a.CreatedAt,
	}
}

func NewAppointmentList(items []coaching.AppointmentDetail) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(items))
	for _, d := range items {
		r := NewAppointmentResponse(d.Appointment)
		r.CoachName, r.TalentName = d.CoachName, d.TalentName
		out = append(out, r)
	}
	return out
}
