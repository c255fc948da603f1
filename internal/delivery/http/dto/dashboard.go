package dto

import (
	"time"

	"fsti-hub/internal/usecase"

	"github.com/google/uuid"
)

type CategoryCountResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type RegistrationItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminDashboardResponse struct {
	Talents             int                        `json:"talents"`
	Coaches             int                        `json:"coaches"`
	Recruiters          int                        `json:"recruiters"`
	OpenJobs            int                        `json:"open_jobs"`
	Applications        map[string]int             `json:"applications"`
	TalentsPerCategory  []CategoryCountResponse    `json:"talents_per_category"`
	RecentRegistrations []RegistrationItemResponse `json:"recent_registrations"`
}

func NewAdminDashboardResponse(d usecase.AdminDashboard) AdminDashboardResponse {
	out := AdminDashboardResponse{
		Talents:             d.Talents,
		Coaches:             d.Coaches,
		Recruiters:          d.Recruiters,
		OpenJobs:            d.OpenJobs,
		Applications:        d.Applications,
		TalentsPerCategory:  make([]CategoryCountResponse, 0, len(d.TalentsPerCategory)),
		RecentRegistrations: make([]RegistrationItemResponse, 0, len(d.RecentRegistrations)),
	}
	if out.Applications == nil {
		out.Applications = map[string]int{}
	}
	for _, c := range d.TalentsPerCategory {
		out.TalentsPerCategory = append(out.TalentsPerCategory, CategoryCountResponse{Category: c.Category, Count: c.Count})
	}
	for _, r := range d.RecentRegistrations {
		out.RecentRegistrations = append(out.RecentRegistrations, RegistrationItemResponse{
			ID:        r.ID,
			Role:      r.Role,
			FullName:  r.FullName,
			Email:     r.Email,
			Detail:    r.Detail,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

type RecruiterDashboardResponse struct {
	Jobs              []JobResponse               `json:"jobs"`
	OpenJobs          int                         `json:"open_jobs"`
	TotalApplications int                         `json:"total_applications"`
	Applications      map[string]int              `json:"applications_by_status"`
	Recent            []ApplicationDetailResponse `json:"recent_applications"`
}

func NewRecruiterDashboardResponse(d usecase.RecruiterDashboard) RecruiterDashboardResponse {
	out := RecruiterDashboardResponse{
		Jobs:              NewJobList(d.Jobs),
		OpenJobs:          d.OpenJobs,
		TotalApplications: d.TotalApplications,
		Applications:      d.Applications,
		Recent:            NewApplicationDetailList(d.Recent),
	}
	if out.Applications == nil {
		out.Applications = map[string]int{}
	}
	return out
}

type CoachDashboardResponse struct {
	Talents      []AssignmentResponse  `json:"talents"`
	Appointments []AppointmentResponse `json:"appointments"`
}

func NewCoachDashboardResponse(d usecase.CoachDashboard) CoachDashboardResponse {
	return CoachDashboardResponse{
		Talents:      NewAssignmentList(d.Talents),
		Appointments: NewAppointmentList(d.Appointments),
	}
}
