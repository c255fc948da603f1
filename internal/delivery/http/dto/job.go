package dto

import (
	"time"

	"fsti-hub/internal/domain/job"
	"fsti-hub/internal/domain/matching"
	"fsti-hub/internal/pkg/whatsapp"
	"fsti-hub/internal/usecase"

	"github.com/google/uuid"
)

type FitResponse struct {
	Score         int      `json:"score"`
	CategoryMatch bool     `json:"category_match"`
	MatchedSkills []string `json:"matched_skills"`
}

type JobResponse struct {
	ID          uuid.UUID    `json:"id"`
	RecruiterID uuid.UUID    `json:"recruiter_id"`
	CompanyName string       `json:"company_name"`
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	SalaryRange string       `json:"salary_range"`
	Location    string       `json:"location"`
	Status      string       `json:"status"`
	TDRURL      string       `json:"tdr_url"`
	Applied     *bool        `json:"applied,omitempty"`
	Fit         *FitResponse `json:"fit,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func NewJobResponse(l job.Listing) JobResponse {
	return JobResponse{
		ID:          l.ID,
		RecruiterID: l.RecruiterID,
		CompanyName: l.CompanyName,
		Title:       l.Title,
		Category:    l.Category,
		Description: l.Description,
		SalaryRange: l.SalaryRange,
		Location:    l.Location,
		Status:      string(l.Status),
		TDRURL:      l.TDRURL,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// NewJobItemResponse adds the viewer-specific fields when the item carries them.
func NewJobItemResponse(it usecase.JobItem) JobResponse {
	out := NewJobResponse(it.Listing)
	if it.Fit != nil {
		applied := it.Applied
		out.Applied = &applied
		out.Fit = newFitResponse(*it.Fit)
	}
	return out
}

func newFitResponse(r matching.Result) *FitResponse {
	skills := r.MatchedSkills
	if skills == nil {
		skills = []string{}
	}
	return &FitResponse{Score: r.Score, CategoryMatch: r.CategoryMatch, MatchedSkills: skills}
}

func NewJobList(items []job.Listing) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, l := range items {
		out = append(out, NewJobResponse(l))
	}
	return out
}

func NewJobItemList(items []usecase.JobItem) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewJobItemResponse(it))
	}
	return out
}

type ApplicationResponse struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	TalentID  uuid.UUID `json:"talent_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewApplicationResponse(a job.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:        a.ID,
		JobID:     a.JobID,
		TalentID:  a.TalentID,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func NewApplicationList(items []job.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}

type ApplicantResponse struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	RoleTitle    string   `json:"role_title"`
	Skills       []string `json:"skills"`
	CVURL        string   `json:"cv_url"`
	ImageURL     string   `json:"image_url"`
	IsCertified  bool     `json:"is_certified"`
	Email        string   `json:"email"`
	WhatsAppLink string   `json:"whatsapp_link"`
}

// ApplicationDetailResponse is an application as the recruiter reviews it.
type ApplicationDetailResponse struct {
	ApplicationResponse
	JobTitle    string            `json:"job_title"`
	JobLocation string            `json:"job_location"`
	JobCategory string            `json:"job_category"`
	CompanyName string            `json:"company_name"`
	Talent      ApplicantResponse `json:"talent"`
}

func NewApplicationDetailResponse(d job.ApplicationDetail) ApplicationDetailResponse {
	skills := d.TalentSkills
	if skills == nil {
		skills = []string{}
	}
	return ApplicationDetailResponse{
		ApplicationResponse: NewApplicationResponse(d.Application),
		JobTitle:            d.JobTitle,
		JobLocation:         d.JobLocation,
		JobCategory:         d.JobCategory,
		CompanyName:         d.CompanyName,
		Talent: ApplicantResponse{
			Name:         d.TalentName,
			Category:     d.TalentCategory,
			RoleTitle:    d.TalentRole,
			Skills:       skills,
			CVURL:        d.TalentCVURL,
			ImageURL:     d.TalentImageURL,
			IsCertified:  d.TalentCertified,
			Email:        d.TalentEmail,
			WhatsAppLink: whatsapp.Link(d.TalentWhatsApp, ""),
		},
	}
}

func NewApplicationDetailList(items []job.ApplicationDetail) []ApplicationDetailResponse {
	out := make([]ApplicationDetailResponse, 0, len(items))
	for _, d := range items {
		out = append(out, NewApplicationDetailResponse(d))
	}
	return out
}

type DecisionResponse struct {
	Application ApplicationDetailResponse `json:"application"`
	ContactLink string                    `json:"contact_link,omitempty"`
}

func NewDecisionResponse(d usecase.Decision) DecisionResponse {
	return DecisionResponse{Application: NewApplicationDetailResponse(d.Application), ContactLink: d.ContactLink}
}
