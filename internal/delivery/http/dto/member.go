package dto

import (
	"time"

	"fsti-hub/internal/domain/member"
	"fsti-hub/internal/pkg/whatsapp"

	"github.com/google/uuid"
)

// TalentPublicResponse is the directory view: no email, birth date or access key.
type TalentPublicResponse struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	Province        string    `json:"province"`
	Category        string    `json:"category"`
	EducationLevel  string    `json:"education_level"`
	Bio             string    `json:"bio"`
	RoleTitle       string    `json:"role_title"`
	Experience      string    `json:"experience"`
	Skills          []string  `json:"skills"`
	IsCertified     bool      `json:"is_certified"`
	ProfileImageURL string    `json:"profile_image_url"`
	CVURL           string    `json:"cv_url"`
	Status          string    `json:"status"`
	WhatsAppLink    string    `json:"whatsapp_link"`
	CreatedAt       time.Time `json:"created_at"`
}

// TalentResponse is what the talent and admins see.
type TalentResponse struct {
	TalentPublicResponse
	Email     string    `json:"email"`
	WhatsApp  string    `json:"whatsapp"`
	BirthDate *string   `json:"birth_date"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewTalentPublicResponse(t member.Talent) TalentPublicResponse {
	skills := t.Skills
	if skills == nil {
		skills = []string{}
	}
	return TalentPublicResponse{
		ID:              t.ID,
		FullName:        t.FullName,
		Province:        t.Province,
		Category:        t.Category,
		EducationLevel:  t.EducationLevel,
		Bio:             t.Bio,
		RoleTitle:       t.RoleTitle,
		Experience:      t.Experience,
		Skills:          skills,
		IsCertified:     t.IsCertified,
		ProfileImageURL: t.ProfileImageURL,
		CVURL:           t.CVURL,
		Status:          string(t.Status),
		WhatsAppLink:    whatsapp.Link(t.WhatsApp, ""),
		CreatedAt:       t.CreatedAt,
	}
}

func NewTalentResponse(t member.Talent) TalentResponse {
	out := TalentResponse{
		TalentPublicResponse: NewTalentPublicResponse(t),
		Email:                t.Email,
		WhatsApp:             t.WhatsApp,
		UpdatedAt:            t.UpdatedAt,
	}
	if t.BirthDate != nil {
		d := t.BirthDate.Format(time.DateOnly)
		out.BirthDate = &d
	}
	return out
}

func NewTalentPublicList(items []member.Talent) []TalentPublicResponse {
	out := make([]TalentPublicResponse, 0, len(items))
	for _, t := range items {
		out = append(out, NewTalentPublicResponse(t))
	}
	return out
}

func NewTalentList(items []member.Talent) []TalentResponse {
	out := make([]TalentResponse, 0, len(items))
	for _, t := range items {
		out = append(out, NewTalentResponse(t))
	}
	return out
}

type CoachPublicResponse struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	Specialty       string    `json:"specialty"`
	ExperienceYears int       `json:"experience_years"`
	Motivation      string    `json:"motivation"`
	WhatsAppLink    string    `json:"whatsapp_link"`
	CreatedAt       time.Time `json:"created_at"`
}

type CoachResponse struct {
	CoachPublicResponse
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
}

func NewCoachPublicResponse(c member.Coach) CoachPublicResponse {
	return CoachPublicResponse{
		ID:              c.ID,
		FullName:        c.FullName,
		Specialty:       c.Specialty,
		ExperienceYears: c.ExperienceYears,
		Motivation:      c.Motivation,
		WhatsAppLink:    whatsapp.Link(c.WhatsApp, ""),
		CreatedAt:       c.CreatedAt,
	}
}

func NewCoachResponse(c member.Coach) CoachResponse {
	return CoachResponse{CoachPublicResponse: NewCoachPublicResponse(c), Email: c.Email, WhatsApp: c.WhatsApp}
}

func NewCoachPublicList(items []member.Coach) []CoachPublicResponse {
	out := make([]CoachPublicResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCoachPublicResponse(c))
	}
	return out
}

type RecruiterPublicResponse struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	CompanyName string    `json:"company_name"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type RecruiterResponse struct {
	RecruiterPublicResponse
	Email        string `json:"email"`
	WhatsApp     string `json:"whatsapp"`
	Motivation   string `json:"motivation"`
	WhatsAppLink string `json:"whatsapp_link"`
}

func NewRecruiterPublicResponse(r member.Recruiter) RecruiterPublicResponse {
	return RecruiterPublicResponse{
		ID:          r.ID,
		FullName:    r.FullName,
		CompanyName: r.CompanyName,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

func NewRecruiterResponse(r member.Recruiter) RecruiterResponse {
	return RecruiterResponse{
		RecruiterPublicResponse: NewRecruiterPublicResponse(r),
		Email:                   r.Email,
		WhatsApp:                r.WhatsApp,
		Motivation:              r.Motivation,
		WhatsAppLink:            whatsapp.Link(r.WhatsApp, ""),
	}
}

func NewRecruiterPublicList(items []member.Recruiter) []RecruiterPublicResponse {
	out := make([]RecruiterPublicResponse, 0, len(items))
	for _, r := range items {
		out = append(out, NewRecruiterPublicResponse(r))
	}
	return out
}

func NewRecruiterList(items []member.Recruiter) []RecruiterResponse {
	out := make([]RecruiterResponse, 0, len(items))
	for _, r := range items {
		out = append(out, NewRecruiterResponse(r))
	}
	return out
}

// RegistrationResponse returns the access key once, at sign-up.
type RegistrationResponse struct {
	Profile   any    `json:"profile"`
	AccessKey string `json:"access_key"`
}
