package dto

import (
	"fsti-hub/internal/usecase"

	"github.com/google/uuid"
)

type SessionResponse struct {
	Role        string    `json:"role"`
	PrincipalID uuid.UUID `json:"principal_id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Dashboard   string    `json:"dashboard"`
	Profile     any       `json:"profile"`
}

type LoginResponse struct {
	Session      SessionResponse `json:"session"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

func NewSessionResponse(s usecase.Session) SessionResponse {
	out := SessionResponse{
		Role:        string(s.Role),
		PrincipalID: s.PrincipalID,
		Email:       s.Email,
		FullName:    s.FullName,
		Dashboard:   s.Dashboard,
	}
	switch {
	case s.Talent != nil:
		out.Profile = NewTalentResponse(*s.Talent)
	case s.Coach != nil:
		out.Profile = NewCoachResponse(*s.Coach)
	case s.Recruiter != nil:
		out.Profile = NewRecruiterResponse(*s.Recruiter)
	case s.Admin != nil:
		out.Profile = map[string]any{"id": s.Admin.ID, "email": s.Admin.Email, "full_name": s.Admin.FullName}
	}
	return out
}

func NewLoginResponse(s usecase.Session, t usecase.Tokens) LoginResponse {
	return LoginResponse{Session: NewSessionResponse(s), AccessToken: t.AccessToken, RefreshToken: t.RefreshToken}
}
