package member

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type TalentStatus string

const (
	TalentAvailable TalentStatus = "available"
	TalentPlaced    TalentStatus = "placed"
	TalentInactive  TalentStatus = "inactive"
)

func (s TalentStatus) Valid() bool {
	switch s {
	case TalentAvailable, TalentPlaced, TalentInactive:
		return true
	}
	return false
}

type RecruiterStatus string

const (
	RecruiterPending  RecruiterStatus = "pending"
	RecruiterVerified RecruiterStatus = "verified"
)

type Talent struct {
	ID              uuid.UUID
	FullName        string
	Email           string
	WhatsApp        string
	BirthDate       *time.Time
	Province        string
	Category        string
	EducationLevel  string
	Bio             string
	RoleTitle       string
	Experience      string
	Skills          []string
	IsCertified     bool
	ProfileImageURL string
	CVURL           string
	AccessKeyHash   string
	Status          TalentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Coach struct {
	ID              uuid.UUID
	FullName        string
	Email           string
	Specialty       string
	ExperienceYears int
	WhatsApp        string
	Motivation      string
	AccessKeyHash   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Recruiter struct {
	ID            uuid.UUID
	FullName      string
	Email         string
	CompanyName   string
	WhatsApp      string
	Motivation    string
	Status        RecruiterStatus
	AccessKeyHash string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type TalentFilter struct {
	// Terms are alternative search phrases; a talent matches when any of them matches.
	Terms     []string
	Category  string
	Province  string
	Certified *bool
	Status    TalentStatus
	Limit     int
	Offset    int
}

type CoachFilter struct {
	Terms  []string
	Limit  int
	Offset int
}

type RecruiterFilter struct {
	Terms  []string
	Status RecruiterStatus
	Limit  int
	Offset int
}

// ParseSkills splits comma separated skills, trimming entries and dropping empty ones.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		k := strings.ToLower(p)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}
