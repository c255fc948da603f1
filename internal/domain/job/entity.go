package job

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

// Toggle flips open and closed.
func (s Status) Toggle() Status {
	if s == StatusOpen {
		return StatusClosed
	}
	return StatusOpen
}

type Job struct {
	ID          uuid.UUID
	RecruiterID uuid.UUID
	Title       string
	Category    string
	Description string
	SalaryRange string
	Location    string
	Status      Status
	TDRURL      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Listing is a job joined with the posting recruiter's company.
type Listing struct {
	Job
	CompanyName string
}

type Filter struct {
	Terms       []string
	Category    string
	Status      Status
	RecruiterID *uuid.UUID
	Limit       int
	Offset      int
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

var ErrInvalidTransition = errors.New("invalid application status transition")

// Decide validates a recruiter decision. Only pending applications can be decided,
// and only to accepted or rejected.
func (s ApplicationStatus) Decide(next ApplicationStatus) (ApplicationStatus, error) {
	if s != ApplicationPending {
		return s, ErrInvalidTransition
	}
	if next != ApplicationAccepted && next != ApplicationRejected {
		return s, ErrInvalidTransition
	}
	return next, nil
}

type Application struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	TalentID  uuid.UUID
	Status    ApplicationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplicationDetail is an application as a recruiter reviews it.
type ApplicationDetail struct {
	Application
	JobTitle        string
	JobLocation     string
	JobCategory     string
	RecruiterID     uuid.UUID
	CompanyName     string
	TalentName      string
	TalentEmail     string
	TalentWhatsApp  string
	TalentCategory  string
	TalentRole      string
	TalentSkills    []string
	TalentCVURL     string
	TalentImageURL  string
	TalentCertified bool
}

type ApplicationFilter struct {
	RecruiterID uuid.UUID
	JobID       *uuid.UUID
	Limit       int
	Offset      int
}
