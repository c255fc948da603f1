package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/job"
	"fsti-hub/internal/pkg/whatsapp"
	"fsti-hub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Decision is the outcome of a recruiter decision. ContactLink is set on
// acceptance when the talent has a WhatsApp number.
type Decision struct {
	Application job.ApplicationDetail
	ContactLink string
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, actor Actor, jobID uuid.UUID) (job.Application, error)
	ListMine(ctx context.Context, actor Actor) ([]job.Application, error)
	ListForRecruiter(ctx context.Context, actor Actor, jobID *uuid.UUID, limit, offset int) ([]job.ApplicationDetail, int, error)
	Decide(ctx context.Context, actor Actor, id uuid.UUID, status string) (Decision, error)
}

type Applications struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	events       EventPublisher
	logger       *zap.Logger
}

func NewApplicationUsecase(applications repository.ApplicationRepository, jobs repository.JobRepository, events EventPublisher, logger *zap.Logger) *Applications {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applications{applications: applications, jobs: jobs, events: eventsOrNoop(events), logger: logger}
}

func (u *Applications) Apply(ctx context.Context, actor Actor, jobID uuid.UUID) (job.Application, error) {
	if !actor.Is(account.RoleTalent) {
		return job.Application{}, ErrForbidden
	}
	l, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return job.Application{}, mapReadError(err)
	}
	if l.Status != job.StatusOpen {
		return job.Application{}, ErrJobClosed
	}

	a, err := u.applications.Create(ctx, job.Application{JobID: jobID, TalentID: actor.ID, Status: job.ApplicationPending})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return job.Application{}, ErrAlreadyApplied
		case errors.Is(err, repository.ErrReferenceMissing):
			return job.Application{}, ErrNotFound
		default:
			u.logger.Error("application create failed", zap.Error(err))
			return job.Application{}, ErrInternal
		}
	}

	u.events.ApplicationCreated(l.RecruiterID, a)
	return a, nil
}

func (u *Applications) ListMine(ctx context.Context, actor Actor) ([]job.Application, error) {
	if !actor.Is(account.RoleTalent) {
		return nil, ErrForbidden
	}
	items, err := u.applications.ListByTalent(ctx, actor.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Applications) ListForRecruiter(ctx context.Context, actor Actor, jobID *uuid.UUID, limit, offset int) ([]job.ApplicationDetail, int, error) {
	if !actor.Is(account.RoleRecruiter) {
		return nil, 0, ErrForbidden
	}
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if jobID != nil {
		l, err := u.jobs.GetByID(ctx, *jobID)
		if err != nil {
			return nil, 0, mapReadError(err)
		}
		if l.RecruiterID != actor.ID {
			return nil, 0, ErrForbidden
		}
	}

	items, total, err := u.applications.ListForRecruiter(ctx, job.ApplicationFilter{
		RecruiterID: actor.ID,
		JobID:       jobID,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

// Decide accepts or rejects a pending application on one of the recruiter's jobs.
func (u *Applications) Decide(ctx context.Context, actor Actor, id uuid.UUID, status string) (Decision, error) {
	if !actor.Is(account.RoleRecruiter) {
		return Decision{}, ErrForbidden
	}
	next := job.ApplicationStatus(strings.ToLower(strings.TrimSpace(status)))
	if next != job.ApplicationAccepted && next != job.ApplicationRejected {
		return Decision{}, ErrInvalidInput
	}

	d, err := u.applications.GetDetail(ctx, id)
	if err != nil {
		return Decision{}, mapReadError(err)
	}
	if d.RecruiterID != actor.ID {
		return Decision{}, ErrForbidden
	}
	if _, err := d.Status.Decide(next); err != nil {
		return Decision{}, ErrInvalidTransition
	}

	updated, err := u.applications.Decide(ctx, id, job.ApplicationPending, next)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// decided concurrently
			return Decision{}, ErrInvalidTransition
		}
		return Decision{}, ErrInternal
	}
	d.Application = updated

	out := Decision{Application: d}
	if next == job.ApplicationAccepted {
		out.ContactLink = whatsapp.Link(d.TalentWhatsApp, acceptanceMessage(d))
	}
	u.events.ApplicationDecided(updated)
	u.logger.Info("application decided", zap.String("application_id", id.String()), zap.String("status", string(next)))
	return out, nil
}

func acceptanceMessage(d job.ApplicationDetail) string {
	if d.CompanyName == "" {
		return fmt.Sprintf("Bonjour %s, nous avons accepté votre candidature pour le poste de %s.", d.TalentName, d.JobTitle)
	}
	return fmt.Sprintf("Bonjour %s, nous avons accepté votre candidature pour le poste de %s chez %s.", d.TalentName, d.JobTitle, d.CompanyName)
}
