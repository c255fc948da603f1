package usecase

import (
	"context"
	"strings"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/member"
	"fsti-hub/internal/repository"
	"fsti-hub/internal/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecruiterUpdate struct {
	FullName    *string
	CompanyName *string
	WhatsApp    *string
	Motivation  *string
}

type RecruiterUsecase interface {
	List(ctx context.Context, q, status string, limit, offset int) ([]member.Recruiter, int, error)
	Get(ctx context.Context, id uuid.UUID) (member.Recruiter, error)
	UpdateSelf(ctx context.Context, actor Actor, in RecruiterUpdate) (member.Recruiter, error)
	Verify(ctx context.Context, id uuid.UUID) (member.Recruiter, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Recruiters struct {
	repo   repository.RecruiterRepository
	cache  Cache
	logger *zap.Logger
}

// NewRecruiterUsecase builds the recruiter usecase. Cached job listings embed
// company names, so profile changes and deletions drop them.
func NewRecruiterUsecase(repo repository.RecruiterRepository, cache Cache, logger *zap.Logger) *Recruiters {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recruiters{repo: repo, cache: cache, logger: logger}
}

func (u *Recruiters) List(ctx context.Context, q, status string, limit, offset int) ([]member.Recruiter, int, error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	st := member.RecruiterStatus(strings.TrimSpace(status))
	if st != "" && st != member.RecruiterPending && st != member.RecruiterVerified {
		return nil, 0, ErrInvalidInput
	}

	items, total, err := u.repo.List(ctx, member.RecruiterFilter{Terms: search.ProcessQuery(q).Terms, Status: st, Limit: limit, Offset: offset})
	if err != nil {
		u.logger.Error("recruiter list failed", zap.Error(err))
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

func (u *Recruiters) Get(ctx context.Context, id uuid.UUID) (member.Recruiter, error) {
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return member.Recruiter{}, mapReadError(err)
	}
	return r, nil
}

func (u *Recruiters) UpdateSelf(ctx context.Context, actor Actor, in RecruiterUpdate) (member.Recruiter, error) {
	if !actor.Is(account.RoleRecruiter) {
		return member.Recruiter{}, ErrForbidden
	}
	r, err := u.repo.GetByID(ctx, actor.ID)
	if err != nil {
		return member.Recruiter{}, mapReadError(err)
	}

	setString(&r.FullName, in.FullName)
	setString(&r.CompanyName, in.CompanyName)
	setString(&r.WhatsApp, in.WhatsApp)
	setString(&r.Motivation, in.Motivation)
	if !required(r.FullName, r.CompanyName, r.WhatsApp) {
		return member.Recruiter{}, ErrInvalidInput
	}

	updated, err := u.repo.UpdateProfile(ctx, r)
	if err != nil {
		return member.Recruiter{}, mapReadError(err)
	}
	invalidateJobLists(ctx, u.cache, u.logger)
	return updated, nil
}

// Verify moves a recruiter from pending to verified. Verifying twice is a no-op.
func (u *Recruiters) Verify(ctx context.Context, id uuid.UUID) (member.Recruiter, error) {
	r, err := u.repo.SetStatus(ctx, id, member.RecruiterVerified)
	if err != nil {
		return member.Recruiter{}, mapReadError(err)
	}
	u.logger.Info("recruiter verified", zap.String("recruiter_id", id.String()))
	return r, nil
}

func (u *Recruiters) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return mapReadError(err)
	}
	invalidateJobLists(ctx, u.cache, u.logger)
	return nil
}
