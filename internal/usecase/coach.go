package usecase

import (
	"context"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/member"
	"fsti-hub/internal/repository"
	"fsti-hub/internal/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CoachUpdate struct {
	FullName        *string
	Specialty       *string
	ExperienceYears *int
	WhatsApp        *string
	Motivation      *string
}

type CoachUsecase interface {
	List(ctx context.Context, q string, limit, offset int) ([]member.Coach, int, error)
	Get(ctx context.Context, id uuid.UUID) (member.Coach, error)
	UpdateSelf(ctx context.Context, actor Actor, in CoachUpdate) (member.Coach, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Coaches struct {
	repo   repository.CoachRepository
	logger *zap.Logger
}

func NewCoachUsecase(repo repository.CoachRepository, logger *zap.Logger) *Coaches {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coaches{repo: repo, logger: logger}
}

func (u *Coaches) List(ctx context.Context, q string, limit, offset int) ([]member.Coach, int, error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, total, err := u.repo.List(ctx, member.CoachFilter{Terms: search.ProcessQuery(q).Terms, Limit: limit, Offset: offset})
	if err != nil {
		u.logger.Error("coach list failed", zap.Error(err))
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

func (u *Coaches) Get(ctx context.Context, id uuid.UUID) (member.Coach, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return member.Coach{}, mapReadError(err)
	}
	return c, nil
}

func (u *Coaches) UpdateSelf(ctx context.Context, actor Actor, in CoachUpdate) (member.Coach, error) {
	if !actor.Is(account.RoleCoach) {
		return member.Coach{}, ErrForbidden
	}
	c, err := u.repo.GetByID(ctx, actor.ID)
	if err != nil {
		return member.Coach{}, mapReadError(err)
	}

	setString(&c.FullName, in.FullName)
	setString(&c.Specialty, in.Specialty)
	setString(&c.WhatsApp, in.WhatsApp)
	setString(&c.Motivation, in.Motivation)
	if in.ExperienceYears != nil {
		c.ExperienceYears = *in.ExperienceYears
	}
	if !required(c.FullName, c.Specialty, c.WhatsApp) || c.ExperienceYears < 0 {
		return member.Coach{}, ErrInvalidInput
	}

	updated, err := u.repo.UpdateProfile(ctx, c)
	if err != nil {
		return member.Coach{}, mapReadError(err)
	}
	return updated, nil
}

func (u *Coaches) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return mapReadError(err)
	}
	return nil
}
