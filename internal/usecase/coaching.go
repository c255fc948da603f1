package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/coaching"
	"fsti-hub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AppointmentInput struct {
	// CounterpartID is the coach when a talent books, the talent when a coach books.
	CounterpartID uuid.UUID
	ScheduledAt   time.Time
	Note          string
}

type CoachingUsecase interface {
	Assign(ctx context.Context, coachID, talentID uuid.UUID) (coaching.AssignmentDetail, error)
	ListAssignments(ctx context.Context, limit, offset int) ([]coaching.AssignmentDetail, int, error)
	Unassign(ctx context.Context, id uuid.UUID) error
	MyCoach(ctx context.Context, actor Actor) (coaching.AssignmentDetail, error)
	MyTalents(ctx context.Context, actor Actor) ([]coaching.AssignmentDetail, error)

	RequestAppointment(ctx context.Context, actor Actor, in AppointmentInput) (coaching.Appointment, error)
	ConfirmAppointment(ctx context.Context, actor Actor, id uuid.UUID, meetingLink string) (coaching.Appointment, error)
	ListAppointments(ctx context.Context, actor Actor, upcomingOnly bool) ([]coaching.AppointmentDetail, error)
	CancelAppointment(ctx context.Context, actor Actor, id uuid.UUID) error
}

type Coaching struct {
	assignments  repository.AssignmentRepository
	appointments repository.AppointmentRepository
	events       EventPublisher
	logger       *zap.Logger
	now          func() time.Time
}

func NewCoachingUsecase(assignments repository.AssignmentRepository, appointments repository.AppointmentRepository, events EventPublisher, logger *zap.Logger) *Coaching {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coaching{assignments: assignments, appointments: appointments, events: eventsOrNoop(events), logger: logger, now: time.Now}
}

func (u *Coaching) Assign(ctx context.Context, coachID, talentID uuid.UUID) (coaching.AssignmentDetail, error) {
	if coachID == uuid.Nil || talentID == uuid.Nil {
		return coaching.AssignmentDetail{}, ErrInvalidInput
	}
	exists, err := u.assignments.Exists(ctx, coachID, talentID)
	if err != nil {
		return coaching.AssignmentDetail{}, ErrInternal
	}
	if exists {
		return coaching.AssignmentDetail{}, ErrAlreadyAssigned
	}

	d, err := u.assignments.Create(ctx, coaching.Assignment{CoachID: coachID, TalentID: talentID})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return coaching.AssignmentDetail{}, ErrAlreadyAssigned
		case errors.Is(err, repository.ErrReferenceMissing):
			return coaching.AssignmentDetail{}, ErrNotFound
		default:
			u.logger.Error("assignment create failed", zap.Error(err))
			return coaching.AssignmentDetail{}, ErrInternal
		}
	}
	return d, nil
}

func (u *Coaching) ListAssignments(ctx context.Context, limit, offset int) ([]coaching.AssignmentDetail, int, error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, total, err := u.assignments.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

func (u *Coaching) Unassign(ctx context.Context, id uuid.UUID) error {
	if err := u.assignments.Delete(ctx, id); err != nil {
		return mapReadError(err)
	}
	return nil
}

// MyCoach returns the talent's most recent assignment.
func (u *Coaching) MyCoach(ctx context.Context, actor Actor) (coaching.AssignmentDetail, error) {
	if !actor.Is(account.RoleTalent) {
		return coaching.AssignmentDetail{}, ErrForbidden
	}
	d, err := u.assignments.LatestForTalent(ctx, actor.ID)
	if err != nil {
		return coaching.AssignmentDetail{}, mapReadError(err)
	}
	return d, nil
}

func (u *Coaching) MyTalents(ctx context.Context, actor Actor) ([]coaching.AssignmentDetail, error) {
	if !actor.Is(account.RoleCoach) {
		return nil, ErrForbidden
	}
	items, err := u.assignments.ListForCoach(ctx, actor.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// RequestAppointment books a pending appointment between an assigned coach and
// talent. Either side may book.
func (u *Coaching) RequestAppointment(ctx context.Context, actor Actor, in AppointmentInput) (coaching.Appointment, error) {
	var coachID, talentID uuid.UUID
	switch {
	case actor.Is(account.RoleTalent):
		coachID, talentID = in.CounterpartID, actor.ID
	case actor.Is(account.RoleCoach):
		coachID, talentID = actor.ID, in.CounterpartID
	default:
		return coaching.Appointment{}, ErrForbidden
	}
	if in.CounterpartID == uuid.Nil {
		return coaching.Appointment{}, ErrInvalidInput
	}
	if err := coaching.ValidateSchedule(u.now(), in.ScheduledAt); err != nil {
		return coaching.Appointment{}, errors.Join(ErrInvalidInput, err)
	}

	ok, err := u.assignments.Exists(ctx, coachID, talentID)
	if err != nil {
		return coaching.Appointment{}, ErrInternal
	}
	if !ok {
		return coaching.Appointment{}, ErrNotAssigned
	}

	a, err := u.appointments.Create(ctx, coaching.Appointment{
		CoachID:     coachID,
		TalentID:    talentID,
		ScheduledAt: in.ScheduledAt.UTC(),
		Status:      coaching.AppointmentPending,
		Note:        strings.TrimSpace(in.Note),
		RequestedBy: string(actor.Role),
	})
	if err != nil {
		return coaching.Appointment{}, mapReadError(err)
	}
	return a, nil
}

func (u *Coaching) ConfirmAppointment(ctx context.Context, actor Actor, id uuid.UUID, meetingLink string) (coaching.Appointment, error) {
	if !actor.Is(account.RoleCoach) {
		return coaching.Appointment{}, ErrForbidden
	}
	meetingLink = strings.TrimSpace(meetingLink)
	if err := coaching.ValidateMeetingLink(meetingLink); err != nil {
		return coaching.Appointment{}, errors.Join(ErrInvalidInput, err)
	}

	a, err := u.appointments.GetByID(ctx, id)
	if err != nil {
		return coaching.Appointment{}, mapReadError(err)
	}
	if a.CoachID != actor.ID {
		return coaching.Appointment{}, ErrForbidden
	}
	if err := a.Confirm(meetingLink); err != nil {
		return coaching.Appointment{}, ErrInvalidTransition
	}

	confirmed, err := u.appointments.Confirm(ctx, id, meetingLink)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return coaching.Appointment{}, ErrInvalidTransition
		}
		return coaching.Appointment{}, ErrInternal
	}
	u.events.AppointmentConfirmed(confirmed)
	return confirmed, nil
}

func (u *Coaching) ListAppointments(ctx context.Context, actor Actor, upcomingOnly bool) ([]coaching.AppointmentDetail, error) {
	var from time.Time
	if upcomingOnly {
		from = u.now()
	}

	var (
		items []coaching.AppointmentDetail
		err   error
	)
	switch {
	case actor.Is(account.RoleCoach):
		items, err = u.appointments.ListForCoach(ctx, actor.ID, from)
	case actor.Is(account.RoleTalent):
		items, err = u.appointments.ListForTalent(ctx, actor.ID, from)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, ErrInternal
	}
	coaching.SortUpcomingFirst(items, u.now())
	return items, nil
}

// CancelAppointment deletes a pending appointment the actor takes part in.
func (u *Coaching) CancelAppointment(ctx context.Context, actor Actor, id uuid.UUID) error {
	a, err := u.appointments.GetByID(ctx, id)
	if err != nil {
		return mapReadError(err)
	}
	if !(actor.Is(account.RoleCoach) && a.CoachID == actor.ID) && !(actor.Is(account.RoleTalent) && a.TalentID == actor.ID) {
		return ErrForbidden
	}
	if a.Status != coaching.AppointmentPending {
		return ErrInvalidTransition
	}
	if err := u.appointments.DeletePending(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidTransition
		}
		return ErrInternal
	}
	return nil
}
