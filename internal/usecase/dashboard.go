package usecase

import (
	"context"
	"time"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/coaching"
	"fsti-hub/internal/domain/job"
	"fsti-hub/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	recentRegistrationsLimit = 10
	dashboardListLimit       = 50
)

type AdminDashboard struct {
	Talents             int
	Coaches             int
	Recruiters          int
	OpenJobs            int
	Applications        map[string]int
	TalentsPerCategory  []repository.CategoryCount
	RecentRegistrations []repository.Registration
}

type RecruiterDashboard struct {
	Jobs              []job.Listing
	OpenJobs          int
	TotalApplications int
	Applications      map[string]int
	Recent            []job.ApplicationDetail
}

type CoachDashboard struct {
	Talents      []coaching.AssignmentDetail
	Appointments []coaching.AppointmentDetail
}

type DashboardUsecase interface {
	Admin(ctx context.Context, actor Actor) (AdminDashboard, error)
	Recruiter(ctx context.Context, actor Actor) (RecruiterDashboard, error)
	Coach(ctx context.Context, actor Actor) (CoachDashboard, error)
}

type Dashboards struct {
	stats        repository.StatsRepository
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	assignments  repository.AssignmentRepository
	appointments repository.AppointmentRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewDashboardUsecase(stats repository.StatsRepository, jobs repository.JobRepository, applications repository.ApplicationRepository, assignments repository.AssignmentRepository, appointments repository.AppointmentRepository, logger *zap.Logger) *Dashboards {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboards{
		stats:        stats,
		jobs:         jobs,
		applications: applications,
		assignments:  assignments,
		appointments: appointments,
		logger:       logger,
		now:          time.Now,
	}
}

// Admin gathers the platform counters concurrently.
func (u *Dashboards) Admin(ctx context.Context, actor Actor) (AdminDashboard, error) {
	if !actor.IsAdmin() {
		return AdminDashboard{}, ErrForbidden
	}

	var out AdminDashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Talents, err = u.stats.CountTalents(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Coaches, err = u.stats.CountCoaches(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Recruiters, err = u.stats.CountRecruiters(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.OpenJobs, err = u.stats.CountOpenJobs(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		out.Applications, err = u.stats.CountApplicationsByStatus(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		out.TalentsPerCategory, err = u.stats.TalentsPerCategory(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.RecentRegistrations, err = u.stats.RecentRegistrations(gctx, recentRegistrationsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		u.logger.Error("admin dashboard failed", zap.Error(err))
		return AdminDashboard{}, ErrInternal
	}
	return out, nil
}

func (u *Dashboards) Recruiter(ctx context.Context, actor Actor) (RecruiterDashboard, error) {
	if !actor.Is(account.RoleRecruiter) {
		return RecruiterDashboard{}, ErrForbidden
	}
	id := actor.ID

	var out RecruiterDashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Jobs, _, err = u.jobs.List(gctx, job.Filter{RecruiterID: &id, Limit: dashboardListLimit})
		return err
	})
	g.Go(func() (err error) {
		out.OpenJobs, err = u.stats.CountOpenJobs(gctx, &id)
		return err
	})
	g.Go(func() (err error) {
		out.Applications, err = u.stats.CountApplicationsByStatus(gctx, &id)
		return err
	})
	g.Go(func() (err error) {
		out.Recent, out.TotalApplications, err = u.applications.ListForRecruiter(gctx, job.ApplicationFilter{RecruiterID: id, Limit: dashboardListLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		u.logger.Error("recruiter dashboard failed", zap.Error(err))
		return RecruiterDashboard{}, ErrInternal
	}
	return out, nil
}

func (u *Dashboards) Coach(ctx context.Context, actor Actor) (CoachDashboard, error) {
	if !actor.Is(account.RoleCoach) {
		return CoachDashboard{}, ErrForbidden
	}

	var out CoachDashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Talents, err = u.assignments.ListForCoach(gctx, actor.ID)
		return err
	})
	g.Go(func() (err error) {
		out.Appointments, err = u.appointments.ListForCoach(gctx, actor.ID, u.now())
		return err
	})
	if err := g.Wait(); err != nil {
		u.logger.Error("coach dashboard failed", zap.Error(err))
		return CoachDashboard{}, ErrInternal
	}
	return out, nil
}
