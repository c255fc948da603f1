package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/coaching"
	"fsti-hub/internal/domain/job"
	"fsti-hub/internal/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestDashboards_Admin(t *testing.T) {
	stats := &fakeStats{
		talents:    12,
		coaches:    3,
		recruiters: 4,
		open:       7,
		byStatus:   map[string]int{"pending": 5, "accepted": 2},
		categories: []repository.CategoryCount{{Category: "Tech", Count: 8}, {Category: "Finance", Count: 4}},
	}
	uc := NewDashboardUsecase(stats, &fakeJobs{}, &fakeApplications{}, &fakeAssignments{}, &fakeAppointments{}, nil)

	got, err := uc.Admin(context.Background(), Actor{ID: uuid.New(), Role: account.RoleAdmin})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := AdminDashboard{
		Talents:            12,
		Coaches:            3,
		Recruiters:         4,
		OpenJobs:           7,
		Applications:       map[string]int{"pending": 5, "accepted": 2},
		TalentsPerCategory: stats.categories,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dashboard mismatch (-want +got):\n%s", diff)
	}
	if stats.openFor != nil {
		t.Fatalf("admin counts must not be scoped to a recruiter")
	}

	if _, err := uc.Admin(context.Background(), Actor{ID: uuid.New(), Role: account.RoleCoach}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	stats.err = errBoom
	if _, err := uc.Admin(context.Background(), Actor{ID: uuid.New(), Role: account.RoleAdmin}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestDashboards_Recruiter(t *testing.T) {
	me := Actor{ID: uuid.New(), Role: account.RoleRecruiter}
	stats := &fakeStats{open: 2, byStatus: map[string]int{"pending": 1}}
	jobs := &fakeJobs{items: []job.Listing{{Job: job.Job{ID: uuid.New(), RecruiterID: me.ID}}}, total: 1}
	apps := &fakeApplications{recent: []job.ApplicationDetail{{TalentName: "Aline"}, {TalentName: "Eric"}}}
	uc := NewDashboardUsecase(stats, jobs, apps, &fakeAssignments{}, &fakeAppointments{}, nil)

	got, err := uc.Recruiter(context.Background(), me)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.OpenJobs != 2 || got.TotalApplications != 2 || len(got.Jobs) != 1 || len(got.Recent) != 2 {
		t.Fatalf("unexpected dashboard: %+v", got)
	}
	if jobs.lastList.RecruiterID == nil || *jobs.lastList.RecruiterID != me.ID {
		t.Fatalf("jobs must be scoped to the recruiter: %+v", jobs.lastList)
	}
	if stats.openFor == nil || *stats.openFor != me.ID {
		t.Fatalf("open count must be scoped to the recruiter")
	}
}

func TestDashboards_Coach(t *testing.T) {
	me := Actor{ID: uuid.New(), Role: account.RoleCoach}
	assignments := &fakeAssignments{list: []coaching.AssignmentDetail{{TalentName: "Aline"}}}
	appointments := &fakeAppointments{upcoming: []coaching.AppointmentDetail{{TalentName: "Aline"}}}
	uc := NewDashboardUsecase(&fakeStats{}, &fakeJobs{}, &fakeApplications{}, assignments, appointments, nil)
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	got, err := uc.Coach(context.Background(), me)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.Talents) != 1 || len(got.Appointments) != 1 {
		t.Fatalf("unexpected dashboard: %+v", got)
	}
	if !appointments.lastFrom.Equal(now) {
		t.Fatalf("appointments must start from now, got %v", appointments.lastFrom)
	}

	if _, err := uc.Coach(context.Background(), Actor{ID: uuid.New(), Role: account.RoleTalent}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
