package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/job"

	"github.com/google/uuid"
)

func TestApplications_Apply(t *testing.T) {
	jobs := &fakeJobs{}
	apps := &fakeApplications{}
	events := &recordingEvents{}
	uc := NewApplicationUsecase(apps, jobs, events, nil)

	recruiterID := uuid.New()
	open := jobs.put(job.Listing{Job: job.Job{RecruiterID: recruiterID, Status: job.StatusOpen}})
	closed := jobs.put(job.Listing{Job: job.Job{RecruiterID: recruiterID, Status: job.StatusClosed}})
	talent := Actor{ID: uuid.New(), Role: account.RoleTalent}

	a, err := uc.Apply(context.Background(), talent, open.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != job.ApplicationPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}
	if len(events.created) != 1 || events.created[0] != recruiterID {
		t.Fatalf("expected application_created for the recruiter, got %v", events.created)
	}

	if _, err := uc.Apply(context.Background(), talent, open.ID); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	if _, err := uc.Apply(context.Background(), talent, closed.ID); !errors.Is(err, ErrJobClosed) {
		t.Fatalf("expected ErrJobClosed, got %v", err)
	}
	if _, err := uc.Apply(context.Background(), talent, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	coach := Actor{ID: uuid.New(), Role: account.RoleCoach}
	if _, err := uc.Apply(context.Background(), coach, open.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func newDecisionFixture(status job.ApplicationStatus) (*Applications, *fakeApplications, *recordingEvents, Actor, uuid.UUID) {
	apps := &fakeApplications{details: map[uuid.UUID]job.ApplicationDetail{}}
	events := &recordingEvents{}
	uc := NewApplicationUsecase(apps, &fakeJobs{}, events, nil)

	recruiter := Actor{ID: uuid.New(), Role: account.RoleRecruiter}
	id := uuid.New()
	apps.details[id] = job.ApplicationDetail{
		Application:    job.Application{ID: id, Status: status},
		RecruiterID:    recruiter.ID,
		JobTitle:       "Comptable",
		CompanyName:    "Acme",
		TalentName:     "Aline",
		TalentWhatsApp: "+257 79-000-000",
	}
	return uc, apps, events, recruiter, id
}

func TestApplications_Decide_Accept(t *testing.T) {
	uc, _, events, recruiter, id := newDecisionFixture(job.ApplicationPending)

	d, err := uc.Decide(context.Background(), recruiter, id, "Accepted")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Application.Status != job.ApplicationAccepted {
		t.Fatalf("expected accepted, got %s", d.Application.Status)
	}
	if !strings.HasPrefix(d.ContactLink, "https://wa.me/25779000000?text=") {
		t.Fatalf("unexpected link %q", d.ContactLink)
	}
	if !strings.Contains(d.ContactLink, "Acme") {
		t.Fatalf("acceptance message must name the company: %q", d.ContactLink)
	}
	if len(events.decided) != 1 {
		t.Fatalf("expected application_decided event")
	}
}

func TestApplications_Decide_RejectHasNoLink(t *testing.T) {
	uc, _, _, recruiter, id := newDecisionFixture(job.ApplicationPending)
	d, err := uc.Decide(context.Background(), recruiter, id, "rejected")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.ContactLink != "" {
		t.Fatalf("rejection must not carry a contact link")
	}
}

func TestApplications_Decide_Errors(t *testing.T) {
	uc, _, _, recruiter, id := newDecisionFixture(job.ApplicationAccepted)

	if _, err := uc.Decide(context.Background(), recruiter, id, "rejected"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := uc.Decide(context.Background(), recruiter, id, "pending"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	stranger := Actor{ID: uuid.New(), Role: account.RoleRecruiter}
	if _, err := uc.Decide(context.Background(), stranger, id, "accepted"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApplications_Decide_ConcurrentDecisionsOneWins(t *testing.T) {
	uc, _, _, recruiter, id := newDecisionFixture(job.ApplicationPending)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, lost int
	)
	for _, status := range []string{"accepted", "rejected", "accepted", "rejected"} {
		wg.Add(1)
		go func(status string) {
			defer wg.Done()
			_, err := uc.Decide(context.Background(), recruiter, id, status)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrInvalidTransition):
				lost++
			default:
				t.Errorf("unexpected err: %v", err)
			}
		}(status)
	}
	wg.Wait()
	if ok != 1 || lost != 3 {
		t.Fatalf("expected exactly one decision to win, got ok=%d lost=%d", ok, lost)
	}
}

func TestApplications_ListForRecruiter_ForeignJob(t *testing.T) {
	jobs := &fakeJobs{}
	uc := NewApplicationUsecase(&fakeApplications{}, jobs, nil, nil)
	l := jobs.put(job.Listing{Job: job.Job{RecruiterID: uuid.New()}})
	me := Actor{ID: uuid.New(), Role: account.RoleRecruiter}

	if _, _, err := uc.ListForRecruiter(context.Background(), me, &l.ID, 0, 0); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
