package usecase

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/job"
	"fsti-hub/internal/domain/member"

	"github.com/google/uuid"
)

type jobFixture struct {
	jobs         *fakeJobs
	applications *fakeApplications
	talents      *fakeTalents
	recruiters   *fakeRecruiters
	files        *memFiles
	cache        *memCache
	events       *recordingEvents
	uc           *Jobs
}

func newJobFixture() *jobFixture {
	f := &jobFixture{
		jobs:         &fakeJobs{},
		applications: &fakeApplications{},
		talents:      &fakeTalents{},
		recruiters:   &fakeRecruiters{byID: map[uuid.UUID]member.Recruiter{}},
		files:        &memFiles{},
		cache:        newMemCache(),
		events:       &recordingEvents{},
	}
	f.uc = NewJobUsecase(f.jobs, f.applications, f.talents, f.recruiters, f.files, f.cache, f.events, nil)
	return f
}

func (f *jobFixture) recruiter(status member.RecruiterStatus) Actor {
	id := uuid.New()
	f.recruiters.byID[id] = member.Recruiter{ID: id, Status: status, CompanyName: "Acme"}
	return Actor{ID: id, Role: account.RoleRecruiter}
}

func TestJobs_List_UsesCache(t *testing.T) {
	f := newJobFixture()
	f.jobs.items = []job.Listing{{Job: job.Job{ID: uuid.New(), Title: "Comptable", Status: job.StatusOpen}}}
	f.jobs.total = 1

	for i := 0; i < 2; i++ {
		items, total, err := f.uc.List(context.Background(), nil, JobQuery{Q: "comptable"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if total != 1 || len(items) != 1 {
			t.Fatalf("unexpected page: %d items, total %d", len(items), total)
		}
	}
	if f.jobs.listed != 1 {
		t.Fatalf("expected one repository read, got %d", f.jobs.listed)
	}
	if f.jobs.lastList.Status != job.StatusOpen || f.jobs.lastList.Limit != defaultPageLimit {
		t.Fatalf("unexpected filter: %+v", f.jobs.lastList)
	}
	if len(f.jobs.lastList.Terms) < 2 {
		t.Fatalf("expected synonym variants, got %v", f.jobs.lastList.Terms)
	}
}

func TestJobs_List_InvalidInput(t *testing.T) {
	f := newJobFixture()
	if _, _, err := f.uc.List(context.Background(), nil, JobQuery{Limit: 51}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for limit, got %v", err)
	}
	if _, _, err := f.uc.List(context.Background(), nil, JobQuery{Status: "archived"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for status, got %v", err)
	}
}

func TestJobs_List_PersonalizedForTalent(t *testing.T) {
	f := newJobFixture()
	appliedID, otherID := uuid.New(), uuid.New()
	f.jobs.items = []job.Listing{
		{Job: job.Job{ID: appliedID, Title: "Go developer", Category: "Tech", Status: job.StatusOpen}},
		{Job: job.Job{ID: otherID, Title: "Chef", Category: "Hospitality", Status: job.StatusOpen}},
	}
	f.jobs.total = 2
	tal := f.talents.put(member.Talent{Category: "Tech", Skills: []string{"Go"}})
	f.applications.applied = map[uuid.UUID]struct{}{appliedID: {}}

	viewer := &Actor{ID: tal.ID, Role: account.RoleTalent}
	items, _, err := f.uc.List(context.Background(), viewer, JobQuery{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	byID := map[uuid.UUID]JobItem{}
	for _, it := range items {
		byID[it.ID] = it
	}
	if !byID[appliedID].Applied || byID[otherID].Applied {
		t.Fatalf("applied flags wrong: %+v", items)
	}
	if byID[appliedID].Fit == nil || byID[otherID].Fit == nil {
		t.Fatalf("expected fit on every item")
	}
	if byID[appliedID].Fit.Score <= byID[otherID].Fit.Score {
		t.Fatalf("expected better fit for matching category, got %d vs %d", byID[appliedID].Fit.Score, byID[otherID].Fit.Score)
	}

	anon, _, err := f.uc.List(context.Background(), nil, JobQuery{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, it := range anon {
		if it.Applied || it.Fit != nil {
			t.Fatalf("anonymous listing must not be personalized: %+v", it)
		}
	}
}

func TestJobs_Create(t *testing.T) {
	f := newJobFixture()
	pending := f.recruiter(member.RecruiterPending)
	verified := f.recruiter(member.RecruiterVerified)
	in := JobInput{Title: " Comptable ", Category: "Finance", Location: "Gitega", SalaryRange: "500k-800k BIF", TDR: upload("tdr.pdf", "pdf")}

	if _, err := f.uc.Create(context.Background(), pending, in); !errors.Is(err, ErrRecruiterPending) {
		t.Fatalf("expected ErrRecruiterPending, got %v", err)
	}
	if _, err := f.uc.Create(context.Background(), Actor{ID: uuid.New(), Role: account.RoleTalent}, in); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	f.cache.data[jobsCachePrefix+"stale"] = []byte(`{}`)
	in.TDR = upload("tdr.pdf", "pdf")
	created, err := f.uc.Create(context.Background(), verified, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Status != job.StatusOpen || created.Title != "Comptable" || created.RecruiterID != verified.ID {
		t.Fatalf("unexpected job: %+v", created)
	}
	if !strings.Contains(created.TDRURL, "job-tdrs/"+verified.ID.String()+"/") {
		t.Fatalf("tdr stored in wrong folder: %q", created.TDRURL)
	}
	if _, ok := f.cache.data[jobsCachePrefix+"stale"]; ok {
		t.Fatalf("list cache not invalidated")
	}
	if len(f.events.posted) != 1 {
		t.Fatalf("expected job_posted event")
	}
}

func TestJobs_OwnershipAndToggle(t *testing.T) {
	f := newJobFixture()
	owner := f.recruiter(member.RecruiterVerified)
	other := f.recruiter(member.RecruiterVerified)
	l := f.jobs.put(job.Listing{Job: job.Job{RecruiterID: owner.ID, Title: "Chef", Category: "Hospitality", Location: "Bujumbura", Status: job.StatusOpen}})

	if _, err := f.uc.ToggleStatus(context.Background(), other, l.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	toggled, err := f.uc.ToggleStatus(context.Background(), owner, l.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if toggled.Status != job.StatusClosed {
		t.Fatalf("expected closed, got %s", toggled.Status)
	}

	admin := Actor{ID: uuid.New(), Role: account.RoleAdmin}
	toggled, err = f.uc.ToggleStatus(context.Background(), admin, l.ID)
	if err != nil || toggled.Status != job.StatusOpen {
		t.Fatalf("admin toggle failed: %v %s", err, toggled.Status)
	}

	if _, err := f.uc.Update(context.Background(), owner, uuid.New(), JobInput{Title: "x", Category: "y", Location: "z"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(f.cache.deleted) != 2 {
		t.Fatalf("expected invalidation per write, got %v", f.cache.deleted)
	}
}

func TestJobsListCacheKey_NormalizesQuery(t *testing.T) {
	a := JobsListCacheKey(JobQuery{Q: "Comptable  Gitéga", Status: "open", Limit: 20})
	b := JobsListCacheKey(JobQuery{Q: "comptable gitega", Status: "open", Limit: 20})
	c := JobsListCacheKey(JobQuery{Q: "comptable gitega", Status: "open", Limit: 20, Offset: 20})
	if a != b {
		t.Fatalf("equivalent queries must share a key")
	}
	if a == c || !strings.HasPrefix(a, jobsCachePrefix) {
		t.Fatalf("unexpected keys %q %q", a, c)
	}
}

func TestJobs_List_KeepsRepositoryOrderAndSendsRawTerm(t *testing.T) {
	f := newJobFixture()
	newest := job.Listing{Job: job.Job{ID: uuid.New(), Title: "Stagiaire communication", Status: job.StatusOpen}}
	older := job.Listing{Job: job.Job{ID: uuid.New(), Title: "Développeur Node.js", Status: job.StatusOpen}}
	f.jobs.items = []job.Listing{newest, older}
	f.jobs.total = 2

	items, _, err := f.uc.List(context.Background(), nil, JobQuery{Q: "Node.js"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 2 || items[0].ID != newest.ID || items[1].ID != older.ID {
		t.Fatalf("listing must stay newest first, got %+v", items)
	}

	terms := f.jobs.lastList.Terms
	if !slices.Contains(terms, "node.js") || !slices.Contains(terms, "nodejs") {
		t.Fatalf("expected raw and normalized terms, got %v", terms)
	}
}
