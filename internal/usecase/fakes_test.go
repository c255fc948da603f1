package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/coaching"
	"fsti-hub/internal/domain/job"
	"fsti-hub/internal/domain/member"
	"fsti-hub/internal/domain/news"
	"fsti-hub/internal/infrastructure/assistant"
	"fsti-hub/internal/infrastructure/mailer"
	"fsti-hub/internal/infrastructure/newsimport"
	"fsti-hub/internal/infrastructure/storage"
	"fsti-hub/internal/repository"

	"github.com/google/uuid"
)

// Fakes embed the repository interfaces; calling a method a test did not expect
// panics on the nil embedded value.

type fakeAdmins struct {
	repository.AdminRepository
	byID  map[uuid.UUID]account.Admin
	creds map[string]account.Credential
	err   error
}

func (f *fakeAdmins) GetByID(_ context.Context, id uuid.UUID) (account.Admin, error) {
	a, ok := f.byID[id]
	if !ok {
		return account.Admin{}, repository.ErrNotFound
	}
	return a, nil
}

func (f *fakeAdmins) FindCredentialByEmail(_ context.Context, email string) (account.Credential, error) {
	if f.err != nil {
		return account.Credential{}, f.err
	}
	c, ok := f.creds[email]
	if !ok {
		return account.Credential{}, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeAdmins) Create(_ context.Context, a account.Admin) (account.Admin, error) {
	for _, existing := range f.byID {
		if existing.Email == a.Email {
			return account.Admin{}, repository.ErrDuplicate
		}
	}
	a.ID = uuid.New()
	if f.byID == nil {
		f.byID = map[uuid.UUID]account.Admin{}
	}
	f.byID[a.ID] = a
	return a, nil
}

type fakeTalents struct {
	repository.TalentRepository
	byID    map[uuid.UUID]member.Talent
	created []member.Talent
	hashes  map[uuid.UUID]string
	err     error
}

func (f *fakeTalents) put(t member.Talent) member.Talent {
	if f.byID == nil {
		f.byID = map[uuid.UUID]member.Talent{}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	f.byID[t.ID] = t
	return t
}

func (f *fakeTalents) Create(_ context.Context, t member.Talent) (member.Talent, error) {
	if f.err != nil {
		return member.Talent{}, f.err
	}
	t = f.put(t)
	f.created = append(f.created, t)
	return t, nil
}

func (f *fakeTalents) GetByID(_ context.Context, id uuid.UUID) (member.Talent, error) {
	t, ok := f.byID[id]
	if !ok {
		return member.Talent{}, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeTalents) FindCredentialByEmail(_ context.Context, email string) (account.Credential, error) {
	for _, t := range f.byID {
		if t.Email == email {
			return account.Credential{PrincipalID: t.ID, Role: account.RoleTalent, Email: t.Email, FullName: t.FullName, SecretHash: t.AccessKeyHash}, nil
		}
	}
	return account.Credential{}, repository.ErrNotFound
}

func (f *fakeTalents) UpdateProfile(_ context.Context, t member.Talent) (member.Talent, error) {
	if _, ok := f.byID[t.ID]; !ok {
		return member.Talent{}, repository.ErrNotFound
	}
	f.byID[t.ID] = t
	return t, nil
}

func (f *fakeTalents) SetAccessKeyHash(_ context.Context, id uuid.UUID, hash string) error {
	if f.hashes == nil {
		f.hashes = map[uuid.UUID]string{}
	}
	f.hashes[id] = hash
	return nil
}

type fakeCoaches struct {
	repository.CoachRepository
	byID map[uuid.UUID]member.Coach
}

func (f *fakeCoaches) GetByID(_ context.Context, id uuid.UUID) (member.Coach, error) {
	c, ok := f.byID[id]
	if !ok {
		return member.Coach{}, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeCoaches) FindCredentialByEmail(_ context.Context, email string) (account.Credential, error) {
	for _, c := range f.byID {
		if c.Email == email {
			return account.Credential{PrincipalID: c.ID, Role: account.RoleCoach, Email: c.Email, SecretHash: c.AccessKeyHash}, nil
		}
	}
	return account.Credential{}, repository.ErrNotFound
}

func (f *fakeCoaches) Create(_ context.Context, c member.Coach) (member.Coach, error) {
	c.ID = uuid.New()
	return c, nil
}

type fakeRecruiters struct {
	repository.RecruiterRepository
	byID    map[uuid.UUID]member.Recruiter
	created []member.Recruiter
}

func (f *fakeRecruiters) GetByID(_ context.Context, id uuid.UUID) (member.Recruiter, error) {
	r, ok := f.byID[id]
	if !ok {
		return member.Recruiter{}, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeRecruiters) FindCredentialByEmail(_ context.Context, email string) (account.Credential, error) {
	for _, r := range f.byID {
		if r.Email == email {
			return account.Credential{PrincipalID: r.ID, Role: account.RoleRecruiter, Email: r.Email, SecretHash: r.AccessKeyHash}, nil
		}
	}
	return account.Credential{}, repository.ErrNotFound
}

func (f *fakeRecruiters) Create(_ context.Context, r member.Recruiter) (member.Recruiter, error) {
	r.ID = uuid.New()
	f.created = append(f.created, r)
	return r, nil
}

func (f *fakeRecruiters) UpdateProfile(_ context.Context, r member.Recruiter) (member.Recruiter, error) {
	if _, ok := f.byID[r.ID]; !ok {
		return member.Recruiter{}, repository.ErrNotFound
	}
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeRecruiters) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeJobs struct {
	repository.JobRepository
	mu       sync.Mutex
	byID     map[uuid.UUID]job.Listing
	listed   int
	lastList job.Filter
	items    []job.Listing
	total    int
}

func (f *fakeJobs) put(l job.Listing) job.Listing {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byID == nil {
		f.byID = map[uuid.UUID]job.Listing{}
	}
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	f.byID[l.ID] = l
	return l
}

func (f *fakeJobs) GetByID(_ context.Context, id uuid.UUID) (job.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.byID[id]
	if !ok {
		return job.Listing{}, repository.ErrNotFound
	}
	return l, nil
}

func (f *fakeJobs) List(_ context.Context, flt job.Filter) ([]job.Listing, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listed++
	f.lastList = flt
	return f.items, f.total, nil
}

func (f *fakeJobs) Create(_ context.Context, j job.Job) (job.Listing, error) {
	return f.put(job.Listing{Job: j}), nil
}

func (f *fakeJobs) Update(_ context.Context, j job.Job) (job.Listing, error) {
	return f.put(job.Listing{Job: j}), nil
}

func (f *fakeJobs) SetStatus(_ context.Context, id uuid.UUID, status job.Status) (job.Listing, error) {
	f.mu.Lock()
	l := f.byID[id]
	f.mu.Unlock()
	l.Status = status
	return f.put(l), nil
}

type fakeApplications struct {
	repository.ApplicationRepository
	mu      sync.Mutex
	rows    map[uuid.UUID]job.Application
	details map[uuid.UUID]job.ApplicationDetail
	applied map[uuid.UUID]struct{}
	recent  []job.ApplicationDetail
}

func (f *fakeApplications) Create(_ context.Context, a job.Application) (job.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rows {
		if existing.JobID == a.JobID && existing.TalentID == a.TalentID {
			return job.Application{}, repository.ErrDuplicate
		}
	}
	if f.rows == nil {
		f.rows = map[uuid.UUID]job.Application{}
	}
	a.ID = uuid.New()
	f.rows[a.ID] = a
	return a, nil
}

func (f *fakeApplications) GetDetail(_ context.Context, id uuid.UUID) (job.ApplicationDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.details[id]
	if !ok {
		return job.ApplicationDetail{}, repository.ErrNotFound
	}
	return d, nil
}

func (f *fakeApplications) Decide(_ context.Context, id uuid.UUID, from, to job.ApplicationStatus) (job.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.details[id]
	if !ok || d.Status != from {
		return job.Application{}, repository.ErrNotFound
	}
	d.Status = to
	f.details[id] = d
	return d.Application, nil
}

func (f *fakeApplications) AppliedJobIDs(_ context.Context, _ uuid.UUID, _ []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return f.applied, nil
}

func (f *fakeApplications) ListForRecruiter(_ context.Context, _ job.ApplicationFilter) ([]job.ApplicationDetail, int, error) {
	return f.recent, len(f.recent), nil
}

type fakeAssignments struct {
	repository.AssignmentRepository
	pairs map[[2]uuid.UUID]bool
	list  []coaching.AssignmentDetail
}

func (f *fakeAssignments) Exists(_ context.Context, coachID, talentID uuid.UUID) (bool, error) {
	return f.pairs[[2]uuid.UUID{coachID, talentID}], nil
}

func (f *fakeAssignments) Create(_ context.Context, a coaching.Assignment) (coaching.AssignmentDetail, error) {
	if f.pairs == nil {
		f.pairs = map[[2]uuid.UUID]bool{}
	}
	f.pairs[[2]uuid.UUID{a.CoachID, a.TalentID}] = true
	a.ID = uuid.New()
	return coaching.AssignmentDetail{Assignment: a}, nil
}

func (f *fakeAssignments) ListForCoach(_ context.Context, _ uuid.UUID) ([]coaching.AssignmentDetail, error) {
	return f.list, nil
}

func (f *fakeAssignments) LatestForTalent(_ context.Context, talentID uuid.UUID) (coaching.AssignmentDetail, error) {
	var (
		latest coaching.AssignmentDetail
		found  bool
	)
	for _, d := range f.list {
		if d.TalentID == talentID && (!found || d.CreatedAt.After(latest.CreatedAt)) {
			latest, found = d, true
		}
	}
	if !found {
		return coaching.AssignmentDetail{}, repository.ErrNotFound
	}
	return latest, nil
}

func (f *fakeAssignments) Delete(_ context.Context, id uuid.UUID) error {
	for i, d := range f.list {
		if d.ID == id {
			f.list = append(f.list[:i], f.list[i+1:]...)
			delete(f.pairs, [2]uuid.UUID{d.CoachID, d.TalentID})
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeAppointments struct {
	repository.AppointmentRepository
	byID     map[uuid.UUID]coaching.Appointment
	upcoming []coaching.AppointmentDetail
	lastFrom time.Time
}

func (f *fakeAppointments) Create(_ context.Context, a coaching.Appointment) (coaching.Appointment, error) {
	if f.byID == nil {
		f.byID = map[uuid.UUID]coaching.Appointment{}
	}
	a.ID = uuid.New()
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeAppointments) GetByID(_ context.Context, id uuid.UUID) (coaching.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return coaching.Appointment{}, repository.ErrNotFound
	}
	return a, nil
}

func (f *fakeAppointments) Confirm(_ context.Context, id uuid.UUID, link string) (coaching.Appointment, error) {
	a, ok := f.byID[id]
	if !ok || a.Status != coaching.AppointmentPending {
		return coaching.Appointment{}, repository.ErrNotFound
	}
	a.Status, a.MeetingLink = coaching.AppointmentConfirmed, link
	f.byID[id] = a
	return a, nil
}

func (f *fakeAppointments) ListForCoach(_ context.Context, _ uuid.UUID, from time.Time) ([]coaching.AppointmentDetail, error) {
	f.lastFrom = from
	return f.upcoming, nil
}

// ListForTalent returns the talent's appointments at or after from, in booking order.
func (f *fakeAppointments) ListForTalent(_ context.Context, talentID uuid.UUID, from time.Time) ([]coaching.AppointmentDetail, error) {
	f.lastFrom = from
	out := make([]coaching.AppointmentDetail, 0)
	for _, d := range f.upcoming {
		if d.TalentID == talentID && (from.IsZero() || !d.ScheduledAt.Before(from)) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeAppointments) DeletePending(_ context.Context, id uuid.UUID) error {
	a, ok := f.byID[id]
	if !ok || a.Status != coaching.AppointmentPending {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeNews struct {
	repository.NewsRepository
	byID    map[uuid.UUID]news.Article
	sources map[string]bool
	drafts  []news.Article
}

func (f *fakeNews) GetByID(_ context.Context, id uuid.UUID) (news.Article, error) {
	a, ok := f.byID[id]
	if !ok {
		return news.Article{}, repository.ErrNotFound
	}
	return a, nil
}

func (f *fakeNews) Update(_ context.Context, a news.Article) (news.Article, error) {
	if _, ok := f.byID[a.ID]; !ok {
		return news.Article{}, repository.ErrNotFound
	}
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeNews) InsertDraft(_ context.Context, a news.Article) (bool, error) {
	if f.sources == nil {
		f.sources = map[string]bool{}
	}
	if f.sources[*a.SourceURL] {
		return false, nil
	}
	f.sources[*a.SourceURL] = true
	f.drafts = append(f.drafts, a)
	return true, nil
}

type fakeStats struct {
	talents, coaches, recruiters, open int
	byStatus                           map[string]int
	categories                         []repository.CategoryCount
	recent                             []repository.Registration
	err                                error
	openFor                            *uuid.UUID
}

func (f *fakeStats) CountTalents(context.Context) (int, error)    { return f.talents, f.err }
func (f *fakeStats) CountCoaches(context.Context) (int, error)    { return f.coaches, nil }
func (f *fakeStats) CountRecruiters(context.Context) (int, error) { return f.recruiters, nil }
func (f *fakeStats) CountOpenJobs(_ context.Context, id *uuid.UUID) (int, error) {
	f.openFor = id
	return f.open, nil
}
func (f *fakeStats) CountApplicationsByStatus(context.Context, *uuid.UUID) (map[string]int, error) {
	return f.byStatus, nil
}
func (f *fakeStats) TalentsPerCategory(context.Context) ([]repository.CategoryCount, error) {
	return f.categories, nil
}
func (f *fakeStats) RecentRegistrations(context.Context, int) ([]repository.Registration, error) {
	return f.recent, nil
}

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

type memFiles struct {
	mu      sync.Mutex
	puts    []string
	deletes []string
	putErr  error
}

func (m *memFiles) Put(_ context.Context, folder, filename string, r io.Reader) (storage.Object, error) {
	if m.putErr != nil {
		return storage.Object{}, m.putErr
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return storage.Object{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := folder + "/" + uuid.NewString() + "-" + filename
	m.puts = append(m.puts, key)
	return storage.Object{Key: key, URL: "http://files.test/" + key}, nil
}

func (m *memFiles) Delete(_ context.Context, keyOrURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, keyOrURL)
	return nil
}

func upload(name, body string) *Upload {
	return &Upload{Filename: name, Reader: bytes.NewBufferString(body)}
}

type recordingQueue struct {
	sent []mailer.Welcome
	err  error
}

func (q *recordingQueue) EnqueueWelcome(_ context.Context, w mailer.Welcome) error {
	if q.err != nil {
		return q.err
	}
	q.sent = append(q.sent, w)
	return nil
}

type recordingEvents struct {
	posted    []job.Listing
	created   []uuid.UUID
	decided   []job.Application
	confirmed []coaching.Appointment
}

func (r *recordingEvents) JobPosted(l job.Listing) { r.posted = append(r.posted, l) }
func (r *recordingEvents) ApplicationCreated(recruiterID uuid.UUID, _ job.Application) {
	r.created = append(r.created, recruiterID)
}
func (r *recordingEvents) ApplicationDecided(a job.Application) { r.decided = append(r.decided, a) }
func (r *recordingEvents) AppointmentConfirmed(a coaching.Appointment) {
	r.confirmed = append(r.confirmed, a)
}

type stubProvider struct {
	reply string
	err   error
	calls int
	last  assistant.Request
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Generate(_ context.Context, req assistant.Request) (string, error) {
	s.calls++
	s.last = req
	return s.reply, s.err
}

type stubCrawler struct {
	drafts []news.Draft
	err    error
}

func (s stubCrawler) Crawl(context.Context, newsimport.Source) ([]news.Draft, error) {
	return s.drafts, s.err
}

var errBoom = errors.New("boom")
