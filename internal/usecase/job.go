package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/job"
	"fsti-hub/internal/domain/matching"
	"fsti-hub/internal/domain/member"
	"fsti-hub/internal/infrastructure/storage"
	"fsti-hub/internal/repository"
	"fsti-hub/internal/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const jobsCachePrefix = "jobs:list:"

type JobQuery struct {
	Q        string
	Category string
	// Status is open (default), closed or all.
	Status string
	Limit  int
	Offset int
}

type JobInput struct {
	Title       string
	Category    string
	Description string
	SalaryRange string
	Location    string
	TDR         *Upload
}

// JobItem is a listing as seen by the viewer. Applied and Fit are only set for
// talent sessions.
type JobItem struct {
	job.Listing
	Applied bool
	Fit     *matching.Result
}

type JobUsecase interface {
	List(ctx context.Context, viewer *Actor, q JobQuery) ([]JobItem, int, error)
	ListMine(ctx context.Context, actor Actor, limit, offset int) ([]job.Listing, int, error)
	Get(ctx context.Context, viewer *Actor, id uuid.UUID) (JobItem, error)
	Create(ctx context.Context, actor Actor, in JobInput) (job.Listing, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, in JobInput) (job.Listing, error)
	ToggleStatus(ctx context.Context, actor Actor, id uuid.UUID) (job.Listing, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type Jobs struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	talents      repository.TalentRepository
	recruiters   repository.RecruiterRepository
	files        FileStore
	cache        Cache
	events       EventPublisher
	logger       *zap.Logger
}

func NewJobUsecase(jobs repository.JobRepository, applications repository.ApplicationRepository, talents repository.TalentRepository, recruiters repository.RecruiterRepository, files FileStore, cache Cache, events EventPublisher, logger *zap.Logger) *Jobs {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Jobs{
		jobs:         jobs,
		applications: applications,
		talents:      talents,
		recruiters:   recruiters,
		files:        files,
		cache:        cache,
		events:       eventsOrNoop(events),
		logger:       logger,
	}
}

type cachedJobPage struct {
	Items []job.Listing `json:"items"`
	Total int           `json:"total"`
}

// JobsListCacheKey identifies one public listing page.
func JobsListCacheKey(q JobQuery) string {
	b, _ := json.Marshal(struct {
		Q        string `json:"q"`
		Category string `json:"category"`
		Status   string `json:"status"`
		Limit    int    `json:"limit"`
		Offset   int    `json:"offset"`
	}{
		Q:        search.Fold(q.Q),
		Category: strings.ToLower(strings.TrimSpace(q.Category)),
		Status:   q.Status,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	sum := sha256.Sum256(b)
	return jobsCachePrefix + hex.EncodeToString(sum[:])
}

func (u *Jobs) List(ctx context.Context, viewer *Actor, q JobQuery) ([]JobItem, int, error) {
	limit, offset, err := normalizePage(q.Limit, q.Offset)
	if err != nil {
		return nil, 0, err
	}
	q.Limit, q.Offset = limit, offset

	var status job.Status
	switch strings.ToLower(strings.TrimSpace(q.Status)) {
	case "", string(job.StatusOpen):
		status, q.Status = job.StatusOpen, string(job.StatusOpen)
	case string(job.StatusClosed):
		status, q.Status = job.StatusClosed, string(job.StatusClosed)
	case "all":
		q.Status = "all"
	default:
		return nil, 0, ErrInvalidInput
	}

	key := JobsListCacheKey(q)
	page, hit := u.cached(ctx, key)
	if !hit {
		items, total, err := u.jobs.List(ctx, job.Filter{
			Terms:    search.ProcessQuery(q.Q).Terms,
			Category: strings.TrimSpace(q.Category),
			Status:   status,
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			u.logger.Error("job list failed", zap.Error(err))
			return nil, 0, ErrInternal
		}
		page = cachedJobPage{Items: items, Total: total}
		if u.cache != nil {
			_ = u.cache.SetJSON(ctx, key, page, 0)
		}
	}

	out, err := u.personalize(ctx, viewer, page.Items)
	if err != nil {
		return nil, 0, err
	}
	return out, page.Total, nil
}

func (u *Jobs) cached(ctx context.Context, key string) (cachedJobPage, bool) {
	if u.cache == nil {
		return cachedJobPage{}, false
	}
	var page cachedJobPage
	hit, err := u.cache.GetJSON(ctx, key, &page)
	if err != nil || !hit {
		return cachedJobPage{}, false
	}
	u.logger.Debug("jobs cache hit", zap.String("key", key))
	return page, true
}

// personalize adds the applied flag and fit score for talent viewers.
func (u *Jobs) personalize(ctx context.Context, viewer *Actor, items []job.Listing) ([]JobItem, error) {
	out := make([]JobItem, 0, len(items))
	for _, l := range items {
		out = append(out, JobItem{Listing: l})
	}
	if viewer == nil || !viewer.Is(account.RoleTalent) || len(items) == 0 {
		return out, nil
	}

	t, err := u.talents.GetByID(ctx, viewer.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, nil
		}
		return nil, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, l := range items {
		ids = append(ids, l.ID)
	}
	applied, err := u.applications.AppliedJobIDs(ctx, t.ID, ids)
	if err != nil {
		return nil, ErrInternal
	}

	profile := talentProfile(t)
	for i := range out {
		_, out[i].Applied = applied[out[i].ID]
		fit := matching.Calculate(profile, posting(out[i].Listing))
		out[i].Fit = &fit
	}
	return out, nil
}

func talentProfile(t member.Talent) matching.Profile {
	return matching.Profile{Category: t.Category, RoleTitle: t.RoleTitle, Skills: t.Skills}
}

func posting(l job.Listing) matching.Posting {
	return matching.Posting{Category: l.Category, Title: l.Title, Description: l.Description}
}

func (u *Jobs) ListMine(ctx context.Context, actor Actor, limit, offset int) ([]job.Listing, int, error) {
	if !actor.Is(account.RoleRecruiter) {
		return nil, 0, ErrForbidden
	}
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	id := actor.ID
	items, total, err := u.jobs.List(ctx, job.Filter{RecruiterID: &id, Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

func (u *Jobs) Get(ctx context.Context, viewer *Actor, id uuid.UUID) (JobItem, error) {
	l, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		return JobItem{}, mapReadError(err)
	}
	items, err := u.personalize(ctx, viewer, []job.Listing{l})
	if err != nil {
		return JobItem{}, err
	}
	return items[0], nil
}

func (in JobInput) validate() error {
	if !required(in.Title, in.Category, in.Location) {
		return ErrInvalidInput
	}
	return nil
}

// Create posts a job for a verified recruiter.
func (u *Jobs) Create(ctx context.Context, actor Actor, in JobInput) (job.Listing, error) {
	if !actor.Is(account.RoleRecruiter) {
		return job.Listing{}, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return job.Listing{}, err
	}
	rec, err := u.recruiters.GetByID(ctx, actor.ID)
	if err != nil {
		return job.Listing{}, mapReadError(err)
	}
	if rec.Status != member.RecruiterVerified {
		return job.Listing{}, ErrRecruiterPending
	}

	j := job.Job{
		RecruiterID: actor.ID,
		Title:       strings.TrimSpace(in.Title),
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		SalaryRange: strings.TrimSpace(in.SalaryRange),
		Location:    strings.TrimSpace(in.Location),
		Status:      job.StatusOpen,
	}
	if in.TDR != nil {
		obj, err := u.storeTDR(ctx, actor.ID, in.TDR)
		if err != nil {
			return job.Listing{}, err
		}
		j.TDRURL = obj.URL
	}

	created, err := u.jobs.Create(ctx, j)
	if err != nil {
		u.removeFile(j.TDRURL)
		return job.Listing{}, mapReadError(err)
	}
	u.invalidate(ctx)
	u.events.JobPosted(created)
	return created, nil
}

func (u *Jobs) Update(ctx context.Context, actor Actor, id uuid.UUID, in JobInput) (job.Listing, error) {
	current, err := u.owned(ctx, actor, id)
	if err != nil {
		return job.Listing{}, err
	}
	if err := in.validate(); err != nil {
		return job.Listing{}, err
	}

	j := current.Job
	j.Title = strings.TrimSpace(in.Title)
	j.Category = strings.TrimSpace(in.Category)
	j.Description = strings.TrimSpace(in.Description)
	j.SalaryRange = strings.TrimSpace(in.SalaryRange)
	j.Location = strings.TrimSpace(in.Location)

	oldTDR := ""
	if in.TDR != nil {
		obj, err := u.storeTDR(ctx, current.RecruiterID, in.TDR)
		if err != nil {
			return job.Listing{}, err
		}
		oldTDR, j.TDRURL = j.TDRURL, obj.URL
	}

	updated, err := u.jobs.Update(ctx, j)
	if err != nil {
		return job.Listing{}, mapReadError(err)
	}
	u.removeFile(oldTDR)
	u.invalidate(ctx)
	return updated, nil
}

func (u *Jobs) ToggleStatus(ctx context.Context, actor Actor, id uuid.UUID) (job.Listing, error) {
	current, err := u.owned(ctx, actor, id)
	if err != nil {
		return job.Listing{}, err
	}
	updated, err := u.jobs.SetStatus(ctx, id, current.Status.Toggle())
	if err != nil {
		return job.Listing{}, mapReadError(err)
	}
	u.invalidate(ctx)
	return updated, nil
}

func (u *Jobs) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	current, err := u.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := u.jobs.Delete(ctx, id); err != nil {
		return mapReadError(err)
	}
	u.removeFile(current.TDRURL)
	u.invalidate(ctx)
	return nil
}

// owned loads a job the actor may change: the posting recruiter or an admin.
func (u *Jobs) owned(ctx context.Context, actor Actor, id uuid.UUID) (job.Listing, error) {
	if !actor.Is(account.RoleRecruiter) && !actor.IsAdmin() {
		return job.Listing{}, ErrForbidden
	}
	l, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		return job.Listing{}, mapReadError(err)
	}
	if !actor.IsAdmin() && l.RecruiterID != actor.ID {
		return job.Listing{}, ErrForbidden
	}
	return l, nil
}

func (u *Jobs) storeTDR(ctx context.Context, recruiterID uuid.UUID, up *Upload) (storage.Object, error) {
	if u.files == nil {
		return storage.Object{}, ErrInternal
	}
	obj, err := u.files.Put(ctx, storage.FolderJobTDRs+"/"+recruiterID.String(), up.Filename, up.Reader)
	if err != nil {
		return storage.Object{}, mapStorageError(err)
	}
	return obj, nil
}

func (u *Jobs) removeFile(url string) {
	if url == "" || u.files == nil {
		return
	}
	if err := u.files.Delete(context.Background(), url); err != nil {
		u.logger.Warn("stored file not removed", zap.String("url", url), zap.Error(err))
	}
}

func (u *Jobs) invalidate(ctx context.Context) {
	invalidateJobLists(ctx, u.cache, u.logger)
}

// invalidateJobLists drops every cached public listing page. It outlives a
// cancelled request so a committed write never leaves stale pages behind.
func invalidateJobLists(ctx context.Context, cache Cache, logger *zap.Logger) {
	if cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := cache.DeleteByPattern(ctx, jobsCachePrefix+"*"); err != nil {
		logger.Warn("jobs cache invalidation failed", zap.Error(err))
	}
}
