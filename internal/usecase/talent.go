package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/member"
	"fsti-hub/internal/infrastructure/storage"
	"fsti-hub/internal/repository"
	"fsti-hub/internal/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TalentQuery struct {
	Q         string
	Category  string
	Province  string
	Certified *bool
	Status    string
	Limit     int
	Offset    int
}

// TalentUpdate carries the fields a talent may change on their own profile.
// Nil fields are left as they are.
type TalentUpdate struct {
	FullName       *string
	WhatsApp       *string
	BirthDate      *time.Time
	Province       *string
	Category       *string
	EducationLevel *string
	Bio            *string
	RoleTitle      *string
	Experience     *string
	Skills         *string
	ProfileImage   *Upload
	CV             *Upload
}

type TalentUsecase interface {
	List(ctx context.Context, q TalentQuery) ([]member.Talent, int, error)
	Get(ctx context.Context, id uuid.UUID) (member.Talent, error)
	UpdateSelf(ctx context.Context, actor Actor, in TalentUpdate) (member.Talent, error)
	SetCertified(ctx context.Context, id uuid.UUID, certified bool) (member.Talent, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (member.Talent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Talents struct {
	repo   repository.TalentRepository
	files  FileStore
	logger *zap.Logger
}

func NewTalentUsecase(repo repository.TalentRepository, files FileStore, logger *zap.Logger) *Talents {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Talents{repo: repo, files: files, logger: logger}
}

func (u *Talents) List(ctx context.Context, q TalentQuery) ([]member.Talent, int, error) {
	limit, offset, err := normalizePage(q.Limit, q.Offset)
	if err != nil {
		return nil, 0, err
	}
	status := member.TalentStatus(strings.TrimSpace(q.Status))
	if status != "" && !status.Valid() {
		return nil, 0, ErrInvalidInput
	}

	items, total, err := u.repo.List(ctx, member.TalentFilter{
		Terms:     search.ProcessQuery(q.Q).Terms,
		Category:  strings.TrimSpace(q.Category),
		Province:  strings.TrimSpace(q.Province),
		Certified: q.Certified,
		Status:    status,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		u.logger.Error("talent list failed", zap.Error(err))
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

func (u *Talents) Get(ctx context.Context, id uuid.UUID) (member.Talent, error) {
	t, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return member.Talent{}, mapReadError(err)
	}
	return t, nil
}

func (u *Talents) UpdateSelf(ctx context.Context, actor Actor, in TalentUpdate) (member.Talent, error) {
	if !actor.Is(account.RoleTalent) {
		return member.Talent{}, ErrForbidden
	}
	t, err := u.repo.GetByID(ctx, actor.ID)
	if err != nil {
		return member.Talent{}, mapReadError(err)
	}

	setString(&t.FullName, in.FullName)
	setString(&t.WhatsApp, in.WhatsApp)
	setString(&t.Province, in.Province)
	setString(&t.Category, in.Category)
	setString(&t.EducationLevel, in.EducationLevel)
	setString(&t.Bio, in.Bio)
	setString(&t.RoleTitle, in.RoleTitle)
	setString(&t.Experience, in.Experience)
	if in.Skills != nil {
		t.Skills = member.ParseSkills(*in.Skills)
	}
	if in.BirthDate != nil {
		if in.BirthDate.After(time.Now()) {
			return member.Talent{}, ErrInvalidInput
		}
		t.BirthDate = in.BirthDate
	}
	if !required(t.FullName, t.WhatsApp, t.Category) {
		return member.Talent{}, ErrInvalidInput
	}

	var replaced []string
	if in.ProfileImage != nil {
		obj, err := u.put(ctx, storage.FolderProfiles, in.ProfileImage)
		if err != nil {
			return member.Talent{}, err
		}
		replaced = append(replaced, t.ProfileImageURL)
		t.ProfileImageURL = obj.URL
	}
	if in.CV != nil {
		obj, err := u.put(ctx, storage.FolderCVs, in.CV)
		if err != nil {
			return member.Talent{}, err
		}
		replaced = append(replaced, t.CVURL)
		t.CVURL = obj.URL
	}

	updated, err := u.repo.UpdateProfile(ctx, t)
	if err != nil {
		return member.Talent{}, mapReadError(err)
	}
	u.removeFiles(replaced...)
	return updated, nil
}

func (u *Talents) SetCertified(ctx context.Context, id uuid.UUID, certified bool) (member.Talent, error) {
	t, err := u.repo.SetCertified(ctx, id, certified)
	if err != nil {
		return member.Talent{}, mapReadError(err)
	}
	return t, nil
}

func (u *Talents) SetStatus(ctx context.Context, id uuid.UUID, status string) (member.Talent, error) {
	st := member.TalentStatus(strings.TrimSpace(status))
	if !st.Valid() {
		return member.Talent{}, ErrInvalidInput
	}
	t, err := u.repo.SetStatus(ctx, id, st)
	if err != nil {
		return member.Talent{}, mapReadError(err)
	}
	return t, nil
}

// Delete removes the profile and, best effort, its stored files.
func (u *Talents) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return mapReadError(err)
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return mapReadError(err)
	}
	u.removeFiles(t.ProfileImageURL, t.CVURL)
	return nil
}

func (u *Talents) put(ctx context.Context, folder string, up *Upload) (storage.Object, error) {
	if u.files == nil {
		return storage.Object{}, ErrInternal
	}
	obj, err := u.files.Put(ctx, folder, up.Filename, up.Reader)
	if err != nil {
		return storage.Object{}, mapStorageError(err)
	}
	return obj, nil
}

func (u *Talents) removeFiles(urls ...string) {
	if u.files == nil {
		return
	}
	for _, raw := range urls {
		if raw == "" {
			continue
		}
		if err := u.files.Delete(context.Background(), raw); err != nil {
			u.logger.Warn("stored file not removed", zap.String("url", raw), zap.Error(err))
		}
	}
}

func setString(dst *string, v *string) {
	if v == nil {
		return
	}
	*dst = strings.TrimSpace(*v)
}

// mapReadError converts repository errors for lookups and single-row updates.
func mapReadError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrConflict
	case errors.Is(err, repository.ErrReferenceMissing):
		return ErrNotFound
	default:
		return ErrInternal
	}
}
