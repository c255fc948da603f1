package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/member"
	"fsti-hub/internal/infrastructure/mailer"
	"fsti-hub/internal/infrastructure/storage"
	"fsti-hub/internal/pkg/accesskey"
	"fsti-hub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WelcomeQueue interface {
	EnqueueWelcome(ctx context.Context, w mailer.Welcome) error
}

type TalentRegistration struct {
	FullName       string
	Email          string
	WhatsApp       string
	BirthDate      *time.Time
	Province       string
	Category       string
	EducationLevel string
	Bio            string
	RoleTitle      string
	Experience     string
	// Skills is the comma separated list as typed.
	Skills       string
	ProfileImage *Upload
	CV           *Upload
}

type CoachRegistration struct {
	FullName        string
	Email           string
	Specialty       string
	ExperienceYears int
	WhatsApp        string
	Motivation      string
}

type RecruiterRegistration struct {
	FullName    string
	Email       string
	CompanyName string
	WhatsApp    string
	Motivation  string
}

type RegistrationUsecase interface {
	RegisterTalent(ctx context.Context, in TalentRegistration) (member.Talent, string, error)
	RegisterCoach(ctx context.Context, in CoachRegistration) (member.Coach, string, error)
	RegisterRecruiter(ctx context.Context, in RecruiterRegistration) (member.Recruiter, string, error)
	RotateAccessKey(ctx context.Context, role account.Role, id uuid.UUID) (string, error)
}

type Registration struct {
	talents    repository.TalentRepository
	coaches    repository.CoachRepository
	recruiters repository.RecruiterRepository
	files      FileStore
	mail       WelcomeQueue
	adminEmail string
	logger     *zap.Logger

	newKey func() (string, error)
	now    func() time.Time
}

func NewRegistrationUsecase(talents repository.TalentRepository, coaches repository.CoachRepository, recruiters repository.RecruiterRepository, files FileStore, mail WelcomeQueue, adminEmail string, logger *zap.Logger) *Registration {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registration{
		talents:    talents,
		coaches:    coaches,
		recruiters: recruiters,
		files:      files,
		mail:       mail,
		adminEmail: adminEmail,
		logger:     logger,
		newKey:     accesskey.Generate,
		now:        time.Now,
	}
}

// RegisterTalent stores the uploads, creates the profile and queues the welcome
// email. The plain access key is returned once and never stored.
func (u *Registration) RegisterTalent(ctx context.Context, in TalentRegistration) (member.Talent, string, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return member.Talent{}, "", err
	}
	if !required(in.FullName, in.WhatsApp, in.Category) {
		return member.Talent{}, "", ErrInvalidInput
	}
	if in.BirthDate != nil && in.BirthDate.After(u.now()) {
		return member.Talent{}, "", ErrInvalidInput
	}

	key, hash, err := u.generateKey()
	if err != nil {
		return member.Talent{}, "", err
	}

	var stored []string
	cleanup := func() {
		for _, k := range stored {
			if err := u.files.Delete(context.Background(), k); err != nil {
				u.logger.Warn("upload cleanup failed", zap.String("key", k), zap.Error(err))
			}
		}
	}

	t := member.Talent{
		FullName:       strings.TrimSpace(in.FullName),
		Email:          email,
		WhatsApp:       strings.TrimSpace(in.WhatsApp),
		BirthDate:      in.BirthDate,
		Province:       strings.TrimSpace(in.Province),
		Category:       strings.TrimSpace(in.Category),
		EducationLevel: strings.TrimSpace(in.EducationLevel),
		Bio:            strings.TrimSpace(in.Bio),
		RoleTitle:      strings.TrimSpace(in.RoleTitle),
		Experience:     strings.TrimSpace(in.Experience),
		Skills:         member.ParseSkills(in.Skills),
		AccessKeyHash:  hash,
		Status:         member.TalentAvailable,
	}

	if in.ProfileImage != nil {
		obj, err := u.store(ctx, storage.FolderProfiles, in.ProfileImage)
		if err != nil {
			return member.Talent{}, "", err
		}
		stored = append(stored, obj.Key)
		t.ProfileImageURL = obj.URL
	}
	if in.CV != nil {
		obj, err := u.store(ctx, storage.FolderCVs, in.CV)
		if err != nil {
			cleanup()
			return member.Talent{}, "", err
		}
		stored = append(stored, obj.Key)
		t.CVURL = obj.URL
	}

	created, err := u.talents.Create(ctx, t)
	if err != nil {
		cleanup()
		return member.Talent{}, "", mapCreateError(err)
	}

	u.welcome(ctx, mailer.Welcome{To: created.Email, FullName: created.FullName, Role: string(account.RoleTalent), AccessKey: key})
	return created, key, nil
}

func (u *Registration) RegisterCoach(ctx context.Context, in CoachRegistration) (member.Coach, string, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return member.Coach{}, "", err
	}
	if !required(in.FullName, in.Specialty, in.WhatsApp) || in.ExperienceYears < 0 {
		return member.Coach{}, "", ErrInvalidInput
	}

	key, hash, err := u.generateKey()
	if err != nil {
		return member.Coach{}, "", err
	}

	created, err := u.coaches.Create(ctx, member.Coach{
		FullName:        strings.TrimSpace(in.FullName),
		Email:           email,
		Specialty:       strings.TrimSpace(in.Specialty),
		ExperienceYears: in.ExperienceYears,
		WhatsApp:        strings.TrimSpace(in.WhatsApp),
		Motivation:      strings.TrimSpace(in.Motivation),
		AccessKeyHash:   hash,
	})
	if err != nil {
		return member.Coach{}, "", mapCreateError(err)
	}

	u.welcome(ctx, mailer.Welcome{To: created.Email, FullName: created.FullName, Role: string(account.RoleCoach), AccessKey: key})
	return created, key, nil
}

func (u *Registration) RegisterRecruiter(ctx context.Context, in RecruiterRegistration) (member.Recruiter, string, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return member.Recruiter{}, "", err
	}
	if !required(in.FullName, in.CompanyName, in.WhatsApp) {
		return member.Recruiter{}, "", ErrInvalidInput
	}

	key, hash, err := u.generateKey()
	if err != nil {
		return member.Recruiter{}, "", err
	}

	created, err := u.recruiters.Create(ctx, member.Recruiter{
		FullName:      strings.TrimSpace(in.FullName),
		Email:         email,
		CompanyName:   strings.TrimSpace(in.CompanyName),
		WhatsApp:      strings.TrimSpace(in.WhatsApp),
		Motivation:    strings.TrimSpace(in.Motivation),
		Status:        member.RecruiterPending,
		AccessKeyHash: hash,
	})
	if err != nil {
		return member.Recruiter{}, "", mapCreateError(err)
	}

	u.welcome(ctx, mailer.Welcome{To: created.Email, FullName: created.FullName, Role: string(account.RoleRecruiter), AccessKey: key, Pending: true})
	return created, key, nil
}

// RotateAccessKey replaces a member's key and emails the new one.
func (u *Registration) RotateAccessKey(ctx context.Context, role account.Role, id uuid.UUID) (string, error) {
	if !role.IsMember() || id == uuid.Nil {
		return "", ErrInvalidInput
	}
	key, hash, err := u.generateKey()
	if err != nil {
		return "", err
	}

	var email, name string
	switch role {
	case account.RoleTalent:
		var t member.Talent
		if t, err = u.talents.GetByID(ctx, id); err == nil {
			email, name = t.Email, t.FullName
			err = u.talents.SetAccessKeyHash(ctx, id, hash)
		}
	case account.RoleCoach:
		var c member.Coach
		if c, err = u.coaches.GetByID(ctx, id); err == nil {
			email, name = c.Email, c.FullName
			err = u.coaches.SetAccessKeyHash(ctx, id, hash)
		}
	case account.RoleRecruiter:
		var r member.Recruiter
		if r, err = u.recruiters.GetByID(ctx, id); err == nil {
			email, name = r.Email, r.FullName
			err = u.recruiters.SetAccessKeyHash(ctx, id, hash)
		}
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNotFound
		}
		u.logger.Error("access key rotation failed", zap.String("role", string(role)), zap.Error(err))
		return "", ErrInternal
	}

	u.welcome(ctx, mailer.Welcome{To: email, FullName: name, Role: string(role), AccessKey: key, Rotated: true})
	return key, nil
}

func (u *Registration) generateKey() (string, string, error) {
	key, err := u.newKey()
	if err != nil {
		u.logger.Error("access key generation failed", zap.Error(err))
		return "", "", ErrInternal
	}
	hash, err := accesskey.Hash(key)
	if err != nil {
		return "", "", ErrInternal
	}
	return key, hash, nil
}

func (u *Registration) store(ctx context.Context, folder string, up *Upload) (storage.Object, error) {
	if u.files == nil {
		return storage.Object{}, ErrInternal
	}
	obj, err := u.files.Put(ctx, folder, up.Filename, up.Reader)
	if err != nil {
		return storage.Object{}, mapStorageError(err)
	}
	return obj, nil
}

// welcome queues the access-key email. Failures are logged, never returned.
func (u *Registration) welcome(ctx context.Context, w mailer.Welcome) {
	if u.mail == nil {
		return
	}
	w.AdminEmail = u.adminEmail
	if err := u.mail.EnqueueWelcome(ctx, w); err != nil {
		u.logger.Warn("welcome email not queued", zap.String("role", w.Role), zap.Error(err))
	}
}

func mapCreateError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return ErrEmailTaken
	case errors.Is(err, repository.ErrReferenceMissing):
		return ErrNotFound
	default:
		return ErrInternal
	}
}

func mapStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrFileTypeRejected),
		errors.Is(err, storage.ErrInvalidKey):
		return errors.Join(ErrFileRejected, err)
	default:
		return ErrInternal
	}
}
