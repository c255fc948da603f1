package usecase

import (
	"context"
	"errors"
	"strings"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/member"
	"fsti-hub/internal/pkg/accesskey"
	"fsti-hub/internal/pkg/jwt"
	"fsti-hub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minAdminPasswordLen = 8

type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Session describes who is signed in and which dashboard the client opens.
// Exactly one of the profile pointers is set.
type Session struct {
	Role        account.Role
	PrincipalID uuid.UUID
	Email       string
	FullName    string
	Dashboard   string

	Admin     *account.Admin
	Talent    *member.Talent
	Coach     *member.Coach
	Recruiter *member.Recruiter
}

type AuthUsecase interface {
	Login(ctx context.Context, email, secret string) (Session, Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (Session, Tokens, error)
	Session(ctx context.Context, actor Actor) (Session, error)
	CreateAdmin(ctx context.Context, email, fullName, password string) (account.Admin, error)
}

type credentialFinder interface {
	FindCredentialByEmail(ctx context.Context, email string) (account.Credential, error)
}

type Auth struct {
	admins     repository.AdminRepository
	talents    repository.TalentRepository
	coaches    repository.CoachRepository
	recruiters repository.RecruiterRepository
	jwt        jwt.Service
	logger     *zap.Logger
}

func NewAuthUsecase(admins repository.AdminRepository, talents repository.TalentRepository, coaches repository.CoachRepository, recruiters repository.RecruiterRepository, jwtSvc jwt.Service, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{admins: admins, talents: talents, coaches: coaches, recruiters: recruiters, jwt: jwtSvc, logger: logger}
}

// Login tries the admin accounts first, then talents, coaches and recruiters.
// The first principal whose secret matches wins.
func (u *Auth) Login(ctx context.Context, email, secret string) (Session, Tokens, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(secret) == "" {
		return Session{}, Tokens{}, ErrInvalidInput
	}

	sources := []struct {
		role   account.Role
		finder credentialFinder
	}{
		{account.RoleAdmin, u.admins},
		{account.RoleTalent, u.talents},
		{account.RoleCoach, u.coaches},
		{account.RoleRecruiter, u.recruiters},
	}

	for _, src := range sources {
		cred, err := src.finder.FindCredentialByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			u.logger.Error("credential lookup failed", zap.String("role", string(src.role)), zap.Error(err))
			return Session{}, Tokens{}, ErrInternal
		}
		if !secretMatches(cred, secret) {
			continue
		}

		sess, err := u.load(ctx, cred.Role, cred.PrincipalID)
		if err != nil {
			return Session{}, Tokens{}, err
		}
		toks, err := u.issue(sess)
		if err != nil {
			return Session{}, Tokens{}, err
		}
		u.logger.Info("login", zap.String("role", string(sess.Role)), zap.String("principal_id", sess.PrincipalID.String()))
		return sess, toks, nil
	}

	return Session{}, Tokens{}, ErrInvalidCredentials
}

func secretMatches(cred account.Credential, secret string) bool {
	if cred.Role == account.RoleAdmin {
		return cred.SecretHash != "" && bcrypt.CompareHashAndPassword([]byte(cred.SecretHash), []byte(secret)) == nil
	}
	return accesskey.Compare(cred.SecretHash, secret) == nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Session, Tokens, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return Session{}, Tokens{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, Tokens{}, ErrRefreshTokenExpired
		}
		return Session{}, Tokens{}, ErrInvalidRefreshToken
	}

	sess, err := u.load(ctx, account.Role(claims.Role), claims.PrincipalID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, Tokens{}, ErrInvalidRefreshToken
		}
		return Session{}, Tokens{}, err
	}
	toks, err := u.issue(sess)
	if err != nil {
		return Session{}, Tokens{}, err
	}
	return sess, toks, nil
}

func (u *Auth) Session(ctx context.Context, actor Actor) (Session, error) {
	if actor.ID == uuid.Nil || !actor.Role.Valid() {
		return Session{}, ErrUnauthorized
	}
	sess, err := u.load(ctx, actor.Role, actor.ID)
	if errors.Is(err, ErrNotFound) {
		return Session{}, ErrUnauthorized
	}
	return sess, err
}

func (u *Auth) CreateAdmin(ctx context.Context, email, fullName, password string) (account.Admin, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return account.Admin{}, err
	}
	if len(password) < minAdminPasswordLen {
		return account.Admin{}, ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return account.Admin{}, ErrInternal
	}

	a, err := u.admins.Create(ctx, account.Admin{
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return account.Admin{}, ErrEmailTaken
		}
		return account.Admin{}, ErrInternal
	}
	return a, nil
}

func (u *Auth) load(ctx context.Context, role account.Role, id uuid.UUID) (Session, error) {
	sess := Session{Role: role, PrincipalID: id, Dashboard: role.Dashboard()}

	var err error
	switch role {
	case account.RoleAdmin:
		var a account.Admin
		a, err = u.admins.GetByID(ctx, id)
		sess.Admin, sess.Email, sess.FullName = &a, a.Email, a.FullName
	case account.RoleTalent:
		var t member.Talent
		t, err = u.talents.GetByID(ctx, id)
		sess.Talent, sess.Email, sess.FullName = &t, t.Email, t.FullName
	case account.RoleCoach:
		var c member.Coach
		c, err = u.coaches.GetByID(ctx, id)
		sess.Coach, sess.Email, sess.FullName = &c, c.Email, c.FullName
	case account.RoleRecruiter:
		var r member.Recruiter
		r, err = u.recruiters.GetByID(ctx, id)
		sess.Recruiter, sess.Email, sess.FullName = &r, r.Email, r.FullName
	default:
		return Session{}, ErrUnauthorized
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Session{}, ErrNotFound
		}
		u.logger.Error("session load failed", zap.String("role", string(role)), zap.Error(err))
		return Session{}, ErrInternal
	}
	return sess, nil
}

func (u *Auth) issue(sess Session) (Tokens, error) {
	sub := jwt.Subject{PrincipalID: sess.PrincipalID, Role: string(sess.Role), Email: sess.Email}
	access, err := u.jwt.GenerateAccessToken(sub)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(sub)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}
