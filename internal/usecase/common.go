package usecase

import (
	"context"
	"io"
	"net/mail"
	"strings"
	"time"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/infrastructure/storage"

	"github.com/google/uuid"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 50
)

// Actor is the signed-in principal a request acts for.
type Actor struct {
	ID    uuid.UUID
	Role  account.Role
	Email string
}

func (a Actor) Is(role account.Role) bool {
	return a.ID != uuid.Nil && a.Role == role
}

func (a Actor) IsAdmin() bool {
	return a.Is(account.RoleAdmin)
}

// Upload is a file received with a request.
type Upload struct {
	Filename string
	Reader   io.Reader
}

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type FileStore interface {
	Put(ctx context.Context, folder, filename string, r io.Reader) (storage.Object, error)
	Delete(ctx context.Context, keyOrURL string) error
}

// normalizePage applies the default limit and rejects out of range values.
func normalizePage(limit, offset int) (int, int, error) {
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit < 0 || limit > maxPageLimit || offset < 0 {
		return 0, 0, ErrInvalidInput
	}
	return limit, offset, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrInvalidInput
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidInput
	}
	return email, nil
}

func required(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
