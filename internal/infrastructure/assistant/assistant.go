package assistant

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

var ErrNotConfigured = errors.New("assistant provider not configured")

// Turn is one message of a conversation.
type Turn struct {
	Role string
	Text string
}

type Request struct {
	System   string
	History  []Turn
	Prompt   string
	Advanced bool
}

type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// NormalizeRole maps anything that is not "model" to "user".
func NormalizeRole(role string) string {
	if strings.EqualFold(strings.TrimSpace(role), RoleModel) {
		return RoleModel
	}
	return RoleUser
}

type timeoutProvider struct {
	Provider
	timeout time.Duration
}

// WithTimeout bounds every Generate call of p. A zero timeout returns p as is.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if p == nil || timeout <= 0 {
		return p
	}
	return timeoutProvider{Provider: p, timeout: timeout}
}

func (t timeoutProvider) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Provider.Generate(ctx, req)
}
