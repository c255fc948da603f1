package middleware

import (
	"errors"
	"strings"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const CtxPrincipalKey = "principal"

// Principal is the signed-in account behind a request.
type Principal struct {
	ID    uuid.UUID
	Role  account.Role
	Email string
}

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware rejects requests without a valid access token.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		p, err := m.principal(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxPrincipalKey, p)
		return c.Next()
	}
}

// Optional attaches the principal when a valid token is sent and otherwise
// lets the request through anonymously.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		if token, ok := BearerToken(c.Get("Authorization")); ok {
			if p, err := m.principal(token); err == nil {
				c.Locals(CtxPrincipalKey, p)
			}
		}
		return c.Next()
	}
}

func (m *AuthMiddleware) principal(token string) (Principal, error) {
	claims, err := m.jwt.ValidateAccessToken(token)
	if err != nil {
		return Principal{}, err
	}
	role := account.Role(claims.Role)
	if claims.TokenType != jwt.TokenTypeAccess || claims.PrincipalID == uuid.Nil || !role.Valid() {
		return Principal{}, jwt.ErrTokenInvalid
	}
	return Principal{ID: claims.PrincipalID, Role: role, Email: claims.Email}, nil
}

// RequireRole must run after Middleware.
func RequireRole(roles ...account.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		for _, r := range roles {
			if p.Role == r {
				return c.Next()
			}
		}
		return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}
}

func PrincipalFrom(c fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(CtxPrincipalKey).(Principal)
	return p, ok && p.ID != uuid.Nil
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
