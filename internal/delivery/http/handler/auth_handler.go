package handler

import (
	"errors"

	"fsti-hub/internal/delivery/http/dto"
	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type loginRequest struct {
	Email string `json:"email"`
	// Secret is the admin password or the member access key.
	Secret string `json:"secret"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// RegisterRoutes mounts the public endpoints. Session needs an authenticated
// router and is mounted separately.
func (h *AuthHandler) RegisterRoutes(r fiber.Router, loginLimiter fiber.Handler) {
	if r == nil {
		return
	}

	if loginLimiter != nil {
		r.Post("/login", loginLimiter, h.Login)
	} else {
		r.Post("/login", h.Login)
	}
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) RegisterSessionRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/session", h.Session)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	sess, toks, err := h.uc.Login(c.Context(), req.Email, req.Secret)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewLoginResponse(sess, toks))
}

// Refresh accepts the refresh token in the body or as a bearer token.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req refreshRequest
	_ = c.Bind().Body(&req)
	tok := req.RefreshToken
	if tok == "" {
		var ok bool
		if tok, ok = middleware.BearerToken(c.Get("Authorization")); !ok {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
	}

	sess, toks, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewLoginResponse(sess, toks))
}

func (h *AuthHandler) Session(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	sess, err := h.uc.Session(c.Context(), actor)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionResponse(sess))
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or access key", nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	default:
		return mapCommonUsecaseError(err)
	}
}
