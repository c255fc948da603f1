package handler

import (
	"fsti-hub/internal/delivery/http/dto"
	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CoachHandler struct {
	uc usecase.CoachUsecase
}

type updateCoachRequest struct {
	FullName        *string `json:"full_name"`
	Specialty       *string `json:"specialty"`
	ExperienceYears *int    `json:"experience_years"`
	WhatsApp        *string `json:"whatsapp"`
	Motivation      *string `json:"motivation"`
}

func NewCoachHandler(uc usecase.CoachUsecase) *CoachHandler {
	return &CoachHandler{uc: uc}
}

func (h *CoachHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

func (h *CoachHandler) RegisterSelfRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
}

func (h *CoachHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Delete("/:id", h.Delete)
}

func (h *CoachHandler) List(c fiber.Ctx) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	items, total, err := h.uc.List(c.Context(), c.Query("q"), limit, offset)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Page(c, dto.NewCoachPublicList(items), limit, offset, total)
}

func (h *CoachHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	co, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCoachPublicResponse(co))
}

func (h *CoachHandler) GetMe(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	co, err := h.uc.Get(c.Context(), actor.ID)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCoachResponse(co))
}

func (h *CoachHandler) UpdateMe(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req updateCoachRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	co, err := h.uc.UpdateSelf(c.Context(), actor, usecase.CoachUpdate{
		FullName:        req.FullName,
		Specialty:       req.Specialty,
		ExperienceYears: req.ExperienceYears,
		WhatsApp:        req.WhatsApp,
		Motivation:      req.Motivation,
	})
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCoachResponse(co))
}

func (h *CoachHandler) Delete(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
