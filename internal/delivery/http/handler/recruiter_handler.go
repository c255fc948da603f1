package handler

import (
	"fsti-hub/internal/delivery/http/dto"
	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/domain/member"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecruiterHandler struct {
	uc usecase.RecruiterUsecase
}

type updateRecruiterRequest struct {
	FullName    *string `json:"full_name"`
	CompanyName *string `json:"company_name"`
	WhatsApp    *string `json:"whatsapp"`
	Motivation  *string `json:"motivation"`
}

func NewRecruiterHandler(uc usecase.RecruiterUsecase) *RecruiterHandler {
	return &RecruiterHandler{uc: uc}
}

func (h *RecruiterHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

func (h *RecruiterHandler) RegisterSelfRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
}

func (h *RecruiterHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.AdminList)
	r.Patch("/:id/verify", h.Verify)
	r.Delete("/:id", h.Delete)
}

// List shows verified recruiters only.
func (h *RecruiterHandler) List(c fiber.Ctx) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	items, total, err := h.uc.List(c.Context(), c.Query("q"), string(member.RecruiterVerified), limit, offset)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Page(c, dto.NewRecruiterPublicList(items), limit, offset, total)
}

func (h *RecruiterHandler) AdminList(c fiber.Ctx) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	items, total, err := h.uc.List(c.Context(), c.Query("q"), c.Query("status"), limit, offset)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Page(c, dto.NewRecruiterList(items), limit, offset, total)
}

func (h *RecruiterHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	rec, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecruiterPublicResponse(rec))
}

func (h *RecruiterHandler) GetMe(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	rec, err := h.uc.Get(c.Context(), actor.ID)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecruiterResponse(rec))
}

func (h *RecruiterHandler) UpdateMe(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req updateRecruiterRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	rec, err := h.uc.UpdateSelf(c.Context(), actor, usecase.RecruiterUpdate{
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
		WhatsApp:    req.WhatsApp,
		Motivation:  req.Motivation,
	})
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecruiterResponse(rec))
}

func (h *RecruiterHandler) Verify(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	rec, err := h.uc.Verify(c.Context(), id)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecruiterResponse(rec))
}

func (h *RecruiterHandler) Delete(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
