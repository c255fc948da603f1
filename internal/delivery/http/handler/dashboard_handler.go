package handler

import (
	"fsti-hub/internal/delivery/http/dto"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc usecase.DashboardUsecase
}

func NewDashboardHandler(uc usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// RegisterRoutes expects an authenticated router; each dashboard checks the
// session role itself.
func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/admin", h.Admin)
	r.Get("/recruiter", h.Recruiter)
	r.Get("/coach", h.Coach)
}

func (h *DashboardHandler) Admin(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	d, err := h.uc.Admin(c.Context(), actor)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAdminDashboardResponse(d))
}

func (h *DashboardHandler) Recruiter(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	d, err := h.uc.Recruiter(c.Context(), actor)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecruiterDashboardResponse(d))
}

func (h *DashboardHandler) Coach(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	d, err := h.uc.Coach(c.Context(), actor)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCoachDashboardResponse(d))
}
