package handler

import (
	"errors"
	"strings"

	"fsti-hub/internal/delivery/http/dto"
	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type applyRequest struct {
	JobID uuid.UUID `json:"job_id"`
}

type decisionRequest struct {
	Status string `json:"status"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// RegisterTalentRoutes expects a router restricted to talent sessions.
func (h *ApplicationHandler) RegisterTalentRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Apply)
	r.Get("/mine", h.ListMine)
}

// RegisterRecruiterRoutes expects a router restricted to recruiter sessions.
func (h *ApplicationHandler) RegisterRecruiterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.ListForRecruiter)
	r.Patch("/:id", h.Decide)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if req.JobID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "job_id is required", nil, nil)
	}

	a, err := h.uc.Apply(c.Context(), actor, req.JobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), actor)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationList(items))
}

func (h *ApplicationHandler) ListForRecruiter(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	var jobID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("job_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job_id", nil, err)
		}
		jobID = &id
	}

	items, total, err := h.uc.ListForRecruiter(c.Context(), actor, jobID, limit, offset)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Page(c, dto.NewApplicationDetailList(items), limit, offset, total)
}

func (h *ApplicationHandler) Decide(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req decisionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	d, err := h.uc.Decide(c.Context(), actor, id, req.Status)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDecisionResponse(d))
}

func mapApplicationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobClosed):
		return middleware.NewAppError(fiber.StatusConflict, "Job is closed", nil, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied to this job", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Application already decided", nil, err)
	default:
		return mapCommonUsecaseError(err)
	}
}
