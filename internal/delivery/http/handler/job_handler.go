package handler

import (
	"errors"

	"fsti-hub/internal/delivery/http/dto"
	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

type jobRequest struct {
	Title       string `json:"title" form:"title"`
	Category    string `json:"category" form:"category"`
	Description string `json:"description" form:"description"`
	SalaryRange string `json:"salary_range" form:"salary_range"`
	Location    string `json:"location" form:"location"`
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterRoutes mounts the public board. The router should run the optional
// auth middleware so talent sessions get applied flags and fit scores.
func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

// RegisterRecruiterRoutes expects a router restricted to recruiter sessions.
func (h *JobHandler) RegisterRecruiterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.ListMine)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Patch("/:id/toggle", h.ToggleStatus)
	r.Delete("/:id", h.Delete)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	items, total, err := h.uc.List(c.Context(), viewerFrom(c), usecase.JobQuery{
		Q:        c.Query("q"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Page(c, dto.NewJobItemList(items), limit, offset, total)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	it, err := h.uc.Get(c.Context(), viewerFrom(c), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobItemResponse(it))
}

func (h *JobHandler) ListMine(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	items, total, err := h.uc.ListMine(c.Context(), actor, limit, offset)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Page(c, dto.NewJobList(items), limit, offset, total)
}

// input reads a JSON or multipart body. The TDR document is only accepted as
// a multipart file named tdr.
func (h *JobHandler) input(c fiber.Ctx, files *uploads) (usecase.JobInput, error) {
	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.JobInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	tdr, err := files.file("tdr")
	if err != nil {
		return usecase.JobInput{}, err
	}
	return usecase.JobInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		SalaryRange: req.SalaryRange,
		Location:    req.Location,
		TDR:         tdr,
	}, nil
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	files := multipartUploads(c)
	defer files.Close()

	in, err := h.input(c, files)
	if err != nil {
		return err
	}
	l, err := h.uc.Create(c.Context(), actor, in)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewJobResponse(l))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	files := multipartUploads(c)
	defer files.Close()

	in, err := h.input(c, files)
	if err != nil {
		return err
	}
	l, err := h.uc.Update(c.Context(), actor, id, in)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(l))
}

func (h *JobHandler) ToggleStatus(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	l, err := h.uc.ToggleStatus(c.Context(), actor, id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(l))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), actor, id); err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrRecruiterPending):
		return middleware.NewAppError(fiber.StatusForbidden, "Recruiter account is awaiting verification", nil, err)
	default:
		return mapCommonUsecaseError(err)
	}
}
