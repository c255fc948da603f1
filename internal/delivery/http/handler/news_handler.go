package handler

import (
	"errors"

	"fsti-hub/internal/delivery/http/dto"
	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NewsHandler struct {
	uc usecase.NewsUsecase
}

type articleRequest struct {
	Title      string `json:"title" form:"title"`
	Summary    string `json:"summary" form:"summary"`
	Content    string `json:"content" form:"content"`
	Category   string `json:"category" form:"category"`
	Author     string `json:"author" form:"author"`
	ImageURL   string `json:"image_url" form:"image_url"`
	SourceName string `json:"source_name" form:"source_name"`
	SourceURL  string `json:"source_url" form:"source_url"`
}

type publishRequest struct {
	Published bool `json:"published"`
}

func NewNewsHandler(uc usecase.NewsUsecase) *NewsHandler {
	return &NewsHandler{uc: uc}
}

// RegisterRoutes mounts the public feed. summaryLimiter may be nil.
func (h *NewsHandler) RegisterRoutes(r fiber.Router, summaryLimiter fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	if summaryLimiter != nil {
		r.Post("/:id/summary", summaryLimiter, h.Summarize)
	} else {
		r.Post("/:id/summary", h.Summarize)
	}
}

func (h *NewsHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.AdminList)
	r.Get("/:id", h.AdminGet)
	r.Post("/", h.Create)
	r.Post("/import", h.Import)
	r.Put("/:id", h.Update)
	r.Patch("/:id/publish", h.SetPublished)
	r.Delete("/:id", h.Delete)
}

func (h *NewsHandler) list(c fiber.Ctx, includeDrafts bool) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	items, total, err := h.uc.List(c.Context(), c.Query("category"), includeDrafts, limit, offset)
	if err != nil {
		return mapNewsUsecaseError(err)
	}
	return response.Page(c, dto.NewArticleList(items), limit, offset, total)
}

func (h *NewsHandler) List(c fiber.Ctx) error { return h.list(c, false) }

func (h *NewsHandler) AdminList(c fiber.Ctx) error { return h.list(c, true) }

func (h *NewsHandler) get(c fiber.Ctx, includeDrafts bool) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	v, err := h.uc.Get(c.Context(), id, includeDrafts)
	if err != nil {
		return mapNewsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewArticleDetailResponse(v))
}

func (h *NewsHandler) Get(c fiber.Ctx) error { return h.get(c, false) }

func (h *NewsHandler) AdminGet(c fiber.Ctx) error { return h.get(c, true) }

func (h *NewsHandler) input(c fiber.Ctx, files *uploads) (usecase.ArticleInput, error) {
	var req articleRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.ArticleInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	img, err := files.file("image")
	if err != nil {
		return usecase.ArticleInput{}, err
	}
	return usecase.ArticleInput{
		Title:      req.Title,
		Summary:    req.Summary,
		Content:    req.Content,
		Category:   req.Category,
		Author:     req.Author,
		ImageURL:   req.ImageURL,
		SourceName: req.SourceName,
		SourceURL:  req.SourceURL,
		Image:      img,
	}, nil
}

func (h *NewsHandler) Create(c fiber.Ctx) error {
	files := multipartUploads(c)
	defer files.Close()

	in, err := h.input(c, files)
	if err != nil {
		return err
	}
	a, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapNewsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewArticleResponse(a))
}

func (h *NewsHandler) Update(c fiber.Ctx) error {
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
	a, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return mapNewsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewArticleResponse(a))
}

func (h *NewsHandler) SetPublished(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req publishRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	a, err := h.uc.SetPublished(c.Context(), id, req.Published)
	if err != nil {
		return mapNewsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewArticleResponse(a))
}

func (h *NewsHandler) Delete(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapNewsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *NewsHandler) Summarize(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	summary, err := h.uc.Summarize(c.Context(), id)
	if err != nil {
		return mapNewsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"id": id, "summary": summary})
}

func (h *NewsHandler) Import(c fiber.Ctx) error {
	res, err := h.uc.Import(c.Context())
	if err != nil {
		return mapNewsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]int{"found": res.Found, "inserted": res.Inserted})
}

func mapNewsUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrAssistantDisabled):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Assistant is not configured", nil, err)
	case errors.Is(err, usecase.ErrAssistantFailed):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Assistant is unavailable", nil, err)
	case errors.Is(err, usecase.ErrNewsImportDisabled):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "News import is not configured", nil, err)
	default:
		return mapCommonUsecaseError(err)
	}
}
