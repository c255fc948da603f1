package handler

import (
	"strings"
	"time"

	"fsti-hub/internal/delivery/http/dto"
	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type TalentHandler struct {
	uc usecase.TalentUsecase
}

type talentCertificationRequest struct {
	Certified bool `json:"certified"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func NewTalentHandler(uc usecase.TalentUsecase) *TalentHandler {
	return &TalentHandler{uc: uc}
}

func (h *TalentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

// RegisterSelfRoutes expects a router restricted to talent sessions.
func (h *TalentHandler) RegisterSelfRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
}

func (h *TalentHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.AdminList)
	r.Patch("/:id/certification", h.SetCertified)
	r.Patch("/:id/status", h.SetStatus)
	r.Delete("/:id", h.Delete)
}

func (h *TalentHandler) query(c fiber.Ctx) (usecase.TalentQuery, error) {
	limit, offset, err := pagination(c)
	if err != nil {
		return usecase.TalentQuery{}, err
	}
	certified, err := parseQueryBool(c, "certified")
	if err != nil {
		return usecase.TalentQuery{}, middleware.NewAppError(fiber.StatusBadRequest, "certified must be a boolean", nil, err)
	}
	return usecase.TalentQuery{
		Q:         c.Query("q"),
		Category:  c.Query("category"),
		Province:  c.Query("province"),
		Certified: certified,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func (h *TalentHandler) List(c fiber.Ctx) error {
	q, err := h.query(c)
	if err != nil {
		return err
	}

	items, total, err := h.uc.List(c.Context(), q)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Page(c, dto.NewTalentPublicList(items), q.Limit, q.Offset, total)
}

// AdminList returns full profiles and accepts a status filter.
func (h *TalentHandler) AdminList(c fiber.Ctx) error {
	q, err := h.query(c)
	if err != nil {
		return err
	}
	q.Status = c.Query("status")

	items, total, err := h.uc.List(c.Context(), q)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Page(c, dto.NewTalentList(items), q.Limit, q.Offset, total)
}

func (h *TalentHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	t, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTalentPublicResponse(t))
}

func (h *TalentHandler) GetMe(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	t, err := h.uc.Get(c.Context(), actor.ID)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTalentResponse(t))
}

// UpdateMe takes multipart/form-data so the profile image and CV can be replaced.
// Fields left out of the form keep their current value.
func (h *TalentHandler) UpdateMe(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	files := multipartUploads(c)
	defer files.Close()

	in := usecase.TalentUpdate{
		FullName:       formString(c, "full_name"),
		WhatsApp:       formString(c, "whatsapp"),
		Province:       formString(c, "province"),
		Category:       formString(c, "category"),
		EducationLevel: formString(c, "education_level"),
		Bio:            formString(c, "bio"),
		RoleTitle:      formString(c, "role_title"),
		Experience:     formString(c, "experience"),
		Skills:         formString(c, "skills"),
	}
	if raw := formString(c, "birth_date"); raw != nil && strings.TrimSpace(*raw) != "" {
		d, err := time.Parse(time.DateOnly, strings.TrimSpace(*raw))
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "birth_date must be YYYY-MM-DD", nil, err)
		}
		in.BirthDate = &d
	}
	if in.ProfileImage, err = files.file("profile_image"); err != nil {
		return err
	}
	if in.CV, err = files.file("cv"); err != nil {
		return err
	}

	t, err := h.uc.UpdateSelf(c.Context(), actor, in)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTalentResponse(t))
}

func (h *TalentHandler) SetCertified(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req talentCertificationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	t, err := h.uc.SetCertified(c.Context(), id, req.Certified)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTalentResponse(t))
}

func (h *TalentHandler) SetStatus(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	t, err := h.uc.SetStatus(c.Context(), id, req.Status)
	if err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTalentResponse(t))
}

func (h *TalentHandler) Delete(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapMemberUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// mapMemberUsecaseError is shared by the talent, coach and recruiter handlers.
func mapMemberUsecaseError(err error) error {
	return mapRegistrationUsecaseError(err)
}
