package handler

import (
	"errors"
	"strings"
	"time"

	"fsti-hub/internal/delivery/http/dto"
	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RegistrationHandler struct {
	uc usecase.RegistrationUsecase
}

type coachRegistrationRequest struct {
	FullName        string `json:"full_name" form:"full_name"`
	Email           string `json:"email" form:"email"`
	Specialty       string `json:"specialty" form:"specialty"`
	ExperienceYears int    `json:"experience_years" form:"experience_years"`
	WhatsApp        string `json:"whatsapp" form:"whatsapp"`
	Motivation      string `json:"motivation" form:"motivation"`
}

type recruiterRegistrationRequest struct {
	FullName    string `json:"full_name" form:"full_name"`
	Email       string `json:"email" form:"email"`
	CompanyName string `json:"company_name" form:"company_name"`
	WhatsApp    string `json:"whatsapp" form:"whatsapp"`
	Motivation  string `json:"motivation" form:"motivation"`
}

func NewRegistrationHandler(uc usecase.RegistrationUsecase) *RegistrationHandler {
	return &RegistrationHandler{uc: uc}
}

func (h *RegistrationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/talent", h.RegisterTalent)
	r.Post("/coach", h.RegisterCoach)
	r.Post("/recruiter", h.RegisterRecruiter)
}

// RegisterAdminRoutes mounts key rotation on an admin-only router.
func (h *RegistrationHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/:role/:id/access-key", h.RotateAccessKey)
}

// RegisterTalent expects multipart/form-data with optional profile_image and cv files.
func (h *RegistrationHandler) RegisterTalent(c fiber.Ctx) error {
	files := multipartUploads(c)
	defer files.Close()

	in := usecase.TalentRegistration{
		FullName:       c.FormValue("full_name"),
		Email:          c.FormValue("email"),
		WhatsApp:       c.FormValue("whatsapp"),
		Province:       c.FormValue("province"),
		Category:       c.FormValue("category"),
		EducationLevel: c.FormValue("education_level"),
		Bio:            c.FormValue("bio"),
		RoleTitle:      c.FormValue("role_title"),
		Experience:     c.FormValue("experience"),
		Skills:         c.FormValue("skills"),
	}
	if raw := strings.TrimSpace(c.FormValue("birth_date")); raw != "" {
		d, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "birth_date must be YYYY-MM-DD", nil, err)
		}
		in.BirthDate = &d
	}

	var err error
	if in.ProfileImage, err = files.file("profile_image"); err != nil {
		return err
	}
	if in.CV, err = files.file("cv"); err != nil {
		return err
	}

	t, key, err := h.uc.RegisterTalent(c.Context(), in)
	if err != nil {
		return mapRegistrationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.RegistrationResponse{Profile: dto.NewTalentResponse(t), AccessKey: key})
}

func (h *RegistrationHandler) RegisterCoach(c fiber.Ctx) error {
	var req coachRegistrationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	co, key, err := h.uc.RegisterCoach(c.Context(), usecase.CoachRegistration{
		FullName:        req.FullName,
		Email:           req.Email,
		Specialty:       req.Specialty,
		ExperienceYears: req.ExperienceYears,
		WhatsApp:        req.WhatsApp,
		Motivation:      req.Motivation,
	})
	if err != nil {
		return mapRegistrationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.RegistrationResponse{Profile: dto.NewCoachResponse(co), AccessKey: key})
}

func (h *RegistrationHandler) RegisterRecruiter(c fiber.Ctx) error {
	var req recruiterRegistrationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rec, key, err := h.uc.RegisterRecruiter(c.Context(), usecase.RecruiterRegistration{
		FullName:    req.FullName,
		Email:       req.Email,
		CompanyName: req.CompanyName,
		WhatsApp:    req.WhatsApp,
		Motivation:  req.Motivation,
	})
	if err != nil {
		return mapRegistrationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.RegistrationResponse{Profile: dto.NewRecruiterResponse(rec), AccessKey: key})
}

func (h *RegistrationHandler) RotateAccessKey(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	role := account.Role(strings.ToLower(c.Params("role")))

	key, err := h.uc.RotateAccessKey(c.Context(), role, id)
	if err != nil {
		return mapRegistrationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"access_key": key, "role": role, "id": id})
}

func mapRegistrationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	default:
		return mapCommonUsecaseError(err)
	}
}
