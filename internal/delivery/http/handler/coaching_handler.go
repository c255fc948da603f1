package handler

import (
	"errors"

	"fsti-hub/internal/delivery/http/dto"
	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CoachingHandler struct {
	uc usecase.CoachingUsecase
}

type assignRequest struct {
	CoachID  uuid.UUID `json:"coach_id"`
	TalentID uuid.UUID `json:"talent_id"`
}

type appointmentRequest struct {
	// CounterpartID is the coach for a talent session and the talent for a coach session.
	CounterpartID uuid.UUID `json:"counterpart_id"`
	ScheduledAt   string    `json:"scheduled_at"`
	Note          string    `json:"note"`
}

type confirmRequest struct {
	MeetingLink string `json:"meeting_link"`
}

func NewCoachingHandler(uc usecase.CoachingUsecase) *CoachingHandler {
	return &CoachingHandler{uc: uc}
}

func (h *CoachingHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.ListAssignments)
	r.Post("/", h.Assign)
	r.Delete("/:id", h.Unassign)
}

// RegisterMemberRoutes expects a router that admits talents and coaches.
func (h *CoachingHandler) RegisterMemberRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/my-coach", h.MyCoach)
	r.Get("/my-talents", h.MyTalents)

	r.Get("/appointments", h.ListAppointments)
	r.Post("/appointments", h.RequestAppointment)
	r.Patch("/appointments/:id/confirm", h.ConfirmAppointment)
	r.Delete("/appointments/:id", h.CancelAppointment)
}

func (h *CoachingHandler) Assign(c fiber.Ctx) error {
	var req assignRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	d, err := h.uc.Assign(c.Context(), req.CoachID, req.TalentID)
	if err != nil {
		return mapCoachingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewAssignmentResponse(d))
}

func (h *CoachingHandler) ListAssignments(c fiber.Ctx) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	items, total, err := h.uc.ListAssignments(c.Context(), limit, offset)
	if err != nil {
		return mapCoachingUsecaseError(err)
	}
	return response.Page(c, dto.NewAssignmentList(items), limit, offset, total)
}

func (h *CoachingHandler) Unassign(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Unassign(c.Context(), id); err != nil {
		return mapCoachingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *CoachingHandler) MyCoach(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	d, err := h.uc.MyCoach(c.Context(), actor)
	if err != nil {
		return mapCoachingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssignmentResponse(d))
}

func (h *CoachingHandler) MyTalents(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	items, err := h.uc.MyTalents(c.Context(), actor)
	if err != nil {
		return mapCoachingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssignmentList(items))
}

func (h *CoachingHandler) RequestAppointment(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req appointmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	at, err := parseTimestamp(req.ScheduledAt)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "scheduled_at must be an RFC 3339 timestamp", nil, err)
	}

	a, err := h.uc.RequestAppointment(c.Context(), actor, usecase.AppointmentInput{
		CounterpartID: req.CounterpartID,
		ScheduledAt:   at,
		Note:          req.Note,
	})
	if err != nil {
		return mapCoachingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewAppointmentResponse(a))
}

func (h *CoachingHandler) ConfirmAppointment(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req confirmRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
		}
	}

	a, err := h.uc.ConfirmAppointment(c.Context(), actor, id, req.MeetingLink)
	if err != nil {
		return mapCoachingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAppointmentResponse(a))
}

// ListAppointments returns upcoming appointments unless all=true.
func (h *CoachingHandler) ListAppointments(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	all, err := parseQueryBool(c, "all")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "all must be a boolean", nil, err)
	}

	items, err := h.uc.ListAppointments(c.Context(), actor, all == nil || !*all)
	if err != nil {
		return mapCoachingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAppointmentList(items))
}

func (h *CoachingHandler) CancelAppointment(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.CancelAppointment(c.Context(), actor, id); err != nil {
		return mapCoachingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapCoachingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrAlreadyAssigned):
		return middleware.NewAppError(fiber.StatusConflict, "Coach already assigned to this talent", nil, err)
	case errors.Is(err, usecase.ErrNotAssigned):
		return middleware.NewAppError(fiber.StatusForbidden, "No coaching assignment with this member", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Appointment is no longer pending", nil, err)
	default:
		return mapCommonUsecaseError(err)
	}
}
