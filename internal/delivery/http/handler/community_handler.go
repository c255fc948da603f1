package handler

import (
	"strings"
	"time"

	"fsti-hub/internal/delivery/http/dto"
	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/domain/community"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CommunityHandler struct {
	uc usecase.CommunityUsecase
}

type trafficRequest struct {
	Road         string `json:"road"`
	Type         string `json:"type"`
	RoadStatus   string `json:"road_status"`
	Severity     string `json:"severity"`
	LocationName string `json:"location_name"`
	Description  string `json:"description"`
}

type eventRequest struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Organizer   string                 `json:"organizer"`
	Type        string                 `json:"type"`
	Date        string                 `json:"date"`
	Venue       string                 `json:"venue"`
	Province    string                 `json:"province"`
	ImageURL    string                 `json:"image_url"`
	Tiers       []community.TicketTier `json:"tiers"`
}

func NewCommunityHandler(uc usecase.CommunityUsecase) *CommunityHandler {
	return &CommunityHandler{uc: uc}
}

func (h *CommunityHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/traffic", h.ListTraffic)
	r.Get("/events", h.ListEvents)
}

// RegisterMemberRoutes expects a router that admits any signed-in session.
func (h *CommunityHandler) RegisterMemberRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/traffic", h.ReportTraffic)
}

func (h *CommunityHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Delete("/traffic/:id", h.DeleteTraffic)
	r.Post("/events", h.CreateEvent)
	r.Delete("/events/:id", h.DeleteEvent)
}

func (h *CommunityHandler) ListTraffic(c fiber.Ctx) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	items, total, err := h.uc.ListTraffic(c.Context(), c.Query("severity"), limit, offset)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Page(c, dto.NewTrafficReportList(items), limit, offset, total)
}

func (h *CommunityHandler) ReportTraffic(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req trafficRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	tr, err := h.uc.ReportTraffic(c.Context(), actor, usecase.TrafficInput{
		Road:         req.Road,
		Type:         req.Type,
		RoadStatus:   req.RoadStatus,
		Severity:     req.Severity,
		LocationName: req.LocationName,
		Description:  req.Description,
	})
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewTrafficReportResponse(tr))
}

func (h *CommunityHandler) DeleteTraffic(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteTraffic(c.Context(), id); err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// ListEvents hides past events unless past=true.
func (h *CommunityHandler) ListEvents(c fiber.Ctx) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}
	past, err := parseQueryBool(c, "past")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "past must be a boolean", nil, err)
	}

	items, total, err := h.uc.ListEvents(c.Context(), past != nil && *past, limit, offset)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Page(c, dto.NewEventList(items), limit, offset, total)
}

func (h *CommunityHandler) CreateEvent(c fiber.Ctx) error {
	var req eventRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	day, err := time.Parse(time.DateOnly, strings.TrimSpace(req.Date))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "date must be YYYY-MM-DD", nil, err)
	}

	e, err := h.uc.CreateEvent(c.Context(), usecase.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Organizer:   req.Organizer,
		Type:        req.Type,
		StartsOn:    day,
		Venue:       req.Venue,
		Province:    req.Province,
		ImageURL:    req.ImageURL,
		Tiers:       req.Tiers,
	})
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewEventResponse(e))
}

func (h *CommunityHandler) DeleteEvent(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteEvent(c.Context(), id); err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
