package handler

import (
	"context"
	"errors"

	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AssistantHandler struct {
	uc usecase.AssistantUsecase
}

type chatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type chatRequest struct {
	Message  string     `json:"message"`
	History  []chatTurn `json:"history"`
	View     string     `json:"view"`
	Province string     `json:"province"`
	Advanced bool       `json:"advanced"`
}

type chatResponse struct {
	Reply    string `json:"reply"`
	Provider string `json:"provider,omitempty"`
	Degraded bool   `json:"degraded"`
}

func NewAssistantHandler(uc usecase.AssistantUsecase) *AssistantHandler {
	return &AssistantHandler{uc: uc}
}

// RegisterRoutes mounts the chat endpoint. limiter may be nil.
func (h *AssistantHandler) RegisterRoutes(r fiber.Router, limiter fiber.Handler) {
	if r == nil {
		return
	}

	if limiter != nil {
		r.Post("/chat", limiter, h.Chat)
	} else {
		r.Post("/chat", h.Chat)
	}
}

func (h *AssistantHandler) Chat(c fiber.Ctx) error {
	var req chatRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	history := make([]usecase.ChatMessage, 0, len(req.History))
	for _, t := range req.History {
		history = append(history, usecase.ChatMessage{Role: t.Role, Text: t.Text})
	}

	out, err := h.uc.Chat(c.Context(), usecase.ChatInput{
		Message:  req.Message,
		History:  history,
		View:     req.View,
		Province: req.Province,
		Advanced: req.Advanced,
	})
	if err != nil {
		return mapAssistantUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, chatResponse{Reply: out.Reply, Provider: out.Provider, Degraded: out.Degraded})
}

func mapAssistantUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrAssistantDisabled):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Assistant is not configured", nil, err)
	case errors.Is(err, context.DeadlineExceeded):
		return middleware.NewAppError(fiber.StatusGatewayTimeout, "Assistant timed out", nil, err)
	default:
		return mapCommonUsecaseError(err)
	}
}
