package routes

import (
	"fsti-hub/internal/delivery/http/middleware"
	v1 "fsti-hub/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, h v1.Handlers, auth *middleware.AuthMiddleware, limits v1.Limiters) {
	if r == nil {
		return
	}

	v1.Register(r, h, auth, limits)
}
