package routes

import (
	"time"

	"fsti-hub/internal/delivery/http/handler"
	"fsti-hub/internal/delivery/http/middleware"
	v1 "fsti-hub/internal/delivery/http/routes/v1"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/static"
)

type Options struct {
	CORSOrigins []string
	// FilesDir is served read-only under FilesPrefix. Empty disables it.
	FilesDir    string
	FilesPrefix string
	// Requests per minute and client IP. Zero disables the limiter.
	LoginPerMinute     int
	AssistantPerMinute int
}

type Registry struct {
	health *handler.HealthHandler
	ws     *ws.Handler
	auth   *middleware.AuthMiddleware
	api    v1.Handlers
	opts   Options
}

func NewRegistry(health *handler.HealthHandler, wsHandler *ws.Handler, auth *middleware.AuthMiddleware, api v1.Handlers, opts Options) *Registry {
	if health == nil {
		health = handler.NewHealthHandler(nil)
	}
	if opts.FilesPrefix == "" {
		opts.FilesPrefix = "/files"
	}
	return &Registry{health: health, ws: wsHandler, auth: auth, api: api, opts: opts}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: r.opts.CORSOrigins,
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders: []string{fiber.HeaderAuthorization, fiber.HeaderContentType, middleware.HeaderRequestID},
	}))

	r.registerHealth(app)
	r.registerFiles(app)
	r.registerRealtime(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerFiles(app *fiber.App) {
	if r.opts.FilesDir == "" {
		return
	}
	app.Use(r.opts.FilesPrefix, static.New(r.opts.FilesDir, static.Config{Browse: false, MaxAge: 3600}))
}

func (r *Registry) registerRealtime(app *fiber.App) {
	if r.ws == nil {
		return
	}
	r.ws.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.api, r.auth, v1.Limiters{
		Login:     perIPLimiter(r.opts.LoginPerMinute),
		Assistant: perIPLimiter(r.opts.AssistantPerMinute),
	})
}

func perIPLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return nil
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, "Too many requests, slow down", nil)
		},
	})
}
