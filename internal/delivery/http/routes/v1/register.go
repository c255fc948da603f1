package v1

import (
	"fsti-hub/internal/delivery/http/handler"
	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/domain/account"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Registration *handler.RegistrationHandler
	Talent       *handler.TalentHandler
	Coach        *handler.CoachHandler
	Recruiter    *handler.RecruiterHandler
	Job          *handler.JobHandler
	Application  *handler.ApplicationHandler
	Coaching     *handler.CoachingHandler
	News         *handler.NewsHandler
	Community    *handler.CommunityHandler
	Dashboard    *handler.DashboardHandler
	Assistant    *handler.AssistantHandler
}

// Limiters are optional; nil disables rate limiting on that route.
type Limiters struct {
	Login     fiber.Handler
	Assistant fiber.Handler
}

// Register mounts the v1 API. Public routes are registered before the
// authenticated groups so that a group middleware never runs for them.
func Register(r fiber.Router, h Handlers, auth *middleware.AuthMiddleware, limits Limiters) {
	if r == nil || auth == nil {
		return
	}

	registerPublic(r, h, auth, limits)

	authed := auth.Middleware()
	admin := r.Group("/admin", authed, middleware.RequireRole(account.RoleAdmin))
	RegisterAdmin(admin, h)

	RegisterMembers(r, h, authed)

	if h.Dashboard != nil {
		h.Dashboard.RegisterRoutes(r.Group("/dashboard", authed))
	}
	if h.Auth != nil {
		h.Auth.RegisterSessionRoutes(r.Group("/auth", authed))
	}
	if h.Community != nil {
		h.Community.RegisterMemberRoutes(r.Group("/community", authed))
	}
}

func registerPublic(r fiber.Router, h Handlers, auth *middleware.AuthMiddleware, limits Limiters) {
	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"), limits.Login)
	}
	if h.Registration != nil {
		h.Registration.RegisterRoutes(r.Group("/register"))
	}
	if h.Talent != nil {
		h.Talent.RegisterRoutes(r.Group("/talents"))
	}
	if h.Coach != nil {
		h.Coach.RegisterRoutes(r.Group("/coaches"))
	}
	if h.Recruiter != nil {
		h.Recruiter.RegisterRoutes(r.Group("/recruiters"))
	}
	if h.Job != nil {
		h.Job.RegisterRoutes(r.Group("/jobs", auth.Optional()))
	}
	if h.News != nil {
		h.News.RegisterRoutes(r.Group("/news"), limits.Assistant)
	}
	if h.Community != nil {
		h.Community.RegisterRoutes(r.Group("/community"))
	}
	if h.Assistant != nil {
		h.Assistant.RegisterRoutes(r.Group("/assistant"), limits.Assistant)
	}
}

func RegisterAdmin(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Registration != nil {
		h.Registration.RegisterAdminRoutes(r.Group("/members"))
	}
	if h.Talent != nil {
		h.Talent.RegisterAdminRoutes(r.Group("/talents"))
	}
	if h.Coach != nil {
		h.Coach.RegisterAdminRoutes(r.Group("/coaches"))
	}
	if h.Recruiter != nil {
		h.Recruiter.RegisterAdminRoutes(r.Group("/recruiters"))
	}
	if h.Coaching != nil {
		h.Coaching.RegisterAdminRoutes(r.Group("/assignments"))
	}
	if h.News != nil {
		h.News.RegisterAdminRoutes(r.Group("/news"))
	}
	if h.Community != nil {
		h.Community.RegisterAdminRoutes(r.Group("/community"))
	}
}
