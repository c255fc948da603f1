package v1

import (
	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/domain/account"

	"github.com/gofiber/fiber/v3"
)

// RegisterMembers mounts one group per member role plus the coaching routes
// shared by talents and coaches.
func RegisterMembers(r fiber.Router, h Handlers, authed fiber.Handler) {
	if r == nil {
		return
	}

	talent := r.Group("/talent", authed, middleware.RequireRole(account.RoleTalent))
	if h.Talent != nil {
		h.Talent.RegisterSelfRoutes(talent)
	}
	if h.Application != nil {
		h.Application.RegisterTalentRoutes(talent.Group("/applications"))
	}

	if h.Coach != nil {
		h.Coach.RegisterSelfRoutes(r.Group("/coach", authed, middleware.RequireRole(account.RoleCoach)))
	}

	recruiter := r.Group("/recruiter", authed, middleware.RequireRole(account.RoleRecruiter))
	if h.Recruiter != nil {
		h.Recruiter.RegisterSelfRoutes(recruiter)
	}
	RegisterJobs(recruiter, h)

	if h.Coaching != nil {
		h.Coaching.RegisterMemberRoutes(r.Group("/coaching", authed, middleware.RequireRole(account.RoleTalent, account.RoleCoach)))
	}
}
