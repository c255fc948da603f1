package v1

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterJobs mounts job management and application review on a router
// restricted to recruiter sessions.
func RegisterJobs(recruiter fiber.Router, h Handlers) {
	if recruiter == nil {
		return
	}

	if h.Job != nil {
		h.Job.RegisterRecruiterRoutes(recruiter.Group("/jobs"))
	}
	if h.Application != nil {
		h.Application.RegisterRecruiterRoutes(recruiter.Group("/applications"))
	}
}
