package usecase

import (
	"fsti-hub/internal/domain/coaching"
	"fsti-hub/internal/domain/job"

	"github.com/google/uuid"
)

// EventPublisher pushes marketplace changes to realtime subscribers.
type EventPublisher interface {
	JobPosted(l job.Listing)
	ApplicationCreated(recruiterID uuid.UUID, a job.Application)
	ApplicationDecided(a job.Application)
	AppointmentConfirmed(a coaching.Appointment)
}

type noopEvents struct{}

func (noopEvents) JobPosted(job.Listing)                         {}
func (noopEvents) ApplicationCreated(uuid.UUID, job.Application) {}
func (noopEvents) ApplicationDecided(job.Application)            {}
func (noopEvents) AppointmentConfirmed(coaching.Appointment)     {}

func eventsOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopEvents{}
	}
	return p
}
