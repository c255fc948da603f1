package ws

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const TopicJobs = "jobs"

var ErrInvalidTopic = errors.New("invalid topic")

func RecruiterTopic(id uuid.UUID) string { return "recruiter:" + id.String() }

func TalentTopic(id uuid.UUID) string { return "talent:" + id.String() }

func CoachTopic(id uuid.UUID) string { return "coach:" + id.String() }

// ParseTopic splits a topic into its kind and owner. The public jobs topic has
// no owner.
func ParseTopic(topic string) (kind string, owner uuid.UUID, err error) {
	topic = strings.TrimSpace(topic)
	if topic == TopicJobs {
		return TopicJobs, uuid.Nil, nil
	}
	kind, rawID, ok := strings.Cut(topic, ":")
	if !ok {
		return "", uuid.Nil, ErrInvalidTopic
	}
	switch kind {
	case "recruiter", "talent", "coach":
	default:
		return "", uuid.Nil, ErrInvalidTopic
	}
	id, err := uuid.Parse(rawID)
	if err != nil || id == uuid.Nil {
		return "", uuid.Nil, ErrInvalidTopic
	}
	return kind, id, nil
}
