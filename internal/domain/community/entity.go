package community

import (
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

type TrafficReport struct {
	ID           uuid.UUID
	Road         string
	Type         string
	RoadStatus   string
	Severity     Severity
	LocationName string
	Description  string
	Reporter     string
	CreatedAt    time.Time
}

type TrafficFilter struct {
	Severity Severity
	Limit    int
	Offset   int
}

type TicketTier struct {
	Name     string `json:"name" yaml:"name"`
	Price    int64  `json:"price" yaml:"price"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

type Event struct {
	ID          uuid.UUID
	Title       string
	Description string
	Organizer   string
	Type        string
	StartsOn    time.Time
	Venue       string
	Province    string
	ImageURL    string
	Tiers       []TicketTier
	CreatedAt   time.Time
}

type EventFilter struct {
	// From hides events that start before it. Zero shows everything.
	From   time.Time
	Limit  int
	Offset int
}
