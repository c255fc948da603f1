package dto

import (
	"time"

	"fsti-hub/internal/domain/community"

	"github.com/google/uuid"
)

type TrafficReportResponse struct {
	ID           uuid.UUID `json:"id"`
	Road         string    `json:"road"`
	Type         string    `json:"type"`
	RoadStatus   string    `json:"road_status"`
	Severity     string    `json:"severity"`
	LocationName string    `json:"location_name"`
	Description  string    `json:"description"`
	Reporter     string    `json:"reporter"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewTrafficReportResponse(tr community.TrafficReport) TrafficReportResponse {
	return TrafficReportResponse{
		ID:           tr.ID,
		Road:         tr.Road,
		Type:         tr.Type,
		RoadStatus:   tr.RoadStatus,
		Severity:     string(tr.Severity),
		LocationName: tr.LocationName,
		Description:  tr.Description,
		Reporter:     tr.Reporter,
		CreatedAt:    tr.CreatedAt,
	}
}

func NewTrafficReportList(items []community.TrafficReport) []TrafficReportResponse {
	out := make([]TrafficReportResponse, 0, len(items))
	for _, tr := range items {
		out = append(out, NewTrafficReportResponse(tr))
	}
	return out
}

type EventResponse struct {
	ID          uuid.UUID              `json:"id"`
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

func NewEventResponse(e community.Event) EventResponse {
	tiers := e.Tiers
	if tiers == nil {
		tiers = []community.TicketTier{}
	}
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Organizer:   e.Organizer,
		Type:        e.Type,
		Date:        e.StartsOn.Format(time.DateOnly),
		Venue:       e.Venue,
		Province:    e.Province,
		ImageURL:    e.ImageURL,
		Tiers:       tiers,
	}
}

func NewEventList(items []community.Event) []EventResponse {
	out := make([]EventResponse, 0, len(items))
	for _, e := range items {
		out = append(out, NewEventResponse(e))
	}
	return out
}
