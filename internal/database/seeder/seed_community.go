package seeder

import (
	"context"
	"time"

	"fsti-hub/internal/domain/community"
	"fsti-hub/internal/repository"
)

type TrafficSeeder struct {
	Repo  repository.TrafficRepository
	Items []TrafficFixture
}

func (TrafficSeeder) Name() string { return "traffic_reports" }

func (TrafficSeeder) Table() (string, []string) {
	return "traffic_reports", []string{"id", "road", "report_type", "road_status", "severity", "location_name", "description", "reporter"}
}

func (s TrafficSeeder) Run(ctx context.Context) (int, error) {
	inserted := 0
	for _, it := range s.Items {
		ok, err := s.Repo.SeedIfAbsent(ctx, community.TrafficReport{
			Road:         it.Road,
			Type:         it.Type,
			RoadStatus:   it.Status,
			Severity:     it.Severity,
			LocationName: it.Location,
			Description:  it.Description,
			Reporter:     it.Reporter,
		})
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

type EventSeeder struct {
	Repo  repository.EventRepository
	Items []EventFixture
}

func (EventSeeder) Name() string { return "events" }

func (EventSeeder) Table() (string, []string) {
	return "events", []string{"id", "title", "starts_on", "venue", "province", "tiers"}
}

func (s EventSeeder) Run(ctx context.Context) (int, error) {
	inserted := 0
	for _, it := range s.Items {
		day, err := time.Parse(time.DateOnly, it.Date)
		if err != nil {
			return inserted, err
		}
		ok, err := s.Repo.SeedIfAbsent(ctx, community.Event{
			Title:       it.Title,
			Description: it.Description,
			Organizer:   it.Organizer,
			Type:        it.Type,
			StartsOn:    day,
			Venue:       it.Venue,
			Province:    it.Province,
			ImageURL:    it.Image,
			Tiers:       it.Tiers,
		})
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}
