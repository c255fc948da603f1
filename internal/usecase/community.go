package usecase

import (
	"context"
	"strings"
	"time"

	"fsti-hub/internal/domain/community"
	"fsti-hub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TrafficInput struct {
	Road         string
	Type         string
	RoadStatus   string
	Severity     string
	LocationName string
	Description  string
}

type EventInput struct {
	Title       string
	Description string
	Organizer   string
	Type        string
	StartsOn    time.Time
	Venue       string
	Province    string
	ImageURL    string
	Tiers       []community.TicketTier
}

type CommunityUsecase interface {
	ListTraffic(ctx context.Context, severity string, limit, offset int) ([]community.TrafficReport, int, error)
	ReportTraffic(ctx context.Context, actor Actor, in TrafficInput) (community.TrafficReport, error)
	DeleteTraffic(ctx context.Context, id uuid.UUID) error
	ListEvents(ctx context.Context, includePast bool, limit, offset int) ([]community.Event, int, error)
	CreateEvent(ctx context.Context, in EventInput) (community.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type Community struct {
	traffic repository.TrafficRepository
	events  repository.EventRepository
	logger  *zap.Logger
	now     func() time.Time
}

func NewCommunityUsecase(traffic repository.TrafficRepository, events repository.EventRepository, logger *zap.Logger) *Community {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Community{traffic: traffic, events: events, logger: logger, now: time.Now}
}

func (u *Community) ListTraffic(ctx context.Context, severity string, limit, offset int) ([]community.TrafficReport, int, error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	sev := community.Severity(strings.TrimSpace(severity))
	if sev != "" && !sev.Valid() {
		return nil, 0, ErrInvalidInput
	}
	items, total, err := u.traffic.List(ctx, community.TrafficFilter{Severity: sev, Limit: limit, Offset: offset})
	if err != nil {
		u.logger.Error("traffic list failed", zap.Error(err))
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

// ReportTraffic records a report from a signed-in member. The reporter is the
// member's email.
func (u *Community) ReportTraffic(ctx context.Context, actor Actor, in TrafficInput) (community.TrafficReport, error) {
	sev := community.Severity(strings.TrimSpace(in.Severity))
	if !sev.Valid() || !required(in.Road, in.Type, in.LocationName) {
		return community.TrafficReport{}, ErrInvalidInput
	}
	reporter := actor.Email
	if reporter == "" {
		reporter = string(actor.Role)
	}
	tr, err := u.traffic.Create(ctx, community.TrafficReport{
		Road:         strings.ToUpper(strings.TrimSpace(in.Road)),
		Type:         strings.TrimSpace(in.Type),
		RoadStatus:   strings.TrimSpace(in.RoadStatus),
		Severity:     sev,
		LocationName: strings.TrimSpace(in.LocationName),
		Description:  strings.TrimSpace(in.Description),
		Reporter:     reporter,
	})
	if err != nil {
		return community.TrafficReport{}, mapReadError(err)
	}
	return tr, nil
}

func (u *Community) DeleteTraffic(ctx context.Context, id uuid.UUID) error {
	if err := u.traffic.Delete(ctx, id); err != nil {
		return mapReadError(err)
	}
	return nil
}

func (u *Community) ListEvents(ctx context.Context, includePast bool, limit, offset int) ([]community.Event, int, error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	f := community.EventFilter{Limit: limit, Offset: offset}
	if !includePast {
		f.From = u.now()
	}
	items, total, err := u.events.List(ctx, f)
	if err != nil {
		u.logger.Error("event list failed", zap.Error(err))
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

func (u *Community) CreateEvent(ctx context.Context, in EventInput) (community.Event, error) {
	if !required(in.Title, in.Venue) || in.StartsOn.IsZero() {
		return community.Event{}, ErrInvalidInput
	}
	for _, t := range in.Tiers {
		if strings.TrimSpace(t.Name) == "" || t.Price < 0 || t.Capacity < 0 {
			return community.Event{}, ErrInvalidInput
		}
	}
	e, err := u.events.Create(ctx, community.Event{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Organizer:   strings.TrimSpace(in.Organizer),
		Type:        strings.TrimSpace(in.Type),
		StartsOn:    in.StartsOn,
		Venue:       strings.TrimSpace(in.Venue),
		Province:    strings.TrimSpace(in.Province),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Tiers:       in.Tiers,
	})
	if err != nil {
		return community.Event{}, mapReadError(err)
	}
	return e, nil
}

func (u *Community) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := u.events.Delete(ctx, id); err != nil {
		return mapReadError(err)
	}
	return nil
}
