package repository

import (
	"context"
	"encoding/json"
	"time"

	"fsti-hub/internal/database"
	"fsti-hub/internal/domain/community"

	"github.com/google/uuid"
)

type TrafficRepository interface {
	Create(ctx context.Context, tr community.TrafficReport) (community.TrafficReport, error)
	List(ctx context.Context, f community.TrafficFilter) ([]community.TrafficReport, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SeedIfAbsent inserts a report unless an identical road/location/description exists.
	SeedIfAbsent(ctx context.Context, tr community.TrafficReport) (bool, error)
}

type EventRepository interface {
	Create(ctx context.Context, e community.Event) (community.Event, error)
	List(ctx context.Context, f community.EventFilter) ([]community.Event, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SeedIfAbsent inserts an event unless one with the same title and date exists.
	SeedIfAbsent(ctx context.Context, e community.Event) (bool, error)
}

type PostgresTrafficRepository struct {
	db database.DB
}

func NewPostgresTrafficRepository(db database.DB) *PostgresTrafficRepository {
	return &PostgresTrafficRepository{db: db}
}

const trafficColumns = `tr.id, tr.road, tr.report_type, tr.road_status, tr.severity, tr.location_name,
	tr.description, tr.reporter, tr.created_at`

func scanTraffic(row database.Row, extra ...any) (community.TrafficReport, error) {
	var tr community.TrafficReport
	dest := []any{
		&tr.ID, &tr.Road, &tr.Type, &tr.RoadStatus, &tr.Severity, &tr.LocationName,
		&tr.Description, &tr.Reporter, &tr.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return community.TrafficReport{}, err
	}
	return tr, nil
}

func (r *PostgresTrafficRepository) Create(ctx context.Context, tr community.TrafficReport) (community.TrafficReport, error) {
	if tr.ID == uuid.Nil {
		tr.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO traffic_reports AS tr (id, road, report_type, road_status, severity, location_name, description, reporter)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+trafficColumns,
		tr.ID, tr.Road, tr.Type, tr.RoadStatus, tr.Severity, tr.LocationName, tr.Description, tr.Reporter,
	)
	created, err := scanTraffic(row)
	if err != nil {
		return community.TrafficReport{}, mapWriteError(err)
	}
	return created, nil
}

func (r *PostgresTrafficRepository) List(ctx context.Context, f community.TrafficFilter) ([]community.TrafficReport, int, error) {
	var q filter
	if f.Severity != "" {
		q.add("tr.severity = ?", f.Severity)
	}
	where := q.where()
	pageSQL := q.page(f.Limit, f.Offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+trafficColumns+`, COUNT(1) OVER ()
		 FROM traffic_reports tr`+where+`
		 ORDER BY tr.created_at DESC, tr.id`+pageSQL,
		q.args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]community.TrafficReport, 0)
	total := 0
	for rows.Next() {
		tr, err := scanTraffic(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresTrafficRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM traffic_reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresTrafficRepository) SeedIfAbsent(ctx context.Context, tr community.TrafficReport) (bool, error) {
	n, err := r.db.Exec(ctx,
		`INSERT INTO traffic_reports (id, road, report_type, road_status, severity, location_name, description, reporter)
		 SELECT $1, $2, $3, $4, $5, $6, $7, $8
		 WHERE NOT EXISTS (
			SELECT 1 FROM traffic_reports WHERE road = $2 AND location_name = $6 AND description = $7
		 )`,
		uuid.New(), tr.Road, tr.Type, tr.RoadStatus, tr.Severity, tr.LocationName, tr.Description, tr.Reporter,
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type PostgresEventRepository struct {
	db database.DB
}

func NewPostgresEventRepository(db database.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

const eventColumns = `e.id, e.title, e.description, e.organizer, e.event_type, e.starts_on, e.venue,
	e.province, e.image_url, e.tiers, e.created_at`

func scanEvent(row database.Row, extra ...any) (community.Event, error) {
	var e community.Event
	var tiers []byte
	dest := []any{
		&e.ID, &e.Title, &e.Description, &e.Organizer, &e.Type, &e.StartsOn, &e.Venue,
		&e.Province, &e.ImageURL, &tiers, &e.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return community.Event{}, err
	}
	e.Tiers = []community.TicketTier{}
	if len(tiers) > 0 {
		if err := json.Unmarshal(tiers, &e.Tiers); err != nil {
			return community.Event{}, err
		}
	}
	return e, nil
}

func encodeTiers(tiers []community.TicketTier) (string, error) {
	if tiers == nil {
		tiers = []community.TicketTier{}
	}
	b, err := json.Marshal(tiers)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *PostgresEventRepository) Create(ctx context.Context, e community.Event) (community.Event, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	tiers, err := encodeTiers(e.Tiers)
	if err != nil {
		return community.Event{}, err
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO events AS e (id, title, description, organizer, event_type, starts_on, venue, province, image_url, tiers)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb)
		 RETURNING `+eventColumns,
		e.ID, e.Title, e.Description, e.Organizer, e.Type, e.StartsOn, e.Venue, e.Province, e.ImageURL, tiers,
	)
	created, err := scanEvent(row)
	if err != nil {
		return community.Event{}, mapWriteError(err)
	}
	return created, nil
}

func (r *PostgresEventRepository) List(ctx context.Context, f community.EventFilter) ([]community.Event, int, error) {
	var q filter
	if !f.From.IsZero() {
		q.add("e.starts_on >= ?", truncateDay(f.From))
	}
	where := q.where()
	pageSQL := q.page(f.Limit, f.Offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+`, COUNT(1) OVER ()
		 FROM events e`+where+`
		 ORDER BY e.starts_on ASC, e.id`+pageSQL,
		q.args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]community.Event, 0)
	total := 0
	for rows.Next() {
		e, err := scanEvent(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresEventRepository) SeedIfAbsent(ctx context.Context, e community.Event) (bool, error) {
	tiers, err := encodeTiers(e.Tiers)
	if err != nil {
		return false, err
	}
	n, err := r.db.Exec(ctx,
		`INSERT INTO events (id, title, description, organizer, event_type, starts_on, venue, province, image_url, tiers)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb)
		 ON CONFLICT (title, starts_on) DO NOTHING`,
		uuid.New(), e.Title, e.Description, e.Organizer, e.Type, e.StartsOn, e.Venue, e.Province, e.ImageURL, tiers,
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
