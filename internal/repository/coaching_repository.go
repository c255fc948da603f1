package repository

import (
	"context"
	"time"

	"fsti-hub/internal/database"
	"fsti-hub/internal/domain/coaching"

	"github.com/google/uuid"
)

type AssignmentRepository interface {
	Create(ctx context.Context, a coaching.Assignment) (coaching.AssignmentDetail, error)
	GetByID(ctx context.Context, id uuid.UUID) (coaching.AssignmentDetail, error)
	List(ctx context.Context, limit, offset int) ([]coaching.AssignmentDetail, int, error)
	ListForCoach(ctx context.Context, coachID uuid.UUID) ([]coaching.AssignmentDetail, error)
	LatestForTalent(ctx context.Context, talentID uuid.UUID) (coaching.AssignmentDetail, error)
	Exists(ctx context.Context, coachID, talentID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, a coaching.Appointment) (coaching.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (coaching.Appointment, error)
	// Confirm sets a pending appointment to confirmed. ErrNotFound means the row is
	// missing or no longer pending.
	Confirm(ctx context.Context, id uuid.UUID, meetingLink string) (coaching.Appointment, error)
	ListForCoach(ctx context.Context, coachID uuid.UUID, from time.Time) ([]coaching.AppointmentDetail, error)
	ListForTalent(ctx context.Context, talentID uuid.UUID, from time.Time) ([]coaching.AppointmentDetail, error)
	// DeletePending removes a pending appointment. ErrNotFound means the row is
	// missing or already confirmed.
	DeletePending(ctx context.Context, id uuid.UUID) error
}

type PostgresAssignmentRepository struct {
	db database.DB
}

func NewPostgresAssignmentRepository(db database.DB) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{db: db}
}

const (
	assignmentColumns = `ca.id, ca.coach_id, ca.talent_id, ca.created_at,
	c.full_name, c.specialty, c.whatsapp,
	t.full_name, t.category, t.whatsapp, t.role_title`

	assignmentFrom = `
	FROM coach_assignments ca
	JOIN coaches c ON c.id = ca.coach_id
	JOIN talents t ON t.id = ca.talent_id`
)

func scanAssignmentDetail(row database.Row, extra ...any) (coaching.AssignmentDetail, error) {
	var d coaching.AssignmentDetail
	dest := []any{
		&d.ID, &d.CoachID, &d.TalentID, &d.CreatedAt,
		&d.CoachName, &d.CoachSpecialty, &d.CoachWhatsApp,
		&d.TalentName, &d.TalentCategory, &d.TalentWhatsApp, &d.TalentRoleTitle,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return coaching.AssignmentDetail{}, err
	}
	return d, nil
}

func (r *PostgresAssignmentRepository) Create(ctx context.Context, a coaching.Assignment) (coaching.AssignmentDetail, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO coach_assignments (id, coach_id, talent_id) VALUES ($1, $2, $3)`,
		a.ID, a.CoachID, a.TalentID,
	)
	if err != nil {
		return coaching.AssignmentDetail{}, mapWriteError(err)
	}
	return r.GetByID(ctx, a.ID)
}

func (r *PostgresAssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (coaching.AssignmentDetail, error) {
	row := r.db.QueryRow(ctx, `SELECT `+assignmentColumns+assignmentFrom+` WHERE ca.id = $1`, id)
	d, err := scanAssignmentDetail(row)
	if err != nil {
		return coaching.AssignmentDetail{}, mapReadError(err)
	}
	return d, nil
}

func (r *PostgresAssignmentRepository) List(ctx context.Context, limit, offset int) ([]coaching.AssignmentDetail, int, error) {
	var q filter
	pageSQL := q.page(limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+assignmentColumns+`, COUNT(1) OVER ()`+assignmentFrom+`
		 ORDER BY ca.created_at DESC, ca.id`+pageSQL,
		q.args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]coaching.AssignmentDetail, 0)
	total := 0
	for rows.Next() {
		d, err := scanAssignmentDetail(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresAssignmentRepository) ListForCoach(ctx context.Context, coachID uuid.UUID) ([]coaching.AssignmentDetail, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+assignmentColumns+assignmentFrom+`
		 WHERE ca.coach_id = $1
		 ORDER BY t.full_name ASC`,
		coachID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]coaching.AssignmentDetail, 0)
	for rows.Next() {
		d, err := scanAssignmentDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssignmentRepository) LatestForTalent(ctx context.Context, talentID uuid.UUID) (coaching.AssignmentDetail, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+assignmentColumns+assignmentFrom+`
		 WHERE ca.talent_id = $1
		 ORDER BY ca.created_at DESC
		 LIMIT 1`,
		talentID,
	)
	d, err := scanAssignmentDetail(row)
	if err != nil {
		return coaching.AssignmentDetail{}, mapReadError(err)
	}
	return d, nil
}

func (r *PostgresAssignmentRepository) Exists(ctx context.Context, coachID, talentID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM coach_assignments WHERE coach_id = $1 AND talent_id = $2)`,
		coachID, talentID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM coach_assignments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type PostgresAppointmentRepository struct {
	db database.DB
}

func NewPostgresAppointmentRepository(db database.DB) *PostgresAppointmentRepository {
	return &PostgresAppointmentRepository{db: db}
}

const appointmentColumns = `ap.id, ap.coach_id, ap.talent_id, ap.scheduled_at, ap.status, ap.note,
	ap.meeting_link, ap.requested_by, ap.created_at, ap.updated_at`

func scanAppointment(row database.Row, extra ...any) (coaching.Appointment, error) {
	var a coaching.Appointment
	dest := []any{
		&a.ID, &a.CoachID, &a.TalentID, &a.ScheduledAt, &a.Status, &a.Note,
		&a.MeetingLink, &a.RequestedBy, &a.CreatedAt, &a.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return coaching.Appointment{}, err
	}
	return a, nil
}

func (r *PostgresAppointmentRepository) Create(ctx context.Context, a coaching.Appointment) (coaching.Appointment, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = coaching.AppointmentPending
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO appointments AS ap (id, coach_id, talent_id, scheduled_at, status, note, meeting_link, requested_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+appointmentColumns,
		a.ID, a.CoachID, a.TalentID, a.ScheduledAt.UTC(), a.Status, a.Note, a.MeetingLink, a.RequestedBy,
	)
	created, err := scanAppointment(row)
	if err != nil {
		return coaching.Appointment{}, mapWriteError(err)
	}
	return created, nil
}

func (r *PostgresAppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (coaching.Appointment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments ap WHERE ap.id = $1`, id)
	a, err := scanAppointment(row)
	if err != nil {
		return coaching.Appointment{}, mapReadError(err)
	}
	return a, nil
}

func (r *PostgresAppointmentRepository) Confirm(ctx context.Context, id uuid.UUID, meetingLink string) (coaching.Appointment, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE appointments AS ap
		 SET status = $2, meeting_link = $3, updated_at = now()
		 WHERE ap.id = $1 AND ap.status = $4
		 RETURNING `+appointmentColumns,
		id, coaching.AppointmentConfirmed, meetingLink, coaching.AppointmentPending,
	)
	a, err := scanAppointment(row)
	if err != nil {
		return coaching.Appointment{}, mapReadError(err)
	}
	return a, nil
}

func (r *PostgresAppointmentRepository) ListForCoach(ctx context.Context, coachID uuid.UUID, from time.Time) ([]coaching.AppointmentDetail, error) {
	return r.listDetails(ctx, `ap.coach_id = $1`, coachID, from)
}

func (r *PostgresAppointmentRepository) ListForTalent(ctx context.Context, talentID uuid.UUID, from time.Time) ([]coaching.AppointmentDetail, error) {
	return r.listDetails(ctx, `ap.talent_id = $1`, talentID, from)
}

// listDetails returns appointments at or after from. Upcoming ones come first,
// soonest first; past ones follow. A zero from returns every appointment.
func (r *PostgresAppointmentRepository) listDetails(ctx context.Context, cond string, id uuid.UUID, from time.Time) ([]coaching.AppointmentDetail, error) {
	var fromArg *time.Time
	if !from.IsZero() {
		f := from.UTC()
		fromArg = &f
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+appointmentColumns+`, c.full_name, t.full_name
		 FROM appointments ap
		 JOIN coaches c ON c.id = ap.coach_id
		 JOIN talents t ON t.id = ap.talent_id
		 WHERE `+cond+` AND ($2::timestamptz IS NULL OR ap.scheduled_at >= $2)
		 ORDER BY (ap.scheduled_at < now()) ASC, ap.scheduled_at ASC`,
		id, fromArg,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]coaching.AppointmentDetail, 0)
	for rows.Next() {
		var d coaching.AppointmentDetail
		a, err := scanAppointment(rows, &d.CoachName, &d.TalentName)
		if err != nil {
			return nil, err
		}
		d.Appointment = a
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAppointmentRepository) DeletePending(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx,
		`DELETE FROM appointments WHERE id = $1 AND status = $2`,
		id, coaching.AppointmentPending,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
