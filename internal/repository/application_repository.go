package repository

import (
	"context"

	"fsti-hub/internal/database"
	"fsti-hub/internal/domain/job"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a job.Application) (job.Application, error)
	GetDetail(ctx context.Context, id uuid.UUID) (job.ApplicationDetail, error)
	ListByTalent(ctx context.Context, talentID uuid.UUID) ([]job.Application, error)
	AppliedJobIDs(ctx context.Context, talentID uuid.UUID, jobIDs []uuid.UUID) (map[uuid.UUID]struct{}, error)
	ListForRecruiter(ctx context.Context, f job.ApplicationFilter) ([]job.ApplicationDetail, int, error)
	// Decide moves an application from `from` to `to`. It returns ErrNotFound when
	// no row with that id is still in the `from` state.
	Decide(ctx context.Context, id uuid.UUID, from, to job.ApplicationStatus) (job.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const (
	applicationDetailColumns = `a.id, a.job_id, a.talent_id, a.status, a.created_at, a.updated_at,
	j.title, j.location, j.category, j.recruiter_id, COALESCE(r.company_name, ''),
	t.full_name, t.email, t.whatsapp, t.category, t.role_title, t.skills, t.cv_url, t.profile_image_url, t.is_certified`

	applicationDetailFrom = `
	FROM job_applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN talents t ON t.id = a.talent_id
	LEFT JOIN recruiters r ON r.id = j.recruiter_id`
)

func scanApplicationDetail(row database.Row, extra ...any) (job.ApplicationDetail, error) {
	var d job.ApplicationDetail
	dest := []any{
		&d.ID, &d.JobID, &d.TalentID, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		&d.JobTitle, &d.JobLocation, &d.JobCategory, &d.RecruiterID, &d.CompanyName,
		&d.TalentName, &d.TalentEmail, &d.TalentWhatsApp, &d.TalentCategory, &d.TalentRole,
		&d.TalentSkills, &d.TalentCVURL, &d.TalentImageURL, &d.TalentCertified,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return job.ApplicationDetail{}, err
	}
	if d.TalentSkills == nil {
		d.TalentSkills = []string{}
	}
	return d, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a job.Application) (job.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = job.ApplicationPending
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO job_applications (id, job_id, talent_id, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		a.ID, a.JobID, a.TalentID, a.Status,
	)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return job.Application{}, mapWriteError(err)
	}
	return a, nil
}

func (r *PostgresApplicationRepository) GetDetail(ctx context.Context, id uuid.UUID) (job.ApplicationDetail, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationDetailColumns+applicationDetailFrom+` WHERE a.id = $1`, id)
	d, err := scanApplicationDetail(row)
	if err != nil {
		return job.ApplicationDetail{}, mapReadError(err)
	}
	return d, nil
}

func (r *PostgresApplicationRepository) ListByTalent(ctx context.Context, talentID uuid.UUID) ([]job.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_id, talent_id, status, created_at, updated_at
		 FROM job_applications
		 WHERE talent_id = $1
		 ORDER BY created_at DESC`,
		talentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Application, 0)
	for rows.Next() {
		var a job.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.TalentID, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) AppliedJobIDs(ctx context.Context, talentID uuid.UUID, jobIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	out := make(map[uuid.UUID]struct{}, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_id FROM job_applications WHERE talent_id = $1 AND job_id = ANY($2)`,
		talentID, jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListForRecruiter(ctx context.Context, f job.ApplicationFilter) ([]job.ApplicationDetail, int, error) {
	var q filter
	q.add("j.recruiter_id = ?", f.RecruiterID)
	if f.JobID != nil {
		q.add("a.job_id = ?", *f.JobID)
	}
	where := q.where()
	pageSQL := q.page(f.Limit, f.Offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+applicationDetailColumns+`, COUNT(1) OVER ()`+applicationDetailFrom+where+`
		 ORDER BY a.created_at DESC, a.id`+pageSQL,
		q.args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]job.ApplicationDetail, 0)
	total := 0
	for rows.Next() {
		d, err := scanApplicationDetail(rows, &total)
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

func (r *PostgresApplicationRepository) Decide(ctx context.Context, id uuid.UUID, from, to job.ApplicationStatus) (job.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE job_applications
		 SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2
		 RETURNING id, job_id, talent_id, status, created_at, updated_at`,
		id, from, to,
	)
	var a job.Application
	if err := row.Scan(&a.ID, &a.JobID, &a.TalentID, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return job.Application{}, mapReadError(err)
	}
	return a, nil
}
