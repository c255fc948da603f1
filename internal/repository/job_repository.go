package repository

import (
	"context"

	"fsti-hub/internal/database"
	"fsti-hub/internal/domain/job"

	"github.com/google/uuid"
)

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Listing, error)
	List(ctx context.Context, f job.Filter) ([]job.Listing, int, error)
	Update(ctx context.Context, j job.Job) (job.Listing, error)
	SetStatus(ctx context.Context, id uuid.UUID, status job.Status) (job.Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `j.id, j.recruiter_id, j.title, j.category, j.description, j.salary_range,
	j.location, j.status, j.tdr_url, j.created_at, j.updated_at, COALESCE(r.company_name, '')`

func scanListing(row database.Row, extra ...any) (job.Listing, error) {
	var l job.Listing
	dest := []any{
		&l.ID, &l.RecruiterID, &l.Title, &l.Category, &l.Description, &l.SalaryRange,
		&l.Location, &l.Status, &l.TDRURL, &l.CreatedAt, &l.UpdatedAt, &l.CompanyName,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return job.Listing{}, err
	}
	return l, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Listing, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = job.StatusOpen
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, recruiter_id, title, category, description, salary_range, location, status, tdr_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		j.ID, j.RecruiterID, j.Title, j.Category, j.Description, j.SalaryRange, j.Location, j.Status, j.TDRURL,
	)
	if err != nil {
		return job.Listing{}, mapWriteError(err)
	}
	return r.GetByID(ctx, j.ID)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Listing, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs j
		 LEFT JOIN recruiters r ON r.id = j.recruiter_id
		 WHERE j.id = $1`,
		id,
	)
	l, err := scanListing(row)
	if err != nil {
		return job.Listing{}, mapReadError(err)
	}
	return l, nil
}

func (r *PostgresJobRepository) List(ctx context.Context, f job.Filter) ([]job.Listing, int, error) {
	var q filter
	q.matchAny([]searchColumn{{expr: "j.title"}, {expr: "j.location"}, {expr: "j.category"}}, f.Terms)
	if f.Status != "" {
		q.add("j.status = ?", f.Status)
	}
	if f.Category != "" {
		q.add("j.category = ?", f.Category)
	}
	if f.RecruiterID != nil {
		q.add("j.recruiter_id = ?", *f.RecruiterID)
	}
	where := q.where()
	pageSQL := q.page(f.Limit, f.Offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`, COUNT(1) OVER ()
		 FROM jobs j
		 LEFT JOIN recruiters r ON r.id = j.recruiter_id`+where+`
		 ORDER BY j.created_at DESC, j.id`+pageSQL,
		q.args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]job.Listing, 0)
	total := 0
	for rows.Next() {
		l, err := scanListing(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) (job.Listing, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET title = $2, category = $3, description = $4, salary_range = $5, location = $6, tdr_url = $7, updated_at = now()
		 WHERE id = $1`,
		j.ID, j.Title, j.Category, j.Description, j.SalaryRange, j.Location, j.TDRURL,
	)
	if err != nil {
		return job.Listing{}, err
	}
	if n == 0 {
		return job.Listing{}, ErrNotFound
	}
	return r.GetByID(ctx, j.ID)
}

func (r *PostgresJobRepository) SetStatus(ctx context.Context, id uuid.UUID, status job.Status) (job.Listing, error) {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return job.Listing{}, err
	}
	if n == 0 {
		return job.Listing{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
