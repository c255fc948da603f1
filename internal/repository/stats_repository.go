package repository

import (
	"context"
	"time"

	"fsti-hub/internal/database"

	"github.com/google/uuid"
)

type CategoryCount struct {
	Category string
	Count    int
}

// Registration is one row of the recent sign-ups feed across member tables.
type Registration struct {
	ID        uuid.UUID
	Role      string
	FullName  string
	Email     string
	Detail    string
	CreatedAt time.Time
}

type StatsRepository interface {
	CountTalents(ctx context.Context) (int, error)
	CountCoaches(ctx context.Context) (int, error)
	CountRecruiters(ctx context.Context) (int, error)
	CountOpenJobs(ctx context.Context, recruiterID *uuid.UUID) (int, error)
	CountApplicationsByStatus(ctx context.Context, recruiterID *uuid.UUID) (map[string]int, error)
	TalentsPerCategory(ctx context.Context) ([]CategoryCount, error)
	RecentRegistrations(ctx context.Context, limit int) ([]Registration, error)
}

type PostgresStatsRepository struct {
	db database.DB
}

func NewPostgresStatsRepository(db database.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var c int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func (r *PostgresStatsRepository) CountTalents(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(1) FROM talents`)
}

func (r *PostgresStatsRepository) CountCoaches(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(1) FROM coaches`)
}

func (r *PostgresStatsRepository) CountRecruiters(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(1) FROM recruiters`)
}

func (r *PostgresStatsRepository) CountOpenJobs(ctx context.Context, recruiterID *uuid.UUID) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(1) FROM jobs WHERE status = 'open' AND ($1::uuid IS NULL OR recruiter_id = $1)`,
		recruiterID,
	)
}

func (r *PostgresStatsRepository) CountApplicationsByStatus(ctx context.Context, recruiterID *uuid.UUID) (map[string]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.status, COUNT(1)
		 FROM job_applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE $1::uuid IS NULL OR j.recruiter_id = $1
		 GROUP BY a.status`,
		recruiterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{"pending": 0, "accepted": 0, "rejected": 0}
	for rows.Next() {
		var status string
		var c int
		if err := rows.Scan(&status, &c); err != nil {
			return nil, err
		}
		out[status] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresStatsRepository) TalentsPerCategory(ctx context.Context) ([]CategoryCount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(NULLIF(category, ''), 'Other'), COUNT(1)
		 FROM talents
		 GROUP BY 1
		 ORDER BY 2 DESC, 1 ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CategoryCount, 0)
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresStatsRepository) RecentRegistrations(ctx context.Context, limit int) ([]Registration, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, role, full_name, email, detail, created_at FROM (
			SELECT id, 'talent' AS role, full_name, email, category AS detail, created_at FROM talents
			UNION ALL
			SELECT id, 'coach', full_name, email, specialty, created_at FROM coaches
			UNION ALL
			SELECT id, 'recruiter', full_name, email, company_name, created_at FROM recruiters
		 ) reg
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Registration, 0)
	for rows.Next() {
		var reg Registration
		if err := rows.Scan(&reg.ID, &reg.Role, &reg.FullName, &reg.Email, &reg.Detail, &reg.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
