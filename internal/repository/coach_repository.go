package repository

import (
	"context"

	"fsti-hub/internal/database"
	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/member"

	"github.com/google/uuid"
)

type CoachRepository interface {
	Create(ctx context.Context, c member.Coach) (member.Coach, error)
	GetByID(ctx context.Context, id uuid.UUID) (member.Coach, error)
	FindCredentialByEmail(ctx context.Context, email string) (account.Credential, error)
	List(ctx context.Context, f member.CoachFilter) ([]member.Coach, int, error)
	UpdateProfile(ctx context.Context, c member.Coach) (member.Coach, error)
	SetAccessKeyHash(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresCoachRepository struct {
	db database.DB
}

func NewPostgresCoachRepository(db database.DB) *PostgresCoachRepository {
	return &PostgresCoachRepository{db: db}
}

const coachColumns = `c.id, c.full_name, c.email, c.specialty, c.experience_years, c.whatsapp,
	c.motivation, c.access_key_hash, c.created_at, c.updated_at`

func scanCoach(row database.Row, extra ...any) (member.Coach, error) {
	var c member.Coach
	dest := []any{
		&c.ID, &c.FullName, &c.Email, &c.Specialty, &c.ExperienceYears, &c.WhatsApp,
		&c.Motivation, &c.AccessKeyHash, &c.CreatedAt, &c.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return member.Coach{}, err
	}
	return c, nil
}

func (r *PostgresCoachRepository) Create(ctx context.Context, c member.Coach) (member.Coach, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO coaches AS c (id, full_name, email, specialty, experience_years, whatsapp, motivation, access_key_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+coachColumns,
		c.ID, c.FullName, normalizeEmail(c.Email), c.Specialty, c.ExperienceYears, c.WhatsApp, c.Motivation, c.AccessKeyHash,
	)
	created, err := scanCoach(row)
	if err != nil {
		return member.Coach{}, mapWriteError(err)
	}
	return created, nil
}

func (r *PostgresCoachRepository) GetByID(ctx context.Context, id uuid.UUID) (member.Coach, error) {
	row := r.db.QueryRow(ctx, `SELECT `+coachColumns+` FROM coaches c WHERE c.id = $1`, id)
	c, err := scanCoach(row)
	if err != nil {
		return member.Coach{}, mapReadError(err)
	}
	return c, nil
}

func (r *PostgresCoachRepository) FindCredentialByEmail(ctx context.Context, email string) (account.Credential, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, full_name, access_key_hash FROM coaches WHERE email = $1`,
		normalizeEmail(email),
	)
	cred := account.Credential{Role: account.RoleCoach}
	if err := row.Scan(&cred.PrincipalID, &cred.Email, &cred.FullName, &cred.SecretHash); err != nil {
		return account.Credential{}, mapReadError(err)
	}
	return cred, nil
}

func (r *PostgresCoachRepository) List(ctx context.Context, f member.CoachFilter) ([]member.Coach, int, error) {
	var q filter
	q.matchAny([]searchColumn{{expr: "c.specialty", weight: 5}, {expr: "c.full_name", weight: 3}}, f.Terms)
	where := q.where()
	pageSQL := q.page(f.Limit, f.Offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+coachColumns+`, COUNT(1) OVER ()
		 FROM coaches c`+where+`
		`+q.orderBy("c.created_at DESC, c.id")+pageSQL,
		q.args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]member.Coach, 0)
	total := 0
	for rows.Next() {
		c, err := scanCoach(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresCoachRepository) UpdateProfile(ctx context.Context, c member.Coach) (member.Coach, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE coaches AS c
		 SET full_name = $2, specialty = $3, experience_years = $4, whatsapp = $5, motivation = $6, updated_at = now()
		 WHERE c.id = $1
		 RETURNING `+coachColumns,
		c.ID, c.FullName, c.Specialty, c.ExperienceYears, c.WhatsApp, c.Motivation,
	)
	updated, err := scanCoach(row)
	if err != nil {
		return member.Coach{}, mapReadError(err)
	}
	return updated, nil
}

func (r *PostgresCoachRepository) SetAccessKeyHash(ctx context.Context, id uuid.UUID, hash string) error {
	n, err := r.db.Exec(ctx, `UPDATE coaches SET access_key_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresCoachRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM coaches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
