package repository

import (
	"context"

	"fsti-hub/internal/database"
	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/member"

	"github.com/google/uuid"
)

type RecruiterRepository interface {
	Create(ctx context.Context, rec member.Recruiter) (member.Recruiter, error)
	GetByID(ctx context.Context, id uuid.UUID) (member.Recruiter, error)
	FindCredentialByEmail(ctx context.Context, email string) (account.Credential, error)
	List(ctx context.Context, f member.RecruiterFilter) ([]member.Recruiter, int, error)
	UpdateProfile(ctx context.Context, rec member.Recruiter) (member.Recruiter, error)
	SetStatus(ctx context.Context, id uuid.UUID, status member.RecruiterStatus) (member.Recruiter, error)
	SetAccessKeyHash(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresRecruiterRepository struct {
	db database.DB
}

func NewPostgresRecruiterRepository(db database.DB) *PostgresRecruiterRepository {
	return &PostgresRecruiterRepository{db: db}
}

const recruiterColumns = `r.id, r.full_name, r.email, r.company_name, r.whatsapp, r.motivation,
	r.status, r.access_key_hash, r.created_at, r.updated_at`

func scanRecruiter(row database.Row, extra ...any) (member.Recruiter, error) {
	var rec member.Recruiter
	dest := []any{
		&rec.ID, &rec.FullName, &rec.Email, &rec.CompanyName, &rec.WhatsApp, &rec.Motivation,
		&rec.Status, &rec.AccessKeyHash, &rec.CreatedAt, &rec.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return member.Recruiter{}, err
	}
	return rec, nil
}

func (r *PostgresRecruiterRepository) Create(ctx context.Context, rec member.Recruiter) (member.Recruiter, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Status == "" {
		rec.Status = member.RecruiterPending
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO recruiters AS r (id, full_name, email, company_name, whatsapp, motivation, status, access_key_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+recruiterColumns,
		rec.ID, rec.FullName, normalizeEmail(rec.Email), rec.CompanyName, rec.WhatsApp, rec.Motivation, rec.Status, rec.AccessKeyHash,
	)
	created, err := scanRecruiter(row)
	if err != nil {
		return member.Recruiter{}, mapWriteError(err)
	}
	return created, nil
}

func (r *PostgresRecruiterRepository) GetByID(ctx context.Context, id uuid.UUID) (member.Recruiter, error) {
	row := r.db.QueryRow(ctx, `SELECT `+recruiterColumns+` FROM recruiters r WHERE r.id = $1`, id)
	rec, err := scanRecruiter(row)
	if err != nil {
		return member.Recruiter{}, mapReadError(err)
	}
	return rec, nil
}

func (r *PostgresRecruiterRepository) FindCredentialByEmail(ctx context.Context, email string) (account.Credential, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, full_name, access_key_hash FROM recruiters WHERE email = $1`,
		normalizeEmail(email),
	)
	cred := account.Credential{Role: account.RoleRecruiter}
	if err := row.Scan(&cred.PrincipalID, &cred.Email, &cred.FullName, &cred.SecretHash); err != nil {
		return account.Credential{}, mapReadError(err)
	}
	return cred, nil
}

func (r *PostgresRecruiterRepository) List(ctx context.Context, f member.RecruiterFilter) ([]member.Recruiter, int, error) {
	var q filter
	q.matchAny([]searchColumn{{expr: "r.company_name", weight: 5}, {expr: "r.full_name", weight: 3}}, f.Terms)
	if f.Status != "" {
		q.add("r.status = ?", f.Status)
	}
	where := q.where()
	pageSQL := q.page(f.Limit, f.Offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+recruiterColumns+`, COUNT(1) OVER ()
		 FROM recruiters r`+where+`
		`+q.orderBy("r.created_at DESC, r.id")+pageSQL,
		q.args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]member.Recruiter, 0)
	total := 0
	for rows.Next() {
		rec, err := scanRecruiter(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresRecruiterRepository) UpdateProfile(ctx context.Context, rec member.Recruiter) (member.Recruiter, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE recruiters AS r
		 SET full_name = $2, company_name = $3, whatsapp = $4, motivation = $5, updated_at = now()
		 WHERE r.id = $1
		 RETURNING `+recruiterColumns,
		rec.ID, rec.FullName, rec.CompanyName, rec.WhatsApp, rec.Motivation,
	)
	updated, err := scanRecruiter(row)
	if err != nil {
		return member.Recruiter{}, mapReadError(err)
	}
	return updated, nil
}

func (r *PostgresRecruiterRepository) SetStatus(ctx context.Context, id uuid.UUID, status member.RecruiterStatus) (member.Recruiter, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE recruiters AS r SET status = $2, updated_at = now() WHERE r.id = $1 RETURNING `+recruiterColumns,
		id, status,
	)
	rec, err := scanRecruiter(row)
	if err != nil {
		return member.Recruiter{}, mapReadError(err)
	}
	return rec, nil
}

func (r *PostgresRecruiterRepository) SetAccessKeyHash(ctx context.Context, id uuid.UUID, hash string) error {
	n, err := r.db.Exec(ctx, `UPDATE recruiters SET access_key_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRecruiterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM recruiters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
