package repository

import (
	"context"
	"strings"

	"fsti-hub/internal/database"
	"fsti-hub/internal/domain/account"

	"github.com/google/uuid"
)

type AdminRepository interface {
	Create(ctx context.Context, a account.Admin) (account.Admin, error)
	GetByID(ctx context.Context, id uuid.UUID) (account.Admin, error)
	FindCredentialByEmail(ctx context.Context, email string) (account.Credential, error)
}

type PostgresAdminRepository struct {
	db database.DB
}

func NewPostgresAdminRepository(db database.DB) *PostgresAdminRepository {
	return &PostgresAdminRepository{db: db}
}

func (r *PostgresAdminRepository) Create(ctx context.Context, a account.Admin) (account.Admin, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO admins (id, email, full_name, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		a.ID, normalizeEmail(a.Email), a.FullName, a.PasswordHash,
	)
	if err := row.Scan(&a.CreatedAt); err != nil {
		return account.Admin{}, mapWriteError(err)
	}
	a.Email = normalizeEmail(a.Email)
	return a, nil
}

func (r *PostgresAdminRepository) GetByID(ctx context.Context, id uuid.UUID) (account.Admin, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash, created_at FROM admins WHERE id = $1`,
		id,
	)
	var a account.Admin
	if err := row.Scan(&a.ID, &a.Email, &a.FullName, &a.PasswordHash, &a.CreatedAt); err != nil {
		return account.Admin{}, mapReadError(err)
	}
	return a, nil
}

func (r *PostgresAdminRepository) FindCredentialByEmail(ctx context.Context, email string) (account.Credential, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash FROM admins WHERE email = $1`,
		normalizeEmail(email),
	)
	c := account.Credential{Role: account.RoleAdmin}
	if err := row.Scan(&c.PrincipalID, &c.Email, &c.FullName, &c.SecretHash); err != nil {
		return account.Credential{}, mapReadError(err)
	}
	return c, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
