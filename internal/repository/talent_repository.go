package repository

import (
	"context"

	"fsti-hub/internal/database"
	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/member"

	"github.com/google/uuid"
)

type TalentRepository interface {
	Create(ctx context.Context, t member.Talent) (member.Talent, error)
	GetByID(ctx context.Context, id uuid.UUID) (member.Talent, error)
	FindCredentialByEmail(ctx context.Context, email string) (account.Credential, error)
	List(ctx context.Context, f member.TalentFilter) ([]member.Talent, int, error)
	UpdateProfile(ctx context.Context, t member.Talent) (member.Talent, error)
	SetCertified(ctx context.Context, id uuid.UUID, certified bool) (member.Talent, error)
	SetStatus(ctx context.Context, id uuid.UUID, status member.TalentStatus) (member.Talent, error)
	SetAccessKeyHash(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresTalentRepository struct {
	db database.DB
}

func NewPostgresTalentRepository(db database.DB) *PostgresTalentRepository {
	return &PostgresTalentRepository{db: db}
}

const talentColumns = `t.id, t.full_name, t.email, t.whatsapp, t.birth_date, t.province, t.category,
	t.education_level, t.bio, t.role_title, t.experience, t.skills, t.is_certified,
	t.profile_image_url, t.cv_url, t.access_key_hash, t.status, t.created_at, t.updated_at`

func scanTalent(row database.Row, extra ...any) (member.Talent, error) {
	var t member.Talent
	dest := []any{
		&t.ID, &t.FullName, &t.Email, &t.WhatsApp, &t.BirthDate, &t.Province, &t.Category,
		&t.EducationLevel, &t.Bio, &t.RoleTitle, &t.Experience, &t.Skills, &t.IsCertified,
		&t.ProfileImageURL, &t.CVURL, &t.AccessKeyHash, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return member.Talent{}, err
	}
	if t.Skills == nil {
		t.Skills = []string{}
	}
	return t, nil
}

func (r *PostgresTalentRepository) Create(ctx context.Context, t member.Talent) (member.Talent, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Skills == nil {
		t.Skills = []string{}
	}
	if t.Status == "" {
		t.Status = member.TalentAvailable
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO talents AS t (id, full_name, email, whatsapp, birth_date, province, category,
			education_level, bio, role_title, experience, skills, is_certified,
			profile_image_url, cv_url, access_key_hash, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING `+talentColumns,
		t.ID, t.FullName, normalizeEmail(t.Email), t.WhatsApp, t.BirthDate, t.Province, t.Category,
		t.EducationLevel, t.Bio, t.RoleTitle, t.Experience, t.Skills, t.IsCertified,
		t.ProfileImageURL, t.CVURL, t.AccessKeyHash, t.Status,
	)
	created, err := scanTalent(row)
	if err != nil {
		return member.Talent{}, mapWriteError(err)
	}
	return created, nil
}

func (r *PostgresTalentRepository) GetByID(ctx context.Context, id uuid.UUID) (member.Talent, error) {
	row := r.db.QueryRow(ctx, `SELECT `+talentColumns+` FROM talents t WHERE t.id = $1`, id)
	t, err := scanTalent(row)
	if err != nil {
		return member.Talent{}, mapReadError(err)
	}
	return t, nil
}

func (r *PostgresTalentRepository) FindCredentialByEmail(ctx context.Context, email string) (account.Credential, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, full_name, access_key_hash FROM talents WHERE email = $1`,
		normalizeEmail(email),
	)
	c := account.Credential{Role: account.RoleTalent}
	if err := row.Scan(&c.PrincipalID, &c.Email, &c.FullName, &c.SecretHash); err != nil {
		return account.Credential{}, mapReadError(err)
	}
	return c, nil
}

func (r *PostgresTalentRepository) List(ctx context.Context, f member.TalentFilter) ([]member.Talent, int, error) {
	var q filter
	q.matchAny([]searchColumn{
		{expr: "t.role_title", weight: 5},
		{expr: "array_to_string(t.skills, ' ')", weight: 3},
		{expr: "t.full_name", weight: 2},
	}, f.Terms)
	if f.Category != "" {
		q.add("t.category = ?", f.Category)
	}
	if f.Province != "" {
		q.add("t.province = ?", f.Province)
	}
	if f.Certified != nil {
		q.add("t.is_certified = ?", *f.Certified)
	}
	if f.Status != "" {
		q.add("t.status = ?", f.Status)
	}
	where := q.where()
	pageSQL := q.page(f.Limit, f.Offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+talentColumns+`, COUNT(1) OVER ()
		 FROM talents t`+where+`
		`+q.orderBy("t.created_at DESC, t.id")+pageSQL,
		q.args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]member.Talent, 0)
	total := 0
	for rows.Next() {
		t, err := scanTalent(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresTalentRepository) UpdateProfile(ctx context.Context, t member.Talent) (member.Talent, error) {
	if t.Skills == nil {
		t.Skills = []string{}
	}
	row := r.db.QueryRow(ctx,
		`UPDATE talents AS t
		 SET full_name = $2, whatsapp = $3, birth_date = $4, province = $5, category = $6,
			education_level = $7, bio = $8, role_title = $9, experience = $10, skills = $11,
			profile_image_url = $12, cv_url = $13, updated_at = now()
		 WHERE t.id = $1
		 RETURNING `+talentColumns,
		t.ID, t.FullName, t.WhatsApp, t.BirthDate, t.Province, t.Category,
		t.EducationLevel, t.Bio, t.RoleTitle, t.Experience, t.Skills,
		t.ProfileImageURL, t.CVURL,
	)
	updated, err := scanTalent(row)
	if err != nil {
		return member.Talent{}, mapReadError(err)
	}
	return updated, nil
}

func (r *PostgresTalentRepository) SetCertified(ctx context.Context, id uuid.UUID, certified bool) (member.Talent, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE talents AS t SET is_certified = $2, updated_at = now() WHERE t.id = $1 RETURNING `+talentColumns,
		id, certified,
	)
	t, err := scanTalent(row)
	if err != nil {
		return member.Talent{}, mapReadError(err)
	}
	return t, nil
}

func (r *PostgresTalentRepository) SetStatus(ctx context.Context, id uuid.UUID, status member.TalentStatus) (member.Talent, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE talents AS t SET status = $2, updated_at = now() WHERE t.id = $1 RETURNING `+talentColumns,
		id, status,
	)
	t, err := scanTalent(row)
	if err != nil {
		return member.Talent{}, mapReadError(err)
	}
	return t, nil
}

func (r *PostgresTalentRepository) SetAccessKeyHash(ctx context.Context, id uuid.UUID, hash string) error {
	n, err := r.db.Exec(ctx, `UPDATE talents SET access_key_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresTalentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM talents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
