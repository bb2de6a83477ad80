package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"personal-site/internal/domain/entity"
	"personal-site/internal/repository"
)

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) repository.ProfileRepository {
	return &ProfileRepo{db: db}
}

func (repo *ProfileRepo) Get(ctx context.Context, id string) (*entity.UserProfile, error) {
	defer observe("profiles_get")()
	const query = `
SELECT id, email, role
FROM users
WHERE id = $1
LIMIT 1`
	var profile entity.UserProfile
	// role は任意フィールド: NULL は「未設定」でロール user として解釈される
	var role sql.NullString
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&profile.ID, &profile.Email, &role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if role.Valid {
		profile.Role = entity.Role(role.String)
	}
	return &profile, nil
}

func (repo *ProfileRepo) Create(ctx context.Context, profile *entity.UserProfile) error {
	defer observe("profiles_create")()
	const query = `
INSERT INTO users (id, email, role)
VALUES ($1, $2, $3)`
	_, err := repo.db.ExecContext(ctx, query, profile.ID, profile.Email, string(profile.Role))
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
