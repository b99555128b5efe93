package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialfeed/internal/identity"
	"socialfeed/internal/models"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, principal identity.Principal) (*models.UserProfile, error) {
	var profile models.UserProfile

	query := `SELECT principal, username, bio, profile_picture, updated_at FROM profiles WHERE principal = $1`

	err := r.db.GetContext(ctx, &profile, query, principal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("профиль %s: %w", principal, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении профиля: %w", err)
	}

	return &profile, nil
}

// Save replaces the whole profile record of profile.Principal.
func (r *profileRepository) Save(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO profiles (principal, username, bio, profile_picture, updated_at)
		VALUES (:principal, :username, :bio, :profile_picture, :updated_at)
		ON CONFLICT (principal) DO UPDATE SET
			username = EXCLUDED.username,
			bio = EXCLUDED.bio,
			profile_picture = EXCLUDED.profile_picture,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("ошибка при сохранении профиля: %w", err)
	}

	return nil
}
