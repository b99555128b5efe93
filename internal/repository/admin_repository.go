package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialfeed/internal/identity"
)

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Count(ctx context.Context) (int, error) {
	var count int

	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admins`); err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте администраторов: %w", err)
	}

	return count, nil
}

func (r *adminRepository) Contains(ctx context.Context, principal identity.Principal) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM admins WHERE principal = $1)`
	if err := r.db.GetContext(ctx, &exists, query, principal); err != nil {
		return false, fmt.Errorf("ошибка при проверке администратора: %w", err)
	}

	return exists, nil
}

func (r *adminRepository) Add(ctx context.Context, principal, addedBy identity.Principal) error {
	query := `
		INSERT INTO admins (principal, added_by)
		VALUES ($1, $2)
		ON CONFLICT (principal) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, principal, addedBy); err != nil {
		return fmt.Errorf("ошибка при добавлении администратора: %w", err)
	}

	return nil
}

func (r *adminRepository) Bootstrap(ctx context.Context, principal, addedBy identity.Principal) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("ошибка при начале транзакции: %w", err)
	}
	defer tx.Rollback()

	// Serializes first-admin claims across every instance sharing the database.
	if _, err := tx.ExecContext(ctx, `LOCK TABLE admins IN EXCLUSIVE MODE`); err != nil {
		return false, fmt.Errorf("ошибка при блокировке таблицы администраторов: %w", err)
	}

	query := `
		INSERT INTO admins (principal, added_by)
		SELECT $1, $2
		WHERE NOT EXISTS (SELECT 1 FROM admins)
	`

	result, err := tx.ExecContext(ctx, query, principal, addedBy)
	if err != nil {
		return false, fmt.Errorf("ошибка при добавлении первого администратора: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("ошибка при сохранении администратора: %w", err)
	}

	return rowsAffected > 0, nil
}
