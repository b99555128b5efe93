package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialfeed/internal/models"
)

type CommentRepositoryImpl struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepositoryImpl {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}
	defer tx.Rollback()

	// The update takes the post row lock, so a concurrent delete waits.
	result, err := tx.ExecContext(ctx,
		`UPDATE posts SET comment_count = comment_count + 1 WHERE post_id = $1`, comment.PostID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении счетчика комментариев: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %d: %w", comment.PostID, models.ErrNotFound)
	}

	query := `
		INSERT INTO comments (post_id, author, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING comment_id
	`

	err = tx.QueryRowxContext(ctx, query,
		comment.PostID,
		comment.Author,
		comment.Content,
		comment.CreatedAt,
	).Scan(&comment.CommentID)
	if err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при сохранении комментария: %w", err)
	}

	return nil
}

func (r *CommentRepositoryImpl) GetByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
		SELECT comment_id, post_id, author, content, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY comment_id
	`

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}
