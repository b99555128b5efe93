package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"socialfeed/internal/models"
)

const postColumns = `post_id, author, content, content_type, media_ref, media_url, is_video, created_at, like_count, comment_count`

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts
        (author, content, content_type, media_ref, media_url, is_video, created_at, like_count, comment_count)
        VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0)
        RETURNING post_id
    `

	err := r.db.QueryRowxContext(ctx, query,
		post.Author,
		post.Content,
		post.ContentType,
		post.MediaRef,
		post.MediaURL,
		post.IsVideo,
		post.CreatedAt,
	).Scan(&post.PostID)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	post.LikeCount = 0
	post.CommentCount = 0
	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %d: %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.Author != "" {
		args = append(args, filter.Author)
		conditions = append(conditions, fmt.Sprintf("author = $%d", len(args)))
	}
	if filter.ContentType != "" {
		args = append(args, filter.ContentType)
		conditions = append(conditions, fmt.Sprintf("content_type = $%d", len(args)))
	}

	var query strings.Builder
	query.WriteString(`SELECT ` + postColumns + ` FROM posts`)
	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	switch filter.Order {
	case OrderTrending:
		query.WriteString(" ORDER BY like_count DESC, created_at DESC, post_id DESC")
	default:
		query.WriteString(" ORDER BY created_at DESC, post_id DESC")
	}

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query.String(), args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID int64) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %d: %w", postID, models.ErrNotFound)
	}

	return nil
}

func (r *PostRepositoryImpl) IncrementLikes(ctx context.Context, postID int64) (int64, error) {
	query := `UPDATE posts SET like_count = like_count + 1 WHERE post_id = $1 RETURNING like_count`

	var likes int64
	err := r.db.QueryRowxContext(ctx, query, postID).Scan(&likes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("пост с ID %d: %w", postID, models.ErrNotFound)
		}
		return 0, fmt.Errorf("ошибка при обновлении лайков: %w", err)
	}

	return likes, nil
}
