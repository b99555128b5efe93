package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialfeed/internal/models"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Stats(ctx context.Context) (*models.StoreStats, error) {
	var stats models.StoreStats

	err := r.db.GetContext(ctx, &stats, `
			SELECT
				(SELECT COUNT(*) FROM posts) AS posts,
				(SELECT COUNT(*) FROM comments) AS comments,
				(SELECT COUNT(*) FROM profiles) AS profiles,
				(SELECT COUNT(*) FROM admins) AS admins,
				(SELECT COUNT(*) FROM messages) AS messages
		`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при подсчёте записей: %w", err)
	}

	return &stats, nil
}

func (r *statsRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
