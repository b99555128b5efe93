package service

import (
	"context"
	"fmt"

	"socialfeed/internal/models"
)

type StatsService interface {
	Stats(ctx context.Context) (*models.StoreStats, error)
	Health(ctx context.Context) error
}

type statsService struct {
	*core
}

func NewStatsService(c *core) StatsService {
	return &statsService{core: c}
}

// Stats counts under the core lock so a snapshot never splits a mutation.
func (s *statsService) Stats(ctx context.Context) (*models.StoreStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Stats.Stats(ctx)
}

func (s *statsService) Health(ctx context.Context) error {
	if err := s.repo.Stats.Ping(ctx); err != nil {
		return fmt.Errorf("%w: хранилище не отвечает: %v", models.ErrStorageUnavailable, err)
	}
	return nil
}
