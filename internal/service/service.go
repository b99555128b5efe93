package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"socialfeed/internal/config"
	"socialfeed/internal/identity"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
	"socialfeed/internal/storage"
)

type Service struct {
	Post    PostService
	Comment CommentService
	Profile ProfileService
	Admin   AdminService
	Message MessageService
	Auth    AuthService
	Stats   StatsService
}

// core is shared by all services. Every read and write of the stores
// happens while holding mu, so each operation is applied as a whole
// and never interleaves with another one.
type core struct {
	mu sync.Mutex

	repo          *repository.Repository
	storage       storage.Storage
	validate      *validator.Validate
	now           func() time.Time
	trendingLimit int
}

func newCore(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *core {
	return &core{
		repo:          rep,
		storage:       storage,
		validate:      newValidator(),
		now:           time.Now,
		trendingLimit: cfg.TrendingLimit,
	}
}

// NewService wires the services. storage may be nil, in which case media
// uploads fail with models.ErrStorageUnavailable.
func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	c := newCore(rep, cfg, storage)

	return &Service{
		Post:    NewPostService(c),
		Comment: NewCommentService(c),
		Profile: NewProfileService(c),
		Admin:   NewAdminService(c),
		Message: NewMessageService(c),
		Auth:    NewAuthService(cfg),
		Stats:   NewStatsService(c),
	}
}

func authenticate(caller identity.Principal) error {
	if caller.IsAnonymous() {
		return models.ErrUnauthorized
	}
	return nil
}

func (c *core) isAdmin(ctx context.Context, caller identity.Principal) (bool, error) {
	return c.repo.Admin.Contains(ctx, caller)
}
