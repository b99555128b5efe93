package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"socialfeed/internal/identity"
	"socialfeed/internal/models"
)

type PostOrder int

const (
	// OrderNewest sorts by timestamp descending, ties by id descending.
	OrderNewest PostOrder = iota
	// OrderTrending sorts by like count descending, then OrderNewest.
	OrderTrending
)

// PostFilter narrows a post listing. Zero values mean "no restriction".
type PostFilter struct {
	Author      identity.Principal
	ContentType models.ContentType
	Order       PostOrder
	Limit       int
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]models.Post, error)
	Delete(ctx context.Context, postID int64) error
	IncrementLikes(ctx context.Context, postID int64) (int64, error)
}

type CommentRepository interface {
	// Create stores the comment and bumps the parent's comment count as one
	// unit. A missing post yields models.ErrNotFound and stores nothing.
	Create(ctx context.Context, comment *models.Comment) error
	GetByPostID(ctx context.Context, postID int64) ([]models.Comment, error)
}

type ProfileRepository interface {
	Get(ctx context.Context, principal identity.Principal) (*models.UserProfile, error)
	Save(ctx context.Context, profile *models.UserProfile) error
}

type AdminRepository interface {
	Count(ctx context.Context) (int, error)
	Contains(ctx context.Context, principal identity.Principal) (bool, error)
	Add(ctx context.Context, principal, addedBy identity.Principal) error
	// Bootstrap adds principal only while the admin set is empty and
	// reports whether it did.
	Bootstrap(ctx context.Context, principal, addedBy identity.Principal) (bool, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetConversation(ctx context.Context, a, b identity.Principal) ([]models.Message, error)
}

type StatsRepository interface {
	Stats(ctx context.Context) (*models.StoreStats, error)
	Ping(ctx context.Context) error
}

type Repository struct {
	Post    PostRepository
	Comment CommentRepository
	Profile ProfileRepository
	Admin   AdminRepository
	Message MessageRepository
	Stats   StatsRepository
}

// NewRepository returns the Postgres-backed repositories.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Profile: NewProfileRepository(db),
		Admin:   NewAdminRepository(db),
		Message: NewMessageRepository(db),
		Stats:   NewStatsRepository(db),
	}
}

// NewMemoryRepository returns repositories sharing one in-memory store.
func NewMemoryRepository() *Repository {
	store := newMemoryStore()
	return &Repository{
		Post:    &memoryPostRepository{store},
		Comment: &memoryCommentRepository{store},
		Profile: &memoryProfileRepository{store},
		Admin:   &memoryAdminRepository{store},
		Message: &memoryMessageRepository{store},
		Stats:   &memoryStatsRepository{store},
	}
}
