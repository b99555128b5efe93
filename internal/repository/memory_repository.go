package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"socialfeed/internal/identity"
	"socialfeed/internal/models"
)

// memoryStore keeps every record in keyed maps. Identifier counters only
// ever grow, so ids are never handed out twice even after deletion.
type memoryStore struct {
	mu sync.RWMutex

	posts    map[int64]models.Post
	comments map[int64]models.Comment
	profiles map[identity.Principal]models.UserProfile
	admins   map[identity.Principal]identity.Principal
	messages map[int64]models.Message

	nextPostID    int64
	nextCommentID int64
	nextMessageID int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		posts:    make(map[int64]models.Post),
		comments: make(map[int64]models.Comment),
		profiles: make(map[identity.Principal]models.UserProfile),
		admins:   make(map[identity.Principal]identity.Principal),
		messages: make(map[int64]models.Message),
	}
}

func newerFirst(a, b models.Post) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.PostID, a.PostID)
}

type memoryPostRepository struct {
	s *memoryStore
}

func (r *memoryPostRepository) Create(_ context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	post.PostID = r.s.nextPostID
	post.LikeCount = 0
	post.CommentCount = 0
	r.s.nextPostID++
	r.s.posts[post.PostID] = *post

	return nil
}

func (r *memoryPostRepository) GetByID(_ context.Context, postID int64) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	post, ok := r.s.posts[postID]
	if !ok {
		return nil, fmt.Errorf("пост с ID %d: %w", postID, models.ErrNotFound)
	}

	return &post, nil
}

func (r *memoryPostRepository) List(_ context.Context, filter PostFilter) ([]models.Post, error) {
	r.s.mu.RLock()
	posts := make([]models.Post, 0, len(r.s.posts))
	for _, post := range r.s.posts {
		if filter.Author != "" && post.Author != filter.Author {
			continue
		}
		if filter.ContentType != "" && post.ContentType != filter.ContentType {
			continue
		}
		posts = append(posts, post)
	}
	r.s.mu.RUnlock()

	switch filter.Order {
	case OrderTrending:
		slices.SortFunc(posts, func(a, b models.Post) int {
			if c := cmp.Compare(b.LikeCount, a.LikeCount); c != 0 {
				return c
			}
			return newerFirst(a, b)
		})
	default:
		slices.SortFunc(posts, newerFirst)
	}

	if filter.Limit > 0 && len(posts) > filter.Limit {
		posts = posts[:filter.Limit]
	}

	return posts, nil
}

func (r *memoryPostRepository) Delete(_ context.Context, postID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[postID]; !ok {
		return fmt.Errorf("пост с ID %d: %w", postID, models.ErrNotFound)
	}
	delete(r.s.posts, postID)

	return nil
}

func (r *memoryPostRepository) IncrementLikes(_ context.Context, postID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	post, ok := r.s.posts[postID]
	if !ok {
		return 0, fmt.Errorf("пост с ID %d: %w", postID, models.ErrNotFound)
	}
	post.LikeCount++
	r.s.posts[postID] = post

	return post.LikeCount, nil
}

type memoryCommentRepository struct {
	s *memoryStore
}

func (r *memoryCommentRepository) Create(_ context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	post, ok := r.s.posts[comment.PostID]
	if !ok {
		return fmt.Errorf("пост с ID %d: %w", comment.PostID, models.ErrNotFound)
	}
	post.CommentCount++
	r.s.posts[comment.PostID] = post

	comment.CommentID = r.s.nextCommentID
	r.s.nextCommentID++
	r.s.comments[comment.CommentID] = *comment

	return nil
}

func (r *memoryCommentRepository) GetByPostID(_ context.Context, postID int64) ([]models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	comments := []models.Comment{}
	for _, comment := range r.s.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	slices.SortFunc(comments, func(a, b models.Comment) int {
		return cmp.Compare(a.CommentID, b.CommentID)
	})

	return comments, nil
}

type memoryProfileRepository struct {
	s *memoryStore
}

func (r *memoryProfileRepository) Get(_ context.Context, principal identity.Principal) (*models.UserProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	profile, ok := r.s.profiles[principal]
	if !ok {
		return nil, fmt.Errorf("профиль %s: %w", principal, models.ErrNotFound)
	}

	return &profile, nil
}

func (r *memoryProfileRepository) Save(_ context.Context, profile *models.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.profiles[profile.Principal] = *profile

	return nil
}

type memoryAdminRepository struct {
	s *memoryStore
}

func (r *memoryAdminRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.s.admins), nil
}

func (r *memoryAdminRepository) Contains(_ context.Context, principal identity.Principal) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.admins[principal]
	return ok, nil
}

func (r *memoryAdminRepository) Add(_ context.Context, principal, addedBy identity.Principal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.admins[principal]; !ok {
		r.s.admins[principal] = addedBy
	}

	return nil
}

func (r *memoryAdminRepository) Bootstrap(_ context.Context, principal, addedBy identity.Principal) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(r.s.admins) > 0 {
		return false, nil
	}
	r.s.admins[principal] = addedBy

	return true, nil
}

type memoryMessageRepository struct {
	s *memoryStore
}

func (r *memoryMessageRepository) Create(_ context.Context, message *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	message.MessageID = r.s.nextMessageID
	r.s.nextMessageID++
	r.s.messages[message.MessageID] = *message

	return nil
}

func (r *memoryMessageRepository) GetConversation(_ context.Context, a, b identity.Principal) ([]models.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	messages := []models.Message{}
	for _, m := range r.s.messages {
		if (m.Sender == a && m.Receiver == b) || (m.Sender == b && m.Receiver == a) {
			messages = append(messages, m)
		}
	}
	slices.SortFunc(messages, func(x, y models.Message) int {
		return cmp.Compare(x.MessageID, y.MessageID)
	})

	return messages, nil
}

type memoryStatsRepository struct {
	s *memoryStore
}

func (r *memoryStatsRepository) Stats(_ context.Context) (*models.StoreStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return &models.StoreStats{
		Posts:    len(r.s.posts),
		Comments: len(r.s.comments),
		Profiles: len(r.s.profiles),
		Admins:   len(r.s.admins),
		Messages: len(r.s.messages),
	}, nil
}

func (r *memoryStatsRepository) Ping(_ context.Context) error {
	return nil
}
