package service

import (
	"context"
	"strings"

	"socialfeed/internal/identity"
	"socialfeed/internal/models"
)

type CommentService interface {
	AddComment(ctx context.Context, caller identity.Principal, postID int64, text string) (*models.Comment, error)
	GetComments(ctx context.Context, caller identity.Principal, postID int64) ([]models.Comment, error)
}

type commentService struct {
	*core
}

func NewCommentService(c *core) CommentService {
	return &commentService{core: c}
}

func (s *commentService) AddComment(ctx context.Context, caller identity.Principal, postID int64, text string) (*models.Comment, error) {
	if err := authenticate(caller); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("комментарий не может быть пустым")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	comment := &models.Comment{
		PostID:    postID,
		Author:    caller,
		Content:   text,
		CreatedAt: s.now(),
	}

	// Create bumps the post's comment count in the same unit.
	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// GetComments also answers for posts that were deleted, their comments stay.
func (s *commentService) GetComments(ctx context.Context, caller identity.Principal, postID int64) ([]models.Comment, error) {
	if err := authenticate(caller); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Comment.GetByPostID(ctx, postID)
}
