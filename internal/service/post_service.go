package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"socialfeed/internal/identity"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
	"socialfeed/internal/storage"
)

type CreatePostRequest struct {
	Content     string             `json:"content"`
	ContentType models.ContentType `json:"contentType" validate:"required,oneof=text image video shortVideo"`
}

type UploadMediaRequest struct {
	Caption     string             `validate:"max=2200"`
	ContentType models.ContentType `validate:"required,oneof=image video shortVideo"`
	IsVideo     bool
	FileName    string    `validate:"required"`
	Body        io.Reader `validate:"required"`
	Size        int64
	Progress    storage.ProgressFunc
}

type PostService interface {
	CreatePost(ctx context.Context, caller identity.Principal, req CreatePostRequest) (*models.Post, error)
	UploadMedia(ctx context.Context, caller identity.Principal, req UploadMediaRequest) (*models.Post, error)
	GetAllPosts(ctx context.Context, caller identity.Principal) ([]models.Post, error)
	GetUserPosts(ctx context.Context, caller, author identity.Principal) ([]models.Post, error)
	GetShortVideos(ctx context.Context, caller identity.Principal) ([]models.Post, error)
	GetTrendingPosts(ctx context.Context, caller identity.Principal) ([]models.Post, error)
	DeletePost(ctx context.Context, caller identity.Principal, postID int64) error
	LikePost(ctx context.Context, caller identity.Principal, postID int64) (int64, error)
}

type postService struct {
	*core
}

func NewPostService(c *core) PostService {
	return &postService{core: c}
}

func (p *postService) CreatePost(ctx context.Context, caller identity.Principal, req CreatePostRequest) (*models.Post, error) {
	if err := authenticate(caller); err != nil {
		return nil, err
	}

	if err := p.check(req); err != nil {
		return nil, err
	}

	// a text post has nothing to show besides its content
	if req.ContentType == models.ContentText && strings.TrimSpace(req.Content) == "" {
		return nil, invalid("текст поста не может быть пустым")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	post := &models.Post{
		Author:      caller,
		Content:     req.Content,
		ContentType: req.ContentType,
		IsVideo:     isVideoType(req.ContentType),
		CreatedAt:   p.now(),
	}

	if err := p.repo.Post.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) UploadMedia(ctx context.Context, caller identity.Principal, req UploadMediaRequest) (*models.Post, error) {
	if err := authenticate(caller); err != nil {
		return nil, err
	}

	if err := p.check(req); err != nil {
		return nil, err
	}

	if p.storage == nil {
		return nil, models.ErrStorageUnavailable
	}

	// the transfer happens outside the lock, only the reference is committed
	ref, url, err := p.storage.Upload(ctx, storage.Upload{
		Owner:    caller,
		Folder:   "posts",
		FileName: req.FileName,
		Body:     req.Body,
		Size:     req.Size,
		Progress: req.Progress,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	post := &models.Post{
		Author:      caller,
		Content:     strings.TrimSpace(req.Caption),
		ContentType: req.ContentType,
		MediaRef:    ref,
		MediaURL:    url,
		IsVideo:     req.IsVideo || isVideoType(req.ContentType),
		CreatedAt:   p.now(),
	}

	if err := p.repo.Post.Create(ctx, post); err != nil {
		if delErr := p.storage.Delete(ctx, ref); delErr != nil {
			log.Printf("Предупреждение: не удалось удалить медиа %s: %v", ref, delErr)
		}
		return nil, err
	}

	return post, nil
}

func (p *postService) list(ctx context.Context, caller identity.Principal, filter repository.PostFilter) ([]models.Post, error) {
	if err := authenticate(caller); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.repo.Post.List(ctx, filter)
}

func (p *postService) GetAllPosts(ctx context.Context, caller identity.Principal) ([]models.Post, error) {
	return p.list(ctx, caller, repository.PostFilter{Order: repository.OrderNewest})
}

func (p *postService) GetUserPosts(ctx context.Context, caller, author identity.Principal) ([]models.Post, error) {
	if err := authenticate(caller); err != nil {
		return nil, err
	}

	if author == "" {
		return nil, invalid("не указан автор")
	}

	return p.list(ctx, caller, repository.PostFilter{Author: author, Order: repository.OrderNewest})
}

func (p *postService) GetShortVideos(ctx context.Context, caller identity.Principal) ([]models.Post, error) {
	return p.list(ctx, caller, repository.PostFilter{
		ContentType: models.ContentShortVideo,
		Order:       repository.OrderNewest,
	})
}

func (p *postService) GetTrendingPosts(ctx context.Context, caller identity.Principal) ([]models.Post, error) {
	return p.list(ctx, caller, repository.PostFilter{
		Order: repository.OrderTrending,
		Limit: p.trendingLimit,
	})
}

func (p *postService) DeletePost(ctx context.Context, caller identity.Principal, postID int64) error {
	if err := authenticate(caller); err != nil {
		return err
	}

	post, err := p.deletePost(ctx, caller, postID)
	if err != nil {
		return err
	}

	// comments are kept, only the blob goes with the post
	if post.MediaRef != "" && p.storage != nil {
		if err := p.storage.Delete(ctx, post.MediaRef); err != nil {
			log.Printf("Предупреждение: не удалось удалить медиа %s: %v", post.MediaRef, err)
		}
	}

	return nil
}

func (p *postService) deletePost(ctx context.Context, caller identity.Principal, postID int64) (*models.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, err := p.repo.Post.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.Author != caller {
		admin, err := p.isAdmin(ctx, caller)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, fmt.Errorf("удаление поста %d: %w", postID, models.ErrForbidden)
		}
	}

	if err := p.repo.Post.Delete(ctx, postID); err != nil {
		return nil, err
	}

	return post, nil
}

// LikePost counts every call, repeated likes by one caller included.
func (p *postService) LikePost(ctx context.Context, caller identity.Principal, postID int64) (int64, error) {
	if err := authenticate(caller); err != nil {
		return 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.repo.Post.IncrementLikes(ctx, postID)
}

func isVideoType(contentType models.ContentType) bool {
	return contentType == models.ContentVideo || contentType == models.ContentShortVideo
}
