package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"socialfeed/internal/identity"
	"socialfeed/internal/models"
	"socialfeed/internal/service"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, caller identity.Principal, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UploadMedia(ctx context.Context, caller identity.Principal, req service.UploadMediaRequest) (*models.Post, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetAllPosts(ctx context.Context, caller identity.Principal) ([]models.Post, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) GetUserPosts(ctx context.Context, caller, author identity.Principal) ([]models.Post, error) {
	args := m.Called(ctx, caller, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) GetShortVideos(ctx context.Context, caller identity.Principal) ([]models.Post, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) GetTrendingPosts(ctx context.Context, caller identity.Principal) ([]models.Post, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, caller identity.Principal, postID int64) error {
	args := m.Called(ctx, caller, postID)
	return args.Error(0)
}

func (m *MockPostService) LikePost(ctx context.Context, caller identity.Principal, postID int64) (int64, error) {
	args := m.Called(ctx, caller, postID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AddComment(ctx context.Context, caller identity.Principal, postID int64, text string) (*models.Comment, error) {
	args := m.Called(ctx, caller, postID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) GetComments(ctx context.Context, caller identity.Principal, postID int64) ([]models.Comment, error) {
	args := m.Called(ctx, caller, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetCallerUserProfile(ctx context.Context, caller identity.Principal) (*models.UserProfile, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileService) GetUserProfile(ctx context.Context, caller, principal identity.Principal) (*models.UserProfile, error) {
	args := m.Called(ctx, caller, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileService) CreateOrUpdateProfile(ctx context.Context, caller identity.Principal, username, bio string) (*models.UserProfile, error) {
	args := m.Called(ctx, caller, username, bio)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileService) SaveCallerUserProfile(ctx context.Context, caller identity.Principal, req service.ProfileRequest) (*models.UserProfile, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileService) UploadProfilePicture(ctx context.Context, caller identity.Principal, upload service.PictureUpload) (*models.UserProfile, error) {
	args := m.Called(ctx, caller, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) AddAdmin(ctx context.Context, caller, principal identity.Principal) error {
	args := m.Called(ctx, caller, principal)
	return args.Error(0)
}

func (m *MockAdminService) IsCallerAdmin(ctx context.Context, caller identity.Principal) (bool, error) {
	args := m.Called(ctx, caller)
	return args.Bool(0), args.Error(1)
}

type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) SendMessage(ctx context.Context, caller, receiver identity.Principal, content string) (*models.Message, error) {
	args := m.Called(ctx, caller, receiver, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageService) GetMessages(ctx context.Context, caller, other identity.Principal) ([]models.Message, error) {
	args := m.Called(ctx, caller, other)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Stats(ctx context.Context) (*models.StoreStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoreStats), args.Error(1)
}

func (m *MockStatsService) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
