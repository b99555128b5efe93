package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"socialfeed/internal/identity"
	"socialfeed/internal/models"
	"socialfeed/internal/storage"
)

type ProfileRequest struct {
	Username       string `json:"username" validate:"required,username"`
	Bio            string `json:"bio" validate:"max=150"`
	ProfilePicture string `json:"profilePicture"`
}

const profilesFolder = "profiles"

type PictureUpload struct {
	FileName string    `validate:"required"`
	Body     io.Reader `validate:"required"`
	Size     int64
	Progress storage.ProgressFunc
}

type ProfileService interface {
	GetCallerUserProfile(ctx context.Context, caller identity.Principal) (*models.UserProfile, error)
	GetUserProfile(ctx context.Context, caller, principal identity.Principal) (*models.UserProfile, error)
	CreateOrUpdateProfile(ctx context.Context, caller identity.Principal, username, bio string) (*models.UserProfile, error)
	SaveCallerUserProfile(ctx context.Context, caller identity.Principal, req ProfileRequest) (*models.UserProfile, error)
	UploadProfilePicture(ctx context.Context, caller identity.Principal, upload PictureUpload) (*models.UserProfile, error)
}

type profileService struct {
	*core
}

func NewProfileService(c *core) ProfileService {
	return &profileService{core: c}
}

// GetCallerUserProfile returns nil without error when the caller has no profile yet.
func (s *profileService) GetCallerUserProfile(ctx context.Context, caller identity.Principal) (*models.UserProfile, error) {
	if err := authenticate(caller); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.find(ctx, caller)
}

func (s *profileService) GetUserProfile(ctx context.Context, caller, principal identity.Principal) (*models.UserProfile, error) {
	if err := authenticate(caller); err != nil {
		return nil, err
	}

	if principal.IsAnonymous() {
		return nil, invalid("не указан пользователь")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.find(ctx, principal)
}

func (s *profileService) CreateOrUpdateProfile(ctx context.Context, caller identity.Principal, username, bio string) (*models.UserProfile, error) {
	if err := authenticate(caller); err != nil {
		return nil, err
	}

	req := ProfileRequest{Username: strings.TrimSpace(username), Bio: bio}
	if err := s.check(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.find(ctx, caller)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		req.ProfilePicture = existing.ProfilePicture
	}

	return s.save(ctx, caller, req)
}

func (s *profileService) SaveCallerUserProfile(ctx context.Context, caller identity.Principal, req ProfileRequest) (*models.UserProfile, error) {
	if err := authenticate(caller); err != nil {
		return nil, err
	}

	req.Username = strings.TrimSpace(req.Username)
	if err := s.check(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx, caller, req)
}

func (s *profileService) UploadProfilePicture(ctx context.Context, caller identity.Principal, upload PictureUpload) (*models.UserProfile, error) {
	if err := authenticate(caller); err != nil {
		return nil, err
	}

	if err := s.check(upload); err != nil {
		return nil, err
	}

	if s.storage == nil {
		return nil, models.ErrStorageUnavailable
	}

	if err := s.requireProfile(ctx, caller); err != nil {
		return nil, err
	}

	ref, url, err := s.storage.Upload(ctx, storage.Upload{
		Owner:    caller,
		Folder:   profilesFolder,
		FileName: upload.FileName,
		Body:     upload.Body,
		Size:     upload.Size,
		Progress: upload.Progress,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}

	profile, previous, err := s.replacePicture(ctx, caller, url)
	if err != nil {
		s.removeBlob(ctx, ref)
		return nil, err
	}

	// Only the caller's own uploads are removed. A picture saved by URL may
	// point at any object in the bucket.
	if old := s.storage.Ref(previous); storage.OwnedBy(old, profilesFolder, caller) {
		s.removeBlob(ctx, old)
	}

	return profile, nil
}

func (s *profileService) requireProfile(ctx context.Context, caller identity.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.repo.Profile.Get(ctx, caller)
	return err
}

// replacePicture re-reads the profile since it may have changed during the upload.
func (s *profileService) replacePicture(ctx context.Context, caller identity.Principal, url string) (*models.UserProfile, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.repo.Profile.Get(ctx, caller)
	if err != nil {
		return nil, "", err
	}

	previous := profile.ProfilePicture
	profile.ProfilePicture = url
	profile.UpdatedAt = s.now()

	if err := s.repo.Profile.Save(ctx, profile); err != nil {
		return nil, "", err
	}

	return profile, previous, nil
}

func (s *profileService) find(ctx context.Context, principal identity.Principal) (*models.UserProfile, error) {
	profile, err := s.repo.Profile.Get(ctx, principal)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) save(ctx context.Context, caller identity.Principal, req ProfileRequest) (*models.UserProfile, error) {
	profile := &models.UserProfile{
		Principal:      caller,
		Username:       req.Username,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
		UpdatedAt:      s.now(),
	}

	if err := s.repo.Profile.Save(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *profileService) removeBlob(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.storage.Delete(ctx, ref); err != nil {
		log.Printf("Предупреждение: не удалось удалить изображение %s: %v", ref, err)
	}
}
