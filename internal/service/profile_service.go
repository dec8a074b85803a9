package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"attendease/gym-app/internal/domain"
	"attendease/gym-app/internal/guard"
	"attendease/gym-app/internal/store"
	"attendease/gym-app/internal/storage"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrInvalidImageType = errors.New("invalid or missing image content type")
	ErrAvatarMissing    = errors.New("user has no profile image")
	ErrUploadURLError   = errors.New("failed to generate upload URL")
	ErrDownloadURLError = errors.New("failed to generate download URL")
)

// ProfileForm carries the self-editable fields of a user record.
type ProfileForm struct {
	Name        string
	Email       string
	PhoneNumber string
	Password    string
}

// UploadURLResponse structure for returning URL and object key
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"` // The key the client reports back when confirming
}

// ProfileService lets any authenticated user maintain their own record.
// Email changes go through the identity-change double confirmation; avatars
// are uploaded straight to object storage via presigned URLs.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, form ProfileForm) (*domain.User, error)
	RequestAvatarUploadURL(ctx context.Context, userID, contentType string) (*UploadURLResponse, error)
	ConfirmAvatar(ctx context.Context, userID, objectKey string) (*domain.User, error)
	AvatarURL(ctx context.Context, userID string) (string, error)
}

// profileService implements the ProfileService interface.
type profileService struct {
	snapshots   store.SnapshotStore
	identity    *guard.IdentityGuard
	fileStorage storage.FileStorage
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(snapshots store.SnapshotStore, identity *guard.IdentityGuard, fileStorage storage.FileStorage) ProfileService {
	return &profileService{
		snapshots:   snapshots,
		identity:    identity,
		fileStorage: fileStorage,
	}
}

// Get returns the user's own record.
func (s *profileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	user := data.UserByID(userID)
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update saves the user's own profile. The first submit that changes the
// email is intercepted with ErrIdentityChangePending and persists nothing;
// submitting the same email again confirms the change.
func (s *profileService) Update(ctx context.Context, userID string, form ProfileForm) (*domain.User, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	user := data.UserByID(userID)
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err := s.identity.Confirm(userID, user.Email, form.Email); err != nil {
		return nil, err
	}

	next := data.Clone()
	updated := next.UserByID(userID)
	updated.Name = form.Name
	updated.Email = form.Email
	updated.PhoneNumber = form.PhoneNumber
	updated.Password = form.Password

	saved, err := s.snapshots.Save(ctx, next)
	if err != nil {
		return nil, err
	}
	return saved.UserByID(userID), nil
}

// RequestAvatarUploadURL generates a presigned PUT URL for a new avatar.
func (s *profileService) RequestAvatarUploadURL(ctx context.Context, userID, contentType string) (*UploadURLResponse, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidImageType
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("avatars", userID, fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}
	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmAvatar records the uploaded object key on the user, replacing and
// deleting any previous avatar object. Called AFTER the client has uploaded
// the file using the presigned URL.
func (s *profileService) ConfirmAvatar(ctx context.Context, userID, objectKey string) (*domain.User, error) {
	if objectKey == "" {
		return nil, errors.New("object key is required")
	}
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	user := data.UserByID(userID)
	if user == nil {
		return nil, ErrUserNotFound
	}

	previous := user.ProfileImage
	next := data.Clone()
	next.UserByID(userID).ProfileImage = objectKey

	saved, err := s.snapshots.Save(ctx, next)
	if err != nil {
		return nil, err
	}
	if previous != "" && previous != objectKey {
		// Best effort; a stale object is harmless.
		_ = s.fileStorage.DeleteObject(ctx, previous)
	}
	return saved.UserByID(userID), nil
}

// AvatarURL generates a temporary download URL for the user's avatar.
func (s *profileService) AvatarURL(ctx context.Context, userID string) (string, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.ProfileImage == "" {
		return "", ErrAvatarMissing
	}
	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.ProfileImage, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return downloadURL, nil
}
