package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"skillmatrix/training-app/internal/domain"
	"skillmatrix/training-app/internal/repository"
	"skillmatrix/training-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidContentType = errors.New("profile image must be a jpeg or png")
)

// ProfileImageUploadInfo carries what the client needs to upload a profile
// image directly to object storage.
type ProfileImageUploadInfo struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// UserService covers user listing and profile image handling. Images go
// through presigned URLs; the server stores only the object key.
type UserService interface {
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	GetAllTrainees(ctx context.Context) ([]domain.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	RequestProfileImageUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*ProfileImageUploadInfo, error)
	ConfirmProfileImageUpload(ctx context.Context, userID primitive.ObjectID, objectKey string) error
	// ProfileImageURL returns a presigned GET URL, or "" when the user has
	// no image.
	ProfileImageURL(ctx context.Context, user *domain.User) (string, error)
}

type userService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, fileStorage storage.FileStorage) UserService {
	return &userService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *userService) GetAllTrainees(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetByRole(ctx, domain.RoleTrainee)
}

func (s *userService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
}

// RequestProfileImageUpload issues a presigned PUT URL for the caller's
// profile image. The client must upload with the same Content-Type and then
// confirm with the returned object key.
func (s *userService) RequestProfileImageUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*ProfileImageUploadInfo, error) {
	ext, ok := imageExtensions[strings.ToLower(contentType)]
	if !ok {
		return nil, ErrInvalidContentType
	}

	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	objectKey := path.Join("profile-images", userID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), ext))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	return &ProfileImageUploadInfo{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmProfileImageUpload records the uploaded object key and drops the
// previous image, if any. The old-object delete is best effort.
func (s *userService) ConfirmProfileImageUpload(ctx context.Context, userID primitive.ObjectID, objectKey string) error {
	if objectKey == "" {
		return ErrValidationFailed
	}
	// Keys are server-generated; refuse anything outside the caller's prefix.
	if !strings.HasPrefix(objectKey, path.Join("profile-images", userID.Hex())+"/") {
		return ErrValidationFailed
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	oldKey := user.ProfileImageKey

	if err := s.userRepo.UpdateProfileImageKey(ctx, userID, objectKey); err != nil {
		return err
	}

	if oldKey != "" && oldKey != objectKey {
		_ = s.fileStorage.DeleteObject(ctx, oldKey)
	}
	return nil
}

// ProfileImageURL presigns a download URL for the user's stored image key.
func (s *userService) ProfileImageURL(ctx context.Context, user *domain.User) (string, error) {
	if user == nil || user.ProfileImageKey == "" {
		return "", nil
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, user.ProfileImageKey, storage.DefaultPresignedURLExpiry)
}
