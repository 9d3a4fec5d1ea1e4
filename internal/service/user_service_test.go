package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"skillmatrix/training-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeFileStorage struct {
	deleted []string
}

func (s *fakeFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	return "https://storage.example.com/upload/" + objectKey, nil
}

func (s *fakeFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://storage.example.com/get/" + objectKey, nil
}

func (s *fakeFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func newUserFixture(users ...domain.User) (UserService, *fakeUserRepo, *fakeFileStorage) {
	for i := range users {
		if users[i].ID.IsZero() {
			users[i].ID = primitive.NewObjectID()
		}
	}
	repo := &fakeUserRepo{users: users}
	fs := &fakeFileStorage{}
	return NewUserService(repo, fs), repo, fs
}

func TestGetAllTrainees_FiltersByRole(t *testing.T) {
	svc, _, _ := newUserFixture(
		domain.User{Email: "admin@example.com", Role: domain.RoleAdmin},
		domain.User{Email: "t1@example.com", Role: domain.RoleTrainee},
		domain.User{Email: "t2@example.com", Role: domain.RoleTrainee},
	)

	trainees, err := svc.GetAllTrainees(context.Background())
	require.NoError(t, err)
	require.Len(t, trainees, 2)
	for _, u := range trainees {
		assert.Equal(t, domain.RoleTrainee, u.Role)
	}
}

func TestRequestProfileImageUpload(t *testing.T) {
	svc, repo, _ := newUserFixture(domain.User{Email: "asha@example.com", Role: domain.RoleTrainee})
	userID := repo.users[0].ID

	info, err := svc.RequestProfileImageUpload(context.Background(), userID, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(info.ObjectKey, "profile-images/"+userID.Hex()+"/"))
	assert.True(t, strings.HasSuffix(info.ObjectKey, ".png"))
	assert.Contains(t, info.UploadURL, info.ObjectKey)

	_, err = svc.RequestProfileImageUpload(context.Background(), userID, "application/pdf")
	assert.ErrorIs(t, err, ErrInvalidContentType)

	_, err = svc.RequestProfileImageUpload(context.Background(), primitive.NewObjectID(), "image/png")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestConfirmProfileImageUpload(t *testing.T) {
	svc, repo, fs := newUserFixture(domain.User{
		Email:           "asha@example.com",
		Role:            domain.RoleTrainee,
		ProfileImageKey: "",
	})
	userID := repo.users[0].ID
	key := "profile-images/" + userID.Hex() + "/first.png"

	require.NoError(t, svc.ConfirmProfileImageUpload(context.Background(), userID, key))
	assert.Equal(t, key, repo.users[0].ProfileImageKey)
	assert.Empty(t, fs.deleted)

	// Replacing the image cleans up the previous object.
	newKey := "profile-images/" + userID.Hex() + "/second.png"
	require.NoError(t, svc.ConfirmProfileImageUpload(context.Background(), userID, newKey))
	assert.Equal(t, newKey, repo.users[0].ProfileImageKey)
	assert.Equal(t, []string{key}, fs.deleted)

	// Keys outside the caller's prefix are rejected.
	err := svc.ConfirmProfileImageUpload(context.Background(), userID, "profile-images/"+primitive.NewObjectID().Hex()+"/x.png")
	assert.ErrorIs(t, err, ErrValidationFailed)
	err = svc.ConfirmProfileImageUpload(context.Background(), userID, "")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestProfileImageURL(t *testing.T) {
	svc, repo, _ := newUserFixture(domain.User{
		Email:           "asha@example.com",
		ProfileImageKey: "profile-images/x/y.png",
	})

	url, err := svc.ProfileImageURL(context.Background(), &repo.users[0])
	require.NoError(t, err)
	assert.Contains(t, url, "profile-images/x/y.png")

	url, err = svc.ProfileImageURL(context.Background(), &domain.User{})
	require.NoError(t, err)
	assert.Empty(t, url)
}
