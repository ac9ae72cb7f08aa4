package content

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/content"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMediaRepository is a mock implementation of MediaRepository
type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.MediaFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.MediaFile), args.Error(1)
}

func (m *MockMediaRepository) FindByUploader(ctx context.Context, uploaderID uuid.UUID, filter shared.Filter) ([]content.MediaFile, error) {
	args := m.Called(ctx, uploaderID, filter)
	return args.Get(0).([]content.MediaFile), args.Error(1)
}

func (m *MockMediaRepository) Save(ctx context.Context, file *content.MediaFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeStorage is a minimal in-memory MediaStorage for service tests
type fakeStorage struct {
	uploaded map[string]bool
	deleted  []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploaded: make(map[string]bool)}
}

func (f *fakeStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://storage.example.com/upload/" + storageKey, time.Now().Add(expiresIn), nil
}

func (f *fakeStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://storage.example.com/download/" + storageKey, time.Now().Add(expiresIn), nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, storageKey string) error {
	f.deleted = append(f.deleted, storageKey)
	return nil
}

func (f *fakeStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	return f.uploaded[storageKey], nil
}

func (f *fakeStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	f.uploaded[storageKey] = true
	return nil
}

func (f *fakeStorage) ObjectURL(storageKey string) string {
	return "https://storage.example.com/" + storageKey
}

func TestMediaService_RequestUpload_IssuesPresignedURL(t *testing.T) {
	storage := newFakeStorage()
	service := NewMediaService(new(MockMediaRepository), storage, 0)

	ctx := context.Background()
	userID := uuid.New()

	ticket, err := service.RequestUpload(ctx, userID, RequestUploadRequest{
		FileName:    "Apostila.PDF",
		ContentType: "application/pdf",
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ticket.StorageKey, "uploads/"+userID.String()+"/"))
	assert.True(t, strings.HasSuffix(ticket.StorageKey, ".pdf"))
	assert.Contains(t, ticket.UploadURL, ticket.StorageKey)
	assert.True(t, ticket.ExpiresAt.After(time.Now()))
}

func TestMediaService_RequestUpload_UniqueKeysForSameFileName(t *testing.T) {
	storage := newFakeStorage()
	service := NewMediaService(new(MockMediaRepository), storage, 0)

	ctx := context.Background()
	userID := uuid.New()
	req := RequestUploadRequest{FileName: "foto.png", ContentType: "image/png"}

	first, err := service.RequestUpload(ctx, userID, req)
	require.NoError(t, err)
	second, err := service.RequestUpload(ctx, userID, req)
	require.NoError(t, err)

	assert.NotEqual(t, first.StorageKey, second.StorageKey)
}

func TestMediaService_RequestUpload_FileTooLarge(t *testing.T) {
	service := NewMediaService(new(MockMediaRepository), newFakeStorage(), 1024)

	ticket, err := service.RequestUpload(context.Background(), uuid.New(), RequestUploadRequest{
		FileName:    "video.mp4",
		ContentType: "video/mp4",
		SizeBytes:   10 * 1024 * 1024,
	})

	assert.Nil(t, ticket)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FILE_TOO_LARGE", domainErr.Code)
}

func TestMediaService_ConfirmUpload_Success(t *testing.T) {
	mockRepo := new(MockMediaRepository)
	storage := newFakeStorage()
	service := NewMediaService(mockRepo, storage, 0)

	ctx := context.Background()
	userID := uuid.New()
	storageKey := "uploads/" + userID.String() + "/abc.png"
	require.NoError(t, storage.Upload(ctx, storageKey, []byte("png"), "image/png"))

	mockRepo.On("Save", ctx, mock.AnythingOfType("*content.MediaFile")).Return(nil)

	result, err := service.ConfirmUpload(ctx, userID, ConfirmUploadRequest{
		StorageKey:  storageKey,
		FileName:    "abc.png",
		ContentType: "image/png",
		SizeBytes:   3,
	})

	require.NoError(t, err)
	assert.Equal(t, storageKey, result.StorageKey)
	assert.Equal(t, "https://storage.example.com/"+storageKey, result.URL)
	mockRepo.AssertExpectations(t)
}

func TestMediaService_ConfirmUpload_MissingObjectRejected(t *testing.T) {
	mockRepo := new(MockMediaRepository)
	service := NewMediaService(mockRepo, newFakeStorage(), 0)

	result, err := service.ConfirmUpload(context.Background(), uuid.New(), ConfirmUploadRequest{
		StorageKey:  "uploads/fantasma.png",
		FileName:    "fantasma.png",
		ContentType: "image/png",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UPLOAD_NOT_FOUND", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestMediaService_Delete_UploaderAllowed(t *testing.T) {
	mockRepo := new(MockMediaRepository)
	storage := newFakeStorage()
	service := NewMediaService(mockRepo, storage, 0)

	ctx := context.Background()
	userID := uuid.New()
	file, _ := content.NewMediaFile(userID, "https://storage.example.com/k", "uploads/k.png", "image/png", "k.png", 10)

	mockRepo.On("FindByID", ctx, file.ID).Return(file, nil)
	mockRepo.On("Delete", ctx, file.ID).Return(nil)

	err := service.Delete(ctx, catalog.Viewer{UserID: userID}, file.ID)

	require.NoError(t, err)
	assert.Contains(t, storage.deleted, "uploads/k.png")
}

func TestMediaService_Delete_OtherUserForbidden(t *testing.T) {
	mockRepo := new(MockMediaRepository)
	service := NewMediaService(mockRepo, newFakeStorage(), 0)

	ctx := context.Background()
	file, _ := content.NewMediaFile(uuid.New(), "https://storage.example.com/k", "uploads/k.png", "image/png", "k.png", 10)

	mockRepo.On("FindByID", ctx, file.ID).Return(file, nil)

	err := service.Delete(ctx, catalog.Viewer{UserID: uuid.New()}, file.ID)

	assert.ErrorIs(t, err, shared.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
