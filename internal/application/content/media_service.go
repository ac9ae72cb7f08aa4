package content

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/content"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

// defaultUploadTTL bounds how long a presigned upload URL stays valid
const defaultUploadTTL = 15 * time.Minute

// MediaService handles media uploads through presigned URLs
type MediaService struct {
	mediaRepo     content.MediaRepository
	storage       MediaStorage
	maxUploadSize int64
}

// NewMediaService creates a new MediaService. maxUploadSize of 0 means
// no size limit is enforced.
func NewMediaService(mediaRepo content.MediaRepository, storage MediaStorage, maxUploadSize int64) *MediaService {
	return &MediaService{
		mediaRepo:     mediaRepo,
		storage:       storage,
		maxUploadSize: maxUploadSize,
	}
}

// RequestUpload issues a presigned upload URL. The client PUTs the file
// to the returned URL and then calls ConfirmUpload.
func (s *MediaService) RequestUpload(ctx context.Context, userID uuid.UUID, req RequestUploadRequest) (*UploadTicketResponse, error) {
	if err := s.checkSize(req.SizeBytes); err != nil {
		return nil, err
	}

	storageKey := buildStorageKey(userID, req.FileName)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, defaultUploadTTL)
	if err != nil {
		return nil, err
	}

	return &UploadTicketResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload records a finished upload. The object must exist in
// storage before the record is created.
func (s *MediaService) ConfirmUpload(ctx context.Context, userID uuid.UUID, req ConfirmUploadRequest) (*MediaFileResponse, error) {
	if err := s.checkSize(req.SizeBytes); err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "No uploaded object found for this storage key")
	}

	file, err := content.NewMediaFile(userID, s.storage.ObjectURL(req.StorageKey), req.StorageKey, req.ContentType, req.FileName, req.SizeBytes)
	if err != nil {
		return nil, err
	}

	if err := s.mediaRepo.Save(ctx, file); err != nil {
		return nil, err
	}
	return ToMediaFileResponse(file), nil
}

// GetByID retrieves a media file record
func (s *MediaService) GetByID(ctx context.Context, id uuid.UUID) (*MediaFileResponse, error) {
	file, err := s.mediaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToMediaFileResponse(file), nil
}

// GetDownloadURL issues a presigned download URL for a media file
func (s *MediaService) GetDownloadURL(ctx context.Context, id uuid.UUID, expiresIn time.Duration) (string, time.Time, error) {
	file, err := s.mediaRepo.FindByID(ctx, id)
	if err != nil {
		return "", time.Time{}, err
	}
	return s.storage.GenerateDownloadURL(ctx, file.StorageKey, expiresIn)
}

// ListMine retrieves the viewer's uploaded media files
func (s *MediaService) ListMine(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]MediaFileResponse, error) {
	files, err := s.mediaRepo.FindByUploader(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]MediaFileResponse, len(files))
	for i := range files {
		responses[i] = *ToMediaFileResponse(&files[i])
	}
	return responses, nil
}

// Delete removes a media file record and its stored object. Only the
// uploader or an admin may delete.
func (s *MediaService) Delete(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) error {
	file, err := s.mediaRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !viewer.IsAdmin {
		if file.CreatedBy == nil || *file.CreatedBy != viewer.UserID {
			return shared.ErrForbidden
		}
	}

	if err := s.storage.DeleteObject(ctx, file.StorageKey); err != nil {
		return err
	}
	return s.mediaRepo.Delete(ctx, id)
}

func (s *MediaService) checkSize(sizeBytes int64) error {
	if s.maxUploadSize > 0 && sizeBytes > s.maxUploadSize {
		return shared.NewDomainError("FILE_TOO_LARGE", "File exceeds the maximum upload size")
	}
	return nil
}

// buildStorageKey namespaces uploads per user with a random prefix so
// identical file names never collide
func buildStorageKey(userID uuid.UUID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("uploads/%s/%s%s", userID, uuid.New(), ext)
}
