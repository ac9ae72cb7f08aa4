package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mindsacademy/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewS3MediaStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3MediaStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			AccessKey: "test-key",
			SecretKey: "test-secret",
		}
		_, err := NewS3MediaStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:    "test-bucket",
			SecretKey: "test-secret",
		}
		_, err := NewS3MediaStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:    "test-bucket",
			AccessKey: "test-key",
		}
		_, err := NewS3MediaStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:            "test-bucket",
			AccessKey:         "test-key",
			SecretKey:         "test-secret",
			Region:            "us-east-1",
			Endpoint:          "http://localhost:9000",
			UsePathStyle:      true,
			PresignExpiration: 15 * time.Minute,
		}
		storage, err := NewS3MediaStorage(cfg)
		require.NoError(t, err)
		require.NotNil(t, storage)
		assert.Equal(t, "test-bucket", storage.Bucket())
		assert.Equal(t, 15*time.Minute, storage.presignExpiration)
	})

	t.Run("default presign expiration is 15 minutes", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:    "test-bucket",
			AccessKey: "test-key",
			SecretKey: "test-secret",
			Endpoint:  "http://localhost:9000",
		}
		storage, err := NewS3MediaStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, storage.presignExpiration)
	})
}

func TestS3MediaStorageOptions(t *testing.T) {
	cfg := &config.StorageConfig{
		Bucket:    "test-bucket",
		AccessKey: "test-key",
		SecretKey: "test-secret",
		Endpoint:  "http://localhost:9000",
	}

	t.Run("WithLogger sets logger", func(t *testing.T) {
		logger := zaptest.NewLogger(t)
		storage, err := NewS3MediaStorage(cfg, WithLogger(logger))
		require.NoError(t, err)
		assert.Equal(t, logger, storage.logger)
	})

	t.Run("WithPresignExpiration overrides default", func(t *testing.T) {
		storage, err := NewS3MediaStorage(cfg, WithPresignExpiration(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, storage.presignExpiration)
	})
}

func TestS3MediaStorage_GenerateUploadURL(t *testing.T) {
	storage := newTestS3Storage(t)

	t.Run("rejects empty storage key", func(t *testing.T) {
		_, _, err := storage.GenerateUploadURL(context.Background(), "", "image/png", time.Minute)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage key is required")
	})

	t.Run("generates presigned PUT URL", func(t *testing.T) {
		url, expiresAt, err := storage.GenerateUploadURL(context.Background(), "media/avatar.png", "image/png", time.Minute)
		require.NoError(t, err)
		assert.True(t, strings.Contains(url, "media/avatar.png"))
		assert.True(t, expiresAt.After(time.Now()))
	})
}

func TestS3MediaStorage_GenerateDownloadURL(t *testing.T) {
	storage := newTestS3Storage(t)

	t.Run("rejects empty storage key", func(t *testing.T) {
		_, _, err := storage.GenerateDownloadURL(context.Background(), "", time.Minute)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage key is required")
	})

	t.Run("generates presigned GET URL", func(t *testing.T) {
		url, expiresAt, err := storage.GenerateDownloadURL(context.Background(), "media/video.mp4", time.Minute)
		require.NoError(t, err)
		assert.True(t, strings.Contains(url, "media/video.mp4"))
		assert.True(t, expiresAt.After(time.Now()))
	})
}

func TestS3MediaStorage_EmptyKeyValidation(t *testing.T) {
	storage := newTestS3Storage(t)

	t.Run("DeleteObject rejects empty key", func(t *testing.T) {
		err := storage.DeleteObject(context.Background(), "")
		require.Error(t, err)
	})

	t.Run("ObjectExists rejects empty key", func(t *testing.T) {
		_, err := storage.ObjectExists(context.Background(), "")
		require.Error(t, err)
	})

	t.Run("Upload rejects empty key", func(t *testing.T) {
		err := storage.Upload(context.Background(), "", []byte("data"), "text/plain")
		require.Error(t, err)
	})
}

func newTestS3Storage(t *testing.T) *S3MediaStorage {
	t.Helper()
	cfg := &config.StorageConfig{
		Bucket:       "test-bucket",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		Endpoint:     "http://localhost:9000",
		UsePathStyle: true,
	}
	storage, err := NewS3MediaStorage(cfg)
	require.NoError(t, err)
	return storage
}
