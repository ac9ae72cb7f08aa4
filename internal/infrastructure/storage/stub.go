// Package storage provides object storage implementations for media files.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	contentapp "github.com/mindsacademy/backend/internal/application/content"
)

// StubMediaStorage is an in-memory MediaStorage used in development and
// tests when no S3-compatible backend is available.
type StubMediaStorage struct {
	// BaseURL is the base URL for generated upload/download URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubMediaStorage creates a new StubMediaStorage
func NewStubMediaStorage() *StubMediaStorage {
	return &StubMediaStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure StubMediaStorage implements MediaStorage
var _ contentapp.MediaStorage = (*StubMediaStorage)(nil)

// GenerateUploadURL generates a stub upload URL
func (s *StubMediaStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/upload/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}

// GenerateDownloadURL generates a stub download URL
func (s *StubMediaStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}

// DeleteObject removes an object from the in-memory store
func (s *StubMediaStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	delete(s.objects, storageKey)
	s.mu.Unlock()
	return nil
}

// ObjectExists reports whether an object was uploaded through this stub.
// Keys never written through Upload are reported as present so the
// presigned-upload confirmation flow works in development.
func (s *StubMediaStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	return true, nil
}

// ObjectURL returns a stable URL under the stub base URL
func (s *StubMediaStorage) ObjectURL(storageKey string) string {
	return s.BaseURL + "/" + storageKey
}

// Upload stores data in memory
func (s *StubMediaStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	s.objects[storageKey] = data
	s.mu.Unlock()
	return nil
}
