package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/content"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

// CreateArticleRequest represents a request to create an article
type CreateArticleRequest struct {
	Title      string     `json:"title" binding:"required,min=1,max=200"`
	Slug       string     `json:"slug" binding:"omitempty,max=200"`
	Excerpt    string     `json:"excerpt" binding:"max=500"`
	Content    string     `json:"content"`
	AuthorName string     `json:"author_name" binding:"max=120"`
	CoverID    *uuid.UUID `json:"cover_id"`
}

// UpdateArticleRequest represents a request to update an article
type UpdateArticleRequest struct {
	Title      *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Excerpt    *string    `json:"excerpt" binding:"omitempty,max=500"`
	Content    *string    `json:"content"`
	AuthorName *string    `json:"author_name" binding:"omitempty,max=120"`
	CoverID    *uuid.UUID `json:"cover_id"`
	ClearCover bool       `json:"clear_cover"`
}

// ArticleResponse represents an article in API responses
type ArticleResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content,omitempty"`
	CoverID     *uuid.UUID `json:"cover_id,omitempty"`
	AuthorName  string     `json:"author_name,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ArticleListFilter represents filter options for article listings
type ArticleListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// RequestUploadRequest represents a request for a presigned upload URL
type RequestUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	SizeBytes   int64  `json:"size_bytes" binding:"omitempty,min=0"`
}

// UploadTicketResponse carries the presigned URL the client PUTs to
type UploadTicketResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ConfirmUploadRequest confirms that a presigned upload finished
type ConfirmUploadRequest struct {
	StorageKey  string `json:"storage_key" binding:"required,max=512"`
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	SizeBytes   int64  `json:"size_bytes" binding:"omitempty,min=0"`
}

// MediaFileResponse represents a stored media file in API responses
type MediaFileResponse struct {
	ID         uuid.UUID `json:"id"`
	URL        string    `json:"url"`
	StorageKey string    `json:"storage_key"`
	MimeType   string    `json:"mime_type"`
	FileName   string    `json:"file_name"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToArticleResponse converts a domain Article to ArticleResponse
func ToArticleResponse(a *content.Article) *ArticleResponse {
	return &ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Excerpt:     a.Excerpt,
		Content:     a.Content,
		CoverID:     a.CoverID,
		AuthorName:  a.AuthorName,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToMediaFileResponse converts a domain MediaFile to MediaFileResponse
func ToMediaFileResponse(f *content.MediaFile) *MediaFileResponse {
	return &MediaFileResponse{
		ID:         f.ID,
		URL:        f.URL,
		StorageKey: f.StorageKey,
		MimeType:   f.MimeType,
		FileName:   f.FileName,
		SizeBytes:  f.SizeBytes,
		CreatedAt:  f.CreatedAt,
	}
}

// buildFilter converts list filter options to a domain filter
func (f ArticleListFilter) buildFilter() shared.Filter {
	filter := shared.Filter{
		Search:   f.Search,
		Page:     f.Page,
		PageSize: f.PageSize,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return filter
}
