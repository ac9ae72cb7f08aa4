package content

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mindsacademy/backend/internal/domain/shared"
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// Decomposes accented letters and strips the combining marks, so
	// "ção" folds to "cao" instead of being dropped.
	accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Article is an editorial content piece with a unique slug
type Article struct {
	shared.OwnedAggregateRoot
	Title       string     `gorm:"type:varchar(200);not null"`
	Slug        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	Excerpt     string     `gorm:"type:varchar(500)"`
	Content     string     `gorm:"type:text"`
	CoverID     *uuid.UUID `gorm:"type:uuid"`
	AuthorName  string     `gorm:"type:varchar(120)"`
	PublishedAt *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (Article) TableName() string {
	return "article"
}

// NewArticle creates a new unpublished article
func NewArticle(ownerID uuid.UUID, title, slug, excerpt, content string) (*Article, error) {
	if err := validateArticleTitle(title); err != nil {
		return nil, err
	}

	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		slug = Slugify(title)
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	return &Article{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Title:              strings.TrimSpace(title),
		Slug:               slug,
		Excerpt:            excerpt,
		Content:            content,
	}, nil
}

// Update updates the article's content fields
func (a *Article) Update(title, excerpt, content string) error {
	if err := validateArticleTitle(title); err != nil {
		return err
	}

	a.Title = strings.TrimSpace(title)
	a.Excerpt = excerpt
	a.Content = content
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SetAuthorName sets the display name of the article author
func (a *Article) SetAuthorName(name string) {
	a.AuthorName = strings.TrimSpace(name)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// SetCover attaches a media file as the article cover
func (a *Article) SetCover(mediaID *uuid.UUID) {
	a.CoverID = mediaID
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Publish makes the article publicly visible
func (a *Article) Publish(at time.Time) error {
	if a.PublishedAt != nil {
		return shared.NewDomainError("ALREADY_PUBLISHED", "Article is already published")
	}

	a.PublishedAt = &at
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Unpublish hides the article from the public listing
func (a *Article) Unpublish() {
	a.PublishedAt = nil
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// IsPublished returns true if the article is publicly visible
func (a *Article) IsPublished() bool {
	return a.PublishedAt != nil
}

// Slugify derives a URL slug from a title. Accented letters fold to
// their base form before anything else is dropped.
func Slugify(title string) string {
	folded, _, err := transform.String(accentFolder, strings.TrimSpace(title))
	if err != nil {
		folded = strings.TrimSpace(title)
	}
	slug := strings.ToLower(folded)
	var b strings.Builder
	lastDash := true
	for _, r := range slug {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// validateArticleTitle validates the article title
func validateArticleTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Article title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Article title cannot exceed 200 characters")
	}
	return nil
}

// validateSlug validates the article slug
func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Article slug cannot be empty")
	}
	if len(slug) > 200 {
		return shared.NewDomainError("INVALID_SLUG", "Article slug cannot exceed 200 characters")
	}
	if !slugPattern.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Article slug can only contain lowercase letters, numbers and hyphens")
	}
	return nil
}
