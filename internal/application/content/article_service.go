package content

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/content"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/mindsacademy/backend/internal/infrastructure/cache"
)

// articleCacheTTL bounds staleness of the public article lookup cache
const articleCacheTTL = 5 * time.Minute

// ArticleService handles editorial articles
type ArticleService struct {
	articleRepo    content.ArticleRepository
	articleCache   cache.ArticleCache
	eventPublisher shared.EventPublisher
}

// NewArticleService creates a new ArticleService
func NewArticleService(articleRepo content.ArticleRepository) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
	}
}

// SetCache sets the article lookup cache
func (s *ArticleService) SetCache(c cache.ArticleCache) {
	s.articleCache = c
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ArticleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new unpublished article. An empty slug is derived
// from the title.
func (s *ArticleService) Create(ctx context.Context, viewer catalog.Viewer, req CreateArticleRequest) (*ArticleResponse, error) {
	if !viewer.IsAdmin && !viewer.IsTeacher {
		return nil, shared.ErrForbidden
	}

	article, err := content.NewArticle(viewer.UserID, req.Title, req.Slug, req.Excerpt, req.Content)
	if err != nil {
		return nil, err
	}

	exists, err := s.articleRepo.ExistsBySlug(ctx, article.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	article.SetAuthorName(req.AuthorName)
	article.SetCover(req.CoverID)

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}
	return ToArticleResponse(article), nil
}

// GetPublishedBySlug retrieves a published article for public reading.
// When the slug does not match, a slug that parses as a UUID falls back
// to an ID lookup so that older links keep working. Unpublished
// articles behave as missing.
func (s *ArticleService) GetPublishedBySlug(ctx context.Context, slug string) (*ArticleResponse, error) {
	if s.articleCache != nil {
		if cached, err := s.articleCache.Get(ctx, slug); err == nil && cached != nil {
			if cached.IsPublished() {
				return ToArticleResponse(cached), nil
			}
		}
	}

	article, err := s.articleRepo.FindBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		id, parseErr := uuid.Parse(slug)
		if parseErr != nil {
			return nil, shared.ErrNotFound
		}
		article, err = s.articleRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	if !article.IsPublished() {
		return nil, shared.ErrNotFound
	}

	if s.articleCache != nil {
		_ = s.articleCache.Set(ctx, slug, article, articleCacheTTL)
	}
	return ToArticleResponse(article), nil
}

// GetByID retrieves an article regardless of publication state.
// Authoring use.
func (s *ArticleService) GetByID(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canEdit(viewer, article) {
		return nil, shared.ErrNotFound
	}
	return ToArticleResponse(article), nil
}

// ListPublished retrieves published articles ordered by publish date
func (s *ArticleService) ListPublished(ctx context.Context, filter ArticleListFilter) ([]ArticleResponse, int64, error) {
	domainFilter := filter.buildFilter()

	articles, err := s.articleRepo.FindPublished(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.articleRepo.CountPublished(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ArticleResponse, len(articles))
	for i := range articles {
		response := ToArticleResponse(&articles[i])
		// Listings carry the excerpt, not the full body
		response.Content = ""
		responses[i] = *response
	}
	return responses, total, nil
}

// ListAll retrieves all articles, drafts included. Admin only.
func (s *ArticleService) ListAll(ctx context.Context, viewer catalog.Viewer, filter ArticleListFilter) ([]ArticleResponse, error) {
	if !viewer.IsAdmin {
		return nil, shared.ErrForbidden
	}

	articles, err := s.articleRepo.FindAll(ctx, filter.buildFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]ArticleResponse, len(articles))
	for i := range articles {
		responses[i] = *ToArticleResponse(&articles[i])
	}
	return responses, nil
}

// Update updates an article
func (s *ArticleService) Update(ctx context.Context, viewer catalog.Viewer, id uuid.UUID, req UpdateArticleRequest) (*ArticleResponse, error) {
	article, err := s.editableArticle(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	title := article.Title
	excerpt := article.Excerpt
	body := article.Content
	if req.Title != nil {
		title = *req.Title
	}
	if req.Excerpt != nil {
		excerpt = *req.Excerpt
	}
	if req.Content != nil {
		body = *req.Content
	}
	if err := article.Update(title, excerpt, body); err != nil {
		return nil, err
	}

	if req.AuthorName != nil {
		article.SetAuthorName(*req.AuthorName)
	}
	if req.ClearCover {
		article.SetCover(nil)
	} else if req.CoverID != nil {
		article.SetCover(req.CoverID)
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	s.invalidate(ctx, article)
	return ToArticleResponse(article), nil
}

// Publish makes an article publicly readable
func (s *ArticleService) Publish(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) (*ArticleResponse, error) {
	article, err := s.editableArticle(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	if err := article.Publish(time.Now()); err != nil {
		return nil, err
	}
	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	s.invalidate(ctx, article)
	return ToArticleResponse(article), nil
}

// Unpublish withdraws an article from public reading
func (s *ArticleService) Unpublish(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) (*ArticleResponse, error) {
	article, err := s.editableArticle(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	article.Unpublish()
	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	s.invalidate(ctx, article)
	return ToArticleResponse(article), nil
}

// Delete deletes an article
func (s *ArticleService) Delete(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) error {
	article, err := s.editableArticle(ctx, viewer, id)
	if err != nil {
		return err
	}

	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, article)
	return nil
}

func (s *ArticleService) editableArticle(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) (*content.Article, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canEdit(viewer, article) {
		return nil, shared.ErrForbidden
	}
	return article, nil
}

func (s *ArticleService) canEdit(viewer catalog.Viewer, article *content.Article) bool {
	if viewer.IsAdmin {
		return true
	}
	return viewer.IsTeacher && article.CreatedBy != nil && *article.CreatedBy == viewer.UserID
}

func (s *ArticleService) invalidate(ctx context.Context, article *content.Article) {
	if s.articleCache == nil {
		return
	}
	_ = s.articleCache.Invalidate(ctx, article.Slug)
	_ = s.articleCache.Invalidate(ctx, article.ID.String())
}
