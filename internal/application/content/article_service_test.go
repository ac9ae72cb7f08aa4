package content

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/content"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/mindsacademy/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Article), args.Error(1)
}

func (m *MockArticleRepository) FindBySlug(ctx context.Context, slug string) (*content.Article, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Article), args.Error(1)
}

func (m *MockArticleRepository) FindPublished(ctx context.Context, filter shared.Filter) ([]content.Article, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]content.Article), args.Error(1)
}

func (m *MockArticleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.Article, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]content.Article), args.Error(1)
}

func (m *MockArticleRepository) Save(ctx context.Context, article *content.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArticleRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockArticleRepository) CountPublished(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// Test helpers
func editorViewer() catalog.Viewer {
	return catalog.Viewer{UserID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), IsTeacher: true}
}

func createPublishedArticle(ownerID uuid.UUID, slug string) *content.Article {
	article, _ := content.NewArticle(ownerID, "Como estudar melhor", slug, "Dicas práticas", "Corpo do artigo")
	_ = article.Publish(time.Now())
	return article
}

func TestArticleService_Create_DerivesSlugFromTitle(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	service := NewArticleService(mockRepo)

	ctx := context.Background()

	mockRepo.On("ExistsBySlug", ctx, "como-estudar-melhor").Return(false, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*content.Article")).Return(nil)

	result, err := service.Create(ctx, editorViewer(), CreateArticleRequest{
		Title:   "Como Estudar Melhor",
		Excerpt: "Dicas práticas",
		Content: "Corpo do artigo",
	})

	require.NoError(t, err)
	assert.Equal(t, "como-estudar-melhor", result.Slug)
	assert.Nil(t, result.PublishedAt)
	mockRepo.AssertExpectations(t)
}

func TestArticleService_Create_DuplicateSlug(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	service := NewArticleService(mockRepo)

	ctx := context.Background()

	mockRepo.On("ExistsBySlug", ctx, "repetido").Return(true, nil)

	result, err := service.Create(ctx, editorViewer(), CreateArticleRequest{
		Title: "Artigo Repetido",
		Slug:  "repetido",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestArticleService_Create_StudentForbidden(t *testing.T) {
	service := NewArticleService(new(MockArticleRepository))

	result, err := service.Create(context.Background(), catalog.Viewer{UserID: uuid.New()}, CreateArticleRequest{
		Title: "Tentativa",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestArticleService_GetPublishedBySlug_Found(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	service := NewArticleService(mockRepo)

	ctx := context.Background()
	article := createPublishedArticle(uuid.New(), "como-estudar-melhor")

	mockRepo.On("FindBySlug", ctx, "como-estudar-melhor").Return(article, nil)

	result, err := service.GetPublishedBySlug(ctx, "como-estudar-melhor")

	require.NoError(t, err)
	assert.Equal(t, article.ID, result.ID)
	assert.NotNil(t, result.PublishedAt)
}

func TestArticleService_GetPublishedBySlug_FallsBackToID(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	service := NewArticleService(mockRepo)

	ctx := context.Background()
	article := createPublishedArticle(uuid.New(), "artigo-antigo")
	idSlug := article.ID.String()

	mockRepo.On("FindBySlug", ctx, idSlug).Return(nil, shared.ErrNotFound)
	mockRepo.On("FindByID", ctx, article.ID).Return(article, nil)

	result, err := service.GetPublishedBySlug(ctx, idSlug)

	require.NoError(t, err)
	assert.Equal(t, article.ID, result.ID)
}

func TestArticleService_GetPublishedBySlug_NotFound(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	service := NewArticleService(mockRepo)

	ctx := context.Background()

	mockRepo.On("FindBySlug", ctx, "nao-existe").Return(nil, shared.ErrNotFound)

	result, err := service.GetPublishedBySlug(ctx, "nao-existe")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestArticleService_GetPublishedBySlug_UnpublishedHidden(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	service := NewArticleService(mockRepo)

	ctx := context.Background()
	article, _ := content.NewArticle(uuid.New(), "Rascunho", "rascunho", "", "")

	mockRepo.On("FindBySlug", ctx, "rascunho").Return(article, nil)

	result, err := service.GetPublishedBySlug(ctx, "rascunho")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestArticleService_GetPublishedBySlug_ServesFromCache(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	service := NewArticleService(mockRepo)
	articleCache := cache.NewInMemoryArticleCache(time.Minute)
	defer articleCache.Stop()
	service.SetCache(articleCache)

	ctx := context.Background()
	article := createPublishedArticle(uuid.New(), "em-cache")
	require.NoError(t, articleCache.Set(ctx, "em-cache", article, time.Minute))

	result, err := service.GetPublishedBySlug(ctx, "em-cache")

	require.NoError(t, err)
	assert.Equal(t, article.ID, result.ID)
	mockRepo.AssertNotCalled(t, "FindBySlug", mock.Anything, mock.Anything)
}

func TestArticleService_Publish_InvalidatesCache(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	service := NewArticleService(mockRepo)
	articleCache := cache.NewInMemoryArticleCache(time.Minute)
	defer articleCache.Stop()
	service.SetCache(articleCache)

	ctx := context.Background()
	viewer := editorViewer()
	article, _ := content.NewArticle(viewer.UserID, "Novo artigo", "novo-artigo", "", "corpo")
	require.NoError(t, articleCache.Set(ctx, "novo-artigo", article, time.Minute))

	mockRepo.On("FindByID", ctx, article.ID).Return(article, nil)
	mockRepo.On("Save", ctx, article).Return(nil)

	result, err := service.Publish(ctx, viewer, article.ID)

	require.NoError(t, err)
	assert.NotNil(t, result.PublishedAt)

	cached, err := articleCache.Get(ctx, "novo-artigo")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestArticleService_Update_OtherTeacherForbidden(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	service := NewArticleService(mockRepo)

	ctx := context.Background()
	article, _ := content.NewArticle(uuid.New(), "Artigo alheio", "artigo-alheio", "", "")
	other := catalog.Viewer{UserID: uuid.New(), IsTeacher: true}
	newTitle := "Tentativa"

	mockRepo.On("FindByID", ctx, article.ID).Return(article, nil)

	result, err := service.Update(ctx, other, article.ID, UpdateArticleRequest{Title: &newTitle})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestArticleService_ListPublished_OmitsBody(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	service := NewArticleService(mockRepo)

	ctx := context.Background()
	article := createPublishedArticle(uuid.New(), "com-corpo")

	mockRepo.On("FindPublished", ctx, mock.AnythingOfType("shared.Filter")).Return([]content.Article{*article}, nil)
	mockRepo.On("CountPublished", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	results, total, err := service.ListPublished(ctx, ArticleListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Content)
	assert.Equal(t, "Dicas práticas", results[0].Excerpt)
}
