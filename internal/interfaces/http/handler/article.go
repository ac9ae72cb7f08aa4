package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	contentapp "github.com/mindsacademy/backend/internal/application/content"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	BaseHandler
	articleService *contentapp.ArticleService
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articleService *contentapp.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// Create godoc
// @Summary      Create an article
// @Description  Create a new draft article. Teachers and admins only.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        request body contentapp.CreateArticleRequest true "Article data"
// @Success      201 {object} dto.Response{data=contentapp.ArticleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /articles [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	var req contentapp.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), getViewer(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, article)
}

// GetBySlug godoc
// @Summary      Get published article by slug
// @Description  Retrieve a published article by slug. A UUID is accepted in
// @Description  place of the slug.
// @Tags         articles
// @Produce      json
// @Param        slug path string true "Article slug or ID"
// @Success      200 {object} dto.Response{data=contentapp.ArticleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /articles/{slug} [get]
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	article, err := h.articleService.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// GetBySlugLegacy serves the unversioned article route consumed by the
// public site. Its response shape predates the response envelope and is
// kept as-is, including the literal not-found body.
func (h *ArticleHandler) GetBySlugLegacy(c *gin.Context) {
	article, err := h.articleService.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artigo não encontrado"})
			return
		}
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

// GetByID godoc
// @Summary      Get article by ID
// @Description  Retrieve an article regardless of publication state. Author
// @Description  or admin only.
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      200 {object} dto.Response{data=contentapp.ArticleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /articles/id/{id} [get]
func (h *ArticleHandler) GetByID(c *gin.Context) {
	articleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	article, err := h.articleService.GetByID(c.Request.Context(), getViewer(c), articleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// ListPublished godoc
// @Summary      List published articles
// @Description  Retrieve published articles ordered by publish date
// @Tags         articles
// @Produce      json
// @Param        search query string false "Search keyword"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]contentapp.ArticleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /articles [get]
func (h *ArticleHandler) ListPublished(c *gin.Context) {
	var filter contentapp.ArticleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	articles, total, err := h.articleService.ListPublished(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, articles, total, page, pageSize)
}

// ListAll godoc
// @Summary      List all articles
// @Description  Retrieve articles in every state for authoring. Teachers see
// @Description  their own, admins see everything.
// @Tags         articles
// @Produce      json
// @Param        search query string false "Search keyword"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]contentapp.ArticleResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /articles/manage [get]
func (h *ArticleHandler) ListAll(c *gin.Context) {
	var filter contentapp.ArticleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	articles, err := h.articleService.ListAll(c.Request.Context(), getViewer(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, articles)
}

// Update godoc
// @Summary      Update an article
// @Description  Update article fields. Author or admin only.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Param        request body contentapp.UpdateArticleRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=contentapp.ArticleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /articles/{id} [put]
func (h *ArticleHandler) Update(c *gin.Context) {
	articleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	var req contentapp.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), getViewer(c), articleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// Publish godoc
// @Summary      Publish an article
// @Description  Make an article publicly visible
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      200 {object} dto.Response{data=contentapp.ArticleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /articles/{id}/publish [post]
func (h *ArticleHandler) Publish(c *gin.Context) {
	articleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	article, err := h.articleService.Publish(c.Request.Context(), getViewer(c), articleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// Unpublish godoc
// @Summary      Unpublish an article
// @Description  Return an article to draft
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      200 {object} dto.Response{data=contentapp.ArticleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /articles/{id}/unpublish [post]
func (h *ArticleHandler) Unpublish(c *gin.Context) {
	articleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	article, err := h.articleService.Unpublish(c.Request.Context(), getViewer(c), articleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// Delete godoc
// @Summary      Delete an article
// @Description  Permanently remove an article. Author or admin only.
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /articles/{id} [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	articleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), getViewer(c), articleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
