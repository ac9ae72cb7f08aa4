package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	curriculumapp "github.com/mindsacademy/backend/internal/application/curriculum"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

// The unversioned /api/learning-paths routes predate the response
// envelope and are still consumed by the public site. Their shapes are
// preserved verbatim: the raw resource on success, `{"success": true}`
// for deletions, and `{"error": "<message>"}` in Portuguese on failure.

type legacyAddCourseRequest struct {
	CourseID uuid.UUID `json:"courseId" binding:"required"`
}

func legacyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Trilha não encontrada"})
	case errors.Is(err, shared.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Acesso negado"})
	case errors.Is(err, shared.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Autenticação necessária"})
	default:
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": domainErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
	}
}

// ListLegacy serves GET /api/learning-paths as a plain array.
func (h *PathHandler) ListLegacy(c *gin.Context) {
	paths, _, err := h.pathService.List(c.Request.Context(), curriculumapp.PathListFilter{})
	if err != nil {
		legacyError(c, err)
		return
	}

	c.JSON(http.StatusOK, paths)
}

// CreateLegacy serves POST /api/learning-paths.
func (h *PathHandler) CreateLegacy(c *gin.Context) {
	var req curriculumapp.CreatePathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	path, err := h.pathService.Create(c.Request.Context(), getViewer(c), req)
	if err != nil {
		legacyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, path)
}

// GetLegacy serves GET /api/learning-paths/:pathId.
func (h *PathHandler) GetLegacy(c *gin.Context) {
	pathID, err := parseIDParam(c, "pathId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	path, err := h.pathService.GetByID(c.Request.Context(), pathID)
	if err != nil {
		legacyError(c, err)
		return
	}

	c.JSON(http.StatusOK, path)
}

// UpdateLegacy serves PATCH /api/learning-paths/:pathId.
func (h *PathHandler) UpdateLegacy(c *gin.Context) {
	pathID, err := parseIDParam(c, "pathId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	var req curriculumapp.UpdatePathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	path, err := h.pathService.Update(c.Request.Context(), getViewer(c), pathID, req)
	if err != nil {
		legacyError(c, err)
		return
	}

	c.JSON(http.StatusOK, path)
}

// DeleteLegacy serves DELETE /api/learning-paths/:pathId.
func (h *PathHandler) DeleteLegacy(c *gin.Context) {
	pathID, err := parseIDParam(c, "pathId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	if err := h.pathService.Delete(c.Request.Context(), getViewer(c), pathID); err != nil {
		legacyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddCourseLegacy serves POST /api/learning-paths/:pathId/courses.
func (h *PathHandler) AddCourseLegacy(c *gin.Context) {
	pathID, err := parseIDParam(c, "pathId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	var req legacyAddCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	path, err := h.pathService.AddCourse(c.Request.Context(), getViewer(c), pathID, req.CourseID)
	if err != nil {
		legacyError(c, err)
		return
	}

	c.JSON(http.StatusOK, path)
}

// RemoveCourseLegacy serves DELETE /api/learning-paths/:pathId/courses/:courseId.
func (h *PathHandler) RemoveCourseLegacy(c *gin.Context) {
	pathID, err := parseIDParam(c, "pathId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}
	courseID, err := parseIDParam(c, "courseId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	if err := h.pathService.RemoveCourse(c.Request.Context(), getViewer(c), pathID, courseID); err != nil {
		legacyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ReorderLegacy serves PATCH /api/learning-paths/:pathId/courses/reorder.
// The body carries absolute positions and the replacement is idempotent.
func (h *PathHandler) ReorderLegacy(c *gin.Context) {
	pathID, err := parseIDParam(c, "pathId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	var req curriculumapp.ReorderCoursesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	path, err := h.pathService.ReorderCourses(c.Request.Context(), getViewer(c), pathID, req)
	if err != nil {
		legacyError(c, err)
		return
	}

	c.JSON(http.StatusOK, path)
}
