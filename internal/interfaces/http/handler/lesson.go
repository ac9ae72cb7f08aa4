package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/mindsacademy/backend/internal/application/catalog"
)

// LessonHandler handles lesson endpoints
type LessonHandler struct {
	BaseHandler
	lessonService *catalogapp.LessonService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(lessonService *catalogapp.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

// Create godoc
// @Summary      Create a lesson
// @Description  Append a new lesson to a module. Course owner or admin only.
// @Tags         lessons
// @Accept       json
// @Produce      json
// @Param        id path string true "Module ID" format(uuid)
// @Param        request body catalogapp.CreateLessonRequest true "Lesson data"
// @Success      201 {object} dto.Response{data=catalogapp.LessonResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /modules/{id}/lessons [post]
func (h *LessonHandler) Create(c *gin.Context) {
	moduleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid module ID format")
		return
	}

	var req catalogapp.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lesson, err := h.lessonService.Create(c.Request.Context(), getViewer(c), moduleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, lesson)
}

// GetByID godoc
// @Summary      Get lesson by ID
// @Tags         lessons
// @Produce      json
// @Param        id path string true "Lesson ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.LessonResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /lessons/{id} [get]
func (h *LessonHandler) GetByID(c *gin.Context) {
	lessonID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid lesson ID format")
		return
	}

	lesson, err := h.lessonService.GetByID(c.Request.Context(), getViewer(c), lessonID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lesson)
}

// List godoc
// @Summary      List lessons of a module
// @Description  Retrieve the lessons of a module ordered by position
// @Tags         lessons
// @Produce      json
// @Param        id path string true "Module ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.LessonResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /modules/{id}/lessons [get]
func (h *LessonHandler) List(c *gin.Context) {
	moduleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid module ID format")
		return
	}

	lessons, err := h.lessonService.List(c.Request.Context(), getViewer(c), moduleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lessons)
}

// ListByCourse godoc
// @Summary      List all lessons of a course
// @Description  Retrieve every lesson of a course across its modules
// @Tags         lessons
// @Produce      json
// @Param        id path string true "Course ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.LessonResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses/{id}/lessons [get]
func (h *LessonHandler) ListByCourse(c *gin.Context) {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID format")
		return
	}

	lessons, err := h.lessonService.ListByCourse(c.Request.Context(), getViewer(c), courseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lessons)
}

// Update godoc
// @Summary      Update a lesson
// @Tags         lessons
// @Accept       json
// @Produce      json
// @Param        id path string true "Lesson ID" format(uuid)
// @Param        request body catalogapp.UpdateLessonRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=catalogapp.LessonResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /lessons/{id} [put]
func (h *LessonHandler) Update(c *gin.Context) {
	lessonID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid lesson ID format")
		return
	}

	var req catalogapp.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lesson, err := h.lessonService.Update(c.Request.Context(), getViewer(c), lessonID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lesson)
}

// Reorder godoc
// @Summary      Reorder lessons
// @Description  Replace the lesson ordering of a module with absolute positions.
// @Description  Repeating the same request is a no-op.
// @Tags         lessons
// @Accept       json
// @Produce      json
// @Param        id path string true "Module ID" format(uuid)
// @Param        request body catalogapp.ReorderRequest true "Full replacement ordering"
// @Success      200 {object} dto.Response{data=[]catalogapp.LessonResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /modules/{id}/lessons/reorder [put]
func (h *LessonHandler) Reorder(c *gin.Context) {
	moduleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid module ID format")
		return
	}

	var req catalogapp.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lessons, err := h.lessonService.Reorder(c.Request.Context(), getViewer(c), moduleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lessons)
}

// Delete godoc
// @Summary      Delete a lesson
// @Tags         lessons
// @Produce      json
// @Param        id path string true "Lesson ID" format(uuid)
// @Success      204 "No Content"
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /lessons/{id} [delete]
func (h *LessonHandler) Delete(c *gin.Context) {
	lessonID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid lesson ID format")
		return
	}

	if err := h.lessonService.Delete(c.Request.Context(), getViewer(c), lessonID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
