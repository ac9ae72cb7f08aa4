package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/mindsacademy/backend/internal/application/catalog"
)

// CourseHandler handles course catalog endpoints
type CourseHandler struct {
	BaseHandler
	courseService *catalogapp.CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService *catalogapp.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// Create godoc
// @Summary      Create a course
// @Description  Create a new draft course owned by the caller
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateCourseRequest true "Course data"
// @Success      201 {object} dto.Response{data=catalogapp.CourseResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), getViewer(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, course)
}

// GetByID godoc
// @Summary      Get course by ID
// @Description  Retrieve a course. Drafts are visible only to their owner and admins.
// @Tags         courses
// @Produce      json
// @Param        id path string true "Course ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.CourseResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses/{id} [get]
func (h *CourseHandler) GetByID(c *gin.Context) {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID format")
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), getViewer(c), courseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, course)
}

// List godoc
// @Summary      List courses
// @Description  Retrieve courses visible to the caller. Students see published
// @Description  courses for their audience, teachers additionally see their drafts.
// @Tags         courses
// @Produce      json
// @Param        search query string false "Search keyword"
// @Param        level query string false "Level filter" Enums(beginner, intermediate, advanced)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.CourseResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	var filter catalogapp.CourseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	courses, total, err := h.courseService.List(c.Request.Context(), getViewer(c), filter)
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
	h.SuccessWithMeta(c, courses, total, page, pageSize)
}

// ListAll godoc
// @Summary      List all courses
// @Description  Retrieve every course regardless of status (admin only)
// @Tags         courses
// @Produce      json
// @Param        search query string false "Search keyword"
// @Param        status query string false "Status filter" Enums(draft, active)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.CourseResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/courses [get]
func (h *CourseHandler) ListAll(c *gin.Context) {
	var filter catalogapp.CourseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	courses, total, err := h.courseService.ListAll(c.Request.Context(), getViewer(c), filter)
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
	h.SuccessWithMeta(c, courses, total, page, pageSize)
}

// ListMine godoc
// @Summary      List own courses
// @Description  Retrieve the caller's courses, drafts included
// @Tags         courses
// @Produce      json
// @Param        search query string false "Search keyword"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.CourseResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses/mine [get]
func (h *CourseHandler) ListMine(c *gin.Context) {
	var filter catalogapp.CourseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	courses, err := h.courseService.ListMine(c.Request.Context(), getViewer(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, courses)
}

// Update godoc
// @Summary      Update a course
// @Description  Update course fields. Owner or admin only.
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        id path string true "Course ID" format(uuid)
// @Param        request body catalogapp.UpdateCourseRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=catalogapp.CourseResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID format")
		return
	}

	var req catalogapp.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), getViewer(c), courseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, course)
}

// Publish godoc
// @Summary      Publish a course
// @Description  Make a draft course visible to students
// @Tags         courses
// @Produce      json
// @Param        id path string true "Course ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.CourseResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses/{id}/publish [post]
func (h *CourseHandler) Publish(c *gin.Context) {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID format")
		return
	}

	course, err := h.courseService.Publish(c.Request.Context(), getViewer(c), courseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, course)
}

// Unpublish godoc
// @Summary      Unpublish a course
// @Description  Return an active course to draft
// @Tags         courses
// @Produce      json
// @Param        id path string true "Course ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.CourseResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses/{id}/unpublish [post]
func (h *CourseHandler) Unpublish(c *gin.Context) {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID format")
		return
	}

	course, err := h.courseService.Unpublish(c.Request.Context(), getViewer(c), courseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, course)
}

// Delete godoc
// @Summary      Delete a course
// @Description  Permanently remove a course and its modules. Owner or admin only.
// @Tags         courses
// @Produce      json
// @Param        id path string true "Course ID" format(uuid)
// @Success      204 "No Content"
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID format")
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), getViewer(c), courseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
