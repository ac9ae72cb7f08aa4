package handler

import (
	"github.com/gin-gonic/gin"

	curriculumapp "github.com/mindsacademy/backend/internal/application/curriculum"
)

// PathHandler handles learning path endpoints
type PathHandler struct {
	BaseHandler
	pathService *curriculumapp.PathService
}

// NewPathHandler creates a new learning path handler
func NewPathHandler(pathService *curriculumapp.PathService) *PathHandler {
	return &PathHandler{pathService: pathService}
}

// Create godoc
// @Summary      Create a learning path
// @Description  Create a new learning path. Teachers and admins only.
// @Tags         learning-paths
// @Accept       json
// @Produce      json
// @Param        request body curriculumapp.CreatePathRequest true "Path data"
// @Success      201 {object} dto.Response{data=curriculumapp.PathResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning-paths [post]
func (h *PathHandler) Create(c *gin.Context) {
	var req curriculumapp.CreatePathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	path, err := h.pathService.Create(c.Request.Context(), getViewer(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, path)
}

// GetByID godoc
// @Summary      Get learning path by ID
// @Description  Retrieve a learning path with its ordered courses
// @Tags         learning-paths
// @Produce      json
// @Param        id path string true "Learning path ID" format(uuid)
// @Success      200 {object} dto.Response{data=curriculumapp.PathResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /learning-paths/{id} [get]
func (h *PathHandler) GetByID(c *gin.Context) {
	pathID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid learning path ID format")
		return
	}

	path, err := h.pathService.GetByID(c.Request.Context(), pathID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, path)
}

// List godoc
// @Summary      List learning paths
// @Tags         learning-paths
// @Produce      json
// @Param        search query string false "Search keyword"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]curriculumapp.PathResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /learning-paths [get]
func (h *PathHandler) List(c *gin.Context) {
	var filter curriculumapp.PathListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	paths, total, err := h.pathService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, paths, total, page, pageSize)
}

// Update godoc
// @Summary      Update a learning path
// @Description  Update path fields. Creator or admin only.
// @Tags         learning-paths
// @Accept       json
// @Produce      json
// @Param        id path string true "Learning path ID" format(uuid)
// @Param        request body curriculumapp.UpdatePathRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=curriculumapp.PathResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning-paths/{id} [put]
func (h *PathHandler) Update(c *gin.Context) {
	pathID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid learning path ID format")
		return
	}

	var req curriculumapp.UpdatePathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	path, err := h.pathService.Update(c.Request.Context(), getViewer(c), pathID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, path)
}

// Delete godoc
// @Summary      Delete a learning path
// @Description  Remove a learning path and its course links. Courses are kept.
// @Tags         learning-paths
// @Produce      json
// @Param        id path string true "Learning path ID" format(uuid)
// @Success      204 "No Content"
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning-paths/{id} [delete]
func (h *PathHandler) Delete(c *gin.Context) {
	pathID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid learning path ID format")
		return
	}

	if err := h.pathService.Delete(c.Request.Context(), getViewer(c), pathID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddCourse godoc
// @Summary      Add a course to a path
// @Description  Append a course at the end of a learning path
// @Tags         learning-paths
// @Accept       json
// @Produce      json
// @Param        id path string true "Learning path ID" format(uuid)
// @Param        request body curriculumapp.AddCourseRequest true "Course to add"
// @Success      200 {object} dto.Response{data=curriculumapp.PathResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning-paths/{id}/courses [post]
func (h *PathHandler) AddCourse(c *gin.Context) {
	pathID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid learning path ID format")
		return
	}

	var req curriculumapp.AddCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	path, err := h.pathService.AddCourse(c.Request.Context(), getViewer(c), pathID, req.CourseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, path)
}

// RemoveCourse godoc
// @Summary      Remove a course from a path
// @Description  Unlink a course from a learning path, closing the position gap
// @Tags         learning-paths
// @Produce      json
// @Param        id path string true "Learning path ID" format(uuid)
// @Param        course_id path string true "Course ID" format(uuid)
// @Success      204 "No Content"
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning-paths/{id}/courses/{course_id} [delete]
func (h *PathHandler) RemoveCourse(c *gin.Context) {
	pathID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid learning path ID format")
		return
	}

	courseID, err := parseIDParam(c, "course_id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID format")
		return
	}

	if err := h.pathService.RemoveCourse(c.Request.Context(), getViewer(c), pathID, courseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ReorderCourses godoc
// @Summary      Reorder the courses of a path
// @Description  Replace the course ordering of a learning path with absolute
// @Description  positions. Repeating the same request is a no-op.
// @Tags         learning-paths
// @Accept       json
// @Produce      json
// @Param        id path string true "Learning path ID" format(uuid)
// @Param        request body curriculumapp.ReorderCoursesRequest true "Full replacement ordering"
// @Success      200 {object} dto.Response{data=curriculumapp.PathResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning-paths/{id}/courses/reorder [put]
func (h *PathHandler) ReorderCourses(c *gin.Context) {
	pathID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid learning path ID format")
		return
	}

	var req curriculumapp.ReorderCoursesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	path, err := h.pathService.ReorderCourses(c.Request.Context(), getViewer(c), pathID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, path)
}
