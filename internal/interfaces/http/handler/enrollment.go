package handler

import (
	"github.com/gin-gonic/gin"

	learningapp "github.com/mindsacademy/backend/internal/application/learning"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/mindsacademy/backend/internal/interfaces/http/dto"
)

// ProgressReportResponse combines enrollment progress with the per-lesson
// completion records
type ProgressReportResponse struct {
	Enrollment *learningapp.EnrollmentResponse         `json:"enrollment"`
	Lessons    []learningapp.LessonProgressResponse    `json:"lessons"`
}

// EnrollmentHandler handles enrollment and progress endpoints
type EnrollmentHandler struct {
	BaseHandler
	enrollmentService *learningapp.EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(enrollmentService *learningapp.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// Enroll godoc
// @Summary      Enroll in a course
// @Description  Enroll the authenticated user in a published course.
// @Description  Re-enrolling after dropping creates a fresh enrollment.
// @Tags         enrollments
// @Produce      json
// @Param        id path string true "Course ID" format(uuid)
// @Success      201 {object} dto.Response{data=learningapp.EnrollmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses/{id}/enroll [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID format")
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), getViewer(c), courseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, enrollment)
}

// Drop godoc
// @Summary      Drop a course
// @Description  Drop the authenticated user's active enrollment in a course
// @Tags         enrollments
// @Produce      json
// @Param        id path string true "Course ID" format(uuid)
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses/{id}/enroll [delete]
func (h *EnrollmentHandler) Drop(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID format")
		return
	}

	if err := h.enrollmentService.Drop(c.Request.Context(), userID, courseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListMine godoc
// @Summary      List own enrollments
// @Description  Retrieve all enrollments of the authenticated user with progress
// @Tags         enrollments
// @Produce      json
// @Success      200 {object} dto.Response{data=[]learningapp.EnrollmentResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /enrollments/mine [get]
func (h *EnrollmentHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	enrollments, err := h.enrollmentService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, enrollments)
}

// GetProgress godoc
// @Summary      Get course progress
// @Description  Retrieve the authenticated user's progress in a course,
// @Description  including the per-lesson completion records
// @Tags         enrollments
// @Produce      json
// @Param        id path string true "Course ID" format(uuid)
// @Success      200 {object} dto.Response{data=ProgressReportResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses/{id}/progress [get]
func (h *EnrollmentHandler) GetProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID format")
		return
	}

	enrollment, lessons, err := h.enrollmentService.GetProgress(c.Request.Context(), userID, courseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ProgressReportResponse{Enrollment: enrollment, Lessons: lessons})
}

// CompleteLesson godoc
// @Summary      Complete a lesson
// @Description  Mark a lesson as completed. Completing the last lesson
// @Description  completes the course. Repeating the call is a no-op.
// @Tags         enrollments
// @Produce      json
// @Param        id path string true "Lesson ID" format(uuid)
// @Success      200 {object} dto.Response{data=learningapp.EnrollmentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /lessons/{id}/complete [post]
func (h *EnrollmentHandler) CompleteLesson(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	lessonID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid lesson ID format")
		return
	}

	enrollment, err := h.enrollmentService.CompleteLesson(c.Request.Context(), userID, lessonID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, enrollment)
}

// UncompleteLesson godoc
// @Summary      Unmark a completed lesson
// @Description  Clear the completion flag of a lesson, reopening a completed
// @Description  course if needed
// @Tags         enrollments
// @Produce      json
// @Param        id path string true "Lesson ID" format(uuid)
// @Success      200 {object} dto.Response{data=learningapp.EnrollmentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /lessons/{id}/complete [delete]
func (h *EnrollmentHandler) UncompleteLesson(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	lessonID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid lesson ID format")
		return
	}

	enrollment, err := h.enrollmentService.UncompleteLesson(c.Request.Context(), userID, lessonID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, enrollment)
}

// ListByCourse godoc
// @Summary      List course enrollments
// @Description  Retrieve the roster of a course. Course owner or admin only.
// @Tags         enrollments
// @Produce      json
// @Param        id path string true "Course ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]learningapp.EnrollmentResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses/{id}/enrollments [get]
func (h *EnrollmentHandler) ListByCourse(c *gin.Context) {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID format")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}

	enrollments, total, err := h.enrollmentService.ListByCourse(c.Request.Context(), getViewer(c), courseID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, enrollments, total, filter.Page, filter.PageSize)
}
