package handler

import (
	"github.com/gin-gonic/gin"

	learningapp "github.com/mindsacademy/backend/internal/application/learning"
)

// AssignmentHandler handles assignment endpoints
type AssignmentHandler struct {
	BaseHandler
	assignmentService *learningapp.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService *learningapp.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// Create godoc
// @Summary      Create an assignment
// @Description  Attach an assignment to a lesson. Course owner or admin only.
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        id path string true "Lesson ID" format(uuid)
// @Param        request body learningapp.CreateAssignmentRequest true "Assignment data"
// @Success      201 {object} dto.Response{data=learningapp.AssignmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /lessons/{id}/assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	lessonID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid lesson ID format")
		return
	}

	var req learningapp.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), getViewer(c), lessonID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, assignment)
}

// GetByID godoc
// @Summary      Get assignment by ID
// @Tags         assignments
// @Produce      json
// @Param        id path string true "Assignment ID" format(uuid)
// @Success      200 {object} dto.Response{data=learningapp.AssignmentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assignments/{id} [get]
func (h *AssignmentHandler) GetByID(c *gin.Context) {
	assignmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID format")
		return
	}

	assignment, err := h.assignmentService.GetByID(c.Request.Context(), getViewer(c), assignmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignment)
}

// ListByLesson godoc
// @Summary      List assignments of a lesson
// @Tags         assignments
// @Produce      json
// @Param        id path string true "Lesson ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]learningapp.AssignmentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /lessons/{id}/assignments [get]
func (h *AssignmentHandler) ListByLesson(c *gin.Context) {
	lessonID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid lesson ID format")
		return
	}

	assignments, err := h.assignmentService.ListByLesson(c.Request.Context(), getViewer(c), lessonID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignments)
}

// Update godoc
// @Summary      Update an assignment
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        id path string true "Assignment ID" format(uuid)
// @Param        request body learningapp.UpdateAssignmentRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=learningapp.AssignmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assignments/{id} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	assignmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID format")
		return
	}

	var req learningapp.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	assignment, err := h.assignmentService.Update(c.Request.Context(), getViewer(c), assignmentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignment)
}

// Delete godoc
// @Summary      Delete an assignment
// @Description  Remove an assignment and its submissions. Course owner or admin only.
// @Tags         assignments
// @Produce      json
// @Param        id path string true "Assignment ID" format(uuid)
// @Success      204 "No Content"
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	assignmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID format")
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), getViewer(c), assignmentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
