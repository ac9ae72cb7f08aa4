package handler

import (
	"github.com/gin-gonic/gin"

	learningapp "github.com/mindsacademy/backend/internal/application/learning"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/mindsacademy/backend/internal/interfaces/http/dto"
)

// SubmissionHandler handles assignment submission endpoints
type SubmissionHandler struct {
	BaseHandler
	submissionService *learningapp.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService *learningapp.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// Submit godoc
// @Summary      Submit an answer
// @Description  Submit or replace the authenticated user's answer for an
// @Description  assignment. Resubmitting before grading overwrites the
// @Description  previous answer.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Assignment ID" format(uuid)
// @Param        request body learningapp.SubmitRequest true "Answer data"
// @Success      201 {object} dto.Response{data=learningapp.SubmissionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assignments/{id}/submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	assignmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID format")
		return
	}

	var req learningapp.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	submission, err := h.submissionService.Submit(c.Request.Context(), userID, assignmentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, submission)
}

// Grade godoc
// @Summary      Grade a submission
// @Description  Record a score and feedback for a submission. Course owner
// @Description  or admin only.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Submission ID" format(uuid)
// @Param        request body learningapp.GradeRequest true "Score and feedback"
// @Success      200 {object} dto.Response{data=learningapp.SubmissionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /submissions/{id}/grade [post]
func (h *SubmissionHandler) Grade(c *gin.Context) {
	submissionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid submission ID format")
		return
	}

	var req learningapp.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	submission, err := h.submissionService.Grade(c.Request.Context(), getViewer(c), submissionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, submission)
}

// GetMine godoc
// @Summary      Get own submission
// @Description  Retrieve the authenticated user's submission for an assignment
// @Tags         submissions
// @Produce      json
// @Param        id path string true "Assignment ID" format(uuid)
// @Success      200 {object} dto.Response{data=learningapp.SubmissionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assignments/{id}/submissions/mine [get]
func (h *SubmissionHandler) GetMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	assignmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID format")
		return
	}

	submission, err := h.submissionService.GetMine(c.Request.Context(), userID, assignmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, submission)
}

// ListMine godoc
// @Summary      List own submissions
// @Description  Retrieve every submission of the authenticated user
// @Tags         submissions
// @Produce      json
// @Success      200 {object} dto.Response{data=[]learningapp.SubmissionResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /submissions/mine [get]
func (h *SubmissionHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	submissions, err := h.submissionService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, submissions)
}

// ListByAssignment godoc
// @Summary      List submissions of an assignment
// @Description  Retrieve all submissions for an assignment. Course owner or
// @Description  admin only.
// @Tags         submissions
// @Produce      json
// @Param        id path string true "Assignment ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]learningapp.SubmissionResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assignments/{id}/submissions [get]
func (h *SubmissionHandler) ListByAssignment(c *gin.Context) {
	assignmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID format")
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

	submissions, err := h.submissionService.ListByAssignment(c.Request.Context(), getViewer(c), assignmentID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, submissions)
}
