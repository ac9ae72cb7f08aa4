package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/mindsacademy/backend/internal/application/catalog"
)

// ModuleHandler handles course module endpoints
type ModuleHandler struct {
	BaseHandler
	moduleService *catalogapp.ModuleService
}

// NewModuleHandler creates a new module handler
func NewModuleHandler(moduleService *catalogapp.ModuleService) *ModuleHandler {
	return &ModuleHandler{moduleService: moduleService}
}

// Create godoc
// @Summary      Create a module
// @Description  Append a new module to a course. Owner or admin only.
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        id path string true "Course ID" format(uuid)
// @Param        request body catalogapp.CreateModuleRequest true "Module data"
// @Success      201 {object} dto.Response{data=catalogapp.ModuleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses/{id}/modules [post]
func (h *ModuleHandler) Create(c *gin.Context) {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID format")
		return
	}

	var req catalogapp.CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	module, err := h.moduleService.Create(c.Request.Context(), getViewer(c), courseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, module)
}

// List godoc
// @Summary      List modules of a course
// @Description  Retrieve the modules of a course ordered by position
// @Tags         modules
// @Produce      json
// @Param        id path string true "Course ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.ModuleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses/{id}/modules [get]
func (h *ModuleHandler) List(c *gin.Context) {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID format")
		return
	}

	modules, err := h.moduleService.List(c.Request.Context(), getViewer(c), courseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, modules)
}

// Update godoc
// @Summary      Rename a module
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        id path string true "Module ID" format(uuid)
// @Param        request body catalogapp.UpdateModuleRequest true "New title"
// @Success      200 {object} dto.Response{data=catalogapp.ModuleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /modules/{id} [put]
func (h *ModuleHandler) Update(c *gin.Context) {
	moduleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid module ID format")
		return
	}

	var req catalogapp.UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	module, err := h.moduleService.Update(c.Request.Context(), getViewer(c), moduleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, module)
}

// Reorder godoc
// @Summary      Reorder modules
// @Description  Replace the module ordering of a course with absolute positions.
// @Description  Repeating the same request is a no-op.
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        id path string true "Course ID" format(uuid)
// @Param        request body catalogapp.ReorderRequest true "Full replacement ordering"
// @Success      200 {object} dto.Response{data=[]catalogapp.ModuleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /courses/{id}/modules/reorder [put]
func (h *ModuleHandler) Reorder(c *gin.Context) {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID format")
		return
	}

	var req catalogapp.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	modules, err := h.moduleService.Reorder(c.Request.Context(), getViewer(c), courseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, modules)
}

// Delete godoc
// @Summary      Delete a module
// @Description  Remove a module and its lessons. Owner or admin only.
// @Tags         modules
// @Produce      json
// @Param        id path string true "Module ID" format(uuid)
// @Success      204 "No Content"
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /modules/{id} [delete]
func (h *ModuleHandler) Delete(c *gin.Context) {
	moduleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid module ID format")
		return
	}

	if err := h.moduleService.Delete(c.Request.Context(), getViewer(c), moduleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
