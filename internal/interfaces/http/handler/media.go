package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	contentapp "github.com/mindsacademy/backend/internal/application/content"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/mindsacademy/backend/internal/interfaces/http/dto"
)

// downloadURLTTL bounds how long a presigned download link stays valid.
const downloadURLTTL = 15 * time.Minute

// DownloadURLResponse carries a presigned download link
type DownloadURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MediaHandler handles media upload and download endpoints
type MediaHandler struct {
	BaseHandler
	mediaService *contentapp.MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService *contentapp.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// RequestUpload godoc
// @Summary      Request an upload URL
// @Description  Obtain a presigned URL the client uploads the file to directly
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        request body contentapp.RequestUploadRequest true "File metadata"
// @Success      201 {object} dto.Response{data=contentapp.UploadTicketResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /media/uploads [post]
func (h *MediaHandler) RequestUpload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req contentapp.RequestUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.mediaService.RequestUpload(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ticket)
}

// ConfirmUpload godoc
// @Summary      Confirm an upload
// @Description  Register the media file after the presigned upload finished
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        request body contentapp.ConfirmUploadRequest true "Uploaded file data"
// @Success      201 {object} dto.Response{data=contentapp.MediaFileResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /media/uploads/confirm [post]
func (h *MediaHandler) ConfirmUpload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req contentapp.ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	file, err := h.mediaService.ConfirmUpload(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, file)
}

// GetByID godoc
// @Summary      Get media file metadata
// @Tags         media
// @Produce      json
// @Param        id path string true "Media file ID" format(uuid)
// @Success      200 {object} dto.Response{data=contentapp.MediaFileResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /media/{id} [get]
func (h *MediaHandler) GetByID(c *gin.Context) {
	fileID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid media file ID format")
		return
	}

	file, err := h.mediaService.GetByID(c.Request.Context(), fileID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, file)
}

// GetDownloadURL godoc
// @Summary      Get a download URL
// @Description  Obtain a short-lived presigned download link for a media file
// @Tags         media
// @Produce      json
// @Param        id path string true "Media file ID" format(uuid)
// @Success      200 {object} dto.Response{data=DownloadURLResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /media/{id}/download-url [get]
func (h *MediaHandler) GetDownloadURL(c *gin.Context) {
	fileID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid media file ID format")
		return
	}

	url, expiresAt, err := h.mediaService.GetDownloadURL(c.Request.Context(), fileID, downloadURLTTL)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DownloadURLResponse{URL: url, ExpiresAt: expiresAt})
}

// ListMine godoc
// @Summary      List own media files
// @Tags         media
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]contentapp.MediaFileResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /media/mine [get]
func (h *MediaHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
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

	files, err := h.mediaService.ListMine(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, files)
}

// Delete godoc
// @Summary      Delete a media file
// @Description  Remove a media file from storage. Uploader or admin only.
// @Tags         media
// @Produce      json
// @Param        id path string true "Media file ID" format(uuid)
// @Success      204 "No Content"
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /media/{id} [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	fileID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid media file ID format")
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), getViewer(c), fileID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
