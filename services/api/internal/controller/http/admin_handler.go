package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"vidshare/pkg/logger"
	"vidshare/services/api/internal/entity"
	"vidshare/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	moderationUseCase usecase.ModerationUseCase
	logger            *logger.Logger
}

func NewAdminHandler(moderationUseCase usecase.ModerationUseCase, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		moderationUseCase: moderationUseCase,
		logger:            logger,
	}
}

type MuteOverrideRequest struct {
	AdminMuteOverride bool `json:"adminMuteOverride"`
}

type ApprovalRequest struct {
	IsApproved bool `json:"isApproved"`
}

type VisibilityRequest struct {
	Visibility string `json:"visibility" enums:"public,private,unlisted"`
}

// bindFields decodes a JSON object body into raw fields. An empty body is an
// empty object.
func bindFields(c *gin.Context) (map[string]json.RawMessage, bool) {
	fields := map[string]json.RawMessage{}
	if err := c.ShouldBindJSON(&fields); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request"})
		return nil, false
	}
	return fields, true
}

// SetMuteOverride godoc
// @Summary      Force-mute a video
// @Description  Any truthy adminMuteOverride enables the override.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     AdminHeader
// @Param        id      path  string               true  "Video ID"
// @Param        request body  MuteOverrideRequest  true  "Override flag"
// @Success      200  {object}  entity.Video
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/videos/{id}/mute-override [patch]
func (h *AdminHandler) SetMuteOverride(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	video, err := h.moderationUseCase.SetMuteOverride(c.Request.Context(), callerFrom(c), c.Param("id"), entity.Truthy(fields["adminMuteOverride"]))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// SetApproval godoc
// @Summary      Approve or unapprove a video
// @Description  Unapproved videos disappear from public listings only.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     AdminHeader
// @Param        id      path  string           true  "Video ID"
// @Param        request body  ApprovalRequest  true  "Approval flag"
// @Success      200  {object}  entity.Video
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/videos/{id}/approve [patch]
func (h *AdminHandler) SetApproval(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	video, err := h.moderationUseCase.SetApproval(c.Request.Context(), callerFrom(c), c.Param("id"), entity.Truthy(fields["isApproved"]))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// SetVisibility godoc
// @Summary      Override a video's visibility
// @Description  Setting private notifies the creator.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     AdminHeader
// @Param        id      path  string             true  "Video ID"
// @Param        request body  VisibilityRequest  true  "New visibility"
// @Success      200  {object}  entity.Video
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/videos/{id}/visibility [patch]
func (h *AdminHandler) SetVisibility(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	var visibility string
	if raw, present := fields["visibility"]; present {
		_ = json.Unmarshal(raw, &visibility)
	}

	video, err := h.moderationUseCase.SetVisibility(c.Request.Context(), callerFrom(c), c.Param("id"), visibility)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// DeleteVideo godoc
// @Summary      Delete any video and its media
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Security     AdminHeader
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  OKResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/videos/{id} [delete]
func (h *AdminHandler) DeleteVideo(c *gin.Context) {
	if err := h.moderationUseCase.DeleteVideo(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, OKResponse{OK: true})
}
