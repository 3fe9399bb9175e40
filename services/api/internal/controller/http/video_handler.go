package http

import (
	"net/http"

	"vidshare/pkg/apperr"
	"vidshare/pkg/logger"
	"vidshare/services/api/internal/entity"
	"vidshare/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoUseCase  usecase.VideoUseCase
	uploadUseCase usecase.UploadUseCase
	publicBaseURL string
	logger        *logger.Logger
}

func NewVideoHandler(videoUseCase usecase.VideoUseCase, uploadUseCase usecase.UploadUseCase, publicBaseURL string, logger *logger.Logger) *VideoHandler {
	return &VideoHandler{
		videoUseCase:  videoUseCase,
		uploadUseCase: uploadUseCase,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// VideoRequest documents the create and update body. Chapters may be sent as
// free text ("0:30 Intro\n1:45 Topic") instead of a list.
type VideoRequest struct {
	Title       string           `json:"title" example:"My trip"`
	VideoURL    string           `json:"videoUrl" example:"http://localhost:4000/uploads/1700000000000_trip.mp4"`
	BannerURL   string           `json:"bannerUrl"`
	Description string           `json:"description"`
	Category    string           `json:"category" enums:"music,gaming,comedy,movies,tech,travel,other"`
	Visibility  string           `json:"visibility" enums:"public,private,unlisted"`
	IsMuted     bool             `json:"isMuted"`
	Timestamps  []entity.Chapter `json:"timestamps"`
}

type ViewsResponse struct {
	Views int64 `json:"views" example:"42"`
}

// Upload godoc
// @Summary      Upload a video or image
// @Description  Accepts mp4, webm, jpeg, png or webp up to 100MB.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Security     UserIDHeader
// @Param        file formData file true "Media file"
// @Success      201  {object}  entity.UploadedFile
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /upload [post]
func (h *VideoHandler) Upload(c *gin.Context) {
	if !callerFrom(c).Authenticated() {
		respondError(c, h.logger, apperr.Unauthorized("caller identity required"))
		return
	}

	file, err := readUploadFile(c, usecase.UploadMedia)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	uploaded, err := h.uploadUseCase.Upload(c.Request.Context(), usecase.UploadMedia, file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, uploadResponse(c, h.publicBaseURL, uploaded))
}

// CreateVideo godoc
// @Summary      Publish a video
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     UserIDHeader
// @Param        request body VideoRequest true "Video metadata"
// @Success      201  {object}  entity.Video
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /videos [post]
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	caller := callerFrom(c)
	if !caller.Authenticated() {
		respondError(c, h.logger, apperr.Unauthorized("caller identity required"))
		return
	}

	var draft entity.VideoDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request"})
		return
	}

	video, err := h.videoUseCase.CreateVideo(c.Request.Context(), caller, draft)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

// ListVideos godoc
// @Summary      List videos, newest first
// @Description  mine=1 lists the caller's own videos. Otherwise admins see every video and everyone else sees approved videos.
// @Tags         videos
// @Produce      json
// @Param        mine     query string false "1 for the caller's own videos"
// @Param        category query string false "Category filter; all for none"
// @Success      200  {array}   entity.Video
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	scope := usecase.ScopeDefault
	if c.Query("mine") == "1" {
		scope = usecase.ScopeMine
	}

	videos, err := h.videoUseCase.ListVideos(c.Request.Context(), callerFrom(c), scope, c.Query("category"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

// GetVideo godoc
// @Summary      Get a video by ID
// @Tags         videos
// @Produce      json
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  entity.Video
// @Failure      404  {object}  ErrorResponse
// @Router       /videos/{id} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	video, err := h.videoUseCase.GetVideo(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// UpdateVideo godoc
// @Summary      Edit a video
// @Description  Owner only. Invalid or unknown fields are ignored.
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     UserIDHeader
// @Param        id      path  string        true  "Video ID"
// @Param        request body  VideoRequest  true  "Fields to change"
// @Success      200  {object}  entity.Video
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /videos/{id} [patch]
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	var patch entity.VideoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request"})
		return
	}

	video, err := h.videoUseCase.UpdateVideo(c.Request.Context(), callerFrom(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// DeleteVideo godoc
// @Summary      Delete a video and its media
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Security     UserIDHeader
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  OKResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /videos/{id} [delete]
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	if err := h.videoUseCase.DeleteVideo(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, OKResponse{OK: true})
}

// RecordView godoc
// @Summary      Count a view
// @Tags         videos
// @Produce      json
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  ViewsResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /videos/{id}/view [post]
func (h *VideoHandler) RecordView(c *gin.Context) {
	viewer := callerFrom(c).UserID
	if viewer == "" {
		viewer = c.ClientIP()
	}

	views, err := h.videoUseCase.RecordView(c.Request.Context(), c.Param("id"), viewer)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ViewsResponse{Views: views})
}
