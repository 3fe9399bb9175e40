package http

import (
	"net/http"

	"vidshare/pkg/logger"
	"vidshare/pkg/middleware"
	"vidshare/services/api/internal/entity"
	"vidshare/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase   usecase.AuthUseCase
	uploadUseCase usecase.UploadUseCase
	publicBaseURL string
	logger        *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, uploadUseCase usecase.UploadUseCase, publicBaseURL string, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase:   authUseCase,
		uploadUseCase: uploadUseCase,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" example:"ann@example.com"`
	Name     string `json:"name" example:"Ann"`
	Password string `json:"password" example:"secret"`
	Logo     string `json:"logo" example:"http://localhost:4000/uploads/1700000000000_logo.png"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"ann@example.com"`
	Password string `json:"password" example:"secret"`
}

type AdminLoginRequest struct {
	Username string `json:"username" example:"admin@123"`
	Password string `json:"password"`
}

type UserResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Logo   string `json:"logo"`
	Token  string `json:"token"`
}

type AdminLoginResponse struct {
	OK    bool   `json:"ok"`
	Admin bool   `json:"admin"`
	Token string `json:"token"`
}

func userResponse(user *entity.User, token string) UserResponse {
	return UserResponse{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Logo:   user.Logo,
		Token:  token,
	}
}

func callerFrom(c *gin.Context) entity.Caller {
	return entity.Caller{
		UserID:  middleware.CallerID(c),
		IsAdmin: middleware.CallerIsAdmin(c),
	}
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request"})
		return
	}

	user, token, err := h.authUseCase.Register(c.Request.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Logo:     req.Logo,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, userResponse(user, token))
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	// A malformed body is treated as empty credentials.
	_ = c.ShouldBindJSON(&req)

	user, token, err := h.authUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user, token))
}

// AdminLogin godoc
// @Summary      Log in with the admin credential pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body AdminLoginRequest true "Admin credentials"
// @Success      200  {object}  AdminLoginResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	_ = c.ShouldBindJSON(&req)

	token, err := h.authUseCase.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, AdminLoginResponse{OK: true, Admin: true, Token: token})
}

// Notifications godoc
// @Summary      List the caller's notifications, newest first
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Security     UserIDHeader
// @Success      200  {array}   entity.Notification
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/notifications [get]
func (h *AuthHandler) Notifications(c *gin.Context) {
	notifications, err := h.authUseCase.GetNotifications(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// UploadLogo godoc
// @Summary      Upload an avatar image
// @Description  Accepts jpeg, png or webp up to 10MB. No caller identity is required so that logos can be uploaded before registering.
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Logo image"
// @Success      201  {object}  entity.UploadedFile
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/upload-logo [post]
func (h *AuthHandler) UploadLogo(c *gin.Context) {
	file, err := readUploadFile(c, usecase.UploadLogo)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	uploaded, err := h.uploadUseCase.Upload(c.Request.Context(), usecase.UploadLogo, file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, uploadResponse(c, h.publicBaseURL, uploaded))
}
