package http

import (
	"net/http"

	"vidshare/pkg/apperr"
	"vidshare/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"not_found"`
}

type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": code}. Server errors are logged and
// reported only as "server_error".
func respondError(c *gin.Context, log *logger.Logger, err error) {
	kind := apperr.KindOf(err)
	code := apperr.CodeOf(err)
	if kind == apperr.KindServerError {
		code = "server_error"
		log.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}

	c.JSON(statusFor(kind), ErrorResponse{Error: code})
}
