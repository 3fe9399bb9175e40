package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"vidshare/pkg/apperr"
	"vidshare/services/api/internal/entity"
	"vidshare/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for form boundaries and headers around the file.
const multipartOverhead = 1 << 20

// readUploadFile reads the "file" form field, capping the request body just
// above the kind's size limit.
func readUploadFile(c *gin.Context, kind usecase.UploadKind) (*multipart.FileHeader, error) {
	maxBytes := kind.Policy().MaxSize + multipartOverhead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	file, err := c.FormFile("file")
	if err == nil {
		return file, nil
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), strings.Contains(err.Error(), "request body too large"):
		return nil, apperr.New(apperr.KindBadRequest, "file_too_large", "file exceeds the size limit")
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, apperr.New(apperr.KindBadRequest, "no_file", "file is required")
	default:
		return nil, apperr.BadRequest("malformed multipart body")
	}
}

// absoluteURL turns a root-relative storage URL into one clients can fetch
// directly. baseURL wins over the request's own scheme and host.
func absoluteURL(c *gin.Context, baseURL, url string) string {
	if !strings.HasPrefix(url, "/") {
		return url
	}
	if baseURL != "" {
		return strings.TrimRight(baseURL, "/") + url
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + c.Request.Host + url
}

func uploadResponse(c *gin.Context, baseURL string, file *entity.UploadedFile) entity.UploadedFile {
	out := *file
	out.URL = absoluteURL(c, baseURL, file.URL)
	return out
}
