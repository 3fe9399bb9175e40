package http

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidshare/pkg/apperr"
	"vidshare/services/api/internal/entity"
	"vidshare/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupVideoRouter(videoUC *MockVideoUseCase, uploadUC *MockUploadUseCase, caller gin.HandlerFunc) *gin.Engine {
	handler := NewVideoHandler(videoUC, uploadUC, "https://cdn.example.com/", testLogger())
	router := setupTestRouter()
	api := router.Group("/api", caller)
	api.POST("/upload", handler.Upload)
	api.POST("/videos", handler.CreateVideo)
	api.GET("/videos", handler.ListVideos)
	api.GET("/videos/:id", handler.GetVideo)
	api.PATCH("/videos/:id", handler.UpdateVideo)
	api.DELETE("/videos/:id", handler.DeleteVideo)
	api.POST("/videos/:id/view", handler.RecordView)
	return router
}

func TestCreateVideo_Handler(t *testing.T) {
	videoUC := new(MockVideoUseCase)
	router := setupVideoRouter(videoUC, nil, asCaller("user-1", false))

	caller := entity.Caller{UserID: "user-1"}
	videoUC.On("CreateVideo", mock.Anything, caller, mock.MatchedBy(func(d entity.VideoDraft) bool {
		return d.Title == "Clip" && d.IsMuted && len(d.Chapters.Chapters()) == 1
	})).Return(&entity.Video{ID: "v1", Title: "Clip", Chapters: []entity.Chapter{{Time: "0:30", Label: "Intro"}}}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/videos", `{"title":"Clip","videoUrl":"/uploads/a.mp4","isMuted":"yes","timestamps":"0:30 Intro"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "v1", body["_id"])
	assert.Len(t, body["timestamps"], 1)
	videoUC.AssertExpectations(t)
}

func TestCreateVideo_RequiresCaller(t *testing.T) {
	videoUC := new(MockVideoUseCase)
	router := setupVideoRouter(videoUC, nil, asCaller("", false))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/videos", `{"title":"Clip"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	videoUC.AssertNotCalled(t, "CreateVideo", mock.Anything, mock.Anything, mock.Anything)
}

func TestListVideos_Handler(t *testing.T) {
	tests := []struct {
		name   string
		caller gin.HandlerFunc
		query  string
		want   entity.Caller
		scope  usecase.ListScope
		cat    string
	}{
		{"anonymous", asCaller("", false), "", entity.Caller{}, usecase.ScopeDefault, ""},
		{"mine", asCaller("user-1", false), "?mine=1&category=Music", entity.Caller{UserID: "user-1"}, usecase.ScopeMine, "Music"},
		{"admin", asCaller("admin", true), "?category=all", entity.Caller{UserID: "admin", IsAdmin: true}, usecase.ScopeDefault, "all"},
		{"mine must be 1", asCaller("user-1", false), "?mine=true", entity.Caller{UserID: "user-1"}, usecase.ScopeDefault, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videoUC := new(MockVideoUseCase)
			router := setupVideoRouter(videoUC, nil, tt.caller)
			videoUC.On("ListVideos", mock.Anything, tt.want, tt.scope, tt.cat).Return([]*entity.Video{}, nil)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/api/videos"+tt.query, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `[]`, w.Body.String())
			videoUC.AssertExpectations(t)
		})
	}
}

func TestListVideos_ServerErrorIsNotLeaked(t *testing.T) {
	videoUC := new(MockVideoUseCase)
	router := setupVideoRouter(videoUC, nil, asCaller("", false))
	videoUC.On("ListVideos", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperr.Internal("failed to list videos", errors.New("dial tcp: connection refused")))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/videos", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"server_error"}`, w.Body.String())
}

func TestUpdateVideo_Handler(t *testing.T) {
	videoUC := new(MockVideoUseCase)
	router := setupVideoRouter(videoUC, nil, asCaller("user-2", false))

	videoUC.On("UpdateVideo", mock.Anything, entity.Caller{UserID: "user-2"}, "v1", mock.MatchedBy(func(p entity.VideoPatch) bool {
		return p.Title != nil && *p.Title == "New" && p.IsMuted == nil
	})).Return(nil, apperr.Forbidden("not owner"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PATCH", "/api/videos/v1", `{"title":"New","isMuted":"no"}`))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", decode(t, w)["error"])
	videoUC.AssertExpectations(t)
}

func TestGetVideo_NotFound(t *testing.T) {
	videoUC := new(MockVideoUseCase)
	router := setupVideoRouter(videoUC, nil, asCaller("", false))
	videoUC.On("GetVideo", mock.Anything, entity.Caller{}, "missing").Return(nil, apperr.NotFound("video not found"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/videos/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode(t, w)["error"])
}

func TestDeleteVideo_Handler(t *testing.T) {
	videoUC := new(MockVideoUseCase)
	router := setupVideoRouter(videoUC, nil, asCaller("user-1", false))
	videoUC.On("DeleteVideo", mock.Anything, entity.Caller{UserID: "user-1"}, "v1").Return(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/videos/v1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestRecordView_Handler(t *testing.T) {
	videoUC := new(MockVideoUseCase)
	router := setupVideoRouter(videoUC, nil, asCaller("", false))
	videoUC.On("RecordView", mock.Anything, "v1", "192.0.2.1").Return(int64(7), nil)
	videoUC.On("RecordView", mock.Anything, "missing", mock.Anything).Return(int64(0), apperr.NotFound("video not found"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/videos/v1/view", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"views":7}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/videos/missing/view", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpload_Handler(t *testing.T) {
	uploadUC := new(MockUploadUseCase)
	router := setupVideoRouter(new(MockVideoUseCase), uploadUC, asCaller("user-1", false))

	uploadUC.On("Upload", mock.Anything, usecase.UploadMedia, mock.AnythingOfType("*multipart.FileHeader")).
		Return(&entity.UploadedFile{URL: "/uploads/1_clip.mp4", Filename: "1_clip.mp4", Size: 3, MimeType: "video/mp4"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/api/upload", "clip.mp4", "video/mp4", []byte("abc")))

	assert.Equal(t, http.StatusCreated, w.Code)
	var got entity.UploadedFile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "https://cdn.example.com/uploads/1_clip.mp4", got.URL)
}

func TestUpload_Handler_Rejections(t *testing.T) {
	uploadUC := new(MockUploadUseCase)
	anonymous := setupVideoRouter(new(MockVideoUseCase), uploadUC, asCaller("", false))

	w := httptest.NewRecorder()
	anonymous.ServeHTTP(w, multipartRequest(t, "/api/upload", "clip.mp4", "video/mp4", []byte("abc")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	router := setupVideoRouter(new(MockVideoUseCase), uploadUC, asCaller("user-1", false))
	uploadUC.On("Upload", mock.Anything, usecase.UploadMedia, mock.MatchedBy(func(f *multipart.FileHeader) bool {
		return f.Filename == "doc.pdf"
	})).Return(nil, apperr.New(apperr.KindBadRequest, "unsupported_file_type", "nope"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/api/upload", "doc.pdf", "application/pdf", []byte("%PDF")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unsupported_file_type", decode(t, w)["error"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/upload", `{}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "no_file", decode(t, w)["error"])
}

func TestAbsoluteURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Host = "api.local"
	c.Request.Header.Set("X-Forwarded-Proto", "https, http")

	assert.Equal(t, "https://api.local/uploads/a.mp4", absoluteURL(c, "", "/uploads/a.mp4"))
	assert.Equal(t, "http://base/uploads/a.mp4", absoluteURL(c, "http://base/", "/uploads/a.mp4"))
	assert.Equal(t, "https://bucket.s3.amazonaws.com/uploads/a.mp4", absoluteURL(c, "", "https://bucket.s3.amazonaws.com/uploads/a.mp4"))
}
