package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vidshare/pkg/apperr"
	"vidshare/services/api/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupAdminRouter(modUC *MockModerationUseCase, caller gin.HandlerFunc) *gin.Engine {
	handler := NewAdminHandler(modUC, testLogger())
	router := setupTestRouter()
	admin := router.Group("/api/admin/videos", caller)
	admin.PATCH("/:id/mute-override", handler.SetMuteOverride)
	admin.PATCH("/:id/approve", handler.SetApproval)
	admin.PATCH("/:id/visibility", handler.SetVisibility)
	admin.DELETE("/:id", handler.DeleteVideo)
	return router
}

var adminCaller = entity.Caller{UserID: "admin", IsAdmin: true}

func TestSetMuteOverride_Truthiness(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{`{"adminMuteOverride":true}`, true},
		{`{"adminMuteOverride":1}`, true},
		{`{"adminMuteOverride":"yes"}`, true},
		{`{"adminMuteOverride":0}`, false},
		{`{"adminMuteOverride":""}`, false},
		{`{}`, false},
		{``, false},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			modUC := new(MockModerationUseCase)
			router := setupAdminRouter(modUC, asCaller("admin", true))
			modUC.On("SetMuteOverride", mock.Anything, adminCaller, "v1", tt.want).
				Return(&entity.Video{ID: "v1"}, nil)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest("PATCH", "/api/admin/videos/v1/mute-override", tt.body))

			assert.Equal(t, http.StatusOK, w.Code)
			modUC.AssertExpectations(t)
		})
	}
}

func TestSetApproval_Handler(t *testing.T) {
	modUC := new(MockModerationUseCase)
	router := setupAdminRouter(modUC, asCaller("admin", true))
	modUC.On("SetApproval", mock.Anything, adminCaller, "v1", false).
		Return(&entity.Video{ID: "v1", Settings: entity.VideoSettings{IsApproved: false, Visibility: entity.VisibilityPublic}}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PATCH", "/api/admin/videos/v1/approve", `{"isApproved":false}`))

	assert.Equal(t, http.StatusOK, w.Code)
	settings := decode(t, w)["settings"].(map[string]interface{})
	assert.Equal(t, false, settings["isApproved"])
}

func TestAdminRoutes_Unauthorized(t *testing.T) {
	modUC := new(MockModerationUseCase)
	router := setupAdminRouter(modUC, asCaller("user-1", false))
	caller := entity.Caller{UserID: "user-1"}
	modUC.On("SetApproval", mock.Anything, caller, "v1", true).Return(nil, apperr.Unauthorized("admin only"))
	modUC.On("DeleteVideo", mock.Anything, caller, "v1").Return(apperr.Unauthorized("admin only"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PATCH", "/api/admin/videos/v1/approve", `{"isApproved":true}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/admin/videos/v1", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", decode(t, w)["error"])
}

func TestSetVisibility_Handler(t *testing.T) {
	modUC := new(MockModerationUseCase)
	router := setupAdminRouter(modUC, asCaller("admin", true))
	modUC.On("SetVisibility", mock.Anything, adminCaller, "v1", "private").
		Return(&entity.Video{ID: "v1", Settings: entity.VideoSettings{Visibility: entity.VisibilityPrivate}}, nil)
	modUC.On("SetVisibility", mock.Anything, adminCaller, "v1", "").
		Return(nil, apperr.BadRequest("invalid visibility"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PATCH", "/api/admin/videos/v1/visibility", `{"visibility":"private"}`))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PATCH", "/api/admin/videos/v1/visibility", `{"visibility":3}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PATCH", "/api/admin/videos/v1/visibility", `{"visibility":`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	modUC.AssertNumberOfCalls(t, "SetVisibility", 2)
}

func TestAdminDeleteVideo_Handler(t *testing.T) {
	modUC := new(MockModerationUseCase)
	router := setupAdminRouter(modUC, asCaller("admin", true))
	modUC.On("DeleteVideo", mock.Anything, adminCaller, "v1").Return(nil)
	modUC.On("DeleteVideo", mock.Anything, adminCaller, "missing").Return(apperr.NotFound("video not found"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/admin/videos/v1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/admin/videos/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
