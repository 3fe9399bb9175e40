package http

import (
	"context"
	"io"
	"mime/multipart"

	"vidshare/pkg/logger"
	"vidshare/services/api/internal/entity"
	"vidshare/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) AdminLogin(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUseCase) GetNotifications(ctx context.Context, caller entity.Caller) ([]entity.Notification, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Notification), args.Error(1)
}

func (m *MockAuthUseCase) AppendNotification(ctx context.Context, userID, message string) error {
	args := m.Called(ctx, userID, message)
	return args.Error(0)
}

type MockVideoUseCase struct {
	mock.Mock
}

func (m *MockVideoUseCase) CreateVideo(ctx context.Context, caller entity.Caller, draft entity.VideoDraft) (*entity.Video, error) {
	args := m.Called(ctx, caller, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) ListVideos(ctx context.Context, caller entity.Caller, scope usecase.ListScope, category string) ([]*entity.Video, error) {
	args := m.Called(ctx, caller, scope, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) ListPublic(ctx context.Context, category string) ([]*entity.Video, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) ListMine(ctx context.Context, caller entity.Caller, category string) ([]*entity.Video, error) {
	args := m.Called(ctx, caller, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) ListAllForAdmin(ctx context.Context, caller entity.Caller, category string) ([]*entity.Video, error) {
	args := m.Called(ctx, caller, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) GetVideo(ctx context.Context, caller entity.Caller, videoID string) (*entity.Video, error) {
	args := m.Called(ctx, caller, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) UpdateVideo(ctx context.Context, caller entity.Caller, videoID string, patch entity.VideoPatch) (*entity.Video, error) {
	args := m.Called(ctx, caller, videoID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) DeleteVideo(ctx context.Context, caller entity.Caller, videoID string) error {
	args := m.Called(ctx, caller, videoID)
	return args.Error(0)
}

func (m *MockVideoUseCase) RecordView(ctx context.Context, videoID, viewerKey string) (int64, error) {
	args := m.Called(ctx, videoID, viewerKey)
	return args.Get(0).(int64), args.Error(1)
}

type MockModerationUseCase struct {
	mock.Mock
}

func (m *MockModerationUseCase) SetMuteOverride(ctx context.Context, caller entity.Caller, videoID string, override bool) (*entity.Video, error) {
	args := m.Called(ctx, caller, videoID, override)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockModerationUseCase) SetApproval(ctx context.Context, caller entity.Caller, videoID string, approved bool) (*entity.Video, error) {
	args := m.Called(ctx, caller, videoID, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockModerationUseCase) SetVisibility(ctx context.Context, caller entity.Caller, videoID, visibility string) (*entity.Video, error) {
	args := m.Called(ctx, caller, videoID, visibility)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockModerationUseCase) DeleteVideo(ctx context.Context, caller entity.Caller, videoID string) error {
	args := m.Called(ctx, caller, videoID)
	return args.Error(0)
}

type MockUploadUseCase struct {
	mock.Mock
}

func (m *MockUploadUseCase) Upload(ctx context.Context, kind usecase.UploadKind, file *multipart.FileHeader) (*entity.UploadedFile, error) {
	args := m.Called(ctx, kind, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UploadedFile), args.Error(1)
}

var (
	_ usecase.AuthUseCase       = (*MockAuthUseCase)(nil)
	_ usecase.VideoUseCase      = (*MockVideoUseCase)(nil)
	_ usecase.ModerationUseCase = (*MockModerationUseCase)(nil)
	_ usecase.UploadUseCase     = (*MockUploadUseCase)(nil)
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func testLogger() *logger.Logger {
	return logger.NewWithOptions("error", "json", io.Discard)
}

// asCaller sets the resolved identity the way the identity middleware would.
func asCaller(userID string, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Set("is_admin", admin)
		c.Next()
	}
}
