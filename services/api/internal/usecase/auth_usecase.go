package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"vidshare/pkg/apperr"
	"vidshare/pkg/jwt"
	"vidshare/pkg/logger"
	"vidshare/services/api/internal/entity"
	"vidshare/services/api/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

// AdminCallerID is the subject of tokens issued by AdminLogin. The admin
// capability is not tied to a user record.
const AdminCallerID = "admin"

type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Logo     string
}

type AdminCredentials struct {
	Username string
	Password string
}

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	AdminLogin(ctx context.Context, username, password string) (string, error)
	GetNotifications(ctx context.Context, caller entity.Caller) ([]entity.Notification, error)
	AppendNotification(ctx context.Context, userID, message string) error
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	admin      AdminCredentials
	logger     *logger.Logger
	now        func() time.Time
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	admin AdminCredentials,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		admin:      admin,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *authUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, string, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Name == "" || input.Password == "" {
		return nil, "", apperr.BadRequest("email, name and password are required")
	}

	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", apperr.Conflict("user with this email already exists")
	} else if !errors.Is(err, persistent.ErrNotFound) {
		return nil, "", apperr.Internal("failed to look up user", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", apperr.Internal("failed to process registration", err)
	}

	user := &entity.User{
		Email:        email,
		Name:         input.Name,
		PasswordHash: string(hashedPassword),
		Logo:         input.Logo,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, persistent.ErrDuplicate) {
			return nil, "", apperr.Conflict("user with this email already exists")
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", apperr.Internal("failed to create user", err)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, jwt.RoleUser)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperr.Internal("failed to generate token", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	uc.logger.Info("[Login Attempt] Email: %s", email)

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			uc.logger.Info("[Login Failed] User not found for email: %s", email)
			return nil, "", invalidCredentials()
		}
		uc.logger.Error("[Login Error] %v", err)
		return nil, "", apperr.Internal("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.logger.Info("[Login Failed] Password mismatch for user: %s", email)
		return nil, "", invalidCredentials()
	}

	token, err := uc.jwtService.GenerateToken(user.ID, jwt.RoleUser)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperr.Internal("failed to generate token", err)
	}

	uc.logger.Info("[Login Success] User: %s", email)
	user.PasswordHash = ""
	return user, token, nil
}

func (uc *authUseCase) AdminLogin(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(uc.admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(uc.admin.Password)) == 1
	if !userOK || !passOK || uc.admin.Username == "" {
		uc.logger.Warn("[Admin Login Failed] Username: %s", username)
		return "", invalidCredentials()
	}

	token, err := uc.jwtService.GenerateToken(AdminCallerID, jwt.RoleAdmin)
	if err != nil {
		uc.logger.Error("Failed to generate admin token: %v", err)
		return "", apperr.Internal("failed to generate token", err)
	}
	return token, nil
}

// GetNotifications returns the caller's inbox, newest first.
func (uc *authUseCase) GetNotifications(ctx context.Context, caller entity.Caller) ([]entity.Notification, error) {
	if !caller.Authenticated() {
		return nil, apperr.Unauthorized("caller identity required")
	}

	notifications, err := uc.userRepo.ListNotifications(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load notifications", err)
	}
	return notifications, nil
}

func (uc *authUseCase) AppendNotification(ctx context.Context, userID, message string) error {
	if err := uc.userRepo.AppendNotification(ctx, userID, message, uc.now()); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("failed to append notification", err)
	}
	return nil
}

func invalidCredentials() error {
	return apperr.New(apperr.KindUnauthorized, "invalid_credentials", "invalid credentials")
}
