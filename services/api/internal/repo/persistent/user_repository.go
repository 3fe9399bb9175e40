package persistent

import (
	"context"
	"strings"
	"time"

	"vidshare/services/api/internal/entity"
	"vidshare/services/api/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	AppendNotification(ctx context.Context, userID, message string, at time.Time) error
	ListNotifications(ctx context.Context, userID string) ([]entity.Notification, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)
	userModel.Email = strings.ToLower(strings.TrimSpace(userModel.Email))
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		return translate(err)
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.UserModel
	email = strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) AppendNotification(ctx context.Context, userID, message string, at time.Time) error {
	if !validID(userID) {
		return ErrNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.UserModel{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return tx.Create(&model.NotificationModel{
			UserID:    userID,
			Message:   message,
			CreatedAt: at,
		}).Error
	})
}

// ListNotifications returns the user's notifications newest first.
func (r *userRepository) ListNotifications(ctx context.Context, userID string) ([]entity.Notification, error) {
	if !validID(userID) {
		return nil, ErrNotFound
	}
	var userModel model.UserModel
	err := r.db.WithContext(ctx).
		Preload("Notifications", func(db *gorm.DB) *gorm.DB {
			return db.Order("notifications.created_at DESC, notifications.id DESC")
		}).
		Where("id = ?", userID).
		First(&userModel).Error
	if err != nil {
		return nil, translate(err)
	}

	notifications := make([]entity.Notification, len(userModel.Notifications))
	for i := range userModel.Notifications {
		notifications[i] = ToNotificationEntity(&userModel.Notifications[i])
	}
	return notifications, nil
}
