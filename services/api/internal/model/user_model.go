package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID            string              `gorm:"type:uuid;primary_key" json:"id"`
	Email         string              `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name          string              `gorm:"type:varchar(255);not null" json:"name"`
	PasswordHash  string              `gorm:"type:varchar(255);not null" json:"-"`
	Logo          string              `gorm:"type:varchar(500);not null;default:''" json:"logo"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Notifications []NotificationModel `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

type NotificationModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Read      bool      `gorm:"not null" json:"read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (n *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
