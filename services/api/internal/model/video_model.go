package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoModel struct {
	ID          string        `gorm:"type:uuid;primary_key" json:"id"`
	CreatorID   string        `gorm:"type:uuid;not null;index" json:"creator_id"`
	Title       string        `gorm:"type:varchar(255);not null" json:"title"`
	VideoURL    string        `gorm:"type:varchar(500);not null" json:"video_url"`
	BannerURL   string        `gorm:"type:varchar(500);not null;default:''" json:"banner_url"`
	CreatorName string        `gorm:"type:varchar(255);not null;default:''" json:"creator_name"`
	CreatorLogo string        `gorm:"type:varchar(500);not null;default:''" json:"creator_logo"`
	Description string        `gorm:"type:text;not null;default:''" json:"description"`
	Chapters    ChapterList   `gorm:"type:jsonb;not null" json:"chapters"`
	Category    string        `gorm:"type:varchar(20);not null;index" json:"category"`
	Settings    SettingsModel `gorm:"embedded;embeddedPrefix:settings_" json:"settings"`
	Views       int64         `gorm:"not null" json:"views"`
	CreatedAt   time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// SettingsModel has no gorm defaults: a zero-valued bool would be replaced by
// the column default on insert.
type SettingsModel struct {
	IsMuted           bool   `gorm:"not null" json:"is_muted"`
	IsApproved        bool   `gorm:"not null;index" json:"is_approved"`
	AdminMuteOverride bool   `gorm:"not null" json:"admin_mute_override"`
	Visibility        string `gorm:"type:varchar(20);not null" json:"visibility"`
}

func (VideoModel) TableName() string {
	return "videos"
}

func (v *VideoModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.Chapters == nil {
		v.Chapters = ChapterList{}
	}
	return nil
}

type ChapterModel struct {
	Time  string `json:"time"`
	Label string `json:"label"`
}

// ChapterList is stored as a jsonb array.
type ChapterList []ChapterModel

func (l ChapterList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]ChapterModel(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ChapterList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = ChapterList{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported chapter column type %T", src)
	}

	var out []ChapterModel
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to decode chapters: %w", err)
	}
	if out == nil {
		out = []ChapterModel{}
	}
	*l = out
	return nil
}
