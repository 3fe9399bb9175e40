package persistent

import (
	"vidshare/services/api/internal/entity"
	"vidshare/services/api/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Logo:         m.Logo,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:           e.ID,
		Email:        e.Email,
		Name:         e.Name,
		PasswordHash: e.PasswordHash,
		Logo:         e.Logo,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func ToNotificationEntity(m *model.NotificationModel) entity.Notification {
	return entity.Notification{
		ID:      m.ID,
		UserID:  m.UserID,
		Message: m.Message,
		Date:    m.CreatedAt,
		Read:    m.Read,
	}
}

func ToVideoEntity(m *model.VideoModel) *entity.Video {
	if m == nil {
		return nil
	}

	return &entity.Video{
		ID:          m.ID,
		Title:       m.Title,
		VideoURL:    m.VideoURL,
		BannerURL:   m.BannerURL,
		CreatorID:   m.CreatorID,
		CreatorName: m.CreatorName,
		CreatorLogo: m.CreatorLogo,
		Description: m.Description,
		Chapters:    toChapterEntities(m.Chapters),
		Category:    entity.Category(m.Category),
		Settings: entity.VideoSettings{
			IsMuted:           m.Settings.IsMuted,
			IsApproved:        m.Settings.IsApproved,
			AdminMuteOverride: m.Settings.AdminMuteOverride,
			Visibility:        entity.Visibility(m.Settings.Visibility),
		},
		Stats:     entity.VideoStats{Views: m.Views},
		CreatedAt: m.CreatedAt,
	}
}

func ToVideoModel(e *entity.Video) *model.VideoModel {
	if e == nil {
		return nil
	}

	return &model.VideoModel{
		ID:          e.ID,
		CreatorID:   e.CreatorID,
		Title:       e.Title,
		VideoURL:    e.VideoURL,
		BannerURL:   e.BannerURL,
		CreatorName: e.CreatorName,
		CreatorLogo: e.CreatorLogo,
		Description: e.Description,
		Chapters:    toChapterModels(e.Chapters),
		Category:    string(e.Category),
		Settings: model.SettingsModel{
			IsMuted:           e.Settings.IsMuted,
			IsApproved:        e.Settings.IsApproved,
			AdminMuteOverride: e.Settings.AdminMuteOverride,
			Visibility:        string(e.Settings.Visibility),
		},
		Views:     e.Stats.Views,
		CreatedAt: e.CreatedAt,
	}
}

func toChapterEntities(list model.ChapterList) []entity.Chapter {
	out := make([]entity.Chapter, len(list))
	for i, c := range list {
		out[i] = entity.Chapter{Time: c.Time, Label: c.Label}
	}
	return out
}

func toChapterModels(chapters []entity.Chapter) model.ChapterList {
	out := make(model.ChapterList, len(chapters))
	for i, c := range chapters {
		out[i] = model.ChapterModel{Time: c.Time, Label: c.Label}
	}
	return out
}

// videoColumns maps a change set onto the columns it writes.
func videoColumns(c entity.VideoChanges) map[string]interface{} {
	cols := map[string]interface{}{}
	if c.Title != nil {
		cols["title"] = *c.Title
	}
	if c.Description != nil {
		cols["description"] = *c.Description
	}
	if c.BannerURL != nil {
		cols["banner_url"] = *c.BannerURL
	}
	if c.Category != nil {
		cols["category"] = string(*c.Category)
	}
	if c.Chapters != nil {
		cols["chapters"] = toChapterModels(*c.Chapters)
	}
	if c.IsMuted != nil {
		cols["settings_is_muted"] = *c.IsMuted
	}
	if c.Visibility != nil {
		cols["settings_visibility"] = string(*c.Visibility)
	}
	if c.IsApproved != nil {
		cols["settings_is_approved"] = *c.IsApproved
	}
	if c.AdminMuteOverride != nil {
		cols["settings_admin_mute_override"] = *c.AdminMuteOverride
	}
	return cols
}
