package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vidshare/pkg/apperr"
	"vidshare/pkg/logger"
	"vidshare/pkg/metrics"
	"vidshare/pkg/queue"
	"vidshare/pkg/storage"
	"vidshare/services/api/internal/entity"
	"vidshare/services/api/internal/repo/persistent"
)

// Notifier appends a message to a user's inbox.
type Notifier interface {
	AppendNotification(ctx context.Context, userID, message string) error
}

// EventPublisher announces moderation actions. *queue.Client implements it.
type EventPublisher interface {
	Publish(ctx context.Context, event queue.Event) error
}

const (
	EventVideoHidden   = "video_hidden"
	EventVideoApproval = "video_approval"
	EventVideoDeleted  = "video_deleted"
)

// HiddenByAdminMessage is the inbox message sent when an admin makes a video private.
func HiddenByAdminMessage(title string) string {
	return fmt.Sprintf("Your video \"%s\" has been hidden by an admin.", title)
}

// ModerationUseCase holds the admin-only transitions. None of them check ownership.
type ModerationUseCase interface {
	SetMuteOverride(ctx context.Context, caller entity.Caller, videoID string, override bool) (*entity.Video, error)
	SetApproval(ctx context.Context, caller entity.Caller, videoID string, approved bool) (*entity.Video, error)
	SetVisibility(ctx context.Context, caller entity.Caller, videoID, visibility string) (*entity.Video, error)
	DeleteVideo(ctx context.Context, caller entity.Caller, videoID string) error
}

type moderationUseCase struct {
	videoRepo persistent.VideoRepository
	notifier  Notifier
	store     storage.Store
	publisher EventPublisher
	logger    *logger.Logger
}

// NewModerationUseCase wires the admin transitions. publisher may be nil.
func NewModerationUseCase(
	videoRepo persistent.VideoRepository,
	notifier Notifier,
	store storage.Store,
	publisher EventPublisher,
	logger *logger.Logger,
) ModerationUseCase {
	return &moderationUseCase{
		videoRepo: videoRepo,
		notifier:  notifier,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *moderationUseCase) SetMuteOverride(ctx context.Context, caller entity.Caller, videoID string, override bool) (*entity.Video, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	video, err := uc.update(ctx, videoID, entity.VideoChanges{AdminMuteOverride: &override})
	if err != nil {
		return nil, err
	}
	metrics.RecordModeration("mute_override")
	return video, nil
}

func (uc *moderationUseCase) SetApproval(ctx context.Context, caller entity.Caller, videoID string, approved bool) (*entity.Video, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	video, err := uc.update(ctx, videoID, entity.VideoChanges{IsApproved: &approved})
	if err != nil {
		return nil, err
	}
	metrics.RecordModeration("approve")
	uc.publish(ctx, EventVideoApproval, video, map[string]interface{}{"is_approved": approved}, 3)
	return video, nil
}

// SetVisibility overrides a video's visibility. Making it private notifies the
// creator, using the title the video had before the change.
func (uc *moderationUseCase) SetVisibility(ctx context.Context, caller entity.Caller, videoID, visibility string) (*entity.Video, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	current, err := loadVideo(ctx, uc.videoRepo, uc.logger, videoID)
	if err != nil {
		return nil, err
	}

	v, ok := entity.ParseVisibility(visibility)
	if !ok {
		return nil, apperr.BadRequest("visibility must be public, private or unlisted")
	}

	updated, err := uc.update(ctx, videoID, entity.VideoChanges{Visibility: &v})
	if err != nil {
		return nil, err
	}
	metrics.RecordModeration("visibility")

	if v == entity.VisibilityPrivate && current.CreatorID != "" {
		if err := uc.notifier.AppendNotification(ctx, current.CreatorID, HiddenByAdminMessage(current.Title)); err != nil {
			uc.logger.Warn("Failed to notify creator %s about hidden video %s: %v", current.CreatorID, videoID, err)
		}
		uc.publish(ctx, EventVideoHidden, updated, map[string]interface{}{"title": current.Title}, 5)
	}
	return updated, nil
}

func (uc *moderationUseCase) DeleteVideo(ctx context.Context, caller entity.Caller, videoID string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	video, err := loadVideo(ctx, uc.videoRepo, uc.logger, videoID)
	if err != nil {
		return err
	}
	if err := removeVideo(ctx, uc.videoRepo, uc.store, uc.logger, video); err != nil {
		return err
	}
	metrics.RecordModeration("delete")
	uc.publish(ctx, EventVideoDeleted, video, nil, 2)
	return nil
}

func (uc *moderationUseCase) update(ctx context.Context, videoID string, changes entity.VideoChanges) (*entity.Video, error) {
	video, err := uc.videoRepo.Update(ctx, videoID, changes)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperr.NotFound("video not found")
		}
		uc.logger.Error("Failed to moderate video %s: %v", videoID, err)
		return nil, apperr.Internal("failed to update video", err)
	}
	return video, nil
}

// publish is fire-and-forget; a broker outage never fails a moderation action.
func (uc *moderationUseCase) publish(ctx context.Context, eventType string, video *entity.Video, data map[string]interface{}, priority int) {
	if uc.publisher == nil {
		return
	}
	event := queue.Event{
		Type:      eventType,
		VideoID:   video.ID,
		CreatorID: video.CreatorID,
		Data:      data,
		Priority:  priority,
		CreatedAt: time.Now(),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("[MODERATION QUEUE] Failed to publish %s for video %s: %v", eventType, video.ID, err)
		return
	}
	uc.logger.Info("[MODERATION QUEUE] Published %s for video %s", eventType, video.ID)
}

func requireAdmin(caller entity.Caller) error {
	if !caller.IsAdmin {
		return apperr.Unauthorized("admin capability required")
	}
	return nil
}
