package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vidshare/pkg/apperr"
	"vidshare/pkg/logger"
	"vidshare/pkg/metrics"
	"vidshare/pkg/storage"
	"vidshare/services/api/internal/entity"
	"vidshare/services/api/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type ListScope int

const (
	ScopeDefault ListScope = iota
	ScopeMine
)

type VideoUseCase interface {
	CreateVideo(ctx context.Context, caller entity.Caller, draft entity.VideoDraft) (*entity.Video, error)
	ListVideos(ctx context.Context, caller entity.Caller, scope ListScope, category string) ([]*entity.Video, error)
	ListPublic(ctx context.Context, category string) ([]*entity.Video, error)
	ListMine(ctx context.Context, caller entity.Caller, category string) ([]*entity.Video, error)
	ListAllForAdmin(ctx context.Context, caller entity.Caller, category string) ([]*entity.Video, error)
	GetVideo(ctx context.Context, caller entity.Caller, videoID string) (*entity.Video, error)
	UpdateVideo(ctx context.Context, caller entity.Caller, videoID string, patch entity.VideoPatch) (*entity.Video, error)
	DeleteVideo(ctx context.Context, caller entity.Caller, videoID string) error
	RecordView(ctx context.Context, videoID, viewerKey string) (int64, error)
}

type videoUseCase struct {
	videoRepo   persistent.VideoRepository
	userRepo    persistent.UserRepository
	store       storage.Store
	redisClient *redis.Client
	dedupWindow time.Duration
	logger      *logger.Logger
}

// NewVideoUseCase builds the video store. redisClient may be nil; it is only
// used when dedupWindow is positive.
func NewVideoUseCase(
	videoRepo persistent.VideoRepository,
	userRepo persistent.UserRepository,
	store storage.Store,
	redisClient *redis.Client,
	dedupWindow time.Duration,
	logger *logger.Logger,
) VideoUseCase {
	return &videoUseCase{
		videoRepo:   videoRepo,
		userRepo:    userRepo,
		store:       store,
		redisClient: redisClient,
		dedupWindow: dedupWindow,
		logger:      logger,
	}
}

func (uc *videoUseCase) CreateVideo(ctx context.Context, caller entity.Caller, draft entity.VideoDraft) (*entity.Video, error) {
	if !caller.Authenticated() {
		return nil, apperr.Unauthorized("caller identity required")
	}
	if _, err := uuid.Parse(caller.UserID); err != nil {
		return nil, apperr.BadRequest("invalid creator id")
	}

	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, apperr.BadRequest("title is required")
	}
	if strings.TrimSpace(draft.VideoURL) == "" {
		return nil, apperr.BadRequest("videoUrl is required")
	}

	settings := entity.DefaultVideoSettings()
	settings.IsMuted = draft.IsMuted
	if draft.Visibility != "" {
		visibility, ok := entity.ParseVisibility(draft.Visibility)
		if !ok {
			return nil, apperr.BadRequest("invalid visibility")
		}
		settings.Visibility = visibility
	}

	video := &entity.Video{
		Title:       title,
		VideoURL:    draft.VideoURL,
		BannerURL:   draft.BannerURL,
		CreatorID:   caller.UserID,
		Description: draft.Description,
		Chapters:    draft.Chapters.Chapters(),
		Category:    entity.NormalizeCategory(draft.Category),
		Settings:    settings,
	}

	// The creator snapshot is best-effort: an unknown creator still gets a video.
	if creator, err := uc.userRepo.GetByID(ctx, caller.UserID); err == nil {
		video.CreatorName = creator.Name
		video.CreatorLogo = creator.Logo
	} else if !errors.Is(err, persistent.ErrNotFound) {
		uc.logger.Warn("Failed to load creator %s for snapshot: %v", caller.UserID, err)
	}

	if err := uc.videoRepo.Create(ctx, video); err != nil {
		uc.logger.Error("Failed to create video: %v", err)
		return nil, apperr.Internal("failed to create video", err)
	}
	return video, nil
}

// ListVideos picks the listing the caller is entitled to: their own videos for
// ScopeMine, everything for admins, approved videos for everyone else.
func (uc *videoUseCase) ListVideos(ctx context.Context, caller entity.Caller, scope ListScope, category string) ([]*entity.Video, error) {
	switch {
	case scope == ScopeMine:
		return uc.ListMine(ctx, caller, category)
	case caller.IsAdmin:
		return uc.ListAllForAdmin(ctx, caller, category)
	default:
		return uc.ListPublic(ctx, category)
	}
}

func (uc *videoUseCase) ListPublic(ctx context.Context, category string) ([]*entity.Video, error) {
	return uc.list(ctx, persistent.VideoFilter{ApprovedOnly: true}, category)
}

func (uc *videoUseCase) ListMine(ctx context.Context, caller entity.Caller, category string) ([]*entity.Video, error) {
	if !caller.Authenticated() {
		return nil, apperr.Unauthorized("caller identity required")
	}
	return uc.list(ctx, persistent.VideoFilter{CreatorID: caller.UserID}, category)
}

func (uc *videoUseCase) ListAllForAdmin(ctx context.Context, caller entity.Caller, category string) ([]*entity.Video, error) {
	if !caller.IsAdmin {
		return nil, apperr.Unauthorized("admin capability required")
	}
	return uc.list(ctx, persistent.VideoFilter{}, category)
}

func (uc *videoUseCase) list(ctx context.Context, filter persistent.VideoFilter, category string) ([]*entity.Video, error) {
	c, filtered, ok := entity.CategoryFilter(category)
	if !ok {
		return []*entity.Video{}, nil
	}
	if filtered {
		filter.Category = c
	}

	videos, err := uc.videoRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list videos: %v", err)
		return nil, apperr.Internal("failed to list videos", err)
	}
	return videos, nil
}

// GetVideo hides unapproved and private videos from everyone but the owner and
// admins.
func (uc *videoUseCase) GetVideo(ctx context.Context, caller entity.Caller, videoID string) (*entity.Video, error) {
	video, err := uc.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin || video.OwnedBy(caller.UserID) {
		return video, nil
	}
	if !video.Settings.IsApproved || video.Settings.Visibility == entity.VisibilityPrivate {
		return nil, apperr.NotFound("video not found")
	}
	return video, nil
}

func (uc *videoUseCase) UpdateVideo(ctx context.Context, caller entity.Caller, videoID string, patch entity.VideoPatch) (*entity.Video, error) {
	video, err := uc.ownedVideo(ctx, caller, videoID)
	if err != nil {
		return nil, err
	}

	changes := creatorChanges(patch)
	if changes.IsEmpty() {
		return video, nil
	}

	updated, err := uc.videoRepo.Update(ctx, videoID, changes)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperr.NotFound("video not found")
		}
		uc.logger.Error("Failed to update video %s: %v", videoID, err)
		return nil, apperr.Internal("failed to update video", err)
	}
	return updated, nil
}

// creatorChanges keeps the recognized, valid fields of a patch and drops the rest.
func creatorChanges(patch entity.VideoPatch) entity.VideoChanges {
	var changes entity.VideoChanges

	changes.IsMuted = patch.IsMuted
	if patch.Visibility != nil {
		if v, ok := entity.ParseVisibility(*patch.Visibility); ok {
			changes.Visibility = &v
		}
	}
	changes.BannerURL = patch.BannerURL
	if patch.Title != nil {
		if title := strings.TrimSpace(*patch.Title); title != "" {
			changes.Title = &title
		}
	}
	changes.Description = patch.Description
	if patch.Category != nil {
		if c, ok := entity.ParseCategory(*patch.Category); ok {
			changes.Category = &c
		}
	}
	if patch.Chapters.Set {
		chapters := patch.Chapters.Chapters()
		changes.Chapters = &chapters
	}
	return changes
}

func (uc *videoUseCase) DeleteVideo(ctx context.Context, caller entity.Caller, videoID string) error {
	video, err := uc.ownedVideo(ctx, caller, videoID)
	if err != nil {
		return err
	}
	return removeVideo(ctx, uc.videoRepo, uc.store, uc.logger, video)
}

// RecordView adds one view. With a dedup window configured, repeat views from
// the same viewerKey inside the window return the current count unchanged.
func (uc *videoUseCase) RecordView(ctx context.Context, videoID, viewerKey string) (int64, error) {
	if uc.dedupWindow > 0 && uc.redisClient != nil && viewerKey != "" {
		key := fmt.Sprintf("view:%s:%s", videoID, viewerKey)
		fresh, err := uc.redisClient.SetNX(ctx, key, 1, uc.dedupWindow).Result()
		if err != nil {
			uc.logger.Warn("View dedup unavailable, counting view: %v", err)
		} else if !fresh {
			video, err := uc.getVideo(ctx, videoID)
			if err != nil {
				return 0, err
			}
			return video.Stats.Views, nil
		}
	}

	views, err := uc.videoRepo.IncrementViews(ctx, videoID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return 0, apperr.NotFound("video not found")
		}
		uc.logger.Error("Failed to increment views for %s: %v", videoID, err)
		return 0, apperr.Internal("failed to record view", err)
	}
	metrics.RecordView()
	return views, nil
}

func (uc *videoUseCase) getVideo(ctx context.Context, videoID string) (*entity.Video, error) {
	return loadVideo(ctx, uc.videoRepo, uc.logger, videoID)
}

// ownedVideo loads a video the caller must own. Absence wins over ownership.
func (uc *videoUseCase) ownedVideo(ctx context.Context, caller entity.Caller, videoID string) (*entity.Video, error) {
	if !caller.Authenticated() {
		return nil, apperr.Unauthorized("caller identity required")
	}
	video, err := uc.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.OwnedBy(caller.UserID) {
		return nil, apperr.Forbidden("only the creator may change this video")
	}
	return video, nil
}

func loadVideo(ctx context.Context, repo persistent.VideoRepository, log *logger.Logger, videoID string) (*entity.Video, error) {
	video, err := repo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperr.NotFound("video not found")
		}
		log.Error("Failed to load video %s: %v", videoID, err)
		return nil, apperr.Internal("failed to load video", err)
	}
	return video, nil
}

// removeVideo deletes the media files best-effort, then the record. The record
// delete decides the outcome.
func removeVideo(ctx context.Context, repo persistent.VideoRepository, store storage.Store, log *logger.Logger, video *entity.Video) error {
	for _, mediaURL := range []string{video.VideoURL, video.BannerURL} {
		if mediaURL == "" || store == nil {
			continue
		}
		if err := store.Remove(ctx, mediaURL); err != nil {
			metrics.RecordMediaCleanupFailure()
			log.Warn("Failed to remove media %s for video %s: %v", mediaURL, video.ID, err)
		}
	}

	if err := repo.Delete(ctx, video.ID); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return apperr.NotFound("video not found")
		}
		log.Error("Failed to delete video %s: %v", video.ID, err)
		return apperr.Internal("failed to delete video", err)
	}
	return nil
}
