package persistent

import (
	"context"

	"vidshare/services/api/internal/entity"
	"vidshare/services/api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoFilter narrows List. Zero values mean no restriction.
type VideoFilter struct {
	CreatorID    string
	ApprovedOnly bool
	Category     entity.Category
}

type VideoRepository interface {
	Create(ctx context.Context, video *entity.Video) error
	GetByID(ctx context.Context, id string) (*entity.Video, error)
	List(ctx context.Context, filter VideoFilter) ([]*entity.Video, error)
	Update(ctx context.Context, id string, changes entity.VideoChanges) (*entity.Video, error)
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) (int64, error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *entity.Video) error {
	videoModel := ToVideoModel(video)
	if err := r.db.WithContext(ctx).Create(videoModel).Error; err != nil {
		return translate(err)
	}
	*video = *ToVideoEntity(videoModel)
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var videoModel model.VideoModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&videoModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToVideoEntity(&videoModel), nil
}

// List returns matching videos newest first.
func (r *videoRepository) List(ctx context.Context, filter VideoFilter) ([]*entity.Video, error) {
	query := r.db.WithContext(ctx).Model(&model.VideoModel{})
	if filter.CreatorID != "" {
		if !validID(filter.CreatorID) {
			return []*entity.Video{}, nil
		}
		query = query.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.ApprovedOnly {
		query = query.Where("settings_is_approved = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}

	var videoModels []model.VideoModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&videoModels).Error; err != nil {
		return nil, err
	}

	videos := make([]*entity.Video, len(videoModels))
	for i := range videoModels {
		videos[i] = ToVideoEntity(&videoModels[i])
	}
	return videos, nil
}

// Update writes every change in one statement and returns the stored result.
func (r *videoRepository) Update(ctx context.Context, id string, changes entity.VideoChanges) (*entity.Video, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	if !changes.IsEmpty() {
		result := r.db.WithContext(ctx).
			Model(&model.VideoModel{}).
			Where("id = ?", id).
			Updates(videoColumns(changes))
		if result.Error != nil {
			return nil, translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.VideoModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews adds one view in a single UPDATE and returns the new count,
// so concurrent calls never lose an increment.
func (r *videoRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	if !validID(id) {
		return 0, ErrNotFound
	}
	var videoModel model.VideoModel
	result := r.db.WithContext(ctx).
		Model(&videoModel).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "views"}}}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return videoModel.Views, nil
}
