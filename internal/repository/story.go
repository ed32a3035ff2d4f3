package repository

import (
	"context"
	"errors"
	"time"

	"instaclone/internal/models"

	"gorm.io/gorm"
)

// StoryRepository defines the interface for story data operations
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id uint) (*models.Story, error)
	// ListByAuthors returns stories by the given users, newest first,
	// capped at limit. Expiry filtering happens in the service.
	ListByAuthors(ctx context.Context, authorIDs []uint, limit int) ([]models.Story, error)
	// ListCreatedBefore returns reaper candidates: stories old enough that
	// at least the shortest time span has elapsed.
	ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.Story, error)
	DeleteByIDs(ctx context.Context, ids []uint) error
	// DeleteByAuthor removes every story the author created and returns the
	// storage keys of the removed media.
	DeleteByAuthor(ctx context.Context, authorID uint) ([]string, error)
}

// storyRepository implements StoryRepository
type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	if err := r.db.WithContext(ctx).Create(story).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *storyRepository) GetByID(ctx context.Context, id uint) (*models.Story, error) {
	var story models.Story
	if err := r.db.WithContext(ctx).Preload("Author").First(&story, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Story", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &story, nil
}

func (r *storyRepository) ListByAuthors(ctx context.Context, authorIDs []uint, limit int) ([]models.Story, error) {
	if len(authorIDs) == 0 {
		return []models.Story{}, nil
	}
	var stories []models.Story
	if err := r.db.WithContext(ctx).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Preload("Author").
		Find(&stories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stories, nil
}

func (r *storyRepository) ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.Story, error) {
	var stories []models.Story
	if err := r.db.WithContext(ctx).
		Where("created_at <= ?", cutoff).
		Find(&stories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stories, nil
}

func (r *storyRepository) DeleteByAuthor(ctx context.Context, authorID uint) ([]string, error) {
	var files []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Story{}).
			Where("author_id = ?", authorID).
			Pluck("file", &files).Error; err != nil {
			return err
		}
		return tx.Where("author_id = ?", authorID).Delete(&models.Story{}).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return files, nil
}

func (r *storyRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.Story{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
