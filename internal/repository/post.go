package repository

import (
	"context"
	"errors"

	"instaclone/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	GetByAuthor(ctx context.Context, authorID uint, viewerID uint) ([]models.Post, error)
	// Feed returns posts authored by the given users, newest first with ID
	// as tie-break, paginated.
	Feed(ctx context.Context, authorIDs []uint, viewerID uint, page, perPage int) ([]models.Post, error)
	Delete(ctx context.Context, id uint) error
	// DeleteByAuthor removes every post the author created along with the
	// engagement attached to those posts, plus the author's own likes,
	// bookmarks and reports on other posts. Returns the storage keys of the
	// removed post media.
	DeleteByAuthor(ctx context.Context, authorID uint) ([]string, error)
	TogglePrivacy(ctx context.Context, id uint) (bool, error)

	ToggleLike(ctx context.Context, userID, postID uint) (bool, error)
	LikedBy(ctx context.Context, postID uint, limit int) ([]models.User, error)

	ToggleBookmark(ctx context.Context, userID, postID uint) (bool, error)
	Bookmarks(ctx context.Context, userID uint) ([]models.Post, error)

	CreateReport(ctx context.Context, report *models.Report) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), viewerID).
		Preload("Author").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetByAuthor(ctx context.Context, authorID uint, viewerID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), viewerID).
		Where("posts.author_id = ?", authorID).
		Order("posts.created_at DESC, posts.id DESC").
		Preload("Author").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Feed(ctx context.Context, authorIDs []uint, viewerID uint, page, perPage int) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	if page < 1 {
		page = 1
	}

	var posts []models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), viewerID).
		Where("posts.author_id IN ?", authorIDs).
		Order("posts.created_at DESC, posts.id DESC").
		Offset((page-1)*perPage).
		Limit(perPage).
		Preload("Author").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) DeleteByAuthor(ctx context.Context, authorID uint) ([]string, error) {
	var files []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		type row struct {
			ID   uint
			File string
		}
		var rows []row
		if err := tx.Model(&models.Post{}).
			Where("author_id = ?", authorID).
			Scan(&rows).Error; err != nil {
			return err
		}

		if len(rows) > 0 {
			ids := make([]uint, len(rows))
			for i, rw := range rows {
				ids[i] = rw.ID
				files = append(files, rw.File)
			}

			commentIDs := tx.Model(&models.Comment{}).Select("id").Where("post_id IN ?", ids)
			if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", ids).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", ids).Delete(&models.Bookmark{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", ids).Delete(&models.Report{}).Error; err != nil {
				return err
			}
			if err := tx.Where("author_id = ?", authorID).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		// The author's own engagement on everyone else's content
		if err := tx.Where("author_id = ?", authorID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", authorID).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		return tx.Where("reporter_id = ?", authorID).Delete(&models.Report{}).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return files, nil
}

func (r *postRepository) TogglePrivacy(ctx context.Context, id uint) (bool, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Select("id", "private").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, models.NewNotFoundError("Post", id)
		}
		return false, models.NewInternalError(err)
	}
	next := !post.Private
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("private", next).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return next, nil
}

// ToggleLike flips the like edge for the post and returns the new state.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("author_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		like := models.Like{AuthorID: userID, PostID: &postID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return liked, nil
}

// LikedBy returns the earliest likers of a post in like order.
func (r *postRepository) LikedBy(ctx context.Context, postID uint, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN likes ON likes.author_id = users.id").
		Where("likes.post_id = ?", postID).
		Order("likes.id ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *postRepository) ToggleBookmark(ctx context.Context, userID, postID uint) (bool, error) {
	var saved bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Bookmark{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			saved = false
			return nil
		}
		bookmark := models.Bookmark{UserID: userID, PostID: postID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&bookmark).Error; err != nil {
			return err
		}
		saved = true
		return nil
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return saved, nil
}

func (r *postRepository) Bookmarks(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), userID).
		Joins("JOIN bookmarks ON bookmarks.post_id = posts.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.id DESC").
		Preload("Author").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CreateReport(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted = ?) as comments_count"

	if viewerID > 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.author_id = ?) as liked",
			false, viewerID)
	}
	return db.Select(selectQuery+", ? as liked", false, false)
}
