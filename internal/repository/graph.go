// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"instaclone/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GraphRepository defines the interface for follow and block edge operations
type GraphRepository interface {
	Follow(ctx context.Context, followerID, followedID uint) error
	Unfollow(ctx context.Context, followerID, followedID uint) error
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)
	FollowerIDs(ctx context.Context, userID uint) ([]uint, error)
	Counts(ctx context.Context, userID uint) (followers int64, following int64, err error)

	Block(ctx context.Context, blockerID, blockedID uint) error
	Unblock(ctx context.Context, blockerID, blockedID uint) error
	HasBlock(ctx context.Context, blockerID, blockedID uint) (bool, error)
	// IsBlockedEither reports whether a block edge exists between the two
	// users in either direction.
	IsBlockedEither(ctx context.Context, userID1, userID2 uint) (bool, error)
	// BlockedEitherIDs returns every user with a block edge to or from
	// userID, regardless of direction.
	BlockedEitherIDs(ctx context.Context, userID uint) ([]uint, error)

	// DeleteEdgesFor removes every follow and block edge touching the user,
	// in both directions. Used when the account is deleted.
	DeleteEdgesFor(ctx context.Context, userID uint) error

	// MutualCandidates returns (candidate, mutual) pairs: mutual is followed
	// by userID and follows candidate. Candidates the viewer already follows,
	// and the viewer itself, are excluded.
	MutualCandidates(ctx context.Context, userID uint) ([]models.MutualEdge, error)
}

// graphRepository implements GraphRepository
type graphRepository struct {
	db *gorm.DB
}

// NewGraphRepository creates a new graph repository
func NewGraphRepository(db *gorm.DB) GraphRepository {
	return &graphRepository{db: db}
}

func (r *graphRepository) Follow(ctx context.Context, followerID, followedID uint) error {
	edge := models.Follow{FollowerID: followerID, FollowedID: followedID}
	// Idempotent: a duplicate edge is a no-op
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *graphRepository) Unfollow(ctx context.Context, followerID, followedID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *graphRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *graphRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *graphRepository) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followed_id = ?", userID).
		Pluck("follower_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *graphRepository) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	var followers, following int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followed_id = ?", userID).
		Count(&followers).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&following).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	return followers, following, nil
}

// Block creates the block edge and severs follows in both directions in a
// single transaction.
func (r *graphRepository) Block(ctx context.Context, blockerID, blockedID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		edge := models.Block{BlockerID: blockerID, BlockedID: blockedID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
			return err
		}
		return tx.
			Where("(follower_id = ? AND followed_id = ?) OR (follower_id = ? AND followed_id = ?)",
				blockerID, blockedID, blockedID, blockerID).
			Delete(&models.Follow{}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *graphRepository) Unblock(ctx context.Context, blockerID, blockedID uint) error {
	if err := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *graphRepository) HasBlock(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *graphRepository) IsBlockedEither(ctx context.Context, userID1, userID2 uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userID1, userID2, userID2, userID1).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *graphRepository) BlockedEitherIDs(ctx context.Context, userID uint) ([]uint, error) {
	type row struct {
		BlockerID uint
		BlockedID uint
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.Block{}).
		Where("blocker_id = ? OR blocked_id = ?", userID, userID).
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	seen := make(map[uint]struct{}, len(rows))
	ids := make([]uint, 0, len(rows))
	for _, rw := range rows {
		other := rw.BlockerID
		if other == userID {
			other = rw.BlockedID
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids, nil
}

func (r *graphRepository) DeleteEdgesFor(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("follower_id = ? OR followed_id = ?", userID, userID).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		return tx.
			Where("blocker_id = ? OR blocked_id = ?", userID, userID).
			Delete(&models.Block{}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *graphRepository) MutualCandidates(ctx context.Context, userID uint) ([]models.MutualEdge, error) {
	var edges []models.MutualEdge
	if err := r.db.WithContext(ctx).
		Table("follows f1").
		Select("f2.followed_id AS candidate_id, f2.follower_id AS mutual_id").
		Joins("JOIN follows f2 ON f2.follower_id = f1.followed_id").
		Where("f1.follower_id = ?", userID).
		Where("f2.followed_id != ?", userID).
		Where("f2.followed_id NOT IN (?)",
			r.db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", userID),
		).
		Scan(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}
