package service

import (
	"context"
	"fmt"

	"instaclone/internal/models"
	"instaclone/internal/repository"
)

// GraphService manages follow and block relationships.
type GraphService struct {
	graphRepo    repository.GraphRepository
	userRepo     repository.UserRepository
	notification *NotificationService
}

// NewGraphService returns a new GraphService.
func NewGraphService(graphRepo repository.GraphRepository, userRepo repository.UserRepository, notification *NotificationService) *GraphService {
	return &GraphService{
		graphRepo:    graphRepo,
		userRepo:     userRepo,
		notification: notification,
	}
}

// BlockGuard rejects any interaction between two users with a block edge
// in either direction. The guard runs before the mutation, so a blocked
// request leaves no trace.
func (s *GraphService) BlockGuard(ctx context.Context, userID, otherID uint) error {
	if userID == otherID {
		return nil
	}
	blocked, err := s.graphRepo.IsBlockedEither(ctx, userID, otherID)
	if err != nil {
		return err
	}
	if blocked {
		return models.NewForbiddenError("Interaction not allowed")
	}
	return nil
}

// ToggleFollow follows the target if no edge exists and unfollows
// otherwise. Returns the resulting state. Following notifies the target.
func (s *GraphService) ToggleFollow(ctx context.Context, userID, targetID uint) (bool, error) {
	if userID == targetID {
		return false, models.NewValidationError("Cannot follow yourself")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return false, err
	}

	if err := s.BlockGuard(ctx, userID, targetID); err != nil {
		return false, err
	}

	following, err := s.graphRepo.IsFollowing(ctx, userID, targetID)
	if err != nil {
		return false, err
	}

	if following {
		if err := s.graphRepo.Unfollow(ctx, userID, targetID); err != nil {
			return false, err
		}
	} else {
		if err := s.graphRepo.Follow(ctx, userID, targetID); err != nil {
			return false, err
		}

		actor, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return false, err
		}
		if err := s.notification.Notify(ctx, userID, target.ID, models.NotificationFollow,
			fmt.Sprintf("%s started following you", actor.Username),
			fmt.Sprintf("/profile/%d", userID),
		); err != nil {
			return false, err
		}
	}

	return !following, nil
}

// ToggleBlock blocks the target if no block edge exists and unblocks
// otherwise. Blocking severs follows in both directions atomically.
func (s *GraphService) ToggleBlock(ctx context.Context, userID, targetID uint) (bool, error) {
	if userID == targetID {
		return false, models.NewValidationError("Cannot block yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}

	blocked, err := s.graphRepo.HasBlock(ctx, userID, targetID)
	if err != nil {
		return false, err
	}

	if blocked {
		if err := s.graphRepo.Unblock(ctx, userID, targetID); err != nil {
			return false, err
		}
	} else {
		if err := s.graphRepo.Block(ctx, userID, targetID); err != nil {
			return false, err
		}
	}

	return !blocked, nil
}

// IsFollowing reports whether userID follows targetID.
func (s *GraphService) IsFollowing(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.graphRepo.IsFollowing(ctx, userID, targetID)
}

// Counts returns follower and following counts for a user.
func (s *GraphService) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	return s.graphRepo.Counts(ctx, userID)
}

// Followers returns the users following userID.
func (s *GraphService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	ids, err := s.graphRepo.FollowerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByIDs(ctx, ids)
}

// Following returns the users userID follows.
func (s *GraphService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	ids, err := s.graphRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByIDs(ctx, ids)
}
