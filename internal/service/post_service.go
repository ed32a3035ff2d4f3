package service

import (
	"context"
	"fmt"

	"instaclone/internal/cache"
	"instaclone/internal/models"
	"instaclone/internal/repository"
	"instaclone/internal/storage"
)

// LikedBySummarySize is how many likers the "liked by" strip shows.
const LikedBySummarySize = 3

// PostService handles posts, likes, bookmarks and reports.
type PostService struct {
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	graph        *GraphService
	notification *NotificationService
	store        storage.Store
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, graph *GraphService, notification *NotificationService, store storage.Store) *PostService {
	return &PostService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		graph:        graph,
		notification: notification,
		store:        store,
	}
}

// Create stores a new post.
func (s *PostService) Create(ctx context.Context, authorID uint, description, location, file string) (*models.Post, error) {
	if file == "" {
		return nil, models.NewValidationError("Post file is required")
	}

	post := &models.Post{
		AuthorID:    authorID,
		Description: description,
		Location:    location,
		File:        file,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Get returns a post with viewer-specific computed fields. Viewing is
// subject to the block guard against the author.
func (s *PostService) Get(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.graph.BlockGuard(ctx, viewerID, post.AuthorID); err != nil {
		return nil, err
	}
	return post, nil
}

// ByAuthor returns an author's posts for their profile page.
func (s *PostService) ByAuthor(ctx context.Context, authorID, viewerID uint) ([]models.Post, error) {
	if err := s.graph.BlockGuard(ctx, viewerID, authorID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByAuthor(ctx, authorID, viewerID)
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, postID, userID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	cache.InvalidateLikes(ctx, postID)

	// The row is gone; a stale file is not worth failing the request
	_ = s.store.Delete(ctx, post.File)
	return nil
}

// TogglePrivacy flips the post's private flag. Author only.
func (s *PostService) TogglePrivacy(ctx context.Context, postID, userID uint) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return false, err
	}
	if post.AuthorID != userID {
		return false, models.NewUnauthorizedError("You can only change your own posts")
	}
	return s.postRepo.TogglePrivacy(ctx, postID)
}

// ToggleLike flips the viewer's like on the post. Liking notifies the
// author; unliking does not retract the notification.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return false, err
	}
	if err := s.graph.BlockGuard(ctx, userID, post.AuthorID); err != nil {
		return false, err
	}

	liked, err := s.postRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		return false, err
	}

	if liked {
		actor, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return false, err
		}
		if err := s.notification.Notify(ctx, userID, post.AuthorID, models.NotificationLike,
			fmt.Sprintf("%s liked your post", actor.Username),
			fmt.Sprintf("/post/%d", postID),
		); err != nil {
			return false, err
		}
	}

	cache.InvalidateLikes(ctx, postID)
	return liked, nil
}

// LikedBySummary returns the first likers plus the total count, cache-aside.
// The summary is viewer-independent, so one entry serves every reader; like
// toggles and post deletion invalidate it.
func (s *PostService) LikedBySummary(ctx context.Context, postID, viewerID uint) (*models.LikeSummary, error) {
	var cached models.LikeSummary
	if cache.GetJSON(ctx, cache.LikesKey(postID), &cached) {
		return &cached, nil
	}

	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	first, err := s.postRepo.LikedBy(ctx, postID, LikedBySummarySize)
	if err != nil {
		return nil, err
	}

	summary := &models.LikeSummary{Count: post.LikesCount, First: first}
	cache.SetJSON(ctx, cache.LikesKey(postID), summary, cache.LikesTTL)
	return summary, nil
}

// ToggleBookmark flips the viewer's bookmark on the post. Bookmarks are
// private; no notification is produced.
func (s *PostService) ToggleBookmark(ctx context.Context, postID, userID uint) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return false, err
	}
	return s.postRepo.ToggleBookmark(ctx, userID, postID)
}

// Bookmarks returns the viewer's saved posts, newest bookmark first.
func (s *PostService) Bookmarks(ctx context.Context, userID uint) ([]models.Post, error) {
	return s.postRepo.Bookmarks(ctx, userID)
}

// Report flags a post for moderation.
func (s *PostService) Report(ctx context.Context, postID, reporterID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, reporterID); err != nil {
		return err
	}
	return s.postRepo.CreateReport(ctx, &models.Report{PostID: postID, ReporterID: reporterID})
}
