package service

import (
	"context"
	"time"

	"instaclone/internal/models"
	"instaclone/internal/observability"
	"instaclone/internal/repository"
)

// DefaultFeedPageSize is the number of posts per feed page.
const DefaultFeedPageSize = 10

// FeedService assembles the home feed.
type FeedService struct {
	postRepo  repository.PostRepository
	graphRepo repository.GraphRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(postRepo repository.PostRepository, graphRepo repository.GraphRepository) *FeedService {
	return &FeedService{
		postRepo:  postRepo,
		graphRepo: graphRepo,
	}
}

// AssembleFeed returns one page of the user's home feed: posts by the user
// and everyone they follow, newest first with post ID as tie-break.
func (s *FeedService) AssembleFeed(ctx context.Context, userID uint, page, perPage int) ([]models.Post, error) {
	start := time.Now()
	defer func() {
		observability.FeedAssemblyLatency.Observe(time.Since(start).Seconds())
	}()

	if perPage <= 0 {
		perPage = DefaultFeedPageSize
	}

	followedIDs, err := s.graphRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Own posts are always part of the feed
	authorIDs := append(followedIDs, userID)

	return s.postRepo.Feed(ctx, authorIDs, userID, page, perPage)
}
