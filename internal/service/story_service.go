package service

import (
	"context"
	"log/slog"
	"time"

	"instaclone/internal/middleware"
	"instaclone/internal/models"
	"instaclone/internal/observability"
	"instaclone/internal/repository"
	"instaclone/internal/storage"
)

// MaxVisibleStories caps the story tray.
const MaxVisibleStories = 21

// StoryService manages ephemeral stories and their expiry.
type StoryService struct {
	storyRepo repository.StoryRepository
	graphRepo repository.GraphRepository
	store     storage.Store
	now       func() time.Time
}

// NewStoryService returns a new StoryService.
func NewStoryService(storyRepo repository.StoryRepository, graphRepo repository.GraphRepository, store storage.Store) *StoryService {
	return &StoryService{
		storyRepo: storyRepo,
		graphRepo: graphRepo,
		store:     store,
		now:       time.Now,
	}
}

// Create validates the time span and stores the story.
func (s *StoryService) Create(ctx context.Context, authorID uint, timeSpan int, file string) (*models.Story, error) {
	if !models.ValidStorySpan(timeSpan) {
		return nil, models.NewValidationError("Time span must be 12, 24, 48 or 72 hours")
	}
	if file == "" {
		return nil, models.NewValidationError("Story file is required")
	}

	story := &models.Story{
		AuthorID:  authorID,
		TimeSpan:  timeSpan,
		File:      file,
		CreatedAt: s.now(),
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// Delete removes a story and its media. Author only.
func (s *StoryService) Delete(ctx context.Context, storyID, userID uint) error {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return err
	}
	if story.AuthorID != userID {
		return models.NewUnauthorizedError("You can only delete your own stories")
	}

	if err := s.storyRepo.DeleteByIDs(ctx, []uint{storyID}); err != nil {
		return err
	}
	_ = s.store.Delete(ctx, story.File)
	return nil
}

// VisibleStories returns up to MaxVisibleStories unexpired stories by the
// user and the users they follow, newest first. A reap pass runs first so
// expired stories disappear on the read that finds them.
func (s *StoryService) VisibleStories(ctx context.Context, userID uint) ([]models.Story, error) {
	// Expiry failures must not break the read path
	if _, err := s.Reap(ctx); err != nil {
		middleware.Logger.WarnContext(ctx, "story reap failed", slog.String("error", err.Error()))
	}

	followedIDs, err := s.graphRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	authorIDs := append(followedIDs, userID)

	stories, err := s.storyRepo.ListByAuthors(ctx, authorIDs, MaxVisibleStories)
	if err != nil {
		return nil, err
	}

	// The reap pass and this read race against new expiries; filter again
	// so an expired story never reaches the caller.
	now := s.now()
	visible := stories[:0]
	for _, story := range stories {
		if !story.Expired(now) {
			visible = append(visible, story)
		}
	}
	return visible, nil
}

// Reap deletes every expired story and its media. The pass is idempotent:
// concurrent reapers may race on the same rows, and losing the race is
// harmless. Returns the number of stories removed.
func (s *StoryService) Reap(ctx context.Context) (int, error) {
	now := s.now()

	// Only stories older than the shortest span can be expired
	cutoff := now.Add(-time.Duration(models.StorySpan12) * time.Hour)
	candidates, err := s.storyRepo.ListCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	var expiredIDs []uint
	var files []string
	for _, story := range candidates {
		if story.Expired(now) {
			expiredIDs = append(expiredIDs, story.ID)
			files = append(files, story.File)
		}
	}
	if len(expiredIDs) == 0 {
		return 0, nil
	}

	if err := s.storyRepo.DeleteByIDs(ctx, expiredIDs); err != nil {
		return 0, err
	}

	for _, file := range files {
		// Missing files are fine: another reaper got there first
		if err := s.store.Delete(ctx, file); err != nil {
			middleware.Logger.WarnContext(ctx, "story media delete failed",
				slog.String("file", file),
				slog.String("error", err.Error()),
			)
		}
	}

	observability.StoriesReaped.Add(float64(len(expiredIDs)))
	return len(expiredIDs), nil
}

// RunReaper reaps on the given interval until ctx is cancelled. Backstop
// for stories nobody reads.
func (s *StoryService) RunReaper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := s.Reap(ctx); err != nil {
				middleware.Logger.ErrorContext(ctx, "scheduled story reap failed", slog.String("error", err.Error()))
			} else if n > 0 {
				middleware.Logger.InfoContext(ctx, "scheduled story reap", slog.Int("reaped", n))
			}
		}
	}
}
