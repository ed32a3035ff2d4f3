package service

import (
	"context"
	"log/slog"
	"strings"

	"instaclone/internal/cache"
	"instaclone/internal/middleware"
	"instaclone/internal/models"
	"instaclone/internal/repository"
	"instaclone/internal/search"
	"instaclone/internal/storage"
)

// SearchPageSize is the number of profiles per search result page.
const SearchPageSize = 8

// Profile is a user with their graph counts and posts.
type Profile struct {
	User       models.User   `json:"user"`
	Followers  int64         `json:"followers"`
	Following  int64         `json:"following"`
	Posts      []models.Post `json:"posts"`
	IsFollowed bool          `json:"is_followed"`
}

// SearchResult is one page of profile search matches.
type SearchResult struct {
	Users []models.User `json:"users"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
}

// UserService handles profiles, search and account lifecycle.
type UserService struct {
	userRepo         repository.UserRepository
	graphRepo        repository.GraphRepository
	postRepo         repository.PostRepository
	storyRepo        repository.StoryRepository
	commentRepo      repository.CommentRepository
	notificationRepo repository.NotificationRepository
	messageRepo      repository.MessageRepository
	indexer          search.Indexer
	store            storage.Store
	graph            *GraphService
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, graphRepo repository.GraphRepository, postRepo repository.PostRepository, storyRepo repository.StoryRepository, commentRepo repository.CommentRepository, notificationRepo repository.NotificationRepository, messageRepo repository.MessageRepository, indexer search.Indexer, store storage.Store, graph *GraphService) *UserService {
	return &UserService{
		userRepo:         userRepo,
		graphRepo:        graphRepo,
		postRepo:         postRepo,
		storyRepo:        storyRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
		messageRepo:      messageRepo,
		indexer:          indexer,
		store:            store,
		graph:            graph,
	}
}

// Register creates an account and indexes the profile. The password must
// already be hashed by the caller.
func (s *UserService) Register(ctx context.Context, username, email, hashedPassword string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if username == "" || email == "" || hashedPassword == "" {
		return nil, models.NewValidationError("Username, email and password are required")
	}

	if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username already taken")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email already registered")
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.index(ctx, user)
	return user, nil
}

// Get returns a user by ID, cache-aside. Profile updates and deletion
// invalidate the entry.
func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	var cached models.User
	if cache.GetJSON(ctx, cache.UserKey(userID), &cached) {
		return &cached, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, cache.UserKey(userID), user, cache.UserTTL)
	return user, nil
}

// GetProfile returns the profile page data for a user, subject to the
// block guard.
func (s *UserService) GetProfile(ctx context.Context, profileID, viewerID uint) (*Profile, error) {
	user, err := s.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if err := s.graph.BlockGuard(ctx, viewerID, profileID); err != nil {
		return nil, err
	}

	followers, following, err := s.graphRepo.Counts(ctx, profileID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.GetByAuthor(ctx, profileID, viewerID)
	if err != nil {
		return nil, err
	}

	isFollowed := false
	if viewerID != profileID {
		isFollowed, err = s.graphRepo.IsFollowing(ctx, viewerID, profileID)
		if err != nil {
			return nil, err
		}
	}

	return &Profile{
		User:       *user,
		Followers:  followers,
		Following:  following,
		Posts:      posts,
		IsFollowed: isFollowed,
	}, nil
}

// UpdateProfile changes description and avatar and reindexes the profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, description, avatar string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if description != "" {
		user.Description = description
	}
	if avatar != "" {
		user.Avatar = avatar
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.index(ctx, user)
	cache.InvalidateUser(ctx, userID)
	return user, nil
}

// SetNotRecommend toggles the recommendation opt-out.
func (s *UserService) SetNotRecommend(ctx context.Context, userID uint, value bool) error {
	if err := s.userRepo.SetNotRecommend(ctx, userID, value); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

// Search pages through profiles matching the query.
func (s *UserService) Search(ctx context.Context, viewerID uint, query string, page int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}

	ids, total, err := s.indexer.Search(ctx, query, page, SearchPageSize)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Preserve index order; GetByIDs does not guarantee it
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ordered := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if id == viewerID {
			continue
		}
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}

	return &SearchResult{Users: ordered, Total: total, Page: page}, nil
}

// Delete removes the account and everything it produced: the search index
// entry, posts and stories with their media, comments, likes, bookmarks,
// messages, notifications and the follow/block edges, then the user row.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	if err := s.indexer.Remove(ctx, userID); err != nil {
		middleware.Logger.WarnContext(ctx, "search index remove failed",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()),
		)
	}

	postFiles, err := s.postRepo.DeleteByAuthor(ctx, userID)
	if err != nil {
		return err
	}
	storyFiles, err := s.storyRepo.DeleteByAuthor(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.commentRepo.DeleteByAuthor(ctx, userID); err != nil {
		return err
	}
	if err := s.messageRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.notificationRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.graphRepo.DeleteEdgesFor(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	// The rows are gone; stale files are not worth failing the request
	for _, file := range append(postFiles, storyFiles...) {
		_ = s.store.Delete(ctx, file)
	}

	cache.InvalidateUser(ctx, userID)
	return nil
}

func (s *UserService) index(ctx context.Context, user *models.User) {
	if err := s.indexer.Index(ctx, user.ID, user.Username, user.Description); err != nil {
		middleware.Logger.WarnContext(ctx, "search index update failed",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()),
		)
	}
}
