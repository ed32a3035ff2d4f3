package service

import (
	"context"
	"fmt"
	"strings"

	"instaclone/internal/models"
	"instaclone/internal/repository"
)

// CommentService handles comments and comment likes.
type CommentService struct {
	commentRepo  repository.CommentRepository
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	graph        *GraphService
	notification *NotificationService
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, userRepo repository.UserRepository, graph *GraphService, notification *NotificationService) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
		graph:        graph,
		notification: notification,
	}
}

// Add creates a comment on the post and notifies the post's author.
func (s *CommentService) Add(ctx context.Context, postID, authorID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	post, err := s.postRepo.GetByID(ctx, postID, authorID)
	if err != nil {
		return nil, err
	}
	if err := s.graph.BlockGuard(ctx, authorID, post.AuthorID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     text,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	actor, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if err := s.notification.Notify(ctx, authorID, post.AuthorID, models.NotificationComment,
		fmt.Sprintf("%s commented on your post", actor.Username),
		fmt.Sprintf("/post/%d", postID),
	); err != nil {
		return nil, err
	}

	return comment, nil
}

// List returns the post's visible comments, oldest first.
func (s *CommentService) List(ctx context.Context, postID, viewerID uint) ([]models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.graph.BlockGuard(ctx, viewerID, post.AuthorID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, viewerID)
}

// Hide soft-hides a comment. The comment's author or the post's author
// may hide it.
func (s *CommentService) Hide(ctx context.Context, commentID, userID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		post, err := s.postRepo.GetByID(ctx, comment.PostID, userID)
		if err != nil {
			return err
		}
		if post.AuthorID != userID {
			return models.NewUnauthorizedError("You can only remove your own comments")
		}
	}
	return s.commentRepo.Hide(ctx, commentID)
}

// ToggleLike flips the viewer's like on a comment. Comment likes produce
// no notification.
func (s *CommentService) ToggleLike(ctx context.Context, commentID, userID uint) (bool, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return false, err
	}
	if err := s.graph.BlockGuard(ctx, userID, comment.AuthorID); err != nil {
		return false, err
	}
	return s.commentRepo.ToggleLike(ctx, userID, commentID)
}
