package services

import (
	"context"
	"errors"
	"fmt"

	"blogengine/app/models"
	"blogengine/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	postRepo repositories.PostRepository
	clock    *models.Clock
}

// NewCommentService creates a new CommentService
func NewCommentService(postRepo repositories.PostRepository, clock *models.Clock) *CommentService {
	return &CommentService{
		postRepo: postRepo,
		clock:    clock,
	}
}

// AddComment appends a comment to the end of the post's comments. The
// returned comment's Permalink identifies it for later deletion.
func (s *CommentService) AddComment(ctx context.Context, permalink, userName, commentBody string) (*models.Comment, error) {
	if _, err := s.postRepo.GetByPermalink(ctx, permalink); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrPostNotFound, permalink)
		}
		return nil, fmt.Errorf("failed to look up post '%s': %w", permalink, err)
	}

	comment := &models.Comment{UserName: userName, CommentBody: commentBody}
	comment.BeforeCreate(s.clock.Now())
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}

	n, err := s.postRepo.PushComment(ctx, permalink, comment)
	if err != nil {
		return nil, fmt.Errorf("%w: could not add comment to '%s': %v", ErrUpdateFailed, permalink, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: could not add comment to '%s'", ErrUpdateFailed, permalink)
	}
	return comment, nil
}
