package services

import (
	"context"
	"errors"
	"fmt"

	"blogengine/app/models"
	"blogengine/app/repositories"

	"github.com/rs/zerolog"
)

// PostInput carries the fields of a post command. Timestamp is accepted for
// command compatibility but never used: posts are stamped when stored.
type PostInput struct {
	BlogName  string
	UserName  string
	Title     string
	PostBody  string
	Tags      []string
	Timestamp string
}

// PostResult describes a stored post and whether it replaced an older one.
type PostResult struct {
	Post     *models.Post
	Replaced bool
}

// DeleteKind tells which kind of entry a soft delete hit.
type DeleteKind int

const (
	PostDeleted DeleteKind = iota + 1
	CommentDeleted
)

// DeleteResult describes a soft delete.
type DeleteResult struct {
	Kind      DeleteKind
	Permalink string
}

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
	clock    *models.Clock
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, clock *models.Clock) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		clock:    clock,
	}
}

// CreatePost stores a new post. A post with the same title in the same blog
// is deleted first, comments included, and the new one takes its place.
//
// The delete and the insert are separate writes: if the insert fails after
// the delete succeeded, the blog is left without the post.
func (s *PostService) CreatePost(ctx context.Context, in PostInput) (*PostResult, error) {
	if _, err := s.userRepo.GetByUserName(ctx, in.UserName); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrUnknownUser, in.UserName)
		}
		return nil, fmt.Errorf("failed to look up user '%s': %w", in.UserName, err)
	}

	post := &models.Post{
		BlogName: in.BlogName,
		UserName: in.UserName,
		Title:    in.Title,
		PostBody: in.PostBody,
		Tags:     in.Tags,
	}
	post.BeforeCreate(s.clock.Now())
	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	result := &PostResult{Post: post}
	existing, err := s.postRepo.GetByTitle(ctx, in.BlogName, in.Title)
	switch {
	case err == nil:
		if err := s.postRepo.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to replace post '%s': %w", in.Title, err)
		}
		result.Replaced = true
		zerolog.Ctx(ctx).Debug().Str("permalink", existing.Permalink).Msg("existing post deleted for replacement")
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("failed to look up post '%s': %w", in.Title, err)
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("%w: '%s': %v", ErrInsertFailed, in.Title, err)
	}
	return result, nil
}

// ListBlog retrieves every post of a blog in store order
func (s *PostService) ListBlog(ctx context.Context, blogName string) ([]*models.Post, error) {
	posts, err := s.postRepo.ListByBlog(ctx, blogName)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog '%s': %w", blogName, err)
	}
	return posts, nil
}

// DeleteEntry soft-deletes the post or comment identified by permalink,
// replacing its body with a "deleted by" marker and refreshing its timestamp.
// A post permalink always wins over a comment permalink.
func (s *PostService) DeleteEntry(ctx context.Context, blogName, permalink, userName string) (*DeleteResult, error) {
	body := models.DeletedBy(userName)

	post, err := s.postRepo.GetByPermalink(ctx, permalink)
	if err == nil {
		n, err := s.postRepo.SetPostBody(ctx, post.Permalink, body, s.clock.Now())
		if err != nil {
			return nil, fmt.Errorf("%w: post '%s': %v", ErrUpdateFailed, permalink, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: post '%s'", ErrUpdateFailed, permalink)
		}
		return &DeleteResult{Kind: PostDeleted, Permalink: permalink}, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up '%s': %w", permalink, err)
	}

	notFound := fmt.Errorf("%w with permalink '%s' in blog '%s'", ErrNotFound, permalink, blogName)
	ts, err := models.ParseCommentPermalink(permalink)
	if err != nil {
		return nil, notFound
	}
	post, err = s.postRepo.GetByCommentTimestamp(ctx, ts)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up '%s': %w", permalink, err)
	}
	comment := post.CommentByPermalink(permalink)
	if comment == nil {
		return nil, notFound
	}

	n, err := s.postRepo.SetCommentBody(ctx, post.ID, comment.CommentID, body, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: comment '%s': %v", ErrUpdateFailed, permalink, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: comment '%s'", ErrUpdateFailed, permalink)
	}
	return &DeleteResult{Kind: CommentDeleted, Permalink: permalink}, nil
}
