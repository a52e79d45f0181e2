package repositories

import (
	"context"
	"time"

	"blogengine/app/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// PostRepository defines the interface for post data access. Comments are
// embedded in their post, so every comment operation goes through it too.
//
// Lookups return ErrNotFound when nothing matches. The update methods report
// how many documents they modified; zero means nothing matched the filter.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByPermalink(ctx context.Context, permalink string) (*models.Post, error)
	GetByTitle(ctx context.Context, blogName, title string) (*models.Post, error)
	GetByCommentTimestamp(ctx context.Context, ts time.Time) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	ListByBlog(ctx context.Context, blogName string) ([]*models.Post, error)
	Search(ctx context.Context, blogName, term string) ([]*models.Post, error)

	PushComment(ctx context.Context, permalink string, comment *models.Comment) (int64, error)
	SetPostBody(ctx context.Context, permalink, body string, ts time.Time) (int64, error)
	SetCommentBody(ctx context.Context, postID, commentID, body string, ts time.Time) (int64, error)
}
