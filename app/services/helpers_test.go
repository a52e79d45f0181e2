package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"blogengine/app/models"
	"blogengine/app/repositories/memory"

	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// testClock starts at a fixed instant; every Now is one millisecond later.
func testClock() *models.Clock {
	return models.NewClockFrom(func() time.Time { return testStart })
}

type fixture struct {
	users    *memory.UserRepository
	posts    *memory.PostRepository
	clock    *models.Clock
	userSvc  *UserService
	postSvc  *PostService
	comments *CommentService
	search   *SearchService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users: memory.NewUserRepository(),
		posts: memory.NewPostRepository(),
		clock: testClock(),
	}
	f.userSvc = NewUserService(f.users, f.clock)
	f.postSvc = NewPostService(f.posts, f.users, f.clock)
	f.comments = NewCommentService(f.posts, f.clock)
	f.search = NewSearchService(f.posts)
	return f
}

func (f *fixture) register(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := f.userSvc.RegisterUser(context.Background(), name, name+"@example.com")
		require.NoError(t, err)
	}
}

func (f *fixture) post(t *testing.T, blogName, userName, title, body string, tags ...string) *models.Post {
	t.Helper()
	res, err := f.postSvc.CreatePost(context.Background(), PostInput{
		BlogName: blogName,
		UserName: userName,
		Title:    title,
		PostBody: body,
		Tags:     tags,
	})
	require.NoError(t, err)
	return res.Post
}

func (f *fixture) comment(t *testing.T, permalink, userName, body string) *models.Comment {
	t.Helper()
	c, err := f.comments.AddComment(context.Background(), permalink, userName, body)
	require.NoError(t, err)
	return c
}

var errStore = errors.New("store unavailable")

// brokenPosts wraps a working repository and fails the writes it is told to.
type brokenPosts struct {
	*memory.PostRepository
	failCreate bool
	ignorePush bool
	ignoreSet  bool
}

func (b *brokenPosts) Create(ctx context.Context, post *models.Post) error {
	if b.failCreate {
		return errStore
	}
	return b.PostRepository.Create(ctx, post)
}

func (b *brokenPosts) PushComment(ctx context.Context, permalink string, comment *models.Comment) (int64, error) {
	if b.ignorePush {
		return 0, nil
	}
	return b.PostRepository.PushComment(ctx, permalink, comment)
}

func (b *brokenPosts) SetPostBody(ctx context.Context, permalink, body string, ts time.Time) (int64, error) {
	if b.ignoreSet {
		return 0, nil
	}
	return b.PostRepository.SetPostBody(ctx, permalink, body, ts)
}

func (b *brokenPosts) SetCommentBody(ctx context.Context, postID, commentID, body string, ts time.Time) (int64, error) {
	if b.ignoreSet {
		return 0, nil
	}
	return b.PostRepository.SetCommentBody(ctx, postID, commentID, body, ts)
}
