// Package repotest holds behaviour checks shared by every store
// implementation, so the Badger, MongoDB and in-memory repositories are held
// to the same contract.
package repotest

import (
	"context"
	"testing"
	"time"

	"blogengine/app/models"
	"blogengine/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func stamp(offset int) time.Time {
	return base.Add(time.Duration(offset) * time.Millisecond)
}

// NewPost builds a post ready for Create.
func NewPost(blogName, userName, title, body string, tags ...string) *models.Post {
	post := &models.Post{
		BlogName: blogName,
		UserName: userName,
		Title:    title,
		PostBody: body,
		Tags:     append([]string{}, tags...),
	}
	post.BeforeCreate(base)
	return post
}

// NewComment builds a comment stamped offset milliseconds after a fixed base.
func NewComment(userName, body string, offset int) *models.Comment {
	comment := &models.Comment{UserName: userName, CommentBody: body}
	comment.BeforeCreate(stamp(offset))
	return comment
}

func titles(posts []*models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

// UserRepository runs the user contract against repositories from newRepo.
// Every call to newRepo must return an empty repository.
func UserRepository(t *testing.T, newRepo func(t *testing.T) repositories.UserRepository) {
	ctx := context.Background()

	t.Run("create and get user", func(t *testing.T) {
		repo := newRepo(t)
		user := &models.User{UserName: "alice", Email: "alice@example.com", CreatedAt: base}

		require.NoError(t, repo.Create(ctx, user))

		got, err := repo.GetByUserName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.UserName)
		assert.Equal(t, "alice@example.com", got.Email)
		assert.True(t, base.Equal(got.CreatedAt))
	})

	t.Run("lookup is exact", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, &models.User{UserName: "alice", Email: "a", CreatedAt: base}))

		_, err := repo.GetByUserName(ctx, "Alice")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		_, err = repo.GetByUserName(ctx, "ali")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("count", func(t *testing.T) {
		repo := newRepo(t)
		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		require.NoError(t, repo.Create(ctx, &models.User{UserName: "alice", Email: "a", CreatedAt: base}))
		require.NoError(t, repo.Create(ctx, &models.User{UserName: "bob", Email: "b", CreatedAt: base}))

		n, err = repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

// PostRepository runs the post contract against repositories from newRepo.
// Every call to newRepo must return an empty repository.
func PostRepository(t *testing.T, newRepo func(t *testing.T) repositories.PostRepository) {
	ctx := context.Background()

	t.Run("create and get post", func(t *testing.T) {
		repo := newRepo(t)
		post := NewPost("myblog", "alice", "Hello, World!", "first body", "go", "db")
		require.NoError(t, repo.Create(ctx, post))

		got, err := repo.GetByPermalink(ctx, "myblog.Hello_World_")
		require.NoError(t, err)
		assert.Equal(t, post.ID, got.ID)
		assert.Equal(t, "Hello, World!", got.Title)
		assert.Equal(t, "first body", got.PostBody)
		assert.Equal(t, []string{"go", "db"}, got.Tags)
		assert.Empty(t, got.Comments)
		assert.True(t, base.Equal(got.Timestamp))

		got, err = repo.GetByTitle(ctx, "myblog", "Hello, World!")
		require.NoError(t, err)
		assert.Equal(t, post.ID, got.ID)
	})

	t.Run("lookups miss", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, NewPost("myblog", "alice", "T", "b")))

		_, err := repo.GetByPermalink(ctx, "other.T")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		_, err = repo.GetByTitle(ctx, "other", "T")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		_, err = repo.GetByCommentTimestamp(ctx, stamp(1))
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("list by blog keeps insertion order", func(t *testing.T) {
		repo := newRepo(t)
		for _, title := range []string{"b", "a", "c"} {
			require.NoError(t, repo.Create(ctx, NewPost("myblog", "alice", title, "body")))
		}
		require.NoError(t, repo.Create(ctx, NewPost("other", "alice", "x", "body")))

		posts, err := repo.ListByBlog(ctx, "myblog")
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "c"}, titles(posts))

		posts, err = repo.ListByBlog(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		post := NewPost("myblog", "alice", "T", "b")
		require.NoError(t, repo.Create(ctx, post))

		require.NoError(t, repo.Delete(ctx, post.ID))
		_, err := repo.GetByPermalink(ctx, post.Permalink)
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, post.ID), repositories.ErrNotFound)
	})

	t.Run("search selection", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, NewPost("myblog", "alice", "body match", "Hello there")))
		require.NoError(t, repo.Create(ctx, NewPost("myblog", "alice", "tag match", "nothing", "hello")))
		require.NoError(t, repo.Create(ctx, NewPost("myblog", "alice", "tag case differs", "nothing", "Hello")))
		commented := NewPost("myblog", "alice", "comment match", "nothing")
		require.NoError(t, repo.Create(ctx, commented))
		_, err := repo.PushComment(ctx, commented.Permalink, NewComment("bob", "I SAY HELLO", 1))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, NewPost("other", "alice", "other blog", "hello")))

		posts, err := repo.Search(ctx, "myblog", "hello")
		require.NoError(t, err)
		assert.Equal(t, []string{"body match", "tag match", "comment match"}, titles(posts))
	})

	t.Run("search term is literal", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, NewPost("myblog", "alice", "dots", "a.b")))
		require.NoError(t, repo.Create(ctx, NewPost("myblog", "alice", "nodots", "axb")))

		posts, err := repo.Search(ctx, "myblog", "a.b")
		require.NoError(t, err)
		assert.Equal(t, []string{"dots"}, titles(posts))
	})

	t.Run("push comment appends", func(t *testing.T) {
		repo := newRepo(t)
		post := NewPost("myblog", "alice", "T", "b")
		require.NoError(t, repo.Create(ctx, post))

		first := NewComment("bob", "first", 1)
		second := NewComment("carol", "second", 2)
		n, err := repo.PushComment(ctx, post.Permalink, first)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		n, err = repo.PushComment(ctx, post.Permalink, second)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		got, err := repo.GetByPermalink(ctx, post.Permalink)
		require.NoError(t, err)
		require.Len(t, got.Comments, 2)
		assert.Equal(t, "first", got.Comments[0].CommentBody)
		assert.Equal(t, "second", got.Comments[1].CommentBody)
		assert.Equal(t, first.Permalink(), got.Comments[0].Permalink())

		n, err = repo.PushComment(ctx, "myblog.missing", NewComment("bob", "x", 3))
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("get by comment timestamp", func(t *testing.T) {
		repo := newRepo(t)
		plain := NewPost("myblog", "alice", "plain", "b")
		target := NewPost("myblog", "alice", "target", "b")
		require.NoError(t, repo.Create(ctx, plain))
		require.NoError(t, repo.Create(ctx, target))
		_, err := repo.PushComment(ctx, target.Permalink, NewComment("bob", "x", 7))
		require.NoError(t, err)

		got, err := repo.GetByCommentTimestamp(ctx, stamp(7))
		require.NoError(t, err)
		assert.Equal(t, target.ID, got.ID)
	})

	t.Run("set post body", func(t *testing.T) {
		repo := newRepo(t)
		post := NewPost("myblog", "alice", "T", "original", "x")
		require.NoError(t, repo.Create(ctx, post))

		n, err := repo.SetPostBody(ctx, post.Permalink, "deleted by bob", stamp(9))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		got, err := repo.GetByPermalink(ctx, post.Permalink)
		require.NoError(t, err)
		assert.Equal(t, "deleted by bob", got.PostBody)
		assert.True(t, stamp(9).Equal(got.Timestamp))
		assert.Equal(t, "T", got.Title)
		assert.Equal(t, []string{"x"}, got.Tags)

		n, err = repo.SetPostBody(ctx, "myblog.missing", "x", stamp(10))
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("set comment body touches one comment", func(t *testing.T) {
		repo := newRepo(t)
		post := NewPost("myblog", "alice", "T", "b")
		require.NoError(t, repo.Create(ctx, post))
		first := NewComment("bob", "first", 1)
		second := NewComment("carol", "second", 2)
		_, err := repo.PushComment(ctx, post.Permalink, first)
		require.NoError(t, err)
		_, err = repo.PushComment(ctx, post.Permalink, second)
		require.NoError(t, err)

		n, err := repo.SetCommentBody(ctx, post.ID, second.CommentID, "deleted by dave", stamp(20))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		got, err := repo.GetByPermalink(ctx, post.Permalink)
		require.NoError(t, err)
		require.Len(t, got.Comments, 2)
		assert.Equal(t, "first", got.Comments[0].CommentBody)
		assert.True(t, stamp(1).Equal(got.Comments[0].Timestamp))
		assert.Equal(t, "deleted by dave", got.Comments[1].CommentBody)
		assert.True(t, stamp(20).Equal(got.Comments[1].Timestamp))
		assert.Equal(t, "carol", got.Comments[1].UserName)

		n, err = repo.SetCommentBody(ctx, post.ID, "missing", "x", stamp(21))
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})
}
