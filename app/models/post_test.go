package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostValidation(t *testing.T) {
	now := time.Now().UTC()
	valid := func() *Post {
		return &Post{
			ID:        "p1",
			BlogName:  "myblog",
			UserName:  "alice",
			Title:     "Hello",
			PostBody:  "body",
			Timestamp: now,
			Permalink: "myblog.Hello",
		}
	}

	tests := []struct {
		name    string
		mutate  func(p *Post)
		wantErr bool
	}{
		{name: "valid post", mutate: func(p *Post) {}, wantErr: false},
		{name: "empty body allowed", mutate: func(p *Post) { p.PostBody = "" }, wantErr: false},
		{name: "empty title allowed", mutate: func(p *Post) { p.Title = ""; p.Permalink = "myblog." }, wantErr: false},
		{name: "missing blog", mutate: func(p *Post) { p.BlogName = "" }, wantErr: true},
		{name: "missing user", mutate: func(p *Post) { p.UserName = "" }, wantErr: true},
		{name: "zero timestamp", mutate: func(p *Post) { p.Timestamp = time.Time{} }, wantErr: true},
		{name: "stale permalink", mutate: func(p *Post) { p.Permalink = "myblog.Other" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := valid()
			tt.mutate(post)
			err := post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	post := &Post{
		BlogName: "myblog",
		Title:    "Hello, World!",
		Comments: []*Comment{{CommentBody: "stale"}},
	}

	post.BeforeCreate(now)

	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "myblog.Hello_World_", post.Permalink)
	assert.Equal(t, now, post.Timestamp)
	assert.NotNil(t, post.Tags)
	assert.Empty(t, post.Comments)
	assert.NotNil(t, post.Comments)
}

func TestPostCommentManagement(t *testing.T) {
	post := &Post{Permalink: "b.p"}
	first := &Comment{CommentID: "c1", CommentBody: "first", Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	second := &Comment{CommentID: "c2", CommentBody: "second", Timestamp: time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC)}

	t.Run("add comments in order", func(t *testing.T) {
		assert.NoError(t, post.AddComment(first))
		assert.NoError(t, post.AddComment(second))
		assert.Equal(t, []*Comment{first, second}, post.Comments)
	})

	t.Run("add nil comment", func(t *testing.T) {
		assert.Error(t, post.AddComment(nil))
	})

	t.Run("lookup by permalink", func(t *testing.T) {
		assert.Same(t, second, post.CommentByPermalink("2025-01-01T00:00:01.000Z"))
		assert.Nil(t, post.CommentByPermalink("2030-01-01T00:00:00.000Z"))
	})

	t.Run("lookup by id", func(t *testing.T) {
		assert.Same(t, first, post.CommentByID("c1"))
		assert.Nil(t, post.CommentByID("missing"))
	})
}

func TestPostSoftDelete(t *testing.T) {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	post := &Post{Title: "T", Permalink: "b.T", Tags: []string{"x"}, PostBody: "original"}

	post.SoftDelete("bob", now)

	assert.Equal(t, "deleted by bob", post.PostBody)
	assert.Equal(t, now, post.Timestamp)
	assert.Equal(t, "T", post.Title)
	assert.Equal(t, "b.T", post.Permalink)
	assert.Equal(t, []string{"x"}, post.Tags)
}

func TestPostSearchPredicates(t *testing.T) {
	post := &Post{
		PostBody: "Hello there",
		Tags:     []string{"golang"},
		Comments: []*Comment{{CommentBody: "SAY HELLO"}},
	}

	assert.True(t, post.MatchesSearch("hello"))
	assert.True(t, post.MatchesSearch("golang"))
	assert.False(t, post.MatchesSearch("gol"))
	assert.False(t, post.MatchesSearch("absent"))

	assert.True(t, post.ContainsTerm("Hello"))
	assert.False(t, post.ContainsTerm("hello"))
	assert.True(t, post.ContainsTerm("golang"))

	commentOnly := &Post{PostBody: "nothing", Comments: []*Comment{{CommentBody: "needle"}}}
	assert.True(t, commentOnly.MatchesSearch("NEEDLE"))
	assert.False(t, commentOnly.ContainsTerm("needle"))
}
