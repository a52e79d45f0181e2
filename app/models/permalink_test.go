package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePermalink(t *testing.T) {
	tests := []struct {
		name     string
		blogName string
		title    string
		want     string
	}{
		{name: "punctuation and space", blogName: "myblog", title: "Hello, World!", want: "myblog.Hello_World_"},
		{name: "consecutive specials collapse", blogName: "b", title: "a!!!b", want: "b.a_b"},
		{name: "leading specials kept", blogName: "b", title: "  hi", want: "b._hi"},
		{name: "alphanumeric untouched", blogName: "b", title: "Post42", want: "b.Post42"},
		{name: "non-ascii letters replaced", blogName: "b", title: "café au lait", want: "b.caf_au_lait"},
		{name: "empty title", blogName: "b", title: "", want: "b."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GeneratePermalink(tt.blogName, tt.title))
		})
	}
}

func TestCommentPermalinkRoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 4, 5, 6, 7, 891_000_000, time.UTC)

	permalink := CommentPermalink(ts)
	assert.Equal(t, "2025-03-04T05:06:07.891Z", permalink)

	parsed, err := ParseCommentPermalink(permalink)
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))

	_, err = ParseCommentPermalink("myblog.Hello_World_")
	assert.Error(t, err)
}
