package models

import (
	"regexp"
	"time"
)

// CommentPermalinkLayout is ISO-8601 in UTC with millisecond precision, the
// finest resolution every supported store keeps for a timestamp.
const CommentPermalinkLayout = "2006-01-02T15:04:05.000Z07:00"

var nonAlphanumeric = regexp.MustCompile(`[^0-9a-zA-Z]+`)

// GeneratePermalink derives the identifier of a post from its blog and title.
// Every run of characters outside [0-9A-Za-z] in the title collapses into a
// single underscore; leading and trailing runs are kept as underscores.
func GeneratePermalink(blogName, title string) string {
	return blogName + "." + nonAlphanumeric.ReplaceAllString(title, "_")
}

// CommentPermalink formats a comment timestamp as the comment's permalink.
func CommentPermalink(t time.Time) string {
	return t.UTC().Format(CommentPermalinkLayout)
}

// ParseCommentPermalink turns a comment permalink back into the timestamp it
// was derived from.
func ParseCommentPermalink(permalink string) (time.Time, error) {
	t, err := time.Parse(CommentPermalinkLayout, permalink)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
