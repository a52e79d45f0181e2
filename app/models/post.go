package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DeletedBy is the body a post or comment is given when it is soft-deleted.
func DeletedBy(userName string) string {
	return fmt.Sprintf("deleted by %s", userName)
}

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.Permalink != GeneratePermalink(p.BlogName, p.Title) {
		return errors.New("permalink does not match blog name and title")
	}

	return nil
}

// BeforeCreate assigns the identity, permalink and timestamp of a new post.
// A new post never carries comments.
func (p *Post) BeforeCreate(now time.Time) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.Timestamp = now
	p.Permalink = GeneratePermalink(p.BlogName, p.Title)
	p.Comments = []*Comment{}
}

// AddComment appends a comment to the post
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	p.Comments = append(p.Comments, comment)
	return nil
}

// SoftDelete replaces the body with a deletion marker and refreshes the timestamp.
func (p *Post) SoftDelete(userName string, now time.Time) {
	p.PostBody = DeletedBy(userName)
	p.Timestamp = now
}

// CommentByPermalink returns the first comment whose permalink is permalink.
func (p *Post) CommentByPermalink(permalink string) *Comment {
	for _, c := range p.Comments {
		if c.Permalink() == permalink {
			return c
		}
	}
	return nil
}

// CommentByID returns the comment with the given id.
func (p *Post) CommentByID(id string) *Comment {
	for _, c := range p.Comments {
		if c.CommentID == id {
			return c
		}
	}
	return nil
}

// ContainsTerm reports whether term occurs in the body, case-sensitively, or
// equals one of the tags.
func (p *Post) ContainsTerm(term string) bool {
	return strings.Contains(p.PostBody, term) || p.HasTag(term)
}

// MatchesSearch is the selection predicate of a blog search: the body or any
// comment body contains term ignoring case, or a tag equals term exactly.
func (p *Post) MatchesSearch(term string) bool {
	if containsFold(p.PostBody, term) || p.HasTag(term) {
		return true
	}
	for _, c := range p.Comments {
		if c.ContainsFold(term) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
