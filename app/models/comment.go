package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Timestamp.IsZero() {
		return errors.New("timestamp cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate(now time.Time) {
	if c.CommentID == "" {
		c.CommentID = uuid.NewString()
	}
	c.Timestamp = now
}

// Permalink is derived from the comment timestamp and is never stored.
func (c *Comment) Permalink() string {
	return CommentPermalink(c.Timestamp)
}

// ContainsFold reports whether term occurs in the body ignoring case.
func (c *Comment) ContainsFold(term string) bool {
	return containsFold(c.CommentBody, term)
}

// SoftDelete replaces the body with a deletion marker and refreshes the timestamp.
func (c *Comment) SoftDelete(userName string, now time.Time) {
	c.CommentBody = DeletedBy(userName)
	c.Timestamp = now
}
