package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// User represents a registered blog author.
type User struct {
	UserName  string    `json:"userName" bson:"userName" validate:"required"`
	Email     string    `json:"email" bson:"email"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" validate:"required"`
}

// Post represents a blog post with its embedded comments.
type Post struct {
	ID        string     `json:"id" bson:"_id" validate:"required"`
	BlogName  string     `json:"blogName" bson:"blogName" validate:"required"`
	UserName  string     `json:"userName" bson:"userName" validate:"required"`
	Title     string     `json:"title" bson:"title"`
	PostBody  string     `json:"postBody" bson:"postBody"`
	Tags      []string   `json:"tags" bson:"tags"`
	Timestamp time.Time  `json:"timestamp" bson:"timestamp" validate:"required"`
	Permalink string     `json:"permalink" bson:"permalink" validate:"required"`
	Comments  []*Comment `json:"comments" bson:"comments" validate:"-"`
}

// Comment is embedded in its post and has no storage location of its own.
type Comment struct {
	CommentID   string    `json:"commentId" bson:"commentId" validate:"required"`
	UserName    string    `json:"userName" bson:"userName" validate:"required"`
	CommentBody string    `json:"commentBody" bson:"commentBody"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp" validate:"required"`
}
