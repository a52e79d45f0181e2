package services

import "errors"

// Errors reported by the blog operations. Each is wrapped with the names
// involved; match them with errors.Is.
var (
	ErrDuplicateUser = errors.New("user already exists")
	ErrUnknownUser   = errors.New("user does not exist")
	ErrPostNotFound  = errors.New("post not found")
	ErrNotFound      = errors.New("no post or comment found")
	ErrInsertFailed  = errors.New("post insertion failed")
	ErrUpdateFailed  = errors.New("update failed")
	ErrNoMatches     = errors.New("no matches found")
)
