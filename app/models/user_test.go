package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserValidation(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		user := &User{UserName: "alice", Email: "not-an-email", CreatedAt: time.Now()}
		assert.NoError(t, user.Validate())
	})

	t.Run("empty email allowed", func(t *testing.T) {
		user := &User{UserName: "alice", CreatedAt: time.Now()}
		assert.NoError(t, user.Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		user := &User{Email: "a@example.com", CreatedAt: time.Now()}
		assert.Error(t, user.Validate())
	})

	t.Run("zero creation time", func(t *testing.T) {
		user := &User{UserName: "alice", Email: "a@example.com"}
		assert.Error(t, user.Validate())
	})
}

func TestUserBeforeCreate(t *testing.T) {
	now := time.Now()
	user := &User{UserName: "alice"}

	user.BeforeCreate(now)
	assert.Equal(t, now, user.CreatedAt)

	later := now.Add(time.Hour)
	user.BeforeCreate(later)
	assert.Equal(t, now, user.CreatedAt)
}
