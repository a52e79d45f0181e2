package repositories

import (
	"context"
	"fmt"
	"time"

	"blogengine/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB. Each post is
// one JSON document with its comments embedded, so every update is a single
// read-modify-write inside one transaction.
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// scanPosts walks the posts in insertion order until fn returns true.
func scanPosts(txn *badger.Txn, fn func(key []byte, post *models.Post) bool) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	prefix := []byte(PostKeyPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		var post models.Post
		err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
		if err != nil {
			return fmt.Errorf("failed to unmarshal post %s: %w", item.Key(), err)
		}
		if fn(item.KeyCopy(nil), &post) {
			return nil
		}
	}
	return nil
}

// findPost returns the first post matching match, or ErrNotFound.
func findPost(txn *badger.Txn, match func(post *models.Post) bool) ([]byte, *models.Post, error) {
	var (
		foundKey  []byte
		foundPost *models.Post
	)
	err := scanPosts(txn, func(key []byte, post *models.Post) bool {
		if match(post) {
			foundKey, foundPost = key, post
			return true
		}
		return false
	})
	if err != nil {
		return nil, nil, err
	}
	if foundPost == nil {
		return nil, nil, ErrNotFound
	}
	return foundKey, foundPost, nil
}

func (r *BadgerPostRepository) getOne(ctx context.Context, match func(post *models.Post) bool) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var post *models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		_, post, err = findPost(txn, match)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *BadgerPostRepository) list(ctx context.Context, match func(post *models.Post) bool) ([]*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	posts := []*models.Post{}
	err := r.db.View(func(txn *badger.Txn) error {
		return scanPosts(txn, func(_ []byte, post *models.Post) bool {
			if match(post) {
				posts = append(posts, post)
			}
			return false
		})
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// update rewrites the first post matching match after apply has changed it.
// It reports one modified document, or zero when nothing matched or apply
// declined the change.
func (r *BadgerPostRepository) update(ctx context.Context, match func(post *models.Post) bool, apply func(post *models.Post) bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var modified int64
	err := r.db.Update(func(txn *badger.Txn) error {
		key, post, err := findPost(txn, match)
		if err == ErrNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		if !apply(post) {
			return nil
		}
		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		modified = 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return modified, nil
}

// Create appends a new post after every existing one
func (r *BadgerPostRepository) Create(ctx context.Context, post *models.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		seq, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}

		return txn.Set(postKey(seq), data)
	})
}

// GetByPermalink retrieves a post by permalink
func (r *BadgerPostRepository) GetByPermalink(ctx context.Context, permalink string) (*models.Post, error) {
	return r.getOne(ctx, func(post *models.Post) bool {
		return post.Permalink == permalink
	})
}

// GetByTitle retrieves the post with the given title in a blog
func (r *BadgerPostRepository) GetByTitle(ctx context.Context, blogName, title string) (*models.Post, error) {
	return r.getOne(ctx, func(post *models.Post) bool {
		return post.BlogName == blogName && post.Title == title
	})
}

// GetByCommentTimestamp retrieves the first post holding a comment stamped ts
func (r *BadgerPostRepository) GetByCommentTimestamp(ctx context.Context, ts time.Time) (*models.Post, error) {
	return r.getOne(ctx, func(post *models.Post) bool {
		for _, c := range post.Comments {
			if c.Timestamp.Equal(ts) {
				return true
			}
		}
		return false
	})
}

// Delete removes a post by ID
func (r *BadgerPostRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		key, _, err := findPost(txn, func(post *models.Post) bool {
			return post.ID == id
		})
		if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// ListByBlog retrieves every post of a blog in insertion order
func (r *BadgerPostRepository) ListByBlog(ctx context.Context, blogName string) ([]*models.Post, error) {
	return r.list(ctx, func(post *models.Post) bool {
		return post.BlogName == blogName
	})
}

// Search retrieves the posts of a blog selected by term
func (r *BadgerPostRepository) Search(ctx context.Context, blogName, term string) ([]*models.Post, error) {
	return r.list(ctx, func(post *models.Post) bool {
		return post.BlogName == blogName && post.MatchesSearch(term)
	})
}

// PushComment appends a comment to the post with the given permalink
func (r *BadgerPostRepository) PushComment(ctx context.Context, permalink string, comment *models.Comment) (int64, error) {
	return r.update(ctx,
		func(post *models.Post) bool { return post.Permalink == permalink },
		func(post *models.Post) bool { return post.AddComment(comment) == nil },
	)
}

// SetPostBody replaces the body and timestamp of a post
func (r *BadgerPostRepository) SetPostBody(ctx context.Context, permalink, body string, ts time.Time) (int64, error) {
	return r.update(ctx,
		func(post *models.Post) bool { return post.Permalink == permalink },
		func(post *models.Post) bool {
			post.PostBody = body
			post.Timestamp = ts
			return true
		},
	)
}

// SetCommentBody replaces the body and timestamp of one embedded comment
func (r *BadgerPostRepository) SetCommentBody(ctx context.Context, postID, commentID, body string, ts time.Time) (int64, error) {
	return r.update(ctx,
		func(post *models.Post) bool { return post.ID == postID },
		func(post *models.Post) bool {
			comment := post.CommentByID(commentID)
			if comment == nil {
				return false
			}
			comment.CommentBody = body
			comment.Timestamp = ts
			return true
		},
	)
}
