// Package memory keeps users and posts in process memory. It backs the
// "memory" store driver and stands in for a real store in service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"blogengine/app/models"
	"blogengine/app/repositories"
)

type UserRepository struct {
	users map[string]*models.User
	mutex sync.RWMutex
}

type PostRepository struct {
	// posts holds live posts in insertion order
	posts []*models.Post
	mutex sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*models.User),
	}
}

func NewPostRepository() *PostRepository {
	return &PostRepository{}
}

// UserRepository implementation
func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	stored := *user
	m.users[user.UserName] = &stored
	return nil
}

func (m *UserRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[userName]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	found := *user
	return &found, nil
}

func (m *UserRepository) Count(ctx context.Context) (int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.users), nil
}

// clonePost copies a post deeply enough that callers cannot mutate the
// stored document, the way a real store hands out decoded copies.
func clonePost(p *models.Post) *models.Post {
	out := *p
	out.Tags = append([]string{}, p.Tags...)
	out.Comments = make([]*models.Comment, len(p.Comments))
	for i, c := range p.Comments {
		cc := *c
		out.Comments[i] = &cc
	}
	return &out
}

func (m *PostRepository) find(match func(*models.Post) bool) *models.Post {
	for _, post := range m.posts {
		if match(post) {
			return post
		}
	}
	return nil
}

func (m *PostRepository) getOne(match func(*models.Post) bool) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post := m.find(match)
	if post == nil {
		return nil, repositories.ErrNotFound
	}
	return clonePost(post), nil
}

func (m *PostRepository) list(match func(*models.Post) bool) []*models.Post {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := []*models.Post{}
	for _, post := range m.posts {
		if match(post) {
			posts = append(posts, clonePost(post))
		}
	}
	return posts
}

// PostRepository implementation
func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = append(m.posts, clonePost(post))
	return nil
}

func (m *PostRepository) GetByPermalink(ctx context.Context, permalink string) (*models.Post, error) {
	return m.getOne(func(p *models.Post) bool { return p.Permalink == permalink })
}

func (m *PostRepository) GetByTitle(ctx context.Context, blogName, title string) (*models.Post, error) {
	return m.getOne(func(p *models.Post) bool { return p.BlogName == blogName && p.Title == title })
}

func (m *PostRepository) GetByCommentTimestamp(ctx context.Context, ts time.Time) (*models.Post, error) {
	return m.getOne(func(p *models.Post) bool {
		for _, c := range p.Comments {
			if c.Timestamp.Equal(ts) {
				return true
			}
		}
		return false
	})
}

func (m *PostRepository) Delete(ctx context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, post := range m.posts {
		if post.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *PostRepository) ListByBlog(ctx context.Context, blogName string) ([]*models.Post, error) {
	return m.list(func(p *models.Post) bool { return p.BlogName == blogName }), nil
}

func (m *PostRepository) Search(ctx context.Context, blogName, term string) ([]*models.Post, error) {
	return m.list(func(p *models.Post) bool { return p.BlogName == blogName && p.MatchesSearch(term) }), nil
}

func (m *PostRepository) PushComment(ctx context.Context, permalink string, comment *models.Comment) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post := m.find(func(p *models.Post) bool { return p.Permalink == permalink })
	if post == nil {
		return 0, nil
	}
	stored := *comment
	if err := post.AddComment(&stored); err != nil {
		return 0, err
	}
	return 1, nil
}

func (m *PostRepository) SetPostBody(ctx context.Context, permalink, body string, ts time.Time) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post := m.find(func(p *models.Post) bool { return p.Permalink == permalink })
	if post == nil {
		return 0, nil
	}
	post.PostBody = body
	post.Timestamp = ts
	return 1, nil
}

func (m *PostRepository) SetCommentBody(ctx context.Context, postID, commentID, body string, ts time.Time) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post := m.find(func(p *models.Post) bool { return p.ID == postID })
	if post == nil {
		return 0, nil
	}
	comment := post.CommentByID(commentID)
	if comment == nil {
		return 0, nil
	}
	comment.CommentBody = body
	comment.Timestamp = ts
	return 1, nil
}

var (
	_ repositories.UserRepository = (*UserRepository)(nil)
	_ repositories.PostRepository = (*PostRepository)(nil)
)
