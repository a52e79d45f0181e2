package controllers

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"blogengine/app/models"
	"blogengine/app/repositories/memory"
	"blogengine/app/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type session struct {
	cc     *CommandController
	posts  *memory.PostRepository
	out    bytes.Buffer
	errOut bytes.Buffer
}

func newSession(t *testing.T) *session {
	t.Helper()
	users := memory.NewUserRepository()
	posts := memory.NewPostRepository()
	clock := models.NewClockFrom(func() time.Time { return testStart })

	s := &session{posts: posts}
	s.cc = NewCommandController(
		services.NewUserService(users, clock),
		services.NewPostService(posts, users, clock),
		services.NewCommentService(posts, clock),
		services.NewSearchService(posts),
		&s.out, &s.errOut,
		zerolog.Nop(),
	)
	return s
}

func (s *session) run(t *testing.T, lines ...string) {
	t.Helper()
	require.NoError(t, s.cc.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n"))))
}

func TestRegisterCommand(t *testing.T) {
	s := newSession(t)
	s.run(t,
		"register alice alice@example.com",
		"REGISTER alice other@example.com",
	)
	assert.Equal(t, "User 'alice' registered successfully.\n", s.out.String())
	assert.Equal(t, "Error: user already exists: 'alice'\n", s.errOut.String())
}

func TestPostCommand(t *testing.T) {
	s := newSession(t)
	s.run(t,
		"register alice alice@example.com",
		`post myblog alice "Hello, World!" "Hello there" "go, db" 2020-01-01T00:00:00`,
		`post myblog alice "Hello, World!" "second version" ""`,
		`post myblog ghost "Other" "body" ""`,
	)

	assert.Equal(t, "User 'alice' registered successfully.\n"+
		"Post added: Hello, World!\n"+
		"Existing post 'Hello, World!' in blog 'myblog' was deleted and will be replaced.\n"+
		"Post added: Hello, World!\n", s.out.String())
	assert.Equal(t, "Error: user does not exist: 'ghost'\n", s.errOut.String())

	posts, err := s.posts.ListByBlog(context.Background(), "myblog")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "second version", posts[0].PostBody)
	assert.Equal(t, []string{}, posts[0].Tags)
}

func TestPostCommandTags(t *testing.T) {
	s := newSession(t)
	s.run(t,
		"register alice a@example.com",
		`post myblog alice T body "go, db"`,
	)
	require.Empty(t, s.errOut.String())

	post, err := s.posts.GetByPermalink(context.Background(), "myblog.T")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "db"}, post.Tags)
}

func TestCommentAndDeleteCommands(t *testing.T) {
	s := newSession(t)
	s.run(t,
		"register alice alice@example.com",
		`post myblog alice Hello "body" ""`,
		`comment myblog myblog.Hello bob "first!" 2020-01-01T00:00:00`,
		`comment myblog myblog.Hello bob "second"`,
		`comment myblog myblog.Missing bob "lost"`,
		`delete myblog 2025-06-01T09:00:00.002Z alice`,
		`delete myblog myblog.Hello alice 2020-01-01T00:00:00`,
		`delete myblog myblog.Nope alice`,
	)

	assert.Equal(t, "User 'alice' registered successfully.\n"+
		"Post added: Hello\n"+
		"Comment added by bob. New comment permalink: 2025-06-01T09:00:00.002Z\n"+
		"Comment added by bob. New comment permalink: 2025-06-01T09:00:00.003Z\n"+
		"Comment '2025-06-01T09:00:00.002Z' deleted by alice.\n"+
		"Post 'myblog.Hello' deleted by alice.\n", s.out.String())
	assert.Equal(t, "Error: post not found: 'myblog.Missing'\n"+
		"Error: no post or comment found with permalink 'myblog.Nope' in blog 'myblog'\n", s.errOut.String())

	post, err := s.posts.GetByPermalink(context.Background(), "myblog.Hello")
	require.NoError(t, err)
	assert.Equal(t, "deleted by alice", post.PostBody)
	require.Len(t, post.Comments, 2)
	assert.Equal(t, "deleted by alice", post.Comments[0].CommentBody)
	assert.Equal(t, "second", post.Comments[1].CommentBody)
}

func TestFindCommand(t *testing.T) {
	s := newSession(t)
	s.run(t,
		"register alice alice@example.com",
		`post myblog alice Greeting "Hello there" ""`,
		`comment myblog myblog.Greeting bob "HELLO back"`,
	)
	s.out.Reset()

	s.run(t, `find myblog "hello"`, "find myblog nothing")

	assert.Equal(t, "\nin Myblog:\n\n"+
		"- - - -\n"+
		"timestamp: 2025-06-01T09:00:00.001Z\n"+
		"Found in comment by bob: HELLO back\n", s.out.String())
	assert.Equal(t, "Error: no matches found for 'nothing' in blog 'myblog'\n", s.errOut.String())
}

func TestShowCommand(t *testing.T) {
	s := newSession(t)
	s.run(t,
		"register alice alice@example.com",
		`post myblog alice One "first" "a,b"`,
		`post other alice Two "second" ""`,
	)
	s.out.Reset()

	s.run(t, "show myblog")

	out := s.out.String()
	assert.True(t, strings.HasPrefix(out, "\nin Myblog:\n\n- - - -\ntitle: One\n"))
	assert.Contains(t, out, "tags: a, b\n")
	assert.NotContains(t, out, "Two")
	assert.Empty(t, s.errOut.String())
}

func TestInvalidCommands(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"short register", "register alice", "Error: invalid command format: register expects 3 fields\n"},
		{"short post", "post myblog alice title body", "Error: invalid command format: post expects 6 fields\n"},
		{"short comment", "comment myblog p alice", "Error: invalid command format: comment expects 5 fields\n"},
		{"short delete", "delete myblog p", "Error: invalid command format: delete expects 4 fields\n"},
		{"short find", "find myblog", "Error: invalid command format: find expects 3 fields\n"},
		{"short show", "show", "Error: invalid command format: show expects 2 fields\n"},
		{"unknown", "Publish now", "Error: unknown command 'publish'\n"},
		{"unbalanced quote", `post myblog alice "open`, "Error: could not parse command: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t)
			s.run(t, tt.line)
			assert.Empty(t, s.out.String())
			assert.True(t, strings.HasPrefix(s.errOut.String(), tt.want), s.errOut.String())
		})
	}
}

func TestExitStopsProcessing(t *testing.T) {
	s := newSession(t)
	s.run(t,
		"",
		"   ",
		"Exit",
		"register alice alice@example.com",
	)
	assert.Equal(t, Farewell+"\n", s.out.String())
	assert.Empty(t, s.errOut.String())
}

func TestRunStopsOnCanceledContext(t *testing.T) {
	s := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.cc.Run(ctx, strings.NewReader("register alice a@example.com\n"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.out.String())
}

func TestExecute(t *testing.T) {
	s := newSession(t)
	assert.True(t, s.cc.Execute(context.Background(), "register alice a@example.com"))
	assert.False(t, s.cc.Execute(context.Background(), "exit"))
}

func TestHashWordsAreOrdinaryFields(t *testing.T) {
	s := newSession(t)
	s.run(t,
		"register alice alice@example.com",
		`post myblog alice Hello "body text" #go`,
		"find myblog #go",
	)
	require.Empty(t, s.errOut.String())

	post, err := s.posts.GetByPermalink(context.Background(), "myblog.Hello")
	require.NoError(t, err)
	assert.Equal(t, []string{"#go"}, post.Tags)

	assert.Contains(t, s.out.String(), "Post added: Hello\n")
	assert.Contains(t, s.out.String(), "title: Hello\n")
	assert.Contains(t, s.out.String(), "tags: #go\n")
}

func TestEmptyQuotedFields(t *testing.T) {
	s := newSession(t)
	s.run(t,
		`register alice ""`,
		`post myblog alice "" "untitled" ""`,
	)
	assert.Equal(t, "User 'alice' registered successfully.\n"+
		"Post added: \n", s.out.String())
	assert.Empty(t, s.errOut.String())

	_, err := s.posts.GetByPermalink(context.Background(), "myblog.")
	assert.NoError(t, err)
}
