package controllers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"blogengine/app/middleware"
	"blogengine/app/models"
	"blogengine/app/services"
	"blogengine/app/views"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
)

const (
	// Banner is written before the first command is read.
	Banner = "Blog Engine is running... Enter commands below:"
	// Farewell is written when the exit command stops the loop.
	Farewell = "Exiting blog engine..."

	maxLineSize = 1 << 20
)

type command struct {
	// arity counts the keyword itself; fields past it are optional
	arity int
	run   func(ctx context.Context, args []string) error
}

// CommandController reads blog commands line by line and dispatches them to
// the services. Results go to out and failures to errOut; a failing command
// never stops the loop.
type CommandController struct {
	userService    *services.UserService
	postService    *services.PostService
	commentService *services.CommentService
	searchService  *services.SearchService

	out      io.Writer
	errOut   io.Writer
	commands map[string]command
	handler  middleware.Handler
}

// NewCommandController creates a CommandController writing to out and errOut
// and logging each command with logger.
func NewCommandController(
	userService *services.UserService,
	postService *services.PostService,
	commentService *services.CommentService,
	searchService *services.SearchService,
	out, errOut io.Writer,
	logger zerolog.Logger,
) *CommandController {
	cc := &CommandController{
		userService:    userService,
		postService:    postService,
		commentService: commentService,
		searchService:  searchService,
		out:            out,
		errOut:         errOut,
	}
	cc.commands = map[string]command{
		"register": {arity: 3, run: cc.register},
		"post":     {arity: 6, run: cc.post},
		"comment":  {arity: 5, run: cc.comment},
		"delete":   {arity: 4, run: cc.delete},
		"find":     {arity: 3, run: cc.find},
		"show":     {arity: 2, run: cc.show},
	}
	cc.handler = middleware.Chain(middleware.HandlerFunc(cc.dispatch),
		middleware.Logger(logger),
		middleware.Recoverer,
	)
	return cc
}

// Run processes commands from in until exit, end of input or ctx is done.
func (cc *CommandController) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !cc.Execute(ctx, scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute processes a single command line and reports whether more commands
// should be read.
func (cc *CommandController) Execute(ctx context.Context, line string) bool {
	parts, err := shellquote.Split(line)
	if err != nil {
		cc.fail(fmt.Errorf("could not parse command: %w", err))
		return true
	}
	if len(parts) == 0 {
		return true
	}

	name := strings.ToLower(parts[0])
	if name == "exit" {
		fmt.Fprintln(cc.out, Farewell)
		return false
	}

	cmdCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := cc.handler.Handle(cmdCtx, name, parts[1:]); err != nil {
		cc.fail(err)
	}
	return true
}

func (cc *CommandController) dispatch(ctx context.Context, name string, args []string) error {
	cmd, ok := cc.commands[name]
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownCommand, name)
	}
	if len(args)+1 < cmd.arity {
		return fmt.Errorf("%w: %s expects %d fields", ErrInvalidCommandArity, name, cmd.arity)
	}
	return cmd.run(ctx, args)
}

func (cc *CommandController) fail(err error) {
	fmt.Fprintf(cc.errOut, "Error: %v\n", err)
}

// unquote removes the double quotes surrounding a free text field.
func unquote(s string) string {
	return strings.Trim(s, `"`)
}

// optional returns args[i], or "" when the field was left out.
func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// register userName email
func (cc *CommandController) register(ctx context.Context, args []string) error {
	user, err := cc.userService.RegisterUser(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cc.out, "User '%s' registered successfully.\n", user.UserName)
	return nil
}

// post blogName userName title postBody tags [timestamp]
func (cc *CommandController) post(ctx context.Context, args []string) error {
	in := services.PostInput{
		BlogName:  args[0],
		UserName:  args[1],
		Title:     unquote(args[2]),
		PostBody:  unquote(args[3]),
		Tags:      models.ParseTags(unquote(args[4])),
		Timestamp: optional(args, 5),
	}
	res, err := cc.postService.CreatePost(ctx, in)
	if err != nil {
		return err
	}
	if res.Replaced {
		fmt.Fprintf(cc.out, "Existing post '%s' in blog '%s' was deleted and will be replaced.\n", in.Title, in.BlogName)
	}
	fmt.Fprintf(cc.out, "Post added: %s\n", res.Post.Title)
	return nil
}

// comment blogName permalink userName commentBody [timestamp]
func (cc *CommandController) comment(ctx context.Context, args []string) error {
	userName := args[2]
	c, err := cc.commentService.AddComment(ctx, args[1], userName, unquote(args[3]))
	if err != nil {
		return err
	}
	fmt.Fprintf(cc.out, "Comment added by %s. New comment permalink: %s\n", userName, c.Permalink())
	return nil
}

// delete blogName permalink userName [timestamp]
func (cc *CommandController) delete(ctx context.Context, args []string) error {
	userName := args[2]
	res, err := cc.postService.DeleteEntry(ctx, args[0], args[1], userName)
	if err != nil {
		return err
	}
	kind := "Post"
	if res.Kind == services.CommentDeleted {
		kind = "Comment"
	}
	fmt.Fprintf(cc.out, "%s '%s' deleted by %s.\n", kind, res.Permalink, userName)
	return nil
}

// find blogName searchString
func (cc *CommandController) find(ctx context.Context, args []string) error {
	blogName := args[0]
	matches, err := cc.searchService.FindInBlog(ctx, blogName, unquote(args[1]))
	if err != nil {
		return err
	}
	return views.RenderSearch(cc.out, blogName, matches)
}

// show blogName
func (cc *CommandController) show(ctx context.Context, args []string) error {
	blogName := args[0]
	posts, err := cc.postService.ListBlog(ctx, blogName)
	if err != nil {
		return err
	}
	return views.RenderBlog(cc.out, blogName, posts)
}
