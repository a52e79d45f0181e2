// Package views renders blogs and search results as the plain text written
// to the command output stream.
package views

import (
	"embed"
	"io"
	"strings"
	"text/template"
	"time"
	"unicode"
	"unicode/utf8"

	"blogengine/app/models"
	"blogengine/app/services"
)

//go:embed templates/*.tmpl
var files embed.FS

var templates = template.Must(template.New("views").Funcs(template.FuncMap{
	"capitalize": Capitalize,
	"tags":       formatTags,
	"iso":        formatTime,
}).ParseFS(files, "templates/*.tmpl"))

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "None"
	}
	return strings.Join(tags, ", ")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(models.CommentPermalinkLayout)
}

// Unique drops every post whose permalink was already seen, keeping the
// first occurrence and the order of the rest.
func Unique(posts []*models.Post) []*models.Post {
	seen := make(map[string]struct{}, len(posts))
	unique := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.Permalink]; ok {
			continue
		}
		seen[p.Permalink] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}

// RenderBlog writes every post of a blog with its comments. A permalink is
// never written twice.
func RenderBlog(w io.Writer, blogName string, posts []*models.Post) error {
	return templates.ExecuteTemplate(w, "blog", struct {
		BlogName string
		Posts    []*models.Post
	}{blogName, Unique(posts)})
}

// RenderSearch writes the posts selected by a search. Post details appear
// only for posts that matched themselves; comments are written inline when
// they matched and indented otherwise.
func RenderSearch(w io.Writer, blogName string, matches []services.SearchMatch) error {
	return templates.ExecuteTemplate(w, "search", struct {
		BlogName string
		Matches  []services.SearchMatch
	}{blogName, matches})
}
