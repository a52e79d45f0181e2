package services

import (
	"context"
	"fmt"

	"blogengine/app/models"
	"blogengine/app/repositories"
)

// CommentMatch is a comment of a selected post and whether it contains the
// search term, ignoring case.
type CommentMatch struct {
	Comment *models.Comment
	Matched bool
}

// SearchMatch is a post selected by a search. PostMatched is set only when
// the term occurs in the body with its exact case or equals a tag, so a post
// selected through a comment, or through a case-insensitive body hit, has it
// unset.
type SearchMatch struct {
	Post        *models.Post
	PostMatched bool
	Comments    []CommentMatch
}

// SearchService finds posts and comments containing a term
type SearchService struct {
	postRepo repositories.PostRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(postRepo repositories.PostRepository) *SearchService {
	return &SearchService{postRepo: postRepo}
}

// FindInBlog selects the posts of a blog whose body or comments contain term
// ignoring case, or whose tags include term, in store order. It returns
// ErrNoMatches when nothing is selected.
func (s *SearchService) FindInBlog(ctx context.Context, blogName, term string) ([]SearchMatch, error) {
	posts, err := s.postRepo.Search(ctx, blogName, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search blog '%s': %w", blogName, err)
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("%w for '%s' in blog '%s'", ErrNoMatches, term, blogName)
	}

	matches := make([]SearchMatch, 0, len(posts))
	for _, post := range posts {
		match := SearchMatch{
			Post:        post,
			PostMatched: post.ContainsTerm(term),
			Comments:    make([]CommentMatch, 0, len(post.Comments)),
		}
		for _, c := range post.Comments {
			match.Comments = append(match.Comments, CommentMatch{Comment: c, Matched: c.ContainsFold(term)})
		}
		matches = append(matches, match)
	}
	return matches, nil
}
