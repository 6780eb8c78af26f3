package library

import (
	"fmt"
	"html/template"

	"github.com/ppiankov/libris/internal/model"
	"github.com/ppiankov/libris/internal/richtext"
)

// PostView is everything the post page renders
type PostView struct {
	Post      *model.Post
	Body      template.HTML
	Contents  []richtext.Heading
	Tags      []model.Pill
	AvatarURL string
}

// ResolveTags maps post tags to catalog pills in post order. Tags missing
// from the catalog keep their raw value as the title.
func ResolveTags(tags []string, catalog model.Catalog) []model.Pill {
	out := make([]model.Pill, 0, len(tags))
	for _, tag := range tags {
		title, ok := catalog.Title(tag)
		if !ok {
			title = tag
		}
		out = append(out, model.Pill{Title: title, Value: tag})
	}
	return out
}

// BuildPostView renders a post for its page
func BuildPostView(post *model.Post, renderer *richtext.Renderer, badges model.Catalog, authors map[string]string) (*PostView, error) {
	body, err := renderer.Render(post.Body)
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", post.Slug.Current, err)
	}

	return &PostView{
		Post:      post,
		Body:      body,
		Contents:  richtext.TableOfContents(post.Body),
		Tags:      ResolveTags(post.Tags, badges),
		AvatarURL: authors[post.Author],
	}, nil
}
