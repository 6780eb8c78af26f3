package library

import (
	"fmt"
	"html/template"
	"sync"

	"github.com/ppiankov/libris/internal/model"
	"github.com/ppiankov/libris/internal/pills"
	"github.com/ppiankov/libris/internal/richtext"
)

// Card is a library grid entry
type Card struct {
	ID       string
	Title    string
	Slug     string
	Snippets []richtext.Snippet // Set when searching
	Excerpt  template.HTML      // Set when not searching
	Pills    pills.Layout
}

// Searching reports whether the card shows search snippets
func (c Card) Searching() bool {
	return c.Snippets != nil
}

// CardBuilder turns posts into cards. Each post keeps its own pill row so
// an unchanged tag list reuses the previous layout.
type CardBuilder struct {
	renderer *richtext.Renderer
	badges   model.Catalog
	measurer pills.Measurer
	maxWidth int

	mu   sync.Mutex
	rows map[string]*pills.Row
}

// NewCardBuilder creates a card builder
func NewCardBuilder(renderer *richtext.Renderer, badges model.Catalog, measurer pills.Measurer, maxWidth int) *CardBuilder {
	return &CardBuilder{
		renderer: renderer,
		badges:   badges,
		measurer: measurer,
		maxWidth: maxWidth,
		rows:     make(map[string]*pills.Row),
	}
}

// Build creates the card for post. A non-empty query shows up to three
// highlighted sentences instead of the excerpt.
func (b *CardBuilder) Build(post model.Post, query string) (Card, error) {
	card := Card{
		ID:    post.ID,
		Title: post.Title,
		Slug:  post.Slug.Current,
		Pills: b.layout(post),
	}

	if query != "" {
		card.Snippets = richtext.Snippets(post.Body, query)
		return card, nil
	}

	excerpt, err := b.renderer.RenderExcerpt(post.Body)
	if err != nil {
		return Card{}, fmt.Errorf("excerpt %q: %w", post.Slug.Current, err)
	}
	card.Excerpt = excerpt
	return card, nil
}

// BuildAll creates cards for posts in order
func (b *CardBuilder) BuildAll(posts []model.Post, query string) ([]Card, error) {
	cards := make([]Card, 0, len(posts))
	for _, post := range posts {
		card, err := b.Build(post, query)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (b *CardBuilder) layout(post model.Post) pills.Layout {
	tags := b.badges.Select(post.Tags)

	key := post.ID
	if key == "" {
		key = post.Slug.Current
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	row, ok := b.rows[key]
	if !ok {
		row = pills.NewRow(b.measurer, b.maxWidth)
		b.rows[key] = row
	}
	return row.Compute(tags)
}
