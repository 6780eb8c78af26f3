package library

import (
	"slices"

	"github.com/ppiankov/libris/internal/model"
)

// CategorySection is one home page heading with its posts
type CategorySection struct {
	Category model.Pill
	Posts    []model.Post
}

// GroupByCategory returns one section per catalog category, in catalog
// order. Posts within a section are sorted by ascending weight; posts
// without a weight come last in their original order.
func GroupByCategory(posts []model.Post, categories model.Catalog) []CategorySection {
	sections := make([]CategorySection, len(categories))
	for i, category := range categories {
		sections[i].Category = category
		for _, post := range posts {
			if post.Category == category.Value {
				sections[i].Posts = append(sections[i].Posts, post)
			}
		}
		slices.SortStableFunc(sections[i].Posts, compareWeight)
	}
	return sections
}

func compareWeight(a, b model.Post) int {
	switch {
	case a.CategoryWeight == nil && b.CategoryWeight == nil:
		return 0
	case a.CategoryWeight == nil:
		return 1
	case b.CategoryWeight == nil:
		return -1
	case *a.CategoryWeight < *b.CategoryWeight:
		return -1
	case *a.CategoryWeight > *b.CategoryWeight:
		return 1
	}
	return 0
}
