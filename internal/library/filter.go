// Package library builds the view models behind the home, library and
// post pages.
package library

import (
	"net/url"
	"slices"
	"strings"

	"github.com/ppiankov/libris/internal/model"
	"github.com/ppiankov/libris/internal/richtext"
)

// Selection is the library page's filter state: the search text and the
// selected badge values
type Selection struct {
	Search string
	Tags   []string
}

// ParseSelection reads the selection from ?q=...&tag=...&tag=...
// Blank and repeated tags are dropped.
func ParseSelection(values url.Values) Selection {
	sel := Selection{Search: values.Get("q")}
	for _, tag := range values["tag"] {
		tag = strings.TrimSpace(tag)
		if tag != "" && !slices.Contains(sel.Tags, tag) {
			sel.Tags = append(sel.Tags, tag)
		}
	}
	return sel
}

// Active reports whether any filter is applied
func (s Selection) Active() bool {
	return s.Search != "" || len(s.Tags) > 0
}

// Selected reports whether tag is selected
func (s Selection) Selected(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

// Toggle returns a copy with tag added, or removed when already selected
func (s Selection) Toggle(tag string) Selection {
	out := Selection{Search: s.Search}
	if s.Selected(tag) {
		for _, t := range s.Tags {
			if t != tag {
				out.Tags = append(out.Tags, t)
			}
		}
		return out
	}
	out.Tags = append(slices.Clone(s.Tags), tag)
	return out
}

// URL returns the library page URL for this selection
func (s Selection) URL() string {
	values := url.Values{}
	if s.Search != "" {
		values.Set("q", s.Search)
	}
	for _, tag := range s.Tags {
		values.Add("tag", tag)
	}
	if len(values) == 0 {
		return "/library"
	}
	return "/library?" + values.Encode()
}

// FilterPill is one toggleable badge in the library filter bar
type FilterPill struct {
	model.Pill
	Selected bool
	URL      string // Library URL with this pill toggled
}

// FilterPills returns the whole badge catalog with selection state
func FilterPills(badges model.Catalog, sel Selection) []FilterPill {
	out := make([]FilterPill, len(badges))
	for i, badge := range badges {
		out[i] = FilterPill{
			Pill:     badge,
			Selected: sel.Selected(badge.Value),
			URL:      sel.Toggle(badge.Value).URL(),
		}
	}
	return out
}

// Filter keeps posts that carry any selected tag (or all posts when none
// is selected) and whose title or body contains the search text, ignoring
// case. Order is preserved.
func Filter(posts []model.Post, selected []string, search string) []model.Post {
	needle := strings.ToLower(search)

	var out []model.Post
	for _, post := range posts {
		if !matchesTags(post.Tags, selected) {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(post.Title + " " + richtext.BodyText(post.Body))
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		out = append(out, post)
	}
	return out
}

func matchesTags(tags, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, tag := range tags {
		if slices.Contains(selected, tag) {
			return true
		}
	}
	return false
}

// NoResults reports whether the "No results found." notice applies: data
// has loaded, nothing matched, and the visitor filtered by search or tag.
func NoResults(dataLoaded bool, filtered int, search string, selected []string) bool {
	return dataLoaded && filtered == 0 && (search != "" || len(selected) > 0)
}
