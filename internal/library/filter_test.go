package library

import (
	"net/url"
	"testing"

	"github.com/ppiankov/libris/internal/model"
)

func textPost(id, title string, tags []string, paragraphs ...string) model.Post {
	post := model.Post{ID: id, Title: title, Slug: model.Slug{Current: id}, Tags: tags}
	for _, p := range paragraphs {
		post.Body = append(post.Body, model.Block{
			Type:     model.BlockTypeText,
			Children: []model.Span{{Text: p}},
		})
	}
	return post
}

func ids(posts []model.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	posts := []model.Post{
		textPost("a", "Oneness of God", []string{"islam", "aqeedah"}, "Tawhid is central."),
		textPost("b", "The Trinity", []string{"christian"}, "Three persons, one essence."),
		textPost("c", "Hadith Sciences", []string{"hadith"}, "Chains of narration."),
		textPost("d", "Untagged", nil, "No tags here."),
	}

	tests := []struct {
		name     string
		selected []string
		search   string
		want     []string
	}{
		{"no filter keeps all", nil, "", []string{"a", "b", "c", "d"}},
		{"any selected tag matches", []string{"christian", "hadith"}, "", []string{"b", "c"}},
		{"untagged post never matches tag filter", []string{"islam"}, "", []string{"a"}},
		{"search title case-insensitive", nil, "TRINITY", []string{"b"}},
		{"search body", nil, "narration", []string{"c"}},
		{"tag and search combine", []string{"islam", "christian"}, "essence", []string{"b"}},
		{"title and body joined by space", nil, "sciences chains", []string{"c"}},
		{"no match", nil, "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(posts, tt.selected, tt.search))
			if !equalStrings(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilter_BodyBlocksJoinedWithSpace(t *testing.T) {
	post := textPost("a", "T", nil, "end of one", "start of two")
	if len(Filter([]model.Post{post}, nil, "one start")) != 1 {
		t.Error("Expected search across block boundary to match")
	}
}

func TestNoResults(t *testing.T) {
	tests := []struct {
		name     string
		loaded   bool
		filtered int
		search   string
		selected []string
		want     bool
	}{
		{"not loaded", false, 0, "x", nil, false},
		{"results present", true, 2, "x", nil, false},
		{"no filters", true, 0, "", nil, false},
		{"search with nothing", true, 0, "x", nil, true},
		{"tags with nothing", true, 0, "", []string{"islam"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NoResults(tt.loaded, tt.filtered, tt.search, tt.selected); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSelection(t *testing.T) {
	sel := ParseSelection(url.Values{"q": {"god"}, "tag": {"islam", "", "islam", "shia"}})
	if sel.Search != "god" {
		t.Errorf("Expected search god, got %q", sel.Search)
	}
	if !equalStrings(sel.Tags, []string{"islam", "shia"}) {
		t.Errorf("Expected deduplicated tags, got %v", sel.Tags)
	}
	if !sel.Active() {
		t.Error("Expected active selection")
	}

	added := sel.Toggle("quran")
	if !equalStrings(added.Tags, []string{"islam", "shia", "quran"}) {
		t.Errorf("Unexpected tags after add: %v", added.Tags)
	}
	removed := sel.Toggle("islam")
	if !equalStrings(removed.Tags, []string{"shia"}) {
		t.Errorf("Unexpected tags after remove: %v", removed.Tags)
	}
	if !equalStrings(sel.Tags, []string{"islam", "shia"}) {
		t.Errorf("Toggle must not modify the receiver, got %v", sel.Tags)
	}

	if got := removed.URL(); got != "/library?q=god&tag=shia" {
		t.Errorf("Unexpected URL: %s", got)
	}
	if got := (Selection{}).URL(); got != "/library" {
		t.Errorf("Unexpected empty URL: %s", got)
	}
}

func TestFilterPills(t *testing.T) {
	badges := model.Catalog{{Title: "Islam", Value: "islam"}, {Title: "Shia", Value: "shia"}}
	out := FilterPills(badges, Selection{Tags: []string{"shia"}})

	if len(out) != 2 {
		t.Fatalf("Expected 2 pills, got %d", len(out))
	}
	if out[0].Selected || !out[1].Selected {
		t.Errorf("Unexpected selection flags: %v %v", out[0].Selected, out[1].Selected)
	}
	if out[0].URL != "/library?tag=shia&tag=islam" {
		t.Errorf("Unexpected toggle-on URL: %s", out[0].URL)
	}
	if out[1].URL != "/library" {
		t.Errorf("Unexpected toggle-off URL: %s", out[1].URL)
	}
}
