package web

import (
	"net/http"
	"strings"
	"testing"

	"github.com/temoto/robotstxt"
)

func TestBuildRobots(t *testing.T) {
	body, err := buildRobots([]string{"/library?", " ", "/drafts/"})
	if err != nil {
		t.Fatalf("buildRobots failed: %v", err)
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		t.Fatalf("Generated robots.txt does not parse: %v", err)
	}

	tests := []struct {
		path    string
		allowed bool
	}{
		{"/", true},
		{"/post/oneness", true},
		{"/library", true},
		{"/library?q=god", false},
		{"/drafts/x", false},
	}
	for _, tt := range tests {
		if got := data.TestAgent(tt.path, "AnyBot"); got != tt.allowed {
			t.Errorf("%s: expected allowed=%v, got %v", tt.path, tt.allowed, got)
		}
	}
}

func TestBuildRobots_Invalid(t *testing.T) {
	if _, err := buildRobots([]string{"/"}); err == nil {
		t.Error("Expected error when the home page is blocked")
	}
	if _, err := buildRobots([]string{"library"}); err == nil {
		t.Error("Expected error for relative rule")
	}
}

func TestBuildRobots_Empty(t *testing.T) {
	body, err := buildRobots(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "Allow: /") {
		t.Errorf("Unexpected robots.txt: %s", body)
	}
}

func TestRobotsRoute(t *testing.T) {
	s := newTestServer(t, &fakeStore{})
	code, body := get(t, s, "/robots.txt")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if !strings.Contains(body, "Disallow: /library?") {
		t.Errorf("Unexpected robots.txt: %s", body)
	}
}
