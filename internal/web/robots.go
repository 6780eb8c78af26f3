package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/temoto/robotstxt"
)

// buildRobots renders robots.txt from the disallow rules and checks that
// the result parses and still admits the home page
func buildRobots(disallow []string) ([]byte, error) {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	for _, path := range disallow {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("robots: disallow rule %q must start with /", path)
		}
		fmt.Fprintf(&b, "Disallow: %s\n", path)
	}
	if len(disallow) == 0 {
		b.WriteString("Allow: /\n")
	}

	body := []byte(b.String())

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, fmt.Errorf("robots: parse: %w", err)
	}
	if !data.TestAgent("/", "*") {
		return nil, fmt.Errorf("robots: rules must not block the home page")
	}

	return body, nil
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(s.robots)
}
