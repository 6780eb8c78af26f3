package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/ppiankov/libris/internal/pills"
	"github.com/ppiankov/libris/internal/richtext"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{"home", "library", "post", "notfound", "error"}

type pages map[string]*template.Template

var funcs = template.FuncMap{
	"highlight": highlight,
}

func parsePages() (pages, error) {
	parsed := make(pages, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/pills.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		parsed[name] = t
	}
	return parsed, nil
}

// highlight renders snippet segments, wrapping matches in <mark>
func highlight(segments []richtext.Segment) template.HTML {
	var b strings.Builder
	for _, seg := range segments {
		text := template.HTMLEscapeString(seg.Text)
		if seg.Highlighted {
			b.WriteString(`<mark class="highlight">`)
			b.WriteString(text)
			b.WriteString(`</mark>`)
			continue
		}
		b.WriteString(text)
	}
	return template.HTML(b.String())
}

// transitionsJSON is the disclosure table replayed by static/disclosure.js
var transitionsJSON = func() string {
	raw, err := json.Marshal(pills.TransitionTable())
	if err != nil {
		panic(err)
	}
	return string(raw)
}()

// layoutData is shared by every page
type layoutData struct {
	SiteTitle string
	Title     string
}

// pillRow is the data for the "pills" template
type pillRow struct {
	ID          string
	Layout      pills.Layout
	MaxWidth    int
	State       string
	Transitions string
}

func (s *Server) pillRow(id string, layout pills.Layout) pillRow {
	maxWidth := s.cfg.Layout.MaxWidth
	if maxWidth <= 0 {
		maxWidth = pills.DefaultMaxWidth
	}
	return pillRow{
		ID:          id,
		Layout:      layout,
		MaxWidth:    maxWidth,
		State:       pills.Closed.String(),
		Transitions: transitionsJSON,
	}
}

// render executes a page into a buffer so template failures still produce
// a clean 500
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
