package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ppiankov/libris/internal/library"
)

type homePage struct {
	layoutData
	Sections []library.CategorySection
}

type cardView struct {
	library.Card
	Row pillRow
}

type libraryPage struct {
	layoutData
	Selection library.Selection
	Filters   []library.FilterPill
	Cards     []cardView
	NoResults bool
}

type postPage struct {
	layoutData
	View *library.PostView
}

type errorPage struct {
	layoutData
	Message string
}

func (s *Server) layout(title string) layoutData {
	return layoutData{SiteTitle: s.cfg.Server.SiteTitle, Title: title}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.CategoryPosts(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "home", homePage{
		layoutData: s.layout(""),
		Sections:   library.GroupByCategory(posts, s.cfg.Catalog.Categories),
	})
}

func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	sel := library.ParseSelection(r.URL.Query())

	posts, err := s.store.LibraryPosts(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	filtered := library.Filter(posts, sel.Tags, sel.Search)
	cards, err := s.cards.BuildAll(filtered, sel.Search)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	views := make([]cardView, len(cards))
	for i, card := range cards {
		views[i] = cardView{Card: card, Row: s.pillRow("pills-"+card.ID, card.Pills)}
	}

	s.render(w, r, http.StatusOK, "library", libraryPage{
		layoutData: s.layout("Library"),
		Selection:  sel,
		Filters:    library.FilterPills(s.cfg.Catalog.Badges, sel),
		Cards:      views,
		NoResults:  library.NoResults(true, len(filtered), sel.Search, sel.Tags),
	})
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := s.store.PostBySlug(r.Context(), slug)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if post == nil {
		s.handleNotFound(w, r)
		return
	}

	view, err := library.BuildPostView(post, s.renderer, s.cfg.Catalog.Badges, s.cfg.Authors)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "post", postPage{
		layoutData: s.layout(post.Title),
		View:       view,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "notfound", s.layout("Not found"))
}

// fail renders the store error page
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "load content", "path", r.URL.Path, "error", err)
	s.render(w, r, http.StatusBadGateway, "error", errorPage{
		layoutData: s.layout("Error"),
		Message:    err.Error(),
	})
}
