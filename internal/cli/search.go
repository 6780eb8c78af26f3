package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/libris/internal/library"
	"github.com/ppiankov/libris/internal/model"
	"github.com/ppiankov/libris/internal/pills"
	"github.com/ppiankov/libris/internal/richtext"
)

var (
	searchTags    []string
	searchTimeout time.Duration
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the library from the terminal",
	Long: `Search filters the library exactly like the library page: a post matches
when it carries any selected tag and its title or body contains the query.

Up to three matching sentences are printed per post with the match in
[brackets].

Example:
  libris search tawhid
  libris search "holy spirit" --tag christian --tag refutation
  libris search --tag hadith`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringArrayVar(&searchTags, "tag", nil, "only posts with this tag (repeatable)")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 30*time.Second, "overall fetch timeout")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newStoreClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Fetching posts from %s\n", client.Endpoint())
	}

	posts, err := client.LibraryPosts(ctx)
	if err != nil {
		return err
	}

	filtered := library.Filter(posts, searchTags, query)
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %d of %d posts match\n\n", len(filtered), len(posts))
	}

	row := pills.NewRow(pills.NewFontMeasurer(cfg.Layout.PillPadding), cfg.Layout.MaxWidth)
	writeSearchResults(cmd.OutOrStdout(), filtered, query, cfg.Catalog.Badges, row)

	if library.NoResults(true, len(filtered), query, searchTags) {
		fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
	}
	return nil
}

// writeSearchResults prints one entry per post: title and slug, the tag
// row as it would fit on a card, and highlighted snippets when searching
func writeSearchResults(w io.Writer, posts []model.Post, query string, badges model.Catalog, row *pills.Row) {
	for _, post := range posts {
		fmt.Fprintf(w, "%s  (/post/%s)\n", post.Title, post.Slug.Current)

		if line := pillLine(row.Compute(badges.Select(post.Tags))); line != "" {
			fmt.Fprintf(w, "  %s\n", line)
		}

		if query != "" {
			for _, snippet := range richtext.Snippets(post.Body, query) {
				fmt.Fprintf(w, "  %s\n", richtext.Mark(snippet.Segments, "[", "]"))
			}
		}
		fmt.Fprintln(w)
	}
}

func pillLine(layout pills.Layout) string {
	labels := make([]string, 0, len(layout.Visible)+1)
	for _, p := range layout.Visible {
		labels = append(labels, p.Title)
	}
	if layout.HasOverflow() {
		labels = append(labels, layout.IndicatorLabel())
	}
	return strings.Join(labels, " · ")
}
