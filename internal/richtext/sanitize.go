package richtext

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	httpsURL     = regexp.MustCompile(`^https://`)
	loadingValue = regexp.MustCompile(`^(lazy|eager)$`)
)

// newPolicy builds the sanitizer applied to every rendered document.
// It starts from the UGC policy and additionally allows classes and
// https iframes for media embeds.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.AllowStyling()

	p.AllowAttrs("loading").Matching(loadingValue).OnElements("img", "iframe")

	p.AllowElements("iframe")
	p.AllowAttrs("src").Matching(httpsURL).OnElements("iframe")
	p.AllowAttrs("title", "allow", "allowfullscreen", "scrolling", "width", "height").OnElements("iframe")

	return p
}
