package richtext

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
	"github.com/ppiankov/libris/internal/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type renderMode int

const (
	modeFull    renderMode = iota // Post page
	modeExcerpt                   // Library card
)

var (
	headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

	decorators = map[string]atom.Atom{
		"strong":         atom.Strong,
		"em":             atom.Em,
		"code":           atom.Code,
		"underline":      atom.U,
		"strike-through": atom.S,
	}
)

// Renderer renders portable-text documents to sanitized HTML.
// It is safe for concurrent use.
type Renderer struct {
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer with the default sanitizing policy
func NewRenderer() *Renderer {
	return &Renderer{policy: newPolicy()}
}

// Render renders a complete post body. Headings carry anchors matching
// TableOfContents and media blocks become embeds.
func (r *Renderer) Render(doc model.Document) (template.HTML, error) {
	return r.render(doc, modeFull)
}

// RenderExcerpt renders the compact card variant of a document: smaller
// headings, the first carousel slide, and images only when the image is the
// whole document.
func (r *Renderer) RenderExcerpt(doc model.Document) (template.HTML, error) {
	return r.render(doc, modeExcerpt)
}

func (r *Renderer) render(doc model.Document, mode renderMode) (template.HTML, error) {
	var buf bytes.Buffer
	for _, n := range buildNodes(doc, mode) {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render %s: %w", n.Data, err)
		}
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// buildNodes converts doc to top-level HTML nodes. Consecutive list items of
// the same kind share one list element.
func buildNodes(doc model.Document, mode renderMode) []*html.Node {
	var anchors map[int]string
	if mode == modeFull {
		anchors = headingAnchors(doc)
	}

	var (
		nodes    []*html.Node
		list     *html.Node
		listKind string
	)

	for i, block := range doc {
		if block.IsText() && block.ListItem != "" {
			if list == nil || listKind != block.ListItem {
				list = newList(block.ListItem)
				listKind = block.ListItem
				nodes = append(nodes, list)
			}
			li := element(atom.Li, attr("class", "list"))
			appendSpans(li, block)
			list.AppendChild(li)
			continue
		}
		list = nil

		var n *html.Node
		if block.IsText() {
			n = textBlock(block, mode, anchors[i])
		} else {
			n = mediaBlock(doc, block, mode)
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}

	return nodes
}

func newList(kind string) *html.Node {
	if kind == "number" {
		return element(atom.Ol)
	}
	return element(atom.Ul)
}

func textBlock(block model.Block, mode renderMode, anchor string) *html.Node {
	var n *html.Node

	switch level := headingLevel(block); {
	case level > 0:
		n = element(headingAtoms[level-1])
		if mode == modeExcerpt {
			n.Attr = append(n.Attr, attr("class", "excerpt-h"+strconv.Itoa(level)))
		} else if anchor != "" {
			n.Attr = append(n.Attr, attr("id", anchor))
		}
	case block.Style == "blockquote":
		n = element(atom.Blockquote, attr("class", "quote"))
	default:
		n = element(atom.P)
	}

	appendSpans(n, block)
	return n
}

// appendSpans renders a block's children. The first mark of a span is the
// outermost element.
func appendSpans(parent *html.Node, block model.Block) {
	defs := make(map[string]model.MarkDef, len(block.MarkDefs))
	for _, def := range block.MarkDefs {
		defs[def.Key] = def
	}

	for _, span := range block.Children {
		n := textNode(span.Text)
		for i := len(span.Marks) - 1; i >= 0; i-- {
			if wrapper := markElement(span.Marks[i], defs); wrapper != nil {
				wrapper.AppendChild(n)
				n = wrapper
			}
		}
		parent.AppendChild(n)
	}
}

func markElement(mark string, defs map[string]model.MarkDef) *html.Node {
	if a, ok := decorators[mark]; ok {
		return element(a)
	}

	def, ok := defs[mark]
	if !ok || def.Type != "link" || def.Href == "" {
		return nil
	}
	return element(atom.A, attr("href", def.Href))
}

func mediaBlock(doc model.Document, block model.Block, mode renderMode) *html.Node {
	switch block.Type {
	case model.BlockTypeImage:
		return imageBlock(doc, block, mode)
	case model.BlockTypeCarousel:
		return carouselBlock(block, mode)
	}

	// Embeds are only shown on the post page
	if mode == modeExcerpt {
		return nil
	}

	switch block.Type {
	case model.BlockTypeYouTube:
		src, ok := YouTubeEmbedURL(block.URL)
		if !ok {
			return nil
		}
		return wrap(element(atom.Div, attr("class", "youtube")),
			element(atom.Iframe,
				attr("src", src),
				attr("title", "YouTube video"),
				attr("allow", "accelerometer; autoplay; clipboard-write; encrypted-media; picture-in-picture"),
				attr("allowfullscreen", ""),
				attr("loading", "lazy"),
			))

	case model.BlockTypeTikTok:
		src, ok := TikTokPlayerURL(block.URL)
		if !ok {
			return nil
		}
		return wrap(element(atom.Div, attr("class", "tiktok-container")),
			wrap(element(atom.Div, attr("class", "tiktok-wrapper")),
				element(atom.Iframe,
					attr("src", src),
					attr("title", "Tiktok"),
					attr("scrolling", "no"),
					attr("allow", "encrypted-media;"),
					attr("class", "tiktok-video"),
				)))

	case model.BlockTypeFileAttachment:
		if block.File == nil || block.File.Asset == nil || block.File.Asset.URL == "" {
			return nil
		}
		return element(atom.Iframe,
			attr("src", block.File.Asset.URL),
			attr("title", "PDF Viewer"),
			attr("width", "100%"),
			attr("height", "1000px"),
			attr("class", "pdf-viewer"),
		)
	}

	return nil
}

func imageBlock(doc model.Document, block model.Block, mode renderMode) *html.Node {
	if block.Asset == nil || block.Asset.URL == "" {
		return nil
	}

	if mode == modeExcerpt {
		// A card shows an image only when the image is the whole body
		if len(doc) != 1 {
			return nil
		}
		alt := block.Alt
		if alt == "" {
			alt = "Image"
		}
		return element(atom.Img,
			attr("src", block.Asset.URL),
			attr("alt", alt),
			attr("class", "card-image"),
		)
	}

	return wrap(element(atom.Div, attr("class", "media-center")),
		element(atom.Img,
			attr("src", block.Asset.URL),
			attr("alt", block.Alt),
			attr("class", "post-image"),
			attr("loading", "lazy"),
		))
}

func carouselBlock(block model.Block, mode renderMode) *html.Node {
	var urls []string
	for _, slide := range block.Slides {
		if slide.Asset != nil && slide.Asset.URL != "" {
			urls = append(urls, slide.Asset.URL)
		}
	}
	if len(urls) == 0 {
		return nil
	}

	if mode == modeExcerpt {
		return element(atom.Img, attr("src", urls[0]), attr("alt", ""), attr("class", "card-image"))
	}

	carousel := element(atom.Div, attr("class", "carousel"))
	for _, u := range urls {
		carousel.AppendChild(wrap(element(atom.Figure, attr("class", "carousel-slide")),
			element(atom.Img, attr("src", u), attr("alt", ""), attr("loading", "lazy"))))
	}
	return carousel
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func wrap(parent, child *html.Node) *html.Node {
	parent.AppendChild(child)
	return parent
}
