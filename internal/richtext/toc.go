package richtext

import (
	"strconv"
	"strings"

	"github.com/ppiankov/libris/internal/model"
)

// Heading is a table of contents entry
type Heading struct {
	Level  int    `json:"level"`
	Text   string `json:"text"`
	Anchor string `json:"anchor"`
}

// TableOfContents lists the h1..h6 text blocks of doc in order, with the
// same anchors the renderer assigns to them.
func TableOfContents(doc model.Document) []Heading {
	anchors := headingAnchors(doc)

	var headings []Heading
	for i, block := range doc {
		level := headingLevel(block)
		if level == 0 {
			continue
		}
		headings = append(headings, Heading{
			Level:  level,
			Text:   blockText(block, ""),
			Anchor: anchors[i],
		})
	}
	return headings
}

// headingLevel returns 1..6 for heading blocks and 0 otherwise
func headingLevel(block model.Block) int {
	if !block.IsText() || len(block.Style) != 2 || block.Style[0] != 'h' {
		return 0
	}
	level := int(block.Style[1] - '0')
	if level < 1 || level > 6 {
		return 0
	}
	return level
}

// headingAnchors assigns a unique anchor to every heading block, keyed by
// block index.
func headingAnchors(doc model.Document) map[int]string {
	anchors := make(map[int]string)
	issued := make(map[string]bool)

	for i, block := range doc {
		if headingLevel(block) == 0 {
			continue
		}

		base := slugify(blockText(block, ""))
		if base == "" {
			base = "section"
		}

		anchor := base
		for n := 2; issued[anchor]; n++ {
			anchor = base + "-" + strconv.Itoa(n)
		}
		issued[anchor] = true
		anchors[i] = anchor
	}
	return anchors
}

// slugify keeps ASCII letters and digits and collapses everything else
// into single hyphens
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
