// Package richtext turns portable-text documents into plain text,
// searchable sentences and HTML.
package richtext

import (
	"strings"
	"unicode"

	"github.com/ppiankov/libris/internal/model"
)

// ExtractPlainText flattens a document into plain text. A text block
// contributes its children's text with no separator; any other block, or a
// text block without children, contributes an empty line. Blocks are joined
// with "\n".
func ExtractPlainText(doc model.Document) string {
	parts := make([]string, len(doc))
	for i, block := range doc {
		parts[i] = blockText(block, "")
	}
	return strings.Join(parts, "\n")
}

// BodyText flattens a document for search matching: children and blocks
// are both joined with a single space.
func BodyText(doc model.Document) string {
	parts := make([]string, len(doc))
	for i, block := range doc {
		parts[i] = blockText(block, " ")
	}
	return strings.Join(parts, " ")
}

func blockText(block model.Block, sep string) string {
	if !block.IsText() || len(block.Children) == 0 {
		return ""
	}

	texts := make([]string, len(block.Children))
	for i, child := range block.Children {
		texts[i] = child.Text
	}
	return strings.Join(texts, sep)
}

// SplitSentences splits text on a sentence terminal followed by whitespace,
// or on a run of newlines. Terminals stay with their sentence, separators are
// dropped, and empty pieces are discarded.
//
// This is a heuristic: abbreviations and decimal points are not recognised.
func SplitSentences(text string) []string {
	runes := []rune(text)

	var sentences []string
	start := 0
	flush := func(end int) {
		if end > start {
			sentences = append(sentences, string(runes[start:end]))
		}
	}

	for i := 0; i < len(runes); {
		var end int
		switch {
		case i > 0 && isTerminal(runes[i-1]) && isSpace(runes[i]):
			end = i
			for end < len(runes) && isSpace(runes[end]) {
				end++
			}
		case runes[i] == '\n':
			end = i
			for end < len(runes) && runes[end] == '\n' {
				end++
			}
		default:
			i++
			continue
		}

		flush(i)
		start = end
		i = end
	}
	flush(len(runes))

	return sentences
}

// isTerminal reports whether r ends a sentence. Besides Latin punctuation
// and the Arabic question mark this covers the Quranic small-sign stops.
func isTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '\u061F',
		'\u06DA', '\u06DB', '\u06D7', '\u06D9':
		return true
	}
	return false
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
