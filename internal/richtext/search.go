package richtext

import (
	"regexp"
	"strings"

	"github.com/ppiankov/libris/internal/model"
)

// MaxSnippets caps the number of matching sentences shown per document
const MaxSnippets = 3

// Segment is a piece of a sentence, highlighted when it matched the query
type Segment struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted,omitempty"`
}

// Snippet is one matching sentence split into highlight segments
type Snippet struct {
	Sentence string    `json:"sentence"`
	Segments []Segment `json:"segments"`
}

// MatchSentences returns the sentences containing query, ignoring case, in
// their original order. At most limit sentences are returned; limit <= 0
// means no cap.
func MatchSentences(sentences []string, query string, limit int) []string {
	needle := strings.ToLower(query)

	var matches []string
	for _, sentence := range sentences {
		if limit > 0 && len(matches) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(sentence), needle) {
			matches = append(matches, sentence)
		}
	}
	return matches
}

// Highlight splits sentence around every case-insensitive occurrence of
// query. The query is always matched literally. An empty query yields the
// sentence as a single plain segment.
func Highlight(sentence, query string) []Segment {
	if query == "" {
		return []Segment{{Text: sentence}}
	}

	pattern := literalPattern(query)

	var segments []Segment
	last := 0
	for _, loc := range pattern.FindAllStringIndex(sentence, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Text: sentence[last:loc[0]]})
		}
		segments = append(segments, Segment{Text: sentence[loc[0]:loc[1]], Highlighted: true})
		last = loc[1]
	}
	if last < len(sentence) {
		segments = append(segments, Segment{Text: sentence[last:]})
	}

	return segments
}

// Snippets finds up to MaxSnippets sentences of doc containing query and
// highlights the query inside each of them.
func Snippets(doc model.Document, query string) []Snippet {
	sentences := SplitSentences(ExtractPlainText(doc))
	matches := MatchSentences(sentences, query, MaxSnippets)

	snippets := make([]Snippet, 0, len(matches))
	for _, sentence := range matches {
		snippets = append(snippets, Snippet{
			Sentence: sentence,
			Segments: Highlight(sentence, query),
		})
	}
	return snippets
}

// Mark renders segments as a string, wrapping highlighted segments in
// open and close.
func Mark(segments []Segment, open, close string) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Highlighted {
			b.WriteString(open)
			b.WriteString(seg.Text)
			b.WriteString(close)
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// literalPattern compiles query as a case-insensitive literal.
// QuoteMeta output always compiles.
func literalPattern(query string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
}
