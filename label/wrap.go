package label

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/chartdraw"
)

// Wrap breaks text into lines no wider than maxWidth. Newlines always
// break. Words are packed greedily; a word wider than maxWidth on its own
// is split at the longest rune prefix that fits, found by binary search.
// A non-positive maxWidth only splits on newlines.
func Wrap(text string, f chartdraw.Font, maxWidth float64, m Measurer) []string {
	paragraphs := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if maxWidth <= 0 {
		return paragraphs
	}
	var lines []string
	for _, para := range paragraphs {
		lines = append(lines, wrapParagraph(para, f, maxWidth, m)...)
	}
	return lines
}

func wrapParagraph(para string, f chartdraw.Font, maxWidth float64, m Measurer) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := ""
	for _, w := range words {
		candidate := w
		if line != "" {
			candidate = line + " " + w
		}
		if m.Advance(candidate, f) <= maxWidth {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
			line = ""
		}
		for m.Advance(w, f) > maxWidth {
			head, tail := splitWord(w, f, maxWidth, m)
			lines = append(lines, head)
			w = tail
		}
		line = w
	}
	if line == "" && len(lines) > 0 {
		return lines
	}
	return append(lines, line)
}

// splitWord returns the longest prefix of w that fits in maxWidth, and the
// rest. The prefix always holds at least one rune.
func splitWord(w string, f chartdraw.Font, maxWidth float64, m Measurer) (string, string) {
	runes := []rune(w)
	n := sort.Search(len(runes), func(i int) bool {
		return m.Advance(string(runes[:i+1]), f) > maxWidth
	})
	n = max(n, 1)
	return string(runes[:n]), string(runes[n:])
}

// Direction returns the base direction of text from its first strong
// character: bidi.LeftToRight, bidi.RightToLeft, or bidi.Neutral when the
// text has no strong characters.
func Direction(text string) bidi.Direction {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return bidi.LeftToRight
		case bidi.R, bidi.AL:
			return bidi.RightToLeft
		}
	}
	return bidi.Neutral
}
