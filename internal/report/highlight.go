package report

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/echolens/echolens/internal/model"
)

// Markers wrapped around fact spans. The HTML renderer swaps them for
// <mark> tags; the console renderer keeps them as-is.
const (
	matchedOpen   = "[[="
	matchedClose  = "=]]"
	conflictOpen  = "[[!"
	conflictClose = "!]]"

	// factSpanWindow bounds the gap between a number and its keyword.
	factSpanWindow = 30
)

// HighlightFacts wraps each "number ... keyword" span in the text
// with matched or conflict markers. Matched pairs are applied first;
// a span already marked is not marked again.
func HighlightFacts(text string, matched, unmatched []model.FactPair) string {
	out := text
	for _, p := range matched {
		out = markSpan(out, p, matchedOpen, matchedClose)
	}
	for _, p := range unmatched {
		out = markSpan(out, p, conflictOpen, conflictClose)
	}
	return out
}

func markSpan(text string, p model.FactPair, open, close string) string {
	expr := fmt.Sprintf(`(?i)%s.{0,%d}%s\w*`,
		regexp.QuoteMeta(p.Number), factSpanWindow, regexp.QuoteMeta(p.KeywordStem))
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return text
	}

	replaced := false
	return pattern.ReplaceAllStringFunc(text, func(span string) string {
		if replaced || strings.Contains(span, "[[") {
			return span
		}
		replaced = true
		return open + span + close
	})
}
