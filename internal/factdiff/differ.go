// Package factdiff performs the strict numeric fact-pair diff between
// two article texts: it extracts (number, adjacent-keyword) pairs per
// sentence and classifies them as corroborated or conflicting across
// the two sides.
package factdiff

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kljensen/snowball/english"

	"github.com/echolens/echolens/internal/model"
)

var (
	tokenPattern  = regexp.MustCompile(`\w+|%+`)
	numberPattern = regexp.MustCompile(`^\d+%?`)
)

// Diff extracts fact pairs from both texts and cross-compares them.
// Two pairs match iff their keyword stems are equal and the integer
// values differ by at most maxDelta (percent signs stripped first).
// Matching is sticky: a pair that matches any counterpart is reported
// as matched and never reverts, even if later comparisons fail. Pairs
// whose number does not parse as an integer are excluded from
// matching but still reported as unmatched.
func Diff(in model.FactPairInput) model.FactPairDiffResult {
	maxDelta := in.EffectiveMaxDelta()

	factsA := ExtractFactPairs(in.TextA)
	factsB := ExtractFactPairs(in.TextB)

	matched := make(map[model.FactPair]bool)
	for _, pa := range factsA {
		na, ok := numberToInt(pa.Number)
		if !ok {
			continue
		}
		for _, pb := range factsB {
			nb, ok := numberToInt(pb.Number)
			if !ok {
				continue
			}
			if pa.KeywordStem == pb.KeywordStem && abs(na-nb) <= maxDelta {
				matched[pa] = true
				matched[pb] = true
			}
		}
	}

	matchedA, unmatchedA := partition(factsA, matched)
	matchedB, unmatchedB := partition(factsB, matched)
	return model.FactPairDiffResult{
		MatchedA:   matchedA,
		UnmatchedA: unmatchedA,
		MatchedB:   matchedB,
		UnmatchedB: unmatchedB,
	}
}

// ExtractFactPairs tokenizes each sentence into word/percent tokens
// and records a pair for every adjacency where one side is numeric:
// the literal numeric token plus the stemmed neighboring word.
func ExtractFactPairs(text string) []model.FactPair {
	var pairs []model.FactPair
	for _, sentence := range SplitSentences(text) {
		trimmed := strings.TrimSpace(sentence)
		tokens := tokenPattern.FindAllString(strings.ToLower(sentence), -1)
		for i := 0; i+1 < len(tokens); i++ {
			switch {
			case numberPattern.MatchString(tokens[i]):
				pairs = append(pairs, model.FactPair{
					Sentence:    trimmed,
					Number:      tokens[i],
					KeywordStem: stem(tokens[i+1]),
				})
			case numberPattern.MatchString(tokens[i+1]):
				pairs = append(pairs, model.FactPair{
					Sentence:    trimmed,
					Number:      tokens[i+1],
					KeywordStem: stem(tokens[i]),
				})
			}
		}
	}
	return pairs
}

// SplitSentences segments on sentence-ending punctuation followed by
// whitespace. Stricter than the claim matcher's ". " split because
// fact pairs also occur before "!" and "?".
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if isTerminator(runes[i]) && i+1 < len(runes) && runes[i+1] == ' ' {
			sentences = append(sentences, current.String())
			current.Reset()
			for i+1 < len(runes) && runes[i+1] == ' ' {
				i++
			}
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func stem(word string) string {
	return english.Stem(word, false)
}

// numberToInt strips a trailing percent sign and parses the rest.
func numberToInt(token string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSuffix(token, "%"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// partition splits pairs into matched and unmatched in extraction
// order, deduplicating identical tuples.
func partition(pairs []model.FactPair, matched map[model.FactPair]bool) (m, u []model.FactPair) {
	seen := make(map[model.FactPair]bool, len(pairs))
	for _, p := range pairs {
		if seen[p] {
			continue
		}
		seen[p] = true
		if matched[p] {
			m = append(m, p)
		} else {
			u = append(u, p)
		}
	}
	return m, u
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
