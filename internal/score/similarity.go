package score

import (
	"math"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// TitleSimilarity scores two titles 0-100 as a normalized edit-based
// sequence ratio over the lower-cased strings. This is the full-string
// ratio, not the partial (best-substring) ratio. Arguments are ordered
// canonically before scoring so the function is symmetric by
// construction. Equal titles, including two empty ones, score 100.
func TitleSimilarity(a, b string) float64 {
	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	if la == lb {
		return 100
	}
	if la > lb {
		la, lb = lb, la
	}
	return Clamp(Round2(float64(fuzzy.Ratio(la, lb))))
}

// Round2 rounds to two decimals, the precision all scores carry.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp forces a score into [0,100].
func Clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
