package ner

import (
	"context"
	"regexp"
	"strings"
	"unicode"
)

// RuleExtractor is a dependency-free extractor built from regex
// patterns and lexical cues. It is deliberately conservative: entity
// overlap scoring only needs surface forms that repeat across
// articles, not exhaustive recall.
type RuleExtractor struct {
	datePattern *regexp.Regexp
}

// NewRuleExtractor creates the default rule-based extractor.
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{
		datePattern: regexp.MustCompile(
			`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{4}` +
				`|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}` +
				`|\d{4}-\d{2}-\d{2}`),
	}
}

var honorifics = map[string]bool{
	"Mr": true, "Mrs": true, "Ms": true, "Dr": true, "Prof": true,
	"President": true, "Senator": true, "Gov": true, "Mayor": true,
	"Officer": true, "Chief": true, "Judge": true, "Sgt": true,
	"Det": true, "Rep": true, "Sen": true,
}

var orgMarkers = map[string]bool{
	"Inc": true, "Corp": true, "Corporation": true, "Ltd": true,
	"LLC": true, "University": true, "College": true, "Hospital": true,
	"Bank": true, "Agency": true, "Department": true, "Police": true,
	"Ministry": true, "Committee": true, "Association": true,
	"Council": true, "Court": true, "Bureau": true, "Authority": true,
	"News": true, "Times": true, "Post": true, "Herald": true,
}

var locationCues = map[string]bool{
	"in": true, "at": true, "near": true, "outside": true,
	"across": true, "from": true, "to": true,
}

var knownPlaces = map[string]bool{
	"US": true, "UK": true, "USA": true, "America": true,
	"Washington": true, "London": true, "Paris": true, "Berlin": true,
	"Moscow": true, "Beijing": true, "Tokyo": true, "Ukraine": true,
	"Russia": true, "China": true, "India": true, "Canada": true,
	"Australia": true, "France": true, "Germany": true, "Texas": true,
	"California": true, "Florida": true, "Chicago": true, "Ottawa": true,
	"Gaza": true, "Israel": true, "Iran": true, "Mexico": true,
}

// Extract scans the text for dates and capitalized-token runs and
// buckets them into PERSON, ORG, GPE and DATE. Empty or malformed
// text yields an empty set, never an error.
func (e *RuleExtractor) Extract(_ context.Context, text string) (EntitySet, error) {
	set := NewEntitySet()
	if strings.TrimSpace(text) == "" {
		return set, nil
	}

	for _, d := range e.datePattern.FindAllString(text, -1) {
		set.Add(CategoryDate, d)
	}

	words := strings.Fields(text)
	var run []string
	var cue string // lowercase word or honorific immediately before the run

	flush := func() {
		if len(run) > 0 {
			e.classify(set, run, cue)
		}
		run = nil
	}

	for _, raw := range words {
		clean := strings.Trim(raw, ".,!?;:()[]{}\"'")
		if clean == "" {
			flush()
			cue = ""
			continue
		}

		if honorifics[clean] {
			// Honorifics signal a person but are not part of the name.
			flush()
			cue = clean
			continue
		}

		if isCapitalized(clean) {
			run = append(run, clean)
			// Sentence punctuation ends the run even mid-capitals.
			if strings.ContainsAny(raw[len(raw)-1:], ".!?;:,") {
				flush()
				cue = ""
			}
			continue
		}

		flush()
		cue = strings.ToLower(clean)
	}
	flush()

	return set, nil
}

// classify buckets one capitalized run using the cue word before it.
func (e *RuleExtractor) classify(set EntitySet, run []string, cue string) {
	surface := strings.Join(run, " ")

	for _, part := range run {
		if orgMarkers[part] {
			set.Add(CategoryOrg, surface)
			return
		}
	}

	if honorifics[cue] {
		set.Add(CategoryPerson, surface)
		return
	}

	for _, part := range run {
		if knownPlaces[part] {
			set.Add(CategoryGPE, surface)
			return
		}
	}
	if locationCues[cue] && len(run) <= 3 {
		set.Add(CategoryGPE, surface)
		return
	}

	if len(run) >= 2 {
		set.Add(CategoryPerson, surface)
		return
	}

	// Single token: only acronyms are confident enough to keep.
	if isAcronym(run[0]) {
		set.Add(CategoryOrg, run[0])
	}
}

func isCapitalized(word string) bool {
	if len(word) < 2 {
		return false
	}
	runes := []rune(word)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}

func isAcronym(word string) bool {
	if len(word) < 2 || len(word) > 6 {
		return false
	}
	for _, r := range word {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
