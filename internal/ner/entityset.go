package ner

import (
	"sort"
	"strings"
)

// Category is a named-entity category label. Labels follow the usual
// NER tag set so external capabilities can be swapped in directly.
type Category string

const (
	CategoryPerson Category = "PERSON"
	CategoryOrg    Category = "ORG"
	CategoryGPE    Category = "GPE" // geopolitical entity / location
	CategoryDate   Category = "DATE"
	CategoryEvent  Category = "EVENT"
	CategoryLaw    Category = "LAW"
)

// EntitySet maps a category to its deduplicated surface forms. Forms
// are kept exactly as extracted, case-sensitive, no normalization.
// Sets are ephemeral: recomputed per call, never cached across calls.
type EntitySet map[Category]map[string]struct{}

// NewEntitySet returns an empty entity set.
func NewEntitySet() EntitySet {
	return make(EntitySet)
}

// Add records a surface form under the given category. Empty or
// whitespace-only forms are dropped.
func (s EntitySet) Add(cat Category, surface string) {
	surface = strings.TrimSpace(surface)
	if surface == "" {
		return
	}
	forms, ok := s[cat]
	if !ok {
		forms = make(map[string]struct{})
		s[cat] = forms
	}
	forms[surface] = struct{}{}
}

// Forms returns the surface forms for one category, sorted for
// deterministic output.
func (s EntitySet) Forms(cat Category) []string {
	forms := make([]string, 0, len(s[cat]))
	for f := range s[cat] {
		forms = append(forms, f)
	}
	sort.Strings(forms)
	return forms
}

// Across merges the surface forms of the given categories into one set.
func (s EntitySet) Across(cats ...Category) map[string]struct{} {
	merged := make(map[string]struct{})
	for _, cat := range cats {
		for f := range s[cat] {
			merged[f] = struct{}{}
		}
	}
	return merged
}

// Count returns the number of distinct forms in the given categories,
// or across all categories when none are named.
func (s EntitySet) Count(cats ...Category) int {
	if len(cats) == 0 {
		n := 0
		for _, forms := range s {
			n += len(forms)
		}
		return n
	}
	n := 0
	for _, cat := range cats {
		n += len(s[cat])
	}
	return n
}
