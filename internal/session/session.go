// Package session holds the results of the latest analysis run in
// memory and answers filtered views over them without re-running the
// pipeline.
package session

import (
	"sort"
	"sync"

	"github.com/echolens/echolens/internal/model"
)

// FilterOptions narrows the stored verdict records. Zero values leave
// a dimension unfiltered.
type FilterOptions struct {
	Verdicts       []model.Verdict // keep only these verdicts
	MinEntityScore float64
	MaxEntityScore float64 // 0 means no upper bound
	MinTitleScore  float64
	MaxTitleScore  float64 // 0 means no upper bound
	DateWindow     model.DateWindow
	MinMatchScore  float64  // drop sentence matches below this
	Phrases        []string // keep only matches won by these phrases
}

// State is the mutable per-session result store. Safe for concurrent
// readers and writers.
type State struct {
	mu       sync.RWMutex
	original model.ArticleRecord
	claim    model.ClaimInput
	verdicts []model.IncidentVerdictRecord
}

// NewState returns an empty session.
func NewState() *State {
	return &State{}
}

// Replace swaps in the results of a fresh run, discarding the old ones.
func (s *State) Replace(original model.ArticleRecord, claim model.ClaimInput, verdicts []model.IncidentVerdictRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.original = original
	s.claim = claim
	s.verdicts = append([]model.IncidentVerdictRecord(nil), verdicts...)
}

// Clear drops all stored results.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.original = model.ArticleRecord{}
	s.claim = model.ClaimInput{}
	s.verdicts = nil
}

// Original returns the analyzed article.
func (s *State) Original() model.ArticleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.original
}

// Claim returns the claim the results were produced for.
func (s *State) Claim() model.ClaimInput {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.claim
}

// Results returns a copy of all stored verdict records.
func (s *State) Results() []model.IncidentVerdictRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.IncidentVerdictRecord(nil), s.verdicts...)
}

// Phrases returns the distinct winning phrases across all stored
// matches, sorted.
func (s *State) Phrases() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	for _, v := range s.verdicts {
		for _, m := range v.Matches {
			seen[m.Phrase] = true
		}
	}
	phrases := make([]string, 0, len(seen))
	for p := range seen {
		phrases = append(phrases, p)
	}
	sort.Strings(phrases)
	return phrases
}

// Filter returns the records that pass every requested criterion.
// Sentence matches inside a kept record are themselves filtered by
// MinMatchScore and Phrases; the record survives even if that leaves
// it with no matches.
func (s *State) Filter(opts FilterOptions) []model.IncidentVerdictRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.IncidentVerdictRecord
	for _, v := range s.verdicts {
		if !verdictAllowed(v.Verdict, opts.Verdicts) {
			continue
		}
		if v.EntityScore < opts.MinEntityScore {
			continue
		}
		if opts.MaxEntityScore > 0 && v.EntityScore > opts.MaxEntityScore {
			continue
		}
		if v.TitleScore < opts.MinTitleScore {
			continue
		}
		if opts.MaxTitleScore > 0 && v.TitleScore > opts.MaxTitleScore {
			continue
		}
		if opts.DateWindow != "" && v.SameDateWindow != opts.DateWindow {
			continue
		}

		kept := v
		kept.Matches = filterMatches(v.Matches, opts)
		out = append(out, kept)
	}
	return out
}

func verdictAllowed(v model.Verdict, allowed []model.Verdict) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func filterMatches(matches []model.SentenceMatch, opts FilterOptions) []model.SentenceMatch {
	var out []model.SentenceMatch
	for _, m := range matches {
		if m.Score < opts.MinMatchScore {
			continue
		}
		if len(opts.Phrases) > 0 && !containsString(opts.Phrases, m.Phrase) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
