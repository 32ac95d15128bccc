package factdiff

import (
	"testing"

	"github.com/echolens/echolens/internal/model"
)

func TestExtractFactPairs_NumberBeforeKeyword(t *testing.T) {
	pairs := ExtractFactPairs("The fire injured 5 people downtown.")

	if !hasPair(pairs, "5", "peopl") {
		t.Errorf("Expected pair (5, peopl), got %v", pairs)
	}
	// The adjacency on the other side of the number is recorded too.
	if !hasPair(pairs, "5", "injur") {
		t.Errorf("Expected pair (5, injur), got %v", pairs)
	}
}

func TestExtractFactPairs_PercentToken(t *testing.T) {
	pairs := ExtractFactPairs("Turnout reached 40% yesterday.")

	found := false
	for _, p := range pairs {
		if p.Number == "40" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a pair for the numeric token 40, got %v", pairs)
	}
}

func TestExtractFactPairs_NoNumbers(t *testing.T) {
	pairs := ExtractFactPairs("No quantities appear anywhere in this sentence.")
	if len(pairs) != 0 {
		t.Errorf("Expected no pairs, got %v", pairs)
	}
}

func TestDiff_AgreementWithinDelta(t *testing.T) {
	res := Diff(model.FactPairInput{
		TextA:    "The fire killed 5 people on Friday.",
		TextB:    "Officials said the blaze killed 6 people.",
		MaxDelta: 5,
	})

	if !hasPair(res.MatchedA, "5", "peopl") {
		t.Errorf("Expected (5, peopl) matched on side A, got matched=%v unmatched=%v", res.MatchedA, res.UnmatchedA)
	}
	if !hasPair(res.MatchedB, "6", "peopl") {
		t.Errorf("Expected (6, peopl) matched on side B, got matched=%v unmatched=%v", res.MatchedB, res.UnmatchedB)
	}
}

func TestDiff_ConflictBeyondDelta(t *testing.T) {
	res := Diff(model.FactPairInput{
		TextA:    "The fire killed 5 people on Friday.",
		TextB:    "Officials said the blaze killed 50 people.",
		MaxDelta: 5,
	})

	if hasPair(res.MatchedA, "5", "peopl") {
		t.Error("Expected (5, peopl) to conflict, but it matched")
	}
	if !hasPair(res.UnmatchedA, "5", "peopl") {
		t.Errorf("Expected (5, peopl) unmatched on side A, got %v", res.UnmatchedA)
	}
	if !hasPair(res.UnmatchedB, "50", "peopl") {
		t.Errorf("Expected (50, peopl) unmatched on side B, got %v", res.UnmatchedB)
	}
}

func TestDiff_StickyMatching(t *testing.T) {
	// Side B carries two pairs with the same stem; one is close to A's
	// value, the other is far. The close one matches and stays matched,
	// the far one stays unmatched.
	res := Diff(model.FactPairInput{
		TextA:    "Rescuers found 5 survivors overnight.",
		TextB:    "First reports counted 4 survivors. Later updates claimed 90 survivors.",
		MaxDelta: 5,
	})

	if !hasPair(res.MatchedA, "5", "survivor") {
		t.Errorf("Expected A's pair matched, got matched=%v", res.MatchedA)
	}
	if !hasPair(res.MatchedB, "4", "survivor") {
		t.Errorf("Expected B's close pair matched, got matched=%v", res.MatchedB)
	}
	if !hasPair(res.UnmatchedB, "90", "survivor") {
		t.Errorf("Expected B's far pair unmatched, got unmatched=%v", res.UnmatchedB)
	}
}

func TestDiff_DifferentStemsNeverMatch(t *testing.T) {
	res := Diff(model.FactPairInput{
		TextA:    "The storm destroyed 10 houses this week.",
		TextB:    "The storm injured 10 residents this week.",
		MaxDelta: 5,
	})

	if len(res.MatchedA) != 0 || len(res.MatchedB) != 0 {
		t.Errorf("Equal numbers with different keywords must not match: %v / %v", res.MatchedA, res.MatchedB)
	}
}

func TestDiff_PercentStrippedForComparison(t *testing.T) {
	res := Diff(model.FactPairInput{
		TextA:    "Support rose to 40 percent among voters.",
		TextB:    "Support rose to 42 percent among voters.",
		MaxDelta: 5,
	})

	if !hasPair(res.MatchedA, "40", "percent") {
		t.Errorf("Expected (40, percent) matched, got matched=%v unmatched=%v", res.MatchedA, res.UnmatchedA)
	}
}

func TestDiff_MaxDeltaClamped(t *testing.T) {
	in := model.FactPairInput{MaxDelta: 100}
	if got := in.EffectiveMaxDelta(); got != 20 {
		t.Errorf("Expected max delta clamped to 20, got %d", got)
	}
	in = model.FactPairInput{MaxDelta: 0}
	if got := in.EffectiveMaxDelta(); got != model.DefaultMaxDelta {
		t.Errorf("Expected default max delta, got %d", got)
	}
}

func TestSplitSentences_Terminators(t *testing.T) {
	got := SplitSentences("One body. Two bodies! Three bodies? Four")
	if len(got) != 4 {
		t.Fatalf("Expected 4 sentences, got %d: %v", len(got), got)
	}
	if got[1] != "Two bodies!" {
		t.Errorf("Unexpected second sentence: %q", got[1])
	}
}

func hasPair(pairs []model.FactPair, number, stem string) bool {
	for _, p := range pairs {
		if p.Number == number && p.KeywordStem == stem {
			return true
		}
	}
	return false
}
