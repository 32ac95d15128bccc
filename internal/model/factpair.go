package model

// FactPair is a (numeric token, adjacent keyword) extracted from a
// sentence. Pairs from two articles are compared on the stemmed
// keyword and on numeric closeness to flag corroborating vs.
// conflicting quantitative statements.
type FactPair struct {
	Sentence    string `json:"sentence"`
	Number      string `json:"number"`       // literal token, may carry a % suffix
	KeywordStem string `json:"keyword_stem"` // stemmed adjacent token
}

// FactPairInput carries the two texts to diff and the numeric slack.
type FactPairInput struct {
	TextA    string `json:"text_a"`
	TextB    string `json:"text_b"`
	MaxDelta int    `json:"max_delta"` // 1-20, allowed |a-b| for a match
}

// DefaultMaxDelta is the numeric slack used when none is given.
const DefaultMaxDelta = 5

// EffectiveMaxDelta clamps the requested slack into the supported range.
func (in FactPairInput) EffectiveMaxDelta() int {
	switch {
	case in.MaxDelta < 1:
		return DefaultMaxDelta
	case in.MaxDelta > 20:
		return 20
	default:
		return in.MaxDelta
	}
}

// FactPairDiffResult is the raw output of the fact-pair diff: which
// pairs on each side found a counterpart and which did not. Rendering
// (highlight spans) is a collaborator concern built on these tuples.
type FactPairDiffResult struct {
	MatchedA   []FactPair `json:"matched_a"`
	UnmatchedA []FactPair `json:"unmatched_a"`
	MatchedB   []FactPair `json:"matched_b"`
	UnmatchedB []FactPair `json:"unmatched_b"`
}
