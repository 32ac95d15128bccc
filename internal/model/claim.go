package model

// ClaimInput carries the user-supplied claim and the matching knobs.
type ClaimInput struct {
	Phrases    string `json:"phrases"`     // comma/semicolon separated key phrases
	Threshold  int    `json:"threshold"`   // 0-100, minimum score to keep a sentence
	ExactMatch bool   `json:"exact_match"` // verbatim substring matching only
}

// DefaultThreshold is the fuzzy-match cutoff used when none is given.
const DefaultThreshold = 60

// EffectiveThreshold returns the threshold that matching should apply.
// Exact mode always forces 100 regardless of the requested value.
func (c ClaimInput) EffectiveThreshold() int {
	if c.ExactMatch {
		return 100
	}
	if c.Threshold <= 0 {
		return DefaultThreshold
	}
	return c.Threshold
}

// SentenceMatch is one sentence that cleared the matching threshold.
type SentenceMatch struct {
	Sentence string  `json:"sentence"`
	Score    float64 `json:"score"`  // 0-100, two decimals
	Phrase   string  `json:"phrase"` // the winning claim phrase
}

// ArticleMatchResult groups the sentence matches for one article.
type ArticleMatchResult struct {
	URL         string          `json:"url"`
	Title       string          `json:"title"`
	PublishDate string          `json:"publish_date,omitempty"`
	Matches     []SentenceMatch `json:"matches"`
}
