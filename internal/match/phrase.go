package match

import (
	"log/slog"
	"math"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/echolens/echolens/internal/model"
)

// nearMissFloor is the score above which a discarded sentence is still
// worth a log line. Scores in (nearMissFloor, threshold) are computed
// and dropped; they are a diagnostic signal, not data.
const nearMissFloor = 50

// SplitPhrases derives the ordered claim phrase set from the raw
// input: split on commas and semicolons, trim, drop empties. Order is
// preserved because ties between phrases keep the earliest one.
func SplitPhrases(input string) []string {
	input = strings.ReplaceAll(input, ";", ",")
	var phrases []string
	for _, p := range strings.Split(input, ",") {
		if p = strings.TrimSpace(p); p != "" {
			phrases = append(phrases, p)
		}
	}
	return phrases
}

// PhraseMatcher fuzzy-matches claim phrases against article sentences.
type PhraseMatcher struct {
	threshold int
	exact     bool
	log       *slog.Logger
}

// NewPhraseMatcher builds a matcher for one claim input. Exact mode
// forces the threshold to 100 and makes scores binary.
func NewPhraseMatcher(in model.ClaimInput, log *slog.Logger) *PhraseMatcher {
	if log == nil {
		log = slog.Default()
	}
	return &PhraseMatcher{
		threshold: in.EffectiveThreshold(),
		exact:     in.ExactMatch,
		log:       log,
	}
}

// MatchArticle produces the sentence matches for one article. Articles
// without usable text yield zero matches, not an error.
func (m *PhraseMatcher) MatchArticle(article model.ArticleRecord, phrases []string) []model.SentenceMatch {
	if !article.HasUsableText() {
		return nil
	}

	var matches []model.SentenceMatch
	for _, sentence := range SplitSentences(article.Text) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		lower := strings.ToLower(sentence)
		bestScore := 0.0
		bestPhrase := ""
		for _, phrase := range phrases {
			score := m.scorePhrase(strings.ToLower(phrase), lower)
			if score > bestScore { // strict > keeps the earliest phrase on ties
				bestScore = score
				bestPhrase = phrase
			}
		}

		switch {
		case bestScore >= float64(m.threshold):
			matches = append(matches, model.SentenceMatch{
				Sentence: sentence,
				Score:    round2(bestScore),
				Phrase:   bestPhrase,
			})
		case bestScore > nearMissFloor:
			m.log.Debug("near-miss sentence discarded",
				"score", round2(bestScore), "phrase", bestPhrase)
		}
	}
	return matches
}

// MatchArticles runs MatchArticle over a batch, keeping input order.
// Every article gets a result, even when it produced no matches.
func (m *PhraseMatcher) MatchArticles(articles []model.ArticleRecord, phrases []string) []model.ArticleMatchResult {
	results := make([]model.ArticleMatchResult, 0, len(articles))
	for _, a := range articles {
		results = append(results, model.ArticleMatchResult{
			URL:         a.URL,
			Title:       a.Title,
			PublishDate: a.PublishDate,
			Matches:     m.MatchArticle(a, phrases),
		})
	}
	return results
}

// scorePhrase scores one lower-cased phrase against a lower-cased
// sentence. Fuzzy mode is the best alignment of the phrase against any
// contiguous substring of the sentence; exact mode is binary.
func (m *PhraseMatcher) scorePhrase(phrase, sentence string) float64 {
	if phrase == "" {
		return 0
	}
	if m.exact {
		if strings.Contains(sentence, phrase) {
			return 100
		}
		return 0
	}
	return float64(fuzzy.PartialRatio(phrase, sentence))
}

// SplitSentences segments text on the ". " terminator. Deliberately
// simple: predictability over linguistic correctness.
func SplitSentences(text string) []string {
	return strings.Split(text, ". ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
