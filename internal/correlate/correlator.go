// Package correlate decides, per candidate article, whether it likely
// describes the same real-world incident as an original article, by
// fusing entity overlap, title similarity and publish-date proximity.
package correlate

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/echolens/echolens/internal/model"
	"github.com/echolens/echolens/internal/ner"
	"github.com/echolens/echolens/internal/score"
)

// Correlator orchestrates per-candidate incident scoring. The entity
// extractor is injected by the caller and treated as an opaque,
// possibly expensive capability; its failures degrade to empty sets.
type Correlator struct {
	extractor  ner.Extractor
	windowDays int
	workers    int
	log        *slog.Logger
}

// New creates a Correlator. windowDays <= 0 selects the default
// 14-day window; workers <= 1 scores candidates sequentially.
func New(extractor ner.Extractor, windowDays, workers int, log *slog.Logger) *Correlator {
	if log == nil {
		log = slog.Default()
	}
	if windowDays <= 0 {
		windowDays = score.DefaultDateWindowDays
	}
	if workers < 1 {
		workers = 1
	}
	return &Correlator{
		extractor:  ner.Safe{Inner: extractor, Log: log},
		windowDays: windowDays,
		workers:    workers,
		log:        log,
	}
}

// Correlate scores every candidate against the original article and
// attaches the precomputed sentence matches by normalized URL.
// Candidates with empty text are skipped entirely; everything else
// produces exactly one record, in input order. A failure for one
// candidate never aborts the batch.
func (c *Correlator) Correlate(ctx context.Context, original model.ArticleRecord, candidates []model.ArticleRecord, claimMatches []model.ArticleMatchResult) []model.IncidentVerdictRecord {
	matchesByURL := make(map[string][]model.SentenceMatch, len(claimMatches))
	for _, mr := range claimMatches {
		matchesByURL[NormalizeURL(mr.URL)] = mr.Matches
	}

	// Entities for the original are computed once per call and shared
	// across candidates. Nothing is cached across calls: entity sets
	// are cheap-ephemeral by design.
	originalEnts, _ := c.extractor.Extract(ctx, original.Text)

	kept := make([]model.ArticleRecord, 0, len(candidates))
	for _, cand := range candidates {
		if strings.TrimSpace(cand.Text) == "" {
			c.log.Debug("skipping candidate without text", "url", cand.URL)
			continue
		}
		kept = append(kept, cand)
	}

	records := make([]model.IncidentVerdictRecord, len(kept))
	if c.workers <= 1 || len(kept) <= 1 {
		for i, cand := range kept {
			records[i] = c.scoreCandidate(ctx, original, originalEnts, cand, matchesByURL)
		}
		return records
	}

	// Fan out with a bounded worker count; results land at their input
	// index so output order matches input order.
	var wg sync.WaitGroup
	sem := make(chan struct{}, c.workers)
	for i, cand := range kept {
		wg.Add(1)
		go func(idx int, cand model.ArticleRecord) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			records[idx] = c.scoreCandidate(ctx, original, originalEnts, cand, matchesByURL)
		}(i, cand)
	}
	wg.Wait()
	return records
}

// scoreCandidate computes all three signals for one candidate and
// classifies the verdict.
func (c *Correlator) scoreCandidate(ctx context.Context, original model.ArticleRecord, originalEnts ner.EntitySet, cand model.ArticleRecord, matchesByURL map[string][]model.SentenceMatch) model.IncidentVerdictRecord {
	candEnts, _ := c.extractor.Extract(ctx, cand.Text)

	entityScore := entityOverlap(originalEnts, candEnts)
	titleScore := score.TitleSimilarity(original.Title, cand.Title)
	prox := score.EvaluateDateProximity(original.PublishDate, cand.PublishDate, c.windowDays)
	if prox.Window == model.DateWindowUnknown {
		c.log.Debug("publish date missing or unparseable, date signal unknown", "url", cand.URL)
	}

	return model.IncidentVerdictRecord{
		URL:            cand.URL,
		Title:          cand.Title,
		EntityScore:    entityScore,
		TitleScore:     titleScore,
		SameDateWindow: prox.Window,
		Verdict:        score.ClassifyVerdict(entityScore, titleScore, prox.Window),
		Matches:        matchesByURL[NormalizeURL(cand.URL)],
	}
}

// entityOverlap is the fraction of named entities shared between the
// two sets, intersection over union across the PERSON, ORG and GPE
// categories, scaled to 0-100. An empty union scores 0.
func entityOverlap(a, b ner.EntitySet) float64 {
	fa := a.Across(ner.CategoryPerson, ner.CategoryOrg, ner.CategoryGPE)
	fb := b.Across(ner.CategoryPerson, ner.CategoryOrg, ner.CategoryGPE)

	inter := 0
	union := len(fb)
	for form := range fa {
		if _, ok := fb[form]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return score.Round2(float64(inter) / float64(union) * 100)
}

// NormalizeURL reduces a URL to host+path for match attachment:
// scheme and a leading www. are stripped, query string and fragment
// are dropped, the host is lower-cased.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		s := strings.TrimPrefix(raw, "https://")
		s = strings.TrimPrefix(s, "http://")
		s = strings.TrimPrefix(s, "www.")
		if i := strings.IndexByte(s, '?'); i >= 0 {
			s = s[:i]
		}
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		return strings.TrimSuffix(s, "/")
	}

	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	return host + strings.TrimSuffix(u.Path, "/")
}
