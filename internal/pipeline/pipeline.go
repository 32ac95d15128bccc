// Package pipeline wires the stages together: ingest the original,
// gather and ingest related coverage, match claim phrases, correlate
// incidents and assemble the report.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/echolens/echolens/internal/correlate"
	"github.com/echolens/echolens/internal/factcheck"
	"github.com/echolens/echolens/internal/ingest"
	"github.com/echolens/echolens/internal/logging"
	"github.com/echolens/echolens/internal/match"
	"github.com/echolens/echolens/internal/model"
	"github.com/echolens/echolens/internal/ner"
	"github.com/echolens/echolens/internal/report"
	"github.com/echolens/echolens/internal/search"
	"github.com/echolens/echolens/internal/session"
)

// Pipeline holds the long-lived stage components for one configured
// run of the engine.
type Pipeline struct {
	cfg       *model.Config
	log       *slog.Logger
	extractor *ingest.Extractor
	entities  ner.Extractor
	checker   *factcheck.Client
	state     *session.State
}

// NewPipeline builds all stages from configuration.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	level := cfg.Output.LogLevel
	if cfg.Output.Verbose {
		level = "debug"
	}
	log := logging.New(level)

	entities, err := ner.New(cfg.NER)
	if err != nil {
		return nil, fmt.Errorf("entity extractor: %w", err)
	}

	return &Pipeline{
		cfg:       cfg,
		log:       log,
		extractor: ingest.NewExtractor(cfg, log),
		entities:  entities,
		checker:   factcheck.NewClient(cfg.FactCheck),
		state:     session.NewState(),
	}, nil
}

// Logger exposes the pipeline logger for callers that report progress.
func (p *Pipeline) Logger() *slog.Logger { return p.log }

// State exposes the session store holding the latest results.
func (p *Pipeline) State() *session.State { return p.state }

// Analyze runs the full flow for one original article. relatedURLs
// are candidate coverage of the same story; they are filtered to
// recognized outlets before extraction.
func (p *Pipeline) Analyze(ctx context.Context, originalURL string, relatedURLs []string, claim model.ClaimInput) (*report.Report, error) {
	original, err := p.extractor.Extract(ctx, originalURL)
	if err != nil {
		return nil, fmt.Errorf("original article: %w", err)
	}
	if !original.HasUsableText() {
		return nil, fmt.Errorf("original article %s has no usable text", originalURL)
	}

	filtered := search.FilterURLs(relatedURLs, p.cfg.Search.ExtraDomains, p.log)
	if max := p.cfg.Search.MaxResults; max > 0 && len(filtered) > max {
		filtered = filtered[:max]
	}
	p.log.Info("related coverage selected", "candidates", len(filtered), "offered", len(relatedURLs))

	candidates := p.extractor.ExtractAll(ctx, filtered)

	matcher := match.NewPhraseMatcher(claim, p.log)
	phrases := match.SplitPhrases(claim.Phrases)
	claimMatches := matcher.MatchArticles(candidates, phrases)

	correlator := correlate.New(p.entities, p.cfg.Match.DateWindowDays, p.cfg.Concurrency.ScoreWorkers, p.log)
	verdicts := correlator.Correlate(ctx, *original, candidates, claimMatches)

	rep := &report.Report{
		GeneratedAt: time.Now(),
		Original:    *original,
		Claim:       claim,
		Candidates:  candidates,
		Verdicts:    verdicts,
	}

	if p.checker != nil {
		query := claim.Phrases
		if query == "" {
			query = original.Title
		}
		reviews, err := p.checker.Search(ctx, query)
		if err != nil {
			// Advisory lookup only; a failure never fails the run.
			p.log.Warn("fact check lookup failed", "err", err)
		} else {
			rep.FactChecks = reviews
		}
	}

	p.state.Replace(*original, claim, verdicts)
	return rep, nil
}

// Extract ingests a single article through the configured fetcher
// and cache.
func (p *Pipeline) Extract(ctx context.Context, url string) (*model.ArticleRecord, error) {
	return p.extractor.Extract(ctx, url)
}

// MatchOnly runs claim matching over already-extracted articles,
// skipping ingestion and correlation.
func (p *Pipeline) MatchOnly(articles []model.ArticleRecord, claim model.ClaimInput) []model.ArticleMatchResult {
	matcher := match.NewPhraseMatcher(claim, p.log)
	return matcher.MatchArticles(articles, match.SplitPhrases(claim.Phrases))
}
