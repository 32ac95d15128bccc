package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/echolens/echolens/internal/cache"
	"github.com/echolens/echolens/internal/model"
	"github.com/echolens/echolens/internal/worker"
)

// Extractor turns URLs into ArticleRecords, with a layered cache in
// front of the network and a worker pool for batches.
type Extractor struct {
	fetcher *Fetcher
	store   cache.Cache // nil when caching is disabled
	workers int
	log     *slog.Logger
	now     func() time.Time
}

// NewExtractor wires the fetcher, cache and pool from configuration.
func NewExtractor(cfg *model.Config, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayered(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	workers := cfg.Concurrency.ExtractWorkers
	if workers <= 0 {
		workers = 1
	}

	return &Extractor{
		fetcher: NewFetcher(cfg.HTTP),
		store:   store,
		workers: workers,
		log:     log,
		now:     time.Now,
	}
}

// Extract fetches and parses one article. The publish date falls back
// from page metadata to date patterns in the text head to a date in
// the URL path, in that order.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*model.ArticleRecord, error) {
	if e.store != nil {
		if raw, ok := e.store.Get(cache.Key(rawURL)); ok {
			var rec model.ArticleRecord
			if err := json.Unmarshal(raw, &rec); err == nil {
				e.log.Debug("article cache hit", "url", rawURL)
				return &rec, nil
			}
		}
	}

	htmlContent, finalURL, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", rawURL, err)
	}

	page := ParseArticle(finalURL, htmlContent)
	rec := &model.ArticleRecord{
		URL:         page.URL,
		Title:       page.Title,
		Text:        page.Text,
		PublishDate: page.PublishDate,
		Authors:     page.Authors,
		TopImage:    page.TopImage,
	}

	if rec.PublishDate == "" {
		if d := DateFromText(rec.Text, e.now()); d != "" {
			e.log.Debug("publish date recovered from text", "url", rawURL, "date", d)
			rec.PublishDate = d
		} else if d := DateFromURL(rec.URL); d != "" {
			e.log.Debug("publish date recovered from URL", "url", rawURL, "date", d)
			rec.PublishDate = d
		} else {
			e.log.Warn("no publish date found", "url", rawURL)
		}
	}

	if e.store != nil {
		if raw, err := json.Marshal(rec); err == nil {
			_ = e.store.Set(cache.Key(rawURL), raw, 0)
		}
	}

	return rec, nil
}

// ExtractAll fetches a batch of URLs through the worker pool. Output
// order matches input order; URLs that fail to extract are logged and
// dropped, never aborting the batch.
func (e *Extractor) ExtractAll(ctx context.Context, urls []string) []model.ArticleRecord {
	jobs := make([]worker.Job, len(urls))
	for i, u := range urls {
		jobs[i] = &extractJob{index: i, url: u, extractor: e}
	}

	pool := worker.NewPool(e.workers)
	results := pool.Run(ctx, jobs)

	records := make([]model.ArticleRecord, 0, len(urls))
	for i, res := range results {
		er, ok := res.(*extractResult)
		if !ok || er == nil {
			continue
		}
		if er.err != nil {
			e.log.Warn("related article extraction failed", "url", urls[i], "err", er.err)
			continue
		}
		records = append(records, *er.record)
	}
	return records
}

type extractJob struct {
	index     int
	url       string
	extractor *Extractor
}

func (j *extractJob) Index() int { return j.index }

func (j *extractJob) Execute(ctx context.Context) worker.Result {
	rec, err := j.extractor.Extract(ctx, j.url)
	return &extractResult{record: rec, err: err}
}

type extractResult struct {
	record *model.ArticleRecord
	err    error
}

func (r *extractResult) Err() error { return r.err }
