// Package ingest downloads article pages and turns them into
// ArticleRecords: title, authors, body text and a publish date with
// the same fallback chain the rest of the pipeline expects.
package ingest

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/echolens/echolens/internal/model"
	"github.com/echolens/echolens/internal/util"
	"github.com/echolens/echolens/internal/worker"
)

// ErrRobotsDisallowed marks URLs the site's robots.txt forbids.
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

// Fetcher retrieves article HTML politely: robots.txt check first,
// then per-domain rate limiting, then a bounded read.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
}

// NewFetcher builds a fetcher from the HTTP configuration.
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   worker.NewLimiter(cfg.RatePerSecond, cfg.RateBurst),
	}
}

// Fetch retrieves the page and returns its HTML and final URL after
// redirects.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (html, finalURL string, err error) {
	allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return "", "", fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return "", "", fmt.Errorf("%s: %w", rawURL, ErrRobotsDisallowed)
	}
	if err := f.limiter.WaitWithDelay(ctx, rawURL, delay); err != nil {
		return "", "", fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", "", fmt.Errorf("read body: %w", err)
	}

	return string(body), resp.Request.URL.String(), nil
}
