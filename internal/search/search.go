// Package search filters candidate related-article URLs down to
// unique, recognized news outlets. The search engine itself stays
// behind the Provider interface; a URL list file is an accepted
// substitute.
package search

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
)

// Provider is the external capability that turns a query into
// candidate URLs.
type Provider interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
}

// newsDomains is the curated list of known major news outlets.
// Candidates from anywhere else are filtered out before extraction.
var newsDomains = []string{
	"cnn.com", "reuters.com", "bbc.com", "nytimes.com", "foxnews.com", "apnews.com",
	"npr.org", "nbcnews.com", "abcnews.go.com", "cbsnews.com", "washingtonpost.com",
	"theguardian.com", "forbes.com", "bloomberg.com", "usatoday.com", "latimes.com",
	"politico.com", "newsweek.com", "msnbc.com", "thehill.com", "aljazeera.com",
	"time.com", "pbs.org", "wsj.com", "economist.com", "axios.com",
	"vice.com", "independent.co.uk", "telegraph.co.uk", "globalnews.ca", "cbc.ca",
	"ctvnews.ca", "abc.net.au", "smh.com.au", "japantimes.co.jp", "stripes.com",
	"dw.com", "lemonde.fr", "haaretz.com", "timesofisrael.com",
}

// Domain extracts the lower-cased host without a leading www.
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Host)
	return strings.TrimPrefix(host, "www.")
}

// FilterURLs keeps URLs from recognized outlets, at most one per
// domain, preserving input order. extraDomains widens the allowlist.
func FilterURLs(urls []string, extraDomains []string, log *slog.Logger) []string {
	if log == nil {
		log = slog.Default()
	}
	allowed := append(append([]string(nil), newsDomains...), extraDomains...)

	var accepted []string
	seenDomains := make(map[string]bool)
	for _, u := range urls {
		domain := Domain(u)
		if domain == "" {
			continue
		}

		known := false
		for _, outlet := range allowed {
			if strings.Contains(domain, outlet) {
				known = true
				break
			}
		}
		if !known {
			log.Debug("filtered candidate, outlet not in allowlist", "domain", domain)
			continue
		}
		if seenDomains[domain] {
			log.Debug("skipped duplicate domain", "domain", domain)
			continue
		}

		seenDomains[domain] = true
		accepted = append(accepted, u)
	}
	return accepted
}

// ReadURLFile reads URLs from a file, one per line, skipping blanks
// and # comments, deduplicating exact repeats.
func ReadURLFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return urls, nil
}

// FileProvider satisfies Provider with a static URL list file,
// ignoring the query.
type FileProvider struct {
	Path string
}

// Search returns the file's URLs, capped at maxResults.
func (p FileProvider) Search(_ context.Context, _ string, maxResults int) ([]string, error) {
	urls, err := ReadURLFile(p.Path)
	if err != nil {
		return nil, err
	}
	if maxResults > 0 && len(urls) > maxResults {
		urls = urls[:maxResults]
	}
	return urls, nil
}
