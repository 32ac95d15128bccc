package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/echolens/echolens/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:       5 * time.Second,
		UserAgent:     "echolens-test",
		MaxBodyBytes:  1_000_000,
		RatePerSecond: 100,
		RateBurst:     10,
	}
}

func TestFetcher_FetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			fmt.Fprint(w, "User-agent: *\nAllow: /\n")
		case "/story":
			if got := r.Header.Get("User-Agent"); got != "echolens-test" {
				t.Errorf("Expected configured User-Agent, got %q", got)
			}
			fmt.Fprint(w, "<html><body><p>Article body</p></body></html>")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig())
	html, finalURL, err := f.Fetch(context.Background(), server.URL+"/story")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(html, "Article body") {
		t.Errorf("Expected page HTML, got %q", html)
	}
	if !strings.HasSuffix(finalURL, "/story") {
		t.Errorf("Unexpected final URL: %q", finalURL)
	}
}

func TestFetcher_RobotsDisallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
			return
		}
		fmt.Fprint(w, "should never be served")
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig())
	_, _, err := f.Fetch(context.Background(), server.URL+"/private/story")
	if !errors.Is(err, ErrRobotsDisallowed) {
		t.Errorf("Expected ErrRobotsDisallowed, got %v", err)
	}
}

func TestFetcher_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fmt.Fprint(w, "User-agent: *\nAllow: /\n")
			return
		}
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig())
	if _, _, err := f.Fetch(context.Background(), server.URL+"/story"); err == nil {
		t.Error("Expected an error for a 410 response")
	}
}

func TestFetcher_BodyCappedAtMaxBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fmt.Fprint(w, "User-agent: *\nAllow: /\n")
			return
		}
		fmt.Fprint(w, strings.Repeat("x", 5000))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 1000

	f := NewFetcher(cfg)
	html, _, err := f.Fetch(context.Background(), server.URL+"/big")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(html) != 1000 {
		t.Errorf("Expected body capped at 1000 bytes, got %d", len(html))
	}
}
