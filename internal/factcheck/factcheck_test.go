package factcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/echolens/echolens/internal/model"
)

func TestNewClient_DisabledReturnsNil(t *testing.T) {
	if c := NewClient(model.FactCheckConfig{Enabled: false, APIKey: "k"}); c != nil {
		t.Error("Expected nil client when disabled")
	}
	if c := NewClient(model.FactCheckConfig{Enabled: true}); c != nil {
		t.Error("Expected nil client without an API key")
	}
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "warehouse fire" {
			t.Errorf("Expected query 'warehouse fire', got %q", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("Expected API key forwarded, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"claims": [{
				"text": "A warehouse fire injured three workers",
				"claimant": "Local outlet",
				"claimReview": [{
					"publisher": {"name": "FactCheck Example", "site": "factcheck.example"},
					"url": "https://factcheck.example/review/1",
					"textualRating": "True"
				}]
			}]
		}`))
	}))
	defer server.Close()

	c := &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		endpoint:   server.URL,
		apiKey:     "test-key",
		pageSize:   5,
	}

	reviews, err := c.Search(context.Background(), "warehouse fire")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("Expected 1 review, got %d", len(reviews))
	}
	r := reviews[0]
	if r.Publisher != "FactCheck Example" || r.Rating != "True" {
		t.Errorf("Unexpected review: %+v", r)
	}
	if r.ClaimText != "A warehouse fire injured three workers" {
		t.Errorf("Claim text lost: %q", r.ClaimText)
	}
}

func TestClient_SearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		endpoint:   server.URL,
		apiKey:     "test-key",
		pageSize:   5,
	}

	if _, err := c.Search(context.Background(), "anything"); err == nil {
		t.Error("Expected an error for a non-200 response")
	}
}
