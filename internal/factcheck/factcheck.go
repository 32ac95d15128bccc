// Package factcheck looks claims up in the Google Fact Check Tools
// API. Results are advisory context for reports only; they never feed
// into correlation scores or verdicts.
package factcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/echolens/echolens/internal/model"
)

const defaultEndpoint = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

// Review is one published fact-check review for a claim.
type Review struct {
	ClaimText string `json:"claim_text"`
	Claimant  string `json:"claimant,omitempty"`
	Publisher string `json:"publisher"`
	Rating    string `json:"rating"`
	URL       string `json:"url"`
}

// Client queries the Fact Check Tools claims:search endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	pageSize   int
}

// NewClient returns a configured client, or nil when the lookup is
// disabled or has no API key.
func NewClient(cfg model.FactCheckConfig) *Client {
	if !cfg.Enabled || cfg.APIKey == "" {
		return nil
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 5
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		endpoint:   defaultEndpoint,
		apiKey:     cfg.APIKey,
		pageSize:   pageSize,
	}
}

// Search returns published reviews matching the query text.
func (c *Client) Search(ctx context.Context, query string) ([]Review, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("key", c.apiKey)
	params.Set("pageSize", fmt.Sprintf("%d", c.pageSize))
	params.Set("languageCode", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fact check request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fact check API status %d: %s", resp.StatusCode, string(body))
	}

	var payload claimsSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var reviews []Review
	for _, claim := range payload.Claims {
		for _, cr := range claim.ClaimReview {
			reviews = append(reviews, Review{
				ClaimText: claim.Text,
				Claimant:  claim.Claimant,
				Publisher: cr.Publisher.Name,
				Rating:    cr.TextualRating,
				URL:       cr.URL,
			})
		}
	}
	return reviews, nil
}

// Wire shapes of the claims:search response.
type claimsSearchResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		Claimant    string `json:"claimant"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
				Site string `json:"site"`
			} `json:"publisher"`
			URL           string `json:"url"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}
