package model

import "strings"

// minUsableText is the shortest article body the matching and scoring
// stages will look at. Anything shorter is treated as having no text.
const minUsableText = 20

// ArticleRecord is the normalized form of a single news article as
// produced by ingestion. Source fields are never mutated after
// extraction; scoring stages only derive new records from them.
type ArticleRecord struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Text        string   `json:"text"`
	PublishDate string   `json:"publish_date,omitempty"` // ISO date or raw string; empty when unknown
	Authors     []string `json:"authors,omitempty"`
	TopImage    string   `json:"top_image,omitempty"`
}

// HasUsableText reports whether the article body is long enough to
// run sentence matching or incident scoring against.
func (a ArticleRecord) HasUsableText() bool {
	return len(strings.TrimSpace(a.Text)) >= minUsableText
}
