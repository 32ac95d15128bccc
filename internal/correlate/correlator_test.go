package correlate

import (
	"context"
	"errors"
	"testing"

	"github.com/echolens/echolens/internal/model"
	"github.com/echolens/echolens/internal/ner"
)

// stubExtractor returns a canned entity set per text.
type stubExtractor struct {
	sets map[string]ner.EntitySet
}

func (s stubExtractor) Extract(_ context.Context, text string) (ner.EntitySet, error) {
	if set, ok := s.sets[text]; ok {
		return set, nil
	}
	return ner.NewEntitySet(), nil
}

type failingExtractor struct{}

func (failingExtractor) Extract(context.Context, string) (ner.EntitySet, error) {
	return nil, errors.New("model unavailable")
}

func entitySet(persons, orgs, places []string) ner.EntitySet {
	set := ner.NewEntitySet()
	for _, p := range persons {
		set.Add(ner.CategoryPerson, p)
	}
	for _, o := range orgs {
		set.Add(ner.CategoryOrg, o)
	}
	for _, g := range places {
		set.Add(ner.CategoryGPE, g)
	}
	return set
}

func TestCorrelate_SelfCandidate(t *testing.T) {
	article := model.ArticleRecord{
		URL:         "https://cnn.com/2026/01/10/fire",
		Title:       "Warehouse fire injures three",
		Text:        "A warehouse fire in Chicago injured three workers on Friday.",
		PublishDate: "2026-01-10",
	}
	stub := stubExtractor{sets: map[string]ner.EntitySet{
		article.Text: entitySet([]string{"John Doe"}, []string{"Chicago Fire Department"}, []string{"Chicago"}),
	}}

	c := New(stub, 14, 1, nil)
	records := c.Correlate(context.Background(), article, []model.ArticleRecord{article}, nil)

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.EntityScore != 100 {
		t.Errorf("Expected entity score 100 against itself, got %v", r.EntityScore)
	}
	if r.TitleScore != 100 {
		t.Errorf("Expected title score 100 against itself, got %v", r.TitleScore)
	}
	if r.SameDateWindow != model.DateWindowTrue {
		t.Errorf("Expected date window true, got %s", r.SameDateWindow)
	}
	if r.Verdict != model.VerdictLikelySameIncident {
		t.Errorf("Expected likely_same_incident, got %s", r.Verdict)
	}
}

func TestCorrelate_SkipsEmptyCandidates(t *testing.T) {
	original := model.ArticleRecord{
		URL: "https://a.example.com", Title: "Fire", Text: "A fire broke out.", PublishDate: "2026-01-10",
	}
	candidates := []model.ArticleRecord{
		{URL: "https://b.example.com", Title: "Empty", Text: "   "},
		{URL: "https://c.example.com", Title: "Fire elsewhere", Text: "Another fire was reported.", PublishDate: "2026-01-11"},
	}

	c := New(stubExtractor{}, 14, 1, nil)
	records := c.Correlate(context.Background(), original, candidates, nil)

	if len(records) != 1 {
		t.Fatalf("Expected empty-text candidate to be skipped, got %d records", len(records))
	}
	if records[0].URL != "https://c.example.com" {
		t.Errorf("Wrong candidate kept: %s", records[0].URL)
	}
}

func TestCorrelate_AttachesMatchesByNormalizedURL(t *testing.T) {
	original := model.ArticleRecord{
		URL: "https://a.example.com", Title: "Fire", Text: "A fire broke out.", PublishDate: "2026-01-10",
	}
	candidate := model.ArticleRecord{
		URL: "https://www.b.example.com/story?utm_source=feed", Title: "Fire", Text: "A fire broke out nearby.", PublishDate: "2026-01-10",
	}
	matches := []model.ArticleMatchResult{{
		// Same page, different URL spelling.
		URL:     "http://b.example.com/story",
		Matches: []model.SentenceMatch{{Sentence: "A fire broke out nearby.", Score: 95.5, Phrase: "fire"}},
	}}

	c := New(stubExtractor{}, 14, 1, nil)
	records := c.Correlate(context.Background(), original, []model.ArticleRecord{candidate}, matches)

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if len(records[0].Matches) != 1 {
		t.Fatalf("Expected sentence matches attached across URL variants, got %d", len(records[0].Matches))
	}
	if records[0].Matches[0].Score != 95.5 {
		t.Errorf("Unexpected attached match score: %v", records[0].Matches[0].Score)
	}
}

func TestCorrelate_ExtractorFailureDegrades(t *testing.T) {
	original := model.ArticleRecord{
		URL: "https://a.example.com", Title: "Warehouse fire", Text: "A warehouse fire injured three.", PublishDate: "2026-01-10",
	}
	candidate := model.ArticleRecord{
		URL: "https://b.example.com", Title: "Warehouse fire", Text: "A warehouse fire injured three.", PublishDate: "2026-01-11",
	}

	c := New(failingExtractor{}, 14, 1, nil)
	records := c.Correlate(context.Background(), original, []model.ArticleRecord{candidate}, nil)

	if len(records) != 1 {
		t.Fatalf("Extractor failure must not abort the batch, got %d records", len(records))
	}
	r := records[0]
	if r.EntityScore != 0 {
		t.Errorf("Expected entity score 0 when extraction fails, got %v", r.EntityScore)
	}
	// Title and date signals still work without entities.
	if r.TitleScore != 100 {
		t.Errorf("Expected title score 100, got %v", r.TitleScore)
	}
	if r.SameDateWindow != model.DateWindowTrue {
		t.Errorf("Expected date window true, got %s", r.SameDateWindow)
	}
}

func TestCorrelate_ConcurrentKeepsOrder(t *testing.T) {
	original := model.ArticleRecord{
		URL: "https://orig.example.com", Title: "Fire", Text: "A fire broke out downtown.", PublishDate: "2026-01-10",
	}
	var candidates []model.ArticleRecord
	urls := []string{
		"https://one.example.com", "https://two.example.com", "https://three.example.com",
		"https://four.example.com", "https://five.example.com", "https://six.example.com",
	}
	for _, u := range urls {
		candidates = append(candidates, model.ArticleRecord{
			URL: u, Title: "Fire coverage", Text: "Coverage of the downtown fire.", PublishDate: "2026-01-11",
		})
	}

	c := New(stubExtractor{}, 14, 4, nil)
	records := c.Correlate(context.Background(), original, candidates, nil)

	if len(records) != len(urls) {
		t.Fatalf("Expected %d records, got %d", len(urls), len(records))
	}
	for i, r := range records {
		if r.URL != urls[i] {
			t.Errorf("Record %d out of order: expected %s, got %s", i, urls[i], r.URL)
		}
	}
}

func TestCorrelate_PartialEntityOverlap(t *testing.T) {
	original := model.ArticleRecord{
		URL: "https://a.example.com", Title: "Fire", Text: "original", PublishDate: "2026-01-10",
	}
	candidate := model.ArticleRecord{
		URL: "https://b.example.com", Title: "Blaze", Text: "candidate", PublishDate: "2026-01-10",
	}
	stub := stubExtractor{sets: map[string]ner.EntitySet{
		// 2 shared out of 4 distinct forms: 50.0
		"original":  entitySet([]string{"john doe", "jane roe"}, nil, []string{"chicago"}),
		"candidate": entitySet([]string{"john doe"}, nil, []string{"chicago", "springfield"}),
	}}

	c := New(stub, 14, 1, nil)
	records := c.Correlate(context.Background(), original, []model.ArticleRecord{candidate}, nil)

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].EntityScore != 50 {
		t.Errorf("Expected entity overlap 50, got %v", records[0].EntityScore)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.example.com/story/", "example.com/story"},
		{"http://example.com/story?utm=1#top", "example.com/story"},
		{"https://Example.COM/Story", "example.com/Story"},
		{"example.com/story", "example.com/story"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
