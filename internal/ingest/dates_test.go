package ingest

import (
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)

func TestDateFromText_AbsoluteDates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"month day year", "Published January 10, 2026 by staff. More text follows here.", "2026-01-10"},
		{"day month year", "Dateline: 10 January 2026. The rest of the article.", "2026-01-10"},
		{"iso", "Updated 2026-01-10 at noon. Article body continues.", "2026-01-10"},
		{"abbreviated month", "Posted Jan 10, 2026 in Local.", "2026-01-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateFromText(tt.text, fixedNow); got != tt.want {
				t.Errorf("Expected %s, got %q", tt.want, got)
			}
		})
	}
}

func TestDateFromText_RelativeDates(t *testing.T) {
	if got := DateFromText("Published 3 days ago by the newsroom.", fixedNow); got != "2026-01-17" {
		t.Errorf("Expected 2026-01-17, got %q", got)
	}
	if got := DateFromText("Updated 5 hours ago.", fixedNow); got != "2026-01-20" {
		t.Errorf("Expected 2026-01-20, got %q", got)
	}
}

func TestDateFromText_NoDate(t *testing.T) {
	if got := DateFromText("Nothing resembling a date appears in this text.", fixedNow); got != "" {
		t.Errorf("Expected empty, got %q", got)
	}
	if got := DateFromText("", fixedNow); got != "" {
		t.Errorf("Expected empty for empty text, got %q", got)
	}
}

func TestDateFromText_OnlyScansHead(t *testing.T) {
	// A date buried past the scan window is ignored.
	text := ""
	for len(text) < 600 {
		text += "Filler sentence without any dates in it at all. "
	}
	text += "January 10, 2026."
	if got := DateFromText(text, fixedNow); got != "" {
		t.Errorf("Expected date past the scan window to be ignored, got %q", got)
	}
}

func TestDateFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/2026/01/10/warehouse-fire", "2026-01-10"},
		{"https://example.com/news/2026-01-10-fire", "2026-01-10"},
		{"https://example.com/news/warehouse-fire", ""},
	}
	for _, tt := range tests {
		if got := DateFromURL(tt.url); got != tt.want {
			t.Errorf("DateFromURL(%q): expected %q, got %q", tt.url, tt.want, got)
		}
	}
}
