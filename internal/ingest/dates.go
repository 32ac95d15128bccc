package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// dateScanWindow bounds the fallback search to the article head,
// where bylines and datelines live.
const dateScanWindow = 500

const monthAlternatives = `Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|` +
	`Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?`

var absoluteDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:` + monthAlternatives + `)\s+\d{1,2},?\s+\d{4}`),
	regexp.MustCompile(`\d{1,2}\s+(?:` + monthAlternatives + `)\s+\d{4}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
}

var relativeDatePattern = regexp.MustCompile(`(?i)(\d+)\s+(day|hour|minute)s?\s+ago`)

var urlDatePattern = regexp.MustCompile(`(\d{4})[/-](\d{2})[/-](\d{2})`)

// DateFromText scans the head of the article body for an absolute
// date, then for a relative one ("2 days ago"). Returns an ISO date
// or "".
func DateFromText(text string, now time.Time) string {
	if text == "" {
		return ""
	}
	head := text
	if len(head) > dateScanWindow {
		head = head[:dateScanWindow]
	}

	for _, pattern := range absoluteDatePatterns {
		if found := pattern.FindString(head); found != "" {
			if parsed, err := dateparse.ParseAny(found); err == nil {
				return parsed.Format("2006-01-02")
			}
		}
	}

	if m := relativeDatePattern.FindStringSubmatch(head); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return ""
		}
		switch strings.ToLower(m[2]) {
		case "day":
			return now.AddDate(0, 0, -n).Format("2006-01-02")
		case "hour":
			return now.Add(-time.Duration(n) * time.Hour).Format("2006-01-02")
		case "minute":
			return now.Add(-time.Duration(n) * time.Minute).Format("2006-01-02")
		}
	}

	return ""
}

// DateFromURL pulls a yyyy/mm/dd or yyyy-mm-dd segment out of the
// URL path. Returns an ISO date or "".
func DateFromURL(rawURL string) string {
	m := urlDatePattern.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	candidate := fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
	parsed, err := dateparse.ParseAny(candidate)
	if err != nil {
		return ""
	}
	return parsed.Format("2006-01-02")
}
