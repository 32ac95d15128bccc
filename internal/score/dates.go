package score

import (
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/echolens/echolens/internal/model"
)

// DefaultDateWindowDays is the publish-date proximity window.
const DefaultDateWindowDays = 14

// DateProximity is the outcome of comparing two publish dates.
// DeltaDays is meaningful only when Window is not unknown.
type DateProximity struct {
	Window    model.DateWindow
	DeltaDays int
}

// EvaluateDateProximity parses both dates permissively and reports
// whether they fall within windowDays of each other. A missing or
// unparseable date yields unknown, never false: absence of a date is
// not evidence against relatedness. The function never panics.
func EvaluateDateProximity(a, b string, windowDays int) DateProximity {
	if windowDays <= 0 {
		windowDays = DefaultDateWindowDays
	}

	ta, okA := parseDate(a)
	tb, okB := parseDate(b)
	if !okA || !okB {
		return DateProximity{Window: model.DateWindowUnknown}
	}

	delta := int(math.Abs(ta.Sub(tb).Hours()) / 24)
	window := model.DateWindowFalse
	if delta <= windowDays {
		window = model.DateWindowTrue
	}
	return DateProximity{Window: window, DeltaDays: delta}
}

// parseDate accepts ISO dates and loosely-formatted natural text.
// Parse failures, including parser panics on malformed input, are
// mapped to not-ok.
func parseDate(s string) (t time.Time, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	parsed, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
