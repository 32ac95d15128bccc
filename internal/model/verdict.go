package model

// Verdict is the three-level classification of how likely two articles
// describe the same real-world incident.
type Verdict string

const (
	VerdictLikelySameIncident Verdict = "likely_same_incident"
	VerdictPossiblyRelated    Verdict = "possibly_related"
	VerdictUnlikelyRelated    Verdict = "unlikely_related"
)

// String returns the human-readable form used in reports.
func (v Verdict) String() string {
	switch v {
	case VerdictLikelySameIncident:
		return "Likely Same Incident"
	case VerdictPossiblyRelated:
		return "Possibly Related"
	case VerdictUnlikelyRelated:
		return "Unlikely Related"
	default:
		return "Unknown"
	}
}

// DateWindow is the tri-state result of comparing two publish dates.
// Unknown means at least one date was missing or unparseable; it is
// never collapsed into DateWindowFalse, so consumers can tell "known
// different event" apart from "insufficient date evidence".
type DateWindow string

const (
	DateWindowTrue    DateWindow = "true"
	DateWindowFalse   DateWindow = "false"
	DateWindowUnknown DateWindow = "unknown"
)

// Matched reports whether both dates were known and within the window.
func (w DateWindow) Matched() bool {
	return w == DateWindowTrue
}

// IncidentVerdictRecord is the per-candidate output of incident
// correlation. Created fresh each run and never mutated afterwards.
type IncidentVerdictRecord struct {
	URL            string          `json:"url"`
	Title          string          `json:"title"`
	EntityScore    float64         `json:"entity_score"` // 0-100
	TitleScore     float64         `json:"title_score"`  // 0-100
	SameDateWindow DateWindow      `json:"same_date_window"`
	Verdict        Verdict         `json:"verdict"`
	Matches        []SentenceMatch `json:"matches"`
}
