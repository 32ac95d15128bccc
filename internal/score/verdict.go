package score

import "github.com/echolens/echolens/internal/model"

// Verdict thresholds. Both scores are on the 0-100 scale.
const (
	likelyEntityFloor   = 60
	likelyTitleFloor    = 40
	possiblyEntityFloor = 40
	possiblyTitleFloor  = 60
)

// ClassifyVerdict fuses the entity, title and date signals into the
// three-tier verdict. It is a pure function of its inputs:
//
//	entity>=60  title>=40  window=true  -> likely_same_incident
//	entity>=40  any        window=true  -> possibly_related
//	any         title>=60  window=true  -> possibly_related
//	otherwise                           -> unlikely_related
//
// An unknown date window counts as non-matching here, but callers
// report the tri-state value verbatim so consumers can still tell
// "known different event" from "insufficient date evidence".
func ClassifyVerdict(entityScore, titleScore float64, window model.DateWindow) model.Verdict {
	if !window.Matched() {
		return model.VerdictUnlikelyRelated
	}
	if entityScore >= likelyEntityFloor && titleScore >= likelyTitleFloor {
		return model.VerdictLikelySameIncident
	}
	if entityScore >= possiblyEntityFloor || titleScore >= possiblyTitleFloor {
		return model.VerdictPossiblyRelated
	}
	return model.VerdictUnlikelyRelated
}
