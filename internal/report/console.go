package report

import (
	"fmt"
	"io"

	"github.com/echolens/echolens/internal/model"
)

// RenderText writes a compact console summary of the report.
func RenderText(w io.Writer, rep *Report) error {
	fmt.Fprintf(w, "Original: %s\n", rep.Original.Title)
	fmt.Fprintf(w, "  %s\n", rep.Original.URL)
	if rep.Original.PublishDate != "" {
		fmt.Fprintf(w, "  published %s\n", rep.Original.PublishDate)
	}
	fmt.Fprintf(w, "Claim: %q (threshold %d)\n\n", rep.Claim.Phrases, rep.Claim.EffectiveThreshold())

	if len(rep.Verdicts) == 0 {
		fmt.Fprintln(w, "No related coverage analyzed.")
		return nil
	}

	for _, v := range rep.Verdicts {
		fmt.Fprintf(w, "%-22s %s\n", v.Verdict.String(), v.Title)
		fmt.Fprintf(w, "  %s\n", v.URL)
		fmt.Fprintf(w, "  entity %.2f  title %.2f  date window %s\n",
			v.EntityScore, v.TitleScore, v.SameDateWindow)
		for _, m := range v.Matches {
			fmt.Fprintf(w, "    [%.2f] %s\n", m.Score, m.Sentence)
		}
		fmt.Fprintln(w)
	}

	if len(rep.FactChecks) > 0 {
		fmt.Fprintln(w, "Published fact checks:")
		for _, fc := range rep.FactChecks {
			fmt.Fprintf(w, "  %s: %s (%s)\n", fc.Publisher, fc.Rating, fc.URL)
		}
	}
	return nil
}

// RenderDiffText writes the fact-pair diff as two annotated columns.
func RenderDiffText(w io.Writer, in model.FactPairInput, res model.FactPairDiffResult) error {
	fmt.Fprintf(w, "Numeric fact comparison (max delta %d)\n\n", in.EffectiveMaxDelta())
	writeSide(w, "Article A", res.MatchedA, res.UnmatchedA)
	fmt.Fprintln(w)
	writeSide(w, "Article B", res.MatchedB, res.UnmatchedB)
	return nil
}

func writeSide(w io.Writer, label string, matched, unmatched []model.FactPair) {
	fmt.Fprintf(w, "%s:\n", label)
	if len(matched) == 0 && len(unmatched) == 0 {
		fmt.Fprintln(w, "  no numeric facts found")
		return
	}
	for _, p := range matched {
		fmt.Fprintf(w, "  agree    %s %s  (%s)\n", p.Number, p.KeywordStem, p.Sentence)
	}
	for _, p := range unmatched {
		fmt.Fprintf(w, "  conflict %s %s  (%s)\n", p.Number, p.KeywordStem, p.Sentence)
	}
}
