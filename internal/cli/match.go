package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/echolens/echolens/internal/model"
	"github.com/echolens/echolens/internal/pipeline"
	"github.com/echolens/echolens/internal/report"
	"github.com/spf13/cobra"
)

var (
	matchClaim     string
	matchThreshold int
	matchExact     bool
	matchOutJSON   string
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match <articles.json>",
	Short: "Match claim phrases against previously saved articles",
	Long: `Match runs claim phrase matching over an article set saved by a
previous run (analyze --save-articles), without any network access.

Example:
  echolens match articles.json --claim "warehouse fire, 3 injured"
  echolens match articles.json --claim "layoffs announced" --threshold 75 --json matches.json`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVar(&matchClaim, "claim", "", "claim phrases, comma or semicolon separated (required)")
	matchCmd.Flags().IntVar(&matchThreshold, "threshold", model.DefaultThreshold, "fuzzy match threshold 0-100")
	matchCmd.Flags().BoolVar(&matchExact, "exact", false, "verbatim substring matching only")
	matchCmd.Flags().StringVar(&matchOutJSON, "json", "", "output JSON path")
	_ = matchCmd.MarkFlagRequired("claim")
}

func runMatch(cmd *cobra.Command, args []string) error {
	articles, err := report.LoadArticles(args[0])
	if err != nil {
		return err
	}

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	claim := model.ClaimInput{
		Phrases:    matchClaim,
		Threshold:  matchThreshold,
		ExactMatch: matchExact,
	}
	results := p.MatchOnly(articles, claim)

	if matchOutJSON != "" {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal matches: %w", err)
		}
		if err := os.WriteFile(matchOutJSON, data, 0o644); err != nil {
			return fmt.Errorf("write matches: %w", err)
		}
	}

	total := 0
	for _, r := range results {
		if len(r.Matches) == 0 {
			continue
		}
		total += len(r.Matches)
		fmt.Printf("%s\n  %s\n", r.Title, r.URL)
		for _, m := range r.Matches {
			fmt.Printf("    [%.2f] %s\n", m.Score, m.Sentence)
		}
		fmt.Println()
	}
	fmt.Printf("%d matching sentences across %d articles\n", total, len(results))

	return nil
}
