package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/echolens/echolens/internal/model"
	"github.com/echolens/echolens/internal/pipeline"
	"github.com/echolens/echolens/internal/report"
	"github.com/echolens/echolens/internal/search"
	"github.com/spf13/cobra"
)

var (
	claimPhrases string
	threshold    int
	exactMatch   bool
	urlsFile     string
	extraURLs    []string
	dateWindow   int
	nerProvider  string
	nerModel     string
	outJSON      string
	outHTML      string
	saveArticles string
	timeout      time.Duration
	userAgent    string
	noCache      bool
	insecureTLS  bool
	factChecks   bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Correlate an article with related coverage and verify a claim",
	Long: `Analyze ingests the original article and a set of related URLs,
matches the claim phrases against every related article, scores each
pairing on entity overlap, title similarity and date proximity, and
classifies the incident verdicts.

Related URLs come from a file (one per line, # comments allowed) or
from repeated --url flags; only recognized news outlets are kept, one
article per domain.

Example:
  echolens analyze https://cnn.com/2026/01/10/us/warehouse-fire --claim "warehouse fire, 3 injured" --urls related.txt
  echolens analyze https://example-news.com/story --claim "protest downtown" --url https://reuters.com/a --url https://bbc.com/b --html report.html`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Claim flags
	analyzeCmd.Flags().StringVar(&claimPhrases, "claim", "", "claim phrases, comma or semicolon separated (required)")
	analyzeCmd.Flags().IntVar(&threshold, "threshold", model.DefaultThreshold, "fuzzy match threshold 0-100")
	analyzeCmd.Flags().BoolVar(&exactMatch, "exact", false, "verbatim substring matching only")
	_ = analyzeCmd.MarkFlagRequired("claim")

	// Related coverage flags
	analyzeCmd.Flags().StringVar(&urlsFile, "urls", "", "file with related article URLs, one per line")
	analyzeCmd.Flags().StringArrayVar(&extraURLs, "url", nil, "related article URL (repeatable)")
	analyzeCmd.Flags().IntVar(&dateWindow, "date-window", 14, "publish-date proximity window in days")

	// Entity extraction flags
	analyzeCmd.Flags().StringVar(&nerProvider, "ner", "rules", "entity extractor (rules, openai)")
	analyzeCmd.Flags().StringVar(&nerModel, "ner-model", "gpt-4o-mini", "model for the openai extractor")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path")
	analyzeCmd.Flags().StringVar(&outHTML, "html", "", "output HTML report path")
	analyzeCmd.Flags().StringVar(&saveArticles, "save-articles", "", "save extracted articles to a JSON file")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 3*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	analyzeCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")

	// Fact check flags
	analyzeCmd.Flags().BoolVar(&factChecks, "fact-checks", false, "look the claim up in the Fact Check Tools API (needs FACTCHECK_API_KEY)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	originalURL := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	related := append([]string(nil), extraURLs...)
	if urlsFile != "" {
		fromFile, err := search.ReadURLFile(urlsFile)
		if err != nil {
			return fmt.Errorf("read urls: %w", err)
		}
		related = append(related, fromFile...)
	}
	if len(related) == 0 {
		return fmt.Errorf("no related URLs given; use --urls or --url")
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.InsecureTLS = insecureTLS
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	cfg.Cache.Enabled = !noCache
	cfg.Match.Threshold = threshold
	cfg.Match.ExactMatch = exactMatch
	cfg.Match.DateWindowDays = dateWindow
	cfg.NER.Provider = nerProvider
	cfg.NER.Model = nerModel
	cfg.Output.Verbose = verbose

	if factChecks {
		cfg.FactCheck.Enabled = true
		cfg.FactCheck.APIKey = os.Getenv("FACTCHECK_API_KEY")
		if cfg.FactCheck.APIKey == "" {
			return fmt.Errorf("FACTCHECK_API_KEY environment variable not set")
		}
	}

	claim := model.ClaimInput{
		Phrases:    claimPhrases,
		Threshold:  threshold,
		ExactMatch: exactMatch,
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	rep, err := p.Analyze(ctx, originalURL, related, claim)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if outJSON != "" {
		if err := report.Save(outJSON, rep); err != nil {
			return fmt.Errorf("write JSON report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "JSON report written to %s\n", outJSON)
	}
	if outHTML != "" {
		f, err := os.Create(outHTML)
		if err != nil {
			return fmt.Errorf("create HTML report: %w", err)
		}
		renderErr := report.RenderHTML(f, rep)
		if closeErr := f.Close(); renderErr == nil {
			renderErr = closeErr
		}
		if renderErr != nil {
			return fmt.Errorf("write HTML report: %w", renderErr)
		}
		fmt.Fprintf(os.Stderr, "HTML report written to %s\n", outHTML)
	}
	if saveArticles != "" {
		articles := append([]model.ArticleRecord{rep.Original}, rep.Candidates...)
		if err := report.SaveArticles(saveArticles, articles); err != nil {
			return fmt.Errorf("save articles: %w", err)
		}
	}

	return report.RenderText(os.Stdout, rep)
}
