package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/echolens/echolens/internal/factdiff"
	"github.com/echolens/echolens/internal/model"
	"github.com/echolens/echolens/internal/pipeline"
	"github.com/echolens/echolens/internal/report"
	"github.com/spf13/cobra"
)

var (
	maxDelta    int
	diffTimeout time.Duration
)

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "Compare numeric facts between two articles",
	Long: `Diff extracts number-keyword pairs ("5 injured", "40%") from two
articles and reports which quantitative statements agree within the
allowed delta and which conflict.

Each argument is a URL to fetch or a path to a local text file.

Example:
  echolens diff https://cnn.com/story https://bbc.com/story
  echolens diff reports/a.txt reports/b.txt --max-delta 2`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().IntVar(&maxDelta, "max-delta", model.DefaultMaxDelta, "allowed numeric difference for a match, 1-20")
	diffCmd.Flags().DurationVar(&diffTimeout, "timeout", time.Minute, "fetch timeout")
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), diffTimeout)
	defer cancel()

	textA, err := loadSide(ctx, args[0])
	if err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}
	textB, err := loadSide(ctx, args[1])
	if err != nil {
		return fmt.Errorf("load %s: %w", args[1], err)
	}

	in := model.FactPairInput{TextA: textA, TextB: textB, MaxDelta: maxDelta}
	result := factdiff.Diff(in)

	return report.RenderDiffText(os.Stdout, in, result)
}

// loadSide resolves one diff argument to article text. URLs go
// through the full extraction path so the diff sees the same body the
// analyzer would.
func loadSide(ctx context.Context, arg string) (string, error) {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		cfg := model.DefaultConfig()
		cfg.HTTP.Timeout = diffTimeout
		cfg.Output.Verbose = verbose

		p, err := pipeline.NewPipeline(cfg)
		if err != nil {
			return "", err
		}
		rec, err := p.Extract(ctx, arg)
		if err != nil {
			return "", err
		}
		return rec.Text, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
