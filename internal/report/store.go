// Package report renders and persists analysis output: the JSON
// store used between runs, the console summary and the HTML report.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/echolens/echolens/internal/factcheck"
	"github.com/echolens/echolens/internal/model"
)

// Report is the full output of one analysis run.
type Report struct {
	GeneratedAt time.Time                     `json:"generated_at"`
	Original    model.ArticleRecord           `json:"original"`
	Claim       model.ClaimInput              `json:"claim"`
	Candidates  []model.ArticleRecord         `json:"candidates,omitempty"`
	Verdicts    []model.IncidentVerdictRecord `json:"verdicts"`
	FactChecks  []factcheck.Review            `json:"fact_checks,omitempty"`
}

// Save writes the report as indented JSON, creating parent
// directories as needed.
func Save(path string, rep *Report) error {
	return writeJSON(path, rep)
}

// Load reads a previously saved report.
func Load(path string) (*Report, error) {
	var rep Report
	if err := readJSON(path, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// SaveArticles persists extracted articles so later runs can skip
// ingestion.
func SaveArticles(path string, articles []model.ArticleRecord) error {
	return writeJSON(path, articles)
}

// LoadArticles reads a saved article set.
func LoadArticles(path string) ([]model.ArticleRecord, error) {
	var articles []model.ArticleRecord
	if err := readJSON(path, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
