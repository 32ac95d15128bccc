package ner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/echolens/echolens/internal/model"
)

// Extractor turns raw text into categorized named entities. The
// scoring core depends only on this signature; construction and
// disposal of the underlying capability belong to the caller.
type Extractor interface {
	Extract(ctx context.Context, text string) (EntitySet, error)
}

// New builds the extractor selected by configuration. The rule-based
// extractor is the default and needs no external service.
func New(cfg model.NERConfig) (Extractor, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "rules":
		return NewRuleExtractor(), nil
	case "openai":
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		return NewOpenAIExtractor(cfg)
	default:
		return nil, fmt.Errorf("unknown ner provider: %q", cfg.Provider)
	}
}

// Safe wraps an Extractor so that any failure, including a panic in
// the underlying capability, degrades to an empty entity set instead
// of aborting the batch.
type Safe struct {
	Inner Extractor
	Log   *slog.Logger
}

// Extract never returns an error and never panics.
func (s Safe) Extract(ctx context.Context, text string) (set EntitySet, err error) {
	defer func() {
		if r := recover(); r != nil {
			if s.Log != nil {
				s.Log.Warn("entity extractor panicked, degrading to empty set", "panic", r)
			}
			set = NewEntitySet()
			err = nil
		}
	}()

	set, inner := s.Inner.Extract(ctx, text)
	if inner != nil {
		if s.Log != nil {
			s.Log.Warn("entity extraction failed, degrading to empty set", "err", inner)
		}
		return NewEntitySet(), nil
	}
	if set == nil {
		set = NewEntitySet()
	}
	return set, nil
}
