package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/talentquiz/internal/llm"
)

// ErrNoProvider is returned by Generate when no language model is configured.
var ErrNoProvider = errors.New("no LLM provider configured")

// Service writes talent reports.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a report service. provider may be nil, in which case
// only fallback reports are produced.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// HasProvider reports whether model-written reports are available.
func (s *Service) HasProvider() bool {
	return s != nil && s.provider != nil
}

type reportOutput struct {
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Growth      []string `json:"growth"`
	Suggestions []string `json:"suggestions"`
}

// Generate asks the model for a report.
func (s *Service) Generate(ctx context.Context, in Input) (*Report, error) {
	if !s.HasProvider() {
		return nil, ErrNoProvider
	}
	if len(in.Report.Rows) == 0 {
		return nil, errors.New("insight: empty score report")
	}
	ctx = llm.WithPurpose(ctx, "insight")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(in)),
		Schema:      ReportSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("talent report generation: %w", err)
	}

	var out reportOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse talent report: %w", err)
	}

	return &Report{
		Summary:     out.Summary,
		Strengths:   out.Strengths,
		Growth:      out.Growth,
		Suggestions: out.Suggestions,
		Source:      SourceModel,
	}, nil
}

// Describe returns a model-written report when possible and the fallback
// report otherwise. The error, if any, is the reason the model was not
// used; the returned report is never nil.
func (s *Service) Describe(ctx context.Context, in Input) (*Report, error) {
	r, err := s.Generate(ctx, in)
	if err != nil {
		if errors.Is(err, ErrNoProvider) {
			err = nil
		}
		return Fallback(in), err
	}
	return r, nil
}
