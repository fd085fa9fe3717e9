// Package insight turns a classified score report into a short written
// talent report, using a language model when one is configured.
package insight

import (
	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/talent"
)

// Input is what a talent report is written from.
type Input struct {
	Respondent string
	Variant    talent.Variant
	Report     scoring.Report
}

// Source records who wrote a Report.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Report is a written talent report.
type Report struct {
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Growth      []string `json:"growth"`
	Suggestions []string `json:"suggestions"`
	Source      Source   `json:"source"`
}

// Config holds report generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for report generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.6,
	}
}
