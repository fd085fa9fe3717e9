package session

import (
	"time"

	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/talent"
)

// Summary holds the data displayed on result pages.
type Summary struct {
	ID          string
	Variant     talent.Variant
	Scores      scoring.ScoreTable
	Report      scoring.Report
	Duration    time.Duration
	SubmittedAt time.Time
}

// BuildSummary creates a Summary from a submitted state.
func BuildSummary(s State, scheme scoring.Scheme) (*Summary, error) {
	if s.Phase != PhaseSubmitted {
		return nil, ErrNotSubmitted
	}
	return &Summary{
		ID:          s.ID,
		Variant:     s.Variant,
		Scores:      s.Scores,
		Report:      scoring.BuildReport(s.Scores, scheme),
		Duration:    s.SubmittedAt.Sub(s.StartedAt),
		SubmittedAt: s.SubmittedAt,
	}, nil
}
