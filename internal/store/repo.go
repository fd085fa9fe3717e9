package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/session"
	"github.com/abhisek/talentquiz/internal/talent"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// QueryOpts configures result queries with filtering and pagination.
type QueryOpts struct {
	Limit   int            // max results (0 = unlimited)
	Offset  int            // rows to skip
	Variant talent.Variant // only this variant ("" = all)
	From    time.Time      // submitted_at >= From
	To      time.Time      // submitted_at <= To
}

// Result is one submitted quiz.
type Result struct {
	ID          string
	Sequence    int64
	Respondent  string
	Variant     talent.Variant
	Answers     scoring.Answers
	Scores      scoring.ScoreTable
	StartedAt   time.Time
	SubmittedAt time.Time
}

// NewResult converts a submitted session into a history record. The record
// gets its own id so a restarted session can be recorded again.
func NewResult(st session.State, respondent string) *Result {
	return &Result{
		ID:          uuid.NewString(),
		Respondent:  respondent,
		Variant:     st.Variant,
		Answers:     st.Answers.Clone(),
		Scores:      st.Scores,
		StartedAt:   st.StartedAt,
		SubmittedAt: st.SubmittedAt,
	}
}

// ResultRepo manages submitted quiz results.
type ResultRepo interface {
	// Save stores a result. Saving an existing ID fails.
	Save(ctx context.Context, r *Result) error

	// Get returns the result with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Result, error)

	// List returns results newest first.
	List(ctx context.Context, opts QueryOpts) ([]Result, error)

	// Count returns the number of stored results.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every stored result and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	CostUSD      float64 // 0 when the model has no known pricing
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentLLMRequests returns up to limit events, newest first.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error)
}
