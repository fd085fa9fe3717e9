// Package session implements the quiz flow as a small state machine.
// Every transition takes a State by value and returns a new one; the
// answer map is copied so earlier states are never mutated.
package session

import (
	"errors"
	"time"

	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/talent"
)

// Phase represents where the respondent is in the quiz.
type Phase int

const (
	PhaseAnswering Phase = iota // Showing question Current
	PhaseSubmitted              // All answers in, scores computed
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAnswering:
		return "answering"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidOption = errors.New("session: option value out of range")
	ErrNotAnswering  = errors.New("session: quiz already submitted")
	ErrUnanswered    = errors.New("session: current question has no answer")
	ErrNotSubmitted  = errors.New("session: quiz not submitted yet")
	ErrInvalidIndex  = errors.New("session: question index not reachable")
)

// State is one snapshot of a quiz in progress.
type State struct {
	ID          string
	Variant     talent.Variant
	Questions   []talent.Question
	Current     int
	Answers     scoring.Answers
	Phase       Phase
	Scores      scoring.ScoreTable
	StartedAt   time.Time
	SubmittedAt time.Time
}

// New returns a fresh quiz on the first question of the variant's bank.
func New(id string, variant talent.Variant, now time.Time) State {
	return State{
		ID:        id,
		Variant:   variant,
		Questions: talent.Bank(variant),
		Answers:   scoring.Answers{},
		Phase:     PhaseAnswering,
		StartedAt: now,
	}
}

// Question returns the current question, or false once submitted or when
// the bank is empty.
func (s State) Question() (talent.Question, bool) {
	if s.Phase != PhaseAnswering || s.Current < 0 || s.Current >= len(s.Questions) {
		return talent.Question{}, false
	}
	return s.Questions[s.Current], true
}

// Selected returns the answer recorded for the current question.
func (s State) Selected() (int, bool) {
	v, ok := s.Answers[s.Current]
	return v, ok
}

// IsLast reports whether the current question is the final one.
func (s State) IsLast() bool {
	return s.Current == len(s.Questions)-1
}

// FirstUnanswered returns the lowest index without an answer, or
// len(Questions) when every question is answered.
func (s State) FirstUnanswered() int {
	for i := range s.Questions {
		if _, ok := s.Answers[i]; !ok {
			return i
		}
	}
	return len(s.Questions)
}

func (s State) withAnswers() State {
	s.Answers = s.Answers.Clone()
	return s
}
