package session

import (
	"time"

	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/talent"
)

// Select records value as the answer to the current question.
func Select(s State, value int) (State, error) {
	if s.Phase != PhaseAnswering {
		return s, ErrNotAnswering
	}
	if value < talent.MinOption || value > talent.MaxOption {
		return s, ErrInvalidOption
	}
	next := s.withAnswers()
	next.Answers[s.Current] = value
	return next, nil
}

// Advance moves past the current question, which must be answered. On the
// last question it submits the quiz and computes the scores.
func Advance(s State, now time.Time) (State, error) {
	if s.Phase != PhaseAnswering {
		return s, ErrNotAnswering
	}
	if _, ok := s.Answers[s.Current]; !ok {
		return s, ErrUnanswered
	}
	next := s.withAnswers()
	if !s.IsLast() {
		next.Current++
		return next, nil
	}
	// Every earlier question is answered: neither Advance nor Jump can pass
	// an unanswered one.
	next.Phase = PhaseSubmitted
	next.Scores = scoring.Aggregate(next.Answers, next.Questions)
	next.SubmittedAt = now
	return next, nil
}

// SelectAndAdvance records value and moves to the next question. On the last
// question it only records, leaving submission to an explicit Advance.
func SelectAndAdvance(s State, value int, now time.Time) (State, error) {
	next, err := Select(s, value)
	if err != nil {
		return s, err
	}
	if next.IsLast() {
		return next, nil
	}
	return Advance(next, now)
}

// Previous steps back one question, stopping at the first. It is a no-op
// after submission.
func Previous(s State) State {
	if s.Phase != PhaseAnswering || s.Current == 0 {
		return s
	}
	next := s.withAnswers()
	next.Current--
	return next
}

// Jump moves to index, which must be answered already or be the first
// unanswered question.
func Jump(s State, index int) (State, error) {
	if s.Phase != PhaseAnswering {
		return s, ErrNotAnswering
	}
	if index < 0 || index >= len(s.Questions) {
		return s, ErrInvalidIndex
	}
	if _, ok := s.Answers[index]; !ok && index != s.FirstUnanswered() {
		return s, ErrInvalidIndex
	}
	next := s.withAnswers()
	next.Current = index
	return next, nil
}

// Restart discards all answers and begins again on the first question of the
// same variant.
func Restart(s State, id string, now time.Time) State {
	return New(id, s.Variant, now)
}

// Progress returns the number of answered questions and the total.
func Progress(s State) (answered, total int) {
	for i := range s.Questions {
		if _, ok := s.Answers[i]; ok {
			answered++
		}
	}
	return answered, len(s.Questions)
}

// Percent returns answered/total in [0,1].
func Percent(s State) float64 {
	answered, total := Progress(s)
	if total == 0 {
		return 0
	}
	return float64(answered) / float64(total)
}
