// Package scoring turns Likert answers into per-category talent totals and
// classifies each total into a qualitative band.
package scoring

import (
	"fmt"

	"github.com/abhisek/talentquiz/internal/talent"
)

// Answers maps a 0-based question index to the selected option value.
type Answers map[int]int

// Clone returns an independent copy of the answers.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Sum returns the sum of all answer values.
func (a Answers) Sum() int {
	total := 0
	for _, v := range a {
		total += v
	}
	return total
}

// ScoreTable maps a category to the sum of its answered option values.
type ScoreTable map[talent.Category]int

// Total returns the sum of every category total.
func (t ScoreTable) Total() int {
	total := 0
	for _, v := range t {
		total += v
	}
	return total
}

// Categories returns the categories present in the table in canonical order.
func (t ScoreTable) Categories() []talent.Category {
	var out []talent.Category
	for _, c := range talent.AllCategories() {
		if _, ok := t[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Aggregate sums answer values per category. Categories with no answered
// question are absent from the result. Indexes that do not refer to a
// question are skipped; callers that accept external input should run
// Validate first.
func Aggregate(answers Answers, questions []talent.Question) ScoreTable {
	scores := make(ScoreTable)
	for idx, value := range answers {
		if idx < 0 || idx >= len(questions) {
			continue
		}
		scores[questions[idx].Category] += value
	}
	return scores
}

// InvalidAnswerError reports a single answer that cannot be scored.
type InvalidAnswerError struct {
	Index  int
	Value  int
	Reason string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid answer for question %d (value %d): %s", e.Index, e.Value, e.Reason)
}

// Validate checks that every answer refers to an existing question and
// carries a value on the Likert scale. The lowest offending index is
// reported so the result is deterministic.
func Validate(answers Answers, questions []talent.Question) error {
	var bad *InvalidAnswerError
	for idx, value := range answers {
		var reason string
		switch {
		case idx < 0 || idx >= len(questions):
			reason = fmt.Sprintf("index out of range [0,%d)", len(questions))
		case value < talent.MinOption || value > talent.MaxOption:
			reason = fmt.Sprintf("value out of range [%d,%d]", talent.MinOption, talent.MaxOption)
		default:
			continue
		}
		if bad == nil || idx < bad.Index {
			bad = &InvalidAnswerError{Index: idx, Value: value, Reason: reason}
		}
	}
	if bad != nil {
		return bad
	}
	return nil
}

// Complete reports whether every question has an answer.
func Complete(answers Answers, questions []talent.Question) bool {
	for i := range questions {
		if _, ok := answers[i]; !ok {
			return false
		}
	}
	return true
}
