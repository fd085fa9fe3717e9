package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/talentquiz/internal/talent"
)

// answerAll gives every question in qs the value pick(i, q).
func answerAll(qs []talent.Question, pick func(i int, q talent.Question) int) Answers {
	a := make(Answers, len(qs))
	for i, q := range qs {
		a[i] = pick(i, q)
	}
	return a
}

func TestAggregate_CategoryExample(t *testing.T) {
	qs := talent.Bank(talent.VariantSelfRating)
	answers := Answers{}
	vals := []int{2, 3, 4, 5}
	n := 0
	for i, q := range qs {
		if q.Category == talent.CategoryA {
			answers[i] = vals[n]
			n++
		}
	}
	require.Equal(t, 4, n)

	scores := Aggregate(answers, qs)
	assert.Equal(t, ScoreTable{talent.CategoryA: 14}, scores)

	band, ok := Classify(scores[talent.CategoryA], SchemeSelfRating)
	assert.True(t, ok)
	assert.Equal(t, BandSomewhatSkilled, band)
}

func TestAggregate_PreservesSum(t *testing.T) {
	qs := talent.Bank(talent.VariantStatement)
	answers := answerAll(qs, func(i int, _ talent.Question) int { return i%5 + 1 })

	scores := Aggregate(answers, qs)
	assert.Equal(t, answers.Sum(), scores.Total())
	assert.Len(t, scores, 10)
}

func TestAggregate_TotalsWithinBounds(t *testing.T) {
	qs := talent.Bank(talent.VariantSelfRating)

	low := Aggregate(answerAll(qs, func(int, talent.Question) int { return 1 }), qs)
	high := Aggregate(answerAll(qs, func(int, talent.Question) int { return 5 }), qs)
	for _, c := range talent.AllCategories() {
		assert.Equal(t, 4, low[c], "low total for %s", c)
		assert.Equal(t, 20, high[c], "high total for %s", c)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	qs := talent.Bank(talent.VariantSelfRating)
	answers := answerAll(qs, func(i int, _ talent.Question) int { return (i*7)%5 + 1 })
	assert.Equal(t, Aggregate(answers, qs), Aggregate(answers, qs))
}

func TestAggregate_PartialAnswersOmitCategories(t *testing.T) {
	qs := []talent.Question{
		{Text: "a", Category: talent.CategoryA},
		{Text: "b", Category: talent.CategoryB},
	}
	scores := Aggregate(Answers{0: 3}, qs)
	assert.Equal(t, ScoreTable{talent.CategoryA: 3}, scores)
	_, ok := scores[talent.CategoryB]
	assert.False(t, ok)
}

func TestAggregate_SkipsUnknownIndexes(t *testing.T) {
	qs := []talent.Question{{Text: "a", Category: talent.CategoryA}}
	scores := Aggregate(Answers{0: 2, 5: 4, -1: 3}, qs)
	assert.Equal(t, ScoreTable{talent.CategoryA: 2}, scores)
}

func TestAggregate_Empty(t *testing.T) {
	scores := Aggregate(nil, talent.Bank(talent.VariantSelfRating))
	assert.Empty(t, scores)
	assert.Empty(t, scores.Categories())
}

func TestValidate(t *testing.T) {
	qs := talent.Bank(talent.VariantSelfRating)

	tests := []struct {
		name      string
		answers   Answers
		wantIndex int
		wantErr   bool
	}{
		{"valid", Answers{0: 1, 39: 5}, 0, false},
		{"empty", Answers{}, 0, false},
		{"value too low", Answers{3: 0}, 3, true},
		{"value too high", Answers{2: 1, 7: 6}, 7, true},
		{"index out of range", Answers{40: 3}, 40, true},
		{"negative index", Answers{-1: 3, 5: 9}, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.answers, qs)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var iae *InvalidAnswerError
			require.True(t, errors.As(err, &iae), "want *InvalidAnswerError, got %v", err)
			assert.Equal(t, tt.wantIndex, iae.Index)
		})
	}
}

func TestComplete(t *testing.T) {
	qs := talent.Bank(talent.VariantStatement)
	all := answerAll(qs, func(int, talent.Question) int { return 3 })
	assert.True(t, Complete(all, qs))

	delete(all, 17)
	assert.False(t, Complete(all, qs))
}

func TestAnswers_Clone(t *testing.T) {
	a := Answers{0: 1}
	b := a.Clone()
	b[0] = 5
	b[1] = 2
	assert.Equal(t, Answers{0: 1}, a)
}

func TestScoreTable_CategoriesCanonicalOrder(t *testing.T) {
	scores := ScoreTable{
		talent.CategoryJ: 5,
		talent.CategoryA: 8,
		talent.CategoryE: 12,
	}
	assert.Equal(t,
		[]talent.Category{talent.CategoryA, talent.CategoryE, talent.CategoryJ},
		scores.Categories())
	assert.Equal(t, 25, scores.Total())
}
