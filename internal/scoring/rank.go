package scoring

import (
	"sort"

	"github.com/abhisek/talentquiz/internal/talent"
)

// Strongest returns up to n present categories with the highest totals.
// Ties keep canonical category order.
func Strongest(scores ScoreTable, n int) []talent.Category {
	return ranked(scores, n, func(a, b int) bool { return a > b })
}

// Weakest returns up to n present categories with the lowest totals.
// Ties keep canonical category order.
func Weakest(scores ScoreTable, n int) []talent.Category {
	return ranked(scores, n, func(a, b int) bool { return a < b })
}

func ranked(scores ScoreTable, n int, before func(a, b int) bool) []talent.Category {
	if n <= 0 {
		return nil
	}
	cats := scores.Categories()
	sort.SliceStable(cats, func(i, j int) bool {
		return before(scores[cats[i]], scores[cats[j]])
	})
	if len(cats) > n {
		cats = cats[:n]
	}
	return cats
}
