package talent

import (
	"fmt"
	"strings"
)

// Variant selects which question bank a quiz uses.
type Variant string

const (
	// VariantSelfRating is the one-question-at-a-time bank phrased as
	// self-rating questions ("我擅长...？").
	VariantSelfRating Variant = "self-rating"

	// VariantStatement is the single-form bank phrased as statements.
	VariantStatement Variant = "statement"
)

// DefaultVariant is used when no variant is requested.
const DefaultVariant = VariantSelfRating

// AllVariants returns the known variants in display order.
func AllVariants() []Variant {
	return []Variant{VariantSelfRating, VariantStatement}
}

// DisplayName returns a short human-readable label for the variant.
func (v Variant) DisplayName() string {
	switch v {
	case VariantSelfRating:
		return "天赋自测"
	case VariantStatement:
		return "天赋测验"
	default:
		return string(v)
	}
}

// ParseVariant parses a variant name. The empty string yields DefaultVariant.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultVariant, nil
	}
	for _, v := range AllVariants() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown quiz variant %q: must be self-rating or statement", s)
}

// banks holds the question lists, set by init() in seed.go.
var banks map[Variant][]Question

// Bank returns a copy of the variant's question list. Unknown variants
// return nil.
func Bank(v Variant) []Question {
	qs, ok := banks[v]
	if !ok {
		return nil
	}
	out := make([]Question, len(qs))
	copy(out, qs)
	return out
}

// CategorySize is the number of questions every category has in every bank.
// Band ranges and the chart scale are built on it.
const CategorySize = 4

// QuestionsPerCategory returns the number of questions each category has in
// the variant's bank, or 0 for an unknown variant.
func QuestionsPerCategory(v Variant) int {
	if _, ok := banks[v]; !ok {
		return 0
	}
	return CategorySize
}

// MaxScore returns the highest total attainable for one category.
func MaxScore(v Variant) int {
	return QuestionsPerCategory(v) * MaxOption
}

// MinScore returns the lowest total attainable for one fully answered category.
func MinScore(v Variant) int {
	return QuestionsPerCategory(v) * MinOption
}

// Validate runs the structural checks on all seeded banks.
func Validate() error {
	for _, v := range AllVariants() {
		if err := validateBank(v, banks[v]); err != nil {
			return err
		}
	}
	return nil
}

// validateBank checks that a bank only references known categories and
// gives every category exactly CategorySize questions.
func validateBank(v Variant, qs []Question) error {
	var errs []string

	if len(qs) == 0 {
		errs = append(errs, "bank is empty")
	}

	counts := make(map[Category]int)
	for i, q := range qs {
		if !q.Category.Valid() {
			errs = append(errs, fmt.Sprintf("question %d references unknown category %q", i, q.Category))
			continue
		}
		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Sprintf("question %d has empty text", i))
		}
		counts[q.Category]++
	}

	for _, c := range AllCategories() {
		switch n := counts[c]; {
		case n == 0:
			errs = append(errs, fmt.Sprintf("category %s has no questions", c))
		case n != CategorySize:
			errs = append(errs, fmt.Sprintf("category %s has %d questions, want %d", c, n, CategorySize))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank %q validation failed:\n  %s", v, strings.Join(errs, "\n  "))
	}
	return nil
}
