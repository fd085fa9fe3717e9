package talent

import (
	"fmt"
	"strings"
)

// Category is one of the ten talent dimensions, identified by a letter A-J.
type Category string

const (
	CategoryA Category = "A" // Linguistic
	CategoryB Category = "B" // Logical-mathematical
	CategoryC Category = "C" // Spatial
	CategoryD Category = "D" // Intrapersonal
	CategoryE Category = "E" // Interpersonal
	CategoryF Category = "F" // Bodily-kinesthetic
	CategoryG Category = "G" // Musical
	CategoryH Category = "H" // Naturalistic
	CategoryI Category = "I" // Creative
	CategoryJ Category = "J" // Aesthetic
)

// AllCategories returns all categories in canonical order.
func AllCategories() []Category {
	return []Category{
		CategoryA, CategoryB, CategoryC, CategoryD, CategoryE,
		CategoryF, CategoryG, CategoryH, CategoryI, CategoryJ,
	}
}

// Name returns the talent name shown to respondents.
func (c Category) Name() string {
	switch c {
	case CategoryA:
		return "语言天赋"
	case CategoryB:
		return "逻辑-算数天赋"
	case CategoryC:
		return "空间天赋"
	case CategoryD:
		return "内省天赋"
	case CategoryE:
		return "人际天赋"
	case CategoryF:
		return "身体-动觉天赋"
	case CategoryG:
		return "音乐天赋"
	case CategoryH:
		return "自然天赋"
	case CategoryI:
		return "创造天赋"
	case CategoryJ:
		return "美学天赋"
	default:
		return string(c)
	}
}

// Index returns the position of c in canonical order, or -1 if c is unknown.
func (c Category) Index() int {
	for i, k := range AllCategories() {
		if k == c {
			return i
		}
	}
	return -1
}

// Valid reports whether c is one of the ten known categories.
func (c Category) Valid() bool {
	return c.Index() >= 0
}

// ParseCategory parses a category letter, ignoring case and surrounding space.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown talent category %q", s)
	}
	return c, nil
}

// Question is a single Likert item in a question bank.
type Question struct {
	Text     string
	Category Category
}

// Likert option bounds.
const (
	MinOption = 1
	MaxOption = 5
)

// Option is one selectable answer on the Likert scale.
type Option struct {
	Value int
	Label string
}

// Options returns the five Likert options in ascending value order.
func Options() []Option {
	return []Option{
		{Value: 1, Label: "完全不符合"},
		{Value: 2, Label: "不太符合"},
		{Value: 3, Label: "部分符合"},
		{Value: 4, Label: "很符合"},
		{Value: 5, Label: "非常符合"},
	}
}

// OptionLabel returns the label for an option value, or "" if out of range.
func OptionLabel(value int) string {
	for _, o := range Options() {
		if o.Value == value {
			return o.Label
		}
	}
	return ""
}
