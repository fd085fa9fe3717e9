package scoring

import (
	"strings"

	"github.com/abhisek/talentquiz/internal/talent"
)

// HighlightCount is how many strongest and weakest talents a report names.
const HighlightCount = 3

// Row is the classified result for one category.
type Row struct {
	Category   talent.Category `json:"category"`
	Name       string          `json:"name"`
	Total      int             `json:"total"`
	Band       Band            `json:"band,omitempty"`
	Classified bool            `json:"classified"`
}

// Report is the full classified view of a score table.
type Report struct {
	Scheme    string            `json:"scheme"`
	Rows      []Row             `json:"rows"`
	Strongest []talent.Category `json:"strongest"`
	Weakest   []talent.Category `json:"weakest"`
}

// BuildReport classifies every present category and picks the highlights.
func BuildReport(scores ScoreTable, scheme Scheme) Report {
	r := Report{
		Scheme:    scheme.Name,
		Strongest: Strongest(scores, HighlightCount),
		Weakest:   Weakest(scores, HighlightCount),
	}
	for _, c := range scores.Categories() {
		band, ok := Classify(scores[c], scheme)
		r.Rows = append(r.Rows, Row{
			Category:   c,
			Name:       c.Name(),
			Total:      scores[c],
			Band:       band,
			Classified: ok,
		})
	}
	return r
}

// Row returns the row for c and whether it exists.
func (r Report) Row(c talent.Category) (Row, bool) {
	for _, row := range r.Rows {
		if row.Category == c {
			return row, true
		}
	}
	return Row{}, false
}

// JoinNames renders categories as their talent names separated by "、".
func JoinNames(cats []talent.Category) string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name()
	}
	return strings.Join(names, "、")
}

// Headline returns the one-line strongest/weakest sentence shown on result
// pages.
func (r Report) Headline() string {
	if len(r.Rows) == 0 {
		return ""
	}
	return "你最具有" + JoinNames(r.Strongest) + "，而" + JoinNames(r.Weakest) + "相对较弱。"
}
