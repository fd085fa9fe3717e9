package insight

import (
	"fmt"
	"strings"

	"github.com/abhisek/talentquiz/internal/scoring"
)

const systemPrompt = `You are a warm, practical career and learning coach. You write short talent reports in Simplified Chinese from the results of a ten-category self assessment based on the theory of multiple intelligences.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	if in.Respondent != "" {
		fmt.Fprintf(&b, "Respondent: %s\n", in.Respondent)
	}
	fmt.Fprintf(&b, "Questionnaire: %s\n", in.Variant.DisplayName())

	b.WriteString("\nCategory totals (4 questions each, 1-5 points per question):\n")
	for _, row := range in.Report.Rows {
		band := string(row.Band)
		if !row.Classified {
			band = "unclassified"
		}
		fmt.Fprintf(&b, "- %s %s: %d (%s)\n", row.Category, row.Name, row.Total, band)
	}

	fmt.Fprintf(&b, "\nStrongest: %s\n", scoring.JoinNames(in.Report.Strongest))
	fmt.Fprintf(&b, "Weakest: %s\n", scoring.JoinNames(in.Report.Weakest))

	b.WriteString(`
Instructions:
1. Write everything in Simplified Chinese.
2. The summary describes the overall shape of the profile, not every category.
3. Strengths and growth items refer to talents by name and stay specific.
4. Suggestions are activities the respondent could start this week.
5. Do not diagnose, rank the respondent against others, or mention scores above 20.`)

	return b.String()
}
