package insight

import "github.com/abhisek/talentquiz/internal/llm"

// ReportSchema defines the JSON schema for talent report generation.
var ReportSchema = &llm.Schema{
	Name:        "talent-report",
	Description: "A short talent report built from a ten-category self assessment",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "3-5 sentence overview of the respondent's talent profile",
			},
			"strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "2-4 observations about the strongest talents",
			},
			"growth": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "1-3 observations about the weakest talents",
			},
			"suggestions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "2-4 concrete activities that build on the profile",
			},
		},
		"required":             []any{"summary", "strengths", "growth", "suggestions"},
		"additionalProperties": false,
	},
}
