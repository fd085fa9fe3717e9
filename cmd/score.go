package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/talentquiz/internal/insight"
	"github.com/abhisek/talentquiz/internal/radar"
	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/store"
	"github.com/abhisek/talentquiz/internal/talent"
)

var scoreCmd = &cobra.Command{
	Use:   "score [answers.json]",
	Short: "Score a set of answers and print the report",
	Long: `Score answers read from a file, or stdin when no file (or "-") is given.

Input is either an object {"variant": "self-rating", "answers": {"0": 5, "1": 3}}
with zero-based question indexes, or a bare array of option values in
question order, e.g. [5, 3, 4, ...].`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		in, err := parseAnswers(data)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("variant") || in.Variant == "" {
			in.Variant, _ = cmd.Flags().GetString("variant")
		}
		variant, err := talent.ParseVariant(in.Variant)
		if err != nil {
			return err
		}

		res, err := scoreAnswers(in.Answers, variant)
		if err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("svg"); path != "" {
			if err := writeChart(path, res.Geometry); err != nil {
				return err
			}
		}

		if withInsight, _ := cmd.Flags().GetBool("insight"); withInsight {
			ctx := commandContext(cmd)
			var events store.EventRepo
			if !historyDisabled(cmd) {
				st, err := openStore(cmd)
				if err != nil {
					fmt.Fprintln(os.Stderr, "warning: LLM requests will not be logged:", err)
				} else {
					defer st.Close()
					events = st.EventRepo()
				}
			}
			respondent, _ := cmd.Flags().GetString("name")
			res.Insight, err = newInsightService(ctx, events).Describe(ctx, insight.Input{
				Respondent: respondent,
				Variant:    variant,
				Report:     res.Report,
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, "talent report generation failed, using offline template:", err)
			}
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printScore(out, res)
		return nil
	},
}

func init() {
	scoreCmd.Flags().String("svg", "", "Write the radar chart as SVG to this file")
	scoreCmd.Flags().Bool("insight", false, "Append a talent report (uses the configured LLM provider)")
	scoreCmd.Flags().String("name", "", "Respondent name used in the talent report")
	scoreCmd.Flags().Bool("json", false, "Print the result as JSON")
}

type scoreInput struct {
	Variant string          `json:"variant"`
	Answers scoring.Answers `json:"answers"`
}

type scoreResult struct {
	Variant   talent.Variant     `json:"variant"`
	Answered  int                `json:"answered"`
	Questions int                `json:"questions"`
	Complete  bool               `json:"complete"`
	Scores    scoring.ScoreTable `json:"scores"`
	Total     int                `json:"total"`
	Headline  string             `json:"headline"`
	Report    scoring.Report     `json:"report"`
	Geometry  *radar.Geometry    `json:"geometry,omitempty"`
	Insight   *insight.Report    `json:"insight,omitempty"`
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	return data, nil
}

// parseAnswers accepts the object form or a bare array of option values.
func parseAnswers(data []byte) (scoreInput, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return scoreInput{}, errors.New("no answers given")
	}

	var in scoreInput
	if data[0] == '[' {
		var values []int
		if err := json.Unmarshal(data, &values); err != nil {
			return scoreInput{}, fmt.Errorf("parse answers: %w", err)
		}
		in.Answers = scoring.Answers{}
		for i, v := range values {
			in.Answers[i] = v
		}
		return in, nil
	}

	if err := json.Unmarshal(data, &in); err != nil {
		return scoreInput{}, fmt.Errorf("parse answers: %w", err)
	}
	return in, nil
}

// scoreAnswers validates and scores a possibly partial answer set.
func scoreAnswers(answers scoring.Answers, variant talent.Variant) (*scoreResult, error) {
	if len(answers) == 0 {
		return nil, errors.New("no answers given")
	}
	questions := talent.Bank(variant)
	if err := scoring.Validate(answers, questions); err != nil {
		return nil, err
	}

	scores := scoring.Aggregate(answers, questions)
	report := scoring.BuildReport(scores, scoring.SchemeFor(variant))
	geometry, err := radar.Project(scores, radar.ConfigFor(variant))
	if err != nil {
		return nil, fmt.Errorf("project chart: %w", err)
	}

	return &scoreResult{
		Variant:   variant,
		Answered:  len(answers),
		Questions: len(questions),
		Complete:  scoring.Complete(answers, questions),
		Scores:    scores,
		Total:     scores.Total(),
		Headline:  report.Headline(),
		Report:    report,
		Geometry:  geometry,
	}, nil
}

func writeChart(path string, g *radar.Geometry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := radar.RenderSVG(f, g, radar.DefaultSVGOptions()); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

// pad right-pads s to display width w, counting wide characters as two.
func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func printScore(w io.Writer, res *scoreResult) {
	sep := strings.Repeat("─", 48)

	fmt.Fprintf(w, "%s · %d/%d 题已作答\n", res.Variant.DisplayName(), res.Answered, res.Questions)
	if !res.Complete {
		fmt.Fprintln(w, "（未答完，只统计已作答的题目）")
	}
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%s  %s  %s  %s\n", pad("类别", 4), pad("名称", 16), pad("得分", 4), "等级")
	fmt.Fprintln(w, sep)
	for _, row := range res.Report.Rows {
		band := "未分级"
		if row.Classified {
			band = string(row.Band)
		}
		fmt.Fprintf(w, "%s  %s  %4d  %s\n", pad(string(row.Category), 4), pad(row.Name, 16), row.Total, band)
	}
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "总分 %d\n", res.Total)
	if res.Headline != "" {
		fmt.Fprintln(w, res.Headline)
	}

	if r := res.Insight; r != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "天赋解读")
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, r.Summary)
		for _, part := range []struct {
			title string
			items []string
		}{
			{"优势", r.Strengths},
			{"成长空间", r.Growth},
			{"建议", r.Suggestions},
		} {
			if len(part.items) == 0 {
				continue
			}
			fmt.Fprintf(w, "\n%s\n", part.title)
			for _, item := range part.items {
				fmt.Fprintf(w, "  • %s\n", item)
			}
		}
	}
}
