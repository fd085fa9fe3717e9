package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/talentquiz/internal/insight"
	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/store"
	"github.com/abhisek/talentquiz/internal/talent"
)

func allAnswers(value int) scoring.Answers {
	a := scoring.Answers{}
	for i := range talent.Bank(talent.VariantSelfRating) {
		a[i] = value
	}
	return a
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags puts every flag back to its default so one test's flags do not
// leak into the next Execute.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TALENTQUIZ_LLM_PROVIDER", "TALENTQUIZ_ANTHROPIC_API_KEY", "TALENTQUIZ_OPENAI_API_KEY",
		"TALENTQUIZ_GEMINI_API_KEY", "TALENTQUIZ_OPENROUTER_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestParseAnswers(t *testing.T) {
	in, err := parseAnswers([]byte(`{"variant":"statement","answers":{"0":5,"39":2}}`))
	require.NoError(t, err)
	assert.Equal(t, "statement", in.Variant)
	assert.Equal(t, scoring.Answers{0: 5, 39: 2}, in.Answers)

	in, err = parseAnswers([]byte("  [5, 4, 3]\n"))
	require.NoError(t, err)
	assert.Empty(t, in.Variant)
	assert.Equal(t, scoring.Answers{0: 5, 1: 4, 2: 3}, in.Answers)

	_, err = parseAnswers([]byte(""))
	assert.Error(t, err)
	_, err = parseAnswers([]byte(`{"answers":`))
	assert.Error(t, err)
}

func TestScoreAnswers(t *testing.T) {
	res, err := scoreAnswers(allAnswers(3), talent.VariantSelfRating)
	require.NoError(t, err)
	assert.True(t, res.Complete)
	assert.Equal(t, 120, res.Total)
	assert.Equal(t, 40, res.Answered)
	assert.Len(t, res.Report.Rows, 10)
	require.NotNil(t, res.Geometry)
	assert.Len(t, res.Geometry.Vertices, 10)

	partial, err := scoreAnswers(scoring.Answers{0: 5}, talent.VariantSelfRating)
	require.NoError(t, err)
	assert.False(t, partial.Complete)
	assert.Len(t, partial.Report.Rows, 1)

	_, err = scoreAnswers(scoring.Answers{0: 9}, talent.VariantSelfRating)
	var invalid *scoring.InvalidAnswerError
	assert.ErrorAs(t, err, &invalid)

	_, err = scoreAnswers(scoring.Answers{}, talent.VariantSelfRating)
	assert.Error(t, err)
}

func TestPrintScore(t *testing.T) {
	res, err := scoreAnswers(scoring.Answers{0: 5, 1: 5}, talent.VariantSelfRating)
	require.NoError(t, err)
	res.Insight = insight.Fallback(insight.Input{Variant: res.Variant, Report: res.Report})

	var buf bytes.Buffer
	printScore(&buf, res)
	out := buf.String()
	assert.Contains(t, out, "2/40")
	assert.Contains(t, out, "未答完")
	assert.Contains(t, out, res.Headline)
	assert.Contains(t, out, "天赋解读")
}

func TestScoreCommand_JSONFromStdin(t *testing.T) {
	payload, err := json.Marshal(scoreInput{Answers: allAnswers(4)})
	require.NoError(t, err)

	dir := t.TempDir()
	svgPath := filepath.Join(dir, "chart.svg")
	out, err := execute(t, string(payload), "score", "--json", "--variant", "self-rating", "--svg", svgPath)
	require.NoError(t, err)

	var res scoreResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 160, res.Total)
	assert.Equal(t, talent.VariantSelfRating, res.Variant)

	svg, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestScoreCommand_InsightUsesHistoryStore(t *testing.T) {
	clearLLMEnv(t)
	payload, err := json.Marshal(scoreInput{Answers: allAnswers(3)})
	require.NoError(t, err)

	dbPath := filepath.Join(t.TempDir(), "talentquiz.db")
	out, err := execute(t, string(payload), "score", "--json", "--insight", "--db", dbPath)
	require.NoError(t, err)

	var res scoreResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotNil(t, res.Insight)
	assert.Equal(t, insight.SourceFallback, res.Insight.Source)
	assert.FileExists(t, dbPath, "the request log lives in the history database")
}

func TestScoreCommand_InsightWithoutHistory(t *testing.T) {
	clearLLMEnv(t)
	payload, err := json.Marshal(scoreInput{Answers: allAnswers(3)})
	require.NoError(t, err)

	dbPath := filepath.Join(t.TempDir(), "talentquiz.db")
	_, err = execute(t, string(payload), "score", "--json", "--insight", "--no-history", "--db", dbPath)
	require.NoError(t, err)
	assert.NoFileExists(t, dbPath)
}

func TestServeCommand_ListenErrorIsReturned(t *testing.T) {
	clearLLMEnv(t)
	dbPath := filepath.Join(t.TempDir(), "talentquiz.db")
	_, err := execute(t, "", "serve", "--addr", "127.0.0.1:-1", "--db", dbPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error")

	// The deferred close ran, so the database can be reopened and used.
	s, err := store.Open(context.Background(), store.DriverSQLite, dbPath)
	require.NoError(t, err)
	defer s.Close()
	_, err = s.ResultRepo().Count(context.Background())
	assert.NoError(t, err)
}

func TestHistoryCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "talentquiz.db")
	s, err := store.Open(context.Background(), store.DriverSQLite, dbPath)
	require.NoError(t, err)
	require.NoError(t, s.ResultRepo().Save(context.Background(), &store.Result{
		ID:          "11111111-aaaa",
		Respondent:  "Mia",
		Variant:     talent.VariantSelfRating,
		Answers:     scoring.Answers{0: 5},
		Scores:      scoring.ScoreTable{talent.CategoryA: 5},
		StartedAt:   time.Now().Add(-time.Minute),
		SubmittedAt: time.Now(),
	}))
	require.NoError(t, s.Close())

	out, err := execute(t, "", "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Mia")
	assert.Contains(t, out, "11111111")
	assert.Contains(t, out, talent.CategoryA.Name())
}

func TestAverageScores(t *testing.T) {
	avg := averageScores([]store.Result{
		{Scores: scoring.ScoreTable{talent.CategoryA: 10, talent.CategoryB: 4}},
		{Scores: scoring.ScoreTable{talent.CategoryA: 15}},
	})
	assert.InDelta(t, 12.5, avg[talent.CategoryA], 1e-9)
	assert.InDelta(t, 4.0, avg[talent.CategoryB], 1e-9)
	assert.NotContains(t, avg, talent.CategoryC)
}

func TestUsageByModel(t *testing.T) {
	ev := func(model string, in, out int) store.LLMRequestEvent {
		return store.LLMRequestEvent{LLMRequestEventData: store.LLMRequestEventData{
			Model: model, InputTokens: in, OutputTokens: out, Success: true,
		}}
	}
	usage := usageByModel([]store.LLMRequestEvent{
		ev("gpt-4o-mini", 500_000, 500_000),
		ev("gpt-4o-mini", 500_000, 500_000),
		ev("mystery-model", 10, 10),
	})
	require.Len(t, usage, 2)
	assert.Equal(t, "gpt-4o-mini", usage[0].Model)
	assert.Equal(t, 2, usage[0].Calls)
	assert.True(t, usage[0].Priced)
	assert.InDelta(t, 0.75, usage[0].CostUSD, 1e-6)
	assert.False(t, usage[1].Priced)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "音乐", truncate("音乐天赋", 2))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "talentquiz (devel)\n", out)
}
