package quiz

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talentquiz/internal/insight"
	"github.com/abhisek/talentquiz/internal/radar"
	"github.com/abhisek/talentquiz/internal/router"
	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/screen"
	"github.com/abhisek/talentquiz/internal/session"
	"github.com/abhisek/talentquiz/internal/store"
	"github.com/abhisek/talentquiz/internal/ui/components"
	"github.com/abhisek/talentquiz/internal/ui/layout"
	"github.com/abhisek/talentquiz/internal/ui/theme"
)

const insightTimeout = 90 * time.Second

type saveStatus int

const (
	saveDisabled saveStatus = iota
	savePending
	saveDone
	saveFailed
)

type resultSavedMsg struct {
	Err error
}

type insightReadyMsg struct {
	Report *insight.Report
	Err    error
}

// ResultScreen shows the scores of a submitted quiz.
type ResultScreen struct {
	svc        screen.Services
	respondent string
	state      session.State
	summary    *session.Summary
	geometry   *radar.Geometry

	save    saveStatus
	saveErr string

	insight        *insight.Report
	insightLoading bool
	insightErr     string
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// NewResult creates the result screen for a submitted state.
func NewResult(svc screen.Services, respondent string, state session.State, summary *session.Summary) *ResultScreen {
	s := &ResultScreen{
		svc:        svc,
		respondent: respondent,
		state:      state,
		summary:    summary,
	}
	// A quiz with no scored categories has nothing to plot.
	s.geometry, _ = radar.Project(summary.Scores, radar.ConfigFor(summary.Variant))
	if svc.Results != nil {
		s.save = savePending
	}
	return s
}

// Init records the result when history is enabled.
func (s *ResultScreen) Init() tea.Cmd {
	if s.save != savePending {
		return nil
	}
	repo := s.svc.Results
	res := store.NewResult(s.state, s.respondent)
	return func() tea.Msg {
		return resultSavedMsg{Err: repo.Save(context.Background(), res)}
	}
}

func (s *ResultScreen) Title() string {
	return "测验结果"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "R", Description: "重新测验"}}
	if s.insight == nil && !s.insightLoading {
		hints = append(hints, layout.KeyHint{Key: "I", Description: "生成解读"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "返回首页"},
		layout.KeyHint{Key: "Esc", Description: "返回"},
	)
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultSavedMsg:
		if msg.Err != nil {
			s.save = saveFailed
			s.saveErr = msg.Err.Error()
		} else {
			s.save = saveDone
		}
		return s, nil

	case insightReadyMsg:
		s.insightLoading = false
		s.insight = msg.Report
		if msg.Err != nil {
			s.insightErr = msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			restarted := session.Restart(s.state, s.state.ID, time.Now())
			next := New(s.svc, s.respondent, restarted)
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case "i":
			if s.insight != nil || s.insightLoading {
				return s, nil
			}
			s.insightLoading = true
			return s, s.describe()
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ResultScreen) describe() tea.Cmd {
	svc := s.svc.Insights
	in := insight.Input{
		Respondent: s.respondent,
		Variant:    s.summary.Variant,
		Report:     s.summary.Report,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), insightTimeout)
		defer cancel()
		r, err := svc.Describe(ctx, in)
		return insightReadyMsg{Report: r, Err: err}
	}
}

func (s *ResultScreen) View(width, height int) string {
	report := s.summary.Report
	cw := min(width-4, 110)

	var sections []string
	headline := report.Headline()
	if headline == "" {
		headline = "没有可用的得分。"
	}
	sections = append(sections, theme.Title.Width(cw).Render(headline))

	table := s.renderTable()
	chartHeight := max(height-12, 8)
	if s.insight != nil {
		chartHeight = max(chartHeight-8, 8)
	}
	chart := components.NewRadarChart(s.geometry, cw-lipgloss.Width(table)-4, chartHeight).View()
	if chart != "" && !layout.IsCompactWidth(width) {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Center, chart, "    ", table))
	} else {
		sections = append(sections, table)
	}

	sections = append(sections, s.renderInsight(cw))
	if status := s.renderSaveStatus(); status != "" {
		sections = append(sections, status)
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render("\n"+content))
}

func (s *ResultScreen) renderTable() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · 用时 %s", s.summary.Variant.DisplayName(), s.summary.Duration.Round(time.Second))))
	b.WriteString("\n\n")
	for _, row := range s.summary.Report.Rows {
		label := "未分级"
		if row.Classified {
			label = string(row.Band)
		}
		line := fmt.Sprintf("%s  %s  %2d  ", row.Category, padName(row.Name), row.Total)
		b.WriteString(theme.Body.Render(line))
		b.WriteString(lipgloss.NewStyle().Foreground(bandColor(row)).Bold(true).Render(label))
		b.WriteString("\n")
	}
	return b.String()
}

// padName pads a category name to the widest name so columns align.
func padName(name string) string {
	const width = 12
	if w := lipgloss.Width(name); w < width {
		return name + strings.Repeat(" ", width-w)
	}
	return name
}

func (s *ResultScreen) renderInsight(width int) string {
	switch {
	case s.insightLoading:
		return theme.Hint.Render("正在生成天赋解读...")
	case s.insight == nil:
		return theme.Hint.Render("按 I 生成天赋解读。")
	}

	r := s.insight
	var b strings.Builder
	b.WriteString(theme.Selected.Render("天赋解读"))
	if r.Source == insight.SourceFallback {
		b.WriteString(theme.Hint.Render("（离线模板）"))
	}
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(r.Summary))
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
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(part.title))
		for _, item := range part.items {
			b.WriteString("\n  • " + item)
		}
	}
	if s.insightErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("模型不可用：" + s.insightErr))
	}
	return lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(b.String())
}

func (s *ResultScreen) renderSaveStatus() string {
	switch s.save {
	case saveDone:
		return lipgloss.NewStyle().Foreground(theme.Success).Render("已保存到历史记录。")
	case saveFailed:
		return lipgloss.NewStyle().Foreground(theme.Error).Render("保存失败：" + s.saveErr)
	}
	return ""
}

// bandPalette is indexed by Band.Rank.
var bandPalette = []color.Color{theme.BandLow, theme.BandModerate, theme.BandGood, theme.BandHigh}

func bandColor(row scoring.Row) color.Color {
	r := row.Band.Rank()
	if !row.Classified || r < 0 || r >= len(bandPalette) {
		return theme.TextDim
	}
	return bandPalette[r]
}
