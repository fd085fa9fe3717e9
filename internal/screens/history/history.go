package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/talentquiz/internal/router"
	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/screen"
	"github.com/abhisek/talentquiz/internal/store"
	"github.com/abhisek/talentquiz/internal/ui/layout"
	"github.com/abhisek/talentquiz/internal/ui/theme"
)

// PageSize is the number of past results loaded.
const PageSize = 50

type historyLoadedMsg struct {
	Results []store.Result
	Err     error
}

// HistoryScreen lists past quiz results, newest first.
type HistoryScreen struct {
	results  store.ResultRepo
	items    []store.Result
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(results store.ResultRepo) *HistoryScreen {
	return &HistoryScreen{
		results:  results,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		items, err := s.results.List(context.Background(), store.QueryOpts{Limit: PageSize})
		return historyLoadedMsg{Results: items, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "历史记录"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "详情"},
		{Key: "↑↓", Description: "移动"},
		{Key: "Esc", Description: "返回"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.items = msg.Results
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.items)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.items) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n读取失败：%s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  正在读取历史记录...")
	}
	if len(s.items) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  还没有测验记录。")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, res := range s.items {
		report := scoring.BuildReport(res.Scores, scoring.SchemeFor(res.Variant))

		name := res.Respondent
		if name == "" {
			name = "匿名"
		}
		strongest := "-"
		if len(report.Strongest) > 0 {
			strongest = report.Strongest[0].Name()
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %s  %s  总分 %d  最强 %s",
			prefix, res.SubmittedAt.Local().Format("2006-01-02 15:04"), name,
			res.Variant.DisplayName(), res.Scores.Total(), strongest)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, row := range report.Rows {
				band := "未分级"
				if row.Classified {
					band = string(row.Band)
				}
				detail := fmt.Sprintf("    %s %s：%d分 %s", row.Category, row.Name, row.Total, band)
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
