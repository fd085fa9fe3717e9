// Package quiz holds the answering screen and the result screen it turns
// into on submission.
package quiz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/talentquiz/internal/router"
	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/screen"
	"github.com/abhisek/talentquiz/internal/session"
	"github.com/abhisek/talentquiz/internal/talent"
	"github.com/abhisek/talentquiz/internal/ui/components"
	"github.com/abhisek/talentquiz/internal/ui/layout"
	"github.com/abhisek/talentquiz/internal/ui/theme"
)

// QuizScreen walks the respondent through the question bank.
type QuizScreen struct {
	svc        screen.Services
	respondent string
	state      session.State
	options    components.Likert
	errMsg     string
	now        func() time.Time
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// Start creates a quiz screen on a fresh session.
func Start(svc screen.Services, respondent string, variant talent.Variant) *QuizScreen {
	return New(svc, respondent, session.New(uuid.NewString(), variant, time.Now()))
}

// New creates a quiz screen resuming state.
func New(svc screen.Services, respondent string, state session.State) *QuizScreen {
	s := &QuizScreen{
		svc:        svc,
		respondent: respondent,
		state:      state,
		now:        time.Now,
	}
	s.syncOptions()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return s.state.Variant.DisplayName()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "1-5", Description: "作答"},
		{Key: "↑↓", Description: "移动"},
		{Key: "Enter", Description: "确认"},
		{Key: "←", Description: "上一题"},
		{Key: "Esc", Description: "退出"},
	}
}

// State returns the current session snapshot.
func (s *QuizScreen) State() session.State {
	return s.state
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	key := kmsg.String()
	switch key {
	case "1", "2", "3", "4", "5":
		value := int(key[0] - '0')
		return s, s.apply(session.SelectAndAdvance(s.state, value, s.now()))

	case "enter":
		next, err := session.Select(s.state, s.options.CursorValue())
		if err != nil {
			return s, s.apply(next, err)
		}
		return s, s.apply(session.Advance(next, s.now()))

	case "right", "l", "tab":
		return s, s.apply(session.Advance(s.state, s.now()))

	case "left", "h", "backspace", "shift+tab":
		return s, s.apply(session.Previous(s.state), nil)

	case "up", "k", "down", "j":
		s.options, _ = s.options.Update(msg)
		return s, nil
	}
	return s, nil
}

// apply installs the outcome of a transition. Failed transitions leave the
// state untouched and show why.
func (s *QuizScreen) apply(next session.State, err error) tea.Cmd {
	if err != nil {
		s.errMsg = errorText(err)
		return nil
	}
	s.errMsg = ""
	s.state = next
	s.syncOptions()

	if next.Phase != session.PhaseSubmitted {
		return nil
	}
	summary, err := session.BuildSummary(next, scoring.SchemeFor(next.Variant))
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	result := NewResult(s.svc, s.respondent, next, summary)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: result}
	}
}

func (s *QuizScreen) syncOptions() {
	chosen, _ := s.state.Selected()
	s.options = components.NewLikert(chosen)
}

func errorText(err error) string {
	switch {
	case errors.Is(err, session.ErrUnanswered):
		return "请先选择一个选项。"
	case errors.Is(err, session.ErrInvalidOption):
		return fmt.Sprintf("请选择 %d 到 %d 之间的选项。", talent.MinOption, talent.MaxOption)
	case errors.Is(err, session.ErrNotAnswering):
		return "测验已经提交。"
	default:
		return err.Error()
	}
}

func (s *QuizScreen) View(width, height int) string {
	q, ok := s.state.Question()
	if !ok {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n正在计算结果...")
	}

	cw := min(width-8, 72)
	answered, total := session.Progress(s.state)

	bar := components.NewProgressBar(
		fmt.Sprintf("第 %d / %d 题", s.state.Current+1, total),
		session.Percent(s.state), false, cw)
	bar.Detail = fmt.Sprintf("已答 %d", answered)

	question := theme.Card.
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(question)
	b.WriteString("\n\n")
	b.WriteString(s.options.View())

	if v, ok := s.state.Selected(); ok && s.errMsg == "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("已选：" + talent.OptionLabel(v)))
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	} else if s.state.IsLast() {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("最后一题，按 Enter 提交。"))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}
