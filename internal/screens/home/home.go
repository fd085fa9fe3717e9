package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talentquiz/internal/router"
	"github.com/abhisek/talentquiz/internal/screen"
	"github.com/abhisek/talentquiz/internal/screens/history"
	"github.com/abhisek/talentquiz/internal/screens/placeholder"
	"github.com/abhisek/talentquiz/internal/screens/quiz"
	"github.com/abhisek/talentquiz/internal/talent"
	"github.com/abhisek/talentquiz/internal/ui/components"
	"github.com/abhisek/talentquiz/internal/ui/layout"
	"github.com/abhisek/talentquiz/internal/ui/theme"
)

const nameLimit = 32

// Menu rows.
const (
	itemStart = iota
	itemVariant
	itemHistory
	itemQuit
)

// HomeScreen collects the respondent's name and question bank, and starts
// quizzes.
type HomeScreen struct {
	svc     screen.Services
	variant talent.Variant
	name    components.TextInput
	menu    components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc screen.Services, variant talent.Variant, respondent string) *HomeScreen {
	h := &HomeScreen{
		svc:     svc,
		variant: variant,
		name:    components.NewTextInput("姓名", "可选，用于报告和历史记录", nameLimit),
	}
	h.name.SetValue(respondent)

	items := []components.MenuItem{
		itemStart: {Label: "开始测验", Action: func() tea.Cmd {
			q := quiz.Start(h.svc, h.name.Value(), h.variant)
			return func() tea.Msg { return router.PushScreenMsg{Screen: q} }
		}},
		itemVariant: {Action: func() tea.Cmd {
			h.toggleVariant()
			return nil
		}},
		itemHistory: {Label: "历史记录", Action: func() tea.Cmd {
			var next screen.Screen
			if h.svc.Results == nil {
				next = placeholder.New("历史记录", "历史记录已关闭。\n去掉 --no-history 后重新启动即可查看。")
			} else {
				next = history.New(h.svc.Results)
			}
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		itemQuit: {Label: "退出", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.menu.Blurred = true
	h.refreshLabels()
	return h
}

// Variant returns the selected question bank.
func (h *HomeScreen) Variant() talent.Variant {
	return h.variant
}

// Respondent returns the entered name.
func (h *HomeScreen) Respondent() string {
	return h.name.Value()
}

func (h *HomeScreen) toggleVariant() {
	all := talent.AllVariants()
	for i, v := range all {
		if v == h.variant {
			h.variant = all[(i+1)%len(all)]
			break
		}
	}
	h.refreshLabels()
}

func (h *HomeScreen) refreshLabels() {
	h.menu.Items[itemVariant].Label = "题目版本：" + h.variant.DisplayName()
}

func (h *HomeScreen) focusMenu() {
	h.name.Blur()
	h.menu.Blurred = false
}

func (h *HomeScreen) focusName() tea.Cmd {
	h.menu.Blurred = true
	return h.name.Focus()
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "首页"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.name.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "下一步"},
			{Key: "Tab", Description: "切换"},
			{Key: "Ctrl+C", Description: "退出"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "移动"},
		{Key: "Enter", Description: "选择"},
		{Key: "Tab", Description: "姓名"},
		{Key: "Ctrl+C", Description: "退出"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	if h.name.Focused() {
		if isKey {
			switch kmsg.String() {
			case "enter", "tab", "down":
				h.focusMenu()
				return h, nil
			}
		}
		var cmd tea.Cmd
		h.name, cmd = h.name.Update(msg)
		return h, cmd
	}

	if isKey {
		switch kmsg.String() {
		case "tab", "shift+tab":
			return h, h.focusName()
		case "up", "k":
			if h.menu.AtTop() {
				return h, h.focusName()
			}
		case "left", "right":
			if h.menu.Selected == itemVariant {
				h.toggleVariant()
				return h, nil
			}
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height + 8)
	cw := min(width-8, 60)

	var sections []string
	sections = append(sections, renderBanner(cw, compact))
	if !compact {
		sections = append(sections, theme.Subtitle.Width(cw).Render(
			"40 道题，十种天赋，看看你最擅长什么。"))
	}

	form := h.name.View() + "\n\n" + h.menu.View()
	sections = append(sections, theme.Card.Width(cw).Render(form))

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
