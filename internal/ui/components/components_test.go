package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talentquiz/internal/radar"
	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/talent"
)

type actionMsg struct{ label string }

func TestMenu_SkipsDisabledItems(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "a", Action: func() tea.Cmd { return func() tea.Msg { return actionMsg{"a"} } }},
		{Label: "gone", Disabled: true},
		{Label: "b", Action: func() tea.Cmd { return func() tea.Msg { return actionMsg{"b"} } }},
	})
	if m.Selected != 1 || !m.AtTop() {
		t.Fatalf("Selected = %d, want 1 and at top", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("Selected = %d after down, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down at bottom should stay, got %d", m.Selected)
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected action command")
	}
	if got := cmd().(actionMsg); got.label != "b" {
		t.Errorf("action = %q, want b", got.label)
	}
}

func TestMenu_BlurredIgnoresKeys(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b"}})
	m.Blurred = true
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 {
		t.Errorf("blurred menu moved to %d", m.Selected)
	}
	if strings.Contains(m.View(), "▸") {
		t.Error("blurred menu should not draw a cursor")
	}
}

func TestLikert_CursorStartsOnChosen(t *testing.T) {
	if l := NewLikert(0); l.CursorValue() != 3 {
		t.Errorf("unanswered cursor value = %d, want 3", l.CursorValue())
	}
	if l := NewLikert(5); l.CursorValue() != 5 {
		t.Errorf("cursor value = %d, want 5", l.CursorValue())
	}
}

func TestLikert_Navigation(t *testing.T) {
	l := NewLikert(1)
	l, _ = l.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if l.CursorValue() != 1 {
		t.Errorf("up at top should stay on 1, got %d", l.CursorValue())
	}
	l, _ = l.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	l, _ = l.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if l.CursorValue() != 3 {
		t.Errorf("cursor value = %d, want 3", l.CursorValue())
	}

	view := l.View()
	for _, o := range talent.Options() {
		if !strings.Contains(view, o.Label) {
			t.Errorf("view missing option %q", o.Label)
		}
	}
	if !strings.Contains(view, "✓") {
		t.Error("chosen option should be marked")
	}
}

func TestProgressBar_Detail(t *testing.T) {
	p := NewProgressBar("进度", 0.25, true, 40)
	if !strings.Contains(p.View(), "25%") {
		t.Errorf("view = %q, want percentage", p.View())
	}
	p.Detail = "10/40"
	view := p.View()
	if !strings.Contains(view, "10/40") || strings.Contains(view, "25%") {
		t.Errorf("detail should replace percentage, got %q", view)
	}
}

func TestRadarChart_View(t *testing.T) {
	scores := scoring.ScoreTable{}
	for i, c := range talent.AllCategories() {
		scores[c] = 4 + i
	}
	g, err := radar.Project(scores, radar.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	chart := NewRadarChart(g, 60, 20)
	if chart.Width != 40 || chart.Height != 20 {
		t.Fatalf("size = %dx%d, want 40x20", chart.Width, chart.Height)
	}

	view := chart.View()
	lines := strings.Split(view, "\n")
	if len(lines) != chart.Height {
		t.Fatalf("lines = %d, want %d", len(lines), chart.Height)
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != chart.Width {
			t.Errorf("line %d width = %d, want %d", i, w, chart.Width)
		}
	}
	for _, want := range []string{"A 4", "J 13", "●"} {
		if !strings.Contains(view, want) {
			t.Errorf("chart missing %q", want)
		}
	}
}

func TestRadarChart_Empty(t *testing.T) {
	if (RadarChart{}).View() != "" {
		t.Error("nil geometry should render nothing")
	}
}
