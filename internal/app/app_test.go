package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/talentquiz/internal/router"
	"github.com/abhisek/talentquiz/internal/screens/placeholder"
	"github.com/abhisek/talentquiz/internal/talent"
)

func TestNewAppModel_DefaultVariant(t *testing.T) {
	m := newAppModel(Options{Respondent: "Mia"})
	if m.home.Variant() != talent.DefaultVariant {
		t.Errorf("Variant = %q, want default", m.home.Variant())
	}
	if got, want := m.status(), talent.DefaultVariant.DisplayName()+" · Mia"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
}

func TestAppModel_EscPopsOnlyAboveHome(t *testing.T) {
	m := newAppModel(Options{})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("Esc on the home screen should do nothing")
	}

	m.router.Update(router.PushScreenMsg{Screen: placeholder.New("x", "y")})
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestAppModel_Frame(t *testing.T) {
	m := newAppModel(Options{})
	if m.frame() != "" {
		t.Error("nothing should render before the first resize")
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	frame := updated.(AppModel).frame()
	for _, want := range []string{"talentquiz", "首页", "开始测验"} {
		if !strings.Contains(frame, want) {
			t.Errorf("frame missing %q", want)
		}
	}

	small, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(small.(AppModel).frame(), "终端窗口太小") {
		t.Error("expected too-small notice")
	}
}
