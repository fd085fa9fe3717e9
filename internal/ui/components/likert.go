package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talentquiz/internal/talent"
	"github.com/abhisek/talentquiz/internal/ui/theme"
)

// Likert is the five-option answer list shown under each question. It only
// tracks the cursor; recording the answer is left to the caller.
type Likert struct {
	Options []talent.Option
	Cursor  int // index into Options
	Chosen  int // recorded option value, 0 when unanswered
}

// NewLikert places the cursor on chosen, or on the middle option when the
// question is unanswered.
func NewLikert(chosen int) Likert {
	l := Likert{Options: talent.Options(), Chosen: chosen}
	l.Cursor = len(l.Options) / 2
	for i, o := range l.Options {
		if o.Value == chosen {
			l.Cursor = i
		}
	}
	return l
}

// Update moves the cursor.
func (l Likert) Update(msg tea.Msg) (Likert, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
	case "down", "j":
		if l.Cursor < len(l.Options)-1 {
			l.Cursor++
		}
	}
	return l, nil
}

// CursorValue returns the option value under the cursor.
func (l Likert) CursorValue() int {
	if l.Cursor < 0 || l.Cursor >= len(l.Options) {
		return 0
	}
	return l.Options[l.Cursor].Value
}

// View renders the option list.
func (l Likert) View() string {
	var s string
	for i, o := range l.Options {
		prefix := "  "
		if i == l.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d  %s", prefix, o.Value, o.Label)

		switch {
		case o.Value == l.Chosen:
			s += theme.Chosen.Render(line+"  ✓") + "\n"
		case i == l.Cursor:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
