package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/upskillhq/skillpath/internal/ui/theme"
)

// Choice is an answer selector for one assessment question. Scoring
// happens server-side, so the component never reveals correctness; it
// only records which option was picked and allows changing it.
type Choice struct {
	Question string
	Options  []string
	Selected int
	Chosen   int
}

// NewChoice creates a selector with no answer recorded yet.
func NewChoice(question string, options []string) Choice {
	return Choice{
		Question: question,
		Options:  options,
		Selected: 0,
		Chosen:   -1,
	}
}

// Init returns nil.
func (c Choice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter", " ":
		c.Chosen = c.Selected
	}

	return c, nil
}

// View renders the question with its options.
func (c Choice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(c.Question) + "\n\n"

	for i, opt := range c.Options {
		label := string(rune('A' + i))
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		mark := " "
		if i == c.Chosen {
			mark = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, label, opt)

		switch {
		case i == c.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case i == c.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}

// Answer returns the chosen option text, or false before any choice.
func (c Choice) Answer() (string, bool) {
	if c.Chosen < 0 || c.Chosen >= len(c.Options) {
		return "", false
	}
	return c.Options[c.Chosen], true
}

// Answered reports whether an option has been picked.
func (c Choice) Answered() bool {
	return c.Chosen >= 0
}
