// Package result renders the per-skill scores returned after an
// assessment submission.
package result

import (
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/router"
	"github.com/upskillhq/skillpath/internal/screen"
	"github.com/upskillhq/skillpath/internal/ui/components"
	"github.com/upskillhq/skillpath/internal/ui/layout"
	"github.com/upskillhq/skillpath/internal/ui/theme"
)

// ResultScreen shows one score bar per assessed skill.
type ResultScreen struct {
	skills []string
	scores map[string]float64
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.Protected = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen from the server's score map.
func New(scores map[string]float64) *ResultScreen {
	skills := make([]string, 0, len(scores))
	for skill := range scores {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return &ResultScreen{skills: skills, scores: scores}
}

func (r *ResultScreen) RequiredRoles() []auth.Role { return nil }

func (r *ResultScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultScreen) Title() string {
	return "Results"
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" {
			return r, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return r, nil
}

func (r *ResultScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Assessment Complete") + "\n\n")

	if len(r.skills) == 0 {
		b.WriteString(theme.Subtitle.Render("No scores were returned.") + "\n")
	}
	for _, skill := range r.skills {
		bar := components.NewProgressBar(padSkill(skill), r.scores[skill]/100, true, 48)
		b.WriteString(bar.View() + "\n")
	}

	b.WriteString("\n" + theme.Hint.Render("Your learning path recommendations are ready."))

	card := theme.Card.Width(56).Render(b.String())
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

// padSkill keeps the bars aligned for typical skill-name lengths.
func padSkill(skill string) string {
	const w = 14
	if len(skill) >= w {
		return skill
	}
	return skill + strings.Repeat(" ", w-len(skill))
}
