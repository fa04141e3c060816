// Package dashboard shows the server-reported workflow position and
// hosts the learning-path generation action.
package dashboard

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/upskillhq/skillpath/internal/api"
	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/screen"
	"github.com/upskillhq/skillpath/internal/ui/components"
	"github.com/upskillhq/skillpath/internal/ui/layout"
	"github.com/upskillhq/skillpath/internal/ui/theme"
	"github.com/upskillhq/skillpath/internal/workflow"
)

type refreshedMsg struct {
	Err error
}

type generateDoneMsg struct {
	Err error
}

// DashboardScreen renders the progress overview.
type DashboardScreen struct {
	orch *workflow.Orchestrator

	loading bool
	errMsg  string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.Protected = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(orch *workflow.Orchestrator) *DashboardScreen {
	return &DashboardScreen{orch: orch, loading: true}
}

func (d *DashboardScreen) RequiredRoles() []auth.Role { return nil }

func (d *DashboardScreen) Init() tea.Cmd {
	return d.refresh()
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "r", Description: "Refresh"},
	}
	if d.orch.Resolution().Permits(workflow.ActionGenerateLearningPath) {
		hints = append(hints, layout.KeyHint{Key: "g", Description: "Generate path"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	return hints
}

func (d *DashboardScreen) refresh() tea.Cmd {
	orch := d.orch
	return func() tea.Msg {
		_, err := orch.RefreshStep(context.Background())
		return refreshedMsg{Err: err}
	}
}

func (d *DashboardScreen) generate() tea.Cmd {
	orch := d.orch
	return func() tea.Msg {
		return generateDoneMsg{Err: orch.GenerateLearningPath(context.Background())}
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshedMsg:
		d.loading = false
		if msg.Err != nil {
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				return d, func() tea.Msg { return screen.SessionExpiredMsg{} }
			}
			d.errMsg = "Could not load your progress."
			return d, nil
		}
		d.errMsg = ""
		return d, nil

	case generateDoneMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				return d, func() tea.Msg { return screen.SessionExpiredMsg{} }
			}
			if errors.Is(msg.Err, workflow.ErrInFlight) {
				return d, nil
			}
			if m, ok := api.IsRejection(msg.Err); ok {
				d.errMsg = m
			} else {
				d.errMsg = "Generation failed. Try again."
			}
			return d, nil
		}
		d.errMsg = ""
		return d, d.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			d.loading = true
			return d, d.refresh()
		case "g":
			if d.orch.Resolution().Permits(workflow.ActionGenerateLearningPath) && !d.orch.Generating() {
				d.errMsg = ""
				return d, d.generate()
			}
		}
	}

	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	if d.loading {
		return centered(width, height, theme.Hint.Render("Loading your progress..."))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Your Progress") + "\n\n")

	prog := d.orch.Progress()
	if prog != nil {
		bar := components.NewProgressBar("", float64(prog.ProgressPercent)/100, true, 44)
		b.WriteString(bar.View() + "\n\n")
		for _, step := range prog.Steps {
			mark := theme.Locked.Render("○")
			label := theme.Body.Render(step.Label)
			if step.Completed {
				mark = theme.Done.Render("●")
			}
			b.WriteString("  " + mark + " " + label + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Subtitle.Render(d.orch.Resolution().StatusText) + "\n")

	if d.orch.Resolution().Permits(workflow.ActionGenerateLearningPath) {
		if d.orch.Generating() {
			b.WriteString("\n" + theme.Hint.Render("Generating your learning path..."))
		} else {
			b.WriteString("\n" + theme.ButtonActive.Render("  g ▸ Generate learning path "))
		}
	}

	if d.errMsg != "" {
		b.WriteString("\n\n" + theme.Alert.Render(d.errMsg))
	}

	return centered(width, height, theme.Card.Width(52).Render(b.String()))
}

func centered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
