// Package assessment runs the skill assessment: start the session,
// answer the generated questions, submit for server-side scoring.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/upskillhq/skillpath/internal/api"
	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/router"
	"github.com/upskillhq/skillpath/internal/screen"
	"github.com/upskillhq/skillpath/internal/screens/result"
	"github.com/upskillhq/skillpath/internal/ui/components"
	"github.com/upskillhq/skillpath/internal/ui/layout"
	"github.com/upskillhq/skillpath/internal/ui/theme"
	"github.com/upskillhq/skillpath/internal/workflow"
)

type phase int

const (
	phaseStarting phase = iota
	phaseActive
	phaseSubmitting
	phaseFailed
)

// questionsReadyMsg delivers the generated questions.
type questionsReadyMsg struct {
	Questions []api.Question
	Err       error
}

// submitDoneMsg delivers the server-computed scores.
type submitDoneMsg struct {
	Results map[string]float64
	Err     error
}

// AssessmentScreen drives one assessment session.
type AssessmentScreen struct {
	orch *workflow.Orchestrator

	phase     phase
	questions []api.Question
	choices   []components.Choice
	current   int
	errMsg    string
}

var _ screen.Screen = (*AssessmentScreen)(nil)
var _ screen.Protected = (*AssessmentScreen)(nil)
var _ screen.KeyHintProvider = (*AssessmentScreen)(nil)

// New creates a new AssessmentScreen.
func New(orch *workflow.Orchestrator) *AssessmentScreen {
	return &AssessmentScreen{orch: orch}
}

func (a *AssessmentScreen) RequiredRoles() []auth.Role { return nil }

func (a *AssessmentScreen) Init() tea.Cmd {
	a.phase = phaseStarting
	return a.start()
}

func (a *AssessmentScreen) Title() string {
	return "Assessment"
}

func (a *AssessmentScreen) KeyHints() []layout.KeyHint {
	switch a.phase {
	case phaseActive:
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Option"},
			{Key: "Enter", Description: "Pick"},
			{Key: "←→", Description: "Question"},
		}
		if a.allAnswered() {
			hints = append(hints, layout.KeyHint{Key: "s", Description: "Submit"})
		}
		return hints
	case phaseFailed:
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
}

func (a *AssessmentScreen) start() tea.Cmd {
	orch := a.orch
	return func() tea.Msg {
		questions, err := orch.StartAssessment(context.Background())
		return questionsReadyMsg{Questions: questions, Err: err}
	}
}

func (a *AssessmentScreen) submit() tea.Cmd {
	answers := make(map[string]string, len(a.questions))
	for i, q := range a.questions {
		if ans, ok := a.choices[i].Answer(); ok {
			answers[q.ID] = ans
		}
	}
	orch := a.orch
	return func() tea.Msg {
		results, err := orch.SubmitAssessment(context.Background(), answers)
		return submitDoneMsg{Results: results, Err: err}
	}
}

func (a *AssessmentScreen) allAnswered() bool {
	for _, c := range a.choices {
		if !c.Answered() {
			return false
		}
	}
	return len(a.choices) > 0
}

func (a *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsReadyMsg:
		if msg.Err != nil {
			return a, a.fail(msg.Err, "Could not start the assessment.")
		}
		a.phase = phaseActive
		a.questions = msg.Questions
		a.choices = make([]components.Choice, len(msg.Questions))
		for i, q := range msg.Questions {
			a.choices[i] = components.NewChoice(q.Text, q.Options)
		}
		a.current = 0
		return a, nil

	case submitDoneMsg:
		if msg.Err != nil {
			return a, a.fail(msg.Err, "Could not submit your answers.")
		}
		return a, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: result.New(msg.Results)}
		}

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// fail moves to the failed phase unless the error demands logout.
func (a *AssessmentScreen) fail(err error, fallback string) tea.Cmd {
	if errors.Is(err, api.ErrUnauthorized) {
		return func() tea.Msg { return screen.SessionExpiredMsg{} }
	}
	if errors.Is(err, workflow.ErrInFlight) {
		return nil
	}
	a.phase = phaseFailed
	if m, ok := api.IsRejection(err); ok {
		a.errMsg = m
	} else {
		a.errMsg = fallback
	}
	return nil
}

func (a *AssessmentScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch a.phase {
	case phaseFailed:
		if msg.String() == "r" {
			a.phase = phaseStarting
			a.errMsg = ""
			return a, a.start()
		}
		return a, nil

	case phaseActive:
		switch msg.String() {
		case "left", "h":
			if a.current > 0 {
				a.current--
			}
			return a, nil
		case "right", "l":
			if a.current < len(a.choices)-1 {
				a.current++
			}
			return a, nil
		case "s":
			if a.allAnswered() {
				a.phase = phaseSubmitting
				return a, a.submit()
			}
			return a, nil
		}

		var cmd tea.Cmd
		a.choices[a.current], cmd = a.choices[a.current].Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *AssessmentScreen) View(width, height int) string {
	switch a.phase {
	case phaseStarting:
		return centered(width, height, theme.Hint.Render("Preparing your assessment..."))
	case phaseSubmitting:
		return centered(width, height, theme.Hint.Render("Submitting your answers..."))
	case phaseFailed:
		return centered(width, height,
			theme.Alert.Render(a.errMsg)+"\n\n"+theme.Hint.Render("Press r to retry"))
	}

	q := a.questions[a.current]

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
		"Question %d of %d  ·  %s", a.current+1, len(a.questions), q.Skill)) + "\n\n")
	b.WriteString(a.choices[a.current].View())
	b.WriteString("\n" + a.progressLine())

	if a.allAnswered() {
		b.WriteString("\n\n" + theme.ButtonActive.Render("  s ▸ Submit answers "))
	}

	return centered(width, height, theme.Card.Width(60).Render(b.String()))
}

// progressLine marks which questions already have an answer.
func (a *AssessmentScreen) progressLine() string {
	marks := make([]string, len(a.choices))
	for i, c := range a.choices {
		switch {
		case i == a.current:
			marks[i] = theme.Selected.Render("◆")
		case c.Answered():
			marks[i] = theme.Done.Render("●")
		default:
			marks[i] = theme.Locked.Render("○")
		}
	}
	return strings.Join(marks, " ")
}

func centered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
