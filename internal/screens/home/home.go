// Package home renders the main menu. Entries unlock as the workflow
// advances; locked entries show why they are unavailable.
package home

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/upskillhq/skillpath/internal/api"
	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/router"
	"github.com/upskillhq/skillpath/internal/screen"
	"github.com/upskillhq/skillpath/internal/screens/assessment"
	"github.com/upskillhq/skillpath/internal/screens/dashboard"
	"github.com/upskillhq/skillpath/internal/screens/learningpath"
	"github.com/upskillhq/skillpath/internal/screens/profile"
	"github.com/upskillhq/skillpath/internal/ui/components"
	"github.com/upskillhq/skillpath/internal/ui/theme"
	"github.com/upskillhq/skillpath/internal/workflow"
)

// stepRefreshedMsg carries the result of a workflow position fetch.
type stepRefreshedMsg struct {
	Step workflow.Step
	Err  error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	orch    *workflow.Orchestrator
	client  *api.Client
	session *auth.SessionStore

	menu    components.Menu
	loading bool
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Protected = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(orch *workflow.Orchestrator, client *api.Client, session *auth.SessionStore) *HomeScreen {
	h := &HomeScreen{
		orch:    orch,
		client:  client,
		session: session,
		loading: true,
	}
	h.menu = components.NewMenu(h.buildMenu())
	return h
}

func (h *HomeScreen) RequiredRoles() []auth.Role { return nil }

func (h *HomeScreen) Init() tea.Cmd {
	return h.refresh()
}

func (h *HomeScreen) refresh() tea.Cmd {
	orch := h.orch
	return func() tea.Msg {
		step, err := orch.RefreshStep(context.Background())
		return stepRefreshedMsg{Step: step, Err: err}
	}
}

// buildMenu derives the menu from the current workflow position. The
// server's reported step alone decides what is reachable.
func (h *HomeScreen) buildMenu() []components.MenuItem {
	res := h.orch.Resolution()

	assessmentItem := components.MenuItem{
		Label:    "ASSESSMENT",
		Disabled: !res.Permits(workflow.ActionStartAssessment),
	}
	if assessmentItem.Disabled {
		assessmentItem.Hint = res.StatusText
	} else {
		assessmentItem.Action = func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: assessment.New(h.orch)}
			}
		}
	}

	pathUnlocked := res.Permits(workflow.ActionGenerateLearningPath) ||
		res.Permits(workflow.ActionViewLearningPath)
	pathItem := components.MenuItem{
		Label:    "LEARNING PATH",
		Disabled: !pathUnlocked,
	}
	if pathItem.Disabled {
		pathItem.Hint = "Complete the assessment first"
	} else {
		pathItem.Action = func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: learningpath.New(h.orch)}
			}
		}
	}

	return []components.MenuItem{
		{Label: "DASHBOARD", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: dashboard.New(h.orch)}
			}
		}},
		assessmentItem,
		pathItem,
		{Label: "PROFILE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: profile.New(h.client, h.session)}
			}
		}},
		{Label: "SIGN OUT", Action: func() tea.Cmd {
			return func() tea.Msg { return screen.SignOutMsg{} }
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stepRefreshedMsg:
		h.loading = false
		if msg.Err != nil {
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				return h, func() tea.Msg { return screen.SessionExpiredMsg{} }
			}
			h.errMsg = "Could not load your progress. Press r to retry."
			return h, nil
		}
		h.errMsg = ""
		h.menu = components.NewMenu(h.buildMenu())
		return h, nil

	case tea.KeyMsg:
		if msg.String() == "r" && h.errMsg != "" {
			h.loading = true
			h.errMsg = ""
			return h, h.refresh()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("SKILLPATH"))
	sections = append(sections, theme.Subtitle.Width(width).Render(h.statusLine()))
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) statusLine() string {
	if h.loading {
		return "Loading your progress..."
	}
	if h.errMsg != "" {
		return h.errMsg
	}
	return h.orch.Resolution().StatusText
}

func (h *HomeScreen) Title() string {
	return "Home"
}
