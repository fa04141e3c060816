// Package app owns the root Bubble Tea model: session bootstrap,
// routing, the frame chrome, and the logout path.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/upskillhq/skillpath/internal/api"
	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/router"
	"github.com/upskillhq/skillpath/internal/screen"
	"github.com/upskillhq/skillpath/internal/screens/home"
	"github.com/upskillhq/skillpath/internal/screens/login"
	"github.com/upskillhq/skillpath/internal/screens/placeholder"
	"github.com/upskillhq/skillpath/internal/ui/layout"
	"github.com/upskillhq/skillpath/internal/workflow"
)

// Deps carries everything the UI needs, built once in cmd.
type Deps struct {
	Client  *api.Client
	Session *auth.SessionStore
	Orch    *workflow.Orchestrator
	Log     *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   Deps
	router *router.Router
	width  int
	height int
}

// newAppModel picks the landing screen from the hydrated session.
func newAppModel(deps Deps) AppModel {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	m := AppModel{deps: deps}
	m.router = router.New(m.landingScreen())
	m.router.SetGuard(m.authorize, m.loginScreen)
	return m
}

func (m AppModel) landingScreen() screen.Screen {
	cred := m.deps.Session.Credential()
	if cred == nil {
		return m.loginScreen()
	}
	if cred.Role == auth.RoleAdmin {
		return placeholder.New("Admin Console")
	}
	return home.New(m.deps.Orch, m.deps.Client, m.deps.Session)
}

func (m AppModel) loginScreen() screen.Screen {
	return login.New(m.deps.Client, m.deps.Session)
}

func (m AppModel) authorize(roles []auth.Role) auth.Decision {
	return auth.Authorize(m.deps.Session.Credential(), roles)
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case login.SuccessMsg:
		m.deps.Log.Info("signed in", zap.String("role", string(msg.Cred.Role)))
		return m, m.router.Reset(m.landingScreen())

	case screen.SessionExpiredMsg:
		m.deps.Log.Warn("session rejected by server")
		return m, m.signOut()

	case screen.SignOutMsg:
		return m, m.signOut()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if ei, ok := m.router.Active().(screen.EscInterceptor); ok && ei.InterceptEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// signOut clears the durable session and returns to the login screen.
func (m AppModel) signOut() tea.Cmd {
	if err := m.deps.Session.Clear(context.Background()); err != nil {
		m.deps.Log.Error("clear session", zap.Error(err))
	}
	return m.router.Reset(m.loginScreen())
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	userName := ""
	if cred := m.deps.Session.Credential(); cred != nil {
		userName = cred.EmployeeID
	}

	header := layout.RenderHeader(title, userName, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(hp.KeyHints(), footerHints...)
	} else if m.router.Depth() > 1 {
		footerHints = append([]layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}, footerHints...)
	} else {
		footerHints = append([]layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}, footerHints...)
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
