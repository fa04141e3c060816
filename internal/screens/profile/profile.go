// Package profile shows the signed-in employee's record.
package profile

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/upskillhq/skillpath/internal/api"
	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/screen"
	"github.com/upskillhq/skillpath/internal/ui/theme"
)

type profileLoadedMsg struct {
	Employee *api.Employee
	Err      error
}

// ProfileScreen fetches and renders the employee profile.
type ProfileScreen struct {
	client  *api.Client
	session *auth.SessionStore

	employee *api.Employee
	loading  bool
	errMsg   string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.Protected = (*ProfileScreen)(nil)

// New creates a new ProfileScreen.
func New(client *api.Client, session *auth.SessionStore) *ProfileScreen {
	return &ProfileScreen{client: client, session: session, loading: true}
}

func (p *ProfileScreen) RequiredRoles() []auth.Role { return nil }

func (p *ProfileScreen) Init() tea.Cmd {
	cred := p.session.Credential()
	if cred == nil {
		return func() tea.Msg { return screen.SessionExpiredMsg{} }
	}
	client := p.client
	employeeID := cred.EmployeeID
	return func() tea.Msg {
		emp, err := client.Employee(context.Background(), employeeID)
		return profileLoadedMsg{Employee: emp, Err: err}
	}
}

func (p *ProfileScreen) Title() string {
	return "Profile"
}

func (p *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(profileLoadedMsg); ok {
		p.loading = false
		if msg.Err != nil {
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				return p, func() tea.Msg { return screen.SessionExpiredMsg{} }
			}
			p.errMsg = "Could not load your profile."
			return p, nil
		}
		p.employee = msg.Employee
	}
	return p, nil
}

func (p *ProfileScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Profile") + "\n\n")

	switch {
	case p.loading:
		b.WriteString(theme.Hint.Render("Loading..."))
	case p.errMsg != "":
		b.WriteString(theme.Alert.Render(p.errMsg))
	case p.employee != nil:
		label := lipgloss.NewStyle().Foreground(theme.TextDim)
		b.WriteString(label.Render("Name   ") + theme.Body.Render(p.employee.Name) + "\n")
		b.WriteString(label.Render("Email  ") + theme.Body.Render(p.employee.Email) + "\n")
		b.WriteString(label.Render("Role   ") + theme.Body.Render(p.employee.Role) + "\n")
	}

	card := theme.Card.Width(44).Render(b.String())
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}
