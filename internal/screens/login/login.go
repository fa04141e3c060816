// Package login renders the sign-in form and exchanges credentials for
// a session token.
package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/upskillhq/skillpath/internal/api"
	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/screen"
	"github.com/upskillhq/skillpath/internal/ui/components"
	"github.com/upskillhq/skillpath/internal/ui/layout"
	"github.com/upskillhq/skillpath/internal/ui/theme"
)

// SuccessMsg is emitted after the session is persisted; the app model
// decides the landing screen from the credential's role.
type SuccessMsg struct {
	Cred *auth.Credential
}

// loginDoneMsg carries the outcome of the login request.
type loginDoneMsg struct {
	Cred *auth.Credential
	Err  error
}

const (
	focusEmail = iota
	focusPassword
)

// LoginScreen collects email and password and signs the user in.
type LoginScreen struct {
	client  *api.Client
	session *auth.SessionStore

	email      components.TextInput
	password   components.TextInput
	focus      int
	submitting bool
	errMsg     string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a new LoginScreen.
func New(client *api.Client, session *auth.SessionStore) *LoginScreen {
	email := components.NewTextInput("you@company.com", 64)
	password := components.NewSecretInput("password", 64)
	return &LoginScreen{
		client:   client,
		session:  session,
		email:    email,
		password: password,
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.email.Focus()
}

func (l *LoginScreen) Title() string {
	return "Sign In"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		l.submitting = false
		if msg.Err != nil {
			if m, ok := api.IsRejection(msg.Err); ok {
				l.errMsg = m
			} else {
				l.errMsg = "Could not sign in. Check your connection and try again."
			}
			return l, nil
		}
		return l, func() tea.Msg { return SuccessMsg{Cred: msg.Cred} }

	case tea.KeyMsg:
		if l.submitting {
			return l, nil
		}
		switch msg.String() {
		case "tab", "down":
			return l, l.setFocus(l.focus + 1)
		case "shift+tab", "up":
			return l, l.setFocus(l.focus - 1)
		case "enter":
			if l.focus == focusEmail {
				return l, l.setFocus(focusPassword)
			}
			return l, l.submit()
		}
	}

	var cmd tea.Cmd
	if l.focus == focusEmail {
		l.email, cmd = l.email.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return l, cmd
}

func (l *LoginScreen) setFocus(focus int) tea.Cmd {
	if focus < focusEmail {
		focus = focusEmail
	}
	if focus > focusPassword {
		focus = focusPassword
	}
	l.focus = focus
	if focus == focusEmail {
		l.password.Blur()
		return l.email.Focus()
	}
	l.email.Blur()
	return l.password.Focus()
}

func (l *LoginScreen) submit() tea.Cmd {
	email := strings.TrimSpace(l.email.Value())
	password := l.password.Value()
	if email == "" || password == "" {
		l.errMsg = "Enter your email and password."
		return nil
	}

	l.submitting = true
	l.errMsg = ""

	client := l.client
	session := l.session
	return func() tea.Msg {
		ctx := context.Background()
		pair, err := client.Login(ctx, email, password)
		if err != nil {
			return loginDoneMsg{Err: err}
		}
		cred, err := session.SetCredential(ctx, pair.Access)
		if err != nil {
			return loginDoneMsg{Err: err}
		}
		return loginDoneMsg{Cred: cred}
	}
}

func (l *LoginScreen) View(width, height int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Skillpath") + "\n")
	b.WriteString(theme.Subtitle.Render("Sign in to continue your learning path") + "\n\n")
	b.WriteString(label.Render("Email") + "\n")
	b.WriteString(l.email.View() + "\n\n")
	b.WriteString(label.Render("Password") + "\n")
	b.WriteString(l.password.View() + "\n")

	if l.submitting {
		b.WriteString("\n" + theme.Hint.Render("Signing in..."))
	}
	if l.errMsg != "" {
		b.WriteString("\n" + theme.Alert.Render(l.errMsg))
	}

	card := theme.Card.Width(48).Render(b.String())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}
