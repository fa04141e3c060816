package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Protected is an optional interface for screens that require an
// authenticated session. RequiredRoles narrows access further; an
// empty slice means any authenticated user.
type Protected interface {
	RequiredRoles() []auth.Role
}

// EscInterceptor is an optional interface for screens that consume
// the escape key themselves, e.g. to close an inner pane, instead of
// letting it pop the screen.
type EscInterceptor interface {
	InterceptEsc() bool
}

// SessionExpiredMsg is emitted when the server rejects the session
// token. The app clears the session and returns to the login screen.
type SessionExpiredMsg struct{}

// SignOutMsg is emitted when the user signs out deliberately.
type SignOutMsg struct{}
