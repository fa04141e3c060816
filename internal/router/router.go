package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/screen"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg requests the router to replace the active screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router manages a stack of screens. Screens implementing
// screen.Protected are checked against the guard before they land on
// the stack; a denied screen is swapped for the login screen.
type Router struct {
	stack     []screen.Screen
	authorize func(roles []auth.Role) auth.Decision
	login     func() screen.Screen
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack: []screen.Screen{initial},
	}
}

// SetGuard installs the access check and the login screen used when a
// protected screen is denied. Without a guard every screen is allowed.
func (r *Router) SetGuard(authorize func(roles []auth.Role) auth.Decision, login func() screen.Screen) {
	r.authorize = authorize
	r.login = login
}

// guard returns the screen that should actually land on the stack.
func (r *Router) guard(s screen.Screen) screen.Screen {
	if r.authorize == nil {
		return s
	}
	p, ok := s.(screen.Protected)
	if !ok {
		return s
	}
	if d := r.authorize(p.RequiredRoles()); !d.Allowed {
		return r.login()
	}
	return s
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	s = r.guard(s)
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen and re-runs Init on the screen it
// reveals, so stale state refreshes on the way back. No-op if stack
// depth would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return r.Active().Init()
}

// Replace swaps the active screen in place, preserving stack depth,
// and calls the new screen's Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	s = r.guard(s)
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Reset discards the whole stack and starts over from a single screen.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	r.stack = []screen.Screen{s}
	return s.Init()
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
