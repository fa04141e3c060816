package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

// guardedScreen additionally declares required roles.
type guardedScreen struct {
	stubScreen
	roles []auth.Role
}

func (s *guardedScreen) RequiredRoles() []auth.Role { return s.roles }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	s1.initRan = false
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
	if !s1.initRan {
		t.Error("expected Init() to re-run on the revealed screen")
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

func TestReset(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	r.Push(&stubScreen{title: "second"})
	r.Push(&stubScreen{title: "third"})

	login := &stubScreen{title: "login"}
	r.Reset(login)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after reset, got %d", r.Depth())
	}
	if r.Active().Title() != "login" {
		t.Errorf("expected active 'login', got %q", r.Active().Title())
	}
	if !login.initRan {
		t.Error("expected Init() to run on reset screen")
	}
}

func TestGuardDeniesProtectedScreen(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.SetGuard(
		func([]auth.Role) auth.Decision { return auth.RedirectTo(auth.LoginRoute) },
		func() screen.Screen { return &stubScreen{title: "login"} },
	)

	r.Push(&guardedScreen{stubScreen: stubScreen{title: "home"}})

	if r.Active().Title() != "login" {
		t.Errorf("expected denied push to land on 'login', got %q", r.Active().Title())
	}
}

func TestGuardAllowsProtectedScreen(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.SetGuard(
		func([]auth.Role) auth.Decision { return auth.Allow },
		func() screen.Screen { return &stubScreen{title: "login"} },
	)

	home := &guardedScreen{stubScreen: stubScreen{title: "home"}}
	r.Push(home)

	if r.Active().Title() != "home" {
		t.Errorf("expected allowed push to land on 'home', got %q", r.Active().Title())
	}
	if !home.initRan {
		t.Error("expected Init() to run on the allowed screen")
	}
}

func TestGuardIgnoresUnprotectedScreen(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.SetGuard(
		func([]auth.Role) auth.Decision { return auth.RedirectTo(auth.LoginRoute) },
		func() screen.Screen { return &stubScreen{title: "login"} },
	)

	r.Push(&stubScreen{title: "about"})

	if r.Active().Title() != "about" {
		t.Errorf("expected unprotected push to land on 'about', got %q", r.Active().Title())
	}
}

func TestGuardAppliesOnReplace(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.SetGuard(
		func([]auth.Role) auth.Decision { return auth.RedirectTo(auth.LoginRoute) },
		func() screen.Screen { return &stubScreen{title: "login"} },
	)

	r.Replace(&guardedScreen{stubScreen: stubScreen{title: "home"}})

	if r.Active().Title() != "login" {
		t.Errorf("expected denied replace to land on 'login', got %q", r.Active().Title())
	}
}
