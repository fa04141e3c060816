// Package learningpath lists the recommended learning items and plays
// their videos. Starting an item is optimistic: the status flips
// immediately and reverts if the server rejects it.
package learningpath

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/upskillhq/skillpath/internal/api"
	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/media"
	"github.com/upskillhq/skillpath/internal/path"
	"github.com/upskillhq/skillpath/internal/screen"
	"github.com/upskillhq/skillpath/internal/ui/components"
	"github.com/upskillhq/skillpath/internal/ui/layout"
	"github.com/upskillhq/skillpath/internal/ui/theme"
	"github.com/upskillhq/skillpath/internal/workflow"
)

const seekStep = 10 * time.Second

// fallbackDuration is used when an item carries no estimate.
const fallbackDuration = 10 * time.Minute

type itemsLoadedMsg struct {
	Items []path.Item
	Err   error
}

type itemStartedMsg struct {
	ItemID int
	Err    error
}

type completeDoneMsg struct {
	ItemID int
	Err    error
}

// progressSampleMsg crosses from the tracker goroutine into the UI.
type progressSampleMsg struct {
	Sample media.Sample
}

// videoCompletedMsg fires once when the watch threshold is crossed.
type videoCompletedMsg struct {
	ItemID int
}

// playerClosedMsg wakes the event listener during teardown.
type playerClosedMsg struct{}

// player is the state of the open video pane. At most one exists, and
// its tracker is closed before another item is opened.
type player struct {
	item       path.Item
	clock      *media.Clock
	tracker    *media.Tracker
	events     chan tea.Msg
	lastSample media.Sample
}

// LearningPathScreen renders the item list and the video player.
type LearningPathScreen struct {
	orch *workflow.Orchestrator

	items    []path.Item
	selected int
	loading  bool
	errMsg   string

	player *player
}

var _ screen.Screen = (*LearningPathScreen)(nil)
var _ screen.Protected = (*LearningPathScreen)(nil)
var _ screen.KeyHintProvider = (*LearningPathScreen)(nil)
var _ screen.EscInterceptor = (*LearningPathScreen)(nil)

// New creates a new LearningPathScreen.
func New(orch *workflow.Orchestrator) *LearningPathScreen {
	return &LearningPathScreen{orch: orch, loading: true}
}

func (l *LearningPathScreen) RequiredRoles() []auth.Role { return nil }

// InterceptEsc keeps esc inside the screen while the player is open.
func (l *LearningPathScreen) InterceptEsc() bool { return l.player != nil }

func (l *LearningPathScreen) Init() tea.Cmd {
	l.teardownPlayer()
	l.loading = true
	return l.load()
}

func (l *LearningPathScreen) Title() string {
	return "Learning Path"
}

func (l *LearningPathScreen) KeyHints() []layout.KeyHint {
	if l.player != nil {
		return []layout.KeyHint{
			{Key: "Space", Description: "Play/Pause"},
			{Key: "←→", Description: "Seek 10s"},
			{Key: "d", Description: "Mark done"},
			{Key: "Esc", Description: "Close"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (l *LearningPathScreen) load() tea.Cmd {
	orch := l.orch
	return func() tea.Msg {
		items, err := orch.LoadLearningPath(context.Background())
		return itemsLoadedMsg{Items: items, Err: err}
	}
}

func (l *LearningPathScreen) startItem(id int) tea.Cmd {
	orch := l.orch
	return func() tea.Msg {
		return itemStartedMsg{ItemID: id, Err: orch.StartItem(context.Background(), id)}
	}
}

func (l *LearningPathScreen) completeItem(id int) tea.Cmd {
	orch := l.orch
	return func() tea.Msg {
		return completeDoneMsg{ItemID: id, Err: orch.CompleteItem(context.Background(), id)}
	}
}

// openPlayer builds the clock-driven playback pane for one item.
func (l *LearningPathScreen) openPlayer(item path.Item) tea.Cmd {
	l.teardownPlayer()

	duration := time.Duration(item.EstimatedMinutes) * time.Minute
	if duration <= 0 {
		duration = fallbackDuration
	}

	events := make(chan tea.Msg, 16)
	emit := func(msg tea.Msg) {
		select {
		case events <- msg:
		default:
		}
	}

	clock := media.NewClock(duration)
	itemID := item.ID
	tracker := media.NewTracker(
		media.ExtractVideoID(item.MediaRef),
		clock,
		func(s media.Sample) { emit(progressSampleMsg{Sample: s}) },
		func() { emit(videoCompletedMsg{ItemID: itemID}) },
	)

	l.player = &player{
		item:    item,
		clock:   clock,
		tracker: tracker,
		events:  events,
	}
	return l.listen()
}

// listen forwards one tracker event into the update loop.
func (l *LearningPathScreen) listen() tea.Cmd {
	events := l.player.events
	return func() tea.Msg {
		return <-events
	}
}

// teardownPlayer stops the sampler before the pane goes away.
func (l *LearningPathScreen) teardownPlayer() {
	if l.player == nil {
		return
	}
	l.player.tracker.Close()
	l.player.clock.Pause()
	select {
	case l.player.events <- playerClosedMsg{}:
	default:
	}
	l.player = nil
}

func (l *LearningPathScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		l.loading = false
		if msg.Err != nil {
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				return l, func() tea.Msg { return screen.SessionExpiredMsg{} }
			}
			l.errMsg = "Could not load your learning path. Press r to retry."
			return l, nil
		}
		l.errMsg = ""
		l.items = msg.Items
		if l.selected >= len(l.items) {
			l.selected = 0
		}
		return l, nil

	case itemStartedMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				return l, func() tea.Msg { return screen.SessionExpiredMsg{} }
			}
			// The optimistic status already reverted; close the pane so
			// the list reflects it.
			l.teardownPlayer()
			if m, ok := api.IsRejection(msg.Err); ok {
				l.errMsg = m
			} else {
				l.errMsg = "Could not start this item. Try again."
			}
		}
		l.syncItems()
		return l, nil

	case progressSampleMsg:
		if l.player == nil {
			return l, nil
		}
		l.player.lastSample = msg.Sample
		return l, l.listen()

	case videoCompletedMsg:
		if l.player == nil {
			return l, nil
		}
		return l, tea.Batch(l.completeItem(msg.ItemID), l.listen())

	case playerClosedMsg:
		return l, nil

	case completeDoneMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				return l, func() tea.Msg { return screen.SessionExpiredMsg{} }
			}
			l.errMsg = "Could not record the completion."
			return l, nil
		}
		l.errMsg = ""
		l.syncItems()
		return l, nil

	case tea.KeyMsg:
		return l.handleKey(msg)
	}

	return l, nil
}

// syncItems refreshes the list from the shared item store.
func (l *LearningPathScreen) syncItems() {
	l.items = l.orch.Items().Items()
	if l.player != nil {
		if it, ok := l.orch.Items().Get(l.player.item.ID); ok {
			l.player.item = it
		}
	}
}

func (l *LearningPathScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if l.player != nil {
		return l.handlePlayerKey(msg)
	}

	switch msg.String() {
	case "up", "k":
		if l.selected > 0 {
			l.selected--
		}
	case "down", "j":
		if l.selected < len(l.items)-1 {
			l.selected++
		}
	case "r":
		if l.errMsg != "" {
			l.loading = true
			l.errMsg = ""
			return l, l.load()
		}
	case "enter":
		if l.selected < 0 || l.selected >= len(l.items) {
			return l, nil
		}
		item := l.items[l.selected]
		cmds := []tea.Cmd{l.openPlayer(item)}
		if item.Status == path.StatusNotStarted {
			cmds = append(cmds, l.startItem(item.ID))
			l.syncItems()
		}
		return l, tea.Batch(cmds...)
	}
	return l, nil
}

func (l *LearningPathScreen) handlePlayerKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	p := l.player
	switch msg.String() {
	case "esc":
		l.teardownPlayer()
		return l, nil
	case " ":
		if p.tracker.State() == media.StatePlaying {
			p.clock.Pause()
			p.tracker.Pause()
		} else {
			p.clock.Resume()
			p.tracker.Play()
		}
		return l, nil
	case "left":
		p.clock.Seek(-seekStep.Seconds())
		return l, nil
	case "right":
		p.clock.Seek(seekStep.Seconds())
		return l, nil
	case "d":
		return l, l.completeItem(p.item.ID)
	}
	return l, nil
}

func (l *LearningPathScreen) View(width, height int) string {
	if l.player != nil {
		return l.viewPlayer(width, height)
	}
	return l.viewList(width, height)
}

func (l *LearningPathScreen) viewList(width, height int) string {
	if l.loading {
		return centered(width, height, theme.Hint.Render("Loading your learning path..."))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Learning Path") + "\n\n")

	if len(l.items) == 0 && l.errMsg == "" {
		b.WriteString(theme.Subtitle.Render("No items yet.") + "\n")
	}

	for i, item := range l.items {
		line := fmt.Sprintf("%s %s  %s · %dm",
			statusGlyph(item.Status), item.Title, item.Skill, item.EstimatedMinutes)
		if i == l.selected {
			b.WriteString(theme.Selected.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+line) + "\n")
		}
	}

	if l.errMsg != "" {
		b.WriteString("\n" + theme.Alert.Render(l.errMsg))
	}

	return centered(width, height, theme.Card.Width(64).Render(b.String()))
}

func (l *LearningPathScreen) viewPlayer(width, height int) string {
	p := l.player
	offset, duration := p.clock.Position()

	var b strings.Builder
	b.WriteString(theme.Title.Render(p.item.Title) + "\n")
	b.WriteString(theme.Subtitle.Render(p.item.Skill) + "\n\n")

	bar := components.NewProgressBar("", offset/duration, false, 48)
	b.WriteString(bar.View() + "\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%s / %s", clockText(offset), clockText(duration))))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("   %s", p.tracker.State())) + "\n")

	if p.item.Status == path.StatusDone {
		b.WriteString("\n" + theme.Done.Render("✔ Completed"))
	} else if p.lastSample.Percent > 0 {
		b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("%d%% watched", p.lastSample.Percent)))
	}

	if l.errMsg != "" {
		b.WriteString("\n" + theme.Alert.Render(l.errMsg))
	}

	return centered(width, height, theme.Card.Width(56).Render(b.String()))
}

func statusGlyph(s path.Status) string {
	switch s {
	case path.StatusDone:
		return theme.Done.Render("✔")
	case path.StatusInProgress:
		return theme.Selected.Render("▶")
	default:
		return theme.Locked.Render("○")
	}
}

func clockText(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func centered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
