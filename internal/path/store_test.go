package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{ID: 1, Title: "Intro to Go", Skill: "golang", Status: StatusNotStarted},
		{ID: 2, Title: "SQL Basics", Skill: "sql", Status: StatusNotStarted},
		{ID: 3, Title: "Docker", Skill: "devops", Status: StatusDone},
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"NOT_STARTED", StatusNotStarted},
		{"IN_PROGRESS", StatusInProgress},
		{"DONE", StatusDone},
		{"", StatusNotStarted},
		{"SOMETHING_NEW", StatusNotStarted},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseStatus(tt.in), tt.in)
	}
}

func TestStatusStringRoundTrip(t *testing.T) {
	for _, st := range []Status{StatusNotStarted, StatusInProgress, StatusDone} {
		assert.Equal(t, st, ParseStatus(st.String()))
	}
}

func TestOptimisticStartThenRollback(t *testing.T) {
	s := NewStore()
	s.Load(testItems())

	prev, ok := s.SetStatus(1, StatusInProgress)
	require.True(t, ok)
	assert.Equal(t, StatusNotStarted, prev)

	got, _ := s.Get(1)
	assert.Equal(t, StatusInProgress, got.Status)

	// Remote start failed: restore exactly the captured previous status.
	s.Rollback(1, prev)
	got, _ = s.Get(1)
	assert.Equal(t, StatusNotStarted, got.Status)

	// No other item affected.
	other, _ := s.Get(2)
	assert.Equal(t, StatusNotStarted, other.Status)
	done, _ := s.Get(3)
	assert.Equal(t, StatusDone, done.Status)
}

func TestRollbackNeverRegressesDone(t *testing.T) {
	s := NewStore()
	s.Load(testItems())

	prev, ok := s.SetStatus(2, StatusInProgress)
	require.True(t, ok)

	// Remote confirmation lands before the stale rollback arrives.
	_, ok = s.SetStatus(2, StatusDone)
	require.True(t, ok)

	s.Rollback(2, prev)
	got, _ := s.Get(2)
	assert.Equal(t, StatusDone, got.Status)
}

func TestConcurrentUpdatesToDifferentItemsAreIndependent(t *testing.T) {
	s := NewStore()
	s.Load(testItems())

	prev1, _ := s.SetStatus(1, StatusInProgress)
	prev2, _ := s.SetStatus(2, StatusInProgress)

	// Item 1 fails and rolls back; item 2 keeps its optimistic state.
	s.Rollback(1, prev1)

	got1, _ := s.Get(1)
	got2, _ := s.Get(2)
	assert.Equal(t, StatusNotStarted, got1.Status)
	assert.Equal(t, StatusInProgress, got2.Status)
	assert.Equal(t, StatusNotStarted, prev2)
}

func TestSetStatusUnknownID(t *testing.T) {
	s := NewStore()
	s.Load(testItems())

	_, ok := s.SetStatus(99, StatusInProgress)
	assert.False(t, ok)

	s.Rollback(99, StatusNotStarted) // no-op, must not panic
}

func TestLoadReplacesSnapshot(t *testing.T) {
	s := NewStore()
	s.Load(testItems())
	s.SetStatus(1, StatusInProgress)

	// A reload from the server is canonical and discards local state.
	s.Load([]Item{{ID: 1, Title: "Intro to Go", Status: StatusDone}})

	require.Equal(t, 1, s.Len())
	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, StatusDone, got.Status)

	_, ok = s.Get(2)
	assert.False(t, ok)
}

func TestItemsReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Load(testItems())

	items := s.Items()
	items[0].Status = StatusDone

	got, _ := s.Get(1)
	assert.Equal(t, StatusNotStarted, got.Status)
}
