// Package media tracks real-time consumption of one playing learning
// item: it samples the playback position at a fixed wall-clock cadence,
// reports percent-complete, and raises a one-shot completion event once
// the watched fraction crosses the completion threshold.
package media

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// SampleInterval is the wall-clock sampling cadence. Wall clock, not
	// media time, so sampling stays correct across playback-rate changes.
	SampleInterval = time.Second

	// CompletionThreshold is the watched fraction that marks an item
	// effectively complete without sitting through trailing credits.
	CompletionThreshold = 0.90
)

// State is the tracker's lifecycle state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// Sample is one ephemeral observation of playback position.
type Sample struct {
	Offset   float64 // seconds
	Duration float64 // seconds
	Percent  int     // floor(offset/duration*100), clamped to [0,100]
}

// Source reports the current playback position.
type Source interface {
	// Position returns the current offset and total duration in seconds.
	Position() (offset, duration float64)
}

// Tracker monitors one learning item's playback. Completed is terminal:
// a rewatch needs a new Tracker instance.
type Tracker struct {
	id         string
	videoID    string
	src        Source
	interval   time.Duration
	onProgress func(Sample)
	onComplete func()

	mu        sync.Mutex
	state     State
	completed bool // one-shot guard for the completion event
	stop      chan struct{}
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithInterval overrides the sampling cadence (tests).
func WithInterval(d time.Duration) Option {
	return func(t *Tracker) { t.interval = d }
}

// NewTracker creates a Tracker for the given video. onProgress receives
// every sample; onComplete fires at most once. Both are invoked from
// the sampling goroutine.
func NewTracker(videoID string, src Source, onProgress func(Sample), onComplete func(), opts ...Option) *Tracker {
	t := &Tracker{
		id:         uuid.NewString(),
		videoID:    videoID,
		src:        src,
		interval:   SampleInterval,
		onProgress: onProgress,
		onComplete: onComplete,
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the tracker instance id.
func (t *Tracker) ID() string { return t.id }

// VideoID returns the identifier of the tracked video.
func (t *Tracker) VideoID() string { return t.videoID }

// State returns the current lifecycle state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Play transitions into Playing and starts the sampler. Resuming from
// Paused is legal; Completed is terminal and Play is then a no-op.
func (t *Tracker) Play() {
	t.mu.Lock()
	if t.state == StateCompleted || t.state == StatePlaying {
		t.mu.Unlock()
		return
	}
	t.state = StatePlaying
	stop := make(chan struct{})
	t.stop = stop
	t.mu.Unlock()

	go t.sampleLoop(stop)
}

// Pause stops sampling and releases the timer. Position is retained so
// a later Play resumes tracking.
func (t *Tracker) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StatePlaying {
		return
	}
	t.state = StatePaused
	t.releaseSampler()
}

// Close tears the tracker down (stream closed or view left). Sampling
// stops and no further events fire.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateCompleted {
		return
	}
	t.state = StateIdle
	t.releaseSampler()
}

// releaseSampler cancels the sampling goroutine. Callers hold t.mu.
func (t *Tracker) releaseSampler() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *Tracker) sampleLoop(stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if done := t.sample(); done {
				return
			}
		}
	}
}

// sample takes one observation, emits progress, and checks the
// completion threshold. Returns true when sampling must stop.
func (t *Tracker) sample() bool {
	offset, duration := t.src.Position()
	if duration <= 0 {
		return false
	}

	s := Sample{
		Offset:   offset,
		Duration: duration,
		Percent:  percentOf(offset, duration),
	}

	// The consumer tolerates repeated values and backward seeks; no
	// monotonicity clamping here.
	if t.onProgress != nil {
		t.onProgress(s)
	}

	if offset/duration < CompletionThreshold {
		return false
	}

	t.mu.Lock()
	if t.completed {
		t.mu.Unlock()
		return true
	}
	t.completed = true
	t.state = StateCompleted
	t.releaseSampler()
	t.mu.Unlock()

	if t.onComplete != nil {
		t.onComplete()
	}
	return true
}

// percentOf computes floor(offset/duration*100) clamped to [0,100].
func percentOf(offset, duration float64) int {
	p := int(math.Floor(offset / duration * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
