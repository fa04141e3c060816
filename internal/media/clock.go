package media

import (
	"sync"
	"time"
)

// Clock models a playback head advancing in wall-clock time while
// playing. It backs the tracker when the client itself owns playback
// timing rather than an embedded player reporting positions.
type Clock struct {
	mu         sync.Mutex
	duration   float64
	offset     float64 // accumulated seconds while paused
	playing    bool
	resumedAt  time.Time
	now        func() time.Time
}

// NewClock creates a paused Clock for media of the given duration.
func NewClock(duration time.Duration) *Clock {
	return &Clock{
		duration: duration.Seconds(),
		now:      time.Now,
	}
}

// Position implements Source.
func (c *Clock) Position() (float64, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position(), c.duration
}

// position computes the current offset. Callers hold c.mu.
func (c *Clock) position() float64 {
	off := c.offset
	if c.playing {
		off += c.now().Sub(c.resumedAt).Seconds()
	}
	if off < 0 {
		return 0
	}
	if off > c.duration {
		return c.duration
	}
	return off
}

// Resume starts the head advancing.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		return
	}
	c.playing = true
	c.resumedAt = c.now()
}

// Pause freezes the head.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return
	}
	c.offset = c.position()
	c.playing = false
}

// Seek moves the head by delta seconds; backward seeks are legal and
// the tracker reports the regression as-is.
func (c *Clock) Seek(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.position()
	c.offset = cur + delta
	if c.offset < 0 {
		c.offset = 0
	}
	if c.offset > c.duration {
		c.offset = c.duration
	}
	if c.playing {
		c.resumedAt = c.now()
	}
}
