package canvas

import (
	"sync/atomic"

	"github.com/milk9111/tilecanvas/surface"
)

// scheduler coalesces render requests: any number of requests between two
// frames produce a single paint.
type scheduler struct {
	pending atomic.Bool
	paints  atomic.Uint64
}

func (s *scheduler) request() {
	s.pending.Store(true)
}

// take clears the pending flag and reports whether it was set.
func (s *scheduler) take() bool {
	return s.pending.Swap(false)
}

// RequestRender asks for a paint on the next frame.
func (c *Canvas) RequestRender() {
	c.sched.request()
}

// RenderPending reports whether a paint has been requested and not yet run.
func (c *Canvas) RenderPending() bool {
	return c.sched.pending.Load()
}

// Paints returns the number of paints run through Frame.
func (c *Canvas) Paints() uint64 {
	return c.sched.paints.Load()
}

// Frame is called once per display frame. It paints into s only when a
// render was requested since the last paint, and reports whether it did.
// The flag is cleared before painting, so requests made by render hooks
// schedule the following frame.
func (c *Canvas) Frame(s surface.Surface) bool {
	if !c.sched.take() {
		return false
	}
	c.sched.paints.Add(1)
	c.Render(s)
	return true
}
