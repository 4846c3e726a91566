// Package playback cycles a preview index through a sequence of frames at a
// configurable frame rate.
//
// The controller is driven by a Scheduler: a host mechanism which calls back
// once per display refresh (requestAnimationFrame in a browser, a ticker on
// a server). The time between callbacks varies and is measured, not assumed.
//
// A Controller is not safe for concurrent use. Hosts serialize calls to it
// together with all other edits of the animation.
package playback

import (
	"math"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// DefaultFrameRate is the frame rate of a new Controller, in frames per
// second.
const DefaultFrameRate = 10

// ErrInvalidFrameRate is returned for frame rates which are not positive
// numbers.
var ErrInvalidFrameRate = errors.New("invalid frame rate")

// State is the running state of a Controller.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	}
	return "bad value"
}

// FrameCounter reports the current number of frames in the animation.
//
// *frames.Store implements it.
type FrameCounter interface {
	Len() int
}

// Scheduler invokes a requested callback at its next opportunity, passing
// the time elapsed since an arbitrary fixed origin.
type Scheduler interface {
	RequestFrame(cb func(now time.Duration))
	Now() time.Duration
}

// Controller holds the playback state: whether the animation is running,
// the preview index and the time accumulated towards the next advance.
//
// The preview index is independent of the frame selected for editing, and
// every Play restarts it from the first frame.
type Controller struct {
	frames FrameCounter
	sched  Scheduler

	state State
	fps   float64
	acc   time.Duration
	index int
	last  time.Duration

	// Incremented by every Play, so callbacks requested by an earlier
	// run are dropped.
	generation uint64

	redraw func(index int)
}

// New creates a stopped controller cycling over frames.
func New(frames FrameCounter, sched Scheduler) *Controller {
	return &Controller{
		frames: frames,
		sched:  sched,
		fps:    DefaultFrameRate,
	}
}

// OnRedraw registers fn to be called after every tick with the preview
// index the preview view should show.
func (c *Controller) OnRedraw(fn func(index int)) {
	c.redraw = fn
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Running() bool {
	return c.state == Running
}

func (c *Controller) FrameRate() float64 {
	return c.fps
}

// SetFrameRate changes the frame rate. The change affects the next
// threshold comparison; time already accumulated is kept as is.
func (c *Controller) SetFrameRate(fps float64) error {
	if math.IsNaN(fps) || math.IsInf(fps, 0) || fps <= 0 {
		return errors.Wrapf(ErrInvalidFrameRate, "%v", fps)
	}
	c.fps = fps
	return nil
}

// Accumulated returns the time accumulated since the last advance.
func (c *Controller) Accumulated() time.Duration {
	return c.acc
}

// PreviewIndex returns the preview index, reduced to a valid frame index.
func (c *Controller) PreviewIndex() int {
	n := c.frames.Len()
	if n <= 0 {
		return 0
	}
	return c.index % n
}

// DisplayIndex returns the frame a preview view should show: the preview
// index while running, otherwise current, the frame selected for editing.
func (c *Controller) DisplayIndex(current int) int {
	if c.state == Running {
		return c.PreviewIndex()
	}
	return current
}

// threshold returns the time, in milliseconds, which has to be exceeded
// before the preview index advances.
func (c *Controller) threshold() float64 {
	return 1000 / c.fps
}

// Play starts the animation from the first frame. It does nothing if the
// animation is already running.
func (c *Controller) Play() {
	if c.state == Running {
		return
	}
	c.state = Running
	c.acc = 0
	c.index = 0
	c.last = c.sched.Now()
	c.generation++
	glog.V(1).Infof("playback: playing at %g fps", c.fps)
	c.schedule()
}

// Stop halts the animation. The preview index keeps its value but is no
// longer advanced.
func (c *Controller) Stop() {
	if c.state == Stopped {
		return
	}
	c.state = Stopped
	glog.V(1).Infof("playback: stopped at preview index %d", c.index)
}

// Toggle plays a stopped animation and stops a running one.
func (c *Controller) Toggle() {
	if c.state == Running {
		c.Stop()
	} else {
		c.Play()
	}
}

func (c *Controller) schedule() {
	gen := c.generation
	c.sched.RequestFrame(func(now time.Duration) {
		c.tick(gen, now)
	})
}

func (c *Controller) tick(gen uint64, now time.Duration) {
	if c.state != Running || gen != c.generation {
		return
	}
	delta := now - c.last
	c.last = now

	c.Advance(delta)

	if c.redraw != nil {
		c.redraw(c.index)
	}
	if c.state == Running {
		c.schedule()
	}
}

// Advance adds delta to the accumulated time. Once the accumulated time
// exceeds one frame period, it is reset and the preview index moves to the
// next frame, wrapping after the last one. Advance reports whether the
// index moved.
func (c *Controller) Advance(delta time.Duration) bool {
	n := c.frames.Len()
	if n <= 0 {
		return false
	}
	// The animation may have lost frames since the last tick.
	if c.index >= n {
		c.index %= n
	}

	c.acc += delta
	if float64(c.acc)/float64(time.Millisecond) > c.threshold() {
		c.acc = 0
		c.index = (c.index + 1) % n
		glog.V(2).Infof("playback: advanced to frame %d of %d", c.index, n)
		return true
	}
	return false
}
