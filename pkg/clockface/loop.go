package clockface

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kjkrol/glclock/pkg/clock"
)

// DefaultTick is the wall-clock interval between clock samples.
const DefaultTick = time.Second

// Driver selects how redraws are triggered.
type Driver int

const (
	// IntervalDriver samples the clock once per tick; refreshes in between
	// redraw the sample taken at the last tick.
	IntervalDriver Driver = iota
	// FrameDriver samples the clock on every refresh.
	FrameDriver
)

func (d Driver) String() string {
	switch d {
	case IntervalDriver:
		return "interval"
	case FrameDriver:
		return "frame"
	default:
		return fmt.Sprintf("Driver(%d)", int(d))
	}
}

func ParseDriver(s string) (Driver, error) {
	switch s {
	case "", "interval":
		return IntervalDriver, nil
	case "frame":
		return FrameDriver, nil
	default:
		return 0, fmt.Errorf("unknown driver %q (want interval or frame)", s)
	}
}

// Drawer draws one clock sample.
type Drawer interface {
	Draw(s clock.Sample)
}

// Loop decides when to sample the clock and when to redraw. It holds no
// goroutines; the surface calls Step, or Tick and Frame, from the thread
// that owns the GL context.
type Loop struct {
	drawer   Drawer
	clock    clock.Source
	sched    clock.Source // paces Step; never the displayed time
	interval time.Duration
	driver   Driver
	logger   *slog.Logger

	started  bool
	ticked   bool
	nextTick time.Time
	sample   clock.Sample
	ticks    uint64
	frames   uint64
}

func NewLoop(drawer Drawer, src clock.Source, interval time.Duration, driver Driver, logger *slog.Logger) *Loop {
	if src == nil {
		src = clock.System
	}
	if interval <= 0 {
		interval = DefaultTick
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		drawer:   drawer,
		clock:    src,
		sched:    clock.Monotonic,
		interval: interval,
		driver:   driver,
		logger:   logger,
	}
}

// SetScheduler replaces the time source Step paces ticks by. It defaults to
// clock.Monotonic, so wall-clock steps move the displayed sample but not the
// tick cadence.
func (l *Loop) SetScheduler(src clock.Source) {
	if src == nil {
		src = clock.Monotonic
	}
	l.sched = src
}

// TickInterval is the period at which Tick must be called, or zero when the
// loop only needs per-refresh Frame calls.
func (l *Loop) TickInterval() time.Duration {
	if l.driver == FrameDriver {
		return 0
	}
	return l.interval
}

func (l *Loop) Driver() Driver {
	return l.driver
}

// Sample returns the sample drawn most recently.
func (l *Loop) Sample() clock.Sample {
	return l.sample
}

// Stats returns the number of ticks and refresh redraws performed so far.
func (l *Loop) Stats() (ticks, frames uint64) {
	return l.ticks, l.frames
}

// Tick samples the clock and draws it.
func (l *Loop) Tick() {
	l.sample = clock.Read(l.clock)
	l.ticked = true
	l.ticks++
	l.drawer.Draw(l.sample)
	l.logger.Debug("tick", "sample", l.sample.String())
}

// Frame handles one display refresh. With the interval driver nothing is
// drawn before the first tick.
func (l *Loop) Frame() {
	if l.driver == FrameDriver {
		l.sample = clock.Read(l.clock)
		l.ticked = true
	} else if !l.ticked {
		return
	}
	l.frames++
	l.drawer.Draw(l.sample)
}

// Step runs one iteration for hosts that serialize both triggers on a single
// frame loop: a due tick replaces the refresh redraw. Ticks fall on a fixed
// grid of the interval from the first Step; a refresh that notices a tick
// late does not shift the ticks after it.
func (l *Loop) Step() {
	now := l.sched.Now()
	if !l.started {
		l.started = true
		l.nextTick = now.Add(l.interval)
	}
	if l.nextTick.Sub(now) > l.interval {
		// The scheduler clock went backwards.
		l.nextTick = now.Add(l.interval)
	}
	if l.driver == IntervalDriver && !now.Before(l.nextTick) {
		l.Tick()
		l.nextTick = l.nextTick.Add(l.interval)
		if !now.Before(l.nextTick) {
			// More than a whole interval behind: skip the missed ticks
			// instead of drawing them back to back.
			l.nextTick = now.Add(l.interval)
		}
		return
	}
	l.Frame()
}
