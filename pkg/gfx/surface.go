package gfx

import (
	"context"
	"time"
)

// Driver receives the redraw triggers. Every call happens on the thread that
// owns the GL context.
type Driver interface {
	// Step is called once per display refresh by hosts that run their own
	// frame loop.
	Step()
	// Tick is called every TickInterval by hosts with a timer facility.
	Tick()
	// Frame is called once per display refresh by hosts with a timer facility.
	Frame()
	// TickInterval returns zero when no timer is needed.
	TickInterval() time.Duration
}

// Surface is a window or canvas with a current rendering context.
type Surface interface {
	Context() Context
	Size() (int, int)
	// OnResize registers fn to be called with the new drawable size.
	OnResize(fn func(width, height int))
	// Run blocks, driving d until ctx is done or the user closes the surface.
	Run(ctx context.Context, d Driver) error
	Close()
}
