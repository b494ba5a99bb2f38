// Package clock turns wall-clock readings into the values pushed to the
// clock-face shader.
package clock

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Source supplies the current time. Tests inject a fixed or stepping source.
type Source interface {
	Now() time.Time
}

type SourceFunc func() time.Time

func (f SourceFunc) Now() time.Time {
	return f()
}

// System reads the host clock in local time.
var System Source = SourceFunc(func() time.Time { return time.Now().Local() })

// Monotonic reads the host clock with its monotonic reading intact. It is
// for measuring intervals, not for display.
var Monotonic Source = SourceFunc(time.Now)

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Sample is the (hours mod 12, minutes, seconds) triple for one tick.
type Sample struct {
	Hours   int
	Minutes int
	Seconds int
}

// SampleOf derives the sample from t in t's own location.
func SampleOf(t time.Time) Sample {
	h, m, s := t.Clock()
	return Sample{Hours: h % 12, Minutes: m, Seconds: s}
}

// Read samples src.
func Read(src Source) Sample {
	return SampleOf(src.Now())
}

// Vec3 is the uniform value for the sample.
func (s Sample) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(s.Hours), float32(s.Minutes), float32(s.Seconds)}
}

func (s Sample) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", s.Hours, s.Minutes, s.Seconds)
}
