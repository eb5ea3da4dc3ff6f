// Package signal provides scalar control inputs in [0, 1] and a few ways to
// combine them. Signals are polled, never pushed.
package signal

import "math"

// Signal is a polled intensity, usually between 0 and 1.
type Signal interface {
	Intensity() float64
}

// Func adapts a plain function.
type Func func() float64

func (f Func) Intensity() float64 { return f() }

// Constant is a signal with a settable fixed intensity.
type Constant struct {
	intensity float64
}

func NewConstant(intensity float64) *Constant {
	return &Constant{intensity: intensity}
}

func (c *Constant) Intensity() float64 { return c.intensity }

func (c *Constant) SetIntensity(intensity float64) { c.intensity = intensity }

type minSignal struct{ first, second Signal }

func (m minSignal) Intensity() float64 {
	return math.Min(m.first.Intensity(), m.second.Intensity())
}

// Min yields the lower of two intensities.
func Min(first, second Signal) Signal { return minSignal{first, second} }

type maxSignal struct{ first, second Signal }

func (m maxSignal) Intensity() float64 {
	return math.Max(m.first.Intensity(), m.second.Intensity())
}

// Max yields the higher of two intensities.
func Max(first, second Signal) Signal { return maxSignal{first, second} }

type invertSignal struct{ s Signal }

func (i invertSignal) Intensity() float64 { return 1 - i.s.Intensity() }

// Invert yields 1 minus the wrapped intensity.
func Invert(s Signal) Signal { return invertSignal{s} }
