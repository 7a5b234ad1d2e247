package timeline

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// The spring progress curve is the unit step response of a damped harmonic
// oscillator starting at rest: x(0)=0, x'(0)=0, settling toward 1. Both
// evaluators below are parameterized against this one specification so the
// discrete frame-indexed render path and the continuous live path produce
// matching motion for matching configs.

// omegaZeta converts stiffness/damping/mass to the natural angular frequency
// and damping ratio of the oscillator.
func omegaZeta(c SpringConfig) (omega, zeta float64) {
	omega = math.Sqrt(c.Stiffness / c.Mass)
	zeta = c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
	return omega, zeta
}

// criticalBand is the damping-ratio window treated as critically damped.
// The underdamped branch divides by sqrt(1-zeta^2) and loses precision as
// zeta approaches 1.
const criticalBand = 1e-4

// Progress evaluates the spring curve in closed form at an elapsed frame
// count. This is the render-mode evaluator: no integration state, so any
// frame can be sampled independently and in any order.
//
// Elapsed frames at or before zero return exactly 0 (an event never affects
// frames before its trigger). Underdamped configs overshoot above 1 on
// purpose; clamping is the accumulator's job, not the evaluator's.
func Progress(c SpringConfig, frames float64, fps int) float64 {
	if frames <= 0 {
		return 0
	}
	t := frames / float64(fps)
	omega, zeta := omegaZeta(c)

	switch {
	case zeta < 1-criticalBand:
		// Underdamped: decaying oscillation around 1.
		wd := omega * math.Sqrt(1-zeta*zeta)
		decay := math.Exp(-zeta * omega * t)
		return 1 - decay*(math.Cos(wd*t)+(zeta*omega/wd)*math.Sin(wd*t))
	case zeta < 1+criticalBand:
		// Critically damped: fastest non-oscillating approach.
		decay := math.Exp(-omega * t)
		return 1 - decay*(1+omega*t)
	default:
		// Overdamped: two real decay rates.
		root := omega * math.Sqrt(zeta*zeta-1)
		s1 := -omega*zeta + root
		s2 := -omega*zeta - root
		return 1 - (s2*math.Exp(s1*t)-s1*math.Exp(s2*t))/(s2-s1)
	}
}

// Integrator is the live-mode evaluator: a frame-stepped spring that carries
// position and velocity between ticks, built on harmonica's exact
// discretization of the same oscillator. Stepping it once per frame toward a
// fixed target of 1 reproduces Progress to within visual tolerance; stepping
// it toward a moving target is what live pointer interaction uses.
type Integrator struct {
	spring   harmonica.Spring
	Pos, Vel float64
}

// NewIntegrator builds a live-mode spring evaluator ticking at the given
// frame rate. The config is validated here — this is the first point of use
// in live mode, and a bad config must fail before it can emit NaN.
func NewIntegrator(c SpringConfig, fps int) (*Integrator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	omega, zeta := omegaZeta(c)
	return &Integrator{spring: harmonica.NewSpring(harmonica.FPS(fps), omega, zeta)}, nil
}

// Step advances the spring by one frame toward target and returns the new
// position.
func (in *Integrator) Step(target float64) float64 {
	in.Pos, in.Vel = in.spring.Update(in.Pos, in.Vel, target)
	return in.Pos
}

// Reset snaps the spring to a resting position.
func (in *Integrator) Reset(pos float64) {
	in.Pos = pos
	in.Vel = 0
}

// Settled reports whether the spring has effectively reached target.
func (in *Integrator) Settled(target float64) bool {
	return math.Abs(in.Pos-target) < 1e-4 && math.Abs(in.Vel) < 1e-4
}
