package spotlight

import (
	"errors"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// ErrHideTipInterrupted is delivered on a Dismissal when the tip fade-out
// did not run to completion, for example because a new spot transition or a
// second HideTip call superseded it. Callers should treat it as an expected
// cancellation, not a failure.
var ErrHideTipInterrupted = errors.New("spotlight: hide tip interrupted")

// SpringSpec holds physical spring parameters in the damping/mass/stiffness
// form. They are converted to harmonica's angular-frequency/damping-ratio
// form when the spring is instantiated.
type SpringSpec struct {
	Damping   float64 `toml:"damping"`
	Mass      float64 `toml:"mass"`
	Stiffness float64 `toml:"stiffness"`
}

// spring builds a harmonica spring stepped at the given frame rate.
//
//	omega = sqrt(k/m)          (undamped angular frequency)
//	zeta  = c / (2*sqrt(k*m))  (damping ratio)
func (s SpringSpec) spring(fps int) harmonica.Spring {
	omega := math.Sqrt(s.Stiffness / s.Mass)
	zeta := s.Damping / (2 * math.Sqrt(s.Stiffness*s.Mass))
	return harmonica.NewSpring(harmonica.FPS(fps), omega, zeta)
}

// springValue is one spring-driven scalar chasing a retargetable value.
// Retargeting never resets position or velocity, so an interrupted
// transition continues smoothly from wherever it was.
type springValue struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

func (v *springValue) step() {
	v.pos, v.vel = v.spring.Update(v.pos, v.vel, v.target)
}

// settled reports whether the value has effectively reached its target.
func (v *springValue) settled() bool {
	return math.Abs(v.pos-v.target) < 0.05 && math.Abs(v.vel) < 0.05
}

// fade is a linear time-based interpolation with an optional start delay.
type fade struct {
	from     float64
	to       float64
	delay    time.Duration
	duration time.Duration
	start    time.Time
	active   bool
}

func (f *fade) begin(from, to float64, delay, duration time.Duration, now time.Time) {
	*f = fade{from: from, to: to, delay: delay, duration: duration, start: now, active: true}
}

// value returns the interpolated opacity at now. Before the delay elapses
// the value holds at from; after delay+duration it holds at to.
func (f *fade) value(now time.Time) float64 {
	if !f.active {
		return f.to
	}
	elapsed := now.Sub(f.start) - f.delay
	if elapsed <= 0 {
		return f.from
	}
	if f.duration <= 0 || elapsed >= f.duration {
		return f.to
	}
	t := float64(elapsed) / float64(f.duration)
	return f.from + (f.to-f.from)*t
}

func (f *fade) done(now time.Time) bool {
	return !f.active || now.Sub(f.start) >= f.delay+f.duration
}

// Dismissal is the completion handle for a tip fade-out started by HideTip.
//
// Done yields exactly one value: nil when the fade ran to completion, or
// ErrHideTipInterrupted when it was superseded before finishing. The channel
// is buffered, so the sequencer never blocks on an abandoned handle.
type Dismissal struct {
	ch       chan error
	resolved bool
}

func newDismissal() *Dismissal {
	return &Dismissal{ch: make(chan error, 1)}
}

// Done returns the completion channel. It is safe to receive from it after
// the overlay has been torn down.
func (d *Dismissal) Done() <-chan error {
	return d.ch
}

// resolve delivers the result. Only the first call has any effect.
func (d *Dismissal) resolve(err error) {
	if d == nil || d.resolved {
		return
	}
	d.resolved = true
	d.ch <- err
}

// Sequencer drives the three interpolated overlay values: highlight center,
// highlight radius, and tip opacity.
//
// Center and radius are spring-driven; opacity is a timed fade. A
// generation counter implements last-write-wins: every retarget bumps the
// generation, and work stamped with an older generation (in-flight
// measurements, pending dismissals) is discarded rather than applied.
//
// The sequencer is single-writer by construction: all methods are called
// from the overlay's update loop, so no locking is needed.
type Sequencer struct {
	cx, cy, radius springValue
	tipFade        fade
	opacity        float64

	fadeIn      time.Duration
	fadeInDelay time.Duration
	fadeOut     time.Duration

	gen       int
	dismissal *Dismissal
}

// NewSequencer returns a sequencer at the mount state: radius 0, center
// (0,0), tip opacity 0. The first retarget animates in from nothing.
func NewSequencer(cfg Config) *Sequencer {
	center := cfg.CenterSpring.spring(cfg.FPS)
	return &Sequencer{
		cx:          springValue{spring: center},
		cy:          springValue{spring: center},
		radius:      springValue{spring: cfg.RadiusSpring.spring(cfg.FPS)},
		fadeIn:      cfg.TipFadeIn,
		fadeInDelay: cfg.TipFadeInDelay,
		fadeOut:     cfg.TipFadeOut,
	}
}

// Retarget starts a transition toward a new highlight and returns the new
// generation. Any in-flight transition is superseded without error: the
// springs keep their current position and velocity, and a pending dismissal
// is rejected with ErrHideTipInterrupted. The tip opacity restarts from 0
// and fades in after the configured delay, once the highlight has mostly
// settled.
func (s *Sequencer) Retarget(hl Highlight, now time.Time) int {
	s.gen++
	s.interruptDismissal()
	s.cx.target = hl.CenterX
	s.cy.target = hl.CenterY
	s.radius.target = hl.Radius
	s.tipFade.begin(0, 1, s.fadeInDelay, s.fadeIn, now)
	s.opacity = 0
	return s.gen
}

// HideTip starts the dismiss transition: a fade of tip opacity to 0 over the
// configured duration, independent of the highlight's state. The returned
// Dismissal completes when the fade finishes, or is rejected if the fade is
// interrupted first. A HideTip issued while another is pending interrupts
// the earlier one.
func (s *Sequencer) HideTip(now time.Time) *Dismissal {
	s.interruptDismissal()
	s.tipFade.begin(s.opacity, 0, 0, s.fadeOut, now)
	s.dismissal = newDismissal()
	return s.dismissal
}

// Tick advances the animation one frame. The springs step at the fixed
// frame rate they were built with; the fade is evaluated against now.
func (s *Sequencer) Tick(now time.Time) {
	s.cx.step()
	s.cy.step()
	s.radius.step()
	s.opacity = s.tipFade.value(now)
	if s.dismissal != nil && s.tipFade.done(now) {
		s.dismissal.resolve(nil)
		s.dismissal = nil
	}
}

// Highlight returns the current, possibly mid-animation, cutout geometry.
func (s *Sequencer) Highlight() Highlight {
	return Highlight{CenterX: s.cx.pos, CenterY: s.cy.pos, Radius: s.radius.pos}
}

// TipOpacity returns the current tip opacity in [0, 1].
func (s *Sequencer) TipOpacity() float64 {
	return s.opacity
}

// Generation returns the current transition generation. Asynchronous work
// started on behalf of a transition stamps itself with this value and is
// discarded if the generation has moved on by the time it lands.
func (s *Sequencer) Generation() int {
	return s.gen
}

// Settled reports whether the highlight springs have reached their targets.
func (s *Sequencer) Settled() bool {
	return s.cx.settled() && s.cy.settled() && s.radius.settled()
}

// Interrupt rejects a pending dismissal, if any. The overlay calls this on
// teardown so a host awaiting HideTip during an abrupt unmount is released.
func (s *Sequencer) Interrupt() {
	s.interruptDismissal()
}

func (s *Sequencer) interruptDismissal() {
	if s.dismissal != nil {
		s.dismissal.resolve(ErrHideTipInterrupted)
		s.dismissal = nil
	}
}
