// Package spotlight renders a full-screen tour overlay for BubbleTea
// applications: a dimmed backdrop with a circular cutout that highlights a
// rectangular region of the host's view, and a tip positioned beside the
// highlight.
//
// The host owns the tour: which regions to highlight, step order, and tip
// content. The overlay owns the geometry and the motion — it computes the
// circle covering each spot, springs the cutout between successive spots,
// fades the tip in once the highlight settles, and resolves the tip's
// position from its measured size.
//
// Basic usage:
//
//	overlay, err := spotlight.NewOverlay(provider, steps, spotlight.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//
//	// In the host's Update, forward msgs and announce spots:
//	model, cmd := overlay.Update(msg)
//	cmds = append(cmds, cmd)
//	// ... on step change:
//	cmds = append(cmds, func() tea.Msg {
//	    return spotlight.SpotMsg{Spot: targetRect, StepIndex: i}
//	})
//
//	// In the host's View, composite over the underlying content:
//	return overlay.Compose(hostView)
//
// Before removing the overlay, let the tip fade out:
//
//	d := overlay.HideTip()
//	go func() { <-d.Done(); p.Send(tourFinishedMsg{}) }()
package spotlight

import (
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// tipPhase tracks the two-pass tip layout: content is rendered blind,
// measured asynchronously, and only then positioned.
type tipPhase int

const (
	tipUnmeasured tipPhase = iota
	tipMeasuring
	tipPositioned
)

// SpotMsg announces the measured rectangle of the current step's target.
// The host sends one whenever the active step or its on-screen region
// changes; each SpotMsg supersedes any in-flight transition.
type SpotMsg struct {
	Spot      Rect
	StepIndex int
}

// frameMsg carries the frame clock for the animation loop.
type frameMsg time.Time

// tipMeasuredMsg delivers the rendered tip's size. It is stamped with the
// transition generation that requested it so measurements that arrive after
// a newer spot change are discarded instead of applied.
type tipMeasuredMsg struct {
	gen  int
	size Size
}

// Overlay is the spotlight tour component. It implements tea.Model; the
// host forwards msgs through Update and paints through Compose.
//
// All state lives on the update loop — the overlay takes no locks and
// starts no goroutines of its own.
type Overlay struct {
	cfg      Config
	logger   *log.Logger
	provider Provider
	steps    []Step

	resolver HighlightResolver
	seq      *Sequencer
	comp     *compositor

	viewport  Size
	spot      Rect
	stepIndex int
	active    bool

	phase      tipPhase
	tipContent string
	tipSize    Size
	tipPos     TipPosition
}

// NewOverlay builds an overlay for the given tour. The steps are validated
// up front: a step with an unrecognized placement is a configuration
// defect, and rejecting it here beats a tip that silently never appears.
func NewOverlay(provider Provider, steps []Step, cfg Config) (*Overlay, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateSteps(steps); err != nil {
		return nil, err
	}
	comp, err := newCompositor(cfg)
	if err != nil {
		return nil, err
	}
	return &Overlay{
		cfg:      cfg,
		logger:   log.New(io.Discard),
		provider: provider,
		steps:    steps,
		resolver: NewHighlightResolver(cfg.PaddingFactor),
		seq:      NewSequencer(cfg),
		comp:     comp,
	}, nil
}

// WithLogger installs a logger for placement warnings and discarded stale
// measurements. The default logger discards everything.
func (o *Overlay) WithLogger(l *log.Logger) *Overlay {
	o.logger = l
	return o
}

// Init starts the frame clock.
func (o *Overlay) Init() tea.Cmd {
	return o.frameTick()
}

func (o *Overlay) frameTick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(o.cfg.FPS), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update advances the overlay's state machine.
func (o *Overlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.viewport = Size{Width: msg.Width, Height: msg.Height}
		o.comp.resize(o.viewport)
		if o.phase == tipPositioned {
			o.applyPlacement()
		}
		return o, nil

	case SpotMsg:
		return o, o.showSpot(msg)

	case frameMsg:
		o.seq.Tick(time.Time(msg))
		return o, o.frameTick()

	case tipMeasuredMsg:
		if msg.gen != o.seq.Generation() {
			o.logger.Debug("discarding stale tip measurement",
				"measured_gen", msg.gen, "current_gen", o.seq.Generation())
			return o, nil
		}
		o.tipSize = msg.size
		o.applyPlacement()
		return o, nil

	case tea.KeyMsg:
		if o.active && !o.cfg.DisableKeys {
			o.cfg.Keys.route(msg, o.provider)
		}
		return o, nil
	}
	return o, nil
}

// showSpot retargets the highlight at a new spot. Any previous transition
// is superseded; the tip position is cleared so a stale tip is never shown
// against the new highlight, and the tip content is re-rendered and queued
// for measurement.
func (o *Overlay) showSpot(msg SpotMsg) tea.Cmd {
	o.spot = msg.Spot
	o.stepIndex = msg.StepIndex
	o.active = true

	gen := o.seq.Retarget(o.resolver.Resolve(msg.Spot), time.Now())

	o.phase = tipUnmeasured
	o.tipContent = ""
	o.tipPos = TipPosition{}

	if msg.StepIndex < 0 || msg.StepIndex >= len(o.steps) {
		o.logger.Warn("spot announced for unknown step", "step", msg.StepIndex, "steps", len(o.steps))
		return nil
	}

	o.tipContent = o.steps[msg.StepIndex].Render(o.renderProps())
	o.phase = tipMeasuring
	content := o.tipContent
	return func() tea.Msg {
		return tipMeasuredMsg{
			gen:  gen,
			size: Size{Width: lipgloss.Width(content), Height: lipgloss.Height(content)},
		}
	}
}

func (o *Overlay) renderProps() RenderProps {
	total := 0
	if o.provider != nil {
		total = o.provider.StepCount()
	}
	props := RenderProps{
		Current: o.stepIndex,
		IsFirst: o.stepIndex == 0,
		IsLast:  o.stepIndex == total-1,
	}
	if o.provider != nil {
		props.Next = o.provider.Next
		props.Previous = o.provider.Previous
		props.Stop = o.provider.Stop
	}
	return props
}

// applyPlacement resolves the tip position from the target highlight
// geometry and the measured tip size. Placement uses the transition's
// target circle, not the mid-animation one, so the tip lands where the
// highlight will settle.
func (o *Overlay) applyPlacement() {
	if o.stepIndex < 0 || o.stepIndex >= len(o.steps) {
		return
	}
	step := o.steps[o.stepIndex]
	pos, ok := PlaceTip(o.resolver.Resolve(o.spot), o.tipSize, step.Placement, step.AlignTo, o.viewport, o.cfg.TipMarginFrac)
	if !ok {
		o.logger.Warn("unsupported tip placement, tip stays hidden",
			"step", o.stepIndex, "side", step.Placement.String())
		return
	}
	o.tipPos = pos
	o.phase = tipPositioned
}

// HideTip starts the dismiss fade and returns its completion handle. The
// host must await the Dismissal before tearing the overlay down; an
// interrupted fade delivers ErrHideTipInterrupted.
func (o *Overlay) HideTip() *Dismissal {
	return o.seq.HideTip(time.Now())
}

// Close releases any host still awaiting a Dismissal. Call it when the
// overlay is removed without waiting for the fade.
func (o *Overlay) Close() {
	o.seq.Interrupt()
}

// Compose paints the overlay frame over the host's rendered view: the view
// dimmed outside the current highlight circle, untouched inside it, with
// the tip spliced in at its resolved position and current opacity.
func (o *Overlay) Compose(hostView string) string {
	if !o.active {
		return hostView
	}
	opacity := o.seq.TipOpacity()
	tip := tipPaint{
		opacity: opacity,
		visible: o.phase == tipPositioned && opacity > 0.01 && o.tipContent != "",
	}
	if tip.visible {
		tip.lines = strings.Split(o.tipContent, "\n")
		tip.left, tip.top = o.tipPos.painted()
		tip.width = o.tipSize.Width
	}
	return o.comp.Compose(hostView, o.seq.Highlight(), tip)
}

// View renders the overlay against an empty backdrop. Hosts normally call
// Compose with their own view instead.
func (o *Overlay) View() string {
	return o.Compose("")
}

// CurrentHighlight returns the live, possibly mid-animation, cutout.
func (o *Overlay) CurrentHighlight() Highlight {
	return o.seq.Highlight()
}

// TipOpacity returns the tip's current opacity in [0, 1].
func (o *Overlay) TipOpacity() float64 {
	return o.seq.TipOpacity()
}

// TipPlacement returns the resolved tip position. The bool is false while
// the tip is unmeasured or its placement could not be resolved.
func (o *Overlay) TipPlacement() (TipPosition, bool) {
	return o.tipPos, o.phase == tipPositioned
}
