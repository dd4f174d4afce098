package spotlight

import (
	"errors"
	"fmt"
)

// ErrUnknownPlacement is returned by Step.Validate when a step descriptor
// names no recognized side for its tip.
var ErrUnknownPlacement = errors.New("spotlight: unknown tip placement")

// Provider is the tour-state collaborator the overlay navigates through.
//
// The overlay never sequences steps itself: the host owns step order,
// persistence, and target measurement, and feeds the overlay a spot
// rectangle per step via SpotMsg. The provider's methods are invoked from
// the overlay's built-in key handling and from the callbacks passed to a
// step's Render function, always on the update loop.
type Provider interface {
	// Next advances the tour to the following step.
	Next()
	// Previous returns the tour to the preceding step.
	Previous()
	// Stop ends the tour. The host should call Overlay.HideTip and await
	// its Dismissal before removing the overlay.
	Stop()
	// StepCount returns the total number of steps in the tour.
	StepCount() int
}

// RenderProps is handed to a step's Render callback. It carries the
// navigation callbacks and the step's place within the tour so tip content
// can show progress and wire its own controls.
type RenderProps struct {
	Current  int
	IsFirst  bool
	IsLast   bool
	Next     func()
	Previous func()
	Stop     func()
}

// Step describes one highlighted spot of a tour: where the tip goes and how
// its content is produced. The overlay reads Placement and AlignTo and
// invokes Render; everything else about a step is the host's business.
type Step struct {
	// Placement anchors the tip to one edge of the highlight. Required.
	Placement Side

	// AlignTo selects the horizontal alignment rule for top/bottom tips.
	// The zero value aligns to the spot.
	AlignTo Align

	// Render produces the tip content. The returned string may be styled;
	// its rendered size is measured to resolve the final tip position.
	Render func(RenderProps) string
}

// Validate rejects step descriptors the overlay could not place. A step
// with an unknown Placement would otherwise surface as a tip that never
// appears, so hosts should validate steps when installing them.
func (s Step) Validate() error {
	switch s.Placement {
	case SideTop, SideBottom, SideLeft, SideRight:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownPlacement, int(s.Placement))
	}
	if s.Render == nil {
		return errors.New("spotlight: step has no render callback")
	}
	return nil
}

// ValidateSteps validates every step, reporting the first offender by index.
func ValidateSteps(steps []Step) error {
	for i, s := range steps {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}
